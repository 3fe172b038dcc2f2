package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/types/v1"
)

// compareStub 按地址区分交易量的多集合数据源
// volumes 中不存在的地址按集合缺失处理
func compareStub(volumes map[string]float64) *stubProvider {
	return &stubProvider{
		fetchCollection: func(ctx context.Context, identifier, chain string) (*provider.Collection, error) {
			if _, ok := volumes[identifier]; !ok {
				return nil, errors.Wrap(provider.ErrNotFound, identifier)
			}
			return testCollection(identifier, 1000, nil), nil
		},
		fetchFloorPrice: func(ctx context.Context, identifier, marketplace, chain string) ([]provider.FloorPriceQuote, error) {
			return []provider.FloorPriceQuote{quote("magic_eden", 1.0)}, nil
		},
		fetchPriceHistory: func(ctx context.Context, identifier string, days int, chain string) ([]provider.PriceHistoryPoint, error) {
			return []provider.PriceHistoryPoint{
				{Date: point("2026-08-01", 1, 0).Date, AvgPrice: decimal.NewFromFloat(1.0), Volume: decimal.NewFromFloat(volumes[identifier])},
			}, nil
		},
	}
}

func TestCompareCollections(t *testing.T) {
	addrA := "AaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaA1"
	addrB := "BbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbB2"
	addrC := "CccccccccccccccccccccccccccccccccccccccccC3"

	t.Run("sorted_by_volume_desc", func(t *testing.T) {
		svcCtx := newTestCtx(compareStub(map[string]float64{addrA: 100, addrB: 300, addrC: 200}))
		res, err := CompareCollections(context.Background(), svcCtx, []string{addrA, addrB, addrC}, MetricVolume, provider.ChainSolana)
		require.NoError(t, err)

		require.Len(t, res.Collections, 3)
		require.Equal(t, addrB, res.Collections[0].Address)
		require.Equal(t, addrC, res.Collections[1].Address)
		require.Equal(t, addrA, res.Collections[2].Address)
	})

	t.Run("failed_collection_dropped", func(t *testing.T) {
		// addrC 不存在: 从结果剔除而不是整体失败
		svcCtx := newTestCtx(compareStub(map[string]float64{addrA: 100, addrB: 300}))
		res, err := CompareCollections(context.Background(), svcCtx, []string{addrA, addrB, addrC}, MetricVolume, provider.ChainSolana)
		require.NoError(t, err)

		require.Len(t, res.Collections, 2)
		for _, entry := range res.Collections {
			require.NotEqual(t, addrC, entry.Address)
		}
	})

	t.Run("single_address_rejected", func(t *testing.T) {
		// 不足两个集合无从对比, 数据源不应被访问
		svcCtx := newTestCtx(compareStub(nil))
		_, err := CompareCollections(context.Background(), svcCtx, []string{addrA}, MetricVolume, provider.ChainSolana)
		require.ErrorIs(t, err, ErrTooFewCollections)

		_, err = CompareCollections(context.Background(), svcCtx, nil, MetricVolume, provider.ChainSolana)
		require.ErrorIs(t, err, ErrTooFewCollections)
	})

	t.Run("all_collections_failed", func(t *testing.T) {
		svcCtx := newTestCtx(compareStub(nil))
		_, err := CompareCollections(context.Background(), svcCtx, []string{addrA, addrB}, MetricVolume, provider.ChainSolana)
		require.ErrorIs(t, err, ErrDataSource)
	})

	t.Run("tie_keeps_request_order", func(t *testing.T) {
		svcCtx := newTestCtx(compareStub(map[string]float64{addrA: 100, addrB: 100}))
		res, err := CompareCollections(context.Background(), svcCtx, []string{addrB, addrA}, MetricVolume, provider.ChainSolana)
		require.NoError(t, err)

		require.Equal(t, addrB, res.Collections[0].Address)
		require.Equal(t, addrA, res.Collections[1].Address)
	})
}

func TestGetTrending(t *testing.T) {
	addrs := []string{
		"AaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaA1",
		"BbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbB2",
		"CccccccccccccccccccccccccccccccccccccccccC3",
	}
	stub := compareStub(map[string]float64{addrs[0]: 100, addrs[1]: 300, addrs[2]: 200})
	stub.listCollections = func(ctx context.Context, chain string, limit int) ([]string, error) {
		return addrs, nil
	}

	t.Run("sorted_and_limited", func(t *testing.T) {
		svcCtx := newTestCtx(stub)
		res, err := GetTrending(context.Background(), svcCtx, Period7d, provider.ChainSolana, 2)
		require.NoError(t, err)

		require.Len(t, res, 2)
		require.Equal(t, addrs[1], res[0].Address)
		require.Equal(t, addrs[2], res[1].Address)
		require.True(t, res[0].Volume.Equal(decimal.NewFromFloat(300)))
	})

	t.Run("list_failure", func(t *testing.T) {
		failing := compareStub(nil)
		failing.listCollections = func(ctx context.Context, chain string, limit int) ([]string, error) {
			return nil, context.DeadlineExceeded
		}
		svcCtx := newTestCtx(failing)
		_, err := GetTrending(context.Background(), svcCtx, Period7d, provider.ChainSolana, 10)
		require.ErrorIs(t, err, ErrDataSource)
	})
}

func TestSortByMetric(t *testing.T) {
	entries := func() []types.ComparisonEntry {
		return []types.ComparisonEntry{
			{Name: "big-supply", TotalItems: 10000, FloorPrice: decimal.NewFromFloat(1.0), Volume7d: decimal.NewFromFloat(50), PriceChange7d: -5},
			{Name: "high-floor", TotalItems: 100, FloorPrice: decimal.NewFromFloat(9.0), Volume7d: decimal.NewFromFloat(10), PriceChange7d: 1},
			{Name: "pumping", TotalItems: 500, FloorPrice: decimal.NewFromFloat(2.0), Volume7d: decimal.NewFromFloat(30), PriceChange7d: 40},
		}
	}

	base := entries()
	sortByMetric(base, MetricFloorPrice)
	require.Equal(t, "high-floor", base[0].Name)

	base = entries()
	sortByMetric(base, MetricTotalItems)
	require.Equal(t, "big-supply", base[0].Name)

	base = entries()
	sortByMetric(base, MetricPriceChange7d)
	require.Equal(t, "pumping", base[0].Name)

	base = entries()
	sortByMetric(base, MetricVolume)
	require.Equal(t, "big-supply", base[0].Name)
}
