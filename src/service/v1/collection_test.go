package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/common/utils"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
)

func TestGetFloorPrice(t *testing.T) {
	newStub := func(quotes []provider.FloorPriceQuote) *stubProvider {
		stub := traitStub(1000, map[string]map[string]int64{})
		stub.fetchFloorPrice = func(ctx context.Context, identifier, marketplace, chain string) ([]provider.FloorPriceQuote, error) {
			return quotes, nil
		}
		return stub
	}

	t.Run("aggregates_lowest_and_average", func(t *testing.T) {
		quotes := []provider.FloorPriceQuote{
			quote("magic_eden", 2.0),
			quote("opensea", 3.0),
			quote("solanart", 4.0),
		}
		svcCtx := newTestCtx(newStub(quotes))
		res, err := GetFloorPrice(context.Background(), svcCtx, testCollectionAddr, provider.MarketplaceAll, provider.ChainSolana)
		require.NoError(t, err)

		require.Len(t, res.Quotes, 3)
		require.True(t, res.LowestFloor.Equal(decimal.NewFromFloat(2.0)))
		require.Equal(t, "magic_eden", res.LowestMarketplace)
		require.True(t, res.AverageFloor.Equal(decimal.NewFromFloat(3.0)))
		require.Equal(t, "SOL", res.Currency)
	})

	t.Run("no_marketplace_coverage", func(t *testing.T) {
		// 无任何报价是合法状态, 返回零值聚合而非错误
		svcCtx := newTestCtx(newStub(nil))
		res, err := GetFloorPrice(context.Background(), svcCtx, testCollectionAddr, provider.MarketplaceAll, provider.ChainSolana)
		require.NoError(t, err)

		require.Empty(t, res.Quotes)
		require.True(t, res.LowestFloor.IsZero())
		require.True(t, res.AverageFloor.IsZero())
		require.Equal(t, "none", res.LowestMarketplace)
	})

	t.Run("served_from_cache", func(t *testing.T) {
		var calls int32
		stub := newStub([]provider.FloorPriceQuote{quote("magic_eden", 2.0)})
		inner := stub.fetchFloorPrice
		stub.fetchFloorPrice = func(ctx context.Context, identifier, marketplace, chain string) ([]provider.FloorPriceQuote, error) {
			atomic.AddInt32(&calls, 1)
			return inner(ctx, identifier, marketplace, chain)
		}

		svcCtx := newTestCtx(stub)
		first, err := GetFloorPrice(context.Background(), svcCtx, testCollectionAddr, provider.MarketplaceAll, provider.ChainSolana)
		require.NoError(t, err)
		second, err := GetFloorPrice(context.Background(), svcCtx, testCollectionAddr, provider.MarketplaceAll, provider.ChainSolana)
		require.NoError(t, err)

		// 第二次请求命中缓存, 数据源只被访问一次
		require.EqualValues(t, 1, atomic.LoadInt32(&calls))
		require.True(t, first.LowestFloor.Equal(second.LowestFloor))
	})

	t.Run("collection_not_found", func(t *testing.T) {
		svcCtx := newTestCtx(&stubProvider{})
		_, err := GetFloorPrice(context.Background(), svcCtx, testCollectionAddr, provider.MarketplaceAll, provider.ChainSolana)
		require.ErrorIs(t, err, ErrCollectionNotFound)
	})

	t.Run("retry_wrapped_not_found", func(t *testing.T) {
		// 数据源经过重试包装的未找到错误仍按未找到归类, 而不是数据源故障
		stub := &stubProvider{
			fetchCollection: func(ctx context.Context, identifier, chain string) (*provider.Collection, error) {
				return nil, utils.Retry("query collection info", 1, 0, func() error {
					return errors.Wrapf(provider.ErrNotFound, "unknown collection: %s", identifier)
				})
			},
		}
		svcCtx := newTestCtx(stub)
		_, err := GetFloorPrice(context.Background(), svcCtx, testCollectionAddr, provider.MarketplaceAll, provider.ChainSolana)
		require.ErrorIs(t, err, ErrCollectionNotFound)
	})
}

func TestGetCollectionStats(t *testing.T) {
	newStub := func() *stubProvider {
		stub := traitStub(1000, map[string]map[string]int64{
			"Background": {"Red": 600, "Blue": 400},
			"Eyes":       {"Normal": 1000},
		})
		stub.fetchFloorPrice = func(ctx context.Context, identifier, marketplace, chain string) ([]provider.FloorPriceQuote, error) {
			return []provider.FloorPriceQuote{quote("magic_eden", 2.0), quote("opensea", 4.0)}, nil
		}
		stub.fetchPriceHistory = func(ctx context.Context, identifier string, days int, chain string) ([]provider.PriceHistoryPoint, error) {
			return []provider.PriceHistoryPoint{
				point("2026-08-01", 2.0, 100),
				point("2026-08-07", 3.0, 150),
			}, nil
		}
		return stub
	}

	t.Run("aggregates_snapshot", func(t *testing.T) {
		svcCtx := newTestCtx(newStub())
		res, err := GetCollectionStats(context.Background(), svcCtx, testCollectionAddr, provider.ChainSolana)
		require.NoError(t, err)

		require.EqualValues(t, 1000, res.TotalItems)
		require.Equal(t, 2, res.UniqueTraitTypes)
		require.True(t, res.FloorPrice.Equal(decimal.NewFromFloat(2.0)))
		require.True(t, res.AverageFloor.Equal(decimal.NewFromFloat(3.0)))
		require.True(t, res.Volume7d.Equal(decimal.NewFromFloat(250)))
		require.InDelta(t, 50.0, res.PriceChange7d, 1e-9)
		require.Equal(t, "SOL", res.Currency)
	})

	t.Run("served_from_cache", func(t *testing.T) {
		var calls int32
		stub := newStub()
		inner := stub.fetchCollection
		stub.fetchCollection = func(ctx context.Context, identifier, chain string) (*provider.Collection, error) {
			atomic.AddInt32(&calls, 1)
			return inner(ctx, identifier, chain)
		}

		svcCtx := newTestCtx(stub)
		_, err := GetCollectionStats(context.Background(), svcCtx, testCollectionAddr, provider.ChainSolana)
		require.NoError(t, err)
		_, err = GetCollectionStats(context.Background(), svcCtx, testCollectionAddr, provider.ChainSolana)
		require.NoError(t, err)

		require.EqualValues(t, 1, atomic.LoadInt32(&calls))
	})

	t.Run("history_failure_propagates", func(t *testing.T) {
		stub := newStub()
		stub.fetchPriceHistory = func(ctx context.Context, identifier string, days int, chain string) ([]provider.PriceHistoryPoint, error) {
			return nil, context.DeadlineExceeded
		}
		svcCtx := newTestCtx(stub)
		_, err := GetCollectionStats(context.Background(), svcCtx, testCollectionAddr, provider.ChainSolana)
		require.ErrorIs(t, err, ErrDataSource)
	})
}
