package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
)

func point(day string, avgPrice, volume float64) provider.PriceHistoryPoint {
	date, _ := time.Parse("2006-01-02", day)
	return provider.PriceHistoryPoint{
		Date:     date,
		AvgPrice: decimal.NewFromFloat(avgPrice),
		Volume:   decimal.NewFromFloat(volume),
	}
}

func historyStub(points []provider.PriceHistoryPoint) *stubProvider {
	return &stubProvider{
		fetchPriceHistory: func(ctx context.Context, identifier string, days int, chain string) ([]provider.PriceHistoryPoint, error) {
			return points, nil
		},
	}
}

func TestGetPriceHistory(t *testing.T) {
	t.Run("derived_stats", func(t *testing.T) {
		points := []provider.PriceHistoryPoint{
			point("2026-08-01", 2.0, 100),
			point("2026-08-02", 1.0, 50),
			point("2026-08-03", 3.0, 200),
		}
		svcCtx := newTestCtx(historyStub(points))
		res, err := GetPriceHistory(context.Background(), svcCtx, testCollectionAddr, Period7d, provider.ChainSolana)
		require.NoError(t, err)

		require.Len(t, res.Points, 3)
		require.Equal(t, "2026-08-01", res.Points[0].Date)
		require.InDelta(t, 50.0, res.PriceChangePercentage, 1e-9)   // 2.0 -> 3.0
		require.InDelta(t, 100.0, res.VolumeChangePercentage, 1e-9) // 100 -> 200
		require.True(t, res.MinPrice.Equal(decimal.NewFromFloat(1.0)))
		require.True(t, res.MaxPrice.Equal(decimal.NewFromFloat(3.0)))
		require.True(t, res.AvgPrice.Equal(decimal.NewFromFloat(2.0)))
		// 总体标准差 stdev([2,1,3]) = sqrt(2/3), 均值 2
		require.InDelta(t, 0.40824829, res.PriceVolatility, 1e-6)
	})

	t.Run("zero_first_price", func(t *testing.T) {
		// 首日价格为 0 时变化率无定义, 约定为 0
		points := []provider.PriceHistoryPoint{
			point("2026-08-01", 0, 0),
			point("2026-08-02", 5.0, 10),
		}
		svcCtx := newTestCtx(historyStub(points))
		res, err := GetPriceHistory(context.Background(), svcCtx, testCollectionAddr, Period7d, provider.ChainSolana)
		require.NoError(t, err)

		require.Zero(t, res.PriceChangePercentage)
		require.Zero(t, res.VolumeChangePercentage)
	})

	t.Run("empty_history", func(t *testing.T) {
		svcCtx := newTestCtx(historyStub(nil))
		res, err := GetPriceHistory(context.Background(), svcCtx, testCollectionAddr, PeriodAll, provider.ChainSolana)
		require.NoError(t, err)

		require.Empty(t, res.Points)
		require.Zero(t, res.PriceChangePercentage)
		require.Zero(t, res.PriceVolatility)
		require.True(t, res.MinPrice.IsZero())
		require.True(t, res.AvgPrice.IsZero())
	})

	t.Run("single_point_no_volatility", func(t *testing.T) {
		points := []provider.PriceHistoryPoint{point("2026-08-01", 2.0, 100)}
		svcCtx := newTestCtx(historyStub(points))
		res, err := GetPriceHistory(context.Background(), svcCtx, testCollectionAddr, Period1d, provider.ChainSolana)
		require.NoError(t, err)

		require.Zero(t, res.PriceVolatility)
		require.Zero(t, res.PriceChangePercentage)
	})
}

func TestPeriodDays(t *testing.T) {
	require.Equal(t, 1, PeriodDays[Period1d])
	require.Equal(t, 7, PeriodDays[Period7d])
	require.Equal(t, 30, PeriodDays[Period30d])
	require.Equal(t, 90, PeriodDays[Period90d])
	require.Equal(t, 365, PeriodDays[PeriodAll])
	require.False(t, IsSupportedPeriod("2w"))
}
