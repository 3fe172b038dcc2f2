package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/common/utils"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/service/svc"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/types/v1"
)

// 时间窗口常量
const (
	Period1d  = "1d"
	Period7d  = "7d"
	Period30d = "30d"
	Period90d = "90d"
	PeriodAll = "all"
)

// PeriodDays 时间窗口 -> 天数映射, "all" 截断为一年
var PeriodDays = map[string]int{
	Period1d:  1,
	Period7d:  7,
	Period30d: 30,
	Period90d: 90,
	PeriodAll: 365,
}

// IsSupportedPeriod 判断时间窗口参数是否合法
func IsSupportedPeriod(period string) bool {
	_, ok := PeriodDays[period]
	return ok
}

// GetPriceHistory 获取历史价格走势统计
// 功能: 拉取窗口内的成交日线, 并在其上计算变化率/波动率/极值等衍生指标
// 空序列是合法结果(新集合或无成交), 所有衍生指标归零
func GetPriceHistory(ctx context.Context, svcCtx *svc.ServerCtx, identifier, timePeriod, chain string) (*types.PriceHistory, error) {
	days := PeriodDays[timePeriod]
	points, err := svcCtx.Provider.FetchPriceHistory(ctx, identifier, days, chain)
	if err != nil {
		return nil, wrapCollectionErr(err, identifier)
	}

	history := &types.PriceHistory{
		CollectionAddress: identifier,
		Chain:             chain,
		TimePeriod:        timePeriod,
		Currency:          provider.ChainCurrency[chain],
		Points:            make([]types.PricePoint, 0, len(points)),
	}
	for _, p := range points {
		history.Points = append(history.Points, types.PricePoint{
			Date:     p.Date.Format("2006-01-02"),
			AvgPrice: p.AvgPrice,
			Volume:   p.Volume,
		})
	}
	if len(points) == 0 {
		return history, nil
	}

	// 首尾变化率: 基准值为 0 时无法定义变化率, 按 0 返回
	first, last := points[0], points[len(points)-1]
	history.PriceChangePercentage = changeRate(first.AvgPrice, last.AvgPrice)
	history.VolumeChangePercentage = changeRate(first.Volume, last.Volume)

	// 波动率与极值
	prices := make([]float64, 0, len(points))
	minPrice, maxPrice := points[0].AvgPrice, points[0].AvgPrice
	sum := decimal.Zero
	for _, p := range points {
		prices = append(prices, p.AvgPrice.InexactFloat64())
		if p.AvgPrice.LessThan(minPrice) {
			minPrice = p.AvgPrice
		}
		if p.AvgPrice.GreaterThan(maxPrice) {
			maxPrice = p.AvgPrice
		}
		sum = sum.Add(p.AvgPrice)
	}
	history.PriceVolatility = volatility(prices)
	history.MinPrice = minPrice
	history.MaxPrice = maxPrice
	history.AvgPrice = sum.Div(decimal.NewFromInt(int64(len(points))))

	return history, nil
}

// decimalSum 汇总日线序列的交易量
func decimalSum(points []provider.PriceHistoryPoint) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(p.Volume)
	}
	return sum
}

// changeRate 计算首尾变化百分比
// 基准值为 0 时变化率无定义, 约定返回 0
func changeRate(first, last decimal.Decimal) float64 {
	if first.IsZero() {
		return 0
	}
	return last.Sub(first).Div(first).InexactFloat64() * 100
}

// volatility 计算价格序列的波动率 (总体标准差 / 均值)
// 样本不足两个或均值为 0 时返回 0
func volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	mean := utils.Mean(prices)
	if mean == 0 {
		return 0
	}
	return utils.Stdev(prices) / mean
}
