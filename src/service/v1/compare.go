package service

import (
	"context"
	"sort"
	"sync"

	"github.com/ProjectsTask/EasySwapBase/logger/xzap"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/common/utils"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/service/svc"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/types/v1"
)

// 对比/热门集合的排序指标
const (
	MetricVolume        = "volume"
	MetricFloorPrice    = "floor_price"
	MetricPriceChange7d = "price_change_7d"
	MetricTotalItems    = "total_items"
)

// 热门集合的候选池与返回条数上限
const (
	trendingDefaultLimit = 10
	trendingMaxLimit     = 50
	trendingPoolFactor   = 2
)

// IsSupportedMetric 判断排序指标是否合法
func IsSupportedMetric(metric string) bool {
	switch metric {
	case MetricVolume, MetricFloorPrice, MetricPriceChange7d, MetricTotalItems:
		return true
	}
	return false
}

// CompareCollections 横向对比多个集合
// 功能:
// 1. 校验集合数量, 少于两个无从对比
// 2. 并发拉取每个集合的统计信息
// 3. 统计失败的集合从结果中剔除(只记录日志), 全部失败才报错
// 4. 按首个请求指标降序排列, 并列保持请求顺序
func CompareCollections(ctx context.Context, svcCtx *svc.ServerCtx, addresses []string, metric, chain string) (*types.CompareResult, error) {
	// 1. 数量校验
	if len(addresses) < 2 {
		return nil, errors.Wrapf(ErrTooFewCollections, "got %d", len(addresses))
	}

	// 2. 并发拉取各集合统计
	entries := make([]*types.ComparisonEntry, len(addresses))
	var wg sync.WaitGroup
	for i, address := range addresses {
		wg.Add(1)
		go func(i int, address string) {
			defer wg.Done()
			stats, err := GetCollectionStats(ctx, svcCtx, address, chain)
			if err != nil {
				// 单个集合失败不拖垮整个对比
				xzap.WithContext(ctx).Warn("failed on load collection for comparison",
					zap.Error(err), zap.String("address", address))
				return
			}
			entries[i] = &types.ComparisonEntry{
				Address:       stats.Address,
				Name:          stats.Name,
				TotalItems:    stats.TotalItems,
				FloorPrice:    stats.FloorPrice,
				Volume7d:      stats.Volume7d,
				PriceChange7d: stats.PriceChange7d,
			}
		}(i, address)
	}
	wg.Wait()

	// 3. 剔除失败集合, 保持请求顺序
	collections := make([]types.ComparisonEntry, 0, len(entries))
	for _, entry := range entries {
		if entry != nil {
			collections = append(collections, *entry)
		}
	}
	if len(collections) == 0 {
		return nil, errors.Wrap(ErrDataSource, "all collections failed to load")
	}

	// 4. 按指标降序排列
	sortByMetric(collections, metric)

	return &types.CompareResult{
		Chain:       chain,
		Metric:      metric,
		Collections: collections,
	}, nil
}

// sortByMetric 按指标降序稳定排序
func sortByMetric(collections []types.ComparisonEntry, metric string) {
	sort.SliceStable(collections, func(i, j int) bool {
		a, b := collections[i], collections[j]
		switch metric {
		case MetricFloorPrice:
			return a.FloorPrice.GreaterThan(b.FloorPrice)
		case MetricPriceChange7d:
			return a.PriceChange7d > b.PriceChange7d
		case MetricTotalItems:
			return a.TotalItems > b.TotalItems
		default:
			return a.Volume7d.GreaterThan(b.Volume7d)
		}
	})
}

// GetTrending 获取窗口内交易量最高的集合
// 功能:
// 1. 从数据源取 limit * 2 的候选池 (部分候选可能无成交或加载失败)
// 2. 并发拉取每个候选的窗口日线, 聚合交易量与变化率
// 3. 按交易量降序排列后截断到 limit
func GetTrending(ctx context.Context, svcCtx *svc.ServerCtx, timePeriod, chain string, limit int) ([]types.TrendingCollection, error) {
	if limit <= 0 {
		limit = trendingDefaultLimit
	}
	limit = utils.Min(limit, trendingMaxLimit)

	// 1. 候选池
	addresses, err := svcCtx.Provider.ListCollections(ctx, chain, limit*trendingPoolFactor)
	if err != nil {
		return nil, errors.Wrapf(ErrDataSource, "list collections: %v", err)
	}

	// 2. 并发聚合每个候选
	days := PeriodDays[timePeriod]
	entries := make([]*types.TrendingCollection, len(addresses))
	var wg sync.WaitGroup
	for i, address := range addresses {
		wg.Add(1)
		go func(i int, address string) {
			defer wg.Done()
			entry, err := trendingEntry(ctx, svcCtx, address, chain, days)
			if err != nil {
				xzap.WithContext(ctx).Warn("failed on load trending candidate",
					zap.Error(err), zap.String("address", address))
				return
			}
			entries[i] = entry
		}(i, address)
	}
	wg.Wait()

	// 3. 排序截断
	trending := make([]types.TrendingCollection, 0, len(entries))
	for _, entry := range entries {
		if entry != nil {
			trending = append(trending, *entry)
		}
	}
	sort.SliceStable(trending, func(i, j int) bool {
		return trending[i].Volume.GreaterThan(trending[j].Volume)
	})
	if len(trending) > limit {
		trending = trending[:limit]
	}

	return trending, nil
}

// trendingEntry 聚合单个候选集合的交易量/变化率/地板价
func trendingEntry(ctx context.Context, svcCtx *svc.ServerCtx, address, chain string, days int) (*types.TrendingCollection, error) {
	stats, err := GetCollectionStats(ctx, svcCtx, address, chain)
	if err != nil {
		return nil, err
	}

	entry := &types.TrendingCollection{
		Address:     stats.Address,
		Name:        stats.Name,
		FloorPrice:  stats.FloorPrice,
		Volume:      stats.Volume7d,
		PriceChange: stats.PriceChange7d,
	}
	// 非 7 日窗口需要单独拉取日线重新聚合
	if days != PeriodDays[Period7d] {
		points, err := svcCtx.Provider.FetchPriceHistory(ctx, stats.Address, days, chain)
		if err != nil {
			return nil, wrapCollectionErr(err, address)
		}
		entry.Volume = decimalSum(points)
		entry.PriceChange = 0
		if len(points) > 0 {
			entry.PriceChange = changeRate(points[0].AvgPrice, points[len(points)-1].AvgPrice)
		}
	}

	return entry, nil
}
