package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ProjectsTask/EasySwapBase/logger/xzap"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/cache"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/service/svc"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/types/v1"
)

// noMarketplace 所有市场都没有挂单时的占位市场名
const noMarketplace = "none"

// GetFloorPrice 获取集合的跨市场地板价聚合
// 功能:
// 1. 查询缓存, 命中则直接返回 (地板价与统计结果使用独立命名空间)
// 2. 未命中时拉取集合快照与各市场报价, 计算最低价/均价后回填缓存
// 所有市场都无挂单是合法状态, 返回零值聚合而非错误
func GetFloorPrice(ctx context.Context, svcCtx *svc.ServerCtx, identifier, marketplace, chain string) (*types.FloorPriceStats, error) {
	// 1. 查询缓存
	key := cache.GenFloorPriceKey(svcCtx.Project(), chain, identifier, marketplace)
	if payload, ok := svcCtx.FloorCache.Get(key); ok {
		var cached types.FloorPriceStats
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		// 反序列化失败按未命中处理, 重新计算并覆盖坏条目
		xzap.WithContext(ctx).Warn("failed on decode cached floor price", zap.String("key", key))
	}

	// 2. 回源计算
	collection, err := svcCtx.Provider.FetchCollection(ctx, identifier, chain)
	if err != nil {
		return nil, wrapCollectionErr(err, identifier)
	}
	quotes, err := svcCtx.Provider.FetchFloorPrice(ctx, collection.Address, marketplace, chain)
	if err != nil {
		return nil, wrapCollectionErr(err, identifier)
	}

	lowest, lowestMarket, average := aggregateFloor(quotes)
	stats := &types.FloorPriceStats{
		CollectionAddress: collection.Address,
		CollectionName:    collection.Name,
		Chain:             chain,
		Currency:          provider.ChainCurrency[chain],
		Quotes:            make([]types.MarketplaceFloor, 0, len(quotes)),
		LowestFloor:       lowest,
		LowestMarketplace: lowestMarket,
		AverageFloor:      average,
	}
	for _, q := range quotes {
		stats.Quotes = append(stats.Quotes, types.MarketplaceFloor{
			Marketplace: q.Marketplace,
			FloorPrice:  q.FloorPrice,
		})
	}

	// 3. 回填缓存
	putCache(ctx, svcCtx.FloorCache, key, stats)

	return stats, nil
}

// GetCollectionStats 获取集合统计信息
// 功能:
// 1. 查询缓存, 命中则直接返回
// 2. 未命中时拉取集合快照, 并发查询地板价与 7 日走势, 聚合后回填缓存
func GetCollectionStats(ctx context.Context, svcCtx *svc.ServerCtx, identifier, chain string) (*types.CollectionStats, error) {
	// 1. 查询缓存
	key := cache.GenCollectionStatsKey(svcCtx.Project(), chain, identifier)
	if payload, ok := svcCtx.StatsCache.Get(key); ok {
		var cached types.CollectionStats
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		xzap.WithContext(ctx).Warn("failed on decode cached collection stats", zap.String("key", key))
	}

	// 2. 查询集合快照 (地址解析依赖该结果, 不能并发)
	collection, err := svcCtx.Provider.FetchCollection(ctx, identifier, chain)
	if err != nil {
		return nil, wrapCollectionErr(err, identifier)
	}

	// 3. 并发查询地板价与 7 日走势
	// queryErr 由两个协程共同写入, 用互斥锁保护
	var mu sync.Mutex
	var queryErr error
	var wg sync.WaitGroup

	var quotes []provider.FloorPriceQuote
	wg.Add(1)
	go func() {
		defer wg.Done()
		result, err := svcCtx.Provider.FetchFloorPrice(ctx, collection.Address, provider.MarketplaceAll, chain)
		if err != nil {
			mu.Lock()
			queryErr = wrapCollectionErr(err, identifier)
			mu.Unlock()
			return
		}
		quotes = result
	}()

	var points []provider.PriceHistoryPoint
	wg.Add(1)
	go func() {
		defer wg.Done()
		result, err := svcCtx.Provider.FetchPriceHistory(ctx, collection.Address, PeriodDays[Period7d], chain)
		if err != nil {
			mu.Lock()
			queryErr = wrapCollectionErr(err, identifier)
			mu.Unlock()
			return
		}
		points = result
	}()

	wg.Wait()
	if queryErr != nil {
		return nil, queryErr
	}

	// 4. 聚合
	lowest, _, average := aggregateFloor(quotes)
	volume7d := decimalSum(points)
	priceChange7d := 0.0
	if len(points) > 0 {
		priceChange7d = changeRate(points[0].AvgPrice, points[len(points)-1].AvgPrice)
	}

	stats := &types.CollectionStats{
		Address:          collection.Address,
		Name:             collection.Name,
		Chain:            chain,
		ImageUri:         collection.ImageUri,
		TotalItems:       collection.TotalItems,
		UniqueTraitTypes: len(collection.TraitCounts),
		FloorPrice:       lowest,
		AverageFloor:     average,
		Currency:         provider.ChainCurrency[chain],
		Volume7d:         volume7d,
		PriceChange7d:    priceChange7d,
	}

	// 5. 回填缓存
	putCache(ctx, svcCtx.StatsCache, key, stats)

	return stats, nil
}

// aggregateFloor 聚合各市场报价: 最低价, 最低价市场, 均价
// 无报价时返回零值与占位市场名; 并列最低价取先遇到的市场
func aggregateFloor(quotes []provider.FloorPriceQuote) (decimal.Decimal, string, decimal.Decimal) {
	if len(quotes) == 0 {
		return decimal.Zero, noMarketplace, decimal.Zero
	}

	lowest := quotes[0].FloorPrice
	lowestMarket := quotes[0].Marketplace
	sum := decimal.Zero
	for _, q := range quotes {
		if q.FloorPrice.LessThan(lowest) {
			lowest = q.FloorPrice
			lowestMarket = q.Marketplace
		}
		sum = sum.Add(q.FloorPrice)
	}

	return lowest, lowestMarket, sum.Div(decimal.NewFromInt(int64(len(quotes))))
}

// putCache 序列化结果并写入缓存
// 序列化失败只记录日志, 不影响本次请求的返回
func putCache(ctx context.Context, store cache.Store, key string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		xzap.WithContext(ctx).Error("failed on encode cache entry", zap.Error(err), zap.String("key", key))
		return
	}
	store.Put(key, payload)
}
