package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/cache"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/service/svc"
)

// stubProvider 可逐方法注入行为的测试数据源
// 未注入的方法默认返回 ErrNotFound / 空结果
type stubProvider struct {
	fetchCollection      func(ctx context.Context, identifier, chain string) (*provider.Collection, error)
	fetchNFT             func(ctx context.Context, address, chain string) (*provider.NFT, error)
	fetchFloorPrice      func(ctx context.Context, identifier, marketplace, chain string) ([]provider.FloorPriceQuote, error)
	fetchPriceHistory    func(ctx context.Context, identifier string, days int, chain string) ([]provider.PriceHistoryPoint, error)
	fetchTraitFloors     func(ctx context.Context, identifier, traitType, chain string) (map[string]decimal.Decimal, error)
	fetchComparableSales func(ctx context.Context, nftAddress, chain string) ([]decimal.Decimal, error)
	fetchScores          func(ctx context.Context, identifier, chain string) ([]float64, error)
	listCollections      func(ctx context.Context, chain string, limit int) ([]string, error)
}

func (s *stubProvider) FetchCollection(ctx context.Context, identifier, chain string) (*provider.Collection, error) {
	if s.fetchCollection != nil {
		return s.fetchCollection(ctx, identifier, chain)
	}
	return nil, provider.ErrNotFound
}

func (s *stubProvider) FetchNFT(ctx context.Context, address, chain string) (*provider.NFT, error) {
	if s.fetchNFT != nil {
		return s.fetchNFT(ctx, address, chain)
	}
	return nil, provider.ErrNotFound
}

func (s *stubProvider) FetchFloorPrice(ctx context.Context, identifier, marketplace, chain string) ([]provider.FloorPriceQuote, error) {
	if s.fetchFloorPrice != nil {
		return s.fetchFloorPrice(ctx, identifier, marketplace, chain)
	}
	return nil, nil
}

func (s *stubProvider) FetchPriceHistory(ctx context.Context, identifier string, days int, chain string) ([]provider.PriceHistoryPoint, error) {
	if s.fetchPriceHistory != nil {
		return s.fetchPriceHistory(ctx, identifier, days, chain)
	}
	return nil, nil
}

func (s *stubProvider) FetchTraitFloorPrices(ctx context.Context, identifier, traitType, chain string) (map[string]decimal.Decimal, error) {
	if s.fetchTraitFloors != nil {
		return s.fetchTraitFloors(ctx, identifier, traitType, chain)
	}
	return nil, nil
}

func (s *stubProvider) FetchComparableSales(ctx context.Context, nftAddress, chain string) ([]decimal.Decimal, error) {
	if s.fetchComparableSales != nil {
		return s.fetchComparableSales(ctx, nftAddress, chain)
	}
	return nil, nil
}

func (s *stubProvider) FetchScoreDistribution(ctx context.Context, identifier, chain string) ([]float64, error) {
	if s.fetchScores != nil {
		return s.fetchScores(ctx, identifier, chain)
	}
	return nil, nil
}

func (s *stubProvider) ListCollections(ctx context.Context, chain string, limit int) ([]string, error) {
	if s.listCollections != nil {
		return s.listCollections(ctx, chain, limit)
	}
	return nil, nil
}

// newTestCtx 构造使用进程内缓存的测试服务上下文
func newTestCtx(p provider.Provider) *svc.ServerCtx {
	return svc.NewServerCtx(
		svc.WithProvider(p),
		svc.WithStatsCache(cache.NewMemory(cache.DefaultExpireSeconds)),
		svc.WithFloorCache(cache.NewMemory(cache.DefaultExpireSeconds)),
	)
}

// testCollection 构造一个固定属性统计表的集合快照
func testCollection(address string, totalItems int64, traitCounts map[string]map[string]int64) *provider.Collection {
	return &provider.Collection{
		Address:     address,
		Name:        "Test Collection",
		Chain:       provider.ChainSolana,
		TotalItems:  totalItems,
		TraitCounts: traitCounts,
	}
}

// quote 构造单个市场报价
func quote(marketplace string, price float64) provider.FloorPriceQuote {
	return provider.FloorPriceQuote{
		Marketplace: marketplace,
		FloorPrice:  decimal.NewFromFloat(price),
		Currency:    "SOL",
	}
}
