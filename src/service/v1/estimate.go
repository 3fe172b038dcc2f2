package service

import (
	"context"

	"github.com/ProjectsTask/EasySwapBase/logger/xzap"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/service/svc"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/types/v1"
)

// 估值中 (地板价 + 稀有度溢价) 与可比成交均价的混合权重
const (
	floorBlendWeight = 0.7
	salesBlendWeight = 0.3
)

// premiumBand 稀有度溢价档位
// 档位按百分位从高到低依次匹配, threshold 为开区间下界
type premiumBand struct {
	name       string
	threshold  float64
	multiplier float64
}

// premiumBands 溢价档位表: 越稀有的 NFT 相对地板价的溢价越高
// 底部半区不享受稀有度溢价
var premiumBands = []premiumBand{
	{name: "top_1", threshold: 0.99, multiplier: 3.0},
	{name: "top_5", threshold: 0.95, multiplier: 1.5},
	{name: "top_10", threshold: 0.90, multiplier: 0.8},
	{name: "top_20", threshold: 0.80, multiplier: 0.5},
	{name: "top_50", threshold: 0.50, multiplier: 0.2},
	{name: "bottom_50", threshold: -1, multiplier: 0},
}

// matchPremiumBand 按稀有度百分位匹配溢价档位
func matchPremiumBand(percentile float64) premiumBand {
	for _, band := range premiumBands {
		if percentile > band.threshold {
			return band
		}
	}
	return premiumBands[len(premiumBands)-1]
}

// GetValueEstimate 估算 NFT 的市场价值
// 功能:
// 1. 计算 NFT 稀有度, 由排名得到百分位 (total - rank) / total
// 2. 按百分位匹配溢价档位, 稀有度溢价 = 集合地板价 * 档位倍数
// 3. 拉取可比成交记录; 有成交时按 0.7/0.3 混合 (地板价 + 溢价) 与成交均价,
//    无成交时估值完全由地板价路径决定
func GetValueEstimate(ctx context.Context, svcCtx *svc.ServerCtx, nftAddress, collectionIdentifier, chain string) (*types.ValueEstimate, error) {
	// 1. 稀有度与百分位
	rarity, err := GetNFTRarity(ctx, svcCtx, nftAddress, collectionIdentifier, chain)
	if err != nil {
		return nil, err
	}
	percentile := 0.0
	if rarity.TotalItems > 0 {
		percentile = float64(rarity.TotalItems-rarity.RarityRank) / float64(rarity.TotalItems)
	}

	// 2. 集合地板价与稀有度溢价
	// 地板价对估值非必需 (稀有度才是), 获取失败按零地板价降级
	floor := decimal.Zero
	quotes, err := svcCtx.Provider.FetchFloorPrice(ctx, rarity.CollectionAddress, provider.MarketplaceAll, chain)
	if err != nil {
		xzap.WithContext(ctx).Warn("failed on fetch floor price for estimate",
			zap.Error(err), zap.String("collection", rarity.CollectionAddress))
	} else {
		floor, _, _ = aggregateFloor(quotes)
	}

	band := matchPremiumBand(percentile)
	premium := floor.Mul(decimal.NewFromFloat(band.multiplier))

	// 3. 可比成交混合; 成交记录获取失败按无成交降级
	sales, err := svcCtx.Provider.FetchComparableSales(ctx, nftAddress, chain)
	if err != nil {
		xzap.WithContext(ctx).Warn("failed on fetch comparable sales",
			zap.Error(err), zap.String("nft", nftAddress))
		sales = nil
	}

	floorPath := floor.Add(premium)
	salesMean := decimal.Zero
	floorWeight, salesWeight := 1.0, 0.0
	estimated := floorPath
	if len(sales) > 0 {
		sum := decimal.Zero
		for _, price := range sales {
			sum = sum.Add(price)
		}
		salesMean = sum.Div(decimal.NewFromInt(int64(len(sales))))
		floorWeight, salesWeight = floorBlendWeight, salesBlendWeight
		estimated = floorPath.Mul(decimal.NewFromFloat(floorBlendWeight)).
			Add(salesMean.Mul(decimal.NewFromFloat(salesBlendWeight)))
	}

	return &types.ValueEstimate{
		NFTAddress:           rarity.NFTAddress,
		CollectionAddress:    rarity.CollectionAddress,
		Chain:                chain,
		Currency:             provider.ChainCurrency[chain],
		FloorPrice:           floor,
		RarityRank:           rarity.RarityRank,
		RankEstimated:        rarity.RankEstimated,
		RarityPercentile:     percentile,
		PremiumBand:          band.name,
		PremiumMultiplier:    band.multiplier,
		RarityPremium:        premium,
		ComparableSalesCount: len(sales),
		ComparableSalesMean:  salesMean,
		FloorWeight:          floorWeight,
		SalesWeight:          salesWeight,
		EstimatedValue:       estimated,
	}, nil
}
