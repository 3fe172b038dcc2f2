package service

import (
	"context"
	"math"

	"github.com/ProjectsTask/EasySwapBase/logger/xzap"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/service/svc"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/types/v1"
)

// GetNFTRarity 计算 NFT 稀有度
// 功能:
// 1. 拉取 NFT 快照与所属集合的属性统计表
// 2. 逐属性计算稀有度分数 (total_items / count), 集合统计表中不存在的属性跳过
// 3. 汇总统计分数(求和)与乘法分数(求积, 无可计分属性时为 1)
// 4. 基于集合分数分布计算集合内排名, 分布缺失时转入估算路径
func GetNFTRarity(ctx context.Context, svcCtx *svc.ServerCtx, nftAddress, collectionIdentifier, chain string) (*types.RarityInfo, error) {
	// 1. 查询 NFT 与集合快照
	// 未指定集合时使用 NFT 自身记录的所属集合
	nft, err := svcCtx.Provider.FetchNFT(ctx, nftAddress, chain)
	if err != nil {
		return nil, wrapNFTErr(err, nftAddress)
	}
	if collectionIdentifier == "" {
		collectionIdentifier = nft.CollectionAddress
	}
	collection, err := svcCtx.Provider.FetchCollection(ctx, collectionIdentifier, chain)
	if err != nil {
		return nil, wrapCollectionErr(err, collectionIdentifier)
	}

	// 2. 逐属性打分
	// 统计表中没有的属性(数据缺口)不参与任何分数, 不视为错误
	traitScores := make([]types.TraitScore, 0, len(nft.Attributes))
	statistical := 0.0
	multiplicative := 1.0
	for _, attr := range nft.Attributes {
		count := collection.TraitCounts[attr.TraitType][attr.Value]
		if count <= 0 || collection.TotalItems <= 0 {
			continue
		}
		score := float64(collection.TotalItems) / float64(count)
		traitScores = append(traitScores, types.TraitScore{
			TraitType:   attr.TraitType,
			Value:       attr.Value,
			Count:       count,
			RarityScore: score,
			Percentage:  100 * float64(count) / float64(collection.TotalItems),
		})
		statistical += score
		multiplicative *= score
	}

	// 3. 计算集合内排名
	rank, estimated := rankByDistribution(ctx, svcCtx, collection, collectionIdentifier, chain, statistical, traitScores)

	rarityPercentage := 0.0
	if collection.TotalItems > 0 {
		rarityPercentage = 100 * float64(rank) / float64(collection.TotalItems)
	}

	return &types.RarityInfo{
		NFTAddress:          nft.Address,
		NFTName:             nft.Name,
		CollectionAddress:   collection.Address,
		Chain:               chain,
		TotalItems:          collection.TotalItems,
		TraitScores:         traitScores,
		StatisticalScore:    statistical,
		MultiplicativeScore: multiplicative,
		RarityRank:          rank,
		RarityPercentage:    rarityPercentage,
		RankEstimated:       estimated,
	}, nil
}

// rankByDistribution 由集合分数分布推导排名 (1 = 最稀有)
// 三种路径:
//  1. 全量分布: 排名 = 分数更高的 Item 数 + 1, 为精确值
//  2. 抽样分布: 按样本中的相对位置外推到全集, 标记为估算
//  3. 分布缺失: 以最稀有属性的持有数估算 (rank ≈ ceil(count/2)), 标记为估算
func rankByDistribution(ctx context.Context, svcCtx *svc.ServerCtx, collection *provider.Collection,
	identifier, chain string, statistical float64, traitScores []types.TraitScore) (int64, bool) {
	if collection.TotalItems <= 0 {
		return 0, true
	}

	distribution, err := svcCtx.Provider.FetchScoreDistribution(ctx, identifier, chain)
	if err != nil {
		// 分布获取失败不阻断稀有度计算, 降级到估算路径
		xzap.WithContext(ctx).Warn("failed on fetch score distribution",
			zap.Error(err), zap.String("collection", identifier))
		distribution = nil
	}

	if len(distribution) > 0 {
		greater := 0
		for _, score := range distribution {
			if score > statistical {
				greater++
			}
		}
		if int64(len(distribution)) >= collection.TotalItems {
			return clampRank(int64(greater)+1, collection.TotalItems), false
		}
		// 抽样外推: 样本位置按比例放大到全集
		scaled := math.Ceil(float64(greater+1) * float64(collection.TotalItems) / float64(len(distribution)))
		return clampRank(int64(scaled), collection.TotalItems), true
	}

	// 分布缺失: 最稀有属性的持有者约有一半排在该 NFT 之前
	if len(traitScores) == 0 {
		return collection.TotalItems, true
	}
	rarest := traitScores[0].Count
	for _, ts := range traitScores[1:] {
		if ts.Count < rarest {
			rarest = ts.Count
		}
	}
	return clampRank(int64(math.Ceil(float64(rarest)/2)), collection.TotalItems), true
}

// clampRank 将排名约束到 [1, totalItems]
func clampRank(rank, totalItems int64) int64 {
	if rank < 1 {
		return 1
	}
	if rank > totalItems {
		return totalItems
	}
	return rank
}
