package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
)

const (
	testNFTAddr        = "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2"
	testCollectionAddr = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
)

func rarityStub(totalItems int64, attrCount int64, scores []float64) *stubProvider {
	return &stubProvider{
		fetchNFT: func(ctx context.Context, address, chain string) (*provider.NFT, error) {
			return &provider.NFT{
				Address:           address,
				Name:              "Test #1",
				CollectionAddress: testCollectionAddr,
				Attributes: []provider.Attribute{
					{TraitType: "Background", Value: "Gold"},
				},
			}, nil
		},
		fetchCollection: func(ctx context.Context, identifier, chain string) (*provider.Collection, error) {
			return testCollection(testCollectionAddr, totalItems, map[string]map[string]int64{
				"Background": {"Gold": attrCount},
			}), nil
		},
		fetchScores: func(ctx context.Context, identifier, chain string) ([]float64, error) {
			return scores, nil
		},
	}
}

func TestGetNFTRarity(t *testing.T) {
	t.Run("trait_score_from_counts", func(t *testing.T) {
		// 10000 个 NFT 中出现 50 次: 分数 200, 占比 0.5%
		svcCtx := newTestCtx(rarityStub(10000, 50, nil))
		res, err := GetNFTRarity(context.Background(), svcCtx, testNFTAddr, testCollectionAddr, provider.ChainSolana)
		require.NoError(t, err)

		require.Len(t, res.TraitScores, 1)
		require.InDelta(t, 200.0, res.TraitScores[0].RarityScore, 1e-9)
		require.InDelta(t, 0.5, res.TraitScores[0].Percentage, 1e-9)
		require.InDelta(t, 200.0, res.StatisticalScore, 1e-9)
		require.InDelta(t, 200.0, res.MultiplicativeScore, 1e-9)
	})

	t.Run("missing_trait_skipped", func(t *testing.T) {
		stub := rarityStub(10000, 50, nil)
		stub.fetchNFT = func(ctx context.Context, address, chain string) (*provider.NFT, error) {
			return &provider.NFT{
				Address:           address,
				CollectionAddress: testCollectionAddr,
				Attributes: []provider.Attribute{
					{TraitType: "Background", Value: "Gold"},
					{TraitType: "Hat", Value: "Crown"}, // 统计表中不存在
				},
			}, nil
		}
		svcCtx := newTestCtx(stub)
		res, err := GetNFTRarity(context.Background(), svcCtx, testNFTAddr, testCollectionAddr, provider.ChainSolana)
		require.NoError(t, err)

		// 缺失属性不计分, 也不影响乘法分数
		require.Len(t, res.TraitScores, 1)
		require.InDelta(t, 200.0, res.StatisticalScore, 1e-9)
		require.InDelta(t, 200.0, res.MultiplicativeScore, 1e-9)
	})

	t.Run("no_scorable_traits", func(t *testing.T) {
		stub := rarityStub(10000, 50, nil)
		stub.fetchNFT = func(ctx context.Context, address, chain string) (*provider.NFT, error) {
			return &provider.NFT{Address: address, CollectionAddress: testCollectionAddr}, nil
		}
		svcCtx := newTestCtx(stub)
		res, err := GetNFTRarity(context.Background(), svcCtx, testNFTAddr, testCollectionAddr, provider.ChainSolana)
		require.NoError(t, err)

		// 乘法分数的恒等元是 1
		require.Zero(t, res.StatisticalScore)
		require.InDelta(t, 1.0, res.MultiplicativeScore, 1e-9)
	})

	t.Run("exact_rank_from_full_distribution", func(t *testing.T) {
		// 全量分布: 399 个分数高于 200, 精确排名 400
		scores := make([]float64, 10000)
		for i := range scores {
			if i < 399 {
				scores[i] = 300
			} else {
				scores[i] = 100
			}
		}
		svcCtx := newTestCtx(rarityStub(10000, 50, scores))
		res, err := GetNFTRarity(context.Background(), svcCtx, testNFTAddr, testCollectionAddr, provider.ChainSolana)
		require.NoError(t, err)

		require.EqualValues(t, 400, res.RarityRank)
		require.False(t, res.RankEstimated)
		require.InDelta(t, 4.0, res.RarityPercentage, 1e-9)
	})

	t.Run("estimated_rank_without_distribution", func(t *testing.T) {
		// 分布缺失: rank ≈ ceil(最稀有属性数量 / 2)
		svcCtx := newTestCtx(rarityStub(10000, 50, nil))
		res, err := GetNFTRarity(context.Background(), svcCtx, testNFTAddr, testCollectionAddr, provider.ChainSolana)
		require.NoError(t, err)

		require.EqualValues(t, 25, res.RarityRank)
		require.True(t, res.RankEstimated)
	})

	t.Run("sampled_distribution_extrapolates", func(t *testing.T) {
		// 抽样分布 (100 样本, 全集 10000): 位置按比例外推并标记估算
		scores := make([]float64, 100)
		for i := range scores {
			if i < 9 {
				scores[i] = 300
			} else {
				scores[i] = 100
			}
		}
		svcCtx := newTestCtx(rarityStub(10000, 50, scores))
		res, err := GetNFTRarity(context.Background(), svcCtx, testNFTAddr, testCollectionAddr, provider.ChainSolana)
		require.NoError(t, err)

		require.EqualValues(t, 1000, res.RarityRank)
		require.True(t, res.RankEstimated)
	})

	t.Run("nft_not_found", func(t *testing.T) {
		svcCtx := newTestCtx(&stubProvider{})
		_, err := GetNFTRarity(context.Background(), svcCtx, testNFTAddr, testCollectionAddr, provider.ChainSolana)
		require.ErrorIs(t, err, ErrNFTNotFound)
	})
}

func TestClampRank(t *testing.T) {
	require.EqualValues(t, 1, clampRank(0, 100))
	require.EqualValues(t, 100, clampRank(500, 100))
	require.EqualValues(t, 42, clampRank(42, 100))
}
