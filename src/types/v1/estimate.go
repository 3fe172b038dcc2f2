package types

import "github.com/shopspring/decimal"

// ValueEstimate 估值结果
// 除最终估值外, 每个贡献因子都单独列出, 便于审计估值来源
type ValueEstimate struct {
	NFTAddress           string          `json:"nft_address"`            // NFT 地址
	CollectionAddress    string          `json:"collection_address"`     // 所属集合地址
	Chain                string          `json:"chain"`                  // 链名称
	Currency             string          `json:"currency"`               // 计价货币
	FloorPrice           decimal.Decimal `json:"floor_price"`            // 集合地板价
	RarityRank           int64           `json:"rarity_rank"`            // 稀有度排名
	RankEstimated        bool            `json:"rank_estimated"`         // 排名是否为估算值
	RarityPercentile     float64         `json:"rarity_percentile"`      // (total_items - rank) / total_items
	PremiumBand          string          `json:"premium_band"`           // 命中的溢价档位
	PremiumMultiplier    float64         `json:"premium_multiplier"`     // 溢价倍数
	RarityPremium        decimal.Decimal `json:"rarity_premium"`         // floor_price * multiplier
	ComparableSalesCount int             `json:"comparable_sales_count"` // 可比成交数量
	ComparableSalesMean  decimal.Decimal `json:"comparable_sales_mean"`  // 可比成交均价 (无成交时为 0)
	FloorWeight          float64         `json:"floor_weight"`           // (floor + premium) 部分的权重
	SalesWeight          float64         `json:"sales_weight"`           // 可比成交部分的权重
	EstimatedValue       decimal.Decimal `json:"estimated_value"`        // 最终估值
}
