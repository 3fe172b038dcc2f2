package types

import "github.com/shopspring/decimal"

// TraitValueStat 单个属性值的分布统计
type TraitValueStat struct {
	Value       string  `json:"value"`        // 属性值
	Count       int64   `json:"count"`        // 拥有数量
	Percentage  float64 `json:"percentage"`   // 占比百分比
	RarityScore float64 `json:"rarity_score"` // 稀有度分数 (total_items / count)
}

// TraitDistribution 单个属性类型的分布
// Values 按 count 升序排列 (最稀有的在前)
type TraitDistribution struct {
	CollectionAddress string           `json:"collection_address"` // 集合地址
	TraitType         string           `json:"trait_type"`         // 属性类型
	TotalItems        int64            `json:"total_items"`        // 集合 NFT 总数
	UniqueValues      int              `json:"unique_values"`      // 该类型下的属性值数量
	Values            []TraitValueStat `json:"values"`             // 各属性值分布
}

// TraitOverviewEntry 属性总览中单个类型的摘要
type TraitOverviewEntry struct {
	TraitType            string  `json:"trait_type"`             // 属性类型
	UniqueValues         int     `json:"unique_values"`          // 属性值数量
	MostCommonValue      string  `json:"most_common_value"`      // 最常见属性值 (并列时取先遇到的)
	MostCommonCount      int64   `json:"most_common_count"`      // 最常见属性值的数量
	MostCommonPercentage float64 `json:"most_common_percentage"` // 最常见属性值的占比
}

// TraitOverview 集合全部属性类型的总览
// Traits 按 unique_values 降序排列 (多样性最高的类型在前)
type TraitOverview struct {
	CollectionAddress string               `json:"collection_address"` // 集合地址
	TotalItems        int64                `json:"total_items"`        // 集合 NFT 总数
	Traits            []TraitOverviewEntry `json:"traits"`             // 各属性类型摘要
}

// TraitFloorValue 单个属性值的地板价与溢价
// floor_premium_percentage 在 collection_floor = 0 时恒为 0
type TraitFloorValue struct {
	Value                  string          `json:"value"`                    // 属性值
	TraitFloor             decimal.Decimal `json:"trait_floor"`              // 该属性的地板价
	FloorPremiumPercentage float64         `json:"floor_premium_percentage"` // 相对集合地板价的溢价百分比
}

// TraitFloorStats 属性地板价统计结果
type TraitFloorStats struct {
	CollectionAddress string            `json:"collection_address"` // 集合地址
	TraitType         string            `json:"trait_type"`         // 属性类型
	Chain             string            `json:"chain"`              // 链名称
	Currency          string            `json:"currency"`           // 计价货币
	CollectionFloor   decimal.Decimal   `json:"collection_floor"`   // 集合地板价
	Values            []TraitFloorValue `json:"values"`             // 各属性值的地板价与溢价
}
