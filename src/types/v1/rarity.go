package types

// TraitScore 单条属性的稀有度分数
// rarity_score = total_items / count, percentage = 100 * count / total_items
type TraitScore struct {
	TraitType   string  `json:"trait_type"`   // 属性名
	Value       string  `json:"value"`        // 属性值
	Count       int64   `json:"count"`        // 拥有该属性的 NFT 数量
	RarityScore float64 `json:"rarity_score"` // 稀有度分数 (count >= 1 时恒 >= 1)
	Percentage  float64 `json:"percentage"`   // 占比百分比
}

// RarityInfo NFT 稀有度计算结果
type RarityInfo struct {
	NFTAddress          string       `json:"nft_address"`          // NFT 地址
	NFTName             string       `json:"nft_name"`             // NFT 名称
	CollectionAddress   string       `json:"collection_address"`   // 所属集合地址
	Chain               string       `json:"chain"`                // 链名称
	TotalItems          int64        `json:"total_items"`          // 集合 NFT 总数
	TraitScores         []TraitScore `json:"trait_scores"`         // 各属性分数明细
	StatisticalScore    float64      `json:"statistical_score"`    // 各属性分数之和
	MultiplicativeScore float64      `json:"multiplicative_score"` // 各属性分数之积 (无可计分属性时为 1)
	RarityRank          int64        `json:"rarity_rank"`          // 集合内排名 (1 = 最稀有)
	RarityPercentage    float64      `json:"rarity_percentage"`    // 100 * rank / total_items
	RankEstimated       bool         `json:"rank_estimated"`       // 排名是否为估算值 (缺少全量分数分布时)
}
