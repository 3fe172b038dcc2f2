package types

import (
	"github.com/shopspring/decimal"
)

type CommonResp struct {
	Result interface{} `json:"result"`
}

// MarketplaceFloor 单个市场的地板价
type MarketplaceFloor struct {
	Marketplace string          `json:"marketplace"` // 市场名称
	FloorPrice  decimal.Decimal `json:"floor_price"` // 地板价
}

// FloorPriceStats 跨市场地板价聚合结果
// 无任何市场报价时 Lowest/Average 为 0, LowestMarketplace 为 "none"
// (市场无覆盖是合法的外部状态, 不作为错误处理)
type FloorPriceStats struct {
	CollectionAddress string             `json:"collection_address"` // 集合地址
	CollectionName    string             `json:"collection_name"`    // 集合名称
	Chain             string             `json:"chain"`              // 链名称
	Currency          string             `json:"currency"`           // 计价货币
	Quotes            []MarketplaceFloor `json:"quotes"`             // 各市场报价
	LowestFloor       decimal.Decimal    `json:"lowest_floor"`       // 最低地板价
	LowestMarketplace string             `json:"lowest_marketplace"` // 最低价所在市场 (并列时取先遇到的)
	AverageFloor      decimal.Decimal    `json:"average_floor"`      // 平均地板价
}

// CollectionStats 集合统计信息
// 聚合了集合快照、地板价与 7 日走势
type CollectionStats struct {
	Address          string          `json:"address"`            // 集合地址
	Name             string          `json:"name"`               // 集合名称
	Chain            string          `json:"chain"`              // 链名称
	ImageUri         string          `json:"image_uri"`          // 集合图片
	TotalItems       int64           `json:"total_items"`        // NFT 总数
	UniqueTraitTypes int             `json:"unique_trait_types"` // 属性类型数量
	FloorPrice       decimal.Decimal `json:"floor_price"`        // 最低地板价 (跨市场)
	AverageFloor     decimal.Decimal `json:"average_floor"`      // 平均地板价
	Currency         string          `json:"currency"`           // 计价货币
	Volume7d         decimal.Decimal `json:"volume_7d"`          // 7 日交易量
	PriceChange7d    float64         `json:"price_change_7d"`    // 7 日价格变化百分比
}
