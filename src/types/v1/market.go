package types

import "github.com/shopspring/decimal"

// PricePoint 单日价格/交易量数据点
type PricePoint struct {
	Date     string          `json:"date"`      // 日期 (YYYY-MM-DD)
	AvgPrice decimal.Decimal `json:"avg_price"` // 当日平均成交价
	Volume   decimal.Decimal `json:"volume"`    // 当日交易量
}

// PriceHistory 历史价格走势统计
// 原始日线与衍生统计字段合并在同一个结果对象中返回
type PriceHistory struct {
	CollectionAddress      string          `json:"collection_address"`       // 集合地址
	Chain                  string          `json:"chain"`                    // 链名称
	TimePeriod             string          `json:"time_period"`              // 时间窗口 (1d/7d/30d/90d/all)
	Currency               string          `json:"currency"`                 // 计价货币
	Points                 []PricePoint    `json:"points"`                   // 原始日线序列
	PriceChangePercentage  float64         `json:"price_change_percentage"`  // 首尾价格变化百分比 (首价为 0 时为 0)
	VolumeChangePercentage float64         `json:"volume_change_percentage"` // 首尾交易量变化百分比 (同上)
	PriceVolatility        float64         `json:"price_volatility"`         // 波动率 stdev/mean (样本不足或均值为 0 时为 0)
	MinPrice               decimal.Decimal `json:"min_price"`                // 窗口内最低均价
	MaxPrice               decimal.Decimal `json:"max_price"`                // 窗口内最高均价
	AvgPrice               decimal.Decimal `json:"avg_price"`                // 窗口内平均价
}

// ComparisonEntry 集合横向对比中的单条记录
type ComparisonEntry struct {
	Address       string          `json:"address"`         // 集合地址
	Name          string          `json:"name"`            // 集合名称
	TotalItems    int64           `json:"total_items"`     // NFT 总数
	FloorPrice    decimal.Decimal `json:"floor_price"`     // 最低地板价
	Volume7d      decimal.Decimal `json:"volume_7d"`       // 7 日交易量
	PriceChange7d float64         `json:"price_change_7d"` // 7 日价格变化百分比
}

// CompareResult 集合横向对比结果
// Collections 按首个请求指标降序排列, 并列保持请求顺序
type CompareResult struct {
	Chain       string            `json:"chain"`       // 链名称
	Metric      string            `json:"metric"`      // 排序指标
	Collections []ComparisonEntry `json:"collections"` // 对比结果 (统计失败的集合被剔除)
}

// TrendingCollection 热门集合单条记录
type TrendingCollection struct {
	Address     string          `json:"address"`      // 集合地址
	Name        string          `json:"name"`         // 集合名称
	Volume      decimal.Decimal `json:"volume"`       // 窗口内交易量
	PriceChange float64         `json:"price_change"` // 窗口内价格变化百分比
	FloorPrice  decimal.Decimal `json:"floor_price"`  // 当前最低地板价
}

// TrendingResp 热门集合响应
type TrendingResp struct {
	Result interface{} `json:"result"`
	Count  int         `json:"count"`
}
