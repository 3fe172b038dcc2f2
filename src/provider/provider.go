package provider

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// 支持的链与市场常量
const (
	ChainSolana   = "solana"
	ChainEthereum = "ethereum"
	ChainPolygon  = "polygon"

	MarketplaceAll = "all"
)

// ChainCurrency 链 -> 计价货币映射
// 报价货币由链决定, 市场维度不再单独携带货币信息
var ChainCurrency = map[string]string{
	ChainSolana:   "SOL",
	ChainEthereum: "ETH",
	ChainPolygon:  "MATIC",
}

// Marketplaces 支持查询地板价的市场列表
var Marketplaces = []string{"magic_eden", "opensea", "solanart", "raydium"}

// IsSupportedChain 判断链是否受支持
func IsSupportedChain(chain string) bool {
	_, ok := ChainCurrency[chain]
	return ok
}

// IsSupportedMarketplace 判断市场参数是否合法 ("all" 或具体市场)
func IsSupportedMarketplace(marketplace string) bool {
	if marketplace == MarketplaceAll {
		return true
	}
	for _, m := range Marketplaces {
		if m == marketplace {
			return true
		}
	}
	return false
}

// ErrNotFound 上游不存在该集合/NFT
// 数据源实现在确定资源不存在(而非访问失败)时返回该错误
var ErrNotFound = errors.New("resource not found")

// Collection 集合快照 (单次抓取的不可变视图)
type Collection struct {
	Address    string                      `json:"address"`     // 集合地址
	Name       string                      `json:"name"`        // 集合名称
	Chain      string                      `json:"chain"`       // 所在链
	ImageUri   string                      `json:"image_uri"`   // 集合图片
	TotalItems int64                       `json:"total_items"` // 集合内 NFT 总数
	// TraitCounts 属性统计表: trait_type -> trait_value -> 出现次数
	// 若每个 Item 都拥有某 trait_type, 则该类型下所有 value 的计数之和等于 TotalItems
	TraitCounts map[string]map[string]int64 `json:"trait_counts"`
}

// Attribute NFT 的单条属性 (保持元数据中的原始顺序)
type Attribute struct {
	TraitType string `json:"trait_type"` // 属性名 (e.g. Background)
	Value     string `json:"value"`      // 属性值 (e.g. Red)
}

// NFT 单个 NFT 快照
// 通过 CollectionAddress 弱引用所属集合 (仅用于查询, 不持有集合数据)
type NFT struct {
	Address           string      `json:"address"`            // NFT 地址 (Solana mint / token 地址)
	Name              string      `json:"name"`               // NFT 名称
	CollectionAddress string      `json:"collection_address"` // 所属集合地址
	ImageUri          string      `json:"image_uri"`          // 图片链接
	Attributes        []Attribute `json:"attributes"`         // 属性列表 (有序)
}

// FloorPriceQuote 单个市场的地板价报价
type FloorPriceQuote struct {
	Marketplace string          `json:"marketplace"` // 市场名称
	FloorPrice  decimal.Decimal `json:"floor_price"` // 地板价 (非负)
	Currency    string          `json:"currency"`    // 计价货币 (由链决定)
}

// PriceHistoryPoint 单日价格/交易量数据点
// 每次抓取返回所查询窗口的全新只读序列, 按日期升序排列
type PriceHistoryPoint struct {
	Date     time.Time       `json:"date"`      // 日期 (UTC, 当日零点)
	AvgPrice decimal.Decimal `json:"avg_price"` // 当日平均成交价
	Volume   decimal.Decimal `json:"volume"`    // 当日交易量
}

// Provider 行情/元数据数据源抽象
// 引擎只通过该接口获取原始数据; 上游失败以 error 形式透出,
// 引擎本身不做重试(重试策略属于数据源实现层), 超时由调用方通过 ctx 控制
type Provider interface {
	// FetchCollection 按地址或名称获取集合快照
	FetchCollection(ctx context.Context, identifier, chain string) (*Collection, error)
	// FetchNFT 按地址获取单个 NFT 快照
	FetchNFT(ctx context.Context, address, chain string) (*NFT, error)
	// FetchFloorPrice 获取集合的地板价报价; marketplace 为 "all" 时返回所有市场
	FetchFloorPrice(ctx context.Context, identifier, marketplace, chain string) ([]FloorPriceQuote, error)
	// FetchPriceHistory 获取最近 days 天的日线序列 (升序)
	FetchPriceHistory(ctx context.Context, identifier string, days int, chain string) ([]PriceHistoryPoint, error)
	// FetchTraitFloorPrices 获取指定属性类型下每个属性值的最低挂单价
	// 无挂单的属性值不出现在结果中
	FetchTraitFloorPrices(ctx context.Context, identifier, traitType, chain string) (map[string]decimal.Decimal, error)
	// FetchComparableSales 获取与指定 NFT 属性相近的近期成交价 (估值参考)
	FetchComparableSales(ctx context.Context, nftAddress, chain string) ([]decimal.Decimal, error)
	// FetchScoreDistribution 获取集合内每个 Item 的统计稀有度分数分布
	// 可返回抽样分布; 数据源不具备该能力时返回空切片 (引擎转入估算路径)
	FetchScoreDistribution(ctx context.Context, identifier, chain string) ([]float64, error)
	// ListCollections 列出链上已收录的集合地址 (用于热门集合计算)
	ListCollections(ctx context.Context, chain string, limit int) ([]string, error)
}
