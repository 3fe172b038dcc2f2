package provider

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/shopspring/decimal"
)

// Mock 确定性模拟数据源
// 功能: 不依赖任何外部服务, 由标识符哈希推导出稳定的模拟数据
// 用途: 本地运行的默认数据源, 以及引擎的测试替身
// 同一标识符的多次抓取返回相同快照, 便于验证缓存行为
type Mock struct{}

// NewMock 创建模拟数据源
func NewMock() *Mock {
	return &Mock{}
}

// mockTraitTypes 固定的属性类型遍历顺序
var mockTraitTypes = []string{"Background", "Eyes", "Mouth", "Hat", "Fur"}

// mockTraitValues 所有模拟集合共享的属性词表
// NFT 与集合使用同一词表, 保证模拟 NFT 的属性总能在集合统计表中命中
var mockTraitValues = map[string][]string{
	"Background": {"Red", "Blue", "Green", "Purple", "Gold", "Black", "White", "Cyan"},
	"Eyes":       {"Normal", "Laser", "Sleepy", "Wink", "Zombie", "Hypno"},
	"Mouth":      {"Smile", "Frown", "Open", "Gold Teeth", "Pipe"},
	"Hat":        {"None", "Cap", "Crown", "Halo", "Beanie", "Fedora", "Top Hat"},
	"Fur":        {"Brown", "Golden", "Cream", "Zombie", "Robot", "Noise"},
}

// base58Charset Solana 风格地址字符集
const base58Charset = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// mockHash 计算字符串的 FNV-64a 哈希
// 所有模拟数据都由该哈希值推导
func mockHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// mockAddress 由哈希值推导一个 Base58 形态的伪地址
func mockAddress(seed uint64) string {
	buf := make([]byte, 44)
	state := seed
	for i := range buf {
		// 线性同余推进, 保证 44 位字符互不相同的伪随机分布
		state = state*6364136223846793005 + 1442695040888963407
		buf[i] = base58Charset[state%uint64(len(base58Charset))]
	}
	return string(buf)
}

// FetchCollection 生成集合快照
// TotalItems 在 [5000, 10000] 区间, 每个 trait_type 的计数之和等于 TotalItems
func (m *Mock) FetchCollection(ctx context.Context, identifier, chain string) (*Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := mockHash(chain + ":" + identifier)
	totalItems := int64(5000 + h%5001)

	// 按哈希推导的权重把 totalItems 分配到每个 trait value 上
	traitCounts := make(map[string]map[string]int64, len(mockTraitTypes))
	for i, traitType := range mockTraitTypes {
		values := mockTraitValues[traitType]
		weights := make([]int64, len(values))
		var weightSum int64
		for j := range values {
			w := int64(1 + (h>>(uint(i*5+j)%48))%97)
			weights[j] = w
			weightSum += w
		}

		counts := make(map[string]int64, len(values))
		var assigned int64
		for j, value := range values {
			c := totalItems * weights[j] / weightSum
			if c < 1 {
				c = 1
			}
			counts[value] = c
			assigned += c
		}
		// 余数归并到第一个 value, 保证计数之和恰好等于 TotalItems
		counts[values[0]] += totalItems - assigned
		traitCounts[traitType] = counts
	}

	address := identifier
	name := identifier
	if len(identifier) >= 32 {
		// 地址形态的标识符: 合成一个可读名称
		name = fmt.Sprintf("Collection #%04X", h&0xFFFF)
	} else {
		// 名称形态的标识符: 合成一个确定性地址
		address = mockAddress(h)
	}

	return &Collection{
		Address:     address,
		Name:        name,
		Chain:       chain,
		ImageUri:    fmt.Sprintf("https://ipfs.io/ipfs/Qm%016x", h),
		TotalItems:  totalItems,
		TraitCounts: traitCounts,
	}, nil
}

// FetchNFT 生成单个 NFT 快照
// 属性从共享词表中按哈希选取, 与任意模拟集合的统计表兼容
func (m *Mock) FetchNFT(ctx context.Context, address, chain string) (*NFT, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := mockHash(chain + ":nft:" + address)
	attributes := make([]Attribute, 0, len(mockTraitTypes))
	for i, traitType := range mockTraitTypes {
		values := mockTraitValues[traitType]
		attributes = append(attributes, Attribute{
			TraitType: traitType,
			Value:     values[(h>>(uint(i)*7))%uint64(len(values))],
		})
	}

	return &NFT{
		Address:           address,
		Name:              fmt.Sprintf("Mock #%d", h%10000),
		CollectionAddress: mockAddress(h ^ 0xC011EC7104), // 所属集合由 NFT 哈希稳定推导
		ImageUri:          fmt.Sprintf("https://ipfs.io/ipfs/Qm%016x", h>>1),
		Attributes:        attributes,
	}, nil
}

// FetchFloorPrice 生成各市场的地板价报价
// 基准价 1.00-9.99, 各市场在基准价上浮动; 约 1/13 的集合模拟无市场覆盖(空报价)
func (m *Mock) FetchFloorPrice(ctx context.Context, identifier, marketplace, chain string) ([]FloorPriceQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := mockHash(chain + ":floor:" + identifier)
	if h%13 == 0 {
		// 模拟没有任何市场挂单的集合
		return []FloorPriceQuote{}, nil
	}

	base := float64(100+h%900) / 100.0
	currency := ChainCurrency[chain]

	var quotes []FloorPriceQuote
	for i, market := range Marketplaces {
		if marketplace != MarketplaceAll && marketplace != market {
			continue
		}
		// 各市场报价在基准价上逐级上浮, 保证 magic_eden 为最低价
		price := base * (1.0 + 0.03*float64(i))
		quotes = append(quotes, FloorPriceQuote{
			Marketplace: market,
			FloorPrice:  decimal.NewFromFloat(price).Round(4),
			Currency:    currency,
		})
	}

	return quotes, nil
}

// FetchPriceHistory 生成最近 days 天的日线序列 (升序)
func (m *Mock) FetchPriceHistory(ctx context.Context, identifier string, days int, chain string) ([]PriceHistoryPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := mockHash(chain + ":floor:" + identifier)
	base := float64(100+h%900) / 100.0

	today := time.Now().UTC().Truncate(24 * time.Hour)
	points := make([]PriceHistoryPoint, 0, days)
	for d := days - 1; d >= 0; d-- {
		day := today.AddDate(0, 0, -d)
		dh := mockHash(identifier + ":" + day.Format("2006-01-02"))
		// 价格在基准价的 [85%, 115%] 区间内确定性波动
		price := base * (0.85 + 0.3*float64(dh%1000)/1000.0)
		volume := price * float64(10+dh%490)
		points = append(points, PriceHistoryPoint{
			Date:     day,
			AvgPrice: decimal.NewFromFloat(price).Round(4),
			Volume:   decimal.NewFromFloat(volume).Round(4),
		})
	}

	return points, nil
}

// FetchTraitFloorPrices 生成指定属性类型下各属性值的最低挂单价
// 挂单价在集合基准价上按属性值哈希上浮, 约 1/7 的属性值模拟无挂单
func (m *Mock) FetchTraitFloorPrices(ctx context.Context, identifier, traitType, chain string) (map[string]decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	values, ok := mockTraitValues[traitType]
	if !ok {
		return map[string]decimal.Decimal{}, nil
	}

	h := mockHash(chain + ":floor:" + identifier)
	base := float64(100+h%900) / 100.0

	floors := make(map[string]decimal.Decimal, len(values))
	for _, value := range values {
		vh := mockHash(identifier + ":" + traitType + ":" + value)
		if vh%7 == 0 {
			// 模拟该属性值没有任何挂单
			continue
		}
		// 稀有属性值挂单价最高可达基准价的 3 倍
		price := base * (1.0 + 2.0*float64(vh%1000)/1000.0)
		floors[value] = decimal.NewFromFloat(price).Round(4)
	}

	return floors, nil
}

// FetchComparableSales 生成近期可比成交价 (0-5 条)
func (m *Mock) FetchComparableSales(ctx context.Context, nftAddress, chain string) ([]decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := mockHash(chain + ":sales:" + nftAddress)
	count := int(h % 6)
	base := float64(100+h%900) / 100.0

	sales := make([]decimal.Decimal, 0, count)
	for i := 0; i < count; i++ {
		sales = append(sales, decimal.NewFromFloat(base*(0.8+0.1*float64(i))).Round(4))
	}

	return sales, nil
}

// FetchScoreDistribution 生成集合统计分数的抽样分布 (最多 250 个样本)
func (m *Mock) FetchScoreDistribution(ctx context.Context, identifier, chain string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := mockHash(chain + ":" + identifier)
	totalItems := int64(5000 + h%5001)
	sampleSize := int64(250)
	if totalItems < sampleSize {
		sampleSize = totalItems
	}

	scores := make([]float64, 0, sampleSize)
	for i := int64(0); i < sampleSize; i++ {
		sh := mockHash(fmt.Sprintf("%s#%d", identifier, i))
		scores = append(scores, 30+float64(sh%50000)/100.0)
	}

	return scores, nil
}

// ListCollections 生成链上已收录集合的地址列表
func (m *Mock) ListCollections(ctx context.Context, chain string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed := mockHash("collections:" + chain)
	addrs := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		addrs = append(addrs, mockAddress(seed+uint64(i)*0x9E3779B97F4A7C15))
	}

	return addrs, nil
}
