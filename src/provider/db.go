package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/ProjectsTask/EasySwapBase/stores/gdb/orderbookmodel/multi"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/common/utils"
)

// marketplaceToID 市场名称 -> 订单表 market_id 映射
// 索引服务写入订单时使用同一套编号
var marketplaceToID = map[string]int{
	"magic_eden": 1,
	"opensea":    2,
	"solanart":   3,
	"raydium":    4,
}

// idToMarketplace market_id -> 市场名称反查表
var idToMarketplace = func() map[int]string {
	m := make(map[int]string, len(marketplaceToID))
	for name, id := range marketplaceToID {
		m[id] = name
	}
	return m
}()

// DB 数据库数据源
// 功能: 从索引服务落库的 orderbook 模型 (collection/item/item_trait/activity/order)
// 中读取集合与行情数据, 是模拟数据源之外的真实数据接入实现
// 对瞬时性 DB 故障在本层做有限重试, 引擎层不重试
type DB struct {
	db *gorm.DB
}

// NewDB 创建数据库数据源
func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// FetchCollection 按地址或名称查询集合快照
// 集合基本信息与 trait 统计表合并为一个不可变快照返回
func (d *DB) FetchCollection(ctx context.Context, identifier, chain string) (*Collection, error) {
	var collection multi.Collection
	var notFound bool
	err := utils.Retry("query collection info", 3, 100*time.Millisecond, func() error {
		err := d.db.WithContext(ctx).Table(multi.CollectionTableName(chain)).
			Where("address = ? or name = ?", identifier, identifier).
			First(&collection).Error
		// 未找到是确定性结果, 不进入重试
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound = true
			return nil
		}
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed on query collection info")
	}
	if notFound {
		return nil, errors.Wrapf(ErrNotFound, "unknown collection: %s", identifier)
	}

	// trait 统计: 每个 (trait, trait_value) 的出现次数
	// SQL 逻辑:
	// SELECT trait, trait_value, COUNT(*) as count
	// FROM item_trait_table WHERE collection_address = ? GROUP BY trait, trait_value
	var traitCounts []struct {
		Trait      string
		TraitValue string
		Count      int64
	}
	if err := d.db.WithContext(ctx).Table(multi.ItemTraitTableName(chain)).
		Select("`trait`,`trait_value`,count(*) as count").
		Where("collection_address = ?", collection.Address).
		Group("`trait`,`trait_value`").
		Scan(&traitCounts).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query collection trait amount")
	}

	counts := make(map[string]map[string]int64)
	for _, tc := range traitCounts {
		if counts[tc.Trait] == nil {
			counts[tc.Trait] = make(map[string]int64)
		}
		counts[tc.Trait][tc.TraitValue] = tc.Count
	}

	return &Collection{
		Address:     collection.Address,
		Name:        collection.Name,
		Chain:       chain,
		ImageUri:    collection.ImageUri,
		TotalItems:  collection.ItemAmount,
		TraitCounts: counts,
	}, nil
}

// FetchNFT 按 token 地址查询单个 NFT 快照及其属性列表
func (d *DB) FetchNFT(ctx context.Context, address, chain string) (*NFT, error) {
	var item multi.Item
	if err := d.db.WithContext(ctx).Table(multi.ItemTableName(chain)).
		Where("token_id = ?", address).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "unknown nft: %s", address)
		}
		return nil, errors.Wrap(err, "failed on query item info")
	}

	var itemTraits []multi.ItemTrait
	if err := d.db.WithContext(ctx).Table(multi.ItemTraitTableName(chain)).
		Select("collection_address, token_id, trait, trait_value").
		Where("collection_address = ? and token_id = ?", item.CollectionAddress, item.TokenId).
		Scan(&itemTraits).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query item traits")
	}

	attributes := make([]Attribute, 0, len(itemTraits))
	for _, trait := range itemTraits {
		attributes = append(attributes, Attribute{
			TraitType: trait.Trait,
			Value:     trait.TraitValue,
		})
	}

	return &NFT{
		Address:           item.TokenId,
		Name:              item.Name,
		CollectionAddress: item.CollectionAddress,
		Attributes:        attributes,
	}, nil
}

// FetchFloorPrice 查询各市场当前有效挂单的最低价
// SQL 逻辑: 按 market_id 分组取有效挂单 MIN(price)
func (d *DB) FetchFloorPrice(ctx context.Context, identifier, marketplace, chain string) ([]FloorPriceQuote, error) {
	query := d.db.WithContext(ctx).Table(multi.OrderTableName(chain)).
		Select("market_id, COALESCE(MIN(price), 0) as price").
		Where("collection_address = ? and order_status = ?", identifier, multi.OrderStatusActive).
		Group("market_id")
	if marketplace != MarketplaceAll {
		marketID, ok := marketplaceToID[marketplace]
		if !ok {
			return nil, errors.Errorf("invalid marketplace: %s", marketplace)
		}
		query = query.Where("market_id = ?", marketID)
	}

	var rows []struct {
		MarketID int
		Price    decimal.Decimal
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query floor price")
	}

	currency := ChainCurrency[chain]
	quotes := make([]FloorPriceQuote, 0, len(rows))
	for _, row := range rows {
		name, ok := idToMarketplace[row.MarketID]
		if !ok {
			// 未收录的市场编号直接跳过
			continue
		}
		quotes = append(quotes, FloorPriceQuote{
			Marketplace: name,
			FloorPrice:  row.Price,
			Currency:    currency,
		})
	}

	return quotes, nil
}

// FetchPriceHistory 查询最近 days 天的成交日线 (日均价 + 日交易量, 升序)
// 仅统计 Sale 类型的成交记录
func (d *DB) FetchPriceHistory(ctx context.Context, identifier string, days int, chain string) ([]PriceHistoryPoint, error) {
	startTime := time.Now().UTC().AddDate(0, 0, -days).Unix()

	var rows []struct {
		Day      string
		AvgPrice decimal.Decimal
		Volume   decimal.Decimal
	}
	if err := d.db.WithContext(ctx).Table(multi.ActivityTableName(chain)).
		Select("DATE(FROM_UNIXTIME(event_time)) as day, COALESCE(AVG(price), 0) as avg_price, COALESCE(SUM(price), 0) as volume").
		Where("collection_address = ? and activity_type = ? and event_time >= ?",
			identifier, multi.Sale, startTime).
		Group("day").
		Order("day asc").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query history sales price")
	}

	points := make([]PriceHistoryPoint, 0, len(rows))
	for _, row := range rows {
		day, err := time.Parse("2006-01-02", row.Day)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid day bucket: %s", row.Day)
		}
		points = append(points, PriceHistoryPoint{
			Date:     day,
			AvgPrice: row.AvgPrice,
			Volume:   row.Volume,
		})
	}

	return points, nil
}

// FetchTraitFloorPrices 查询指定属性类型下每个属性值的最低有效挂单价
// SQL 逻辑: join 订单表与属性表, 按 trait_value 分组取 MIN(price)
func (d *DB) FetchTraitFloorPrices(ctx context.Context, identifier, traitType, chain string) (map[string]decimal.Decimal, error) {
	sql := fmt.Sprintf(`select t.trait_value, min(o.price) as price from %s o
		join %s t on o.collection_address = t.collection_address and o.token_id = t.token_id
		where o.collection_address = ? and o.order_status = ? and t.trait = ?
		group by t.trait_value`,
		multi.OrderTableName(chain), multi.ItemTraitTableName(chain))

	var rows []struct {
		TraitValue string
		Price      decimal.Decimal
	}
	if err := d.db.WithContext(ctx).Raw(sql,
		identifier, multi.OrderStatusActive, traitType).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query trait floor price")
	}

	floors := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		floors[row.TraitValue] = row.Price
	}

	return floors, nil
}

// FetchComparableSales 查询与指定 NFT 共享属性的近期成交价 (最多 8 条)
// 逻辑: 取该 NFT 的第一条属性作为匹配条件, join 成交记录与属性表
func (d *DB) FetchComparableSales(ctx context.Context, nftAddress, chain string) ([]decimal.Decimal, error) {
	nft, err := d.FetchNFT(ctx, nftAddress, chain)
	if err != nil {
		return nil, err
	}
	if len(nft.Attributes) == 0 {
		return nil, nil
	}
	matched := nft.Attributes[0]

	// SQL 逻辑: 属性匹配的近期成交价, 按成交时间倒序
	sql := fmt.Sprintf(`select a.price from %s a
		join %s t on a.collection_address = t.collection_address and a.token_id = t.token_id
		where a.collection_address = ? and a.activity_type = ? and t.trait = ? and t.trait_value = ?
		order by a.event_time desc limit 8`,
		multi.ActivityTableName(chain), multi.ItemTraitTableName(chain))

	var prices []decimal.Decimal
	if err := d.db.WithContext(ctx).Raw(sql,
		nft.CollectionAddress, multi.Sale, matched.TraitType, matched.Value).
		Scan(&prices).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query comparable sales")
	}

	return prices, nil
}

// FetchScoreDistribution 计算集合内每个 Item 的统计稀有度分数分布
// 逻辑: 拉取集合全部属性记录, 按 token 聚合 sum(total_items/count)
func (d *DB) FetchScoreDistribution(ctx context.Context, identifier, chain string) ([]float64, error) {
	collection, err := d.FetchCollection(ctx, identifier, chain)
	if err != nil {
		return nil, err
	}
	if collection.TotalItems == 0 {
		return nil, nil
	}

	var itemTraits []multi.ItemTrait
	if err := d.db.WithContext(ctx).Table(multi.ItemTraitTableName(chain)).
		Select("collection_address, token_id, trait, trait_value").
		Where("collection_address = ?", collection.Address).
		Scan(&itemTraits).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query collection item traits")
	}

	scoreByToken := make(map[string]float64)
	for _, trait := range itemTraits {
		count := collection.TraitCounts[trait.Trait][trait.TraitValue]
		if count == 0 {
			continue
		}
		scoreByToken[trait.TokenId] += float64(collection.TotalItems) / float64(count)
	}

	scores := make([]float64, 0, len(scoreByToken))
	for _, score := range scoreByToken {
		scores = append(scores, score)
	}

	return scores, nil
}

// ListCollections 列出链上已收录的集合地址, 按供应量降序
func (d *DB) ListCollections(ctx context.Context, chain string, limit int) ([]string, error) {
	var addrs []string
	if err := d.db.WithContext(ctx).Table(multi.CollectionTableName(chain)).
		Select("address").
		Order("item_amount desc").
		Limit(limit).
		Scan(&addrs).Error; err != nil {
		return nil, errors.Wrap(err, "failed on query collection list")
	}

	return addrs, nil
}
