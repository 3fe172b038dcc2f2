package service

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/service/svc"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/types/v1"
)

// ErrTraitNotFound 集合中不存在请求的属性类型
var ErrTraitNotFound = errors.New("trait type not found")

// GetTraitDistribution 获取单个属性类型的分布
// 属性值按 count 升序排列 (最稀有的在前), 并列时按属性值字典序保证输出稳定
func GetTraitDistribution(ctx context.Context, svcCtx *svc.ServerCtx, identifier, traitType, chain string) (*types.TraitDistribution, error) {
	collection, err := svcCtx.Provider.FetchCollection(ctx, identifier, chain)
	if err != nil {
		return nil, wrapCollectionErr(err, identifier)
	}

	counts, ok := collection.TraitCounts[traitType]
	if !ok {
		return nil, errors.Wrapf(ErrTraitNotFound, "trait type: %s", traitType)
	}

	values := make([]types.TraitValueStat, 0, len(counts))
	for value, count := range counts {
		stat := types.TraitValueStat{
			Value: value,
			Count: count,
		}
		if collection.TotalItems > 0 && count > 0 {
			stat.Percentage = 100 * float64(count) / float64(collection.TotalItems)
			stat.RarityScore = float64(collection.TotalItems) / float64(count)
		}
		values = append(values, stat)
	}
	sort.SliceStable(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count < values[j].Count
		}
		return values[i].Value < values[j].Value
	})

	return &types.TraitDistribution{
		CollectionAddress: collection.Address,
		TraitType:         traitType,
		TotalItems:        collection.TotalItems,
		UniqueValues:      len(values),
		Values:            values,
	}, nil
}

// GetTraitOverview 获取集合全部属性类型的总览
// 属性类型按属性值数量降序排列 (多样性最高的在前), 并列时按类型名字典序
func GetTraitOverview(ctx context.Context, svcCtx *svc.ServerCtx, identifier, chain string) (*types.TraitOverview, error) {
	collection, err := svcCtx.Provider.FetchCollection(ctx, identifier, chain)
	if err != nil {
		return nil, wrapCollectionErr(err, identifier)
	}

	traits := make([]types.TraitOverviewEntry, 0, len(collection.TraitCounts))
	for traitType, counts := range collection.TraitCounts {
		entry := types.TraitOverviewEntry{
			TraitType:    traitType,
			UniqueValues: len(counts),
		}
		// 最常见属性值: 属性表是 map, 没有稳定的遍历顺序,
		// 并列时按字典序取最小的, 保证输出确定
		for value, count := range counts {
			if count > entry.MostCommonCount ||
				(count == entry.MostCommonCount && value < entry.MostCommonValue) {
				entry.MostCommonValue = value
				entry.MostCommonCount = count
			}
		}
		if collection.TotalItems > 0 {
			entry.MostCommonPercentage = 100 * float64(entry.MostCommonCount) / float64(collection.TotalItems)
		}
		traits = append(traits, entry)
	}
	sort.SliceStable(traits, func(i, j int) bool {
		if traits[i].UniqueValues != traits[j].UniqueValues {
			return traits[i].UniqueValues > traits[j].UniqueValues
		}
		return traits[i].TraitType < traits[j].TraitType
	})

	return &types.TraitOverview{
		CollectionAddress: collection.Address,
		TotalItems:        collection.TotalItems,
		Traits:            traits,
	}, nil
}

// GetTraitFloor 获取属性地板价与相对集合地板价的溢价
// 功能:
// 1. 拉取集合快照与各市场报价, 取最低价作为集合地板价
// 2. 拉取指定属性类型下各属性值的最低挂单价
// 3. 计算溢价百分比; 集合地板价为 0 时溢价无定义, 约定为 0
// traitValue 非空时只返回该属性值的记录
func GetTraitFloor(ctx context.Context, svcCtx *svc.ServerCtx, identifier, traitType, traitValue, chain string) (*types.TraitFloorStats, error) {
	collection, err := svcCtx.Provider.FetchCollection(ctx, identifier, chain)
	if err != nil {
		return nil, wrapCollectionErr(err, identifier)
	}
	if _, ok := collection.TraitCounts[traitType]; !ok {
		return nil, errors.Wrapf(ErrTraitNotFound, "trait type: %s", traitType)
	}

	quotes, err := svcCtx.Provider.FetchFloorPrice(ctx, collection.Address, provider.MarketplaceAll, chain)
	if err != nil {
		return nil, wrapCollectionErr(err, identifier)
	}
	collectionFloor, _, _ := aggregateFloor(quotes)

	floors, err := svcCtx.Provider.FetchTraitFloorPrices(ctx, collection.Address, traitType, chain)
	if err != nil {
		return nil, wrapCollectionErr(err, identifier)
	}

	values := make([]types.TraitFloorValue, 0, len(floors))
	for value, floor := range floors {
		if traitValue != "" && value != traitValue {
			continue
		}
		entry := types.TraitFloorValue{
			Value:      value,
			TraitFloor: floor,
		}
		if !collectionFloor.IsZero() {
			entry.FloorPremiumPercentage = floor.Sub(collectionFloor).Div(collectionFloor).InexactFloat64() * 100
		}
		values = append(values, entry)
	}
	// 溢价最高的属性值在前, 并列时按属性值字典序
	sort.SliceStable(values, func(i, j int) bool {
		if !values[i].TraitFloor.Equal(values[j].TraitFloor) {
			return values[i].TraitFloor.GreaterThan(values[j].TraitFloor)
		}
		return values[i].Value < values[j].Value
	})

	return &types.TraitFloorStats{
		CollectionAddress: collection.Address,
		TraitType:         traitType,
		Chain:             chain,
		Currency:          provider.ChainCurrency[chain],
		CollectionFloor:   collectionFloor,
		Values:            values,
	}, nil
}
