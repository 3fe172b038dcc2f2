package service

import (
	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
)

// 服务层错误哨兵, handler 层通过 errors.Is 映射为对外错误码
var (
	// ErrCollectionNotFound 集合不存在
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrNFTNotFound NFT 不存在
	ErrNFTNotFound = errors.New("nft not found")
	// ErrDataSource 数据源访问失败
	ErrDataSource = errors.New("data source unavailable")
	// ErrTooFewCollections 对比请求的集合数不足
	ErrTooFewCollections = errors.New("comparison requires at least two collections")
)

// wrapCollectionErr 将数据源错误归类为集合维度的服务层错误
func wrapCollectionErr(err error, identifier string) error {
	if errors.Is(err, provider.ErrNotFound) {
		return errors.Wrapf(ErrCollectionNotFound, "identifier: %s", identifier)
	}
	return errors.Wrapf(ErrDataSource, "identifier: %s, err: %v", identifier, err)
}

// wrapNFTErr 将数据源错误归类为 NFT 维度的服务层错误
func wrapNFTErr(err error, address string) error {
	if errors.Is(err, provider.ErrNotFound) {
		return errors.Wrapf(ErrNFTNotFound, "address: %s", address)
	}
	return errors.Wrapf(ErrDataSource, "address: %s, err: %v", address, err)
}
