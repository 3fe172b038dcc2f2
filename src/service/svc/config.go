package svc

import (
	"github.com/ProjectsTask/EasySwapBase/stores/xkv"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/cache"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
)

// CtxConfig 服务上下文配置构建器
// 用于使用 Option 模式构建 ServerCtx
type CtxConfig struct {
	db         *gorm.DB
	KvStore    *xkv.Store
	provider   provider.Provider
	statsCache cache.Store
	floorCache cache.Store
}

type CtxOption func(conf *CtxConfig)

// NewServerCtx 创建新的服务上下文
// 使用 Option 模式初始化 DB, KVStore, Provider, Cache 等组件
func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		DB:         c.db,
		KvStore:    c.KvStore,
		Provider:   c.provider,
		StatsCache: c.statsCache,
		FloorCache: c.floorCache,
	}
}

func WithKv(kv *xkv.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.KvStore = kv
	}
}

func WithDB(db *gorm.DB) CtxOption {
	return func(conf *CtxConfig) {
		conf.db = db
	}
}

func WithProvider(p provider.Provider) CtxOption {
	return func(conf *CtxConfig) {
		conf.provider = p
	}
}

func WithStatsCache(s cache.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.statsCache = s
	}
}

func WithFloorCache(s cache.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.floorCache = s
	}
}
