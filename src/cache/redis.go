package cache

import (
	"context"

	"github.com/ProjectsTask/EasySwapBase/logger/xzap"
	"github.com/ProjectsTask/EasySwapBase/stores/xkv"
	"go.uber.org/zap"
)

// Kv Redis (xkv) 后端的缓存实现
// 过期交由 Redis 的 Setex TTL 处理, 语义与 Memory 保持一致
type Kv struct {
	store      *xkv.Store
	ttlSeconds int
}

// NewKv 创建 Redis 缓存
// expireSeconds <= 0 时使用 DefaultExpireSeconds
func NewKv(store *xkv.Store, expireSeconds int) *Kv {
	if expireSeconds <= 0 {
		expireSeconds = DefaultExpireSeconds
	}
	return &Kv{
		store:      store,
		ttlSeconds: expireSeconds,
	}
}

// Get 查询缓存
// Redis 访问失败按未命中处理(只记录日志), 由调用方回源重新计算
func (k *Kv) Get(key string) ([]byte, bool) {
	raw, err := k.store.Get(key)
	if err != nil {
		xzap.WithContext(context.Background()).Error("failed on get cache entry", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	return []byte(raw), true
}

// Put 写入缓存
// 写失败不阻断业务, 仅记录日志
func (k *Kv) Put(key string, payload []byte) {
	if err := k.store.Setex(key, string(payload), k.ttlSeconds); err != nil {
		xzap.WithContext(context.Background()).Error("failed on cache entry", zap.Error(err), zap.String("key", key))
	}
}
