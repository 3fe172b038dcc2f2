package cache

import (
	"sync"
	"time"
)

// DefaultExpireSeconds 缓存默认过期时间 (秒)
const DefaultExpireSeconds = 300

// Store 统计结果缓存的统一抽象
// 约定:
//  1. Get 只在条目存在且未过期时返回命中; 过期条目等同于不存在
//  2. Put 以整体覆盖的方式写入 payload, 不做增量更新
//
// 实现: 进程内 Memory 存储 / Redis (xkv) 存储, 由 ServerCtx 注入引擎
type Store interface {
	Get(key string) ([]byte, bool)
	Put(key string, payload []byte)
}

// memEntry 单条缓存记录
// payload 为序列化后的完整结果, createdAt 用于过期判断
type memEntry struct {
	payload   []byte
	createdAt time.Time
}

// expired 判断条目在 now 时刻是否已过期
func (e memEntry) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.createdAt) >= ttl
}

// Memory 进程内 TTL 缓存
// 除过期外没有任何淘汰策略, 内存增长由 key 空间决定
// (短生命周期进程可接受; 生产级部署可叠加容量上限, 作为后续增强)
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time // 可注入时钟, 便于测试
	entries map[string]memEntry
}

// NewMemory 创建进程内缓存
// expireSeconds <= 0 时使用 DefaultExpireSeconds
func NewMemory(expireSeconds int) *Memory {
	if expireSeconds <= 0 {
		expireSeconds = DefaultExpireSeconds
	}
	return &Memory{
		ttl:     time.Duration(expireSeconds) * time.Second,
		now:     time.Now,
		entries: make(map[string]memEntry),
	}
}

// Get 查询缓存
// 过期或不存在均视为未命中; 过期条目留待下次 Put 整体覆盖
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || entry.expired(m.now(), m.ttl) {
		return nil, false
	}
	return entry.payload, true
}

// Put 写入缓存
// 整条覆盖写入, 并发场景下后写覆盖先写, 不会出现半写条目
func (m *Memory) Put(key string, payload []byte) {
	m.mu.Lock()
	m.entries[key] = memEntry{
		payload:   payload,
		createdAt: m.now(),
	}
	m.mu.Unlock()
}
