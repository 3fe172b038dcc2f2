package svc

import (
	"time"

	"github.com/ProjectsTask/EasySwapBase/logger/xzap"
	"github.com/ProjectsTask/EasySwapBase/stores/gdb"
	"github.com/ProjectsTask/EasySwapBase/stores/xkv"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"gorm.io/gorm"

	rescache "github.com/ProjectsTask/EasyNFTAnalytics/src/cache"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/config"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
)

// 数据源与缓存后端类型
const (
	ProviderMock = "mock"
	ProviderDB   = "db"

	CacheMemory = "memory"
	CacheRedis  = "redis"

	defaultProject      = "nftanalytics"
	defaultFetchTimeout = 10 * time.Second
)

type ServerCtx struct {
	C          *config.Config
	DB         *gorm.DB
	KvStore    *xkv.Store
	Provider   provider.Provider
	StatsCache rescache.Store
	FloorCache rescache.Store
}

// Project 缓存 Key 的项目前缀
func (s *ServerCtx) Project() string {
	if s.C != nil && s.C.ProjectCfg != nil && s.C.ProjectCfg.Name != "" {
		return s.C.ProjectCfg.Name
	}
	return defaultProject
}

// FetchTimeout 单次数据源抓取的超时时间
func (s *ServerCtx) FetchTimeout() time.Duration {
	if s.C != nil && s.C.Provider.TimeoutSeconds > 0 {
		return time.Duration(s.C.Provider.TimeoutSeconds) * time.Second
	}
	return defaultFetchTimeout
}

// NewServiceContext 初始化服务上下文
// 该函数负责初始化后端服务所需的所有基础设施组件
func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	var err error

	// 1. 初始化日志系统 (Zap Logger)
	_, err = xzap.SetUp(c.Log)
	if err != nil {
		return nil, err
	}

	// 2. 初始化 Redis 客户端 (xkv Store), 仅在缓存后端为 redis 时需要
	var store *xkv.Store
	if c.Cache.Backend == CacheRedis {
		if c.Kv == nil || len(c.Kv.Redis) == 0 {
			return nil, errors.New("redis cache backend requires kv config")
		}
		var kvConf kv.KvConf
		for _, con := range c.Kv.Redis {
			kvConf = append(kvConf, cache.NodeConf{
				RedisConf: redis.RedisConf{
					Host: con.Host,
					Type: con.Type,
					Pass: con.Pass,
				},
				Weight: 1,
			})
		}
		store = xkv.NewStore(kvConf)
	}

	// 3. 初始化数据库连接 (GORM), 仅在数据源为 db 时需要
	var db *gorm.DB
	if c.Provider.Kind == ProviderDB {
		db, err = gdb.NewDB(&c.DB)
		if err != nil {
			return nil, errors.Wrap(err, "failed on connect database")
		}
	}

	// 4. 构造行情数据源
	var dataProvider provider.Provider
	switch c.Provider.Kind {
	case ProviderDB:
		dataProvider = provider.NewDB(db)
	case ProviderMock, "":
		dataProvider = provider.NewMock()
	default:
		return nil, errors.Errorf("invalid provider kind: %s", c.Provider.Kind)
	}

	// 5. 构造统计/地板价两个独立命名空间的结果缓存
	var statsCache, floorCache rescache.Store
	switch c.Cache.Backend {
	case CacheRedis:
		statsCache = rescache.NewKv(store, c.Cache.ExpireSeconds)
		floorCache = rescache.NewKv(store, c.Cache.ExpireSeconds)
	case CacheMemory, "":
		statsCache = rescache.NewMemory(c.Cache.ExpireSeconds)
		floorCache = rescache.NewMemory(c.Cache.ExpireSeconds)
	default:
		return nil, errors.Errorf("invalid cache backend: %s", c.Cache.Backend)
	}

	// 6. 组装 ServerCtx 对象
	serverCtx := NewServerCtx(
		WithDB(db),
		WithKv(store),
		WithProvider(dataProvider),
		WithStatsCache(statsCache),
		WithFloorCache(floorCache),
	)
	serverCtx.C = c

	return serverCtx, nil
}
