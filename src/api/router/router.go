package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/api/middleware"
	v1 "github.com/ProjectsTask/EasyNFTAnalytics/src/api/v1"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/common/utils"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	// 注册自定义地址校验器
	if err := utils.RegisterValidators(); err != nil {
		panic(err)
	}
	// 强制控制台颜色输出，使日志更易读
	gin.ForceConsoleColor()
	// 设置 Gin 为发布模式 (ReleaseMode)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()                        // 新建一个gin引擎实例
	r.Use(middleware.RecoverMiddleware()) // 使用自定义的恢复中间件，处理 Panic
	r.Use(middleware.RLog())              // 使用请求日志中间件，记录API访问日志

	r.Use(cors.New(cors.Config{ // 使用cors中间件，配置跨域访问策略
		AllowAllOrigins:  true,                                                         // 允许所有源
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}, // 允许的方法
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-CSRF-Token", "Authorization", "AccessToken", "Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Access-Control-Allow-Origin", "Access-Control-Allow-Headers", "X-GW-Error-Code", "X-GW-Error-Message"},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))
	loadV1(r, svcCtx) // 加载 v1 版本的路由分组

	return r
}

// loadV1 注册 v1 版本的分析接口
func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	api := r.Group("/api/v1")

	// 集合维度: 统计/地板价/对比/热门/走势/属性
	collections := api.Group("/collections")
	collections.GET("/stats", v1.CollectionStatsHandler(svcCtx))
	collections.GET("/floor-price", v1.FloorPriceHandler(svcCtx))
	collections.GET("/compare", v1.CollectionCompareHandler(svcCtx))
	collections.GET("/trending", v1.TrendingHandler(svcCtx))
	collections.GET("/:address/price-history", v1.PriceHistoryHandler(svcCtx))
	collections.GET("/:address/traits", v1.CollectionTraitsHandler(svcCtx))
	collections.GET("/:address/trait-floor", v1.TraitFloorHandler(svcCtx))

	// NFT 维度: 稀有度与估值
	items := api.Group("/items")
	items.GET("/:address/rarity", v1.ItemRarityHandler(svcCtx))
	items.GET("/:address/estimate-value", v1.ItemValueEstimateHandler(svcCtx))
}
