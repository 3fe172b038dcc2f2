package v1

import (
	"strconv"
	"strings"

	"github.com/ProjectsTask/EasySwapBase/errcode"
	"github.com/ProjectsTask/EasySwapBase/xhttp"
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/common/utils"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/service/svc"
	service "github.com/ProjectsTask/EasyNFTAnalytics/src/service/v1"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/types/v1"
)

// 对比请求的集合数量上限, 防止单次请求打满数据源
const maxCompareCollections = 10

// CollectionStatsHandler 查询集合统计信息
// 功能: 按地址或名称查询集合快照 + 地板价 + 7 日走势的聚合结果
func CollectionStatsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 校验链与集合标识符
		chain, ok := chainFromQuery(c)
		if !ok {
			return
		}
		identifier, ok := identifierFromQuery(c, chain)
		if !ok {
			return
		}

		// 2. 调用 Service 层查询统计信息
		ctx, cancel := fetchCtx(c, svcCtx)
		defer cancel()
		res, err := service.GetCollectionStats(ctx, svcCtx, identifier, chain)
		if err != nil {
			respondErr(c, err)
			return
		}
		xhttp.OkJson(c, types.CommonResp{Result: res})
	}
}

// FloorPriceHandler 查询集合的跨市场地板价
// 功能: 查询指定市场 (缺省全部市场) 的地板价报价及最低/平均聚合
func FloorPriceHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		chain, ok := chainFromQuery(c)
		if !ok {
			return
		}
		identifier, ok := identifierFromQuery(c, chain)
		if !ok {
			return
		}

		// 校验市场参数
		marketplace := c.DefaultQuery("marketplace", provider.MarketplaceAll)
		if !provider.IsSupportedMarketplace(marketplace) {
			xhttp.Error(c, errcode.NewCustomErr("unsupported marketplace: "+marketplace))
			return
		}

		ctx, cancel := fetchCtx(c, svcCtx)
		defer cancel()
		res, err := service.GetFloorPrice(ctx, svcCtx, identifier, marketplace, chain)
		if err != nil {
			respondErr(c, err)
			return
		}
		xhttp.OkJson(c, types.CommonResp{Result: res})
	}
}

// PriceHistoryHandler 查询集合历史价格走势
// 功能: 查询指定时间窗口的成交日线及变化率/波动率统计
func PriceHistoryHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		chain, ok := chainFromQuery(c)
		if !ok {
			return
		}
		address, ok := addressFromPath(c, chain)
		if !ok {
			return
		}

		// 校验时间窗口参数
		timePeriod := c.DefaultQuery("time_period", service.Period7d)
		if !service.IsSupportedPeriod(timePeriod) {
			xhttp.Error(c, errcode.NewCustomErr("unsupported time period: "+timePeriod))
			return
		}

		ctx, cancel := fetchCtx(c, svcCtx)
		defer cancel()
		res, err := service.GetPriceHistory(ctx, svcCtx, address, timePeriod, chain)
		if err != nil {
			respondErr(c, err)
			return
		}
		xhttp.OkJson(c, types.CommonResp{Result: res})
	}
}

// CollectionTraitsHandler 查询集合属性分布
// 功能: 指定 trait_type 时返回该类型的完整分布, 否则返回全部类型的总览
func CollectionTraitsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		chain, ok := chainFromQuery(c)
		if !ok {
			return
		}
		address, ok := addressFromPath(c, chain)
		if !ok {
			return
		}

		ctx, cancel := fetchCtx(c, svcCtx)
		defer cancel()
		traitType := c.Query("trait_type")
		if traitType != "" {
			res, err := service.GetTraitDistribution(ctx, svcCtx, address, traitType, chain)
			if err != nil {
				respondErr(c, err)
				return
			}
			xhttp.OkJson(c, types.CommonResp{Result: res})
			return
		}

		res, err := service.GetTraitOverview(ctx, svcCtx, address, chain)
		if err != nil {
			respondErr(c, err)
			return
		}
		xhttp.OkJson(c, types.CommonResp{Result: res})
	}
}

// TraitFloorHandler 查询属性地板价
// 功能: 查询指定属性类型下各属性值的地板价及相对集合地板价的溢价
func TraitFloorHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		chain, ok := chainFromQuery(c)
		if !ok {
			return
		}
		address, ok := addressFromPath(c, chain)
		if !ok {
			return
		}

		traitType := c.Query("trait_type")
		if traitType == "" {
			xhttp.Error(c, errcode.NewCustomErr("trait_type is required"))
			return
		}

		ctx, cancel := fetchCtx(c, svcCtx)
		defer cancel()
		res, err := service.GetTraitFloor(ctx, svcCtx, address, traitType, c.Query("trait_value"), chain)
		if err != nil {
			respondErr(c, err)
			return
		}
		xhttp.OkJson(c, types.CommonResp{Result: res})
	}
}

// CollectionCompareHandler 横向对比多个集合
// 功能: 按指定指标对 2-10 个集合排序对比, 统计失败的集合被剔除
func CollectionCompareHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		chain, ok := chainFromQuery(c)
		if !ok {
			return
		}

		// 1. 解析并校验地址列表 (逗号分隔, 至少两个)
		var addresses []string
		for _, addr := range strings.Split(c.Query("addresses"), ",") {
			addr = strings.TrimSpace(addr)
			if addr == "" {
				continue
			}
			if !utils.IsValidAddress(addr, chain) {
				xhttp.Error(c, errcode.NewCustomErr("invalid collection address: "+addr))
				return
			}
			addresses = append(addresses, utils.NormalizeAddress(addr, chain))
		}
		if len(addresses) < 2 {
			xhttp.Error(c, errcode.NewCustomErr("at least two collection addresses are required"))
			return
		}
		if len(addresses) > maxCompareCollections {
			xhttp.Error(c, errcode.NewCustomErr("too many collections to compare"))
			return
		}

		// 2. 校验指标列表, 排序使用第一个指标
		metrics := strings.Split(c.DefaultQuery("metrics", service.MetricVolume), ",")
		for i, metric := range metrics {
			metrics[i] = strings.TrimSpace(metric)
			if !service.IsSupportedMetric(metrics[i]) {
				xhttp.Error(c, errcode.NewCustomErr("unsupported metric: "+metrics[i]))
				return
			}
		}

		ctx, cancel := fetchCtx(c, svcCtx)
		defer cancel()
		res, err := service.CompareCollections(ctx, svcCtx, addresses, metrics[0], chain)
		if err != nil {
			respondErr(c, err)
			return
		}
		xhttp.OkJson(c, types.CommonResp{Result: res})
	}
}

// TrendingHandler 查询窗口内交易量最高的集合
func TrendingHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		chain, ok := chainFromQuery(c)
		if !ok {
			return
		}

		timePeriod := c.DefaultQuery("time_period", service.Period7d)
		if !service.IsSupportedPeriod(timePeriod) {
			xhttp.Error(c, errcode.NewCustomErr("unsupported time period: "+timePeriod))
			return
		}

		// limit 非法时直接报错而不是静默修正
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				xhttp.Error(c, errcode.ErrInvalidParams)
				return
			}
			limit = parsed
		}

		ctx, cancel := fetchCtx(c, svcCtx)
		defer cancel()
		res, err := service.GetTrending(ctx, svcCtx, timePeriod, chain, limit)
		if err != nil {
			respondErr(c, err)
			return
		}
		xhttp.OkJson(c, types.TrendingResp{Result: res, Count: len(res)})
	}
}
