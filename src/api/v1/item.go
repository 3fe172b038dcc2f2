package v1

import (
	"github.com/ProjectsTask/EasySwapBase/errcode"
	"github.com/ProjectsTask/EasySwapBase/xhttp"
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/common/utils"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/service/svc"
	service "github.com/ProjectsTask/EasyNFTAnalytics/src/service/v1"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/types/v1"
)

// itemParams 解析 NFT 地址 (路径) 与所属集合地址 (query, 可选)
// 集合地址缺省时由 NFT 元数据中记录的所属集合决定
func itemParams(c *gin.Context, chain string) (string, string, bool) {
	nftAddress, ok := addressFromPath(c, chain)
	if !ok {
		return "", "", false
	}
	collectionAddress := c.Query("collection_address")
	if collectionAddress == "" {
		return nftAddress, "", true
	}
	if !utils.IsValidAddress(collectionAddress, chain) {
		xhttp.Error(c, errcode.NewCustomErr("invalid collection address"))
		return "", "", false
	}
	return nftAddress, utils.NormalizeAddress(collectionAddress, chain), true
}

// ItemRarityHandler 查询 NFT 稀有度
// 功能: 计算指定 NFT 在所属集合中的属性分数/排名/百分位
func ItemRarityHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		chain, ok := chainFromQuery(c)
		if !ok {
			return
		}
		nftAddress, collectionAddress, ok := itemParams(c, chain)
		if !ok {
			return
		}

		ctx, cancel := fetchCtx(c, svcCtx)
		defer cancel()
		res, err := service.GetNFTRarity(ctx, svcCtx, nftAddress, collectionAddress, chain)
		if err != nil {
			respondErr(c, err)
			return
		}
		xhttp.OkJson(c, types.CommonResp{Result: res})
	}
}

// ItemValueEstimateHandler 估算 NFT 市场价值
// 功能: 综合集合地板价、稀有度溢价与可比成交给出估值
func ItemValueEstimateHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		chain, ok := chainFromQuery(c)
		if !ok {
			return
		}
		nftAddress, collectionAddress, ok := itemParams(c, chain)
		if !ok {
			return
		}

		ctx, cancel := fetchCtx(c, svcCtx)
		defer cancel()
		res, err := service.GetValueEstimate(ctx, svcCtx, nftAddress, collectionAddress, chain)
		if err != nil {
			respondErr(c, err)
			return
		}
		xhttp.OkJson(c, types.CommonResp{Result: res})
	}
}
