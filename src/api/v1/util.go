package v1

import (
	"context"

	"github.com/ProjectsTask/EasySwapBase/errcode"
	"github.com/ProjectsTask/EasySwapBase/logger/xzap"
	"github.com/ProjectsTask/EasySwapBase/xhttp"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasyNFTAnalytics/src/common/utils"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/provider"
	"github.com/ProjectsTask/EasyNFTAnalytics/src/service/svc"
	service "github.com/ProjectsTask/EasyNFTAnalytics/src/service/v1"
)

// chainFromQuery 解析并校验 chain 参数, 缺省为 solana
// 校验失败时已写入错误响应, 调用方直接 return 即可
func chainFromQuery(c *gin.Context) (string, bool) {
	chain := c.DefaultQuery("chain", provider.ChainSolana)
	if !provider.IsSupportedChain(chain) {
		xhttp.Error(c, errcode.NewCustomErr("unsupported chain: "+chain))
		return "", false
	}
	return chain, true
}

// identifierFromQuery 解析集合标识符 (address 或 name, 二选一)
// 地址形态的标识符做链相关的格式校验并归一化
func identifierFromQuery(c *gin.Context, chain string) (string, bool) {
	address := c.Query("address")
	name := c.Query("name")
	if address == "" && name == "" {
		xhttp.Error(c, errcode.NewCustomErr("address or name is required"))
		return "", false
	}
	if address != "" {
		if !utils.IsValidAddress(address, chain) {
			xhttp.Error(c, errcode.NewCustomErr("invalid collection address"))
			return "", false
		}
		return utils.NormalizeAddress(address, chain), true
	}
	return name, true
}

// addressFromPath 解析路径中的地址参数并做格式校验
func addressFromPath(c *gin.Context, chain string) (string, bool) {
	address := c.Params.ByName("address")
	if !utils.IsValidAddress(address, chain) {
		xhttp.Error(c, errcode.ErrInvalidParams)
		return "", false
	}
	return utils.NormalizeAddress(address, chain), true
}

// fetchCtx 构造带数据源超时的请求上下文
func fetchCtx(c *gin.Context, svcCtx *svc.ServerCtx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), svcCtx.FetchTimeout())
}

// respondErr 将服务层错误映射为对外错误响应
// 未分类的错误统一按内部错误处理, 细节只进日志不出响应
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCollectionNotFound):
		xhttp.Error(c, errcode.NewCustomErr("collection not found"))
	case errors.Is(err, service.ErrNFTNotFound):
		xhttp.Error(c, errcode.NewCustomErr("nft not found"))
	case errors.Is(err, service.ErrTraitNotFound):
		xhttp.Error(c, errcode.NewCustomErr("trait type not found"))
	case errors.Is(err, service.ErrTooFewCollections):
		xhttp.Error(c, errcode.ErrInvalidParams)
	default:
		xzap.WithContext(c.Request.Context()).Error("request failed",
			zap.Error(err), zap.String("path", c.Request.URL.Path))
		xhttp.Error(c, errcode.ErrUnexpected)
	}
}
