package utils

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// validatorM 存储自定义的验证器函数映射
	// key: 验证规则名称 ("evm_address", "solana_address")
	// value: 验证函数实现
	validatorM map[string]validator.Func
	// patternM 存储正则表达式模式映射
	// key: 验证规则名称
	// value: 正则表达式字符串
	patternM map[string]string
)

// init 初始化验证器和正则模式
func init() {
	// 初始化验证函数映射
	validatorM = map[string]validator.Func{
		"evm_address":    evmAddressValidator,    // 验证 EVM 地址格式
		"solana_address": solanaAddressValidator, // 验证 Solana 地址格式
	}
	// 初始化正则模式映射
	patternM = map[string]string{
		// Solana 地址正则: Base58 字符集, 32-44 位
		"solana_address": `^[1-9A-HJ-NP-Za-km-z]{32,44}$`,
	}
}

var (
	// evmAddressValidator 验证 EVM 系地址 (Ethereum / Polygon)
	// 规则: 0x 开头, 40 位十六进制字符
	evmAddressValidator validator.Func = func(fl validator.FieldLevel) bool {
		addr, ok := fl.Field().Interface().(string)
		if ok {
			return common.IsHexAddress(addr)
		}
		return false
	}

	// solanaAddressValidator 验证 Solana 地址
	// 功能: 根据 patternM 中的 Base58 正则进行匹配
	solanaAddressValidator validator.Func = func(fl validator.FieldLevel) bool {
		key, _ := fl.Field().Interface().(string)
		pattern, ok := patternM[fl.GetTag()]
		if ok {
			match, _ := regexp.MatchString(pattern, key)
			return match
		}
		return false
	}
)

// RegisterValidators 将自定义地址校验器注册到 gin 的参数绑定器
// 注册后可在绑定 tag 中使用 binding:"evm_address" / binding:"solana_address"
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	for name, fn := range validatorM {
		if err := v.RegisterValidation(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// IsValidAddress 校验指定链上的地址格式是否合法
// 参数:
//
//	address: 待校验地址
//	chain: 链名称 (solana / ethereum / polygon)
func IsValidAddress(address, chain string) bool {
	if address == "" {
		return false
	}
	switch strings.ToLower(chain) {
	case "ethereum", "polygon":
		return common.IsHexAddress(address)
	case "solana":
		match, _ := regexp.MatchString(patternM["solana_address"], address)
		return match
	default:
		return false
	}
}

// NormalizeAddress 将地址归一化为规范形式
// EVM 地址转换为 EIP-55 校验和格式 (混合大小写), Solana 地址保持原样
func NormalizeAddress(address, chain string) string {
	switch strings.ToLower(chain) {
	case "ethereum", "polygon":
		if common.IsHexAddress(address) {
			return common.HexToAddress(address).Hex()
		}
		return address
	default:
		return address
	}
}
