package config

import (
	"strings"

	logging "github.com/ProjectsTask/EasySwapBase/logger"
	"github.com/ProjectsTask/EasySwapBase/stores/gdb"
	"github.com/spf13/viper"
)

// Config 定义了应用程序的全局配置结构
type Config struct {
	Api            Api              `toml:"api" mapstructure:"api" json:"api"`                                  // HTTP 服务配置
	Monitor        *Monitor         `toml:"monitor" mapstructure:"monitor" json:"monitor"`                      // 监控相关配置
	Log            logging.LogConf  `toml:"log" mapstructure:"log" json:"log"`                                  // 日志配置
	Kv             *KvConf          `toml:"kv" mapstructure:"kv" json:"kv"`                                     // KV存储配置 (Redis)
	DB             gdb.Config       `toml:"db" mapstructure:"db" json:"db"`                                     // 数据库配置 (MySQL)
	Cache          CacheCfg         `toml:"cache" mapstructure:"cache" json:"cache"`                            // 结果缓存配置
	Provider       ProviderCfg      `toml:"provider" mapstructure:"provider" json:"provider"`                   // 数据源配置
	ChainSupported []ChainSupported `toml:"chain_supported" mapstructure:"chain_supported" json:"chain_supported"` // 支持的链列表
	ProjectCfg     *ProjectCfg      `toml:"project_cfg" mapstructure:"project_cfg" json:"project_cfg"`          // 项目名称配置
}

// Api 定义 HTTP 服务配置
type Api struct {
	Port string `toml:"port" mapstructure:"port" json:"port"` // 监听端口 (如: :9100)
}

// Monitor 定义监控配置
type Monitor struct {
	PprofEnable bool  `toml:"pprof_enable" mapstructure:"pprof_enable" json:"pprof_enable"` // 是否开启 Pprof
	PprofPort   int64 `toml:"pprof_port" mapstructure:"pprof_port" json:"pprof_port"`       // Pprof 监听端口
}

// CacheCfg 定义分析结果缓存配置
type CacheCfg struct {
	Backend       string `toml:"backend" mapstructure:"backend" json:"backend"`                      // 缓存后端 (memory / redis)
	ExpireSeconds int    `toml:"expire_seconds" mapstructure:"expire_seconds" json:"expire_seconds"` // 缓存有效期 (秒), 0 取默认 300
}

// ProviderCfg 定义行情数据源配置
type ProviderCfg struct {
	Kind           string `toml:"kind" mapstructure:"kind" json:"kind"`                               // 数据源类型 (mock / db)
	TimeoutSeconds int    `toml:"timeout_seconds" mapstructure:"timeout_seconds" json:"timeout_seconds"` // 单次抓取超时 (秒), 0 取默认 10
}

// ChainSupported 定义支持的链信息
type ChainSupported struct {
	Name     string `toml:"name" mapstructure:"name" json:"name"`         // 链名称 (solana, ethereum, polygon)
	ChainID  int    `toml:"chain_id" mapstructure:"chain_id" json:"chain_id"` // Chain ID
	Endpoint string `toml:"endpoint" mapstructure:"endpoint" json:"endpoint"` // RPC 节点地址
}

// ProjectCfg 定义项目配置
type ProjectCfg struct {
	Name string `toml:"name" mapstructure:"name" json:"name"` // 项目名称 (缓存 key 前缀)
}

// KvConf 定义 Key-Value 存储配置
type KvConf struct {
	Redis []*Redis `toml:"redis" json:"redis"` // Redis 列表（可能支持多实例）
}

// Redis 定义 Redis 连接配置
type Redis struct {
	Host string `toml:"host" json:"host"` // Redis 主机地址
	Type string `toml:"type" json:"type"` // Redis 类型 (node, cluster)
	Pass string `toml:"pass" json:"pass"` // Redis 密码
}

// UnmarshalConfig 加载并解析指定路径的配置文件
// @params configFilePath: 配置文件路径
func UnmarshalConfig(configFilePath string) (*Config, error) {
	viper.SetConfigFile(configFilePath) // 设置配置文件路径
	viper.SetConfigType("toml")         // 设置配置文件类型为 TOML
	viper.AutomaticEnv()                // 自动读取环境变量
	viper.SetEnvPrefix("CNFT")          // 设置环境变量前缀，如 CNFT_DB_HOST
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer) // 替换 key 中的 . 为 _

	if err := viper.ReadInConfig(); err != nil { // 读取配置
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil { // 解析到结构体
		return nil, err
	}

	return &c, nil
}
