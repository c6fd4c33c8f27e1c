package config

// RedisConfig Redis 连接配置。
// 浏览量计数依赖 RedisBloom 模块 (BF.* 命令)，部署时需使用 redis-stack 或加载该模块。
type RedisConfig struct {
	Address  string `mapstructure:"address" json:"address" yaml:"address"`
	Password string `mapstructure:"password" json:"password" yaml:"password"`
	DB       int    `mapstructure:"db" json:"db" yaml:"db"`
	PoolSize int    `mapstructure:"poolSize" json:"poolSize" yaml:"poolSize"`
}
