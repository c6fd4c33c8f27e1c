package config

// ZapConfig 控制日志输出行为。
type ZapConfig struct {
	Level      string `mapstructure:"level" json:"level" yaml:"level"`                // 日志级别: debug/info/warn/error
	Encoding   string `mapstructure:"encoding" json:"encoding" yaml:"encoding"`       // 编码: json 或 console
	OutputPath string `mapstructure:"outputPath" json:"outputPath" yaml:"outputPath"` // 输出路径，空则 stdout
}

// GormLogConfig 控制 GORM 的 SQL 日志。
type GormLogConfig struct {
	Level                     string `mapstructure:"level" json:"level" yaml:"level"`                                                             // silent/error/warn/info
	SlowThresholdMs           int    `mapstructure:"slowThresholdMs" json:"slowThresholdMs" yaml:"slowThresholdMs"`                               // 慢查询阈值（毫秒）
	IgnoreRecordNotFoundError bool   `mapstructure:"ignoreRecordNotFoundError" json:"ignoreRecordNotFoundError" yaml:"ignoreRecordNotFoundError"` // 是否忽略 ErrRecordNotFound
}

// ServerConfig HTTP 服务配置。
type ServerConfig struct {
	Port           string `mapstructure:"port" json:"port" yaml:"port"`
	RequestTimeout int    `mapstructure:"requestTimeout" json:"requestTimeout" yaml:"requestTimeout"` // 单请求超时（秒）
}

// TracerConfig 分布式追踪配置。
type TracerConfig struct {
	Enabled  bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Endpoint string `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint"` // OTLP HTTP collector 地址，例如 localhost:4318
	Insecure bool   `mapstructure:"insecure" json:"insecure" yaml:"insecure"`
}

// JWTConfig 令牌签发配置。
type JWTConfig struct {
	Secret        string `mapstructure:"secret" json:"secret" yaml:"secret"`                      // HMAC 签名密钥
	Issuer        string `mapstructure:"issuer" json:"issuer" yaml:"issuer"`                      // iss 声明
	ExpireMinutes int    `mapstructure:"expireMinutes" json:"expireMinutes" yaml:"expireMinutes"` // 令牌有效期（分钟）
}
