package config

// CameraConfig 是服务的聚合配置，由 core.LoadConfig 从 YAML + 环境变量加载。
type CameraConfig struct {
	ZapConfig      ZapConfig      `mapstructure:"zapConfig" json:"zapConfig" yaml:"zapConfig"`
	GormLogConfig  GormLogConfig  `mapstructure:"gormLogConfig" json:"gormLogConfig" yaml:"gormLogConfig"`
	ServerConfig   ServerConfig   `mapstructure:"serverConfig" json:"serverConfig" yaml:"serverConfig"`
	TracerConfig   TracerConfig   `mapstructure:"tracerConfig" json:"tracerConfig" yaml:"tracerConfig"`
	JWTConfig      JWTConfig      `mapstructure:"jwtConfig" json:"jwtConfig" yaml:"jwtConfig"`
	ViewSyncConfig ViewSyncConfig `mapstructure:"viewSyncConfig" json:"viewSyncConfig" yaml:"viewSyncConfig"`
	MySQLConfig    MySQLConfig    `mapstructure:"mysqlConfig" json:"mysqlConfig" yaml:"mysqlConfig"`
	RedisConfig    RedisConfig    `mapstructure:"redisConfig" json:"redisConfig" yaml:"redisConfig"`
	COSConfig      COSConfig      `mapstructure:"equipmentImagesCosConfig" json:"equipmentImagesCosConfig" yaml:"equipmentImagesCosConfig"`
}
