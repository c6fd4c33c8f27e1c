package config

// SourceConfig 描述单个 MySQL 连接源（写库或某个读副本）。
// 连接池参数用指针声明，为 nil 时回落到 MySQLConfig 里的共享默认值。
type SourceConfig struct {
	DSN             string `mapstructure:"dsn" yaml:"dsn"`
	MaxIdleConns    *int   `mapstructure:"max_idle_conns,omitempty" yaml:"max_idle_conns,omitempty"`
	MaxOpenConns    *int   `mapstructure:"max_open_conns,omitempty" yaml:"max_open_conns,omitempty"`
	ConnMaxLifetime *int   `mapstructure:"conn_max_lifetime,omitempty" yaml:"conn_max_lifetime,omitempty"` // 秒
}

// MySQLConfig 是器材目录库的数据库配置。
// Read 列表为空时不启用 dbresolver 读写分离，所有查询都走写库。
type MySQLConfig struct {
	Write SourceConfig   `mapstructure:"write" yaml:"write"`
	Read  []SourceConfig `mapstructure:"read" yaml:"read"`

	// 各源未单独指定时生效的共享连接池默认值。
	SharedMaxIdleConns    int `mapstructure:"max_idle_conns" yaml:"max_idle_conn"`
	SharedMaxOpenConns    int `mapstructure:"max_open_conn" yaml:"max_open_conn"`
	SharedConnMaxLifetime int `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"` // 秒
}
