package config

// ViewSyncConfig 包含文章浏览量同步任务相关的配置
type ViewSyncConfig struct {
	// BatchSize 是将 Redis 中的浏览量同步到 MySQL 数据库时，每个数据库操作批次处理的文章数量。
	// 例如从 Redis 获取到 20,000 条文章的浏览量需要同步，且 BatchSize 设置为 500，
	// 则同步任务会将数据分割成 40 个小批次，每个小批次通过一次 UPDATE (CASE WHEN) 语句完成。
	BatchSize int `mapstructure:"batchSize" json:"batchSize" yaml:"batchSize"`

	// ConcurrencyLevel 是同步任务并发处理数据批次的 worker (goroutine) 数量。
	// 主要影响同时向数据库发起更新请求的并发连接数。
	ConcurrencyLevel int `mapstructure:"concurrencyLevel" json:"concurrencyLevel" yaml:"concurrencyLevel"`

	// ScanBatchSize 是从 Redis 使用 SCAN 命令遍历浏览量 Key 时传给 COUNT 参数的建议值。
	// Redis 不保证精确返回此数量，但会以此为提示。
	ScanBatchSize int64 `mapstructure:"scanBatchSize" json:"scanBatchSize" yaml:"scanBatchSize"`
}
