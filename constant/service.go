package constant

// 服务标识，用于链路追踪与日志字段
const (
	ServiceName    = "camera_service"
	ServiceVersion = "1.0.0"
)

// SyncViewCountInterval 是文章浏览量从 Redis 刷回 MySQL 的 cron 表达式。
// 默认每 5 分钟执行一次。
const SyncViewCountInterval = "*/5 * * * *"

// COSObjectKeyPrefixEquipmentImages 是器材样张在 COS 中的对象键前缀。
// 完整对象键形如: equipment/images/20250101/camera_12_<uuid>.jpg
const COSObjectKeyPrefixEquipmentImages = "equipment/images/"
