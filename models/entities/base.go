package entities

import "time"

// BaseModel 所有实体共用的基础字段。
// - 不使用 GORM 软删除：本服务的删除语义是硬删除并手动级联清理关联表，
//   且多数表带存储级唯一索引，软删除残留行会永久占用唯一槽位。
type BaseModel struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time // 记录创建时间，GORM 自动填充
	UpdatedAt time.Time // 记录更新时间，GORM 自动填充
}
