package entities

import "github.com/Xushengqwer/camera_service/models/enums"

// Rating 评分实体
// - 表名: ratings
// - 以 (target_type, target_id) 多态指向相机/镜头
// - (user_id, target_type, target_id) 复合唯一索引保证一个用户对同一对象只评一次分；
//   服务层的预检查负责给出友好的 Conflict 信息，并发重复写由该索引在提交时兜底
type Rating struct {
	BaseModel

	// 评分用户ID
	UserID uint64 `gorm:"type:bigint;not null;uniqueIndex:uk_rating_user_target"`

	// 评分对象类型: camera-相机, lens-镜头
	TargetType enums.TargetType `gorm:"type:varchar(20);not null;uniqueIndex:uk_rating_user_target"`

	// 评分对象ID
	TargetID uint64 `gorm:"type:bigint;not null;uniqueIndex:uk_rating_user_target"`

	// 评分值，范围1-5分
	Score float64 `gorm:"type:decimal(2,1);not null"`

	// 评分附言，可选
	Comment string `gorm:"type:varchar(500)"`
}
