package entities

import "github.com/Xushengqwer/camera_service/models/enums"

// EquipmentImage 器材样张实体
// - 表名: equipment_images
// - 图片文件存放在腾讯云 COS，这里记录公开访问 URL 与对象键；
//   删除记录时同时尽力删除 COS 对象
type EquipmentImage struct {
	BaseModel

	// 图片所属目标类型: camera / lens
	TargetType enums.TargetType `gorm:"type:varchar(20);not null;index:idx_image_target"`

	// 图片所属目标ID
	TargetID uint64 `gorm:"type:bigint;not null;index:idx_image_target"`

	// 图片公开访问 URL
	ImageURL string `gorm:"type:varchar(255);not null"`

	// COS 对象键，删除对象时使用
	ObjectKey string `gorm:"type:varchar(255);not null"`

	// 展示顺序，从 0 开始
	DisplayOrder int `gorm:"type:int;default:0"`
}
