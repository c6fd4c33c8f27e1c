package entities

import "github.com/Xushengqwer/camera_service/models/enums"

// Lens 镜头实体，与 Camera 对称
// - 表名: lenses
// - 与 Mount 通过 lens_mount_links 关联表建立多对多关系（一支镜头可有多个卡口版本）
type Lens struct {
	BaseModel

	// 镜头型号（英文），必填，应用层唯一预检查
	Model string `gorm:"type:varchar(100);not null;index"`

	// 镜头型号（中文）
	ModelZh string `gorm:"type:varchar(100)"`

	// 品牌ID，必填外键
	BrandID uint64 `gorm:"type:bigint;not null;index"`

	// 发布年份
	ReleaseYear *int `gorm:"type:int"`

	// 焦距描述，必填，例如 "24-70mm"
	FocalLength string `gorm:"type:varchar(50);not null"`

	// 光圈范围，必填，例如 "f/2.8"
	Aperture string `gorm:"type:varchar(50);not null"`

	// 镜头类型，取值见 enums.LensType (Prime/Zoom/Macro/Wide/Telephoto/Other)
	LensType enums.LensType `gorm:"type:varchar(50)"`

	// 滤镜口径（毫米）
	FilterSize *float64 `gorm:"type:decimal(5,2)"`

	// 重量（克）
	WeightGrams *int `gorm:"type:int"`

	// 外形尺寸
	Dimensions string `gorm:"type:varchar(50)"`

	// 详细描述
	Description string `gorm:"type:text"`

	// 综合评分，0.0–5.0，保留一位小数；由评分服务在事务内重算
	Rating float64 `gorm:"type:decimal(2,1);default:0"`

	// 评分数量，>= 0
	RatingCount int64 `gorm:"type:int;default:0"`

	// 创建人ID
	CreatedBy *uint64 `gorm:"type:bigint"`
}
