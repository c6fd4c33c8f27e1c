package entities

import "github.com/Xushengqwer/camera_service/models/enums"

// Camera 相机实体
// - 使用场景: 器材目录的核心记录之一，属于一个品牌，可选挂一个卡口
// - 表名: cameras
// - Rating/RatingCount 为评分聚合字段，由评分服务在每次评分写入的事务内重算，
//   不允许其他路径修改
type Camera struct {
	BaseModel

	// 相机型号（英文），必填，最大长度100个字符
	// - 唯一性为应用层预检查（历史数据存在大小写变体，不加唯一索引）
	Model string `gorm:"type:varchar(100);not null;index"`

	// 相机型号（中文）
	ModelZh string `gorm:"type:varchar(100)"`

	// 品牌ID，必填外键
	BrandID uint64 `gorm:"type:bigint;not null;index"`

	// 卡口ID，可选外键；无卡口（如固定镜头机型）时为 NULL
	MountID *uint64 `gorm:"type:bigint;index"`

	// 发布年份
	ReleaseYear *int `gorm:"type:int"`

	// 相机形态，取值见 enums.CameraType (DSLR/Mirrorless/Compact/Film/Other)
	Type enums.CameraType `gorm:"type:varchar(50)"`

	// 传感器尺寸，例如 "Full Frame"、"APS-C"
	SensorSize string `gorm:"type:varchar(50)"`

	// 有效像素（百万）
	Megapixels *float64 `gorm:"type:decimal(5,2)"`

	// 感光度范围，例如 "100-51200"
	ISORange string `gorm:"type:varchar(50)"`

	// 快门速度范围，例如 "30-1/8000"
	ShutterSpeed string `gorm:"type:varchar(50)"`

	// 重量（克）
	WeightGrams *int `gorm:"type:int"`

	// 外形尺寸，例如 "138.4x97.5x88.4mm"
	Dimensions string `gorm:"type:varchar(50)"`

	// 详细描述
	Description string `gorm:"type:text"`

	// 综合评分，0.0–5.0，保留一位小数；无评分时为 0
	Rating float64 `gorm:"type:decimal(2,1);default:0"`

	// 评分数量，>= 0
	RatingCount int64 `gorm:"type:int;default:0"`

	// 创建人ID
	CreatedBy *uint64 `gorm:"type:bigint"`
}
