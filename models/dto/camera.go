package dto

import "github.com/Xushengqwer/camera_service/models/enums"

// CreateCameraRequest 定义了创建相机的请求数据结构
type CreateCameraRequest struct {
	Model        string           `json:"model" binding:"required,max=100"`                    // 型号，必填
	ModelZh      string           `json:"model_zh" binding:"omitempty,max=100"`                // 中文型号，可选
	BrandID      uint64           `json:"brand_id" binding:"required,gt=0"`                    // 品牌ID，必填
	MountID      *uint64          `json:"mount_id" binding:"omitempty,gt=0"`                   // 卡口ID，可选
	ReleaseYear  *int             `json:"release_year" binding:"omitempty,gte=1800,lte=2100"`  // 发布年份，可选
	Type         enums.CameraType `json:"type" binding:"omitempty,max=50"`                     // 相机形态，可选
	SensorSize   string           `json:"sensor_size" binding:"omitempty,max=50"`              // 传感器尺寸，可选
	Megapixels   *float64         `json:"megapixels" binding:"omitempty,gt=0"`                 // 有效像素（百万），可选
	ISORange     string           `json:"iso_range" binding:"omitempty,max=50"`                // 感光度范围，可选
	ShutterSpeed string           `json:"shutter_speed" binding:"omitempty,max=50"`            // 快门速度范围，可选
	WeightGrams  *int             `json:"weight_grams" binding:"omitempty,gt=0"`               // 重量（克），可选
	Dimensions   string           `json:"dimensions" binding:"omitempty,max=50"`               // 外形尺寸，可选
	Description  string           `json:"description" binding:"omitempty"`                     // 描述，可选
}

// UpdateCameraRequest 定义了部分更新相机的请求数据结构。
// 评分聚合字段 (rating / rating_count) 不可经由该载荷修改。
type UpdateCameraRequest struct {
	Model        *string                    `json:"model" binding:"omitempty,max=100"`
	ModelZh      Optional[string]           `json:"model_zh"`
	BrandID      *uint64                    `json:"brand_id" binding:"omitempty,gt=0"`
	MountID      Optional[uint64]           `json:"mount_id"` // null 表示解除卡口关联
	ReleaseYear  Optional[int]              `json:"release_year"`
	Type         Optional[enums.CameraType] `json:"type"`
	SensorSize   Optional[string]           `json:"sensor_size"`
	Megapixels   Optional[float64]          `json:"megapixels"`
	ISORange     Optional[string]           `json:"iso_range"`
	ShutterSpeed Optional[string]           `json:"shutter_speed"`
	WeightGrams  Optional[int]              `json:"weight_grams"`
	Dimensions   Optional[string]           `json:"dimensions"`
	Description  Optional[string]           `json:"description"`
}

// ListCamerasRequest 相机列表查询参数
type ListCamerasRequest struct {
	ListQuery
	BrandID *uint64 `json:"brand_id" form:"brand_id" binding:"omitempty,gt=0"` // 按品牌过滤，可选
	MountID *uint64 `json:"mount_id" form:"mount_id" binding:"omitempty,gt=0"` // 按卡口过滤，可选
}
