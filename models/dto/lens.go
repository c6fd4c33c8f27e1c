package dto

import "github.com/Xushengqwer/camera_service/models/enums"

// CreateLensRequest 定义了创建镜头的请求数据结构
type CreateLensRequest struct {
	Model       string         `json:"model" binding:"required,max=100"`                   // 型号，必填
	ModelZh     string         `json:"model_zh" binding:"omitempty,max=100"`               // 中文型号，可选
	BrandID     uint64         `json:"brand_id" binding:"required,gt=0"`                   // 品牌ID，必填
	ReleaseYear *int           `json:"release_year" binding:"omitempty,gte=1800,lte=2100"` // 发布年份，可选
	FocalLength string         `json:"focal_length" binding:"required,max=50"`             // 焦距描述，必填
	Aperture    string         `json:"aperture" binding:"required,max=50"`                 // 光圈范围，必填
	LensType    enums.LensType `json:"lens_type" binding:"omitempty,max=50"`               // 镜头类型，可选
	FilterSize  *float64       `json:"filter_size" binding:"omitempty,gt=0"`               // 滤镜口径，可选
	WeightGrams *int           `json:"weight_grams" binding:"omitempty,gt=0"`              // 重量（克），可选
	Dimensions  string         `json:"dimensions" binding:"omitempty,max=50"`              // 外形尺寸，可选
	Description string         `json:"description" binding:"omitempty"`                    // 描述，可选

	// 关联的卡口ID列表。所有ID先统一校验，任一无效则整个创建失败，不留下镜头行与关联行。
	MountIDs       []uint64 `json:"mount_ids" binding:"omitempty,dive,gt=0"`
	PrimaryMountID *uint64  `json:"primary_mount_id" binding:"omitempty,gt=0"`
}

// UpdateLensRequest 定义了部分更新镜头的请求数据结构
type UpdateLensRequest struct {
	Model       *string                  `json:"model" binding:"omitempty,max=100"`
	ModelZh     Optional[string]         `json:"model_zh"`
	BrandID     *uint64                  `json:"brand_id" binding:"omitempty,gt=0"`
	ReleaseYear Optional[int]            `json:"release_year"`
	FocalLength *string                  `json:"focal_length" binding:"omitempty,max=50"` // 必填字段不可置空
	Aperture    *string                  `json:"aperture" binding:"omitempty,max=50"`
	LensType    Optional[enums.LensType] `json:"lens_type"`
	FilterSize  Optional[float64]        `json:"filter_size"`
	WeightGrams Optional[int]            `json:"weight_grams"`
	Dimensions  Optional[string]         `json:"dimensions"`
	Description Optional[string]         `json:"description"`

	// nil 保持不变 / 空列表清空 / 非空整体替换
	MountIDs       *[]uint64 `json:"mount_ids" binding:"omitempty,dive,gt=0"`
	PrimaryMountID *uint64   `json:"primary_mount_id" binding:"omitempty,gt=0"`
}

// ListLensesRequest 镜头列表查询参数
type ListLensesRequest struct {
	ListQuery
	BrandID *uint64 `json:"brand_id" form:"brand_id" binding:"omitempty,gt=0"`
	MountID *uint64 `json:"mount_id" form:"mount_id" binding:"omitempty,gt=0"`
}
