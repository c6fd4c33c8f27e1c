package dto

// CreateMountRequest 定义了创建卡口的请求数据结构
type CreateMountRequest struct {
	Name           string   `json:"name" binding:"required,max=100"`                     // 卡口名称，必填，唯一
	NameZh         string   `json:"name_zh" binding:"omitempty,max=100"`                 // 中文名称，可选
	ReleaseYear    *int     `json:"release_year" binding:"omitempty,gte=1800,lte=2100"`  // 发布年份，可选
	FlangeDistance *float64 `json:"flange_distance" binding:"omitempty,gt=0"`            // 法兰距（毫米），可选
	Diameter       *float64 `json:"diameter" binding:"omitempty,gt=0"`                   // 内径（毫米），可选
	Description    string   `json:"description" binding:"omitempty"`                     // 描述，可选

	// 关联的品牌ID列表，语义同 CreateBrandRequest.MountIDs
	BrandIDs       []uint64 `json:"brand_ids" binding:"omitempty,dive,gt=0"`
	PrimaryBrandID *uint64  `json:"primary_brand_id" binding:"omitempty,gt=0"`
}

// UpdateMountRequest 定义了部分更新卡口的请求数据结构
type UpdateMountRequest struct {
	Name           *string           `json:"name" binding:"omitempty,max=100"`
	NameZh         Optional[string]  `json:"name_zh"`
	ReleaseYear    Optional[int]     `json:"release_year"`
	FlangeDistance Optional[float64] `json:"flange_distance"`
	Diameter       Optional[float64] `json:"diameter"`
	Description    Optional[string]  `json:"description"`

	// nil 保持不变 / 空列表清空 / 非空整体替换
	BrandIDs       *[]uint64 `json:"brand_ids" binding:"omitempty,dive,gt=0"`
	PrimaryBrandID *uint64   `json:"primary_brand_id" binding:"omitempty,gt=0"`
}
