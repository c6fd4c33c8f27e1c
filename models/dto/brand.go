package dto

// CreateBrandRequest 定义了创建品牌的请求数据结构
type CreateBrandRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`        // 品牌英文名称，必填，唯一
	NameZh      string  `json:"name_zh" binding:"omitempty,max=100"`    // 品牌中文名称，可选
	Country     string  `json:"country" binding:"omitempty,max=50"`     // 所属国家，可选
	FoundedYear *int    `json:"founded_year" binding:"omitempty,gte=1800,lte=2100"` // 创立年份，可选
	Website     string  `json:"website" binding:"omitempty,url,max=255"`            // 官网 URL，可选
	Description string  `json:"description" binding:"omitempty"`                    // 品牌描述，可选

	// 关联的卡口ID列表。nil 表示不建立关联，空列表与 nil 等价（创建场景没有已有关联可清空）。
	// 所有ID先统一校验，任一无效则整个创建失败。
	MountIDs []uint64 `json:"mount_ids" binding:"omitempty,dive,gt=0"`
	// 主力卡口ID，可选；必须出现在 MountIDs 中，缺省取列表第一个
	PrimaryMountID *uint64 `json:"primary_mount_id" binding:"omitempty,gt=0"`
}

// UpdateBrandRequest 定义了部分更新品牌的请求数据结构。
// 未出现在载荷中的字段保持不变；可空字段显式传 null 表示清空。
type UpdateBrandRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"` // 品牌英文名称
	NameZh      Optional[string] `json:"name_zh"`                          // 品牌中文名称
	Country     Optional[string] `json:"country"`                          // 所属国家
	FoundedYear Optional[int]    `json:"founded_year"`                     // 创立年份
	Website     Optional[string] `json:"website"`                          // 官网 URL
	Description Optional[string] `json:"description"`                      // 品牌描述

	// 关联的卡口ID列表。nil 表示保持现有关联不变，空列表表示清空全部关联，
	// 非空列表表示整体替换为给定集合。
	MountIDs       *[]uint64 `json:"mount_ids" binding:"omitempty,dive,gt=0"`
	PrimaryMountID *uint64   `json:"primary_mount_id" binding:"omitempty,gt=0"`
}
