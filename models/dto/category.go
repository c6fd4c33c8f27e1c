package dto

// CreateCategoryRequest 定义了创建分类的请求数据结构
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`      // 名称，必填，全局唯一
	NameZh      string  `json:"name_zh" binding:"omitempty,max=100"`  // 中文名称，可选
	Slug        string  `json:"slug" binding:"required,max=100"`      // URL 别名，必填，全局唯一
	Description string  `json:"description" binding:"omitempty,max=500"` // 描述，可选
	ParentID    *uint64 `json:"parent_id" binding:"omitempty,gt=0"`   // 父分类ID，可选，形成树形结构
}

// UpdateCategoryRequest 定义了部分更新分类的请求数据结构。
// ParentID 传 null 表示提升为顶级分类；指向自身或后代会形成环，被拒绝。
type UpdateCategoryRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	NameZh      Optional[string] `json:"name_zh"`
	Slug        *string          `json:"slug" binding:"omitempty,max=100"`
	Description Optional[string] `json:"description"`
	ParentID    Optional[uint64] `json:"parent_id"`
}
