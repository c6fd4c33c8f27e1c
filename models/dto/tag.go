package dto

// CreateTagRequest 定义了创建标签的请求数据结构
type CreateTagRequest struct {
	Name        string `json:"name" binding:"required,max=50"`          // 名称，必填，全局唯一
	Slug        string `json:"slug" binding:"required,max=50"`          // URL 别名，必填，全局唯一
	Description string `json:"description" binding:"omitempty,max=200"` // 描述，可选
}

// UpdateTagRequest 定义了部分更新标签的请求数据结构
type UpdateTagRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=50"`
	Slug        *string          `json:"slug" binding:"omitempty,max=50"`
	Description Optional[string] `json:"description"`
}
