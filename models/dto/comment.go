package dto

import "github.com/Xushengqwer/camera_service/models/enums"

// CreateCommentRequest 定义了发表评论的请求数据结构。
// 评论可以挂在文章、相机或镜头上，目标必须真实存在。
type CreateCommentRequest struct {
	Content    string           `json:"content" binding:"required,max=2000"`  // 评论内容，必填
	TargetType enums.TargetType `json:"target_type" binding:"required"`       // 目标类型：article / camera / lens
	TargetID   uint64           `json:"target_id" binding:"required,gt=0"`    // 目标ID
	ParentID   *uint64          `json:"parent_id" binding:"omitempty,gt=0"`   // 父评论ID，可选，用于回复
}

// UpdateCommentRequest 定义了修改评论的请求数据结构，仅内容可改
type UpdateCommentRequest struct {
	Content *string `json:"content" binding:"omitempty,max=2000"`
	// 审核状态仅管理员可改
	IsApproved *bool `json:"is_approved" binding:"omitempty"`
}

// ListCommentsRequest 按目标查询评论列表
type ListCommentsRequest struct {
	ListQuery
	TargetType enums.TargetType `json:"target_type" form:"target_type" binding:"required"`
	TargetID   uint64           `json:"target_id" form:"target_id" binding:"required,gt=0"`
}
