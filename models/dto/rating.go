package dto

import "github.com/Xushengqwer/camera_service/models/enums"

// CreateRatingRequest 定义了发表评分的请求数据结构。
// 同一用户对同一目标只能评一次，重复提交返回冲突。
type CreateRatingRequest struct {
	TargetType enums.TargetType `json:"target_type" binding:"required"`        // 目标类型：camera / lens
	TargetID   uint64           `json:"target_id" binding:"required,gt=0"`     // 目标ID
	Score      float64          `json:"score" binding:"required,gte=1,lte=5"` // 评分，1.0 ~ 5.0
	Comment    string           `json:"comment" binding:"omitempty,max=500"`   // 附言，可选
}

// UpdateRatingRequest 定义了修改评分的请求数据结构。
// 允许把评分挪到另一个目标上，挪动时会按新目标重查唯一性。
type UpdateRatingRequest struct {
	TargetType *enums.TargetType `json:"target_type" binding:"omitempty"`
	TargetID   *uint64           `json:"target_id" binding:"omitempty,gt=0"`
	Score      *float64          `json:"score" binding:"omitempty,gte=1,lte=5"`
	Comment    Optional[string]  `json:"comment"`
}

// ListRatingsRequest 按目标查询评分列表
type ListRatingsRequest struct {
	ListQuery
	TargetType enums.TargetType `json:"target_type" form:"target_type" binding:"required"`
	TargetID   uint64           `json:"target_id" form:"target_id" binding:"required,gt=0"`
}
