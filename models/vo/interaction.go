package vo

import (
	"time"

	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
)

// CommentResponse 定义了评论信息的响应数据结构
type CommentResponse struct {
	ID         uint64           `json:"id"`          // 评论ID
	Content    string           `json:"content"`     // 评论内容
	AuthorID   uint64           `json:"author_id"`   // 作者ID
	TargetType enums.TargetType `json:"target_type"` // 目标类型
	TargetID   uint64           `json:"target_id"`   // 目标ID
	ParentID   *uint64          `json:"parent_id"`   // 父评论ID，顶级评论为 null
	IsApproved bool             `json:"is_approved"` // 是否已通过审核
	CreatedAt  time.Time        `json:"created_at"`  // 创建时间
	UpdatedAt  time.Time        `json:"updated_at"`  // 更新时间
}

// ListCommentsResponse 评论列表的分页响应结构
type ListCommentsResponse struct {
	Comments []*CommentResponse `json:"comments"` // 当前页的评论列表
	Total    int64              `json:"total"`    // 符合条件的总记录数
}

// RatingResponse 定义了评分信息的响应数据结构
type RatingResponse struct {
	ID         uint64           `json:"id"`          // 评分ID
	UserID     uint64           `json:"user_id"`     // 评分用户ID
	TargetType enums.TargetType `json:"target_type"` // 目标类型
	TargetID   uint64           `json:"target_id"`   // 目标ID
	Score      float64          `json:"score"`       // 评分
	Comment    string           `json:"comment"`     // 附言
	CreatedAt  time.Time        `json:"created_at"`  // 创建时间
	UpdatedAt  time.Time        `json:"updated_at"`  // 更新时间
}

// ListRatingsResponse 评分列表的分页响应结构
type ListRatingsResponse struct {
	Ratings []*RatingResponse `json:"ratings"` // 当前页的评分列表
	Total   int64             `json:"total"`   // 符合条件的总记录数
}

// EquipmentImageVO 定义了器材图片的视图对象，已按 DisplayOrder 排序
type EquipmentImageVO struct {
	ID           uint64           `json:"id"`            // 图片ID
	TargetType   enums.TargetType `json:"target_type"`   // 目标类型
	TargetID     uint64           `json:"target_id"`     // 目标ID
	ImageURL     string           `json:"image_url"`     // 图片URL
	ObjectKey    string           `json:"object_key"`    // 图片在COS中的ObjectKey
	DisplayOrder int              `json:"display_order"` // 图片展示顺序
	CreatedAt    time.Time        `json:"created_at"`    // 上传时间
}

// MapCommentToVO 将评论实体转换为响应VO
func MapCommentToVO(comment *entities.Comment) *CommentResponse {
	if comment == nil {
		return nil
	}
	return &CommentResponse{
		ID:         comment.ID,
		Content:    comment.Content,
		AuthorID:   comment.AuthorID,
		TargetType: comment.TargetType,
		TargetID:   comment.TargetID,
		ParentID:   comment.ParentID,
		IsApproved: comment.IsApproved,
		CreatedAt:  comment.CreatedAt,
		UpdatedAt:  comment.UpdatedAt,
	}
}

// MapCommentsToVOs 将评论实体列表转换为响应VO列表
func MapCommentsToVOs(comments []*entities.Comment) []*CommentResponse {
	if len(comments) == 0 {
		return []*CommentResponse{}
	}
	responses := make([]*CommentResponse, 0, len(comments))
	for _, comment := range comments {
		if comment == nil {
			continue
		}
		responses = append(responses, MapCommentToVO(comment))
	}
	return responses
}

// MapRatingToVO 将评分实体转换为响应VO
func MapRatingToVO(rating *entities.Rating) *RatingResponse {
	if rating == nil {
		return nil
	}
	return &RatingResponse{
		ID:         rating.ID,
		UserID:     rating.UserID,
		TargetType: rating.TargetType,
		TargetID:   rating.TargetID,
		Score:      rating.Score,
		Comment:    rating.Comment,
		CreatedAt:  rating.CreatedAt,
		UpdatedAt:  rating.UpdatedAt,
	}
}

// MapRatingsToVOs 将评分实体列表转换为响应VO列表
func MapRatingsToVOs(ratings []*entities.Rating) []*RatingResponse {
	if len(ratings) == 0 {
		return []*RatingResponse{}
	}
	responses := make([]*RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		if rating == nil {
			continue
		}
		responses = append(responses, MapRatingToVO(rating))
	}
	return responses
}

// MapEquipmentImageToVO 将器材图片实体转换为视图对象
func MapEquipmentImageToVO(image *entities.EquipmentImage) *EquipmentImageVO {
	if image == nil {
		return nil
	}
	return &EquipmentImageVO{
		ID:           image.ID,
		TargetType:   image.TargetType,
		TargetID:     image.TargetID,
		ImageURL:     image.ImageURL,
		ObjectKey:    image.ObjectKey,
		DisplayOrder: image.DisplayOrder,
		CreatedAt:    image.CreatedAt,
	}
}

// MapEquipmentImagesToVOs 将器材图片实体列表转换为视图对象列表
func MapEquipmentImagesToVOs(images []*entities.EquipmentImage) []*EquipmentImageVO {
	if len(images) == 0 {
		return []*EquipmentImageVO{}
	}
	responses := make([]*EquipmentImageVO, 0, len(images))
	for _, image := range images {
		if image == nil {
			continue
		}
		responses = append(responses, MapEquipmentImageToVO(image))
	}
	return responses
}
