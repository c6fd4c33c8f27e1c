package dto

import "github.com/Xushengqwer/camera_service/models/enums"

// CreateArticleRequest 定义了创建文章的请求数据结构
type CreateArticleRequest struct {
	Title      string              `json:"title" binding:"required,max=200"`    // 标题，必填
	TitleZh    string              `json:"title_zh" binding:"omitempty,max=200"` // 中文标题，可选
	Slug       string              `json:"slug" binding:"required,max=255"`     // URL 别名，必填，全局唯一
	Content    string              `json:"content" binding:"required"`          // 正文
	Excerpt    string              `json:"excerpt" binding:"omitempty,max=500"` // 摘要，可选
	CategoryID *uint64             `json:"category_id" binding:"omitempty,gt=0"` // 所属分类，可选
	Status     enums.ArticleStatus `json:"status" binding:"omitempty"`          // 缺省为草稿

	// 关联标签ID列表，统一校验后整体写入
	TagIDs []uint64 `json:"tag_ids" binding:"omitempty,dive,gt=0"`
}

// UpdateArticleRequest 定义了部分更新文章的请求数据结构
type UpdateArticleRequest struct {
	Title      *string                       `json:"title" binding:"omitempty,max=200"`
	TitleZh    Optional[string]              `json:"title_zh"`
	Slug       *string                       `json:"slug" binding:"omitempty,max=255"`
	Content    *string                       `json:"content" binding:"omitempty"`
	Excerpt    Optional[string]              `json:"excerpt"`
	CategoryID Optional[uint64]              `json:"category_id"` // null 表示移出分类
	Status     *enums.ArticleStatus          `json:"status" binding:"omitempty"`

	// nil 保持不变 / 空列表清空 / 非空整体替换
	TagIDs *[]uint64 `json:"tag_ids" binding:"omitempty,dive,gt=0"`
}

// ListArticlesRequest 文章列表查询参数。
// 未认证或非管理员调用方只能看到已发布文章，过滤在 service 层收紧。
type ListArticlesRequest struct {
	ListQuery
	Status     *enums.ArticleStatus `json:"status" form:"status" binding:"omitempty"`
	CategoryID *uint64              `json:"category_id" form:"category_id" binding:"omitempty,gt=0"`
	TagID      *uint64              `json:"tag_id" form:"tag_id" binding:"omitempty,gt=0"`
	AuthorID   *uint64              `json:"author_id" form:"author_id" binding:"omitempty,gt=0"`
}
