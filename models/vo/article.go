package vo

import (
	"time"

	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
)

// ArticleResponse 定义了文章基础信息的响应数据结构，用于列表场景
type ArticleResponse struct {
	ID           uint64              `json:"id"`            // 文章ID
	Title        string              `json:"title"`         // 标题
	TitleZh      string              `json:"title_zh"`      // 中文标题
	Slug         string              `json:"slug"`          // URL 别名
	Excerpt      string              `json:"excerpt"`       // 摘要
	AuthorID     uint64              `json:"author_id"`     // 作者ID
	CategoryID   *uint64             `json:"category_id"`   // 所属分类ID
	Status       enums.ArticleStatus `json:"status"`        // 状态：draft / published / archived
	ViewCount    int64               `json:"view_count"`    // 浏览量
	LikeCount    int64               `json:"like_count"`    // 点赞数
	CommentCount int64               `json:"comment_count"` // 评论数
	PublishedAt  *time.Time          `json:"published_at"`  // 首次发布时间
	CreatedAt    time.Time           `json:"created_at"`    // 创建时间
	UpdatedAt    time.Time           `json:"updated_at"`    // 更新时间
}

// ArticleDetailVO 定义了文章详情页的完整视图对象。
// 在基础信息之上补充正文与标签ID列表。
type ArticleDetailVO struct {
	ArticleResponse
	Content string   `json:"content"` // 正文
	TagIDs  []uint64 `json:"tag_ids"` // 关联标签ID列表，升序排列
}

// ListArticlesResponse 文章列表的分页响应结构
type ListArticlesResponse struct {
	Articles []*ArticleResponse `json:"articles"` // 当前页的文章列表
	Total    int64              `json:"total"`    // 符合条件的总记录数
}

// MapArticleToVO 将文章实体转换为基础响应VO
func MapArticleToVO(article *entities.Article) *ArticleResponse {
	if article == nil {
		return nil
	}
	return &ArticleResponse{
		ID:           article.ID,
		Title:        article.Title,
		TitleZh:      article.TitleZh,
		Slug:         article.Slug,
		Excerpt:      article.Excerpt,
		AuthorID:     article.AuthorID,
		CategoryID:   article.CategoryID,
		Status:       article.Status,
		ViewCount:    article.ViewCount,
		LikeCount:    article.LikeCount,
		CommentCount: article.CommentCount,
		PublishedAt:  article.PublishedAt,
		CreatedAt:    article.CreatedAt,
		UpdatedAt:    article.UpdatedAt,
	}
}

// MapArticlesToVOs 将文章实体列表转换为基础响应VO列表
func MapArticlesToVOs(articles []*entities.Article) []*ArticleResponse {
	if len(articles) == 0 {
		return []*ArticleResponse{}
	}
	responses := make([]*ArticleResponse, 0, len(articles))
	for _, article := range articles {
		if article == nil {
			continue
		}
		responses = append(responses, MapArticleToVO(article))
	}
	return responses
}

// MapArticleToDetailVO 将文章实体与其标签关联转换为详情VO
func MapArticleToDetailVO(article *entities.Article, links []*entities.ArticleTagLink) *ArticleDetailVO {
	base := MapArticleToVO(article)
	if base == nil {
		return nil
	}
	tagIDs := make([]uint64, 0, len(links))
	for _, link := range links {
		if link == nil {
			continue
		}
		tagIDs = append(tagIDs, link.TagID)
	}
	return &ArticleDetailVO{
		ArticleResponse: *base,
		Content:         article.Content,
		TagIDs:          tagIDs,
	}
}
