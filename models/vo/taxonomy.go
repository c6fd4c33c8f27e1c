package vo

import (
	"time"

	"github.com/Xushengqwer/camera_service/models/entities"
)

// CategoryResponse 定义了分类信息的响应数据结构
type CategoryResponse struct {
	ID          uint64    `json:"id"`          // 分类ID
	Name        string    `json:"name"`        // 名称
	NameZh      string    `json:"name_zh"`     // 中文名称
	Slug        string    `json:"slug"`        // URL 别名
	Description string    `json:"description"` // 描述
	ParentID    *uint64   `json:"parent_id"`   // 父分类ID，顶级分类为 null
	CreatedAt   time.Time `json:"created_at"`  // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`  // 更新时间
}

// ListCategoriesResponse 分类列表的分页响应结构
type ListCategoriesResponse struct {
	Categories []*CategoryResponse `json:"categories"` // 当前页的分类列表
	Total      int64               `json:"total"`      // 符合条件的总记录数
}

// TagResponse 定义了标签信息的响应数据结构
type TagResponse struct {
	ID          uint64    `json:"id"`          // 标签ID
	Name        string    `json:"name"`        // 名称
	Slug        string    `json:"slug"`        // URL 别名
	Description string    `json:"description"` // 描述
	CreatedAt   time.Time `json:"created_at"`  // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`  // 更新时间
}

// ListTagsResponse 标签列表的分页响应结构
type ListTagsResponse struct {
	Tags  []*TagResponse `json:"tags"`  // 当前页的标签列表
	Total int64          `json:"total"` // 符合条件的总记录数
}

// MapCategoryToVO 将分类实体转换为响应VO
func MapCategoryToVO(category *entities.Category) *CategoryResponse {
	if category == nil {
		return nil
	}
	return &CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		NameZh:      category.NameZh,
		Slug:        category.Slug,
		Description: category.Description,
		ParentID:    category.ParentID,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// MapCategoriesToVOs 将分类实体列表转换为响应VO列表
func MapCategoriesToVOs(categories []*entities.Category) []*CategoryResponse {
	if len(categories) == 0 {
		return []*CategoryResponse{}
	}
	responses := make([]*CategoryResponse, 0, len(categories))
	for _, category := range categories {
		if category == nil {
			continue
		}
		responses = append(responses, MapCategoryToVO(category))
	}
	return responses
}

// MapTagToVO 将标签实体转换为响应VO
func MapTagToVO(tag *entities.Tag) *TagResponse {
	if tag == nil {
		return nil
	}
	return &TagResponse{
		ID:          tag.ID,
		Name:        tag.Name,
		Slug:        tag.Slug,
		Description: tag.Description,
		CreatedAt:   tag.CreatedAt,
		UpdatedAt:   tag.UpdatedAt,
	}
}

// MapTagsToVOs 将标签实体列表转换为响应VO列表
func MapTagsToVOs(tags []*entities.Tag) []*TagResponse {
	if len(tags) == 0 {
		return []*TagResponse{}
	}
	responses := make([]*TagResponse, 0, len(tags))
	for _, tag := range tags {
		if tag == nil {
			continue
		}
		responses = append(responses, MapTagToVO(tag))
	}
	return responses
}
