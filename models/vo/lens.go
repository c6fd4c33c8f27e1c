package vo

import (
	"time"

	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
)

// LensResponse 定义了镜头信息的响应数据结构
type LensResponse struct {
	ID          uint64         `json:"id"`           // 镜头ID
	Model       string         `json:"model"`        // 型号
	ModelZh     string         `json:"model_zh"`     // 中文型号
	BrandID     uint64         `json:"brand_id"`     // 所属品牌ID
	ReleaseYear *int           `json:"release_year"` // 发布年份
	FocalLength string         `json:"focal_length"` // 焦距描述
	Aperture    string         `json:"aperture"`     // 光圈范围
	LensType    enums.LensType `json:"lens_type"`    // 镜头类型
	FilterSize  *float64       `json:"filter_size"`  // 滤镜口径 (mm)
	WeightGrams *int           `json:"weight_grams"` // 重量（克）
	Dimensions  string         `json:"dimensions"`   // 外形尺寸
	Description string         `json:"description"`  // 描述
	Rating      float64        `json:"rating"`       // 平均评分，保留一位小数
	RatingCount int64          `json:"rating_count"` // 评分数量
	CreatedAt   time.Time      `json:"created_at"`   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`   // 更新时间

	// MountIDs 字段存储了镜头兼容的卡口ID列表，升序排列。
	MountIDs []uint64 `json:"mount_ids"`
}

// ListLensesResponse 镜头列表的分页响应结构
type ListLensesResponse struct {
	Lenses []*LensResponse `json:"lenses"` // 当前页的镜头列表
	Total  int64           `json:"total"`  // 符合条件的总记录数
}

// MapLensToVO 将镜头实体与其卡口关联转换为响应VO
func MapLensToVO(lens *entities.Lens, links []*entities.LensMountLink) *LensResponse {
	if lens == nil {
		return nil
	}
	mountIDs := make([]uint64, 0, len(links))
	for _, link := range links {
		if link == nil {
			continue
		}
		mountIDs = append(mountIDs, link.MountID)
	}
	return &LensResponse{
		ID:          lens.ID,
		Model:       lens.Model,
		ModelZh:     lens.ModelZh,
		BrandID:     lens.BrandID,
		ReleaseYear: lens.ReleaseYear,
		FocalLength: lens.FocalLength,
		Aperture:    lens.Aperture,
		LensType:    lens.LensType,
		FilterSize:  lens.FilterSize,
		WeightGrams: lens.WeightGrams,
		Dimensions:  lens.Dimensions,
		Description: lens.Description,
		Rating:      lens.Rating,
		RatingCount: lens.RatingCount,
		CreatedAt:   lens.CreatedAt,
		UpdatedAt:   lens.UpdatedAt,
		MountIDs:    mountIDs,
	}
}
