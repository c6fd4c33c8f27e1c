package vo

import (
	"time"

	"github.com/Xushengqwer/camera_service/models/entities"
)

// MountResponse 定义了卡口信息的响应数据结构
type MountResponse struct {
	ID             uint64    `json:"id"`              // 卡口ID
	Name           string    `json:"name"`            // 卡口名称
	NameZh         string    `json:"name_zh"`         // 中文名称
	ReleaseYear    *int      `json:"release_year"`    // 发布年份
	FlangeDistance *float64  `json:"flange_distance"` // 法兰距 (mm)
	Diameter       *float64  `json:"diameter"`        // 内径 (mm)
	Description    string    `json:"description"`     // 描述
	CreatedAt      time.Time `json:"created_at"`      // 创建时间
	UpdatedAt      time.Time `json:"updated_at"`      // 更新时间

	// Brands 字段存储了使用该卡口的品牌关联，按品牌ID升序排列。
	Brands []BrandLinkVO `json:"brands"`
}

// BrandLinkVO 在卡口视图中表示一条品牌关联
type BrandLinkVO struct {
	BrandID   uint64 `json:"brand_id"`   // 品牌ID
	IsPrimary bool   `json:"is_primary"` // 该卡口是否为此品牌的主卡口
}

// ListMountsResponse 卡口列表的分页响应结构
type ListMountsResponse struct {
	Mounts []*MountResponse `json:"mounts"` // 当前页的卡口列表
	Total  int64            `json:"total"`  // 符合条件的总记录数
}

// MapMountToVO 将卡口实体与其品牌关联转换为响应VO
func MapMountToVO(mount *entities.Mount, links []*entities.BrandMountLink) *MountResponse {
	if mount == nil {
		return nil
	}
	brands := make([]BrandLinkVO, 0, len(links))
	for _, link := range links {
		if link == nil {
			continue
		}
		brands = append(brands, BrandLinkVO{BrandID: link.BrandID, IsPrimary: link.IsPrimary})
	}
	return &MountResponse{
		ID:             mount.ID,
		Name:           mount.Name,
		NameZh:         mount.NameZh,
		ReleaseYear:    mount.ReleaseYear,
		FlangeDistance: mount.FlangeDistance,
		Diameter:       mount.Diameter,
		Description:    mount.Description,
		CreatedAt:      mount.CreatedAt,
		UpdatedAt:      mount.UpdatedAt,
		Brands:         brands,
	}
}
