package vo

import (
	"time"

	"github.com/Xushengqwer/camera_service/models/entities"
)

// BrandResponse 定义了品牌信息的响应数据结构
type BrandResponse struct {
	ID          uint64    `json:"id"`           // 品牌ID
	Name        string    `json:"name"`         // 品牌名称
	NameZh      string    `json:"name_zh"`      // 中文名称
	Country     string    `json:"country"`      // 所属国家
	FoundedYear *int      `json:"founded_year"` // 创立年份
	Website     string    `json:"website"`      // 官网地址
	Description string    `json:"description"`  // 品牌描述
	CreatedAt   time.Time `json:"created_at"`   // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`   // 更新时间

	// Mounts 字段存储了品牌支持的卡口关联，按卡口ID升序排列。
	Mounts []MountLinkVO `json:"mounts"`
}

// MountLinkVO 在品牌视图中表示一条卡口关联
type MountLinkVO struct {
	MountID   uint64 `json:"mount_id"`   // 卡口ID
	IsPrimary bool   `json:"is_primary"` // 是否为该品牌的主卡口
}

// ListBrandsResponse 品牌列表的分页响应结构
type ListBrandsResponse struct {
	Brands []*BrandResponse `json:"brands"` // 当前页的品牌列表
	Total  int64            `json:"total"`  // 符合条件的总记录数
}

// MapBrandToVO 将品牌实体与其卡口关联转换为响应VO
func MapBrandToVO(brand *entities.Brand, links []*entities.BrandMountLink) *BrandResponse {
	if brand == nil {
		return nil
	}
	mounts := make([]MountLinkVO, 0, len(links))
	for _, link := range links {
		if link == nil {
			continue
		}
		mounts = append(mounts, MountLinkVO{MountID: link.MountID, IsPrimary: link.IsPrimary})
	}
	return &BrandResponse{
		ID:          brand.ID,
		Name:        brand.Name,
		NameZh:      brand.NameZh,
		Country:     brand.Country,
		FoundedYear: brand.FoundedYear,
		Website:     brand.Website,
		Description: brand.Description,
		CreatedAt:   brand.CreatedAt,
		UpdatedAt:   brand.UpdatedAt,
		Mounts:      mounts,
	}
}
