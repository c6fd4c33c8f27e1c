package entities

import "time"

// 多对多关联表。均以两侧外键的复合主键定位一行，
// 删除 Brand/Mount/Lens/Article 时由服务层在同一事务内手动清理。

// BrandMountLink 品牌-卡口关联，表名 brand_mount_links
type BrandMountLink struct {
	BrandID   uint64    `gorm:"type:bigint;primaryKey;autoIncrement:false"`
	MountID   uint64    `gorm:"type:bigint;primaryKey;autoIncrement:false"`
	IsPrimary bool      `gorm:"default:false"` // 是否为该品牌的主力卡口
	CreatedAt time.Time
}

// LensMountLink 镜头-卡口关联，表名 lens_mount_links
type LensMountLink struct {
	LensID    uint64    `gorm:"type:bigint;primaryKey;autoIncrement:false"`
	MountID   uint64    `gorm:"type:bigint;primaryKey;autoIncrement:false"`
	IsPrimary bool      `gorm:"default:false"` // 是否为主打卡口
	CreatedAt time.Time
}

// ArticleTagLink 文章-标签关联，表名 article_tag_links
type ArticleTagLink struct {
	ArticleID uint64    `gorm:"type:bigint;primaryKey;autoIncrement:false"`
	TagID     uint64    `gorm:"type:bigint;primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}
