package mysql

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/pkg/core"
)

// BrandMountLinkRepository 维护品牌与卡口之间的关联行。
// 关联行没有独立主键，替换语义统一实现为"先删后插"且必须跑在调用方的事务里。
type BrandMountLinkRepository interface {
	// GetLinksByBrandID 查询品牌的全部卡口关联，按 mount_id 升序。
	GetLinksByBrandID(ctx context.Context, brandID uint64) ([]*entities.BrandMountLink, error)

	// GetLinksByMountID 查询卡口的全部品牌关联，按 brand_id 升序。
	GetLinksByMountID(ctx context.Context, mountID uint64) ([]*entities.BrandMountLink, error)

	// ReplaceLinksForBrand 用给定集合整体替换品牌的卡口关联。
	// - links 为空切片时等价于清空该品牌的所有关联。
	ReplaceLinksForBrand(ctx context.Context, db *gorm.DB, brandID uint64, links []*entities.BrandMountLink) error

	// ReplaceLinksForMount 用给定集合整体替换卡口的品牌关联。
	ReplaceLinksForMount(ctx context.Context, db *gorm.DB, mountID uint64, links []*entities.BrandMountLink) error

	// DeleteLinksByBrandID 删除品牌的全部关联行，用于品牌删除时的手动级联。
	DeleteLinksByBrandID(ctx context.Context, db *gorm.DB, brandID uint64) error

	// DeleteLinksByMountID 删除卡口的全部关联行，用于卡口删除时的手动级联。
	DeleteLinksByMountID(ctx context.Context, db *gorm.DB, mountID uint64) error
}

type brandMountLinkRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewBrandMountLinkRepository 是 brandMountLinkRepository 的构造函数。
func NewBrandMountLinkRepository(db *gorm.DB, logger *core.ZapLogger) BrandMountLinkRepository {
	return &brandMountLinkRepository{db: db, logger: logger}
}

func (r *brandMountLinkRepository) GetLinksByBrandID(ctx context.Context, brandID uint64) ([]*entities.BrandMountLink, error) {
	var links []*entities.BrandMountLink
	if err := r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("mount_id ASC").
		Find(&links).Error; err != nil {
		r.logger.Error("查询品牌卡口关联失败", zap.Error(err), zap.Uint64("brandID", brandID))
		return nil, err
	}
	return links, nil
}

func (r *brandMountLinkRepository) GetLinksByMountID(ctx context.Context, mountID uint64) ([]*entities.BrandMountLink, error) {
	var links []*entities.BrandMountLink
	if err := r.db.WithContext(ctx).
		Where("mount_id = ?", mountID).
		Order("brand_id ASC").
		Find(&links).Error; err != nil {
		r.logger.Error("查询卡口品牌关联失败", zap.Error(err), zap.Uint64("mountID", mountID))
		return nil, err
	}
	return links, nil
}

func (r *brandMountLinkRepository) ReplaceLinksForBrand(ctx context.Context, db *gorm.DB, brandID uint64, links []*entities.BrandMountLink) error {
	if err := db.WithContext(ctx).Where("brand_id = ?", brandID).Delete(&entities.BrandMountLink{}).Error; err != nil {
		r.logger.Error("清空品牌卡口关联失败", zap.Error(err), zap.Uint64("brandID", brandID))
		return err
	}
	if len(links) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Create(links).Error; err != nil {
		r.logger.Error("写入品牌卡口关联失败", zap.Error(err), zap.Uint64("brandID", brandID), zap.Int("数量", len(links)))
		return err
	}
	return nil
}

func (r *brandMountLinkRepository) ReplaceLinksForMount(ctx context.Context, db *gorm.DB, mountID uint64, links []*entities.BrandMountLink) error {
	if err := db.WithContext(ctx).Where("mount_id = ?", mountID).Delete(&entities.BrandMountLink{}).Error; err != nil {
		r.logger.Error("清空卡口品牌关联失败", zap.Error(err), zap.Uint64("mountID", mountID))
		return err
	}
	if len(links) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Create(links).Error; err != nil {
		r.logger.Error("写入卡口品牌关联失败", zap.Error(err), zap.Uint64("mountID", mountID), zap.Int("数量", len(links)))
		return err
	}
	return nil
}

func (r *brandMountLinkRepository) DeleteLinksByBrandID(ctx context.Context, db *gorm.DB, brandID uint64) error {
	return db.WithContext(ctx).Where("brand_id = ?", brandID).Delete(&entities.BrandMountLink{}).Error
}

func (r *brandMountLinkRepository) DeleteLinksByMountID(ctx context.Context, db *gorm.DB, mountID uint64) error {
	return db.WithContext(ctx).Where("mount_id = ?", mountID).Delete(&entities.BrandMountLink{}).Error
}

// LensMountLinkRepository 维护镜头与卡口之间的关联行。
type LensMountLinkRepository interface {
	// GetLinksByLensID 查询镜头的全部卡口关联，按 mount_id 升序。
	GetLinksByLensID(ctx context.Context, lensID uint64) ([]*entities.LensMountLink, error)

	// ReplaceLinksForLens 用给定集合整体替换镜头的卡口关联。
	ReplaceLinksForLens(ctx context.Context, db *gorm.DB, lensID uint64, links []*entities.LensMountLink) error

	// DeleteLinksByLensID 删除镜头的全部关联行，用于镜头删除时的手动级联。
	DeleteLinksByLensID(ctx context.Context, db *gorm.DB, lensID uint64) error

	// DeleteLinksByMountID 删除卡口的全部镜头关联行，用于卡口删除时的手动级联。
	DeleteLinksByMountID(ctx context.Context, db *gorm.DB, mountID uint64) error
}

type lensMountLinkRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewLensMountLinkRepository 是 lensMountLinkRepository 的构造函数。
func NewLensMountLinkRepository(db *gorm.DB, logger *core.ZapLogger) LensMountLinkRepository {
	return &lensMountLinkRepository{db: db, logger: logger}
}

func (r *lensMountLinkRepository) GetLinksByLensID(ctx context.Context, lensID uint64) ([]*entities.LensMountLink, error) {
	var links []*entities.LensMountLink
	if err := r.db.WithContext(ctx).
		Where("lens_id = ?", lensID).
		Order("mount_id ASC").
		Find(&links).Error; err != nil {
		r.logger.Error("查询镜头卡口关联失败", zap.Error(err), zap.Uint64("lensID", lensID))
		return nil, err
	}
	return links, nil
}

func (r *lensMountLinkRepository) ReplaceLinksForLens(ctx context.Context, db *gorm.DB, lensID uint64, links []*entities.LensMountLink) error {
	if err := db.WithContext(ctx).Where("lens_id = ?", lensID).Delete(&entities.LensMountLink{}).Error; err != nil {
		r.logger.Error("清空镜头卡口关联失败", zap.Error(err), zap.Uint64("lensID", lensID))
		return err
	}
	if len(links) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Create(links).Error; err != nil {
		r.logger.Error("写入镜头卡口关联失败", zap.Error(err), zap.Uint64("lensID", lensID), zap.Int("数量", len(links)))
		return err
	}
	return nil
}

func (r *lensMountLinkRepository) DeleteLinksByLensID(ctx context.Context, db *gorm.DB, lensID uint64) error {
	return db.WithContext(ctx).Where("lens_id = ?", lensID).Delete(&entities.LensMountLink{}).Error
}

func (r *lensMountLinkRepository) DeleteLinksByMountID(ctx context.Context, db *gorm.DB, mountID uint64) error {
	return db.WithContext(ctx).Where("mount_id = ?", mountID).Delete(&entities.LensMountLink{}).Error
}

// ArticleTagLinkRepository 维护文章与标签之间的关联行。
type ArticleTagLinkRepository interface {
	// GetLinksByArticleID 查询文章的全部标签关联，按 tag_id 升序。
	GetLinksByArticleID(ctx context.Context, articleID uint64) ([]*entities.ArticleTagLink, error)

	// CountLinksByTagID 统计引用某标签的关联行数，标签删除前的占用检查依赖它。
	CountLinksByTagID(ctx context.Context, tagID uint64) (int64, error)

	// ReplaceLinksForArticle 用给定集合整体替换文章的标签关联。
	ReplaceLinksForArticle(ctx context.Context, db *gorm.DB, articleID uint64, links []*entities.ArticleTagLink) error

	// DeleteLinksByArticleID 删除文章的全部关联行，用于文章删除时的手动级联。
	DeleteLinksByArticleID(ctx context.Context, db *gorm.DB, articleID uint64) error
}

type articleTagLinkRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewArticleTagLinkRepository 是 articleTagLinkRepository 的构造函数。
func NewArticleTagLinkRepository(db *gorm.DB, logger *core.ZapLogger) ArticleTagLinkRepository {
	return &articleTagLinkRepository{db: db, logger: logger}
}

func (r *articleTagLinkRepository) GetLinksByArticleID(ctx context.Context, articleID uint64) ([]*entities.ArticleTagLink, error) {
	var links []*entities.ArticleTagLink
	if err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("tag_id ASC").
		Find(&links).Error; err != nil {
		r.logger.Error("查询文章标签关联失败", zap.Error(err), zap.Uint64("articleID", articleID))
		return nil, err
	}
	return links, nil
}

func (r *articleTagLinkRepository) CountLinksByTagID(ctx context.Context, tagID uint64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ArticleTagLink{}).
		Where("tag_id = ?", tagID).
		Count(&count).Error; err != nil {
		r.logger.Error("统计标签引用数失败", zap.Error(err), zap.Uint64("tagID", tagID))
		return 0, err
	}
	return count, nil
}

func (r *articleTagLinkRepository) ReplaceLinksForArticle(ctx context.Context, db *gorm.DB, articleID uint64, links []*entities.ArticleTagLink) error {
	if err := db.WithContext(ctx).Where("article_id = ?", articleID).Delete(&entities.ArticleTagLink{}).Error; err != nil {
		r.logger.Error("清空文章标签关联失败", zap.Error(err), zap.Uint64("articleID", articleID))
		return err
	}
	if len(links) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).Create(links).Error; err != nil {
		r.logger.Error("写入文章标签关联失败", zap.Error(err), zap.Uint64("articleID", articleID), zap.Int("数量", len(links)))
		return err
	}
	return nil
}

func (r *articleTagLinkRepository) DeleteLinksByArticleID(ctx context.Context, db *gorm.DB, articleID uint64) error {
	return db.WithContext(ctx).Where("article_id = ?", articleID).Delete(&entities.ArticleTagLink{}).Error
}
