package mysql

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/core"
)

// LensRepository 定义了镜头数据在 MySQL 中的持久化操作接口。
type LensRepository interface {
	// CreateLens 持久化一个新的镜头记录。
	CreateLens(ctx context.Context, db *gorm.DB, lens *entities.Lens) error

	// GetLensByID 根据 ID 检索镜头，未找到时返回 myErrors.ErrRecordNotFound。
	GetLensByID(ctx context.Context, id uint64) (*entities.Lens, error)

	// GetLensByModel 按型号精确检索镜头，型号唯一性由服务层预检。
	GetLensByModel(ctx context.Context, model string) (*entities.Lens, error)

	// ListLenses 分页查询镜头列表。
	// - keyword 非空时对 model / model_zh 做模糊匹配。
	// - mountID 非空时通过 lens_mount_link 联表筛选兼容该卡口的镜头。
	ListLenses(ctx context.Context, keyword string, brandID, mountID *uint64, offset, limit int) ([]*entities.Lens, int64, error)

	// UpdateLensFields 按字段映射更新镜头。
	UpdateLensFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error

	// UpdateRatingAggregate 写入重新计算后的评分聚合值，在评分写事务内调用。
	UpdateRatingAggregate(ctx context.Context, db *gorm.DB, id uint64, rating float64, ratingCount int64) error

	// DeleteLens 物理删除镜头行，关联行与附属数据由服务层在同一事务中删除。
	DeleteLens(ctx context.Context, db *gorm.DB, id uint64) error
}

type lensRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewLensRepository 是 lensRepository 的构造函数。
func NewLensRepository(db *gorm.DB, logger *core.ZapLogger) LensRepository {
	return &lensRepository{db: db, logger: logger}
}

func (r *lensRepository) CreateLens(ctx context.Context, db *gorm.DB, lens *entities.Lens) error {
	if err := db.WithContext(ctx).Create(lens).Error; err != nil {
		return err
	}
	return nil
}

func (r *lensRepository) GetLensByID(ctx context.Context, id uint64) (*entities.Lens, error) {
	var lens entities.Lens
	if err := r.db.WithContext(ctx).First(&lens, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("查询镜头失败", zap.Error(err), zap.Uint64("lensID", id))
		return nil, err
	}
	return &lens, nil
}

func (r *lensRepository) GetLensByModel(ctx context.Context, model string) (*entities.Lens, error) {
	var lens entities.Lens
	if err := r.db.WithContext(ctx).Where("model = ?", model).First(&lens).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按型号查询镜头失败", zap.Error(err), zap.String("model", model))
		return nil, err
	}
	return &lens, nil
}

func (r *lensRepository) ListLenses(ctx context.Context, keyword string, brandID, mountID *uint64, offset, limit int) ([]*entities.Lens, int64, error) {
	var (
		lenses []*entities.Lens
		total  int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Lens{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("lenses.model LIKE ? OR lenses.model_zh LIKE ?", pattern, pattern)
	}
	if brandID != nil {
		query = query.Where("lenses.brand_id = ?", *brandID)
	}
	if mountID != nil {
		// 按卡口筛选需要联表，镜头与卡口是多对多关系。
		query = query.Joins("JOIN lens_mount_links ON lens_mount_links.lens_id = lenses.id").
			Where("lens_mount_links.mount_id = ?", *mountID)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计镜头总数失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	if err := query.Order("lenses.id ASC").Offset(offset).Limit(limit).Find(&lenses).Error; err != nil {
		r.logger.Error("查询镜头列表失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	return lenses, total, nil
}

func (r *lensRepository) UpdateLensFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新镜头", zap.Uint64("lensID", id))
		return nil
	}

	result := db.WithContext(ctx).Model(&entities.Lens{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新镜头数据库操作失败", zap.Error(result.Error), zap.Uint64("lensID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *lensRepository) UpdateRatingAggregate(ctx context.Context, db *gorm.DB, id uint64, rating float64, ratingCount int64) error {
	return db.WithContext(ctx).Model(&entities.Lens{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       rating,
			"rating_count": ratingCount,
		}).Error
}

func (r *lensRepository) DeleteLens(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Lens{}, id)
	if result.Error != nil {
		r.logger.Error("删除镜头失败", zap.Error(result.Error), zap.Uint64("lensID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}
