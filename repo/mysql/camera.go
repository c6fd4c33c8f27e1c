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

// CameraRepository 定义了相机数据在 MySQL 中的持久化操作接口。
type CameraRepository interface {
	// CreateCamera 持久化一个新的相机记录。
	CreateCamera(ctx context.Context, db *gorm.DB, camera *entities.Camera) error

	// GetCameraByID 根据 ID 检索相机，未找到时返回 myErrors.ErrRecordNotFound。
	GetCameraByID(ctx context.Context, id uint64) (*entities.Camera, error)

	// GetCameraByModel 按型号精确检索相机。
	// - 型号唯一性是应用层约束，没有数据库唯一索引，服务层在写入前用它预检。
	GetCameraByModel(ctx context.Context, model string) (*entities.Camera, error)

	// ListCameras 分页查询相机列表。
	// - keyword 非空时对 model / model_zh 做模糊匹配；brandID / mountID 为可选筛选条件。
	ListCameras(ctx context.Context, keyword string, brandID, mountID *uint64, offset, limit int) ([]*entities.Camera, int64, error)

	// UpdateCameraFields 按字段映射更新相机。
	UpdateCameraFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error

	// UpdateRatingAggregate 写入重新计算后的评分聚合值。
	// - 由评分服务在评分写事务内调用，保证聚合列与评分行一致。
	UpdateRatingAggregate(ctx context.Context, db *gorm.DB, id uint64, rating float64, ratingCount int64) error

	// DetachCamerasFromMount 将引用某卡口的相机的 mount_id 置空。
	// - 卡口删除时调用，避免相机残留悬空引用。
	DetachCamerasFromMount(ctx context.Context, db *gorm.DB, mountID uint64) error

	// DeleteCamera 物理删除相机行，附属的图片/评分/评论由服务层在同一事务中删除。
	DeleteCamera(ctx context.Context, db *gorm.DB, id uint64) error
}

type cameraRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewCameraRepository 是 cameraRepository 的构造函数。
func NewCameraRepository(db *gorm.DB, logger *core.ZapLogger) CameraRepository {
	return &cameraRepository{db: db, logger: logger}
}

func (r *cameraRepository) CreateCamera(ctx context.Context, db *gorm.DB, camera *entities.Camera) error {
	if err := db.WithContext(ctx).Create(camera).Error; err != nil {
		return err
	}
	return nil
}

func (r *cameraRepository) GetCameraByID(ctx context.Context, id uint64) (*entities.Camera, error) {
	var camera entities.Camera
	if err := r.db.WithContext(ctx).First(&camera, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("查询相机失败", zap.Error(err), zap.Uint64("cameraID", id))
		return nil, err
	}
	return &camera, nil
}

func (r *cameraRepository) GetCameraByModel(ctx context.Context, model string) (*entities.Camera, error) {
	var camera entities.Camera
	if err := r.db.WithContext(ctx).Where("model = ?", model).First(&camera).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按型号查询相机失败", zap.Error(err), zap.String("model", model))
		return nil, err
	}
	return &camera, nil
}

func (r *cameraRepository) ListCameras(ctx context.Context, keyword string, brandID, mountID *uint64, offset, limit int) ([]*entities.Camera, int64, error) {
	var (
		cameras []*entities.Camera
		total   int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Camera{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("model LIKE ? OR model_zh LIKE ?", pattern, pattern)
	}
	if brandID != nil {
		query = query.Where("brand_id = ?", *brandID)
	}
	if mountID != nil {
		query = query.Where("mount_id = ?", *mountID)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计相机总数失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&cameras).Error; err != nil {
		r.logger.Error("查询相机列表失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	return cameras, total, nil
}

func (r *cameraRepository) UpdateCameraFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新相机", zap.Uint64("cameraID", id))
		return nil
	}

	result := db.WithContext(ctx).Model(&entities.Camera{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新相机数据库操作失败", zap.Error(result.Error), zap.Uint64("cameraID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *cameraRepository) UpdateRatingAggregate(ctx context.Context, db *gorm.DB, id uint64, rating float64, ratingCount int64) error {
	return db.WithContext(ctx).Model(&entities.Camera{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       rating,
			"rating_count": ratingCount,
		}).Error
}

func (r *cameraRepository) DetachCamerasFromMount(ctx context.Context, db *gorm.DB, mountID uint64) error {
	return db.WithContext(ctx).Model(&entities.Camera{}).
		Where("mount_id = ?", mountID).
		Update("mount_id", nil).Error
}

func (r *cameraRepository) DeleteCamera(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Camera{}, id)
	if result.Error != nil {
		r.logger.Error("删除相机失败", zap.Error(result.Error), zap.Uint64("cameraID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}
