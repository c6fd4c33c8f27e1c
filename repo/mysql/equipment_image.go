package mysql

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/core"
)

// EquipmentImageRepository 定义了器材图片元数据在 MySQL 中的持久化操作接口。
// 图片文件本体在 COS，行里只存 URL 与 ObjectKey。
type EquipmentImageRepository interface {
	// CreateImage 持久化一条图片元数据。
	CreateImage(ctx context.Context, db *gorm.DB, image *entities.EquipmentImage) error

	// GetImageByID 根据 ID 检索图片，未找到时返回 myErrors.ErrRecordNotFound。
	GetImageByID(ctx context.Context, id uint64) (*entities.EquipmentImage, error)

	// ListImagesByTarget 查询某目标的全部图片，按 display_order 升序。
	ListImagesByTarget(ctx context.Context, targetType enums.TargetType, targetID uint64) ([]*entities.EquipmentImage, error)

	// DeleteImage 物理删除图片行。
	DeleteImage(ctx context.Context, db *gorm.DB, id uint64) error

	// DeleteImagesByTarget 删除某目标的全部图片行，目标实体删除时的手动级联。
	// - 返回被删除的行，调用方据此清理 COS 对象。
	DeleteImagesByTarget(ctx context.Context, db *gorm.DB, targetType enums.TargetType, targetID uint64) ([]*entities.EquipmentImage, error)
}

type equipmentImageRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewEquipmentImageRepository 是 equipmentImageRepository 的构造函数。
func NewEquipmentImageRepository(db *gorm.DB, logger *core.ZapLogger) EquipmentImageRepository {
	return &equipmentImageRepository{db: db, logger: logger}
}

func (r *equipmentImageRepository) CreateImage(ctx context.Context, db *gorm.DB, image *entities.EquipmentImage) error {
	if err := db.WithContext(ctx).Create(image).Error; err != nil {
		return err
	}
	return nil
}

func (r *equipmentImageRepository) GetImageByID(ctx context.Context, id uint64) (*entities.EquipmentImage, error) {
	var image entities.EquipmentImage
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("查询器材图片失败", zap.Error(err), zap.Uint64("imageID", id))
		return nil, err
	}
	return &image, nil
}

func (r *equipmentImageRepository) ListImagesByTarget(ctx context.Context, targetType enums.TargetType, targetID uint64) ([]*entities.EquipmentImage, error) {
	var images []*entities.EquipmentImage
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("display_order ASC, id ASC").
		Find(&images).Error
	if err != nil {
		r.logger.Error("查询器材图片列表失败", zap.Error(err),
			zap.String("targetType", string(targetType)), zap.Uint64("targetID", targetID))
		return nil, err
	}
	return images, nil
}

func (r *equipmentImageRepository) DeleteImage(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.EquipmentImage{}, id)
	if result.Error != nil {
		r.logger.Error("删除器材图片失败", zap.Error(result.Error), zap.Uint64("imageID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *equipmentImageRepository) DeleteImagesByTarget(ctx context.Context, db *gorm.DB, targetType enums.TargetType, targetID uint64) ([]*entities.EquipmentImage, error) {
	// 先查出要删的行，调用方需要 ObjectKey 清理 COS 对象。
	var images []*entities.EquipmentImage
	err := db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Find(&images).Error
	if err != nil {
		r.logger.Error("查询待删除器材图片失败", zap.Error(err),
			zap.String("targetType", string(targetType)), zap.Uint64("targetID", targetID))
		return nil, err
	}
	if len(images) == 0 {
		return images, nil
	}

	err = db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Delete(&entities.EquipmentImage{}).Error
	if err != nil {
		r.logger.Error("按目标删除器材图片失败", zap.Error(err),
			zap.String("targetType", string(targetType)), zap.Uint64("targetID", targetID))
		return nil, err
	}
	return images, nil
}
