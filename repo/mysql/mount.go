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

// MountRepository 定义了卡口数据在 MySQL 中的持久化操作接口。
type MountRepository interface {
	// CreateMount 持久化一个新的卡口记录。
	CreateMount(ctx context.Context, db *gorm.DB, mount *entities.Mount) error

	// GetMountByID 根据 ID 检索卡口，未找到时返回 myErrors.ErrRecordNotFound。
	GetMountByID(ctx context.Context, id uint64) (*entities.Mount, error)

	// GetMountByName 按名称精确检索卡口，用于唯一性预检。
	GetMountByName(ctx context.Context, name string) (*entities.Mount, error)

	// GetMountsByIDs 根据 ID 列表批量检索卡口。
	// - 服务层用它一次性校验关联列表中的所有 ID。
	GetMountsByIDs(ctx context.Context, ids []uint64) ([]*entities.Mount, error)

	// ListMounts 分页查询卡口列表，keyword 非空时对 name / name_zh 做模糊匹配。
	ListMounts(ctx context.Context, keyword string, offset, limit int) ([]*entities.Mount, int64, error)

	// UpdateMountFields 按字段映射更新卡口。
	UpdateMountFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error

	// DeleteMount 物理删除卡口行，关联行由服务层在同一事务中处理。
	DeleteMount(ctx context.Context, db *gorm.DB, id uint64) error
}

type mountRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewMountRepository 是 mountRepository 的构造函数。
func NewMountRepository(db *gorm.DB, logger *core.ZapLogger) MountRepository {
	return &mountRepository{db: db, logger: logger}
}

func (r *mountRepository) CreateMount(ctx context.Context, db *gorm.DB, mount *entities.Mount) error {
	if err := db.WithContext(ctx).Create(mount).Error; err != nil {
		return err
	}
	return nil
}

func (r *mountRepository) GetMountByID(ctx context.Context, id uint64) (*entities.Mount, error) {
	var mount entities.Mount
	if err := r.db.WithContext(ctx).First(&mount, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("查询卡口失败", zap.Error(err), zap.Uint64("mountID", id))
		return nil, err
	}
	return &mount, nil
}

func (r *mountRepository) GetMountByName(ctx context.Context, name string) (*entities.Mount, error) {
	var mount entities.Mount
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&mount).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按名称查询卡口失败", zap.Error(err), zap.String("name", name))
		return nil, err
	}
	return &mount, nil
}

func (r *mountRepository) GetMountsByIDs(ctx context.Context, ids []uint64) ([]*entities.Mount, error) {
	var mounts []*entities.Mount
	if len(ids) == 0 {
		return mounts, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&mounts).Error; err != nil {
		r.logger.Error("批量查询卡口失败", zap.Error(err), zap.Int("id数量", len(ids)))
		return nil, err
	}
	return mounts, nil
}

func (r *mountRepository) ListMounts(ctx context.Context, keyword string, offset, limit int) ([]*entities.Mount, int64, error) {
	var (
		mounts []*entities.Mount
		total  int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Mount{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR name_zh LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计卡口总数失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&mounts).Error; err != nil {
		r.logger.Error("查询卡口列表失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	return mounts, total, nil
}

func (r *mountRepository) UpdateMountFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新卡口", zap.Uint64("mountID", id))
		return nil
	}

	result := db.WithContext(ctx).Model(&entities.Mount{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新卡口数据库操作失败", zap.Error(result.Error), zap.Uint64("mountID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *mountRepository) DeleteMount(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Mount{}, id)
	if result.Error != nil {
		r.logger.Error("删除卡口失败", zap.Error(result.Error), zap.Uint64("mountID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}
