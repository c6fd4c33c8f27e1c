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

// TagRepository 定义了标签数据在 MySQL 中的持久化操作接口。
type TagRepository interface {
	// CreateTag 持久化一个新的标签记录。
	CreateTag(ctx context.Context, db *gorm.DB, tag *entities.Tag) error

	// GetTagByID 根据 ID 检索标签，未找到时返回 myErrors.ErrRecordNotFound。
	GetTagByID(ctx context.Context, id uint64) (*entities.Tag, error)

	// GetTagByName 按名称精确检索标签，用于唯一性预检。
	GetTagByName(ctx context.Context, name string) (*entities.Tag, error)

	// GetTagBySlug 按 slug 精确检索标签，用于唯一性预检。
	GetTagBySlug(ctx context.Context, slug string) (*entities.Tag, error)

	// GetTagsByIDs 根据 ID 列表批量检索标签，文章关联列表校验依赖它。
	GetTagsByIDs(ctx context.Context, ids []uint64) ([]*entities.Tag, error)

	// ListTags 分页查询标签列表，keyword 非空时对 name 做模糊匹配。
	ListTags(ctx context.Context, keyword string, offset, limit int) ([]*entities.Tag, int64, error)

	// UpdateTagFields 按字段映射更新标签。
	UpdateTagFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error

	// DeleteTag 物理删除标签行，占用检查由服务层在删除前完成。
	DeleteTag(ctx context.Context, db *gorm.DB, id uint64) error
}

type tagRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewTagRepository 是 tagRepository 的构造函数。
func NewTagRepository(db *gorm.DB, logger *core.ZapLogger) TagRepository {
	return &tagRepository{db: db, logger: logger}
}

func (r *tagRepository) CreateTag(ctx context.Context, db *gorm.DB, tag *entities.Tag) error {
	if err := db.WithContext(ctx).Create(tag).Error; err != nil {
		return err
	}
	return nil
}

func (r *tagRepository) GetTagByID(ctx context.Context, id uint64) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("查询标签失败", zap.Error(err), zap.Uint64("tagID", id))
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetTagByName(ctx context.Context, name string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按名称查询标签失败", zap.Error(err), zap.String("name", name))
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetTagBySlug(ctx context.Context, slug string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按slug查询标签失败", zap.Error(err), zap.String("slug", slug))
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetTagsByIDs(ctx context.Context, ids []uint64) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		r.logger.Error("批量查询标签失败", zap.Error(err), zap.Int("id数量", len(ids)))
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) ListTags(ctx context.Context, keyword string, offset, limit int) ([]*entities.Tag, int64, error) {
	var (
		tags  []*entities.Tag
		total int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Tag{})
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计标签总数失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&tags).Error; err != nil {
		r.logger.Error("查询标签列表失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	return tags, total, nil
}

func (r *tagRepository) UpdateTagFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新标签", zap.Uint64("tagID", id))
		return nil
	}

	result := db.WithContext(ctx).Model(&entities.Tag{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新标签数据库操作失败", zap.Error(result.Error), zap.Uint64("tagID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *tagRepository) DeleteTag(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Tag{}, id)
	if result.Error != nil {
		r.logger.Error("删除标签失败", zap.Error(result.Error), zap.Uint64("tagID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}
