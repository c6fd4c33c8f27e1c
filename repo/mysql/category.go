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

// CategoryRepository 定义了分类数据在 MySQL 中的持久化操作接口。
// 分类通过 parent_id 构成树形结构，环检测在服务层完成。
type CategoryRepository interface {
	// CreateCategory 持久化一个新的分类记录。
	CreateCategory(ctx context.Context, db *gorm.DB, category *entities.Category) error

	// GetCategoryByID 根据 ID 检索分类，未找到时返回 myErrors.ErrRecordNotFound。
	GetCategoryByID(ctx context.Context, id uint64) (*entities.Category, error)

	// GetCategoryByName 按名称精确检索分类，用于唯一性预检。
	GetCategoryByName(ctx context.Context, name string) (*entities.Category, error)

	// GetCategoryBySlug 按 slug 精确检索分类，用于唯一性预检。
	GetCategoryBySlug(ctx context.Context, slug string) (*entities.Category, error)

	// ListCategories 分页查询分类列表，keyword 非空时对 name / name_zh 做模糊匹配。
	ListCategories(ctx context.Context, keyword string, offset, limit int) ([]*entities.Category, int64, error)

	// UpdateCategoryFields 按字段映射更新分类。
	UpdateCategoryFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error

	// ReparentChildren 将某分类的所有直接子分类改挂到新的父节点。
	// - newParentID 为 nil 时子分类提升为顶级分类。
	ReparentChildren(ctx context.Context, db *gorm.DB, parentID uint64, newParentID *uint64) error

	// DeleteCategory 物理删除分类行。
	DeleteCategory(ctx context.Context, db *gorm.DB, id uint64) error
}

type categoryRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewCategoryRepository 是 categoryRepository 的构造函数。
func NewCategoryRepository(db *gorm.DB, logger *core.ZapLogger) CategoryRepository {
	return &categoryRepository{db: db, logger: logger}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, db *gorm.DB, category *entities.Category) error {
	if err := db.WithContext(ctx).Create(category).Error; err != nil {
		return err
	}
	return nil
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id uint64) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("查询分类失败", zap.Error(err), zap.Uint64("categoryID", id))
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetCategoryByName(ctx context.Context, name string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按名称查询分类失败", zap.Error(err), zap.String("name", name))
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按slug查询分类失败", zap.Error(err), zap.String("slug", slug))
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context, keyword string, offset, limit int) ([]*entities.Category, int64, error) {
	var (
		categories []*entities.Category
		total      int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Category{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR name_zh LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计分类总数失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&categories).Error; err != nil {
		r.logger.Error("查询分类列表失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *categoryRepository) UpdateCategoryFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新分类", zap.Uint64("categoryID", id))
		return nil
	}

	result := db.WithContext(ctx).Model(&entities.Category{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新分类数据库操作失败", zap.Error(result.Error), zap.Uint64("categoryID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepository) ReparentChildren(ctx context.Context, db *gorm.DB, parentID uint64, newParentID *uint64) error {
	return db.WithContext(ctx).Model(&entities.Category{}).
		Where("parent_id = ?", parentID).
		Update("parent_id", newParentID).Error
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Category{}, id)
	if result.Error != nil {
		r.logger.Error("删除分类失败", zap.Error(result.Error), zap.Uint64("categoryID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}
