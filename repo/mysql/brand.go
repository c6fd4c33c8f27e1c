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

// BrandRepository 定义了品牌数据在 MySQL 中的持久化操作接口。
// 接口的设计旨在将数据访问逻辑与业务逻辑（服务层）解耦。
type BrandRepository interface {
	// CreateBrand 持久化一个新的品牌记录。
	// - db 参数允许服务层传入事务对象，使品牌行与关联行在同一事务中写入。
	CreateBrand(ctx context.Context, db *gorm.DB, brand *entities.Brand) error

	// GetBrandByID 根据 ID 检索品牌。
	// - 未找到时返回 myErrors.ErrRecordNotFound。
	GetBrandByID(ctx context.Context, id uint64) (*entities.Brand, error)

	// GetBrandByName 按名称精确检索品牌，服务层用它做唯一性预检。
	// - 未找到时返回 myErrors.ErrRecordNotFound。
	GetBrandByName(ctx context.Context, name string) (*entities.Brand, error)

	// GetBrandsByIDs 根据 ID 列表批量检索品牌。
	// - 服务层用它一次性校验关联列表中的所有 ID。
	GetBrandsByIDs(ctx context.Context, ids []uint64) ([]*entities.Brand, error)

	// ListBrands 分页查询品牌列表。
	// - keyword 非空时对 name / name_zh 做模糊匹配。
	// - 返回当前页数据与符合条件的总记录数。
	ListBrands(ctx context.Context, keyword string, offset, limit int) ([]*entities.Brand, int64, error)

	// UpdateBrandFields 按字段映射更新品牌。
	// - updates 由服务层根据部分更新请求构建，空映射时不落库直接返回。
	UpdateBrandFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error

	// DeleteBrand 物理删除品牌行。
	// - 关联的 brand_mount_link 行由服务层在同一事务中先行删除。
	DeleteBrand(ctx context.Context, db *gorm.DB, id uint64) error
}

// brandRepository 是 BrandRepository 接口针对 MySQL 的具体实现。
type brandRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewBrandRepository 是 brandRepository 的构造函数。
func NewBrandRepository(db *gorm.DB, logger *core.ZapLogger) BrandRepository {
	return &brandRepository{db: db, logger: logger}
}

func (r *brandRepository) CreateBrand(ctx context.Context, db *gorm.DB, brand *entities.Brand) error {
	// 使用传入的 db 对象（通常为事务对象 tx）执行插入，
	// GORM 会自动填充 BaseModel 中的 ID 与时间戳。
	if err := db.WithContext(ctx).Create(brand).Error; err != nil {
		return err
	}
	return nil
}

func (r *brandRepository) GetBrandByID(ctx context.Context, id uint64) (*entities.Brand, error) {
	var brand entities.Brand
	if err := r.db.WithContext(ctx).First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("查询品牌失败", zap.Error(err), zap.Uint64("brandID", id))
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) GetBrandByName(ctx context.Context, name string) (*entities.Brand, error) {
	var brand entities.Brand
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按名称查询品牌失败", zap.Error(err), zap.String("name", name))
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) GetBrandsByIDs(ctx context.Context, ids []uint64) ([]*entities.Brand, error) {
	var brands []*entities.Brand
	if len(ids) == 0 {
		return brands, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&brands).Error; err != nil {
		r.logger.Error("批量查询品牌失败", zap.Error(err), zap.Int("id数量", len(ids)))
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) ListBrands(ctx context.Context, keyword string, offset, limit int) ([]*entities.Brand, int64, error) {
	var (
		brands []*entities.Brand
		total  int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Brand{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR name_zh LIKE ?", pattern, pattern)
	}

	// 先统计总数，再取当前页，两个查询共享同样的筛选条件。
	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计品牌总数失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&brands).Error; err != nil {
		r.logger.Error("查询品牌列表失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	return brands, total, nil
}

func (r *brandRepository) UpdateBrandFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新品牌", zap.Uint64("brandID", id))
		return nil
	}

	result := db.WithContext(ctx).Model(&entities.Brand{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新品牌数据库操作失败", zap.Error(result.Error), zap.Uint64("brandID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *brandRepository) DeleteBrand(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Brand{}, id)
	if result.Error != nil {
		r.logger.Error("删除品牌失败", zap.Error(result.Error), zap.Uint64("brandID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}
