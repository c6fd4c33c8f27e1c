package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/vo"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/repo/mysql"
)

// CategoryService 定义了文章分类的业务逻辑接口。
type CategoryService interface {
	// CreateCategory 创建分类。名称与别名全局唯一，父分类须存在。
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest, createdBy *uint64) (*vo.CategoryResponse, error)

	// GetCategoryByID 查询单个分类。
	GetCategoryByID(ctx context.Context, id uint64) (*vo.CategoryResponse, error)

	// ListCategories 分页查询分类列表。
	ListCategories(ctx context.Context, query *dto.ListQuery) (*vo.ListCategoriesResponse, error)

	// UpdateCategory 部分更新分类。
	// - ParentID 传 null 提升为顶级分类；指向自身或后代形成环时拒绝。
	UpdateCategory(ctx context.Context, id uint64, req *dto.UpdateCategoryRequest) (*vo.CategoryResponse, error)

	// DeleteCategory 删除分类。
	// - 子分类整体挂接到被删分类的父分类下，引用的文章 category_id 置空，同一事务完成。
	DeleteCategory(ctx context.Context, id uint64) error
}

type categoryService struct {
	db           *gorm.DB
	categoryRepo mysql.CategoryRepository
	articleRepo  mysql.ArticleRepository
	logger       *core.ZapLogger
}

// NewCategoryService 是 categoryService 的构造函数。
func NewCategoryService(db *gorm.DB, categoryRepo mysql.CategoryRepository, articleRepo mysql.ArticleRepository, logger *core.ZapLogger) CategoryService {
	return &categoryService{
		db:           db,
		categoryRepo: categoryRepo,
		articleRepo:  articleRepo,
		logger:       logger,
	}
}

func (s *categoryService) checkNameAndSlugUnique(ctx context.Context, name, slug *string, excludeID uint64) error {
	if name != nil {
		existing, err := s.categoryRepo.GetCategoryByName(ctx, *name)
		if err != nil && !errors.Is(err, myErrors.ErrRecordNotFound) {
			return err
		}
		if err == nil && existing.ID != excludeID {
			return myErrors.NewConflict(fmt.Sprintf("分类名称已被占用: %s", *name))
		}
	}
	if slug != nil {
		existing, err := s.categoryRepo.GetCategoryBySlug(ctx, *slug)
		if err != nil && !errors.Is(err, myErrors.ErrRecordNotFound) {
			return err
		}
		if err == nil && existing.ID != excludeID {
			return myErrors.NewConflict(fmt.Sprintf("分类别名已被占用: %s", *slug))
		}
	}
	return nil
}

// checkParentValid 校验父分类存在且不会形成环。
// 沿父指针链上溯，链上出现 id 本身即说明 parentID 是它的后代。
func (s *categoryService) checkParentValid(ctx context.Context, id uint64, parentID uint64) error {
	if parentID == id {
		return myErrors.NewValidation("父分类不能指向自身")
	}

	current := parentID
	for {
		parent, err := s.categoryRepo.GetCategoryByID(ctx, current)
		if err != nil {
			if errors.Is(err, myErrors.ErrRecordNotFound) {
				return myErrors.NewValidation(fmt.Sprintf("父分类不存在: %d", current))
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == id {
			return myErrors.NewValidation("父分类不能指向自身的后代")
		}
		current = *parent.ParentID
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest, createdBy *uint64) (*vo.CategoryResponse, error) {
	if err := s.checkNameAndSlugUnique(ctx, &req.Name, &req.Slug, 0); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		if _, err := s.categoryRepo.GetCategoryByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, myErrors.ErrRecordNotFound) {
				return nil, myErrors.NewValidation(fmt.Sprintf("父分类不存在: %d", *req.ParentID))
			}
			return nil, err
		}
	}

	category := &entities.Category{
		Name:        req.Name,
		NameZh:      req.NameZh,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		CreatedBy:   createdBy,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.categoryRepo.CreateCategory(ctx, tx, category)
	})
	if err != nil {
		s.logger.Error("创建分类事务失败", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}

	s.logger.Info("分类创建成功", zap.Uint64("categoryID", category.ID), zap.String("name", category.Name))
	return vo.MapCategoryToVO(category), nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint64) (*vo.CategoryResponse, error) {
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("分类不存在: %d", id))
		}
		return nil, err
	}
	return vo.MapCategoryToVO(category), nil
}

func (s *categoryService) ListCategories(ctx context.Context, query *dto.ListQuery) (*vo.ListCategoriesResponse, error) {
	categories, total, err := s.categoryRepo.ListCategories(ctx, query.Keyword, query.Skip, query.Limit)
	if err != nil {
		return nil, err
	}
	return &vo.ListCategoriesResponse{Categories: vo.MapCategoriesToVOs(categories), Total: total}, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uint64, req *dto.UpdateCategoryRequest) (*vo.CategoryResponse, error) {
	if _, err := s.categoryRepo.GetCategoryByID(ctx, id); err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("分类不存在: %d", id))
		}
		return nil, err
	}

	if err := s.checkNameAndSlugUnique(ctx, req.Name, req.Slug, id); err != nil {
		return nil, err
	}
	if req.ParentID.Set && req.ParentID.Valid {
		if err := s.checkParentValid(ctx, id, req.ParentID.Value); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.NameZh.Set {
		updates["name_zh"] = req.NameZh.Value
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Description.Set {
		updates["description"] = req.Description.Value
	}
	if req.ParentID.Set {
		updates["parent_id"] = req.ParentID.Ptr()
	}

	if len(updates) > 0 {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.categoryRepo.UpdateCategoryFields(ctx, tx, id, updates)
		})
		if err != nil {
			s.logger.Error("更新分类事务失败", zap.Error(err), zap.Uint64("categoryID", id))
			return nil, err
		}
	}

	return s.GetCategoryByID(ctx, id)
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uint64) error {
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewNotFound(fmt.Sprintf("分类不存在: %d", id))
		}
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.categoryRepo.ReparentChildren(ctx, tx, id, category.ParentID); err != nil {
			return err
		}
		if err := s.articleRepo.DetachArticlesFromCategory(ctx, tx, id); err != nil {
			return err
		}
		return s.categoryRepo.DeleteCategory(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("删除分类事务失败", zap.Error(err), zap.Uint64("categoryID", id))
		return err
	}

	s.logger.Info("分类删除成功", zap.Uint64("categoryID", id))
	return nil
}
