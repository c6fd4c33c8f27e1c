package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/repo/mysql"
)

func newCategoryServiceForTest(t *testing.T, db *gorm.DB) CategoryService {
	t.Helper()
	logger := newTestLogger()
	return NewCategoryService(db,
		mysql.NewCategoryRepository(db, logger),
		mysql.NewArticleRepository(db, logger),
		logger,
	)
}

func TestCreateCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryServiceForTest(t, db)
	ctx := context.Background()

	parent, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{
		Name: "Reviews", Slug: "reviews",
	}, nil)
	require.NoError(t, err)

	t.Run("创建子分类", func(t *testing.T) {
		resp, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{
			Name: "Lens Reviews", Slug: "lens-reviews", ParentID: &parent.ID,
		}, nil)
		require.NoError(t, err)
		require.NotNil(t, resp.ParentID)
		assert.Equal(t, parent.ID, *resp.ParentID)
	})

	t.Run("名称冲突", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{
			Name: "Reviews", Slug: "reviews-2",
		}, nil)
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("别名冲突", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{
			Name: "Reviews Again", Slug: "reviews",
		}, nil)
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("父分类不存在", func(t *testing.T) {
		missing := uint64(99999)
		_, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{
			Name: "Orphans", Slug: "orphans", ParentID: &missing,
		}, nil)
		requireKind(t, err, myErrors.KindValidation)
	})
}

func TestUpdateCategoryParentCycle(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryServiceForTest(t, db)
	ctx := context.Background()

	// root -> child -> grandchild 三层结构
	root, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Gear", Slug: "gear"}, nil)
	require.NoError(t, err)
	child, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Cameras", Slug: "cameras", ParentID: &root.ID}, nil)
	require.NoError(t, err)
	grandchild, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Film Cameras", Slug: "film-cameras", ParentID: &child.ID}, nil)
	require.NoError(t, err)

	t.Run("父分类不能指向自身", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, root.ID, &dto.UpdateCategoryRequest{
			ParentID: dto.Optional[uint64]{Set: true, Valid: true, Value: root.ID},
		})
		requireKind(t, err, myErrors.KindValidation)
	})

	t.Run("父分类不能指向自身的后代", func(t *testing.T) {
		_, err := svc.UpdateCategory(ctx, root.ID, &dto.UpdateCategoryRequest{
			ParentID: dto.Optional[uint64]{Set: true, Valid: true, Value: grandchild.ID},
		})
		requireKind(t, err, myErrors.KindValidation)
	})

	t.Run("传null提升为顶级分类", func(t *testing.T) {
		resp, err := svc.UpdateCategory(ctx, grandchild.ID, &dto.UpdateCategoryRequest{
			ParentID: dto.Optional[uint64]{Set: true, Valid: false},
		})
		require.NoError(t, err)
		assert.Nil(t, resp.ParentID)
	})

	t.Run("改名为已占用名称", func(t *testing.T) {
		taken := "Gear"
		_, err := svc.UpdateCategory(ctx, child.ID, &dto.UpdateCategoryRequest{Name: &taken})
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("保留原名称更新自身不算冲突", func(t *testing.T) {
		same := "Cameras"
		desc := "机身相关"
		resp, err := svc.UpdateCategory(ctx, child.ID, &dto.UpdateCategoryRequest{
			Name:        &same,
			Description: dto.Optional[string]{Set: true, Valid: true, Value: desc},
		})
		require.NoError(t, err)
		assert.Equal(t, desc, resp.Description)
	})
}

func TestDeleteCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryServiceForTest(t, db)
	ctx := context.Background()

	root, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Guides", Slug: "guides"}, nil)
	require.NoError(t, err)
	mid, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Buying Guides", Slug: "buying-guides", ParentID: &root.ID}, nil)
	require.NoError(t, err)
	leaf, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Used Market", Slug: "used-market", ParentID: &mid.ID}, nil)
	require.NoError(t, err)

	author := &entities.User{Username: "guide", Email: "guide@example.com", PasswordHash: "x", Role: enums.RoleUser, IsActive: true}
	require.NoError(t, db.Create(author).Error)
	article := &entities.Article{
		Title: "二手镜头怎么挑", Slug: "used-lens-guide", Content: "...",
		AuthorID: author.ID, CategoryID: &mid.ID, Status: enums.ArticlePublished,
	}
	require.NoError(t, db.Create(article).Error)

	require.NoError(t, svc.DeleteCategory(ctx, mid.ID))

	t.Run("子分类挂接到被删分类的父分类下", func(t *testing.T) {
		resp, err := svc.GetCategoryByID(ctx, leaf.ID)
		require.NoError(t, err)
		require.NotNil(t, resp.ParentID)
		assert.Equal(t, root.ID, *resp.ParentID)
	})

	t.Run("引用文章的分类置空", func(t *testing.T) {
		var reloaded entities.Article
		require.NoError(t, db.First(&reloaded, article.ID).Error)
		assert.Nil(t, reloaded.CategoryID)
	})

	t.Run("分类本身已删除", func(t *testing.T) {
		_, err := svc.GetCategoryByID(ctx, mid.ID)
		requireKind(t, err, myErrors.KindNotFound)
	})

	t.Run("删除顶级分类后子分类提升为顶级", func(t *testing.T) {
		require.NoError(t, svc.DeleteCategory(ctx, root.ID))
		resp, err := svc.GetCategoryByID(ctx, leaf.ID)
		require.NoError(t, err)
		assert.Nil(t, resp.ParentID)
	})

	t.Run("删除不存在的分类", func(t *testing.T) {
		requireKind(t, svc.DeleteCategory(ctx, 99999), myErrors.KindNotFound)
	})
}
