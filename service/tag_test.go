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

func newTagServiceForTest(t *testing.T, db *gorm.DB) TagService {
	t.Helper()
	logger := newTestLogger()
	return NewTagService(db,
		mysql.NewTagRepository(db, logger),
		mysql.NewArticleTagLinkRepository(db, logger),
		logger,
	)
}

func TestTagCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := newTagServiceForTest(t, db)
	ctx := context.Background()

	created, err := svc.CreateTag(ctx, &dto.CreateTagRequest{Name: "mirrorless", Slug: "mirrorless"}, nil)
	require.NoError(t, err)

	t.Run("名称冲突", func(t *testing.T) {
		_, err := svc.CreateTag(ctx, &dto.CreateTagRequest{Name: "mirrorless", Slug: "mirrorless-2"}, nil)
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("别名冲突", func(t *testing.T) {
		_, err := svc.CreateTag(ctx, &dto.CreateTagRequest{Name: "无反", Slug: "mirrorless"}, nil)
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("部分更新", func(t *testing.T) {
		desc := "无反相机相关"
		resp, err := svc.UpdateTag(ctx, created.ID, &dto.UpdateTagRequest{
			Description: dto.Optional[string]{Set: true, Valid: true, Value: desc},
		})
		require.NoError(t, err)
		assert.Equal(t, desc, resp.Description)
		assert.Equal(t, "mirrorless", resp.Name)
	})

	t.Run("改名为已占用名称", func(t *testing.T) {
		other, err := svc.CreateTag(ctx, &dto.CreateTagRequest{Name: "vintage", Slug: "vintage"}, nil)
		require.NoError(t, err)
		taken := "mirrorless"
		_, err = svc.UpdateTag(ctx, other.ID, &dto.UpdateTagRequest{Name: &taken})
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("标签不存在", func(t *testing.T) {
		_, err := svc.GetTagByID(ctx, 99999)
		requireKind(t, err, myErrors.KindNotFound)
	})
}

func TestDeleteTagReferencedGuard(t *testing.T) {
	db := newTestDB(t)
	svc := newTagServiceForTest(t, db)
	ctx := context.Background()

	tag, err := svc.CreateTag(ctx, &dto.CreateTagRequest{Name: "review", Slug: "review"}, nil)
	require.NoError(t, err)

	author := &entities.User{Username: "tagger", Email: "tagger@example.com", PasswordHash: "x", Role: enums.RoleUser, IsActive: true}
	require.NoError(t, db.Create(author).Error)
	article := &entities.Article{
		Title: "Z6 III 上手", Slug: "z6-iii-hands-on", Content: "...",
		AuthorID: author.ID, Status: enums.ArticleDraft,
	}
	require.NoError(t, db.Create(article).Error)
	require.NoError(t, db.Create(&entities.ArticleTagLink{ArticleID: article.ID, TagID: tag.ID}).Error)

	t.Run("仍被文章引用时拒绝删除", func(t *testing.T) {
		requireKind(t, svc.DeleteTag(ctx, tag.ID), myErrors.KindConflict)

		_, err := svc.GetTagByID(ctx, tag.ID)
		require.NoError(t, err)
	})

	t.Run("引用清除后可删除", func(t *testing.T) {
		require.NoError(t, db.Where("tag_id = ?", tag.ID).Delete(&entities.ArticleTagLink{}).Error)

		require.NoError(t, svc.DeleteTag(ctx, tag.ID))
		_, err := svc.GetTagByID(ctx, tag.ID)
		requireKind(t, err, myErrors.KindNotFound)
	})

	t.Run("删除不存在的标签", func(t *testing.T) {
		requireKind(t, svc.DeleteTag(ctx, 99999), myErrors.KindNotFound)
	})
}
