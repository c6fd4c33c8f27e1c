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

// contentFixture 预置作者、分类和标签。
type contentFixture struct {
	authorID uint64
	otherID  uint64
	catID    uint64
	tagIDs   []uint64
}

func newContentFixture(t *testing.T, db *gorm.DB) *contentFixture {
	t.Helper()
	author := &entities.User{Username: "writer", Email: "w@example.com", PasswordHash: "x", Role: enums.RoleUser, IsActive: true}
	require.NoError(t, db.Create(author).Error)
	other := &entities.User{Username: "lurker", Email: "l@example.com", PasswordHash: "x", Role: enums.RoleUser, IsActive: true}
	require.NoError(t, db.Create(other).Error)

	cat := &entities.Category{Name: "Reviews", Slug: "reviews"}
	require.NoError(t, db.Create(cat).Error)

	tagIDs := make([]uint64, 0, 2)
	for _, name := range []string{"mirrorless", "vintage"} {
		tag := &entities.Tag{Name: name, Slug: name}
		require.NoError(t, db.Create(tag).Error)
		tagIDs = append(tagIDs, tag.ID)
	}
	return &contentFixture{authorID: author.ID, otherID: other.ID, catID: cat.ID, tagIDs: tagIDs}
}

func newArticleServiceForTest(t *testing.T, db *gorm.DB, viewRepo *fakeViewRepo) ArticleService {
	t.Helper()
	logger := newTestLogger()
	return NewArticleService(db,
		mysql.NewArticleRepository(db, logger),
		mysql.NewCategoryRepository(db, logger),
		mysql.NewTagRepository(db, logger),
		mysql.NewArticleTagLinkRepository(db, logger),
		mysql.NewCommentRepository(db, logger),
		viewRepo,
		logger,
	)
}

func TestCreateArticle(t *testing.T) {
	db := newTestDB(t)
	fixture := newContentFixture(t, db)
	svc := newArticleServiceForTest(t, db, newFakeViewRepo())
	ctx := context.Background()

	t.Run("缺省状态为草稿且无发布时间", func(t *testing.T) {
		resp, err := svc.CreateArticle(ctx, &dto.CreateArticleRequest{
			Title:   "First look",
			Slug:    "first-look",
			Content: "body",
		}, fixture.authorID)
		require.NoError(t, err)

		assert.Equal(t, enums.ArticleDraft, resp.Status)
		assert.Nil(t, resp.PublishedAt)
		assert.Equal(t, fixture.authorID, resp.AuthorID)
	})

	t.Run("发布创建时写入发布时间与标签", func(t *testing.T) {
		resp, err := svc.CreateArticle(ctx, &dto.CreateArticleRequest{
			Title:   "Hands on",
			Slug:    "hands-on",
			Content: "body",
			Status:  enums.ArticlePublished,
			TagIDs:  fixture.tagIDs,
		}, fixture.authorID)
		require.NoError(t, err)

		assert.NotNil(t, resp.PublishedAt)
		assert.ElementsMatch(t, fixture.tagIDs, resp.TagIDs)
	})

	t.Run("slug 冲突", func(t *testing.T) {
		_, err := svc.CreateArticle(ctx, &dto.CreateArticleRequest{
			Title: "Dup", Slug: "first-look", Content: "body",
		}, fixture.authorID)
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("标签不存在时整体失败", func(t *testing.T) {
		_, err := svc.CreateArticle(ctx, &dto.CreateArticleRequest{
			Title: "Bad tags", Slug: "bad-tags", Content: "body",
			TagIDs: []uint64{fixture.tagIDs[0], 99999},
		}, fixture.authorID)
		requireKind(t, err, myErrors.KindValidation)

		var count int64
		require.NoError(t, db.Model(&entities.Article{}).Where("slug = ?", "bad-tags").Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("分类不存在", func(t *testing.T) {
		bad := uint64(99999)
		_, err := svc.CreateArticle(ctx, &dto.CreateArticleRequest{
			Title: "Bad cat", Slug: "bad-cat", Content: "body", CategoryID: &bad,
		}, fixture.authorID)
		requireKind(t, err, myErrors.KindValidation)
	})
}

func TestGetArticleDetailVisibility(t *testing.T) {
	db := newTestDB(t)
	fixture := newContentFixture(t, db)
	viewRepo := newFakeViewRepo()
	svc := newArticleServiceForTest(t, db, viewRepo)
	ctx := context.Background()

	draft, err := svc.CreateArticle(ctx, &dto.CreateArticleRequest{
		Title: "Draft", Slug: "draft", Content: "body",
	}, fixture.authorID)
	require.NoError(t, err)

	published, err := svc.CreateArticle(ctx, &dto.CreateArticleRequest{
		Title: "Public", Slug: "public", Content: "body", Status: enums.ArticlePublished,
	}, fixture.authorID)
	require.NoError(t, err)

	t.Run("草稿对他人表现为不存在", func(t *testing.T) {
		_, err := svc.GetArticleDetail(ctx, draft.ID, "10.0.0.1", fixture.otherID, enums.RoleUser)
		requireKind(t, err, myErrors.KindNotFound)
	})

	t.Run("草稿对作者与管理员可见", func(t *testing.T) {
		_, err := svc.GetArticleDetail(ctx, draft.ID, "", fixture.authorID, enums.RoleUser)
		require.NoError(t, err)
		_, err = svc.GetArticleDetail(ctx, draft.ID, "", fixture.otherID, enums.RoleAdmin)
		require.NoError(t, err)
	})

	t.Run("已发布文章记录浏览并去重", func(t *testing.T) {
		_, err := svc.GetArticleDetail(ctx, published.ID, "10.0.0.1", 0, enums.RoleUser)
		require.NoError(t, err)
		_, err = svc.GetArticleDetail(ctx, published.ID, "10.0.0.1", 0, enums.RoleUser)
		require.NoError(t, err)
		_, err = svc.GetArticleDetail(ctx, published.ID, "10.0.0.2", 0, enums.RoleUser)
		require.NoError(t, err)

		counts, err := viewRepo.GetAllViewCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[published.ID])
	})

	t.Run("草稿不计浏览", func(t *testing.T) {
		before, _ := viewRepo.GetAllViewCounts(ctx)
		_, err := svc.GetArticleDetail(ctx, draft.ID, "10.0.0.9", fixture.authorID, enums.RoleUser)
		require.NoError(t, err)
		after, _ := viewRepo.GetAllViewCounts(ctx)
		assert.Equal(t, before[draft.ID], after[draft.ID])
	})
}

func TestListArticlesVisibility(t *testing.T) {
	db := newTestDB(t)
	fixture := newContentFixture(t, db)
	svc := newArticleServiceForTest(t, db, newFakeViewRepo())
	ctx := context.Background()

	_, err := svc.CreateArticle(ctx, &dto.CreateArticleRequest{
		Title: "Draft", Slug: "draft", Content: "body",
	}, fixture.authorID)
	require.NoError(t, err)
	_, err = svc.CreateArticle(ctx, &dto.CreateArticleRequest{
		Title: "Public", Slug: "public", Content: "body", Status: enums.ArticlePublished,
	}, fixture.authorID)
	require.NoError(t, err)

	baseQuery := func() *dto.ListArticlesRequest {
		return &dto.ListArticlesRequest{ListQuery: dto.ListQuery{Limit: 10}}
	}

	t.Run("匿名只看到已发布", func(t *testing.T) {
		resp, err := svc.ListArticles(ctx, baseQuery(), 0, enums.RoleUser)
		require.NoError(t, err)
		require.Len(t, resp.Articles, 1)
		assert.Equal(t, enums.ArticlePublished, resp.Articles[0].Status)
	})

	t.Run("作者按自己过滤时看到全部", func(t *testing.T) {
		q := baseQuery()
		q.AuthorID = &fixture.authorID
		resp, err := svc.ListArticles(ctx, q, fixture.authorID, enums.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Total)
	})

	t.Run("他人按作者过滤仍只看到已发布", func(t *testing.T) {
		q := baseQuery()
		q.AuthorID = &fixture.authorID
		resp, err := svc.ListArticles(ctx, q, fixture.otherID, enums.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Total)
	})

	t.Run("管理员看到全部", func(t *testing.T) {
		resp, err := svc.ListArticles(ctx, baseQuery(), fixture.otherID, enums.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Total)
	})
}

func TestUpdateArticle(t *testing.T) {
	db := newTestDB(t)
	fixture := newContentFixture(t, db)
	svc := newArticleServiceForTest(t, db, newFakeViewRepo())
	ctx := context.Background()

	created, err := svc.CreateArticle(ctx, &dto.CreateArticleRequest{
		Title: "WIP", Slug: "wip", Content: "body", TagIDs: fixture.tagIDs[:1],
	}, fixture.authorID)
	require.NoError(t, err)

	t.Run("他人无权修改", func(t *testing.T) {
		title := "hijack"
		_, err := svc.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{Title: &title}, fixture.otherID, enums.RoleUser)
		requireKind(t, err, myErrors.KindForbidden)
	})

	t.Run("首次发布写入发布时间", func(t *testing.T) {
		published := enums.ArticlePublished
		resp, err := svc.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{Status: &published}, fixture.authorID, enums.RoleUser)
		require.NoError(t, err)
		require.NotNil(t, resp.PublishedAt)

		// 再次改回草稿又发布，发布时间保持首次值
		firstPublished := *resp.PublishedAt
		draft := enums.ArticleDraft
		_, err = svc.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{Status: &draft}, fixture.authorID, enums.RoleUser)
		require.NoError(t, err)
		resp, err = svc.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{Status: &published}, fixture.authorID, enums.RoleUser)
		require.NoError(t, err)
		require.NotNil(t, resp.PublishedAt)
		assert.Equal(t, firstPublished.Unix(), resp.PublishedAt.Unix())
	})

	t.Run("标签整体替换与清空", func(t *testing.T) {
		newTags := fixture.tagIDs[1:]
		resp, err := svc.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{TagIDs: &newTags}, fixture.authorID, enums.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, newTags, resp.TagIDs)

		empty := []uint64{}
		resp, err = svc.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{TagIDs: &empty}, fixture.authorID, enums.RoleUser)
		require.NoError(t, err)
		assert.Empty(t, resp.TagIDs)
	})

	t.Run("分类设置与移除", func(t *testing.T) {
		resp, err := svc.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{
			CategoryID: dto.Optional[uint64]{Set: true, Valid: true, Value: fixture.catID},
		}, fixture.authorID, enums.RoleUser)
		require.NoError(t, err)
		require.NotNil(t, resp.CategoryID)
		assert.Equal(t, fixture.catID, *resp.CategoryID)

		resp, err = svc.UpdateArticle(ctx, created.ID, &dto.UpdateArticleRequest{
			CategoryID: dto.Optional[uint64]{Set: true, Valid: false},
		}, fixture.authorID, enums.RoleUser)
		require.NoError(t, err)
		assert.Nil(t, resp.CategoryID)
	})
}

func TestDeleteArticle(t *testing.T) {
	db := newTestDB(t)
	fixture := newContentFixture(t, db)
	svc := newArticleServiceForTest(t, db, newFakeViewRepo())
	ctx := context.Background()

	created, err := svc.CreateArticle(ctx, &dto.CreateArticleRequest{
		Title: "Doomed", Slug: "doomed", Content: "body", TagIDs: fixture.tagIDs,
	}, fixture.authorID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&entities.Comment{
		Content: "nice", AuthorID: fixture.otherID,
		TargetType: enums.TargetArticle, TargetID: created.ID, IsApproved: true,
	}).Error)

	t.Run("他人无权删除", func(t *testing.T) {
		requireKind(t, svc.DeleteArticle(ctx, created.ID, fixture.otherID, enums.RoleUser), myErrors.KindForbidden)
	})

	t.Run("作者删除并级联清理", func(t *testing.T) {
		require.NoError(t, svc.DeleteArticle(ctx, created.ID, fixture.authorID, enums.RoleUser))

		var linkCount, commentCount int64
		require.NoError(t, db.Model(&entities.ArticleTagLink{}).Where("article_id = ?", created.ID).Count(&linkCount).Error)
		require.NoError(t, db.Model(&entities.Comment{}).
			Where("target_type = ? AND target_id = ?", enums.TargetArticle, created.ID).
			Count(&commentCount).Error)
		assert.Zero(t, linkCount)
		assert.Zero(t, commentCount)

		_, err := svc.GetArticleDetail(ctx, created.ID, "", fixture.authorID, enums.RoleUser)
		requireKind(t, err, myErrors.KindNotFound)
	})
}
