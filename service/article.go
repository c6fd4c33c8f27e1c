package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/models/vo"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/repo/mysql"
	redisRepo "github.com/Xushengqwer/camera_service/repo/redis"
)

// ArticleService 定义了文章相关的业务逻辑接口。
type ArticleService interface {
	// CreateArticle 创建文章，作者为当前调用方。
	// - slug 全局唯一；分类与标签引用统一校验；状态缺省为草稿。
	CreateArticle(ctx context.Context, req *dto.CreateArticleRequest, authorID uint64) (*vo.ArticleDetailVO, error)

	// GetArticleDetail 查询文章详情并记录一次浏览。
	// - viewerID 为登录用户ID或客户端IP，用于布隆去重；浏览计数走 Redis，失败不影响读取。
	// - 草稿与归档文章仅作者本人或管理员可见。
	GetArticleDetail(ctx context.Context, id uint64, viewerID string, actorID uint64, actorRole enums.UserRole) (*vo.ArticleDetailVO, error)

	// ListArticles 分页查询文章列表。
	// - 非管理员只能看到已发布文章，除非按自己的 author_id 过滤。
	ListArticles(ctx context.Context, req *dto.ListArticlesRequest, actorID uint64, actorRole enums.UserRole) (*vo.ListArticlesResponse, error)

	// UpdateArticle 部分更新文章，仅作者本人或管理员可操作。
	// - 首次切换到 published 时写入 PublishedAt。
	UpdateArticle(ctx context.Context, id uint64, req *dto.UpdateArticleRequest, actorID uint64, actorRole enums.UserRole) (*vo.ArticleDetailVO, error)

	// DeleteArticle 删除文章，仅作者本人或管理员可操作。
	// - 同一事务中删除标签关联与文章下的评论。
	DeleteArticle(ctx context.Context, id uint64, actorID uint64, actorRole enums.UserRole) error
}

type articleService struct {
	db           *gorm.DB
	articleRepo  mysql.ArticleRepository
	categoryRepo mysql.CategoryRepository
	tagRepo      mysql.TagRepository
	linkRepo     mysql.ArticleTagLinkRepository
	commentRepo  mysql.CommentRepository
	viewRepo     redisRepo.ArticleViewRepository
	logger       *core.ZapLogger
}

// NewArticleService 是 articleService 的构造函数。
func NewArticleService(db *gorm.DB, articleRepo mysql.ArticleRepository, categoryRepo mysql.CategoryRepository, tagRepo mysql.TagRepository, linkRepo mysql.ArticleTagLinkRepository, commentRepo mysql.CommentRepository, viewRepo redisRepo.ArticleViewRepository, logger *core.ZapLogger) ArticleService {
	return &articleService{
		db:           db,
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		linkRepo:     linkRepo,
		commentRepo:  commentRepo,
		viewRepo:     viewRepo,
		logger:       logger,
	}
}

func (s *articleService) checkSlugUnique(ctx context.Context, slug string, excludeID uint64) error {
	existing, err := s.articleRepo.GetArticleBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return myErrors.NewConflict(fmt.Sprintf("文章别名已被占用: %s", slug))
	}
	return nil
}

func (s *articleService) checkCategoryExists(ctx context.Context, categoryID uint64) error {
	if _, err := s.categoryRepo.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewValidation(fmt.Sprintf("分类不存在: %d", categoryID))
		}
		return err
	}
	return nil
}

// resolveTagIDs 统一校验标签ID列表，返回按输入顺序去重后的ID。
func (s *articleService) resolveTagIDs(ctx context.Context, ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	deduped := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}

	tags, err := s.tagRepo.GetTagsByIDs(ctx, deduped)
	if err != nil {
		return nil, err
	}
	found := make(map[uint64]struct{}, len(tags))
	for _, t := range tags {
		found[t.ID] = struct{}{}
	}
	for _, id := range deduped {
		if _, ok := found[id]; !ok {
			return nil, myErrors.NewValidation(fmt.Sprintf("标签不存在: %d", id))
		}
	}
	return deduped, nil
}

func buildArticleTagLinks(articleID uint64, tagIDs []uint64) []*entities.ArticleTagLink {
	links := make([]*entities.ArticleTagLink, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, &entities.ArticleTagLink{ArticleID: articleID, TagID: id})
	}
	return links
}

func canManageArticle(article *entities.Article, actorID uint64, actorRole enums.UserRole) bool {
	return article.AuthorID == actorID || actorRole == enums.RoleAdmin
}

func (s *articleService) CreateArticle(ctx context.Context, req *dto.CreateArticleRequest, authorID uint64) (*vo.ArticleDetailVO, error) {
	status := req.Status
	if status == "" {
		status = enums.ArticleDraft
	}
	if !status.IsValid() {
		return nil, myErrors.NewValidation(fmt.Sprintf("文章状态非法: %s", status))
	}
	if err := s.checkSlugUnique(ctx, req.Slug, 0); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.checkCategoryExists(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	tagIDs, err := s.resolveTagIDs(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	article := &entities.Article{
		Title:      req.Title,
		TitleZh:    req.TitleZh,
		Slug:       req.Slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		AuthorID:   authorID,
		CategoryID: req.CategoryID,
		Status:     status,
	}
	if status == enums.ArticlePublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	var links []*entities.ArticleTagLink
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.articleRepo.CreateArticle(ctx, tx, article); err != nil {
			return err
		}
		links = buildArticleTagLinks(article.ID, tagIDs)
		if len(links) > 0 {
			return s.linkRepo.ReplaceLinksForArticle(ctx, tx, article.ID, links)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("创建文章事务失败", zap.Error(err), zap.String("slug", req.Slug))
		return nil, err
	}

	s.logger.Info("文章创建成功", zap.Uint64("articleID", article.ID), zap.Uint64("authorID", authorID))
	return vo.MapArticleToDetailVO(article, links), nil
}

func (s *articleService) GetArticleDetail(ctx context.Context, id uint64, viewerID string, actorID uint64, actorRole enums.UserRole) (*vo.ArticleDetailVO, error) {
	article, err := s.articleRepo.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("文章不存在: %d", id))
		}
		return nil, err
	}
	if article.Status != enums.ArticlePublished && !canManageArticle(article, actorID, actorRole) {
		// 对无权访问者隐藏草稿与归档文章的存在。
		return nil, myErrors.NewNotFound(fmt.Sprintf("文章不存在: %d", id))
	}

	links, err := s.linkRepo.GetLinksByArticleID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 浏览计数是旁路写入，Redis 故障不应让详情页不可用。
	if article.Status == enums.ArticlePublished && viewerID != "" {
		if err := s.viewRepo.IncrementViewCount(ctx, id, viewerID); err != nil {
			s.logger.Warn("记录文章浏览失败", zap.Error(err), zap.Uint64("articleID", id))
		}
	}

	return vo.MapArticleToDetailVO(article, links), nil
}

func (s *articleService) ListArticles(ctx context.Context, req *dto.ListArticlesRequest, actorID uint64, actorRole enums.UserRole) (*vo.ListArticlesResponse, error) {
	if req.Status != nil && !req.Status.IsValid() {
		return nil, myErrors.NewValidation(fmt.Sprintf("文章状态非法: %s", *req.Status))
	}

	params := &mysql.ArticleListQuery{
		Keyword:    req.Keyword,
		Status:     req.Status,
		CategoryID: req.CategoryID,
		TagID:      req.TagID,
		AuthorID:   req.AuthorID,
		Offset:     req.Skip,
		Limit:      req.Limit,
	}

	// 非管理员查看他人文章时强制只返回已发布的。
	viewingOwn := req.AuthorID != nil && actorID != 0 && *req.AuthorID == actorID
	if actorRole != enums.RoleAdmin && !viewingOwn {
		published := enums.ArticlePublished
		params.Status = &published
	}

	articles, total, err := s.articleRepo.ListArticles(ctx, params)
	if err != nil {
		return nil, err
	}
	return &vo.ListArticlesResponse{Articles: vo.MapArticlesToVOs(articles), Total: total}, nil
}

func (s *articleService) UpdateArticle(ctx context.Context, id uint64, req *dto.UpdateArticleRequest, actorID uint64, actorRole enums.UserRole) (*vo.ArticleDetailVO, error) {
	article, err := s.articleRepo.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("文章不存在: %d", id))
		}
		return nil, err
	}
	if !canManageArticle(article, actorID, actorRole) {
		return nil, myErrors.NewForbidden("无权修改该文章")
	}

	if req.Slug != nil && *req.Slug != article.Slug {
		if err := s.checkSlugUnique(ctx, *req.Slug, id); err != nil {
			return nil, err
		}
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, myErrors.NewValidation(fmt.Sprintf("文章状态非法: %s", *req.Status))
	}
	if req.CategoryID.Set && req.CategoryID.Valid {
		if err := s.checkCategoryExists(ctx, req.CategoryID.Value); err != nil {
			return nil, err
		}
	}

	var tagIDs []uint64
	replaceLinks := req.TagIDs != nil
	if replaceLinks {
		tagIDs, err = s.resolveTagIDs(ctx, *req.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.TitleZh.Set {
		updates["title_zh"] = req.TitleZh.Value
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Excerpt.Set {
		updates["excerpt"] = req.Excerpt.Value
	}
	if req.CategoryID.Set {
		updates["category_id"] = req.CategoryID.Ptr()
	}
	if req.Status != nil {
		updates["status"] = *req.Status
		if *req.Status == enums.ArticlePublished && article.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := s.articleRepo.UpdateArticleFields(ctx, tx, id, updates); err != nil {
				return err
			}
		}
		if replaceLinks {
			return s.linkRepo.ReplaceLinksForArticle(ctx, tx, id, buildArticleTagLinks(id, tagIDs))
		}
		return nil
	})
	if err != nil {
		s.logger.Error("更新文章事务失败", zap.Error(err), zap.Uint64("articleID", id))
		return nil, err
	}

	updated, err := s.articleRepo.GetArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	links, err := s.linkRepo.GetLinksByArticleID(ctx, id)
	if err != nil {
		return nil, err
	}
	return vo.MapArticleToDetailVO(updated, links), nil
}

func (s *articleService) DeleteArticle(ctx context.Context, id uint64, actorID uint64, actorRole enums.UserRole) error {
	article, err := s.articleRepo.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewNotFound(fmt.Sprintf("文章不存在: %d", id))
		}
		return err
	}
	if !canManageArticle(article, actorID, actorRole) {
		return myErrors.NewForbidden("无权删除该文章")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.linkRepo.DeleteLinksByArticleID(ctx, tx, id); err != nil {
			return err
		}
		if _, err := s.commentRepo.DeleteCommentsByTarget(ctx, tx, enums.TargetArticle, id); err != nil {
			return err
		}
		return s.articleRepo.DeleteArticle(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("删除文章事务失败", zap.Error(err), zap.Uint64("articleID", id))
		return err
	}

	s.logger.Info("文章删除成功", zap.Uint64("articleID", id), zap.Uint64("actorID", actorID))
	return nil
}
