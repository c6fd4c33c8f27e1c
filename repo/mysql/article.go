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

// ArticleListQuery 封装文章列表的筛选条件，指针为 nil 表示不过滤。
type ArticleListQuery struct {
	Keyword    string
	Status     *enums.ArticleStatus
	CategoryID *uint64
	TagID      *uint64
	AuthorID   *uint64
	Offset     int
	Limit      int
}

// ArticleRepository 定义了文章数据在 MySQL 中的持久化操作接口。
type ArticleRepository interface {
	// CreateArticle 持久化一个新的文章记录。
	CreateArticle(ctx context.Context, db *gorm.DB, article *entities.Article) error

	// GetArticleByID 根据 ID 检索文章，未找到时返回 myErrors.ErrRecordNotFound。
	GetArticleByID(ctx context.Context, id uint64) (*entities.Article, error)

	// GetArticleBySlug 按 slug 精确检索文章，用于唯一性预检。
	GetArticleBySlug(ctx context.Context, slug string) (*entities.Article, error)

	// ListArticles 按条件分页查询文章列表。
	// - TagID 非空时通过 article_tag_links 联表筛选。
	ListArticles(ctx context.Context, params *ArticleListQuery) ([]*entities.Article, int64, error)

	// UpdateArticleFields 按字段映射更新文章。
	UpdateArticleFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error

	// AdjustCommentCount 增减文章的评论计数，delta 可以为负。
	AdjustCommentCount(ctx context.Context, db *gorm.DB, id uint64, delta int64) error

	// DetachArticlesFromCategory 将引用某分类的文章的 category_id 置空，
	// 分类删除时调用。
	DetachArticlesFromCategory(ctx context.Context, db *gorm.DB, categoryID uint64) error

	// DeleteArticle 物理删除文章行，标签关联与评论由服务层在同一事务中删除。
	DeleteArticle(ctx context.Context, db *gorm.DB, id uint64) error
}

type articleRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewArticleRepository 是 articleRepository 的构造函数。
func NewArticleRepository(db *gorm.DB, logger *core.ZapLogger) ArticleRepository {
	return &articleRepository{db: db, logger: logger}
}

func (r *articleRepository) CreateArticle(ctx context.Context, db *gorm.DB, article *entities.Article) error {
	if err := db.WithContext(ctx).Create(article).Error; err != nil {
		return err
	}
	return nil
}

func (r *articleRepository) GetArticleByID(ctx context.Context, id uint64) (*entities.Article, error) {
	var article entities.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("查询文章失败", zap.Error(err), zap.Uint64("articleID", id))
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetArticleBySlug(ctx context.Context, slug string) (*entities.Article, error) {
	var article entities.Article
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按slug查询文章失败", zap.Error(err), zap.String("slug", slug))
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ListArticles(ctx context.Context, params *ArticleListQuery) ([]*entities.Article, int64, error) {
	var (
		articles []*entities.Article
		total    int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Article{})
	if params.Keyword != "" {
		pattern := "%" + params.Keyword + "%"
		query = query.Where("articles.title LIKE ? OR articles.title_zh LIKE ?", pattern, pattern)
	}
	if params.Status != nil {
		query = query.Where("articles.status = ?", *params.Status)
	}
	if params.CategoryID != nil {
		query = query.Where("articles.category_id = ?", *params.CategoryID)
	}
	if params.AuthorID != nil {
		query = query.Where("articles.author_id = ?", *params.AuthorID)
	}
	if params.TagID != nil {
		query = query.Joins("JOIN article_tag_links ON article_tag_links.article_id = articles.id").
			Where("article_tag_links.tag_id = ?", *params.TagID)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计文章总数失败", zap.Error(err), zap.Any("params", params))
		return nil, 0, err
	}

	// 列表按创建时间降序，最新文章在前。
	err := query.Order("articles.created_at DESC").Order("articles.id DESC").
		Offset(params.Offset).Limit(params.Limit).
		Find(&articles).Error
	if err != nil {
		r.logger.Error("查询文章列表失败", zap.Error(err), zap.Any("params", params))
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepository) UpdateArticleFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新文章", zap.Uint64("articleID", id))
		return nil
	}

	result := db.WithContext(ctx).Model(&entities.Article{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新文章数据库操作失败", zap.Error(result.Error), zap.Uint64("articleID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *articleRepository) AdjustCommentCount(ctx context.Context, db *gorm.DB, id uint64, delta int64) error {
	// CASE 钳制下界，防止并发删除把计数减成负数；不用 GREATEST 是为了兼容 sqlite。
	return db.WithContext(ctx).Model(&entities.Article{}).
		Where("id = ?", id).
		Update("comment_count", gorm.Expr("CASE WHEN comment_count + ? > 0 THEN comment_count + ? ELSE 0 END", delta, delta)).Error
}

func (r *articleRepository) DetachArticlesFromCategory(ctx context.Context, db *gorm.DB, categoryID uint64) error {
	return db.WithContext(ctx).Model(&entities.Article{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
}

func (r *articleRepository) DeleteArticle(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Article{}, id)
	if result.Error != nil {
		r.logger.Error("删除文章失败", zap.Error(result.Error), zap.Uint64("articleID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}
