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

// CommentRepository 定义了评论数据在 MySQL 中的持久化操作接口。
type CommentRepository interface {
	// CreateComment 持久化一个新的评论记录。
	CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error

	// GetCommentByID 根据 ID 检索评论，未找到时返回 myErrors.ErrRecordNotFound。
	GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error)

	// ListCommentsByTarget 按目标分页查询评论。
	// - approvedOnly 为 true 时只返回已通过审核的评论。
	ListCommentsByTarget(ctx context.Context, targetType enums.TargetType, targetID uint64, approvedOnly bool, offset, limit int) ([]*entities.Comment, int64, error)

	// UpdateCommentFields 按字段映射更新评论。
	UpdateCommentFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error

	// ReparentReplies 将某评论的所有直接回复改挂到新的父评论。
	// - newParentID 为 nil 时回复提升为顶级评论。
	ReparentReplies(ctx context.Context, db *gorm.DB, parentID uint64, newParentID *uint64) error

	// DeleteComment 物理删除评论行。
	DeleteComment(ctx context.Context, db *gorm.DB, id uint64) error

	// DeleteCommentsByTarget 删除某目标下的全部评论，目标实体删除时的手动级联。
	// - 返回删除的行数，便于调用方回调计数。
	DeleteCommentsByTarget(ctx context.Context, db *gorm.DB, targetType enums.TargetType, targetID uint64) (int64, error)
}

type commentRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewCommentRepository 是 commentRepository 的构造函数。
func NewCommentRepository(db *gorm.DB, logger *core.ZapLogger) CommentRepository {
	return &commentRepository{db: db, logger: logger}
}

func (r *commentRepository) CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error {
	if err := db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	return nil
}

func (r *commentRepository) GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("查询评论失败", zap.Error(err), zap.Uint64("commentID", id))
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListCommentsByTarget(ctx context.Context, targetType enums.TargetType, targetID uint64, approvedOnly bool, offset, limit int) ([]*entities.Comment, int64, error) {
	var (
		comments []*entities.Comment
		total    int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Comment{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID)
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计评论总数失败", zap.Error(err),
			zap.String("targetType", string(targetType)), zap.Uint64("targetID", targetID))
		return nil, 0, err
	}

	// 评论按时间正序展示，先来的在前。
	err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&comments).Error
	if err != nil {
		r.logger.Error("查询评论列表失败", zap.Error(err),
			zap.String("targetType", string(targetType)), zap.Uint64("targetID", targetID))
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) UpdateCommentFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新评论", zap.Uint64("commentID", id))
		return nil
	}

	result := db.WithContext(ctx).Model(&entities.Comment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新评论数据库操作失败", zap.Error(result.Error), zap.Uint64("commentID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) ReparentReplies(ctx context.Context, db *gorm.DB, parentID uint64, newParentID *uint64) error {
	return db.WithContext(ctx).Model(&entities.Comment{}).
		Where("parent_id = ?", parentID).
		Update("parent_id", newParentID).Error
}

func (r *commentRepository) DeleteComment(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Comment{}, id)
	if result.Error != nil {
		r.logger.Error("删除评论失败", zap.Error(result.Error), zap.Uint64("commentID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) DeleteCommentsByTarget(ctx context.Context, db *gorm.DB, targetType enums.TargetType, targetID uint64) (int64, error) {
	result := db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Delete(&entities.Comment{})
	if result.Error != nil {
		r.logger.Error("按目标删除评论失败", zap.Error(result.Error),
			zap.String("targetType", string(targetType)), zap.Uint64("targetID", targetID))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
