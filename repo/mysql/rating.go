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

// RatingAggregate 是某个目标的评分聚合结果。
type RatingAggregate struct {
	Average float64
	Count   int64
}

// RatingRepository 定义了评分数据在 MySQL 中的持久化操作接口。
// (user_id, target_type, target_id) 上有复合唯一索引，服务层在写入前另做预检
// 以便返回带字段信息的冲突提示。
type RatingRepository interface {
	// CreateRating 持久化一个新的评分记录。
	CreateRating(ctx context.Context, db *gorm.DB, rating *entities.Rating) error

	// GetRatingByID 根据 ID 检索评分，未找到时返回 myErrors.ErrRecordNotFound。
	GetRatingByID(ctx context.Context, id uint64) (*entities.Rating, error)

	// GetRatingByTuple 按 (user, target_type, target_id) 元组检索评分。
	GetRatingByTuple(ctx context.Context, userID uint64, targetType enums.TargetType, targetID uint64) (*entities.Rating, error)

	// ListRatingsByTarget 按目标分页查询评分。
	ListRatingsByTarget(ctx context.Context, targetType enums.TargetType, targetID uint64, offset, limit int) ([]*entities.Rating, int64, error)

	// UpdateRatingFields 按字段映射更新评分。
	UpdateRatingFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error

	// GetAggregateForTarget 在当前事务视角下重新计算目标的评分聚合。
	// - 平均分四舍五入保留一位小数，没有评分时返回零值。
	GetAggregateForTarget(ctx context.Context, db *gorm.DB, targetType enums.TargetType, targetID uint64) (*RatingAggregate, error)

	// DeleteRating 物理删除评分行。
	DeleteRating(ctx context.Context, db *gorm.DB, id uint64) error

	// DeleteRatingsByTarget 删除某目标下的全部评分，目标实体删除时的手动级联。
	DeleteRatingsByTarget(ctx context.Context, db *gorm.DB, targetType enums.TargetType, targetID uint64) error
}

type ratingRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewRatingRepository 是 ratingRepository 的构造函数。
func NewRatingRepository(db *gorm.DB, logger *core.ZapLogger) RatingRepository {
	return &ratingRepository{db: db, logger: logger}
}

func (r *ratingRepository) CreateRating(ctx context.Context, db *gorm.DB, rating *entities.Rating) error {
	if err := db.WithContext(ctx).Create(rating).Error; err != nil {
		return err
	}
	return nil
}

func (r *ratingRepository) GetRatingByID(ctx context.Context, id uint64) (*entities.Rating, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("查询评分失败", zap.Error(err), zap.Uint64("ratingID", id))
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetRatingByTuple(ctx context.Context, userID uint64, targetType enums.TargetType, targetID uint64) (*entities.Rating, error) {
	var rating entities.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按元组查询评分失败", zap.Error(err),
			zap.Uint64("userID", userID),
			zap.String("targetType", string(targetType)),
			zap.Uint64("targetID", targetID))
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) ListRatingsByTarget(ctx context.Context, targetType enums.TargetType, targetID uint64, offset, limit int) ([]*entities.Rating, int64, error) {
	var (
		ratings []*entities.Rating
		total   int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Rating{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID)

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计评分总数失败", zap.Error(err),
			zap.String("targetType", string(targetType)), zap.Uint64("targetID", targetID))
		return nil, 0, err
	}

	// 最新评分在前。
	err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&ratings).Error
	if err != nil {
		r.logger.Error("查询评分列表失败", zap.Error(err),
			zap.String("targetType", string(targetType)), zap.Uint64("targetID", targetID))
		return nil, 0, err
	}
	return ratings, total, nil
}

func (r *ratingRepository) UpdateRatingFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新评分", zap.Uint64("ratingID", id))
		return nil
	}

	result := db.WithContext(ctx).Model(&entities.Rating{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新评分数据库操作失败", zap.Error(result.Error), zap.Uint64("ratingID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *ratingRepository) GetAggregateForTarget(ctx context.Context, db *gorm.DB, targetType enums.TargetType, targetID uint64) (*RatingAggregate, error) {
	// COALESCE 兜底没有任何评分行的情况，ROUND 保证与聚合列的精度一致。
	var agg RatingAggregate
	err := db.WithContext(ctx).Model(&entities.Rating{}).
		Select("COALESCE(ROUND(AVG(score), 1), 0) AS average, COUNT(*) AS count").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Scan(&agg).Error
	if err != nil {
		r.logger.Error("计算评分聚合失败", zap.Error(err),
			zap.String("targetType", string(targetType)), zap.Uint64("targetID", targetID))
		return nil, err
	}
	return &agg, nil
}

func (r *ratingRepository) DeleteRating(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.Rating{}, id)
	if result.Error != nil {
		r.logger.Error("删除评分失败", zap.Error(result.Error), zap.Uint64("ratingID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *ratingRepository) DeleteRatingsByTarget(ctx context.Context, db *gorm.DB, targetType enums.TargetType, targetID uint64) error {
	return db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Delete(&entities.Rating{}).Error
}
