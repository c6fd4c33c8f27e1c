package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/models/vo"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/repo/mysql"
)

// RatingService 定义了器材评分的业务逻辑接口。
// 每次写入后在同一事务内重算目标的评分聚合字段，读取路径永远不需要聚合查询。
type RatingService interface {
	// CreateRating 发表评分。同一用户对同一目标只能评一次。
	CreateRating(ctx context.Context, req *dto.CreateRatingRequest, userID uint64) (*vo.RatingResponse, error)

	// GetRatingByID 查询单条评分。
	GetRatingByID(ctx context.Context, id uint64) (*vo.RatingResponse, error)

	// ListRatings 按目标分页查询评分列表。
	ListRatings(ctx context.Context, req *dto.ListRatingsRequest) (*vo.ListRatingsResponse, error)

	// UpdateRating 修改评分，仅本人或管理员可操作。
	UpdateRating(ctx context.Context, id uint64, req *dto.UpdateRatingRequest, actorID uint64, actorRole enums.UserRole) (*vo.RatingResponse, error)

	// DeleteRating 删除评分，仅本人或管理员可操作。
	DeleteRating(ctx context.Context, id uint64, actorID uint64, actorRole enums.UserRole) error
}

type ratingService struct {
	db         *gorm.DB
	ratingRepo mysql.RatingRepository
	cameraRepo mysql.CameraRepository
	lensRepo   mysql.LensRepository
	logger     *core.ZapLogger
}

// NewRatingService 是 ratingService 的构造函数。
func NewRatingService(db *gorm.DB, ratingRepo mysql.RatingRepository, cameraRepo mysql.CameraRepository, lensRepo mysql.LensRepository, logger *core.ZapLogger) RatingService {
	return &ratingService{
		db:         db,
		ratingRepo: ratingRepo,
		cameraRepo: cameraRepo,
		lensRepo:   lensRepo,
		logger:     logger,
	}
}

// resolveRatingTarget 校验评分目标存在。
func (s *ratingService) resolveRatingTarget(ctx context.Context, targetType enums.TargetType, targetID uint64) error {
	if !targetType.IsRatable() {
		return myErrors.NewValidation(fmt.Sprintf("目标类型不可评分: %s", targetType))
	}

	var err error
	switch targetType {
	case enums.TargetCamera:
		_, err = s.cameraRepo.GetCameraByID(ctx, targetID)
	case enums.TargetLens:
		_, err = s.lensRepo.GetLensByID(ctx, targetID)
	}
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewValidation(fmt.Sprintf("评分目标不存在: %s/%d", targetType, targetID))
		}
		return err
	}
	return nil
}

// refreshAggregate 在事务内重算目标的评分聚合并写回目标行。
func (s *ratingService) refreshAggregate(ctx context.Context, tx *gorm.DB, targetType enums.TargetType, targetID uint64) error {
	agg, err := s.ratingRepo.GetAggregateForTarget(ctx, tx, targetType, targetID)
	if err != nil {
		return err
	}
	switch targetType {
	case enums.TargetCamera:
		return s.cameraRepo.UpdateRatingAggregate(ctx, tx, targetID, agg.Average, agg.Count)
	case enums.TargetLens:
		return s.lensRepo.UpdateRatingAggregate(ctx, tx, targetID, agg.Average, agg.Count)
	}
	return nil
}

func (s *ratingService) CreateRating(ctx context.Context, req *dto.CreateRatingRequest, userID uint64) (*vo.RatingResponse, error) {
	if err := s.resolveRatingTarget(ctx, req.TargetType, req.TargetID); err != nil {
		return nil, err
	}

	// 预检查给出友好的冲突信息，并发重复写由复合唯一索引在提交时兜底。
	_, err := s.ratingRepo.GetRatingByTuple(ctx, userID, req.TargetType, req.TargetID)
	if err == nil {
		return nil, myErrors.NewConflict(fmt.Sprintf("已对该目标评过分: %s/%d", req.TargetType, req.TargetID))
	}
	if !errors.Is(err, myErrors.ErrRecordNotFound) {
		return nil, err
	}

	rating := &entities.Rating{
		UserID:     userID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Score:      req.Score,
		Comment:    req.Comment,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ratingRepo.CreateRating(ctx, tx, rating); err != nil {
			return err
		}
		return s.refreshAggregate(ctx, tx, req.TargetType, req.TargetID)
	})
	if err != nil {
		s.logger.Error("创建评分事务失败", zap.Error(err),
			zap.String("targetType", string(req.TargetType)), zap.Uint64("targetID", req.TargetID))
		return nil, err
	}

	return vo.MapRatingToVO(rating), nil
}

func (s *ratingService) GetRatingByID(ctx context.Context, id uint64) (*vo.RatingResponse, error) {
	rating, err := s.ratingRepo.GetRatingByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("评分不存在: %d", id))
		}
		return nil, err
	}
	return vo.MapRatingToVO(rating), nil
}

func (s *ratingService) ListRatings(ctx context.Context, req *dto.ListRatingsRequest) (*vo.ListRatingsResponse, error) {
	if !req.TargetType.IsRatable() {
		return nil, myErrors.NewValidation(fmt.Sprintf("目标类型不可评分: %s", req.TargetType))
	}

	ratings, total, err := s.ratingRepo.ListRatingsByTarget(ctx, req.TargetType, req.TargetID, req.Skip, req.Limit)
	if err != nil {
		return nil, err
	}
	return &vo.ListRatingsResponse{Ratings: vo.MapRatingsToVOs(ratings), Total: total}, nil
}

func (s *ratingService) UpdateRating(ctx context.Context, id uint64, req *dto.UpdateRatingRequest, actorID uint64, actorRole enums.UserRole) (*vo.RatingResponse, error) {
	rating, err := s.ratingRepo.GetRatingByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("评分不存在: %d", id))
		}
		return nil, err
	}
	if rating.UserID != actorID && actorRole != enums.RoleAdmin {
		return nil, myErrors.NewForbidden("无权修改该评分")
	}

	// 目标字段可以单独或成对出现，缺省沿用原目标。
	newType, newID := rating.TargetType, rating.TargetID
	if req.TargetType != nil {
		newType = *req.TargetType
	}
	if req.TargetID != nil {
		newID = *req.TargetID
	}
	retargeted := newType != rating.TargetType || newID != rating.TargetID

	updates := make(map[string]interface{})
	if retargeted {
		if err := s.resolveRatingTarget(ctx, newType, newID); err != nil {
			return nil, err
		}
		// 挪动目标后同一用户在新目标上仍然只能有一条评分。
		existing, err := s.ratingRepo.GetRatingByTuple(ctx, rating.UserID, newType, newID)
		if err == nil && existing.ID != id {
			return nil, myErrors.NewConflict(fmt.Sprintf("已对该目标评过分: %s/%d", newType, newID))
		}
		if err != nil && !errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, err
		}
		updates["target_type"] = newType
		updates["target_id"] = newID
	}
	if req.Score != nil {
		updates["score"] = *req.Score
	}
	if req.Comment.Set {
		updates["comment"] = req.Comment.Value
	}

	if len(updates) > 0 {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.ratingRepo.UpdateRatingFields(ctx, tx, id, updates); err != nil {
				return err
			}
			if retargeted {
				// 新旧目标的聚合都要重算，旧目标少了一条评分。
				if err := s.refreshAggregate(ctx, tx, rating.TargetType, rating.TargetID); err != nil {
					return err
				}
				return s.refreshAggregate(ctx, tx, newType, newID)
			}
			if req.Score != nil {
				return s.refreshAggregate(ctx, tx, rating.TargetType, rating.TargetID)
			}
			return nil
		})
		if err != nil {
			s.logger.Error("更新评分事务失败", zap.Error(err), zap.Uint64("ratingID", id))
			return nil, err
		}
	}

	return s.GetRatingByID(ctx, id)
}

func (s *ratingService) DeleteRating(ctx context.Context, id uint64, actorID uint64, actorRole enums.UserRole) error {
	rating, err := s.ratingRepo.GetRatingByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewNotFound(fmt.Sprintf("评分不存在: %d", id))
		}
		return err
	}
	if rating.UserID != actorID && actorRole != enums.RoleAdmin {
		return myErrors.NewForbidden("无权删除该评分")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ratingRepo.DeleteRating(ctx, tx, id); err != nil {
			return err
		}
		return s.refreshAggregate(ctx, tx, rating.TargetType, rating.TargetID)
	})
	if err != nil {
		s.logger.Error("删除评分事务失败", zap.Error(err), zap.Uint64("ratingID", id))
		return err
	}

	s.logger.Info("评分删除成功", zap.Uint64("ratingID", id), zap.Uint64("actorID", actorID))
	return nil
}
