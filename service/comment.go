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

// CommentService 定义了评论相关的业务逻辑接口。
type CommentService interface {
	// CreateComment 发表评论或回复。
	// - 目标必须是可评论类型且真实存在；父评论必须挂在同一目标下。
	// - 目标为文章时在同一事务内评论计数 +1。
	CreateComment(ctx context.Context, req *dto.CreateCommentRequest, authorID uint64) (*vo.CommentResponse, error)

	// GetCommentByID 查询单条评论。
	GetCommentByID(ctx context.Context, id uint64) (*vo.CommentResponse, error)

	// ListComments 按目标分页查询评论，非管理员只能看到审核通过的。
	ListComments(ctx context.Context, req *dto.ListCommentsRequest, actorRole enums.UserRole) (*vo.ListCommentsResponse, error)

	// UpdateComment 修改评论。内容仅作者本人可改，审核状态仅管理员可改。
	UpdateComment(ctx context.Context, id uint64, req *dto.UpdateCommentRequest, actorID uint64, actorRole enums.UserRole) (*vo.CommentResponse, error)

	// DeleteComment 删除评论，仅作者本人或管理员可操作。
	// - 回复整体挂接到被删评论的父评论下；目标为文章时评论计数 -1。
	DeleteComment(ctx context.Context, id uint64, actorID uint64, actorRole enums.UserRole) error
}

type commentService struct {
	db          *gorm.DB
	commentRepo mysql.CommentRepository
	articleRepo mysql.ArticleRepository
	cameraRepo  mysql.CameraRepository
	lensRepo    mysql.LensRepository
	logger      *core.ZapLogger
}

// NewCommentService 是 commentService 的构造函数。
func NewCommentService(db *gorm.DB, commentRepo mysql.CommentRepository, articleRepo mysql.ArticleRepository, cameraRepo mysql.CameraRepository, lensRepo mysql.LensRepository, logger *core.ZapLogger) CommentService {
	return &commentService{
		db:          db,
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		cameraRepo:  cameraRepo,
		lensRepo:    lensRepo,
		logger:      logger,
	}
}

// resolveCommentTarget 校验评论目标存在。
func (s *commentService) resolveCommentTarget(ctx context.Context, targetType enums.TargetType, targetID uint64) error {
	if !targetType.IsCommentable() {
		return myErrors.NewValidation(fmt.Sprintf("目标类型不可评论: %s", targetType))
	}

	var err error
	switch targetType {
	case enums.TargetArticle:
		_, err = s.articleRepo.GetArticleByID(ctx, targetID)
	case enums.TargetCamera:
		_, err = s.cameraRepo.GetCameraByID(ctx, targetID)
	case enums.TargetLens:
		_, err = s.lensRepo.GetLensByID(ctx, targetID)
	}
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewValidation(fmt.Sprintf("评论目标不存在: %s/%d", targetType, targetID))
		}
		return err
	}
	return nil
}

func (s *commentService) CreateComment(ctx context.Context, req *dto.CreateCommentRequest, authorID uint64) (*vo.CommentResponse, error) {
	if err := s.resolveCommentTarget(ctx, req.TargetType, req.TargetID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetCommentByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, myErrors.ErrRecordNotFound) {
				return nil, myErrors.NewValidation(fmt.Sprintf("父评论不存在: %d", *req.ParentID))
			}
			return nil, err
		}
		if parent.TargetType != req.TargetType || parent.TargetID != req.TargetID {
			return nil, myErrors.NewValidation("父评论不属于同一目标")
		}
	}

	comment := &entities.Comment{
		Content:    req.Content,
		AuthorID:   authorID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		ParentID:   req.ParentID,
		IsApproved: true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.CreateComment(ctx, tx, comment); err != nil {
			return err
		}
		if req.TargetType == enums.TargetArticle {
			return s.articleRepo.AdjustCommentCount(ctx, tx, req.TargetID, 1)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("创建评论事务失败", zap.Error(err),
			zap.String("targetType", string(req.TargetType)), zap.Uint64("targetID", req.TargetID))
		return nil, err
	}

	return vo.MapCommentToVO(comment), nil
}

func (s *commentService) GetCommentByID(ctx context.Context, id uint64) (*vo.CommentResponse, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("评论不存在: %d", id))
		}
		return nil, err
	}
	return vo.MapCommentToVO(comment), nil
}

func (s *commentService) ListComments(ctx context.Context, req *dto.ListCommentsRequest, actorRole enums.UserRole) (*vo.ListCommentsResponse, error) {
	if !req.TargetType.IsCommentable() {
		return nil, myErrors.NewValidation(fmt.Sprintf("目标类型不可评论: %s", req.TargetType))
	}

	approvedOnly := actorRole != enums.RoleAdmin
	comments, total, err := s.commentRepo.ListCommentsByTarget(ctx, req.TargetType, req.TargetID, approvedOnly, req.Skip, req.Limit)
	if err != nil {
		return nil, err
	}
	return &vo.ListCommentsResponse{Comments: vo.MapCommentsToVOs(comments), Total: total}, nil
}

func (s *commentService) UpdateComment(ctx context.Context, id uint64, req *dto.UpdateCommentRequest, actorID uint64, actorRole enums.UserRole) (*vo.CommentResponse, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("评论不存在: %d", id))
		}
		return nil, err
	}

	if req.Content != nil && comment.AuthorID != actorID {
		return nil, myErrors.NewForbidden("只有评论作者可以修改内容")
	}
	if req.IsApproved != nil && actorRole != enums.RoleAdmin {
		return nil, myErrors.NewForbidden("审核状态仅管理员可修改")
	}

	updates := make(map[string]interface{})
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.IsApproved != nil {
		updates["is_approved"] = *req.IsApproved
	}

	if len(updates) > 0 {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.commentRepo.UpdateCommentFields(ctx, tx, id, updates)
		})
		if err != nil {
			s.logger.Error("更新评论事务失败", zap.Error(err), zap.Uint64("commentID", id))
			return nil, err
		}
	}

	return s.GetCommentByID(ctx, id)
}

func (s *commentService) DeleteComment(ctx context.Context, id uint64, actorID uint64, actorRole enums.UserRole) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewNotFound(fmt.Sprintf("评论不存在: %d", id))
		}
		return err
	}
	if comment.AuthorID != actorID && actorRole != enums.RoleAdmin {
		return myErrors.NewForbidden("无权删除该评论")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.ReparentReplies(ctx, tx, id, comment.ParentID); err != nil {
			return err
		}
		if err := s.commentRepo.DeleteComment(ctx, tx, id); err != nil {
			return err
		}
		if comment.TargetType == enums.TargetArticle {
			return s.articleRepo.AdjustCommentCount(ctx, tx, comment.TargetID, -1)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("删除评论事务失败", zap.Error(err), zap.Uint64("commentID", id))
		return err
	}

	s.logger.Info("评论删除成功", zap.Uint64("commentID", id), zap.Uint64("actorID", actorID))
	return nil
}
