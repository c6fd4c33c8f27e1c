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

// TagService 定义了文章标签的业务逻辑接口。
type TagService interface {
	// CreateTag 创建标签。名称与别名全局唯一。
	CreateTag(ctx context.Context, req *dto.CreateTagRequest, createdBy *uint64) (*vo.TagResponse, error)

	// GetTagByID 查询单个标签。
	GetTagByID(ctx context.Context, id uint64) (*vo.TagResponse, error)

	// ListTags 分页查询标签列表。
	ListTags(ctx context.Context, query *dto.ListQuery) (*vo.ListTagsResponse, error)

	// UpdateTag 部分更新标签。
	UpdateTag(ctx context.Context, id uint64, req *dto.UpdateTagRequest) (*vo.TagResponse, error)

	// DeleteTag 删除标签。仍被文章引用时以 Conflict 拒绝。
	DeleteTag(ctx context.Context, id uint64) error
}

type tagService struct {
	db       *gorm.DB
	tagRepo  mysql.TagRepository
	linkRepo mysql.ArticleTagLinkRepository
	logger   *core.ZapLogger
}

// NewTagService 是 tagService 的构造函数。
func NewTagService(db *gorm.DB, tagRepo mysql.TagRepository, linkRepo mysql.ArticleTagLinkRepository, logger *core.ZapLogger) TagService {
	return &tagService{
		db:       db,
		tagRepo:  tagRepo,
		linkRepo: linkRepo,
		logger:   logger,
	}
}

func (s *tagService) checkNameAndSlugUnique(ctx context.Context, name, slug *string, excludeID uint64) error {
	if name != nil {
		existing, err := s.tagRepo.GetTagByName(ctx, *name)
		if err != nil && !errors.Is(err, myErrors.ErrRecordNotFound) {
			return err
		}
		if err == nil && existing.ID != excludeID {
			return myErrors.NewConflict(fmt.Sprintf("标签名称已被占用: %s", *name))
		}
	}
	if slug != nil {
		existing, err := s.tagRepo.GetTagBySlug(ctx, *slug)
		if err != nil && !errors.Is(err, myErrors.ErrRecordNotFound) {
			return err
		}
		if err == nil && existing.ID != excludeID {
			return myErrors.NewConflict(fmt.Sprintf("标签别名已被占用: %s", *slug))
		}
	}
	return nil
}

func (s *tagService) CreateTag(ctx context.Context, req *dto.CreateTagRequest, createdBy *uint64) (*vo.TagResponse, error) {
	if err := s.checkNameAndSlugUnique(ctx, &req.Name, &req.Slug, 0); err != nil {
		return nil, err
	}

	tag := &entities.Tag{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		CreatedBy:   createdBy,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.tagRepo.CreateTag(ctx, tx, tag)
	})
	if err != nil {
		s.logger.Error("创建标签事务失败", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}

	s.logger.Info("标签创建成功", zap.Uint64("tagID", tag.ID), zap.String("name", tag.Name))
	return vo.MapTagToVO(tag), nil
}

func (s *tagService) GetTagByID(ctx context.Context, id uint64) (*vo.TagResponse, error) {
	tag, err := s.tagRepo.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("标签不存在: %d", id))
		}
		return nil, err
	}
	return vo.MapTagToVO(tag), nil
}

func (s *tagService) ListTags(ctx context.Context, query *dto.ListQuery) (*vo.ListTagsResponse, error) {
	tags, total, err := s.tagRepo.ListTags(ctx, query.Keyword, query.Skip, query.Limit)
	if err != nil {
		return nil, err
	}
	return &vo.ListTagsResponse{Tags: vo.MapTagsToVOs(tags), Total: total}, nil
}

func (s *tagService) UpdateTag(ctx context.Context, id uint64, req *dto.UpdateTagRequest) (*vo.TagResponse, error) {
	if _, err := s.tagRepo.GetTagByID(ctx, id); err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("标签不存在: %d", id))
		}
		return nil, err
	}
	if err := s.checkNameAndSlugUnique(ctx, req.Name, req.Slug, id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Description.Set {
		updates["description"] = req.Description.Value
	}

	if len(updates) > 0 {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.tagRepo.UpdateTagFields(ctx, tx, id, updates)
		})
		if err != nil {
			s.logger.Error("更新标签事务失败", zap.Error(err), zap.Uint64("tagID", id))
			return nil, err
		}
	}

	return s.GetTagByID(ctx, id)
}

func (s *tagService) DeleteTag(ctx context.Context, id uint64) error {
	if _, err := s.tagRepo.GetTagByID(ctx, id); err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewNotFound(fmt.Sprintf("标签不存在: %d", id))
		}
		return err
	}

	refCount, err := s.linkRepo.CountLinksByTagID(ctx, id)
	if err != nil {
		return err
	}
	if refCount > 0 {
		return myErrors.NewConflict(fmt.Sprintf("标签仍被 %d 篇文章引用，不能删除", refCount))
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.tagRepo.DeleteTag(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("删除标签事务失败", zap.Error(err), zap.Uint64("tagID", id))
		return err
	}

	s.logger.Info("标签删除成功", zap.Uint64("tagID", id))
	return nil
}
