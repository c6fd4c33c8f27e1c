package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/dependencies"
	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/models/vo"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/repo/mysql"
)

// LensService 定义了镜头相关的业务逻辑接口。
type LensService interface {
	// CreateLens 创建镜头并建立卡口关联。
	// - 型号是应用层唯一约束；卡口列表统一校验，任一无效则整体失败。
	CreateLens(ctx context.Context, req *dto.CreateLensRequest, createdBy *uint64) (*vo.LensResponse, error)

	// GetLensByID 查询单个镜头，返回包含兼容卡口ID列表的VO。
	GetLensByID(ctx context.Context, id uint64) (*vo.LensResponse, error)

	// ListLenses 分页查询镜头列表，支持品牌与卡口筛选。
	ListLenses(ctx context.Context, req *dto.ListLensesRequest) (*vo.ListLensesResponse, error)

	// UpdateLens 部分更新镜头。MountIDs 为 nil 保持不变，空列表清空，非空整体替换。
	UpdateLens(ctx context.Context, id uint64, req *dto.UpdateLensRequest) (*vo.LensResponse, error)

	// DeleteLens 删除镜头，同一事务中清除卡口关联、图片行、评分与评论。
	DeleteLens(ctx context.Context, id uint64) error
}

type lensService struct {
	db          *gorm.DB
	lensRepo    mysql.LensRepository
	brandRepo   mysql.BrandRepository
	mountRepo   mysql.MountRepository
	linkRepo    mysql.LensMountLinkRepository
	imageRepo   mysql.EquipmentImageRepository
	ratingRepo  mysql.RatingRepository
	commentRepo mysql.CommentRepository
	cosClient   dependencies.COSClientInterface
	logger      *core.ZapLogger
}

// NewLensService 是 lensService 的构造函数。
func NewLensService(db *gorm.DB, lensRepo mysql.LensRepository, brandRepo mysql.BrandRepository, mountRepo mysql.MountRepository, linkRepo mysql.LensMountLinkRepository, imageRepo mysql.EquipmentImageRepository, ratingRepo mysql.RatingRepository, commentRepo mysql.CommentRepository, cosClient dependencies.COSClientInterface, logger *core.ZapLogger) LensService {
	return &lensService{
		db:          db,
		lensRepo:    lensRepo,
		brandRepo:   brandRepo,
		mountRepo:   mountRepo,
		linkRepo:    linkRepo,
		imageRepo:   imageRepo,
		ratingRepo:  ratingRepo,
		commentRepo: commentRepo,
		cosClient:   cosClient,
		logger:      logger,
	}
}

func (s *lensService) checkLensModelUnique(ctx context.Context, model string, excludeID uint64) error {
	existing, err := s.lensRepo.GetLensByModel(ctx, model)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return myErrors.NewConflict(fmt.Sprintf("镜头型号已被占用: %s", model))
	}
	return nil
}

func (s *lensService) checkBrandExists(ctx context.Context, brandID uint64) error {
	if _, err := s.brandRepo.GetBrandByID(ctx, brandID); err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewValidation(fmt.Sprintf("品牌不存在: %d", brandID))
		}
		return err
	}
	return nil
}

// resolveMountIDs 统一校验卡口ID列表，返回按输入顺序去重后的ID。
func (s *lensService) resolveMountIDs(ctx context.Context, ids []uint64) ([]uint64, error) {
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

	mounts, err := s.mountRepo.GetMountsByIDs(ctx, deduped)
	if err != nil {
		return nil, err
	}
	found := make(map[uint64]struct{}, len(mounts))
	for _, m := range mounts {
		found[m.ID] = struct{}{}
	}
	for _, id := range deduped {
		if _, ok := found[id]; !ok {
			return nil, myErrors.NewValidation(fmt.Sprintf("卡口不存在: %d", id))
		}
	}
	return deduped, nil
}

// buildLensMountLinks 根据卡口ID列表构造关联行。
// 主卡口默认为列表首个ID，显式指定时必须出现在列表中。
func buildLensMountLinks(lensID uint64, mountIDs []uint64, primaryMountID *uint64) ([]*entities.LensMountLink, error) {
	if len(mountIDs) == 0 {
		return nil, nil
	}

	primary := mountIDs[0]
	if primaryMountID != nil {
		primary = *primaryMountID
		found := false
		for _, id := range mountIDs {
			if id == primary {
				found = true
				break
			}
		}
		if !found {
			return nil, myErrors.NewValidation(fmt.Sprintf("主卡口不在关联列表中: %d", primary))
		}
	}

	links := make([]*entities.LensMountLink, 0, len(mountIDs))
	for _, id := range mountIDs {
		links = append(links, &entities.LensMountLink{
			LensID:    lensID,
			MountID:   id,
			IsPrimary: id == primary,
		})
	}
	return links, nil
}

func (s *lensService) CreateLens(ctx context.Context, req *dto.CreateLensRequest, createdBy *uint64) (*vo.LensResponse, error) {
	if req.LensType != "" && !req.LensType.IsValid() {
		return nil, myErrors.NewValidation(fmt.Sprintf("镜头类型非法: %s", req.LensType))
	}
	if err := s.checkLensModelUnique(ctx, req.Model, 0); err != nil {
		return nil, err
	}
	if err := s.checkBrandExists(ctx, req.BrandID); err != nil {
		return nil, err
	}
	mountIDs, err := s.resolveMountIDs(ctx, req.MountIDs)
	if err != nil {
		return nil, err
	}

	lens := &entities.Lens{
		Model:       req.Model,
		ModelZh:     req.ModelZh,
		BrandID:     req.BrandID,
		ReleaseYear: req.ReleaseYear,
		FocalLength: req.FocalLength,
		Aperture:    req.Aperture,
		LensType:    req.LensType,
		FilterSize:  req.FilterSize,
		WeightGrams: req.WeightGrams,
		Dimensions:  req.Dimensions,
		Description: req.Description,
		CreatedBy:   createdBy,
	}

	var links []*entities.LensMountLink
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lensRepo.CreateLens(ctx, tx, lens); err != nil {
			return err
		}
		links, err = buildLensMountLinks(lens.ID, mountIDs, req.PrimaryMountID)
		if err != nil {
			return err
		}
		if len(links) > 0 {
			return s.linkRepo.ReplaceLinksForLens(ctx, tx, lens.ID, links)
		}
		return nil
	})
	if err != nil {
		var svcErr *myErrors.ServiceError
		if !errors.As(err, &svcErr) {
			s.logger.Error("创建镜头事务失败", zap.Error(err), zap.String("model", req.Model))
		}
		return nil, err
	}

	s.logger.Info("镜头创建成功", zap.Uint64("lensID", lens.ID), zap.String("model", lens.Model))
	return vo.MapLensToVO(lens, links), nil
}

func (s *lensService) GetLensByID(ctx context.Context, id uint64) (*vo.LensResponse, error) {
	lens, err := s.lensRepo.GetLensByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("镜头不存在: %d", id))
		}
		return nil, err
	}
	links, err := s.linkRepo.GetLinksByLensID(ctx, id)
	if err != nil {
		return nil, err
	}
	return vo.MapLensToVO(lens, links), nil
}

func (s *lensService) ListLenses(ctx context.Context, req *dto.ListLensesRequest) (*vo.ListLensesResponse, error) {
	lenses, total, err := s.lensRepo.ListLenses(ctx, req.Keyword, req.BrandID, req.MountID, req.Skip, req.Limit)
	if err != nil {
		return nil, err
	}

	// 列表页同样返回卡口ID，逐支镜头取关联，量级由分页上限约束。
	items := make([]*vo.LensResponse, 0, len(lenses))
	for _, lens := range lenses {
		links, err := s.linkRepo.GetLinksByLensID(ctx, lens.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, vo.MapLensToVO(lens, links))
	}
	return &vo.ListLensesResponse{Lenses: items, Total: total}, nil
}

func (s *lensService) UpdateLens(ctx context.Context, id uint64, req *dto.UpdateLensRequest) (*vo.LensResponse, error) {
	lens, err := s.lensRepo.GetLensByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("镜头不存在: %d", id))
		}
		return nil, err
	}

	if req.Model != nil && *req.Model != lens.Model {
		if err := s.checkLensModelUnique(ctx, *req.Model, id); err != nil {
			return nil, err
		}
	}
	if req.BrandID != nil {
		if err := s.checkBrandExists(ctx, *req.BrandID); err != nil {
			return nil, err
		}
	}
	if req.LensType.Set && req.LensType.Valid && !req.LensType.Value.IsValid() {
		return nil, myErrors.NewValidation(fmt.Sprintf("镜头类型非法: %s", req.LensType.Value))
	}

	var mountIDs []uint64
	replaceLinks := req.MountIDs != nil
	if replaceLinks {
		mountIDs, err = s.resolveMountIDs(ctx, *req.MountIDs)
		if err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.ModelZh.Set {
		updates["model_zh"] = req.ModelZh.Value
	}
	if req.BrandID != nil {
		updates["brand_id"] = *req.BrandID
	}
	if req.ReleaseYear.Set {
		updates["release_year"] = req.ReleaseYear.Ptr()
	}
	if req.FocalLength != nil {
		updates["focal_length"] = *req.FocalLength
	}
	if req.Aperture != nil {
		updates["aperture"] = *req.Aperture
	}
	if req.LensType.Set {
		updates["lens_type"] = req.LensType.Value
	}
	if req.FilterSize.Set {
		updates["filter_size"] = req.FilterSize.Ptr()
	}
	if req.WeightGrams.Set {
		updates["weight_grams"] = req.WeightGrams.Ptr()
	}
	if req.Dimensions.Set {
		updates["dimensions"] = req.Dimensions.Value
	}
	if req.Description.Set {
		updates["description"] = req.Description.Value
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := s.lensRepo.UpdateLensFields(ctx, tx, id, updates); err != nil {
				return err
			}
		}
		if replaceLinks {
			links, err := buildLensMountLinks(id, mountIDs, req.PrimaryMountID)
			if err != nil {
				return err
			}
			return s.linkRepo.ReplaceLinksForLens(ctx, tx, id, links)
		}
		return nil
	})
	if err != nil {
		var svcErr *myErrors.ServiceError
		if !errors.As(err, &svcErr) {
			s.logger.Error("更新镜头事务失败", zap.Error(err), zap.Uint64("lensID", id))
		}
		return nil, err
	}

	return s.GetLensByID(ctx, id)
}

func (s *lensService) DeleteLens(ctx context.Context, id uint64) error {
	if _, err := s.lensRepo.GetLensByID(ctx, id); err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewNotFound(fmt.Sprintf("镜头不存在: %d", id))
		}
		return err
	}

	var removedImages []*entities.EquipmentImage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.linkRepo.DeleteLinksByLensID(ctx, tx, id); err != nil {
			return err
		}
		var err error
		removedImages, err = s.imageRepo.DeleteImagesByTarget(ctx, tx, enums.TargetLens, id)
		if err != nil {
			return err
		}
		if err := s.ratingRepo.DeleteRatingsByTarget(ctx, tx, enums.TargetLens, id); err != nil {
			return err
		}
		if _, err := s.commentRepo.DeleteCommentsByTarget(ctx, tx, enums.TargetLens, id); err != nil {
			return err
		}
		return s.lensRepo.DeleteLens(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("删除镜头事务失败", zap.Error(err), zap.Uint64("lensID", id))
		return err
	}

	for _, img := range removedImages {
		if img.ObjectKey == "" {
			continue
		}
		if err := s.cosClient.DeleteObject(ctx, img.ObjectKey); err != nil {
			s.logger.Warn("清理镜头图片 COS 对象失败",
				zap.Error(err), zap.Uint64("lensID", id), zap.String("objectKey", img.ObjectKey))
		}
	}

	s.logger.Info("镜头删除成功", zap.Uint64("lensID", id))
	return nil
}
