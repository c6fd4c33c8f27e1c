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

// MountService 定义了卡口相关的业务逻辑接口。
type MountService interface {
	// CreateMount 创建卡口并建立品牌关联。
	CreateMount(ctx context.Context, req *dto.CreateMountRequest, createdBy *uint64) (*vo.MountResponse, error)

	// GetMountByID 查询单个卡口，包含品牌关联。
	GetMountByID(ctx context.Context, id uint64) (*vo.MountResponse, error)

	// ListMounts 分页查询卡口列表。
	ListMounts(ctx context.Context, query *dto.ListQuery) (*vo.ListMountsResponse, error)

	// UpdateMount 部分更新卡口，BrandIDs 遵循 nil/空/非空 三态语义。
	UpdateMount(ctx context.Context, id uint64, req *dto.UpdateMountRequest) (*vo.MountResponse, error)

	// DeleteMount 删除卡口。
	// - 同一事务中清理品牌关联与镜头关联，并把引用它的相机置为无卡口。
	DeleteMount(ctx context.Context, id uint64) error
}

type mountService struct {
	db            *gorm.DB
	mountRepo     mysql.MountRepository
	brandRepo     mysql.BrandRepository
	brandLinkRepo mysql.BrandMountLinkRepository
	lensLinkRepo  mysql.LensMountLinkRepository
	cameraRepo    mysql.CameraRepository
	logger        *core.ZapLogger
}

// NewMountService 是 mountService 的构造函数。
func NewMountService(db *gorm.DB, mountRepo mysql.MountRepository, brandRepo mysql.BrandRepository, brandLinkRepo mysql.BrandMountLinkRepository, lensLinkRepo mysql.LensMountLinkRepository, cameraRepo mysql.CameraRepository, logger *core.ZapLogger) MountService {
	return &mountService{
		db:            db,
		mountRepo:     mountRepo,
		brandRepo:     brandRepo,
		brandLinkRepo: brandLinkRepo,
		lensLinkRepo:  lensLinkRepo,
		cameraRepo:    cameraRepo,
		logger:        logger,
	}
}

func (s *mountService) checkMountNameUnique(ctx context.Context, name string, excludeID uint64) error {
	existing, err := s.mountRepo.GetMountByName(ctx, name)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return myErrors.NewConflict(fmt.Sprintf("卡口名称已被占用: %s", name))
	}
	return nil
}

// resolveBrandIDs 统一校验品牌ID列表，返回按输入顺序去重后的ID。
func (s *mountService) resolveBrandIDs(ctx context.Context, ids []uint64) ([]uint64, error) {
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

	brands, err := s.brandRepo.GetBrandsByIDs(ctx, deduped)
	if err != nil {
		return nil, err
	}
	found := make(map[uint64]struct{}, len(brands))
	for _, b := range brands {
		found[b.ID] = struct{}{}
	}
	for _, id := range deduped {
		if _, ok := found[id]; !ok {
			return nil, myErrors.NewValidation(fmt.Sprintf("品牌不存在: %d", id))
		}
	}
	return deduped, nil
}

// buildMountBrandLinks 根据品牌ID列表构造关联行，首个ID（或显式指定者）为主关联。
func buildMountBrandLinks(mountID uint64, brandIDs []uint64, primaryBrandID *uint64) ([]*entities.BrandMountLink, error) {
	if len(brandIDs) == 0 {
		return nil, nil
	}

	primary := brandIDs[0]
	if primaryBrandID != nil {
		primary = *primaryBrandID
		found := false
		for _, id := range brandIDs {
			if id == primary {
				found = true
				break
			}
		}
		if !found {
			return nil, myErrors.NewValidation(fmt.Sprintf("主品牌不在关联列表中: %d", primary))
		}
	}

	links := make([]*entities.BrandMountLink, 0, len(brandIDs))
	for _, id := range brandIDs {
		links = append(links, &entities.BrandMountLink{
			BrandID:   id,
			MountID:   mountID,
			IsPrimary: id == primary,
		})
	}
	return links, nil
}

func (s *mountService) CreateMount(ctx context.Context, req *dto.CreateMountRequest, createdBy *uint64) (*vo.MountResponse, error) {
	if err := s.checkMountNameUnique(ctx, req.Name, 0); err != nil {
		return nil, err
	}
	brandIDs, err := s.resolveBrandIDs(ctx, req.BrandIDs)
	if err != nil {
		return nil, err
	}

	mount := &entities.Mount{
		Name:           req.Name,
		NameZh:         req.NameZh,
		ReleaseYear:    req.ReleaseYear,
		FlangeDistance: req.FlangeDistance,
		Diameter:       req.Diameter,
		Description:    req.Description,
		CreatedBy:      createdBy,
	}

	var links []*entities.BrandMountLink
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.mountRepo.CreateMount(ctx, tx, mount); err != nil {
			return err
		}
		links, err = buildMountBrandLinks(mount.ID, brandIDs, req.PrimaryBrandID)
		if err != nil {
			return err
		}
		if len(links) > 0 {
			return s.brandLinkRepo.ReplaceLinksForMount(ctx, tx, mount.ID, links)
		}
		return nil
	})
	if err != nil {
		var svcErr *myErrors.ServiceError
		if !errors.As(err, &svcErr) {
			s.logger.Error("创建卡口事务失败", zap.Error(err), zap.String("name", req.Name))
		}
		return nil, err
	}

	s.logger.Info("卡口创建成功", zap.Uint64("mountID", mount.ID), zap.String("name", mount.Name))
	return vo.MapMountToVO(mount, links), nil
}

func (s *mountService) GetMountByID(ctx context.Context, id uint64) (*vo.MountResponse, error) {
	mount, err := s.mountRepo.GetMountByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("卡口不存在: %d", id))
		}
		return nil, err
	}
	links, err := s.brandLinkRepo.GetLinksByMountID(ctx, id)
	if err != nil {
		return nil, err
	}
	return vo.MapMountToVO(mount, links), nil
}

func (s *mountService) ListMounts(ctx context.Context, query *dto.ListQuery) (*vo.ListMountsResponse, error) {
	mounts, total, err := s.mountRepo.ListMounts(ctx, query.Keyword, query.Skip, query.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*vo.MountResponse, 0, len(mounts))
	for _, mount := range mounts {
		links, err := s.brandLinkRepo.GetLinksByMountID(ctx, mount.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, vo.MapMountToVO(mount, links))
	}
	return &vo.ListMountsResponse{Mounts: responses, Total: total}, nil
}

func (s *mountService) UpdateMount(ctx context.Context, id uint64, req *dto.UpdateMountRequest) (*vo.MountResponse, error) {
	mount, err := s.mountRepo.GetMountByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("卡口不存在: %d", id))
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != mount.Name {
		if err := s.checkMountNameUnique(ctx, *req.Name, id); err != nil {
			return nil, err
		}
	}

	var brandIDs []uint64
	replaceLinks := req.BrandIDs != nil
	if replaceLinks {
		brandIDs, err = s.resolveBrandIDs(ctx, *req.BrandIDs)
		if err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.NameZh.Set {
		updates["name_zh"] = req.NameZh.Value
	}
	if req.ReleaseYear.Set {
		updates["release_year"] = req.ReleaseYear.Ptr()
	}
	if req.FlangeDistance.Set {
		updates["flange_distance"] = req.FlangeDistance.Ptr()
	}
	if req.Diameter.Set {
		updates["diameter"] = req.Diameter.Ptr()
	}
	if req.Description.Set {
		updates["description"] = req.Description.Value
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := s.mountRepo.UpdateMountFields(ctx, tx, id, updates); err != nil {
				return err
			}
		}
		if replaceLinks {
			links, err := buildMountBrandLinks(id, brandIDs, req.PrimaryBrandID)
			if err != nil {
				return err
			}
			return s.brandLinkRepo.ReplaceLinksForMount(ctx, tx, id, links)
		}
		return nil
	})
	if err != nil {
		var svcErr *myErrors.ServiceError
		if !errors.As(err, &svcErr) {
			s.logger.Error("更新卡口事务失败", zap.Error(err), zap.Uint64("mountID", id))
		}
		return nil, err
	}

	return s.GetMountByID(ctx, id)
}

func (s *mountService) DeleteMount(ctx context.Context, id uint64) error {
	if _, err := s.mountRepo.GetMountByID(ctx, id); err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewNotFound(fmt.Sprintf("卡口不存在: %d", id))
		}
		return err
	}

	// 手动级联：品牌关联、镜头关联一起删，引用该卡口的相机置空。
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.brandLinkRepo.DeleteLinksByMountID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.lensLinkRepo.DeleteLinksByMountID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.cameraRepo.DetachCamerasFromMount(ctx, tx, id); err != nil {
			return err
		}
		return s.mountRepo.DeleteMount(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("删除卡口事务失败", zap.Error(err), zap.Uint64("mountID", id))
		return err
	}

	s.logger.Info("卡口删除成功", zap.Uint64("mountID", id))
	return nil
}
