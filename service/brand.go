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

// BrandService 定义了品牌相关的业务逻辑接口。
type BrandService interface {
	// CreateBrand 创建品牌并建立卡口关联。
	// - 名称全局唯一；关联卡口ID先统一校验，任一无效则整体失败。
	// - createdBy 记录操作者，来源于认证上下文。
	CreateBrand(ctx context.Context, req *dto.CreateBrandRequest, createdBy *uint64) (*vo.BrandResponse, error)

	// GetBrandByID 查询单个品牌，包含卡口关联。
	GetBrandByID(ctx context.Context, id uint64) (*vo.BrandResponse, error)

	// ListBrands 分页查询品牌列表。
	ListBrands(ctx context.Context, query *dto.ListQuery) (*vo.ListBrandsResponse, error)

	// UpdateBrand 部分更新品牌。
	// - MountIDs 为 nil 表示关联不变，空列表清空，非空整体替换。
	UpdateBrand(ctx context.Context, id uint64, req *dto.UpdateBrandRequest) (*vo.BrandResponse, error)

	// DeleteBrand 删除品牌并在同一事务中清理其卡口关联行。
	DeleteBrand(ctx context.Context, id uint64) error
}

type brandService struct {
	db        *gorm.DB
	brandRepo mysql.BrandRepository
	mountRepo mysql.MountRepository
	linkRepo  mysql.BrandMountLinkRepository
	logger    *core.ZapLogger
}

// NewBrandService 是 brandService 的构造函数，通过依赖注入初始化服务实例。
func NewBrandService(db *gorm.DB, brandRepo mysql.BrandRepository, mountRepo mysql.MountRepository, linkRepo mysql.BrandMountLinkRepository, logger *core.ZapLogger) BrandService {
	return &brandService{
		db:        db,
		brandRepo: brandRepo,
		mountRepo: mountRepo,
		linkRepo:  linkRepo,
		logger:    logger,
	}
}

// checkBrandNameUnique 校验品牌名称唯一性，excludeID 用于更新时排除自身。
func (s *brandService) checkBrandNameUnique(ctx context.Context, name string, excludeID uint64) error {
	existing, err := s.brandRepo.GetBrandByName(ctx, name)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return myErrors.NewConflict(fmt.Sprintf("品牌名称已被占用: %s", name))
	}
	return nil
}

// resolveMountIDs 统一校验卡口ID列表，返回按输入顺序去重后的ID。
// 任何一个ID无法解析都返回 Validation 错误并指明缺失的ID。
func (s *brandService) resolveMountIDs(ctx context.Context, ids []uint64) ([]uint64, error) {
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

// buildBrandMountLinks 根据卡口ID列表构造关联行。
// primaryMountID 为 nil 时，列表中的第一个ID作为主卡口。
func buildBrandMountLinks(brandID uint64, mountIDs []uint64, primaryMountID *uint64) ([]*entities.BrandMountLink, error) {
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

	links := make([]*entities.BrandMountLink, 0, len(mountIDs))
	for _, id := range mountIDs {
		links = append(links, &entities.BrandMountLink{
			BrandID:   brandID,
			MountID:   id,
			IsPrimary: id == primary,
		})
	}
	return links, nil
}

func (s *brandService) CreateBrand(ctx context.Context, req *dto.CreateBrandRequest, createdBy *uint64) (*vo.BrandResponse, error) {
	// 唯一性与关联ID都在写入前校验，首个失败即中止，不留下半成品数据。
	if err := s.checkBrandNameUnique(ctx, req.Name, 0); err != nil {
		return nil, err
	}
	mountIDs, err := s.resolveMountIDs(ctx, req.MountIDs)
	if err != nil {
		return nil, err
	}

	brand := &entities.Brand{
		Name:        req.Name,
		NameZh:      req.NameZh,
		Country:     req.Country,
		FoundedYear: req.FoundedYear,
		Website:     req.Website,
		Description: req.Description,
		CreatedBy:   createdBy,
	}

	var links []*entities.BrandMountLink
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.brandRepo.CreateBrand(ctx, tx, brand); err != nil {
			return err
		}
		links, err = buildBrandMountLinks(brand.ID, mountIDs, req.PrimaryMountID)
		if err != nil {
			return err
		}
		if len(links) > 0 {
			return s.linkRepo.ReplaceLinksForBrand(ctx, tx, brand.ID, links)
		}
		return nil
	})
	if err != nil {
		var svcErr *myErrors.ServiceError
		if !errors.As(err, &svcErr) {
			s.logger.Error("创建品牌事务失败", zap.Error(err), zap.String("name", req.Name))
		}
		return nil, err
	}

	s.logger.Info("品牌创建成功", zap.Uint64("brandID", brand.ID), zap.String("name", brand.Name))
	return vo.MapBrandToVO(brand, links), nil
}

func (s *brandService) GetBrandByID(ctx context.Context, id uint64) (*vo.BrandResponse, error) {
	brand, err := s.brandRepo.GetBrandByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("品牌不存在: %d", id))
		}
		return nil, err
	}
	links, err := s.linkRepo.GetLinksByBrandID(ctx, id)
	if err != nil {
		return nil, err
	}
	return vo.MapBrandToVO(brand, links), nil
}

func (s *brandService) ListBrands(ctx context.Context, query *dto.ListQuery) (*vo.ListBrandsResponse, error) {
	brands, total, err := s.brandRepo.ListBrands(ctx, query.Keyword, query.Skip, query.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*vo.BrandResponse, 0, len(brands))
	for _, brand := range brands {
		links, err := s.linkRepo.GetLinksByBrandID(ctx, brand.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, vo.MapBrandToVO(brand, links))
	}
	return &vo.ListBrandsResponse{Brands: responses, Total: total}, nil
}

func (s *brandService) UpdateBrand(ctx context.Context, id uint64, req *dto.UpdateBrandRequest) (*vo.BrandResponse, error) {
	brand, err := s.brandRepo.GetBrandByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("品牌不存在: %d", id))
		}
		return nil, err
	}

	// 唯一性校验针对合并后的目标状态，排除自身。
	if req.Name != nil && *req.Name != brand.Name {
		if err := s.checkBrandNameUnique(ctx, *req.Name, id); err != nil {
			return nil, err
		}
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
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.NameZh.Set {
		updates["name_zh"] = req.NameZh.Value
	}
	if req.Country.Set {
		updates["country"] = req.Country.Value
	}
	if req.FoundedYear.Set {
		updates["founded_year"] = req.FoundedYear.Ptr()
	}
	if req.Website.Set {
		updates["website"] = req.Website.Value
	}
	if req.Description.Set {
		updates["description"] = req.Description.Value
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := s.brandRepo.UpdateBrandFields(ctx, tx, id, updates); err != nil {
				return err
			}
		}
		if replaceLinks {
			links, err := buildBrandMountLinks(id, mountIDs, req.PrimaryMountID)
			if err != nil {
				return err
			}
			return s.linkRepo.ReplaceLinksForBrand(ctx, tx, id, links)
		}
		return nil
	})
	if err != nil {
		var svcErr *myErrors.ServiceError
		if !errors.As(err, &svcErr) {
			s.logger.Error("更新品牌事务失败", zap.Error(err), zap.Uint64("brandID", id))
		}
		return nil, err
	}

	return s.GetBrandByID(ctx, id)
}

func (s *brandService) DeleteBrand(ctx context.Context, id uint64) error {
	if _, err := s.brandRepo.GetBrandByID(ctx, id); err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewNotFound(fmt.Sprintf("品牌不存在: %d", id))
		}
		return err
	}

	// 手动级联：关联行与品牌行在同一事务中删除，删除后不残留任何关联。
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.linkRepo.DeleteLinksByBrandID(ctx, tx, id); err != nil {
			return err
		}
		return s.brandRepo.DeleteBrand(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("删除品牌事务失败", zap.Error(err), zap.Uint64("brandID", id))
		return err
	}

	s.logger.Info("品牌删除成功", zap.Uint64("brandID", id))
	return nil
}
