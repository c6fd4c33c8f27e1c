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

// CameraService 定义了相机相关的业务逻辑接口。
type CameraService interface {
	// CreateCamera 创建相机。
	// - 型号是应用层唯一约束；brand_id 必填且必须可解析，mount_id 可选。
	CreateCamera(ctx context.Context, req *dto.CreateCameraRequest, createdBy *uint64) (*vo.CameraResponse, error)

	// GetCameraByID 查询单个相机。
	GetCameraByID(ctx context.Context, id uint64) (*vo.CameraResponse, error)

	// ListCameras 分页查询相机列表，支持品牌与卡口筛选。
	ListCameras(ctx context.Context, req *dto.ListCamerasRequest) (*vo.ListCamerasResponse, error)

	// UpdateCamera 部分更新相机，MountID 传 null 表示解除卡口。
	UpdateCamera(ctx context.Context, id uint64, req *dto.UpdateCameraRequest) (*vo.CameraResponse, error)

	// DeleteCamera 删除相机。
	// - 同一事务中删除其图片行、评分与评论；COS 对象在事务提交后尽力清理。
	DeleteCamera(ctx context.Context, id uint64) error
}

type cameraService struct {
	db          *gorm.DB
	cameraRepo  mysql.CameraRepository
	brandRepo   mysql.BrandRepository
	mountRepo   mysql.MountRepository
	imageRepo   mysql.EquipmentImageRepository
	ratingRepo  mysql.RatingRepository
	commentRepo mysql.CommentRepository
	cosClient   dependencies.COSClientInterface
	logger      *core.ZapLogger
}

// NewCameraService 是 cameraService 的构造函数。
func NewCameraService(db *gorm.DB, cameraRepo mysql.CameraRepository, brandRepo mysql.BrandRepository, mountRepo mysql.MountRepository, imageRepo mysql.EquipmentImageRepository, ratingRepo mysql.RatingRepository, commentRepo mysql.CommentRepository, cosClient dependencies.COSClientInterface, logger *core.ZapLogger) CameraService {
	return &cameraService{
		db:          db,
		cameraRepo:  cameraRepo,
		brandRepo:   brandRepo,
		mountRepo:   mountRepo,
		imageRepo:   imageRepo,
		ratingRepo:  ratingRepo,
		commentRepo: commentRepo,
		cosClient:   cosClient,
		logger:      logger,
	}
}

func (s *cameraService) checkCameraModelUnique(ctx context.Context, model string, excludeID uint64) error {
	existing, err := s.cameraRepo.GetCameraByModel(ctx, model)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return myErrors.NewConflict(fmt.Sprintf("相机型号已被占用: %s", model))
	}
	return nil
}

// resolveReferences 校验 brand_id 与 mount_id 外键引用。
func (s *cameraService) resolveReferences(ctx context.Context, brandID *uint64, mountID *uint64) error {
	if brandID != nil {
		if _, err := s.brandRepo.GetBrandByID(ctx, *brandID); err != nil {
			if errors.Is(err, myErrors.ErrRecordNotFound) {
				return myErrors.NewValidation(fmt.Sprintf("品牌不存在: %d", *brandID))
			}
			return err
		}
	}
	if mountID != nil {
		if _, err := s.mountRepo.GetMountByID(ctx, *mountID); err != nil {
			if errors.Is(err, myErrors.ErrRecordNotFound) {
				return myErrors.NewValidation(fmt.Sprintf("卡口不存在: %d", *mountID))
			}
			return err
		}
	}
	return nil
}

func (s *cameraService) CreateCamera(ctx context.Context, req *dto.CreateCameraRequest, createdBy *uint64) (*vo.CameraResponse, error) {
	if req.Type != "" && !req.Type.IsValid() {
		return nil, myErrors.NewValidation(fmt.Sprintf("相机类型非法: %s", req.Type))
	}
	if err := s.checkCameraModelUnique(ctx, req.Model, 0); err != nil {
		return nil, err
	}
	if err := s.resolveReferences(ctx, &req.BrandID, req.MountID); err != nil {
		return nil, err
	}

	camera := &entities.Camera{
		Model:        req.Model,
		ModelZh:      req.ModelZh,
		BrandID:      req.BrandID,
		MountID:      req.MountID,
		ReleaseYear:  req.ReleaseYear,
		Type:         req.Type,
		SensorSize:   req.SensorSize,
		Megapixels:   req.Megapixels,
		ISORange:     req.ISORange,
		ShutterSpeed: req.ShutterSpeed,
		WeightGrams:  req.WeightGrams,
		Dimensions:   req.Dimensions,
		Description:  req.Description,
		CreatedBy:    createdBy,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.cameraRepo.CreateCamera(ctx, tx, camera)
	})
	if err != nil {
		s.logger.Error("创建相机事务失败", zap.Error(err), zap.String("model", req.Model))
		return nil, err
	}

	s.logger.Info("相机创建成功", zap.Uint64("cameraID", camera.ID), zap.String("model", camera.Model))
	return vo.MapCameraToVO(camera), nil
}

func (s *cameraService) GetCameraByID(ctx context.Context, id uint64) (*vo.CameraResponse, error) {
	camera, err := s.cameraRepo.GetCameraByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("相机不存在: %d", id))
		}
		return nil, err
	}
	return vo.MapCameraToVO(camera), nil
}

func (s *cameraService) ListCameras(ctx context.Context, req *dto.ListCamerasRequest) (*vo.ListCamerasResponse, error) {
	cameras, total, err := s.cameraRepo.ListCameras(ctx, req.Keyword, req.BrandID, req.MountID, req.Skip, req.Limit)
	if err != nil {
		return nil, err
	}
	return &vo.ListCamerasResponse{Cameras: vo.MapCamerasToVOs(cameras), Total: total}, nil
}

func (s *cameraService) UpdateCamera(ctx context.Context, id uint64, req *dto.UpdateCameraRequest) (*vo.CameraResponse, error) {
	camera, err := s.cameraRepo.GetCameraByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("相机不存在: %d", id))
		}
		return nil, err
	}

	if req.Model != nil && *req.Model != camera.Model {
		if err := s.checkCameraModelUnique(ctx, *req.Model, id); err != nil {
			return nil, err
		}
	}
	if req.Type.Set && req.Type.Valid && !req.Type.Value.IsValid() {
		return nil, myErrors.NewValidation(fmt.Sprintf("相机类型非法: %s", req.Type.Value))
	}

	// 外键引用针对合并后的目标状态校验。
	var newMountID *uint64
	if req.MountID.Set {
		newMountID = req.MountID.Ptr()
	}
	if err := s.resolveReferences(ctx, req.BrandID, newMountID); err != nil {
		return nil, err
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
	if req.MountID.Set {
		updates["mount_id"] = req.MountID.Ptr()
	}
	if req.ReleaseYear.Set {
		updates["release_year"] = req.ReleaseYear.Ptr()
	}
	if req.Type.Set {
		updates["type"] = req.Type.Value
	}
	if req.SensorSize.Set {
		updates["sensor_size"] = req.SensorSize.Value
	}
	if req.Megapixels.Set {
		updates["megapixels"] = req.Megapixels.Ptr()
	}
	if req.ISORange.Set {
		updates["iso_range"] = req.ISORange.Value
	}
	if req.ShutterSpeed.Set {
		updates["shutter_speed"] = req.ShutterSpeed.Value
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
		return s.cameraRepo.UpdateCameraFields(ctx, tx, id, updates)
	})
	if err != nil {
		s.logger.Error("更新相机事务失败", zap.Error(err), zap.Uint64("cameraID", id))
		return nil, err
	}

	return s.GetCameraByID(ctx, id)
}

func (s *cameraService) DeleteCamera(ctx context.Context, id uint64) error {
	if _, err := s.cameraRepo.GetCameraByID(ctx, id); err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewNotFound(fmt.Sprintf("相机不存在: %d", id))
		}
		return err
	}

	var removedImages []*entities.EquipmentImage
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		removedImages, err = s.imageRepo.DeleteImagesByTarget(ctx, tx, enums.TargetCamera, id)
		if err != nil {
			return err
		}
		if err := s.ratingRepo.DeleteRatingsByTarget(ctx, tx, enums.TargetCamera, id); err != nil {
			return err
		}
		if _, err := s.commentRepo.DeleteCommentsByTarget(ctx, tx, enums.TargetCamera, id); err != nil {
			return err
		}
		return s.cameraRepo.DeleteCamera(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("删除相机事务失败", zap.Error(err), zap.Uint64("cameraID", id))
		return err
	}

	// COS 对象清理放在事务之外，失败只记日志，行数据已经一致。
	for _, img := range removedImages {
		if img.ObjectKey == "" {
			continue
		}
		if err := s.cosClient.DeleteObject(ctx, img.ObjectKey); err != nil {
			s.logger.Warn("清理相机图片 COS 对象失败",
				zap.Error(err), zap.Uint64("cameraID", id), zap.String("objectKey", img.ObjectKey))
		}
	}

	s.logger.Info("相机删除成功", zap.Uint64("cameraID", id))
	return nil
}
