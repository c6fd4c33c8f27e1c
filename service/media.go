package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/constant"
	"github.com/Xushengqwer/camera_service/dependencies"
	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/models/vo"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/repo/mysql"
)

// MediaService 定义了器材样张图片的业务逻辑接口。
// 图片文件存放在腾讯云 COS，数据库只记录 URL 与对象键。
type MediaService interface {
	// UploadEquipmentImage 上传一张器材样张并登记记录。
	// - 目标必须是相机或镜头且真实存在；上传到 COS 成功后才写数据库。
	UploadEquipmentImage(ctx context.Context, req *dto.UploadEquipmentImageRequest, fileHeader *multipart.FileHeader) (*vo.EquipmentImageVO, error)

	// ListEquipmentImages 查询某器材的全部图片，按展示顺序排列。
	ListEquipmentImages(ctx context.Context, req *dto.ListEquipmentImagesRequest) ([]*vo.EquipmentImageVO, error)

	// DeleteEquipmentImage 删除图片记录，并尽力删除 COS 上的对象。
	DeleteEquipmentImage(ctx context.Context, id uint64) error
}

type mediaService struct {
	db         *gorm.DB
	imageRepo  mysql.EquipmentImageRepository
	cameraRepo mysql.CameraRepository
	lensRepo   mysql.LensRepository
	cosClient  dependencies.COSClientInterface
	logger     *core.ZapLogger
}

// NewMediaService 是 mediaService 的构造函数。
func NewMediaService(db *gorm.DB, imageRepo mysql.EquipmentImageRepository, cameraRepo mysql.CameraRepository, lensRepo mysql.LensRepository, cosClient dependencies.COSClientInterface, logger *core.ZapLogger) MediaService {
	return &mediaService{
		db:         db,
		imageRepo:  imageRepo,
		cameraRepo: cameraRepo,
		lensRepo:   lensRepo,
		cosClient:  cosClient,
		logger:     logger,
	}
}

// resolveImageTarget 校验图片目标是相机或镜头且存在。
func (s *mediaService) resolveImageTarget(ctx context.Context, targetType enums.TargetType, targetID uint64) error {
	var err error
	switch targetType {
	case enums.TargetCamera:
		_, err = s.cameraRepo.GetCameraByID(ctx, targetID)
	case enums.TargetLens:
		_, err = s.lensRepo.GetLensByID(ctx, targetID)
	default:
		return myErrors.NewValidation(fmt.Sprintf("目标类型不支持图片: %s", targetType))
	}
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewValidation(fmt.Sprintf("图片目标不存在: %s/%d", targetType, targetID))
		}
		return err
	}
	return nil
}

// generateImageObjectKey 生成唯一的 COS 对象键。
// 规则: equipment/images/YYYYMMDD/type_id_uuid.ext
func generateImageObjectKey(originalFilename string, targetType enums.TargetType, targetID uint64) string {
	datePrefix := time.Now().Format("20060102")
	extension := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s%s/%s_%d_%s%s",
		constant.COSObjectKeyPrefixEquipmentImages,
		datePrefix,
		targetType,
		targetID,
		uuid.NewString(),
		extension,
	)
}

func (s *mediaService) UploadEquipmentImage(ctx context.Context, req *dto.UploadEquipmentImageRequest, fileHeader *multipart.FileHeader) (*vo.EquipmentImageVO, error) {
	if err := s.resolveImageTarget(ctx, req.TargetType, req.TargetID); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("打开图片文件以上传失败", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return nil, fmt.Errorf("打开图片文件 %s 失败: %w", fileHeader.Filename, err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
		s.logger.Warn("未提供图片的内容类型，使用默认值",
			zap.String("filename", fileHeader.Filename), zap.String("defaultContentType", contentType))
	}

	objectKey := generateImageObjectKey(fileHeader.Filename, req.TargetType, req.TargetID)
	imageURL, err := s.cosClient.UploadFile(ctx, objectKey, file, fileHeader.Size, contentType)
	if err != nil {
		s.logger.Error("上传图片到 COS 失败",
			zap.String("filename", fileHeader.Filename), zap.String("objectKey", objectKey), zap.Error(err))
		return nil, fmt.Errorf("上传图片 %s 到 COS 失败: %w", fileHeader.Filename, err)
	}

	image := &entities.EquipmentImage{
		TargetType:   req.TargetType,
		TargetID:     req.TargetID,
		ImageURL:     imageURL,
		ObjectKey:    objectKey,
		DisplayOrder: req.DisplayOrder,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.imageRepo.CreateImage(ctx, tx, image)
	})
	if err != nil {
		s.logger.Error("登记图片记录失败", zap.Error(err), zap.String("objectKey", objectKey))
		// 数据库写入失败时回收已上传的对象，避免孤儿文件。
		if delErr := s.cosClient.DeleteObject(ctx, objectKey); delErr != nil {
			s.logger.Warn("回收 COS 对象失败", zap.Error(delErr), zap.String("objectKey", objectKey))
		}
		return nil, err
	}

	s.logger.Info("器材图片上传成功",
		zap.Uint64("imageID", image.ID), zap.String("targetType", string(req.TargetType)), zap.Uint64("targetID", req.TargetID))
	return vo.MapEquipmentImageToVO(image), nil
}

func (s *mediaService) ListEquipmentImages(ctx context.Context, req *dto.ListEquipmentImagesRequest) ([]*vo.EquipmentImageVO, error) {
	if req.TargetType != enums.TargetCamera && req.TargetType != enums.TargetLens {
		return nil, myErrors.NewValidation(fmt.Sprintf("目标类型不支持图片: %s", req.TargetType))
	}
	images, err := s.imageRepo.ListImagesByTarget(ctx, req.TargetType, req.TargetID)
	if err != nil {
		return nil, err
	}
	return vo.MapEquipmentImagesToVOs(images), nil
}

func (s *mediaService) DeleteEquipmentImage(ctx context.Context, id uint64) error {
	image, err := s.imageRepo.GetImageByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewNotFound(fmt.Sprintf("图片不存在: %d", id))
		}
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.imageRepo.DeleteImage(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("删除图片记录失败", zap.Error(err), zap.Uint64("imageID", id))
		return err
	}

	if image.ObjectKey != "" {
		if err := s.cosClient.DeleteObject(ctx, image.ObjectKey); err != nil {
			s.logger.Warn("删除 COS 对象失败", zap.Error(err), zap.String("objectKey", image.ObjectKey))
		}
	}

	s.logger.Info("器材图片删除成功", zap.Uint64("imageID", id))
	return nil
}
