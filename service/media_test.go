package service

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/constant"
	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/repo/mysql"
)

func newMediaServiceForTest(t *testing.T, db *gorm.DB, cosClient *fakeCOSClient) MediaService {
	t.Helper()
	logger := newTestLogger()
	return NewMediaService(db,
		mysql.NewEquipmentImageRepository(db, logger),
		mysql.NewCameraRepository(db, logger),
		mysql.NewLensRepository(db, logger),
		cosClient,
		logger,
	)
}

// newMultipartFileHeader 构造一个与 HTTP 上传等价的文件头，供绕过控制器直接测 service。
func newMultipartFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestUploadEquipmentImage(t *testing.T) {
	db := newTestDB(t)
	fixture := newCatalogFixture(t, db)
	cosClient := &fakeCOSClient{}
	svc := newMediaServiceForTest(t, db, cosClient)
	ctx := context.Background()

	camera := &entities.Camera{Model: "Z fc", BrandID: fixture.brandID, Type: enums.CameraMirrorless}
	require.NoError(t, db.Create(camera).Error)

	t.Run("上传成功并登记记录", func(t *testing.T) {
		fileHeader := newMultipartFileHeader(t, "sample.JPG", "image/jpeg", []byte("fake-jpeg-bytes"))
		resp, err := svc.UploadEquipmentImage(ctx, &dto.UploadEquipmentImageRequest{
			TargetType: enums.TargetCamera, TargetID: camera.ID, DisplayOrder: 1,
		}, fileHeader)
		require.NoError(t, err)

		assert.NotZero(t, resp.ID)
		assert.True(t, strings.HasPrefix(resp.ObjectKey, constant.COSObjectKeyPrefixEquipmentImages))
		assert.True(t, strings.HasSuffix(resp.ObjectKey, ".jpg"), "扩展名应统一为小写")
		assert.Contains(t, resp.ObjectKey, fmt.Sprintf("camera_%d_", camera.ID))
		assert.Equal(t, "https://cdn.example.com/"+resp.ObjectKey, resp.ImageURL)
		assert.Equal(t, 1, resp.DisplayOrder)

		require.Len(t, cosClient.uploaded, 1)
		assert.Equal(t, resp.ObjectKey, cosClient.uploaded[0])
	})

	t.Run("目标类型不支持图片", func(t *testing.T) {
		fileHeader := newMultipartFileHeader(t, "a.png", "image/png", []byte("x"))
		_, err := svc.UploadEquipmentImage(ctx, &dto.UploadEquipmentImageRequest{
			TargetType: enums.TargetArticle, TargetID: 1,
		}, fileHeader)
		requireKind(t, err, myErrors.KindValidation)
		assert.Len(t, cosClient.uploaded, 1, "校验失败不应触发上传")
	})

	t.Run("目标不存在", func(t *testing.T) {
		fileHeader := newMultipartFileHeader(t, "a.png", "image/png", []byte("x"))
		_, err := svc.UploadEquipmentImage(ctx, &dto.UploadEquipmentImageRequest{
			TargetType: enums.TargetLens, TargetID: 99999,
		}, fileHeader)
		requireKind(t, err, myErrors.KindValidation)
	})

	t.Run("数据库写入失败时回收已上传对象", func(t *testing.T) {
		require.NoError(t, db.Migrator().DropTable(&entities.EquipmentImage{}))
		t.Cleanup(func() {
			require.NoError(t, db.AutoMigrate(&entities.EquipmentImage{}))
		})

		fileHeader := newMultipartFileHeader(t, "orphan.png", "image/png", []byte("x"))
		_, err := svc.UploadEquipmentImage(ctx, &dto.UploadEquipmentImageRequest{
			TargetType: enums.TargetCamera, TargetID: camera.ID,
		}, fileHeader)
		require.Error(t, err)

		require.NotEmpty(t, cosClient.deleted)
		assert.Equal(t, cosClient.uploaded[len(cosClient.uploaded)-1], cosClient.deleted[len(cosClient.deleted)-1])
	})
}

func TestListAndDeleteEquipmentImages(t *testing.T) {
	db := newTestDB(t)
	fixture := newCatalogFixture(t, db)
	cosClient := &fakeCOSClient{}
	svc := newMediaServiceForTest(t, db, cosClient)
	ctx := context.Background()

	camera := &entities.Camera{Model: "F3", BrandID: fixture.brandID, Type: enums.CameraFilm}
	require.NoError(t, db.Create(camera).Error)

	second := &entities.EquipmentImage{
		TargetType: enums.TargetCamera, TargetID: camera.ID,
		ImageURL: "https://cdn.example.com/b.jpg", ObjectKey: "equipment/images/20250102/b.jpg", DisplayOrder: 2,
	}
	first := &entities.EquipmentImage{
		TargetType: enums.TargetCamera, TargetID: camera.ID,
		ImageURL: "https://cdn.example.com/a.jpg", ObjectKey: "equipment/images/20250102/a.jpg", DisplayOrder: 1,
	}
	require.NoError(t, db.Create(second).Error)
	require.NoError(t, db.Create(first).Error)

	t.Run("按展示顺序排列", func(t *testing.T) {
		images, err := svc.ListEquipmentImages(ctx, &dto.ListEquipmentImagesRequest{
			TargetType: enums.TargetCamera, TargetID: camera.ID,
		})
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.Equal(t, first.ID, images[0].ID)
		assert.Equal(t, second.ID, images[1].ID)
	})

	t.Run("列表目标类型限制", func(t *testing.T) {
		_, err := svc.ListEquipmentImages(ctx, &dto.ListEquipmentImagesRequest{
			TargetType: enums.TargetArticle, TargetID: 1,
		})
		requireKind(t, err, myErrors.KindValidation)
	})

	t.Run("删除记录并清理对象", func(t *testing.T) {
		require.NoError(t, svc.DeleteEquipmentImage(ctx, first.ID))
		assert.Contains(t, cosClient.deleted, first.ObjectKey)

		images, err := svc.ListEquipmentImages(ctx, &dto.ListEquipmentImagesRequest{
			TargetType: enums.TargetCamera, TargetID: camera.ID,
		})
		require.NoError(t, err)
		assert.Len(t, images, 1)
	})

	t.Run("COS删除失败不阻塞记录删除", func(t *testing.T) {
		cosClient.deleteErr = fmt.Errorf("cos unavailable")
		require.NoError(t, svc.DeleteEquipmentImage(ctx, second.ID))
		cosClient.deleteErr = nil

		images, err := svc.ListEquipmentImages(ctx, &dto.ListEquipmentImagesRequest{
			TargetType: enums.TargetCamera, TargetID: camera.ID,
		})
		require.NoError(t, err)
		assert.Empty(t, images)
	})

	t.Run("删除不存在的图片", func(t *testing.T) {
		requireKind(t, svc.DeleteEquipmentImage(ctx, 99999), myErrors.KindNotFound)
	})
}
