package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/repo/mysql"
)

func newCameraServiceForTest(t *testing.T, db *gorm.DB, cosClient *fakeCOSClient) CameraService {
	t.Helper()
	logger := newTestLogger()
	return NewCameraService(db,
		mysql.NewCameraRepository(db, logger),
		mysql.NewBrandRepository(db, logger),
		mysql.NewMountRepository(db, logger),
		mysql.NewEquipmentImageRepository(db, logger),
		mysql.NewRatingRepository(db, logger),
		mysql.NewCommentRepository(db, logger),
		cosClient,
		logger,
	)
}

func TestCreateCamera(t *testing.T) {
	db := newTestDB(t)
	fixture := newCatalogFixture(t, db)
	svc := newCameraServiceForTest(t, db, &fakeCOSClient{})
	ctx := context.Background()

	t.Run("创建成功", func(t *testing.T) {
		resp, err := svc.CreateCamera(ctx, &dto.CreateCameraRequest{
			Model:   "Z6 III",
			BrandID: fixture.brandID,
			MountID: &fixture.mountIDs[1],
			Type:    enums.CameraMirrorless,
		}, nil)
		require.NoError(t, err)

		assert.NotZero(t, resp.ID)
		require.NotNil(t, resp.MountID)
		assert.Equal(t, fixture.mountIDs[1], *resp.MountID)
		assert.Zero(t, resp.Rating)
		assert.Zero(t, resp.RatingCount)
	})

	t.Run("品牌不存在", func(t *testing.T) {
		_, err := svc.CreateCamera(ctx, &dto.CreateCameraRequest{
			Model:   "D850",
			BrandID: 99999,
		}, nil)
		requireKind(t, err, myErrors.KindValidation)
	})

	t.Run("卡口不存在", func(t *testing.T) {
		bad := uint64(99999)
		_, err := svc.CreateCamera(ctx, &dto.CreateCameraRequest{
			Model:   "D850",
			BrandID: fixture.brandID,
			MountID: &bad,
		}, nil)
		requireKind(t, err, myErrors.KindValidation)
	})

	t.Run("型号冲突", func(t *testing.T) {
		_, err := svc.CreateCamera(ctx, &dto.CreateCameraRequest{
			Model:   "Z6 III",
			BrandID: fixture.brandID,
		}, nil)
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("相机类型非法", func(t *testing.T) {
		_, err := svc.CreateCamera(ctx, &dto.CreateCameraRequest{
			Model:   "Holga 120",
			BrandID: fixture.brandID,
			Type:    enums.CameraType("Pinhole"),
		}, nil)
		requireKind(t, err, myErrors.KindValidation)
	})
}

func TestUpdateCamera(t *testing.T) {
	db := newTestDB(t)
	fixture := newCatalogFixture(t, db)
	svc := newCameraServiceForTest(t, db, &fakeCOSClient{})
	ctx := context.Background()

	created, err := svc.CreateCamera(ctx, &dto.CreateCameraRequest{
		Model:      "Z8",
		BrandID:    fixture.brandID,
		MountID:    &fixture.mountIDs[1],
		SensorSize: "Full Frame",
	}, nil)
	require.NoError(t, err)

	t.Run("部分更新保持其余字段", func(t *testing.T) {
		newModel := "Z8 Mark II"
		resp, err := svc.UpdateCamera(ctx, created.ID, &dto.UpdateCameraRequest{Model: &newModel})
		require.NoError(t, err)

		assert.Equal(t, "Z8 Mark II", resp.Model)
		assert.Equal(t, "Full Frame", resp.SensorSize)
		require.NotNil(t, resp.MountID)
	})

	t.Run("MountID 传 null 解除卡口关联", func(t *testing.T) {
		resp, err := svc.UpdateCamera(ctx, created.ID, &dto.UpdateCameraRequest{
			MountID: dto.Optional[uint64]{Set: true, Valid: false},
		})
		require.NoError(t, err)
		assert.Nil(t, resp.MountID)
	})

	t.Run("更新为不存在的卡口", func(t *testing.T) {
		_, err := svc.UpdateCamera(ctx, created.ID, &dto.UpdateCameraRequest{
			MountID: dto.Optional[uint64]{Set: true, Valid: true, Value: 99999},
		})
		requireKind(t, err, myErrors.KindValidation)
	})

	t.Run("更新为不存在的品牌", func(t *testing.T) {
		bad := uint64(99999)
		_, err := svc.UpdateCamera(ctx, created.ID, &dto.UpdateCameraRequest{BrandID: &bad})
		requireKind(t, err, myErrors.KindValidation)
	})
}

func TestDeleteCameraCascades(t *testing.T) {
	db := newTestDB(t)
	fixture := newCatalogFixture(t, db)
	cosClient := &fakeCOSClient{}
	svc := newCameraServiceForTest(t, db, cosClient)
	ctx := context.Background()

	created, err := svc.CreateCamera(ctx, &dto.CreateCameraRequest{
		Model:   "X100VI",
		BrandID: fixture.brandID,
	}, nil)
	require.NoError(t, err)

	// 直接在库里挂上从属数据，模拟已有图片/评分/评论。
	user := &entities.User{Username: "reviewer", Email: "r@example.com", PasswordHash: "x", Role: enums.RoleUser, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&entities.EquipmentImage{
		TargetType: enums.TargetCamera, TargetID: created.ID,
		ImageURL: "https://cdn.example.com/a.jpg", ObjectKey: "equipment/images/20250101/a.jpg",
	}).Error)
	require.NoError(t, db.Create(&entities.Rating{
		UserID: user.ID, TargetType: enums.TargetCamera, TargetID: created.ID, Score: 4.5,
	}).Error)
	require.NoError(t, db.Create(&entities.Comment{
		Content: "great body", AuthorID: user.ID,
		TargetType: enums.TargetCamera, TargetID: created.ID, IsApproved: true,
	}).Error)

	require.NoError(t, svc.DeleteCamera(ctx, created.ID))

	for _, model := range []interface{}{&entities.EquipmentImage{}, &entities.Rating{}, &entities.Comment{}} {
		var count int64
		require.NoError(t, db.Model(model).
			Where("target_type = ? AND target_id = ?", enums.TargetCamera, created.ID).
			Count(&count).Error)
		assert.Zero(t, count)
	}

	// 事务提交后清理 COS 对象
	require.Len(t, cosClient.deleted, 1)
	assert.Equal(t, "equipment/images/20250101/a.jpg", cosClient.deleted[0])

	_, err = svc.GetCameraByID(ctx, created.ID)
	requireKind(t, err, myErrors.KindNotFound)
}
