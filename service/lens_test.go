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

func newLensServiceForTest(t *testing.T, db *gorm.DB, cosClient *fakeCOSClient) LensService {
	t.Helper()
	logger := newTestLogger()
	return NewLensService(db,
		mysql.NewLensRepository(db, logger),
		mysql.NewBrandRepository(db, logger),
		mysql.NewMountRepository(db, logger),
		mysql.NewLensMountLinkRepository(db, logger),
		mysql.NewEquipmentImageRepository(db, logger),
		mysql.NewRatingRepository(db, logger),
		mysql.NewCommentRepository(db, logger),
		cosClient,
		logger,
	)
}

func TestCreateLens(t *testing.T) {
	db := newTestDB(t)
	fixture := newCatalogFixture(t, db)
	svc := newLensServiceForTest(t, db, &fakeCOSClient{})
	ctx := context.Background()

	t.Run("创建并关联多个卡口", func(t *testing.T) {
		resp, err := svc.CreateLens(ctx, &dto.CreateLensRequest{
			Model:       "NIKKOR Z 50mm f/1.8 S",
			BrandID:     fixture.brandID,
			FocalLength: "50mm",
			Aperture:    "f/1.8",
			LensType:    enums.LensPrime,
			MountIDs:    []uint64{fixture.mountIDs[1], fixture.mountIDs[0]},
		}, nil)
		require.NoError(t, err)

		assert.NotZero(t, resp.ID)
		assert.ElementsMatch(t, []uint64{fixture.mountIDs[0], fixture.mountIDs[1]}, resp.MountIDs)

		// 未显式指定时列表首个卡口为主卡口
		var link entities.LensMountLink
		require.NoError(t, db.Where("lens_id = ? AND is_primary = ?", resp.ID, true).First(&link).Error)
		assert.Equal(t, fixture.mountIDs[1], link.MountID)
	})

	t.Run("型号冲突", func(t *testing.T) {
		_, err := svc.CreateLens(ctx, &dto.CreateLensRequest{
			Model:       "NIKKOR Z 50mm f/1.8 S",
			BrandID:     fixture.brandID,
			FocalLength: "50mm",
			Aperture:    "f/1.8",
		}, nil)
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("卡口不存在时整体失败", func(t *testing.T) {
		_, err := svc.CreateLens(ctx, &dto.CreateLensRequest{
			Model:       "NIKKOR Z 85mm f/1.2 S",
			BrandID:     fixture.brandID,
			FocalLength: "85mm",
			Aperture:    "f/1.2",
			MountIDs:    []uint64{fixture.mountIDs[0], 99999},
		}, nil)
		requireKind(t, err, myErrors.KindValidation)

		var count int64
		require.NoError(t, db.Model(&entities.Lens{}).Where("model = ?", "NIKKOR Z 85mm f/1.2 S").Count(&count).Error)
		assert.Zero(t, count, "校验失败不应留下镜头残留行")
	})

	t.Run("显式主卡口必须在关联列表中", func(t *testing.T) {
		outside := fixture.mountIDs[2]
		_, err := svc.CreateLens(ctx, &dto.CreateLensRequest{
			Model:          "NIKKOR Z 35mm f/1.8 S",
			BrandID:        fixture.brandID,
			FocalLength:    "35mm",
			Aperture:       "f/1.8",
			MountIDs:       []uint64{fixture.mountIDs[0]},
			PrimaryMountID: &outside,
		}, nil)
		requireKind(t, err, myErrors.KindValidation)
	})

	t.Run("镜头类型非法", func(t *testing.T) {
		_, err := svc.CreateLens(ctx, &dto.CreateLensRequest{
			Model:       "Mystery 40mm",
			BrandID:     fixture.brandID,
			FocalLength: "40mm",
			Aperture:    "f/2",
			LensType:    enums.LensType("Anamorphic"),
		}, nil)
		requireKind(t, err, myErrors.KindValidation)
	})
}

func TestUpdateLens(t *testing.T) {
	db := newTestDB(t)
	fixture := newCatalogFixture(t, db)
	svc := newLensServiceForTest(t, db, &fakeCOSClient{})
	ctx := context.Background()

	created, err := svc.CreateLens(ctx, &dto.CreateLensRequest{
		Model:       "NIKKOR Z 24-70mm f/2.8 S",
		BrandID:     fixture.brandID,
		FocalLength: "24-70mm",
		Aperture:    "f/2.8",
		LensType:    enums.LensZoom,
		Dimensions:  "89x126mm",
		MountIDs:    []uint64{fixture.mountIDs[0]},
	}, nil)
	require.NoError(t, err)

	t.Run("部分更新不影响其他字段", func(t *testing.T) {
		aperture := "f/2.8 恒定"
		resp, err := svc.UpdateLens(ctx, created.ID, &dto.UpdateLensRequest{
			Aperture: &aperture,
		})
		require.NoError(t, err)
		assert.Equal(t, aperture, resp.Aperture)
		assert.Equal(t, "24-70mm", resp.FocalLength)
		assert.Equal(t, "89x126mm", resp.Dimensions)
		assert.Equal(t, []uint64{fixture.mountIDs[0]}, resp.MountIDs)
	})

	t.Run("传null清空可选字段", func(t *testing.T) {
		resp, err := svc.UpdateLens(ctx, created.ID, &dto.UpdateLensRequest{
			Dimensions: dto.Optional[string]{Set: true, Valid: false},
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Dimensions)
	})

	t.Run("非空列表整体替换卡口并更新主卡口", func(t *testing.T) {
		newMounts := []uint64{fixture.mountIDs[1], fixture.mountIDs[2]}
		primary := fixture.mountIDs[2]
		resp, err := svc.UpdateLens(ctx, created.ID, &dto.UpdateLensRequest{
			MountIDs:       &newMounts,
			PrimaryMountID: &primary,
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, newMounts, resp.MountIDs)

		var link entities.LensMountLink
		require.NoError(t, db.Where("lens_id = ? AND is_primary = ?", created.ID, true).First(&link).Error)
		assert.Equal(t, primary, link.MountID)
	})

	t.Run("空列表清空卡口关联", func(t *testing.T) {
		empty := []uint64{}
		resp, err := svc.UpdateLens(ctx, created.ID, &dto.UpdateLensRequest{
			MountIDs: &empty,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.MountIDs)

		var count int64
		require.NoError(t, db.Model(&entities.LensMountLink{}).Where("lens_id = ?", created.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("替换时卡口不存在则原关联保持不变", func(t *testing.T) {
		restore := []uint64{fixture.mountIDs[0]}
		_, err := svc.UpdateLens(ctx, created.ID, &dto.UpdateLensRequest{MountIDs: &restore})
		require.NoError(t, err)

		bad := []uint64{99999}
		_, err = svc.UpdateLens(ctx, created.ID, &dto.UpdateLensRequest{MountIDs: &bad})
		requireKind(t, err, myErrors.KindValidation)

		resp, err := svc.GetLensByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint64{fixture.mountIDs[0]}, resp.MountIDs)
	})

	t.Run("镜头不存在", func(t *testing.T) {
		_, err := svc.UpdateLens(ctx, 99999, &dto.UpdateLensRequest{})
		requireKind(t, err, myErrors.KindNotFound)
	})
}

func TestDeleteLensCascades(t *testing.T) {
	db := newTestDB(t)
	fixture := newCatalogFixture(t, db)
	cosClient := &fakeCOSClient{}
	svc := newLensServiceForTest(t, db, cosClient)
	ctx := context.Background()

	created, err := svc.CreateLens(ctx, &dto.CreateLensRequest{
		Model:       "NIKKOR Z 14-24mm f/2.8 S",
		BrandID:     fixture.brandID,
		FocalLength: "14-24mm",
		Aperture:    "f/2.8",
		MountIDs:    []uint64{fixture.mountIDs[0], fixture.mountIDs[1]},
	}, nil)
	require.NoError(t, err)

	user := &entities.User{Username: "rater", Email: "rater@example.com", PasswordHash: "x", Role: enums.RoleUser, IsActive: true}
	require.NoError(t, db.Create(user).Error)

	objectKey := "equipment/images/20250301/lens.jpg"
	require.NoError(t, db.Create(&entities.EquipmentImage{
		TargetType: enums.TargetLens, TargetID: created.ID,
		ObjectKey: objectKey, ImageURL: "https://cdn.example.com/" + objectKey,
	}).Error)
	require.NoError(t, db.Create(&entities.Rating{
		UserID: user.ID, TargetType: enums.TargetLens, TargetID: created.ID, Score: 4.5,
	}).Error)
	require.NoError(t, db.Create(&entities.Comment{
		AuthorID: user.ID, TargetType: enums.TargetLens, TargetID: created.ID,
		Content: "对焦安静", IsApproved: true,
	}).Error)

	require.NoError(t, svc.DeleteLens(ctx, created.ID))

	for _, model := range []interface{}{
		&entities.LensMountLink{}, &entities.EquipmentImage{}, &entities.Rating{}, &entities.Comment{},
	} {
		var count int64
		query := db.Model(model)
		if _, ok := model.(*entities.LensMountLink); ok {
			query = query.Where("lens_id = ?", created.ID)
		} else {
			query = query.Where("target_type = ? AND target_id = ?", enums.TargetLens, created.ID)
		}
		require.NoError(t, query.Count(&count).Error)
		assert.Zero(t, count)
	}

	assert.Contains(t, cosClient.deleted, objectKey, "删除后应清理 COS 图片对象")

	_, err = svc.GetLensByID(ctx, created.ID)
	requireKind(t, err, myErrors.KindNotFound)

	t.Run("删除不存在的镜头", func(t *testing.T) {
		requireKind(t, svc.DeleteLens(ctx, 99999), myErrors.KindNotFound)
	})
}
