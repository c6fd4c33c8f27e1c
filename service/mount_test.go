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

func newMountServiceForTest(t *testing.T, db *gorm.DB) MountService {
	t.Helper()
	logger := newTestLogger()
	return NewMountService(db,
		mysql.NewMountRepository(db, logger),
		mysql.NewBrandRepository(db, logger),
		mysql.NewBrandMountLinkRepository(db, logger),
		mysql.NewLensMountLinkRepository(db, logger),
		mysql.NewCameraRepository(db, logger),
		logger,
	)
}

func TestCreateMount(t *testing.T) {
	db := newTestDB(t)
	svc := newMountServiceForTest(t, db)
	ctx := context.Background()

	brandA := &entities.Brand{Name: "Canon"}
	brandB := &entities.Brand{Name: "Sigma"}
	require.NoError(t, db.Create(brandA).Error)
	require.NoError(t, db.Create(brandB).Error)

	t.Run("创建并关联品牌", func(t *testing.T) {
		resp, err := svc.CreateMount(ctx, &dto.CreateMountRequest{
			Name:     "RF Mount",
			BrandIDs: []uint64{brandA.ID, brandB.ID},
		}, nil)
		require.NoError(t, err)

		require.Len(t, resp.Brands, 2)
		for _, link := range resp.Brands {
			assert.Equal(t, link.BrandID == brandA.ID, link.IsPrimary, "列表首个品牌为主关联")
		}
	})

	t.Run("名称冲突", func(t *testing.T) {
		_, err := svc.CreateMount(ctx, &dto.CreateMountRequest{Name: "RF Mount"}, nil)
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("品牌不存在时整体失败", func(t *testing.T) {
		_, err := svc.CreateMount(ctx, &dto.CreateMountRequest{
			Name:     "EF Mount",
			BrandIDs: []uint64{brandA.ID, 99999},
		}, nil)
		requireKind(t, err, myErrors.KindValidation)

		var count int64
		require.NoError(t, db.Model(&entities.Mount{}).Where("name = ?", "EF Mount").Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("主品牌必须在关联列表中", func(t *testing.T) {
		outside := brandB.ID
		_, err := svc.CreateMount(ctx, &dto.CreateMountRequest{
			Name:           "EF-M Mount",
			BrandIDs:       []uint64{brandA.ID},
			PrimaryBrandID: &outside,
		}, nil)
		requireKind(t, err, myErrors.KindValidation)
	})
}

func TestUpdateMount(t *testing.T) {
	db := newTestDB(t)
	svc := newMountServiceForTest(t, db)
	ctx := context.Background()

	brand := &entities.Brand{Name: "Sony"}
	require.NoError(t, db.Create(brand).Error)

	year := 2013
	created, err := svc.CreateMount(ctx, &dto.CreateMountRequest{
		Name: "E Mount", ReleaseYear: &year, BrandIDs: []uint64{brand.ID},
	}, nil)
	require.NoError(t, err)

	t.Run("部分更新不影响其他字段", func(t *testing.T) {
		flange := 18.0
		resp, err := svc.UpdateMount(ctx, created.ID, &dto.UpdateMountRequest{
			FlangeDistance: dto.Optional[float64]{Set: true, Valid: true, Value: flange},
		})
		require.NoError(t, err)
		require.NotNil(t, resp.FlangeDistance)
		assert.InDelta(t, flange, *resp.FlangeDistance, 0.001)
		require.NotNil(t, resp.ReleaseYear)
		assert.Equal(t, year, *resp.ReleaseYear)
		require.Len(t, resp.Brands, 1)
	})

	t.Run("传null清空发布年份", func(t *testing.T) {
		resp, err := svc.UpdateMount(ctx, created.ID, &dto.UpdateMountRequest{
			ReleaseYear: dto.Optional[int]{Set: true, Valid: false},
		})
		require.NoError(t, err)
		assert.Nil(t, resp.ReleaseYear)
	})

	t.Run("空列表清空品牌关联", func(t *testing.T) {
		empty := []uint64{}
		resp, err := svc.UpdateMount(ctx, created.ID, &dto.UpdateMountRequest{BrandIDs: &empty})
		require.NoError(t, err)
		assert.Empty(t, resp.Brands)
	})

	t.Run("卡口不存在", func(t *testing.T) {
		_, err := svc.UpdateMount(ctx, 99999, &dto.UpdateMountRequest{})
		requireKind(t, err, myErrors.KindNotFound)
	})
}

func TestDeleteMountDetaches(t *testing.T) {
	db := newTestDB(t)
	svc := newMountServiceForTest(t, db)
	ctx := context.Background()

	brand := &entities.Brand{Name: "Nikon"}
	require.NoError(t, db.Create(brand).Error)

	mount, err := svc.CreateMount(ctx, &dto.CreateMountRequest{
		Name: "Z Mount", BrandIDs: []uint64{brand.ID},
	}, nil)
	require.NoError(t, err)

	camera := &entities.Camera{Model: "Zf", BrandID: brand.ID, MountID: &mount.ID, Type: enums.CameraMirrorless}
	require.NoError(t, db.Create(camera).Error)
	lens := &entities.Lens{Model: "NIKKOR Z 40mm f/2", BrandID: brand.ID, FocalLength: "40mm", Aperture: "f/2"}
	require.NoError(t, db.Create(lens).Error)
	require.NoError(t, db.Create(&entities.LensMountLink{LensID: lens.ID, MountID: mount.ID, IsPrimary: true}).Error)

	require.NoError(t, svc.DeleteMount(ctx, mount.ID))

	t.Run("相机置为无卡口但仍存在", func(t *testing.T) {
		var reloaded entities.Camera
		require.NoError(t, db.First(&reloaded, camera.ID).Error)
		assert.Nil(t, reloaded.MountID)
	})

	t.Run("镜头关联行清除但镜头仍存在", func(t *testing.T) {
		var linkCount int64
		require.NoError(t, db.Model(&entities.LensMountLink{}).Where("mount_id = ?", mount.ID).Count(&linkCount).Error)
		assert.Zero(t, linkCount)

		var reloaded entities.Lens
		require.NoError(t, db.First(&reloaded, lens.ID).Error)
	})

	t.Run("品牌关联行清除", func(t *testing.T) {
		var linkCount int64
		require.NoError(t, db.Model(&entities.BrandMountLink{}).Where("mount_id = ?", mount.ID).Count(&linkCount).Error)
		assert.Zero(t, linkCount)
	})

	t.Run("卡口本身已删除", func(t *testing.T) {
		_, err := svc.GetMountByID(ctx, mount.ID)
		requireKind(t, err, myErrors.KindNotFound)
	})

	t.Run("删除不存在的卡口", func(t *testing.T) {
		requireKind(t, svc.DeleteMount(ctx, 99999), myErrors.KindNotFound)
	})
}
