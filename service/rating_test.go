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

func newRatingServiceForTest(t *testing.T, db *gorm.DB) RatingService {
	t.Helper()
	logger := newTestLogger()
	return NewRatingService(db,
		mysql.NewRatingRepository(db, logger),
		mysql.NewCameraRepository(db, logger),
		mysql.NewLensRepository(db, logger),
		logger,
	)
}

// ratingFixture 准备一台相机和两位用户作为评分场景的基础数据。
type ratingFixture struct {
	cameraID uint64
	userID   uint64
	otherID  uint64
}

func newRatingFixture(t *testing.T, db *gorm.DB) *ratingFixture {
	t.Helper()

	catalog := newCatalogFixture(t, db)
	camera := &entities.Camera{Model: "Z8", BrandID: catalog.brandID, Type: enums.CameraMirrorless}
	require.NoError(t, db.Create(camera).Error)

	user := &entities.User{Username: "rater-one", Email: "rater-one@example.com", PasswordHash: "x", Role: enums.RoleUser, IsActive: true}
	other := &entities.User{Username: "rater-two", Email: "rater-two@example.com", PasswordHash: "x", Role: enums.RoleUser, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(other).Error)

	return &ratingFixture{cameraID: camera.ID, userID: user.ID, otherID: other.ID}
}

func cameraAggregate(t *testing.T, db *gorm.DB, cameraID uint64) (float64, int64) {
	t.Helper()
	var camera entities.Camera
	require.NoError(t, db.First(&camera, cameraID).Error)
	return camera.Rating, camera.RatingCount
}

func TestCreateRatingAggregate(t *testing.T) {
	db := newTestDB(t)
	fixture := newRatingFixture(t, db)
	svc := newRatingServiceForTest(t, db)
	ctx := context.Background()

	t.Run("首次评分写入聚合", func(t *testing.T) {
		resp, err := svc.CreateRating(ctx, &dto.CreateRatingRequest{
			TargetType: enums.TargetCamera, TargetID: fixture.cameraID, Score: 4.0,
		}, fixture.userID)
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)

		avg, count := cameraAggregate(t, db, fixture.cameraID)
		assert.InDelta(t, 4.0, avg, 0.001)
		assert.EqualValues(t, 1, count)
	})

	t.Run("第二人评分后聚合为平均值", func(t *testing.T) {
		_, err := svc.CreateRating(ctx, &dto.CreateRatingRequest{
			TargetType: enums.TargetCamera, TargetID: fixture.cameraID, Score: 5.0,
		}, fixture.otherID)
		require.NoError(t, err)

		avg, count := cameraAggregate(t, db, fixture.cameraID)
		assert.InDelta(t, 4.5, avg, 0.001)
		assert.EqualValues(t, 2, count)
	})

	t.Run("同一用户重复评分被拒绝", func(t *testing.T) {
		_, err := svc.CreateRating(ctx, &dto.CreateRatingRequest{
			TargetType: enums.TargetCamera, TargetID: fixture.cameraID, Score: 3.0,
		}, fixture.userID)
		requireKind(t, err, myErrors.KindConflict)

		_, count := cameraAggregate(t, db, fixture.cameraID)
		assert.EqualValues(t, 2, count, "冲突不应改变聚合")
	})

	t.Run("目标不存在", func(t *testing.T) {
		_, err := svc.CreateRating(ctx, &dto.CreateRatingRequest{
			TargetType: enums.TargetLens, TargetID: 99999, Score: 4.0,
		}, fixture.userID)
		requireKind(t, err, myErrors.KindValidation)
	})

	t.Run("文章不可评分", func(t *testing.T) {
		_, err := svc.CreateRating(ctx, &dto.CreateRatingRequest{
			TargetType: enums.TargetArticle, TargetID: 1, Score: 4.0,
		}, fixture.userID)
		requireKind(t, err, myErrors.KindValidation)
	})
}

func TestUpdateRatingAggregate(t *testing.T) {
	db := newTestDB(t)
	fixture := newRatingFixture(t, db)
	svc := newRatingServiceForTest(t, db)
	ctx := context.Background()

	created, err := svc.CreateRating(ctx, &dto.CreateRatingRequest{
		TargetType: enums.TargetCamera, TargetID: fixture.cameraID, Score: 3.0, Comment: "中规中矩",
	}, fixture.userID)
	require.NoError(t, err)

	t.Run("非本人修改被拒绝", func(t *testing.T) {
		score := 1.0
		_, err := svc.UpdateRating(ctx, created.ID, &dto.UpdateRatingRequest{Score: &score}, fixture.otherID, enums.RoleUser)
		requireKind(t, err, myErrors.KindForbidden)
	})

	t.Run("改分后聚合重算", func(t *testing.T) {
		score := 5.0
		resp, err := svc.UpdateRating(ctx, created.ID, &dto.UpdateRatingRequest{Score: &score}, fixture.userID, enums.RoleUser)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, resp.Score, 0.001)

		avg, count := cameraAggregate(t, db, fixture.cameraID)
		assert.InDelta(t, 5.0, avg, 0.001)
		assert.EqualValues(t, 1, count)
	})

	t.Run("仅改附言不触发聚合重算", func(t *testing.T) {
		resp, err := svc.UpdateRating(ctx, created.ID, &dto.UpdateRatingRequest{
			Comment: dto.Optional[string]{Set: true, Valid: true, Value: "真香"},
		}, fixture.userID, enums.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, "真香", resp.Comment)
		assert.InDelta(t, 5.0, resp.Score, 0.001)
	})

	t.Run("管理员可修改他人评分", func(t *testing.T) {
		score := 2.0
		_, err := svc.UpdateRating(ctx, created.ID, &dto.UpdateRatingRequest{Score: &score}, fixture.otherID, enums.RoleAdmin)
		require.NoError(t, err)

		avg, _ := cameraAggregate(t, db, fixture.cameraID)
		assert.InDelta(t, 2.0, avg, 0.001)
	})
}

func TestDeleteRatingAggregate(t *testing.T) {
	db := newTestDB(t)
	fixture := newRatingFixture(t, db)
	svc := newRatingServiceForTest(t, db)
	ctx := context.Background()

	first, err := svc.CreateRating(ctx, &dto.CreateRatingRequest{
		TargetType: enums.TargetCamera, TargetID: fixture.cameraID, Score: 2.0,
	}, fixture.userID)
	require.NoError(t, err)
	_, err = svc.CreateRating(ctx, &dto.CreateRatingRequest{
		TargetType: enums.TargetCamera, TargetID: fixture.cameraID, Score: 4.0,
	}, fixture.otherID)
	require.NoError(t, err)

	t.Run("非本人删除被拒绝", func(t *testing.T) {
		requireKind(t, svc.DeleteRating(ctx, first.ID, fixture.otherID, enums.RoleUser), myErrors.KindForbidden)
	})

	t.Run("删除后聚合回落", func(t *testing.T) {
		require.NoError(t, svc.DeleteRating(ctx, first.ID, fixture.userID, enums.RoleUser))

		avg, count := cameraAggregate(t, db, fixture.cameraID)
		assert.InDelta(t, 4.0, avg, 0.001)
		assert.EqualValues(t, 1, count)

		_, err := svc.GetRatingByID(ctx, first.ID)
		requireKind(t, err, myErrors.KindNotFound)
	})

	t.Run("删除后可重新评分", func(t *testing.T) {
		_, err := svc.CreateRating(ctx, &dto.CreateRatingRequest{
			TargetType: enums.TargetCamera, TargetID: fixture.cameraID, Score: 3.0,
		}, fixture.userID)
		require.NoError(t, err)

		avg, count := cameraAggregate(t, db, fixture.cameraID)
		assert.InDelta(t, 3.5, avg, 0.001)
		assert.EqualValues(t, 2, count)
	})

	t.Run("删除不存在的评分", func(t *testing.T) {
		requireKind(t, svc.DeleteRating(ctx, 99999, fixture.userID, enums.RoleAdmin), myErrors.KindNotFound)
	})
}

func TestRetargetRating(t *testing.T) {
	db := newTestDB(t)
	fixture := newRatingFixture(t, db)
	svc := newRatingServiceForTest(t, db)
	ctx := context.Background()

	var brand entities.Brand
	require.NoError(t, db.First(&brand).Error)
	lens := &entities.Lens{Model: "Z 50mm f/1.8 S", BrandID: brand.ID}
	require.NoError(t, db.Create(lens).Error)

	lensAggregate := func(t *testing.T) (float64, int64) {
		t.Helper()
		var reloaded entities.Lens
		require.NoError(t, db.First(&reloaded, lens.ID).Error)
		return reloaded.Rating, reloaded.RatingCount
	}

	created, err := svc.CreateRating(ctx, &dto.CreateRatingRequest{
		TargetType: enums.TargetCamera, TargetID: fixture.cameraID, Score: 4.0,
	}, fixture.userID)
	require.NoError(t, err)

	t.Run("挪到新目标后两边聚合都重算", func(t *testing.T) {
		lensType := enums.TargetLens
		resp, err := svc.UpdateRating(ctx, created.ID, &dto.UpdateRatingRequest{
			TargetType: &lensType, TargetID: &lens.ID,
		}, fixture.userID, enums.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, enums.TargetLens, resp.TargetType)
		assert.Equal(t, lens.ID, resp.TargetID)

		avg, count := cameraAggregate(t, db, fixture.cameraID)
		assert.InDelta(t, 0.0, avg, 0.001)
		assert.EqualValues(t, 0, count)

		avg, count = lensAggregate(t)
		assert.InDelta(t, 4.0, avg, 0.001)
		assert.EqualValues(t, 1, count)
	})

	t.Run("新目标上已有本人评分则冲突", func(t *testing.T) {
		second, err := svc.CreateRating(ctx, &dto.CreateRatingRequest{
			TargetType: enums.TargetCamera, TargetID: fixture.cameraID, Score: 2.0,
		}, fixture.userID)
		require.NoError(t, err)

		lensType := enums.TargetLens
		_, err = svc.UpdateRating(ctx, second.ID, &dto.UpdateRatingRequest{
			TargetType: &lensType, TargetID: &lens.ID,
		}, fixture.userID, enums.RoleUser)
		requireKind(t, err, myErrors.KindConflict)

		avg, count := lensAggregate(t)
		assert.InDelta(t, 4.0, avg, 0.001)
		assert.EqualValues(t, 1, count, "冲突不应改变聚合")
	})

	t.Run("挪动目标时仍校验存在性", func(t *testing.T) {
		missing := uint64(99999)
		_, err := svc.UpdateRating(ctx, created.ID, &dto.UpdateRatingRequest{
			TargetID: &missing,
		}, fixture.userID, enums.RoleUser)
		requireKind(t, err, myErrors.KindValidation)
	})

	t.Run("不挪动目标时目标字段可省略", func(t *testing.T) {
		score := 3.0
		resp, err := svc.UpdateRating(ctx, created.ID, &dto.UpdateRatingRequest{Score: &score}, fixture.userID, enums.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, enums.TargetLens, resp.TargetType)

		avg, count := lensAggregate(t)
		assert.InDelta(t, 3.0, avg, 0.001)
		assert.EqualValues(t, 1, count)
	})
}
