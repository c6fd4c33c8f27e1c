package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/myErrors"
)

func TestCreateBrand(t *testing.T) {
	db := newTestDB(t)
	fixture := newCatalogFixture(t, db)
	svc := newBrandServiceForTest(t, db)
	ctx := context.Background()

	t.Run("创建并关联卡口", func(t *testing.T) {
		year := 1937
		creator := uint64(9)
		resp, err := svc.CreateBrand(ctx, &dto.CreateBrandRequest{
			Name:        "Canon",
			NameZh:      "佳能",
			Country:     "Japan",
			FoundedYear: &year,
			MountIDs:    []uint64{fixture.mountIDs[0], fixture.mountIDs[1]},
		}, &creator)
		require.NoError(t, err)

		assert.NotZero(t, resp.ID)
		assert.Equal(t, "Canon", resp.Name)
		require.Len(t, resp.Mounts, 2)
		// 未显式指定主卡口时，列表第一个为主卡口
		assert.Equal(t, fixture.mountIDs[0], resp.Mounts[0].MountID)
		assert.True(t, resp.Mounts[0].IsPrimary)
		assert.False(t, resp.Mounts[1].IsPrimary)
	})

	t.Run("名称冲突", func(t *testing.T) {
		_, err := svc.CreateBrand(ctx, &dto.CreateBrandRequest{Name: "Canon"}, nil)
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("卡口不存在时整体失败", func(t *testing.T) {
		_, err := svc.CreateBrand(ctx, &dto.CreateBrandRequest{
			Name:     "Sony",
			MountIDs: []uint64{fixture.mountIDs[0], 99999},
		}, nil)
		requireKind(t, err, myErrors.KindValidation)

		// 品牌行不应残留
		var count int64
		require.NoError(t, db.Model(&entities.Brand{}).Where("name = ?", "Sony").Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("主卡口必须在关联列表中", func(t *testing.T) {
		outsider := fixture.mountIDs[2]
		_, err := svc.CreateBrand(ctx, &dto.CreateBrandRequest{
			Name:           "Sigma",
			MountIDs:       []uint64{fixture.mountIDs[0]},
			PrimaryMountID: &outsider,
		}, nil)
		requireKind(t, err, myErrors.KindValidation)
	})
}

func TestUpdateBrand(t *testing.T) {
	db := newTestDB(t)
	fixture := newCatalogFixture(t, db)
	svc := newBrandServiceForTest(t, db)
	ctx := context.Background()

	created, err := svc.CreateBrand(ctx, &dto.CreateBrandRequest{
		Name:     "Leica",
		Country:  "Germany",
		MountIDs: []uint64{fixture.mountIDs[0]},
	}, nil)
	require.NoError(t, err)

	t.Run("未出现的字段保持不变", func(t *testing.T) {
		newName := "Leica Camera"
		resp, err := svc.UpdateBrand(ctx, created.ID, &dto.UpdateBrandRequest{Name: &newName})
		require.NoError(t, err)

		assert.Equal(t, "Leica Camera", resp.Name)
		assert.Equal(t, "Germany", resp.Country)
		require.Len(t, resp.Mounts, 1)
	})

	t.Run("显式 null 清空可空字段", func(t *testing.T) {
		resp, err := svc.UpdateBrand(ctx, created.ID, &dto.UpdateBrandRequest{
			Country: dto.Optional[string]{Set: true, Valid: false},
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Country)
	})

	t.Run("非空列表整体替换关联", func(t *testing.T) {
		newMounts := []uint64{fixture.mountIDs[1], fixture.mountIDs[2]}
		resp, err := svc.UpdateBrand(ctx, created.ID, &dto.UpdateBrandRequest{MountIDs: &newMounts})
		require.NoError(t, err)

		require.Len(t, resp.Mounts, 2)
		assert.Equal(t, fixture.mountIDs[1], resp.Mounts[0].MountID)
		assert.True(t, resp.Mounts[0].IsPrimary)
	})

	t.Run("空列表清空关联", func(t *testing.T) {
		empty := []uint64{}
		resp, err := svc.UpdateBrand(ctx, created.ID, &dto.UpdateBrandRequest{MountIDs: &empty})
		require.NoError(t, err)
		assert.Empty(t, resp.Mounts)
	})

	t.Run("更新为已占用名称返回冲突", func(t *testing.T) {
		other, err := svc.CreateBrand(ctx, &dto.CreateBrandRequest{Name: "Pentax"}, nil)
		require.NoError(t, err)

		taken := "Leica Camera"
		_, err = svc.UpdateBrand(ctx, other.ID, &dto.UpdateBrandRequest{Name: &taken})
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("不存在的品牌", func(t *testing.T) {
		_, err := svc.UpdateBrand(ctx, 99999, &dto.UpdateBrandRequest{})
		requireKind(t, err, myErrors.KindNotFound)
	})
}

func TestDeleteBrand(t *testing.T) {
	db := newTestDB(t)
	fixture := newCatalogFixture(t, db)
	svc := newBrandServiceForTest(t, db)
	ctx := context.Background()

	created, err := svc.CreateBrand(ctx, &dto.CreateBrandRequest{
		Name:     "Olympus",
		MountIDs: []uint64{fixture.mountIDs[0], fixture.mountIDs[1]},
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBrand(ctx, created.ID))

	// 品牌行与关联行都被删除
	_, err = svc.GetBrandByID(ctx, created.ID)
	requireKind(t, err, myErrors.KindNotFound)

	var linkCount int64
	require.NoError(t, db.Model(&entities.BrandMountLink{}).Where("brand_id = ?", created.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)

	// 卡口本身保持不动
	var mountCount int64
	require.NoError(t, db.Model(&entities.Mount{}).Count(&mountCount).Error)
	assert.Equal(t, int64(3), mountCount)

	t.Run("删除不存在的品牌", func(t *testing.T) {
		requireKind(t, svc.DeleteBrand(ctx, 99999), myErrors.KindNotFound)
	})
}

func TestListBrands(t *testing.T) {
	db := newTestDB(t)
	svc := newBrandServiceForTest(t, db)
	ctx := context.Background()

	for _, name := range []string{"Canon", "Nikon Imaging", "Sony", "Fujifilm"} {
		_, err := svc.CreateBrand(ctx, &dto.CreateBrandRequest{Name: name}, nil)
		require.NoError(t, err)
	}

	t.Run("分页", func(t *testing.T) {
		resp, err := svc.ListBrands(ctx, &dto.ListQuery{Skip: 0, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, resp.Brands, 2)
		assert.Equal(t, int64(4), resp.Total)
	})

	t.Run("关键词过滤", func(t *testing.T) {
		resp, err := svc.ListBrands(ctx, &dto.ListQuery{Limit: 10, Keyword: "niko"})
		require.NoError(t, err)
		require.Len(t, resp.Brands, 1)
		assert.Equal(t, "Nikon Imaging", resp.Brands[0].Name)
	})
}
