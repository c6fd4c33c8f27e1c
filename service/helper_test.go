package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/tencentyun/cos-go-sdk-v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Xushengqwer/camera_service/config"
	"github.com/Xushengqwer/camera_service/dependencies"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/repo/mysql"
	redisRepo "github.com/Xushengqwer/camera_service/repo/redis"
)

// newTestDB 打开一个独立的内存 sqlite 库并执行与生产相同的迁移。
// 每个测试用例用 t.Name() 区分库名，互不串表。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dependencies.AutoMigrateAll(db))
	return db
}

func newTestJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:        "unit-test-secret",
		Issuer:        "camera_service_test",
		ExpireMinutes: 60,
	}
}

func newTestLogger() *core.ZapLogger {
	return core.NewZapLoggerWith(zap.NewNop())
}

// fakeCOSClient 记录上传与删除调用，替代真实的对象存储。
type fakeCOSClient struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	// uploadErr / deleteErr 非 nil 时对应操作返回该错误
	uploadErr error
	deleteErr error
}

func (f *fakeCOSClient) GetClient() *cos.Client { return nil }

func (f *fakeCOSClient) UploadFile(_ context.Context, objectKey string, reader io.Reader, _ int64, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if reader != nil {
		_, _ = io.Copy(io.Discard, reader)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, objectKey)
	return "https://cdn.example.com/" + objectKey, nil
}

func (f *fakeCOSClient) DeleteObject(_ context.Context, objectKey string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectKey)
	return nil
}

var _ dependencies.COSClientInterface = (*fakeCOSClient)(nil)

// fakeViewRepo 内存版浏览计数，记录每次增加调用。
type fakeViewRepo struct {
	mu     sync.Mutex
	counts map[uint64]int64
	// viewers 记录 (articleID, viewerID) 是否已计过数，模拟 Bloom Filter 去重
	viewers map[string]struct{}
}

func newFakeViewRepo() *fakeViewRepo {
	return &fakeViewRepo{
		counts:  make(map[uint64]int64),
		viewers: make(map[string]struct{}),
	}
}

func (f *fakeViewRepo) IncrementViewCount(_ context.Context, articleID uint64, viewerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%d:%s", articleID, viewerID)
	if _, seen := f.viewers[key]; seen {
		return nil
	}
	f.viewers[key] = struct{}{}
	f.counts[articleID]++
	return nil
}

func (f *fakeViewRepo) GetAllViewCounts(_ context.Context) (map[uint64]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uint64]int64, len(f.counts))
	for k, v := range f.counts {
		out[k] = v
	}
	return out, nil
}

func (f *fakeViewRepo) DeductSyncedViewCounts(_ context.Context, synced map[uint64]int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, n := range synced {
		f.counts[id] -= n
		if f.counts[id] <= 0 {
			delete(f.counts, id)
		}
	}
	return nil
}

var _ redisRepo.ArticleViewRepository = (*fakeViewRepo)(nil)

// requireKind 断言错误是指定分类的 ServiceError。
func requireKind(t *testing.T, err error, kind myErrors.Kind) {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := myErrors.AsServiceError(err)
	require.True(t, ok, "期望 ServiceError，实际: %v", err)
	require.Equal(t, kind, svcErr.Kind, "错误分类不符: %s", svcErr.Message)
}

// catalogFixture 预置一套品牌/卡口基础数据，大多数器材测试都从这里开始。
type catalogFixture struct {
	db       *gorm.DB
	brandID  uint64
	mountIDs []uint64
}

func newCatalogFixture(t *testing.T, db *gorm.DB) *catalogFixture {
	t.Helper()
	brand := &entities.Brand{Name: "Nikon"}
	require.NoError(t, db.Create(brand).Error)

	mountIDs := make([]uint64, 0, 3)
	for _, name := range []string{"F Mount", "Z Mount", "S Mount"} {
		mount := &entities.Mount{Name: name}
		require.NoError(t, db.Create(mount).Error)
		mountIDs = append(mountIDs, mount.ID)
	}
	return &catalogFixture{db: db, brandID: brand.ID, mountIDs: mountIDs}
}

// newBrandServiceForTest 组装测试用的品牌服务及其依赖。
func newBrandServiceForTest(t *testing.T, db *gorm.DB) BrandService {
	t.Helper()
	logger := newTestLogger()
	return NewBrandService(db,
		mysql.NewBrandRepository(db, logger),
		mysql.NewMountRepository(db, logger),
		mysql.NewBrandMountLinkRepository(db, logger),
		logger,
	)
}
