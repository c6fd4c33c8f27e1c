package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/repo/mysql"
	"github.com/Xushengqwer/camera_service/repo/redis"
)

// stubViewRepo 内存版浏览计数仓库，记录扣减调用。
type stubViewRepo struct {
	counts    map[uint64]int64
	getErr    error
	deductErr error
	deducted  []map[uint64]int64
}

func (s *stubViewRepo) IncrementViewCount(context.Context, uint64, string) error { return nil }

func (s *stubViewRepo) GetAllViewCounts(context.Context) (map[uint64]int64, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	copied := make(map[uint64]int64, len(s.counts))
	for id, n := range s.counts {
		copied[id] = n
	}
	return copied, nil
}

func (s *stubViewRepo) DeductSyncedViewCounts(_ context.Context, synced map[uint64]int64) error {
	if s.deductErr != nil {
		return s.deductErr
	}
	s.deducted = append(s.deducted, synced)
	for id, n := range synced {
		s.counts[id] -= n
		if s.counts[id] <= 0 {
			delete(s.counts, id)
		}
	}
	return nil
}

var _ redis.ArticleViewRepository = (*stubViewRepo)(nil)

// stubBatchRepo 记录批量回写调用。
type stubBatchRepo struct {
	updateErr error
	applied   []map[uint64]int64
}

func (s *stubBatchRepo) BatchUpdateArticleViewCounts(_ context.Context, viewCounts map[uint64]int64) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.applied = append(s.applied, viewCounts)
	return nil
}

var _ mysql.ArticleViewBatchRepository = (*stubBatchRepo)(nil)

func newSyncTaskForTest(viewRepo *stubViewRepo, batchRepo *stubBatchRepo) *ViewCountSyncTask {
	// 直接构造，不经过 NewViewCountSyncTask，避免在单测里启动 cron 调度器。
	return &ViewCountSyncTask{
		viewRepo:  viewRepo,
		batchRepo: batchRepo,
		logger:    core.NewZapLoggerWith(zap.NewNop()),
	}
}

func TestSyncViewCountsToDB(t *testing.T) {
	t.Run("回写成功后扣减增量", func(t *testing.T) {
		viewRepo := &stubViewRepo{counts: map[uint64]int64{1: 10, 2: 3}}
		batchRepo := &stubBatchRepo{}
		task := newSyncTaskForTest(viewRepo, batchRepo)

		task.syncViewCountsToDB(context.Background())

		require.Len(t, batchRepo.applied, 1)
		assert.EqualValues(t, 10, batchRepo.applied[0][1])
		require.Len(t, viewRepo.deducted, 1)
		assert.Empty(t, viewRepo.counts, "已同步的增量应被扣减")
	})

	t.Run("无增量时不触发回写", func(t *testing.T) {
		viewRepo := &stubViewRepo{counts: map[uint64]int64{}}
		batchRepo := &stubBatchRepo{}
		task := newSyncTaskForTest(viewRepo, batchRepo)

		task.syncViewCountsToDB(context.Background())

		assert.Empty(t, batchRepo.applied)
		assert.Empty(t, viewRepo.deducted)
	})

	t.Run("回写失败时保留Redis增量", func(t *testing.T) {
		viewRepo := &stubViewRepo{counts: map[uint64]int64{7: 5}}
		batchRepo := &stubBatchRepo{updateErr: errors.New("mysql down")}
		task := newSyncTaskForTest(viewRepo, batchRepo)

		task.syncViewCountsToDB(context.Background())

		assert.Empty(t, viewRepo.deducted, "回写失败不应扣减")
		assert.EqualValues(t, 5, viewRepo.counts[7], "增量保留待下个周期重试")
	})

	t.Run("读取失败时中止本次同步", func(t *testing.T) {
		viewRepo := &stubViewRepo{getErr: errors.New("redis down")}
		batchRepo := &stubBatchRepo{}
		task := newSyncTaskForTest(viewRepo, batchRepo)

		task.syncViewCountsToDB(context.Background())

		assert.Empty(t, batchRepo.applied)
	})

	t.Run("扣减失败只告警不回滚", func(t *testing.T) {
		viewRepo := &stubViewRepo{counts: map[uint64]int64{3: 2}, deductErr: errors.New("redis down")}
		batchRepo := &stubBatchRepo{}
		task := newSyncTaskForTest(viewRepo, batchRepo)

		task.syncViewCountsToDB(context.Background())

		require.Len(t, batchRepo.applied, 1, "MySQL 侧已完成累加")
		assert.EqualValues(t, 2, viewRepo.counts[3])
	})
}
