package tasks

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/camera_service/constant"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/repo/mysql"
	"github.com/Xushengqwer/camera_service/repo/redis"
)

// ViewCountSyncTask 负责定时将 Redis 中的文章浏览量刷回 MySQL。
// 刷回使用增量语义：MySQL 侧累加增量后，从 Redis 扣减已同步的部分，
// 因此 Redis 淘汰不会把 MySQL 中的历史计数清零，刷写期间新产生的浏览也不会丢。
type ViewCountSyncTask struct {
	viewRepo  redis.ArticleViewRepository    // Redis 仓库，读取与扣减浏览量增量
	batchRepo mysql.ArticleViewBatchRepository // MySQL 批量操作仓库，累加浏览量
	cron      *cron.Cron
	logger    *core.ZapLogger
}

// NewViewCountSyncTask 初始化并启动浏览量同步的定时任务。
func NewViewCountSyncTask(
	viewRepo redis.ArticleViewRepository,
	batchRepo mysql.ArticleViewBatchRepository,
	logger *core.ZapLogger,
) *ViewCountSyncTask {
	cronV3 := cron.New() // 默认分钟级精度
	task := &ViewCountSyncTask{
		viewRepo:  viewRepo,
		batchRepo: batchRepo,
		cron:      cronV3,
		logger:    logger,
	}
	task.startCronJob()
	return task
}

// startCronJob 配置并启动 cron 作业。
func (t *ViewCountSyncTask) startCronJob() {
	schedule := constant.SyncViewCountInterval
	t.logger.Info("准备启动文章浏览量同步MySQL定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("文章浏览量同步MySQL任务开始执行...")
		startTime := time.Now()
		// 单次执行的超时需要覆盖 Redis 扫描加 MySQL 批量更新。
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		t.syncViewCountsToDB(ctx)

		duration := time.Since(startTime)
		t.logger.Info("文章浏览量同步MySQL任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		t.logger.Fatal("添加文章浏览量同步 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start()
	t.logger.Info("文章浏览量同步MySQL定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// syncViewCountsToDB 是定时任务执行的实际同步逻辑。
// 1. 从 Redis 扫描全部文章的浏览量增量。
// 2. 按增量批量累加到 MySQL。
// 3. 从 Redis 扣减已同步的数值（不直接删除键，保住并发产生的新增量）。
func (t *ViewCountSyncTask) syncViewCountsToDB(ctx context.Context) {
	viewCounts, err := t.viewRepo.GetAllViewCounts(ctx)
	if err != nil {
		t.logger.Error("从 Redis 获取全量浏览量失败，本次同步中止。", zap.Error(err))
		return
	}

	if len(viewCounts) == 0 {
		t.logger.Info("从 Redis 获取到的浏览量数据为空，无需同步到 MySQL。")
		return
	}
	t.logger.Info("成功从 Redis 获取到浏览量增量。", zap.Int("articleCount", len(viewCounts)))

	if err := t.batchRepo.BatchUpdateArticleViewCounts(ctx, viewCounts); err != nil {
		// 批量更新失败时不扣减 Redis，下个周期整体重试。
		t.logger.Error("MySQL 批量累加浏览量失败，保留 Redis 增量待重试",
			zap.Error(err), zap.Int("articleCount", len(viewCounts)))
		return
	}

	if err := t.viewRepo.DeductSyncedViewCounts(ctx, viewCounts); err != nil {
		// 扣减失败会导致下个周期重复累加一部分，记录告警便于核对。
		t.logger.Error("从 Redis 扣减已同步浏览量失败，下个周期可能重复累加",
			zap.Error(err), zap.Int("articleCount", len(viewCounts)))
		return
	}

	t.logger.Info("文章浏览量同步完成。", zap.Int("articleCount", len(viewCounts)))
}

// Stop 优雅地停止 cron 调度器。
// 返回一个 context，调用者可以用它等待正在运行的任务完成。
func (t *ViewCountSyncTask) Stop() context.Context {
	t.logger.Info("正在停止文章浏览量同步MySQL定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("文章浏览量同步MySQL定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx
}
