package mysql

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/config"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/pkg/core"
)

// ArticleViewBatchRepository 定义了文章浏览量的批量同步操作。
// 由后台定时任务调用，把 Redis 中累积的计数回写到 MySQL。
type ArticleViewBatchRepository interface {
	// BatchUpdateArticleViewCounts 并发地将浏览量批量同步到 MySQL。
	// 设计目标是高吞吐量和容错性：允许部分批次失败，记录并聚合错误后返回。
	BatchUpdateArticleViewCounts(ctx context.Context, viewCounts map[uint64]int64) error
}

type articleViewBatchRepository struct {
	db          *gorm.DB
	logger      *core.ZapLogger
	viewSyncCfg config.ViewSyncConfig
}

// NewArticleViewBatchRepository 是 articleViewBatchRepository 的构造函数。
func NewArticleViewBatchRepository(db *gorm.DB, logger *core.ZapLogger, viewSyncCfg config.ViewSyncConfig) ArticleViewBatchRepository {
	return &articleViewBatchRepository{db: db, logger: logger, viewSyncCfg: viewSyncCfg}
}

// viewUpdateItem 在并发处理通道中传递文章 ID 与对应的浏览量。
type viewUpdateItem struct {
	ID        uint64
	ViewCount int64
}

// BatchUpdateArticleViewCounts 实现浏览量批量同步的核心逻辑。
//
// 核心机制:
// 1. 数据分批: 根据配置 BatchSize 将大量更新分割成小批次。
// 2. 并发处理: 根据配置 ConcurrencyLevel 启动 worker goroutine 池处理批次。
// 3. 数据库更新: 每个批次构建单条 CASE WHEN 更新语句落库。
func (r *articleViewBatchRepository) BatchUpdateArticleViewCounts(ctx context.Context, viewCounts map[uint64]int64) error {
	totalUpdates := len(viewCounts)
	if totalUpdates == 0 {
		r.logger.Info("BatchUpdateArticleViewCounts: 没有需要更新的文章浏览量，任务提前结束。")
		return nil
	}

	batchSize := r.viewSyncCfg.BatchSize
	if batchSize <= 0 {
		batchSize = 500
		r.logger.Warn("BatchUpdateArticleViewCounts: 配置 BatchSize 无效，使用默认值",
			zap.Int("defaultBatchSize", batchSize), zap.Int("configured", r.viewSyncCfg.BatchSize))
	}
	concurrencyLevel := r.viewSyncCfg.ConcurrencyLevel
	if concurrencyLevel <= 0 {
		concurrencyLevel = 1
		r.logger.Warn("BatchUpdateArticleViewCounts: 配置 ConcurrencyLevel 无效，使用默认值 1",
			zap.Int("configured", r.viewSyncCfg.ConcurrencyLevel))
	}

	itemsToUpdate := make([]viewUpdateItem, 0, totalUpdates)
	for id, count := range viewCounts {
		itemsToUpdate = append(itemsToUpdate, viewUpdateItem{ID: id, ViewCount: count})
	}

	totalBatches := (totalUpdates + batchSize - 1) / batchSize
	r.logger.Info("BatchUpdateArticleViewCounts: 开始并发批量更新",
		zap.Int("总数", totalUpdates),
		zap.Int("批大小", batchSize),
		zap.Int("并发数", concurrencyLevel),
		zap.Int("批次数", totalBatches),
	)

	var wg sync.WaitGroup
	jobs := make(chan []viewUpdateItem, concurrencyLevel)
	results := make(chan error, totalBatches)
	overallStartTime := time.Now()

	for i := 0; i < concurrencyLevel; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for batch := range jobs {
				select {
				case <-ctx.Done():
					r.logger.Warn("上下文取消，Worker 停止处理", zap.Int("workerID", workerID), zap.Error(ctx.Err()))
					results <- fmt.Errorf("worker %d: context cancelled: %w", workerID, ctx.Err())
					continue
				default:
				}
				results <- r.processBatch(ctx, batch, workerID)
			}
		}(i)
	}

	// 分发批次任务。
	go func() {
		defer close(jobs)
		for i := 0; i < totalUpdates; i += batchSize {
			end := i + batchSize
			if end > totalUpdates {
				end = totalUpdates
			}
			batchCopy := make([]viewUpdateItem, len(itemsToUpdate[i:end]))
			copy(batchCopy, itemsToUpdate[i:end])

			select {
			case <-ctx.Done():
				r.logger.Warn("上下文取消，停止分发更多批次任务。", zap.Error(ctx.Err()))
				return
			case jobs <- batchCopy:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var aggregatedErrors []error
	for err := range results {
		if err != nil {
			aggregatedErrors = append(aggregatedErrors, err)
		}
	}

	totalDuration := time.Since(overallStartTime)
	failedCount := len(aggregatedErrors)
	r.logger.Info("完成所有批次的文章浏览量并发更新处理。",
		zap.Duration("总耗时", totalDuration),
		zap.Int("总批次数", totalBatches),
		zap.Int("失败批次数", failedCount),
	)

	if failedCount > 0 {
		var errorStrings []string
		for _, e := range aggregatedErrors {
			errorStrings = append(errorStrings, e.Error())
		}
		finalError := fmt.Errorf("并发批量更新过程中发生错误 (%d / %d 个批次失败): %s",
			failedCount, totalBatches, strings.Join(errorStrings, "; "))
		r.logger.Error("并发批量更新最终结果：失败", zap.Error(finalError))
		return finalError
	}
	return nil
}

// processBatch 负责处理单个批次的数据库更新。
// 浏览量是增量语义，所以这里用 view_count + 增量 而不是整值覆盖，
// 避免覆盖两次同步之间产生的其他写入。
func (r *articleViewBatchRepository) processBatch(ctx context.Context, batch []viewUpdateItem, workerID int) error {
	var (
		ids          []uint64
		sqlCase      strings.Builder
		updateParams []interface{}
	)
	sqlCase.WriteString("view_count + CASE id ")
	for _, item := range batch {
		ids = append(ids, item.ID)
		sqlCase.WriteString("WHEN ? THEN ? ")
		updateParams = append(updateParams, item.ID, item.ViewCount)
	}
	sqlCase.WriteString("ELSE 0 END")

	dbOperationStart := time.Now()
	err := r.db.WithContext(ctx).Model(&entities.Article{}).
		Where("id IN ?", ids).
		Update("view_count", gorm.Expr(sqlCase.String(), updateParams...)).Error
	dbDuration := time.Since(dbOperationStart)

	if err != nil {
		r.logger.Error("processBatch: 数据库更新批次失败",
			zap.Int("workerID", workerID),
			zap.Int("batchSize", len(batch)),
			zap.Duration("db耗时", dbDuration),
			zap.Error(err),
		)
		return fmt.Errorf("worker %d 处理批次 (大小 %d) 失败: %w", workerID, len(batch), err)
	}
	return nil
}
