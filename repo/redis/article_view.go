package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/camera_service/config"
	"github.com/Xushengqwer/camera_service/constant"
	"github.com/Xushengqwer/camera_service/pkg/core"
)

// ArticleViewRepository 定义了与文章浏览计数相关的 Redis 操作接口。
// - 目标: 高频的浏览计数不直接打到 MySQL，先在 Redis 累积，由定时任务批量回写。
type ArticleViewRepository interface {
	// IncrementViewCount 原子性地增加指定文章的浏览计数。
	// - 使用 Bloom Filter 防止同一访问者在 TTL 窗口内重复计数。
	// - viewerID 是访问者标识：登录用户取用户ID，匿名访问取客户端IP。
	// - 访问者已在 Bloom Filter 中时直接返回 nil，不增加计数。
	IncrementViewCount(ctx context.Context, articleID uint64, viewerID string) error

	// GetAllViewCounts 使用 SCAN 分批获取 Redis 中所有文章的浏览量增量。
	// - 作为定时同步任务的数据源，SCAN 避免 KEYS 阻塞 Redis，MGET 批量取值。
	GetAllViewCounts(ctx context.Context) (map[uint64]int64, error)

	// DeductSyncedViewCounts 把已成功回写 MySQL 的增量从计数器中扣除。
	// - 用 DECRBY 而不是 DEL，同步窗口内新产生的浏览不会丢失。
	DeductSyncedViewCounts(ctx context.Context, synced map[uint64]int64) error
}

type articleViewRepository struct {
	redisClient     *redis.Client
	logger          *core.ZapLogger
	viewSyncCfg     config.ViewSyncConfig
	bloomFilterSize int64   // Bloom Filter 预期容量
	bloomErrorRate  float64 // 可接受的误判率
}

// NewArticleViewRepository 创建 ArticleViewRepository 实例。
func NewArticleViewRepository(redisClient *redis.Client, logger *core.ZapLogger, bloomFilterSize int64, bloomErrorRate float64, viewSyncCfg config.ViewSyncConfig) ArticleViewRepository {
	return &articleViewRepository{
		redisClient:     redisClient,
		logger:          logger,
		viewSyncCfg:     viewSyncCfg,
		bloomFilterSize: bloomFilterSize,
		bloomErrorRate:  bloomErrorRate,
	}
}

// IncrementViewCount 实现浏览计数的防刷与累加。
func (r *articleViewRepository) IncrementViewCount(ctx context.Context, articleID uint64, viewerID string) error {
	bloomKey := fmt.Sprintf("%s%d", constant.ArticleViewBloomPrefix, articleID)
	viewCountKey := fmt.Sprintf("%s%d", constant.ArticleViewCountPrefix, articleID)

	// 确保 Bloom Filter 已按需创建。
	// 过滤器已存在时 BF.RESERVE 返回 "ERR item exists"，视为正常情况。
	if err := r.redisClient.BFReserve(ctx, bloomKey, r.bloomErrorRate, r.bloomFilterSize).Err(); err != nil {
		if strings.Contains(err.Error(), "ERR item exists") {
			r.logger.Debug("Bloom Filter 已存在，无需创建", zap.String("bloomKey", bloomKey))
		} else {
			r.logger.Error("创建 Bloom Filter 失败", zap.Error(err), zap.String("bloomKey", bloomKey))
			return fmt.Errorf("创建 Bloom Filter '%s' 失败: %w", bloomKey, err)
		}
	}

	// 防刷核心：访问者已在过滤器中则不再计数。
	viewerExists, err := r.redisClient.BFExists(ctx, bloomKey, viewerID).Result()
	if err != nil {
		r.logger.Error("检查访问者是否在 Bloom Filter 中时出错",
			zap.Error(err), zap.String("bloomKey", bloomKey), zap.String("viewerID", viewerID))
		return fmt.Errorf("检查 Bloom Filter 出错 ('%s', '%s'): %w", bloomKey, viewerID, err)
	}
	if viewerExists {
		r.logger.Debug("访问者已在 Bloom Filter 中，跳过计数",
			zap.String("bloomKey", bloomKey), zap.Uint64("articleID", articleID))
		return nil
	}

	if _, err = r.redisClient.BFAdd(ctx, bloomKey, viewerID).Result(); err != nil {
		r.logger.Error("添加访问者到 Bloom Filter 失败",
			zap.Error(err), zap.String("bloomKey", bloomKey), zap.String("viewerID", viewerID))
		return fmt.Errorf("添加访问者到 Bloom Filter '%s' 失败: %w", bloomKey, err)
	}

	// 刷新过期时间，TTL 定义了防刷窗口。
	if err := r.redisClient.Expire(ctx, bloomKey, constant.BloomViewTTL).Err(); err != nil {
		r.logger.Warn("设置 Bloom Filter 过期时间失败，但不中断计数", zap.Error(err), zap.String("bloomKey", bloomKey))
	}

	if err := r.redisClient.Incr(ctx, viewCountKey).Err(); err != nil {
		r.logger.Error("增加文章浏览计数失败", zap.Error(err), zap.Uint64("articleID", articleID))
		return fmt.Errorf("增加浏览计数失败 (ArticleID: %d): %w", articleID, err)
	}

	r.logger.Debug("成功增加文章浏览计数", zap.Uint64("articleID", articleID))
	return nil
}

// GetAllViewCounts 使用 SCAN 命令安全地迭代并获取所有文章的浏览量增量。
func (r *articleViewRepository) GetAllViewCounts(ctx context.Context) (map[uint64]int64, error) {
	viewCounts := make(map[uint64]int64)
	var cursor uint64
	matchPattern := constant.ArticleViewCountPrefix + "*"

	scanCount := r.viewSyncCfg.ScanBatchSize
	if scanCount <= 0 {
		scanCount = 1000
		r.logger.Warn("GetAllViewCounts: 配置中的 ScanBatchSize 无效或为零，使用默认值。",
			zap.Int64("defaultScanBatchSize", scanCount),
			zap.Int64("configuredScanBatchSize", r.viewSyncCfg.ScanBatchSize),
		)
	}

	startTime := time.Now()
	for {
		keys, nextCursor, err := r.redisClient.Scan(ctx, cursor, matchPattern, scanCount).Result()
		if err != nil {
			r.logger.Error("执行 Redis SCAN 命令失败",
				zap.Error(err), zap.Uint64("cursor", cursor), zap.String("pattern", matchPattern))
			return nil, fmt.Errorf("扫描 Redis Keys 失败 (模式: %s): %w", matchPattern, err)
		}

		if len(keys) > 0 {
			values, mgetErr := r.redisClient.MGet(ctx, keys...).Result()
			if mgetErr != nil {
				r.logger.Error("执行 Redis MGET 命令批量获取浏览量失败",
					zap.Error(mgetErr), zap.Strings("keys_in_batch", keys))
				return nil, fmt.Errorf("批量获取浏览量值失败 (%d keys): %w", len(keys), mgetErr)
			}

			for i, key := range keys {
				articleIDStr := strings.TrimPrefix(key, constant.ArticleViewCountPrefix)
				articleID, parseErr := strconv.ParseUint(articleIDStr, 10, 64)
				if parseErr != nil {
					r.logger.Error("从 Redis Key 解析文章ID失败，已跳过该 Key。",
						zap.Error(parseErr), zap.String("key", key))
					continue
				}

				viewCount := int64(0)
				if i < len(values) && values[i] != nil {
					if valueStr, ok := values[i].(string); ok && valueStr != "" {
						parsedCount, parseCountErr := strconv.ParseInt(valueStr, 10, 64)
						if parseCountErr != nil {
							r.logger.Error("解析 Redis 中的浏览量值失败，该文章浏览量将视为 0。",
								zap.Error(parseCountErr), zap.String("key", key), zap.String("value_str", valueStr))
						} else {
							viewCount = parsedCount
						}
					}
				}
				if viewCount > 0 {
					viewCounts[articleID] = viewCount
				}
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	r.logger.Info("完成扫描 Redis 文章浏览量",
		zap.Int("total_articles_found", len(viewCounts)),
		zap.Duration("duration", time.Since(startTime)),
	)
	return viewCounts, nil
}

// DeductSyncedViewCounts 用 pipeline 批量扣减已同步的增量。
func (r *articleViewRepository) DeductSyncedViewCounts(ctx context.Context, synced map[uint64]int64) error {
	if len(synced) == 0 {
		return nil
	}

	pipe := r.redisClient.Pipeline()
	for articleID, count := range synced {
		if count <= 0 {
			continue
		}
		viewCountKey := fmt.Sprintf("%s%d", constant.ArticleViewCountPrefix, articleID)
		pipe.DecrBy(ctx, viewCountKey, count)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("扣减已同步浏览量失败", zap.Error(err), zap.Int("数量", len(synced)))
		return fmt.Errorf("扣减已同步浏览量失败: %w", err)
	}
	return nil
}
