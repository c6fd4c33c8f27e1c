package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Xushengqwer/camera_service/docs" // swagger 文档注册

	appConfig "github.com/Xushengqwer/camera_service/config"
	"github.com/Xushengqwer/camera_service/constant"
	"github.com/Xushengqwer/camera_service/controller"
	"github.com/Xushengqwer/camera_service/dependencies"
	"github.com/Xushengqwer/camera_service/pkg/auth"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/pkg/core/tracing"
	"github.com/Xushengqwer/camera_service/repo/mysql"
	redisrepo "github.com/Xushengqwer/camera_service/repo/redis"
	"github.com/Xushengqwer/camera_service/router"
	"github.com/Xushengqwer/camera_service/service"
	"github.com/Xushengqwer/camera_service/tasks"

	"go.uber.org/zap"
)

// @title           Camera Service API
// @version         1.0
// @description     相机器材目录服务，提供品牌、卡口、机身、镜头、文章与评分等接口。

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8081
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                格式: "Bearer {token}"
func main() {
	// --- 配置和基础设置 ---
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "Path to configuration file")
	flag.Parse()

	// 1. 加载配置
	var cfg appConfig.CameraConfig
	if err := core.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}

	// 打印最终生效的配置以供调试
	configBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Fatalf("无法序列化配置以进行打印: %v", err)
	}
	log.Printf("✅ 配置加载成功！最终生效的配置如下:\n%s\n", string(configBytes))

	// 2. 初始化 Logger
	logger, loggerErr := core.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", loggerErr)
	}
	defer func() {
		logger.Info("正在同步日志...")
		if err := logger.Logger().Sync(); err != nil {
			log.Printf("WARN: ZapLogger Sync 失败: %v\n", err)
		}
	}()
	logger.Info("Logger 初始化成功")

	// 3. 初始化 TracerProvider
	var tracerShutdown func(context.Context) error
	if cfg.TracerConfig.Enabled {
		var err error
		tracerShutdown, err = tracing.InitTracerProvider(
			constant.ServiceName,
			constant.ServiceVersion,
			cfg.TracerConfig,
		)
		if err != nil {
			logger.Fatal("初始化 TracerProvider 失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Info("正在关闭 TracerProvider...")
			if err := tracerShutdown(ctx); err != nil {
				logger.Error("关闭 TracerProvider 失败", zap.Error(err))
			} else {
				logger.Info("TracerProvider 已成功关闭")
			}
		}()
		logger.Info("分布式追踪已初始化")
	} else {
		logger.Info("分布式追踪已禁用")
		tracerShutdown = func(ctx context.Context) error { return nil }
	}

	// --- 4. 初始化核心依赖 ---
	// 4.1 数据库 (MySQL)
	db, dbErr := dependencies.InitMySQL(&cfg, logger)
	if dbErr != nil {
		logger.Fatal("初始化 MySQL 数据库失败", zap.Error(dbErr))
	}
	logger.Info("MySQL 数据库连接成功")

	// 4.2 Redis
	rdb, redisErr := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if redisErr != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(redisErr))
	}
	logger.Info("Redis 连接成功")

	// 4.3 COS 客户端
	cos, cosErr := dependencies.InitCOS(&cfg.COSConfig, logger)
	if cosErr != nil {
		logger.Fatal("初始化 COS 客户端失败", zap.Error(cosErr))
	}
	logger.Info("COS 客户端初始化成功")

	// 4.4 JWT 令牌管理器
	tokenManager, tmErr := auth.NewTokenManager(cfg.JWTConfig)
	if tmErr != nil {
		logger.Fatal("初始化 TokenManager 失败", zap.Error(tmErr))
	}
	logger.Info("TokenManager 初始化成功")

	// --- 5. 初始化数据仓库层 (Repositories) ---
	brandRepo := mysql.NewBrandRepository(db, logger)
	mountRepo := mysql.NewMountRepository(db, logger)
	cameraRepo := mysql.NewCameraRepository(db, logger)
	lensRepo := mysql.NewLensRepository(db, logger)
	brandMountLinkRepo := mysql.NewBrandMountLinkRepository(db, logger)
	lensMountLinkRepo := mysql.NewLensMountLinkRepository(db, logger)
	articleTagLinkRepo := mysql.NewArticleTagLinkRepository(db, logger)
	userRepo := mysql.NewUserRepository(db, logger)
	categoryRepo := mysql.NewCategoryRepository(db, logger)
	tagRepo := mysql.NewTagRepository(db, logger)
	articleRepo := mysql.NewArticleRepository(db, logger)
	commentRepo := mysql.NewCommentRepository(db, logger)
	ratingRepo := mysql.NewRatingRepository(db, logger)
	imageRepo := mysql.NewEquipmentImageRepository(db, logger)
	viewBatchRepo := mysql.NewArticleViewBatchRepository(db, logger, cfg.ViewSyncConfig)
	logger.Debug("MySQL Repositories 初始化完成")

	articleViewRepo := redisrepo.NewArticleViewRepository(
		rdb,
		logger,
		constant.BloomFilterDefaultSize,
		constant.BloomFilterDefaultErrorRate,
		cfg.ViewSyncConfig,
	)
	logger.Debug("Redis Repositories 初始化完成")

	// --- 6. 初始化服务层 (Services) ---
	authService := service.NewAuthService(db, userRepo, tokenManager, logger)
	userService := service.NewUserService(db, userRepo, logger)
	brandService := service.NewBrandService(db, brandRepo, mountRepo, brandMountLinkRepo, logger)
	mountService := service.NewMountService(db, mountRepo, brandRepo, brandMountLinkRepo, lensMountLinkRepo, cameraRepo, logger)
	cameraService := service.NewCameraService(db, cameraRepo, brandRepo, mountRepo, imageRepo, ratingRepo, commentRepo, cos, logger)
	lensService := service.NewLensService(db, lensRepo, brandRepo, mountRepo, lensMountLinkRepo, imageRepo, ratingRepo, commentRepo, cos, logger)
	categoryService := service.NewCategoryService(db, categoryRepo, articleRepo, logger)
	tagService := service.NewTagService(db, tagRepo, articleTagLinkRepo, logger)
	articleService := service.NewArticleService(db, articleRepo, categoryRepo, tagRepo, articleTagLinkRepo, commentRepo, articleViewRepo, logger)
	commentService := service.NewCommentService(db, commentRepo, articleRepo, cameraRepo, lensRepo, logger)
	ratingService := service.NewRatingService(db, ratingRepo, cameraRepo, lensRepo, logger)
	mediaService := service.NewMediaService(db, imageRepo, cameraRepo, lensRepo, cos, logger)
	logger.Debug("Services 初始化完成")

	// --- 7. 初始化控制器层 (Controllers) ---
	ctrls := &router.Controllers{
		Auth:     controller.NewAuthController(authService, userService),
		User:     controller.NewUserController(userService),
		Brand:    controller.NewBrandController(brandService),
		Mount:    controller.NewMountController(mountService),
		Camera:   controller.NewCameraController(cameraService),
		Lens:     controller.NewLensController(lensService),
		Article:  controller.NewArticleController(articleService),
		Category: controller.NewCategoryController(categoryService),
		Tag:      controller.NewTagController(tagService),
		Comment:  controller.NewCommentController(commentService),
		Rating:   controller.NewRatingController(ratingService),
		Media:    controller.NewMediaController(mediaService),
	}
	logger.Debug("Controllers 初始化完成")

	// --- 8. 初始化定时任务 ---
	syncTask := tasks.NewViewCountSyncTask(articleViewRepo, viewBatchRepo, logger)
	logger.Info("后台定时任务已初始化并启动")

	// --- 9. 设置 Gin 路由器 ---
	ginRouter := router.SetupRouter(logger, &cfg, tokenManager, ctrls)
	logger.Info("Gin 路由器已设置")

	// --- 10. 启动 HTTP 服务器 ---
	serverAddr := fmt.Sprintf(":%s", cfg.ServerConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: ginRouter,
	}

	go func() {
		logger.Info("HTTP 服务器开始监听", zap.String("address", serverAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
		logger.Info("HTTP 服务器已停止监听")
	}()

	// --- 11. 实现优雅关停 ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	logger.Info("收到关停信号，开始优雅退出...", zap.String("signal", receivedSignal.String()))

	shutdownCtx, shutdownCancelFunc := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancelFunc()

	// a. 停止 HTTP 服务器 (允许处理完当前请求)
	logger.Info("正在关闭 HTTP 服务器...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭 HTTP 服务器失败", zap.Error(err))
	} else {
		logger.Info("HTTP 服务器已成功关闭")
	}

	// b. 停止定时任务调度器 (等待正在执行的同步完成)
	logger.Info("正在停止定时任务...")
	syncStopCtx := syncTask.Stop()
	select {
	case <-syncStopCtx.Done():
		logger.Info("浏览量同步任务已停止")
	case <-shutdownCtx.Done():
		logger.Error("等待定时任务停止超时", zap.Error(shutdownCtx.Err()))
	}

	// c. 其他清理 (TracerProvider 通过 defer 关闭)
	logger.Info("服务已成功关闭")
}
