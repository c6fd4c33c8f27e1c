package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/camera_service/config"
	"github.com/Xushengqwer/camera_service/dependencies"
	"github.com/Xushengqwer/camera_service/pkg/auth"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/repo/mysql"
	"github.com/Xushengqwer/camera_service/service"
)

func main() {
	// --- 0. 解析命令行参数 ---
	var configFile string
	var numCameras int
	var numLenses int
	var numArticles int
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.IntVar(&numCameras, "cameras", 30, "要生成的相机数量 (默认: 30)")
	flag.IntVar(&numLenses, "lenses", 50, "要生成的镜头数量 (默认: 50)")
	flag.IntVar(&numArticles, "articles", 20, "要生成的文章数量 (默认: 20)")
	flag.Parse()

	absConfigFile, err := filepath.Abs(configFile)
	if err != nil {
		fmt.Printf("无法获取配置文件的绝对路径 '%s': %v\n", configFile, err)
		absConfigFile = configFile
	}
	fmt.Printf("准备使用配置文件 '%s' 填充测试数据 (相机 %d / 镜头 %d / 文章 %d)...\n",
		absConfigFile, numCameras, numLenses, numArticles)

	if numCameras <= 0 || numLenses <= 0 || numArticles < 0 {
		fmt.Println("错误: 生成数量参数非法")
		os.Exit(1)
	}

	// --- 1. 加载配置 ---
	var cfg appConfig.CameraConfig
	if err := core.LoadConfig(absConfigFile, &cfg); err != nil {
		fmt.Printf("加载配置失败 (%s): %v\n", absConfigFile, err)
		os.Exit(1)
	}
	fmt.Println("配置加载成功。")
	if cfg.MySQLConfig.Write.DSN == "" {
		fmt.Println("警告: MySQL Write DSN 为空，请检查配置文件或环境变量。")
	}

	// --- 2. 初始化日志记录器 ---
	logger, loggerErr := core.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		fmt.Printf("初始化 ZapLogger 失败: %v\n", loggerErr)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Logger().Sync()
	}()
	logger.Info("Logger 初始化成功 (Seeder)")

	// --- 3. 初始化 MySQL 数据库连接 ---
	db, dbErr := dependencies.InitMySQL(&cfg, logger)
	if dbErr != nil {
		logger.Fatal("初始化 MySQL 失败 (Seeder)", zap.Error(dbErr))
	}
	logger.Info("MySQL 连接成功 (Seeder)")

	// --- 4. 初始化 JWT 管理器 (注册流程依赖) ---
	tokenManager, tmErr := auth.NewTokenManager(cfg.JWTConfig)
	if tmErr != nil {
		logger.Fatal("初始化 TokenManager 失败 (Seeder)", zap.Error(tmErr))
	}

	// --- 5. 初始化 Repositories 与 Services ---
	// Seeder 只经过服务层写数据，不直连表，保证触发与线上一致的校验逻辑。
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

	seederSvcs := &SeederServices{
		Auth:     service.NewAuthService(db, userRepo, tokenManager, logger),
		Brand:    service.NewBrandService(db, brandRepo, mountRepo, brandMountLinkRepo, logger),
		Mount:    service.NewMountService(db, mountRepo, brandRepo, brandMountLinkRepo, lensMountLinkRepo, cameraRepo, logger),
		Camera:   service.NewCameraService(db, cameraRepo, brandRepo, mountRepo, imageRepo, ratingRepo, commentRepo, nil, logger),
		Lens:     service.NewLensService(db, lensRepo, brandRepo, mountRepo, lensMountLinkRepo, imageRepo, ratingRepo, commentRepo, nil, logger),
		Category: service.NewCategoryService(db, categoryRepo, articleRepo, logger),
		Tag:      service.NewTagService(db, tagRepo, articleTagLinkRepo, logger),
		Article:  service.NewArticleService(db, articleRepo, categoryRepo, tagRepo, articleTagLinkRepo, commentRepo, nil, logger),
		Comment:  service.NewCommentService(db, commentRepo, articleRepo, cameraRepo, lensRepo, logger),
		Rating:   service.NewRatingService(db, ratingRepo, cameraRepo, lensRepo, logger),
	}
	logger.Info("Services 已初始化 (Seeder)")

	// --- 6. 执行数据填充 ---
	ctx := context.Background()
	startTime := time.Now()
	logger.Info("开始执行数据填充...",
		zap.Int("相机", numCameras), zap.Int("镜头", numLenses), zap.Int("文章", numArticles))

	Seed(ctx, seederSvcs, logger, numCameras, numLenses, numArticles)

	duration := time.Since(startTime)
	fmt.Printf("数据填充完成！耗时: %v\n", duration)
	logger.Info("Seeder main: 所有任务完成，准备退出。", zap.Duration("耗时", duration))
}
