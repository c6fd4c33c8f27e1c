package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appConfig "github.com/Xushengqwer/camera_service/config"
	"github.com/Xushengqwer/camera_service/constant"
	"github.com/Xushengqwer/camera_service/controller"
	"github.com/Xushengqwer/camera_service/pkg/auth"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/pkg/middleware"
)

// Controllers 聚合了路由注册需要的全部控制器。
type Controllers struct {
	Auth     *controller.AuthController
	User     *controller.UserController
	Brand    *controller.BrandController
	Mount    *controller.MountController
	Camera   *controller.CameraController
	Lens     *controller.LensController
	Article  *controller.ArticleController
	Category *controller.CategoryController
	Tag      *controller.TagController
	Comment  *controller.CommentController
	Rating   *controller.RatingController
	Media    *controller.MediaController
}

// SetupRouter 仅负责配置 Gin 引擎、中间件和路由注册。
func SetupRouter(
	logger *core.ZapLogger,
	cfg *appConfig.CameraConfig,
	tokenManager *auth.TokenManager,
	ctrls *Controllers,
) *gin.Engine {
	logger.Info("开始设置 Gin 路由...")

	// 使用 gin.New() 而不是 gin.Default()，Recovery 和 Logger 都是自定义实现
	router := gin.New()

	// 1. OTel Middleware (最先，处理追踪上下文和 Span)
	router.Use(otelgin.Middleware(constant.ServiceName))

	// 2. Panic Recovery (捕获后续中间件和 handler 的 panic)
	router.Use(middleware.ErrorHandlingMiddleware(logger))

	// 3. Request Logger (记录访问日志，需要 TraceID)
	if baseLogger := logger.Logger(); baseLogger != nil {
		router.Use(middleware.RequestLoggerMiddleware(baseLogger))
	} else {
		logger.Warn("无法获取底层的 *zap.Logger，跳过 RequestLoggerMiddleware 注册")
	}

	// 4. Request Timeout (超时控制)
	requestTimeout := time.Duration(cfg.ServerConfig.RequestTimeout) * time.Second
	router.Use(middleware.RequestTimeoutMiddleware(logger, requestTimeout))

	// 5. User Context (解析 JWT，设置用户身份；不拦截匿名请求)
	router.Use(middleware.UserContextMiddleware(tokenManager, logger))

	logger.Debug("已注册全局中间件")

	// --- 创建 API 版本分组 ---
	// public: 匿名可访问；authed: 需要登录；admin: 需要管理员角色
	v1 := router.Group("/api/v1")
	authed := v1.Group("")
	authed.Use(middleware.RequireAuth())
	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
	logger.Debug("已创建 API/v1 分组")

	// --- 注册控制器路由 ---
	ctrls.Auth.RegisterRoutes(v1, authed)
	ctrls.User.RegisterRoutes(authed, admin)
	ctrls.Brand.RegisterRoutes(v1, admin)
	ctrls.Mount.RegisterRoutes(v1, admin)
	ctrls.Camera.RegisterRoutes(v1, admin)
	ctrls.Lens.RegisterRoutes(v1, admin)
	ctrls.Article.RegisterRoutes(v1, authed)
	ctrls.Category.RegisterRoutes(v1, admin)
	ctrls.Tag.RegisterRoutes(v1, admin)
	ctrls.Comment.RegisterRoutes(v1, authed)
	ctrls.Rating.RegisterRoutes(v1, authed)
	ctrls.Media.RegisterRoutes(v1, admin)
	logger.Info("所有控制器路由已注册到 /api/v1 分组")

	// --- 注册 Swagger UI 路由 ---
	// 访问 /swagger/index.html 即可看到 Swagger UI 界面
	swaggerURL := ginSwagger.URL("/swagger/doc.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	logger.Info("Swagger UI endpoint registered at /swagger/*any")

	// --- 健康检查等路由 ---
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	logger.Info("Gin 路由器设置完成")
	return router
}
