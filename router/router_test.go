package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tencentyun/cos-go-sdk-v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appConfig "github.com/Xushengqwer/camera_service/config"
	"github.com/Xushengqwer/camera_service/controller"
	"github.com/Xushengqwer/camera_service/dependencies"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/pkg/auth"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/repo/mysql"
	"github.com/Xushengqwer/camera_service/service"
)

type noopCOSClient struct{}

func (noopCOSClient) GetClient() *cos.Client { return nil }
func (noopCOSClient) UploadFile(_ context.Context, objectKey string, _ io.Reader, _ int64, _ string) (string, error) {
	return "https://cdn.example.com/" + objectKey, nil
}
func (noopCOSClient) DeleteObject(context.Context, string) error { return nil }

var _ dependencies.COSClientInterface = noopCOSClient{}

type noopViewRepo struct{}

func (noopViewRepo) IncrementViewCount(context.Context, uint64, string) error { return nil }
func (noopViewRepo) GetAllViewCounts(context.Context) (map[uint64]int64, error) {
	return map[uint64]int64{}, nil
}
func (noopViewRepo) DeductSyncedViewCounts(context.Context, map[uint64]int64) error { return nil }

// testApp 组装一套跑在内存 sqlite 上的完整 HTTP 栈。
type testApp struct {
	router       *gin.Engine
	db           *gorm.DB
	tokenManager *auth.TokenManager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dependencies.AutoMigrateAll(db))

	logger := core.NewZapLoggerWith(zap.NewNop())
	cfg := &appConfig.CameraConfig{
		ServerConfig: appConfig.ServerConfig{Port: "0", RequestTimeout: 5},
		JWTConfig:    appConfig.JWTConfig{Secret: "router-test-secret", Issuer: "camera_service_test", ExpireMinutes: 60},
	}
	tokenManager, err := auth.NewTokenManager(cfg.JWTConfig)
	require.NoError(t, err)

	userRepo := mysql.NewUserRepository(db, logger)
	brandRepo := mysql.NewBrandRepository(db, logger)
	mountRepo := mysql.NewMountRepository(db, logger)
	brandLinkRepo := mysql.NewBrandMountLinkRepository(db, logger)
	cameraRepo := mysql.NewCameraRepository(db, logger)
	lensRepo := mysql.NewLensRepository(db, logger)
	lensLinkRepo := mysql.NewLensMountLinkRepository(db, logger)
	imageRepo := mysql.NewEquipmentImageRepository(db, logger)
	articleRepo := mysql.NewArticleRepository(db, logger)
	categoryRepo := mysql.NewCategoryRepository(db, logger)
	tagRepo := mysql.NewTagRepository(db, logger)
	tagLinkRepo := mysql.NewArticleTagLinkRepository(db, logger)
	commentRepo := mysql.NewCommentRepository(db, logger)
	ratingRepo := mysql.NewRatingRepository(db, logger)

	cosClient := noopCOSClient{}
	viewRepo := noopViewRepo{}

	authSvc := service.NewAuthService(db, userRepo, tokenManager, logger)
	userSvc := service.NewUserService(db, userRepo, logger)
	brandSvc := service.NewBrandService(db, brandRepo, mountRepo, brandLinkRepo, logger)
	mountSvc := service.NewMountService(db, mountRepo, brandRepo, brandLinkRepo, lensLinkRepo, cameraRepo, logger)
	cameraSvc := service.NewCameraService(db, cameraRepo, brandRepo, mountRepo, imageRepo, ratingRepo, commentRepo, cosClient, logger)
	lensSvc := service.NewLensService(db, lensRepo, brandRepo, mountRepo, lensLinkRepo, imageRepo, ratingRepo, commentRepo, cosClient, logger)
	articleSvc := service.NewArticleService(db, articleRepo, categoryRepo, tagRepo, tagLinkRepo, commentRepo, viewRepo, logger)
	categorySvc := service.NewCategoryService(db, categoryRepo, articleRepo, logger)
	tagSvc := service.NewTagService(db, tagRepo, tagLinkRepo, logger)
	commentSvc := service.NewCommentService(db, commentRepo, articleRepo, cameraRepo, lensRepo, logger)
	ratingSvc := service.NewRatingService(db, ratingRepo, cameraRepo, lensRepo, logger)
	mediaSvc := service.NewMediaService(db, imageRepo, cameraRepo, lensRepo, cosClient, logger)

	ctrls := &Controllers{
		Auth:     controller.NewAuthController(authSvc, userSvc),
		User:     controller.NewUserController(userSvc),
		Brand:    controller.NewBrandController(brandSvc),
		Mount:    controller.NewMountController(mountSvc),
		Camera:   controller.NewCameraController(cameraSvc),
		Lens:     controller.NewLensController(lensSvc),
		Article:  controller.NewArticleController(articleSvc),
		Category: controller.NewCategoryController(categorySvc),
		Tag:      controller.NewTagController(tagSvc),
		Comment:  controller.NewCommentController(commentSvc),
		Rating:   controller.NewRatingController(ratingSvc),
		Media:    controller.NewMediaController(mediaSvc),
	}

	return &testApp{
		router:       SetupRouter(logger, cfg, tokenManager, ctrls),
		db:           db,
		tokenManager: tokenManager,
	}
}

// do 发起一次请求，body 为 nil 时不带请求体，token 非空时加 Bearer 头。
func (app *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	app.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

// seedUserWithToken 直入库一个用户并为其签发令牌。
func (app *testApp) seedUserWithToken(t *testing.T, username string, role enums.UserRole) (uint64, string) {
	t.Helper()
	user := &entities.User{
		Username: username, Email: username + "@example.com",
		PasswordHash: "x", Role: role, IsActive: true,
	}
	require.NoError(t, app.db.Create(user).Error)

	token, _, err := app.tokenManager.IssueToken(user.ID, role)
	require.NoError(t, err)
	return user.ID, token
}

func TestPing(t *testing.T) {
	app := newTestApp(t)
	recorder := app.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	recorder := app.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "flowuser", "email": "flowuser@example.com", "password": "flow-password",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	t.Run("登录拿到令牌后访问 /auth/me", func(t *testing.T) {
		recorder := app.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"username": "flowuser", "password": "flow-password",
		})
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

		var loginResp struct {
			Data struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &loginResp))
		require.NotEmpty(t, loginResp.Data.Token)

		meRecorder := app.do(t, http.MethodGet, "/api/v1/auth/me", loginResp.Data.Token, nil)
		assert.Equal(t, http.StatusOK, meRecorder.Code)
	})

	t.Run("密码错误返回401", func(t *testing.T) {
		recorder := app.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"username": "flowuser", "password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("未登录访问 /auth/me 返回401", func(t *testing.T) {
		recorder := app.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, response.ErrCodeClientUnauthorized, resp.Code)
	})
}

func TestAdminRouteGuards(t *testing.T) {
	app := newTestApp(t)
	_, userToken := app.seedUserWithToken(t, "plain-user", enums.RoleUser)
	_, adminToken := app.seedUserWithToken(t, "the-admin", enums.RoleAdmin)

	payload := gin.H{"name": "Leica"}

	t.Run("匿名写品牌返回401", func(t *testing.T) {
		recorder := app.do(t, http.MethodPost, "/api/v1/admin/brands", "", payload)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("普通用户写品牌返回403", func(t *testing.T) {
		recorder := app.do(t, http.MethodPost, "/api/v1/admin/brands", userToken, payload)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, response.ErrCodeClientForbidden, resp.Code)
	})

	t.Run("管理员写品牌成功且匿名可读", func(t *testing.T) {
		recorder := app.do(t, http.MethodPost, "/api/v1/admin/brands", adminToken, payload)
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

		listRecorder := app.do(t, http.MethodGet, "/api/v1/brands", "", nil)
		require.Equal(t, http.StatusOK, listRecorder.Code)
		assert.Contains(t, listRecorder.Body.String(), "Leica")
	})

	t.Run("重复创建返回409", func(t *testing.T) {
		recorder := app.do(t, http.MethodPost, "/api/v1/admin/brands", adminToken, payload)
		assert.Equal(t, http.StatusConflict, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, response.ErrCodeClientConflict, resp.Code)
	})

	t.Run("缺少必填字段返回400", func(t *testing.T) {
		recorder := app.do(t, http.MethodPost, "/api/v1/admin/brands", adminToken, gin.H{"country": "Germany"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("读取不存在的品牌返回404", func(t *testing.T) {
		recorder := app.do(t, http.MethodGet, "/api/v1/brands/99999", "", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, response.ErrCodeClientResourceNotFound, resp.Code)
	})
}

func TestArticleRoutesOwnership(t *testing.T) {
	app := newTestApp(t)
	_, authorToken := app.seedUserWithToken(t, "route-author", enums.RoleUser)
	_, otherToken := app.seedUserWithToken(t, "route-other", enums.RoleUser)

	recorder := app.do(t, http.MethodPost, "/api/v1/articles", authorToken, gin.H{
		"title": "路由层冒烟", "slug": "router-smoke", "content": "正文", "status": "published",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var createResp struct {
		Data struct {
			ID uint64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &createResp))
	articleID := createResp.Data.ID
	require.NotZero(t, articleID)

	t.Run("匿名可读已发布文章", func(t *testing.T) {
		recorder := app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/articles/%d", articleID), "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("匿名发文返回401", func(t *testing.T) {
		recorder := app.do(t, http.MethodPost, "/api/v1/articles", "", gin.H{
			"title": "x", "slug": "x", "content": "x",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("非作者改文返回403", func(t *testing.T) {
		recorder := app.do(t, http.MethodPut, fmt.Sprintf("/api/v1/articles/%d", articleID), otherToken, gin.H{
			"title": "抢改",
		})
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("作者改文成功", func(t *testing.T) {
		recorder := app.do(t, http.MethodPut, fmt.Sprintf("/api/v1/articles/%d", articleID), authorToken, gin.H{
			"title": "路由层冒烟（修订）",
		})
		assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	})
}
