package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/middleware"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// AuthController 定义认证控制器的结构体
type AuthController struct {
	authService service.AuthService
	userService service.UserService
}

// NewAuthController 构造函数，用于创建 AuthController 实例
func NewAuthController(authService service.AuthService, userService service.UserService) *AuthController {
	return &AuthController{authService: authService, userService: userService}
}

// Register 用户注册
// @Summary      用户注册
// @Description  注册新用户，用户名与邮箱全局唯一，角色固定为普通用户
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} vo.UserResponseWrapper "注册成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      409 {object} vo.BaseResponseWrapper "用户名或邮箱已被占用"
// @Router       /api/v1/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	userVO, err := ctrl.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, userVO, "注册成功")
}

// Login 用户登录
// @Summary      用户登录
// @Description  校验用户名与密码，成功后返回 JWT 访问令牌
// @Tags         auth (认证)
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录凭证"
// @Success      200 {object} vo.LoginResponseWrapper "登录成功"
// @Failure      401 {object} vo.BaseResponseWrapper "用户名或密码错误"
// @Failure      403 {object} vo.BaseResponseWrapper "账号已被禁用"
// @Router       /api/v1/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	loginVO, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, loginVO, "登录成功")
}

// Me 获取当前用户资料
// @Summary      获取当前用户资料
// @Description  返回令牌对应用户的资料
// @Tags         auth (认证)
// @Produce      json
// @Success      200 {object} vo.UserResponseWrapper "获取成功"
// @Failure      401 {object} vo.BaseResponseWrapper "未认证"
// @Router       /api/v1/auth/me [get]
// @Security     BearerAuth
func (ctrl *AuthController) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "需要登录")
		return
	}

	actorID, actorRole := currentActor(c)
	userVO, err := ctrl.userService.GetUserByID(c.Request.Context(), userID, actorID, actorRole)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, userVO, "当前用户获取成功")
}

// RegisterRoutes 注册 AuthController 的路由
func (ctrl *AuthController) RegisterRoutes(public, authed *gin.RouterGroup) {
	authGroup := public.Group("/auth")
	{
		authGroup.POST("/register", ctrl.Register)
		authGroup.POST("/login", ctrl.Login)
	}
	authed.GET("/auth/me", ctrl.Me)
}
