package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// UserController 定义用户管理控制器的结构体
type UserController struct {
	userService service.UserService
}

// NewUserController 构造函数，用于创建 UserController 实例
func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// CreateUser 创建用户 (管理员)
// @Summary      创建用户
// @Description  管理员直接创建用户，可指定角色
// @Tags         users (用户)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUserRequest true "用户信息"
// @Success      200 {object} vo.UserResponseWrapper "创建成功"
// @Failure      409 {object} vo.BaseResponseWrapper "用户名或邮箱已被占用"
// @Router       /api/v1/admin/users [post]
// @Security     BearerAuth
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	userVO, err := ctrl.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, userVO, "用户创建成功")
}

// GetUser 获取用户资料
// @Summary      获取用户资料
// @Description  按ID获取用户资料，仅本人或管理员可见
// @Tags         users (用户)
// @Produce      json
// @Param        id path uint64 true "用户ID" minimum(1)
// @Success      200 {object} vo.UserResponseWrapper "获取成功"
// @Failure      403 {object} vo.BaseResponseWrapper "无权查看"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/v1/users/{id} [get]
// @Security     BearerAuth
func (ctrl *UserController) GetUser(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的用户ID")
		return
	}

	actorID, actorRole := currentActor(c)
	userVO, err := ctrl.userService.GetUserByID(c.Request.Context(), id, actorID, actorRole)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, userVO, "用户获取成功")
}

// ListUsers 获取用户列表 (管理员)
// @Summary      获取用户列表
// @Description  分页获取用户列表，支持按用户名关键词过滤
// @Tags         users (用户)
// @Produce      json
// @Param        skip query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(500) default(100)
// @Param        keyword query string false "用户名关键词" maxLength(100)
// @Success      200 {object} vo.ListUsersResponseWrapper "获取成功"
// @Router       /api/v1/admin/users [get]
// @Security     BearerAuth
func (ctrl *UserController) ListUsers(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.userService.ListUsers(c.Request.Context(), &query)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "用户列表获取成功")
}

// UpdateUser 更新用户资料
// @Summary      更新用户资料
// @Description  部分更新用户资料；本人可改密码与资料字段，角色与启用状态仅管理员可改
// @Tags         users (用户)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "用户ID" minimum(1)
// @Param        request body dto.UpdateUserRequest true "用户更新信息"
// @Success      200 {object} vo.UserResponseWrapper "更新成功"
// @Failure      403 {object} vo.BaseResponseWrapper "无权修改"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/v1/users/{id} [put]
// @Security     BearerAuth
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的用户ID")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	actorID, actorRole := currentActor(c)
	userVO, err := ctrl.userService.UpdateUser(c.Request.Context(), id, &req, actorID, actorRole)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, userVO, "用户更新成功")
}

// DeleteUser 删除用户 (管理员)
// @Summary      删除用户
// @Description  管理员删除用户账号；不能删除当前登录的账号
// @Tags         users (用户)
// @Produce      json
// @Param        id path uint64 true "用户ID" minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "用户不存在"
// @Router       /api/v1/admin/users/{id} [delete]
// @Security     BearerAuth
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的用户ID")
		return
	}

	actorID, _ := currentActor(c)
	if err := ctrl.userService.DeleteUser(c.Request.Context(), id, actorID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, nil, "用户删除成功")
}

// RegisterRoutes 注册 UserController 的路由
// - 资料读写要求登录（本人或管理员规则在服务层裁决），列表/直建/删除挂在管理员分组下
func (ctrl *UserController) RegisterRoutes(authed, admin *gin.RouterGroup) {
	users := authed.Group("/users")
	{
		users.GET("/:id", ctrl.GetUser)
		users.PUT("/:id", ctrl.UpdateUser)
	}

	adminUsers := admin.Group("/users")
	{
		adminUsers.GET("", ctrl.ListUsers)
		adminUsers.POST("", ctrl.CreateUser)
		adminUsers.DELETE("/:id", ctrl.DeleteUser)
	}
}
