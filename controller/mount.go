package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// MountController 定义卡口控制器的结构体
type MountController struct {
	mountService service.MountService
}

// NewMountController 构造函数，用于创建 MountController 实例
func NewMountController(mountService service.MountService) *MountController {
	return &MountController{mountService: mountService}
}

// CreateMount 创建卡口
// @Summary      创建卡口
// @Description  创建一个新的镜头卡口，名称全局唯一；可同时建立品牌关联
// @Tags         mounts (卡口)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateMountRequest true "卡口信息"
// @Success      200 {object} vo.MountResponseWrapper "创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      409 {object} vo.BaseResponseWrapper "卡口名称已被占用"
// @Router       /api/v1/admin/mounts [post]
func (ctrl *MountController) CreateMount(c *gin.Context) {
	var req dto.CreateMountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	mountVO, err := ctrl.mountService.CreateMount(c.Request.Context(), &req, currentUserIDPtr(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, mountVO, "卡口创建成功")
}

// GetMount 获取卡口详情
// @Summary      获取卡口详情
// @Description  按ID获取卡口信息，包含其品牌关联列表
// @Tags         mounts (卡口)
// @Produce      json
// @Param        id path uint64 true "卡口ID" minimum(1)
// @Success      200 {object} vo.MountResponseWrapper "获取成功"
// @Failure      404 {object} vo.BaseResponseWrapper "卡口不存在"
// @Router       /api/v1/mounts/{id} [get]
func (ctrl *MountController) GetMount(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的卡口ID")
		return
	}

	mountVO, err := ctrl.mountService.GetMountByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, mountVO, "卡口获取成功")
}

// ListMounts 获取卡口列表
// @Summary      获取卡口列表
// @Description  分页获取卡口列表，支持按名称关键词过滤
// @Tags         mounts (卡口)
// @Produce      json
// @Param        skip query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(500) default(100)
// @Param        keyword query string false "名称关键词" maxLength(100)
// @Success      200 {object} vo.ListMountsResponseWrapper "获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Router       /api/v1/mounts [get]
func (ctrl *MountController) ListMounts(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.mountService.ListMounts(c.Request.Context(), &query)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "卡口列表获取成功")
}

// UpdateMount 更新卡口
// @Summary      更新卡口
// @Description  部分更新卡口信息；brand_ids 缺省保持不变，空列表清空关联，非空整体替换
// @Tags         mounts (卡口)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "卡口ID" minimum(1)
// @Param        request body dto.UpdateMountRequest true "卡口更新信息"
// @Success      200 {object} vo.MountResponseWrapper "更新成功"
// @Failure      404 {object} vo.BaseResponseWrapper "卡口不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "卡口名称已被占用"
// @Router       /api/v1/admin/mounts/{id} [put]
func (ctrl *MountController) UpdateMount(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的卡口ID")
		return
	}

	var req dto.UpdateMountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	mountVO, err := ctrl.mountService.UpdateMount(c.Request.Context(), id, &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, mountVO, "卡口更新成功")
}

// DeleteMount 删除卡口
// @Summary      删除卡口
// @Description  删除卡口；同时清除品牌关联与镜头关联，引用它的相机置为无卡口
// @Tags         mounts (卡口)
// @Produce      json
// @Param        id path uint64 true "卡口ID" minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "卡口不存在"
// @Router       /api/v1/admin/mounts/{id} [delete]
func (ctrl *MountController) DeleteMount(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的卡口ID")
		return
	}

	if err := ctrl.mountService.DeleteMount(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, nil, "卡口删除成功")
}

// RegisterRoutes 注册 MountController 的路由
func (ctrl *MountController) RegisterRoutes(public, admin *gin.RouterGroup) {
	mounts := public.Group("/mounts")
	{
		mounts.GET("", ctrl.ListMounts)
		mounts.GET("/:id", ctrl.GetMount)
	}

	adminMounts := admin.Group("/mounts")
	{
		adminMounts.POST("", ctrl.CreateMount)
		adminMounts.PUT("/:id", ctrl.UpdateMount)
		adminMounts.DELETE("/:id", ctrl.DeleteMount)
	}
}
