package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// CameraController 定义相机控制器的结构体
type CameraController struct {
	cameraService service.CameraService
}

// NewCameraController 构造函数，用于创建 CameraController 实例
func NewCameraController(cameraService service.CameraService) *CameraController {
	return &CameraController{cameraService: cameraService}
}

// CreateCamera 创建相机
// @Summary      创建相机
// @Description  创建一条相机记录；品牌必填且必须存在，卡口可选，型号为应用层唯一约束
// @Tags         cameras (相机)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCameraRequest true "相机信息"
// @Success      200 {object} vo.CameraResponseWrapper "创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数 / 引用不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "相机型号已被占用"
// @Router       /api/v1/admin/cameras [post]
func (ctrl *CameraController) CreateCamera(c *gin.Context) {
	var req dto.CreateCameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	cameraVO, err := ctrl.cameraService.CreateCamera(c.Request.Context(), &req, currentUserIDPtr(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, cameraVO, "相机创建成功")
}

// GetCamera 获取相机详情
// @Summary      获取相机详情
// @Description  按ID获取相机信息，包含评分聚合字段
// @Tags         cameras (相机)
// @Produce      json
// @Param        id path uint64 true "相机ID" minimum(1)
// @Success      200 {object} vo.CameraResponseWrapper "获取成功"
// @Failure      404 {object} vo.BaseResponseWrapper "相机不存在"
// @Router       /api/v1/cameras/{id} [get]
func (ctrl *CameraController) GetCamera(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的相机ID")
		return
	}

	cameraVO, err := ctrl.cameraService.GetCameraByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, cameraVO, "相机获取成功")
}

// ListCameras 获取相机列表
// @Summary      获取相机列表
// @Description  分页获取相机列表，支持按型号关键词、品牌、卡口过滤
// @Tags         cameras (相机)
// @Produce      json
// @Param        skip query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(500) default(100)
// @Param        keyword query string false "型号关键词" maxLength(100)
// @Param        brand_id query uint64 false "按品牌过滤" minimum(1)
// @Param        mount_id query uint64 false "按卡口过滤" minimum(1)
// @Success      200 {object} vo.ListCamerasResponseWrapper "获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Router       /api/v1/cameras [get]
func (ctrl *CameraController) ListCameras(c *gin.Context) {
	var req dto.ListCamerasRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.cameraService.ListCameras(c.Request.Context(), &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "相机列表获取成功")
}

// UpdateCamera 更新相机
// @Summary      更新相机
// @Description  部分更新相机信息；mount_id 传 null 表示解除卡口关联，评分聚合字段不可修改
// @Tags         cameras (相机)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "相机ID" minimum(1)
// @Param        request body dto.UpdateCameraRequest true "相机更新信息"
// @Success      200 {object} vo.CameraResponseWrapper "更新成功"
// @Failure      404 {object} vo.BaseResponseWrapper "相机不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "相机型号已被占用"
// @Router       /api/v1/admin/cameras/{id} [put]
func (ctrl *CameraController) UpdateCamera(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的相机ID")
		return
	}

	var req dto.UpdateCameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	cameraVO, err := ctrl.cameraService.UpdateCamera(c.Request.Context(), id, &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, cameraVO, "相机更新成功")
}

// DeleteCamera 删除相机
// @Summary      删除相机
// @Description  删除相机；同一事务中删除其图片、评分与评论记录
// @Tags         cameras (相机)
// @Produce      json
// @Param        id path uint64 true "相机ID" minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "相机不存在"
// @Router       /api/v1/admin/cameras/{id} [delete]
func (ctrl *CameraController) DeleteCamera(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的相机ID")
		return
	}

	if err := ctrl.cameraService.DeleteCamera(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, nil, "相机删除成功")
}

// RegisterRoutes 注册 CameraController 的路由
func (ctrl *CameraController) RegisterRoutes(public, admin *gin.RouterGroup) {
	cameras := public.Group("/cameras")
	{
		cameras.GET("", ctrl.ListCameras)
		cameras.GET("/:id", ctrl.GetCamera)
	}

	adminCameras := admin.Group("/cameras")
	{
		adminCameras.POST("", ctrl.CreateCamera)
		adminCameras.PUT("/:id", ctrl.UpdateCamera)
		adminCameras.DELETE("/:id", ctrl.DeleteCamera)
	}
}
