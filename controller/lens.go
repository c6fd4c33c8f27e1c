package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// LensController 定义镜头控制器的结构体
type LensController struct {
	lensService service.LensService
}

// NewLensController 构造函数，用于创建 LensController 实例
func NewLensController(lensService service.LensService) *LensController {
	return &LensController{lensService: lensService}
}

// CreateLens 创建镜头
// @Summary      创建镜头
// @Description  创建一条镜头记录并建立卡口关联；卡口ID统一校验，任一无效则整体失败
// @Tags         lenses (镜头)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLensRequest true "镜头信息"
// @Success      200 {object} vo.LensResponseWrapper "创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数 / 引用不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "镜头型号已被占用"
// @Router       /api/v1/admin/lenses [post]
func (ctrl *LensController) CreateLens(c *gin.Context) {
	var req dto.CreateLensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	lensVO, err := ctrl.lensService.CreateLens(c.Request.Context(), &req, currentUserIDPtr(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, lensVO, "镜头创建成功")
}

// GetLens 获取镜头详情
// @Summary      获取镜头详情
// @Description  按ID获取镜头信息，包含兼容卡口ID列表与评分聚合字段
// @Tags         lenses (镜头)
// @Produce      json
// @Param        id path uint64 true "镜头ID" minimum(1)
// @Success      200 {object} vo.LensResponseWrapper "获取成功"
// @Failure      404 {object} vo.BaseResponseWrapper "镜头不存在"
// @Router       /api/v1/lenses/{id} [get]
func (ctrl *LensController) GetLens(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的镜头ID")
		return
	}

	lensVO, err := ctrl.lensService.GetLensByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, lensVO, "镜头获取成功")
}

// ListLenses 获取镜头列表
// @Summary      获取镜头列表
// @Description  分页获取镜头列表，支持按型号关键词、品牌、兼容卡口过滤
// @Tags         lenses (镜头)
// @Produce      json
// @Param        skip query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(500) default(100)
// @Param        keyword query string false "型号关键词" maxLength(100)
// @Param        brand_id query uint64 false "按品牌过滤" minimum(1)
// @Param        mount_id query uint64 false "按兼容卡口过滤" minimum(1)
// @Success      200 {object} vo.ListLensesResponseWrapper "获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Router       /api/v1/lenses [get]
func (ctrl *LensController) ListLenses(c *gin.Context) {
	var req dto.ListLensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.lensService.ListLenses(c.Request.Context(), &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "镜头列表获取成功")
}

// UpdateLens 更新镜头
// @Summary      更新镜头
// @Description  部分更新镜头信息；mount_ids 缺省保持不变，空列表清空关联，非空整体替换
// @Tags         lenses (镜头)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "镜头ID" minimum(1)
// @Param        request body dto.UpdateLensRequest true "镜头更新信息"
// @Success      200 {object} vo.LensResponseWrapper "更新成功"
// @Failure      404 {object} vo.BaseResponseWrapper "镜头不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "镜头型号已被占用"
// @Router       /api/v1/admin/lenses/{id} [put]
func (ctrl *LensController) UpdateLens(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的镜头ID")
		return
	}

	var req dto.UpdateLensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	lensVO, err := ctrl.lensService.UpdateLens(c.Request.Context(), id, &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, lensVO, "镜头更新成功")
}

// DeleteLens 删除镜头
// @Summary      删除镜头
// @Description  删除镜头；同一事务中清除卡口关联、图片、评分与评论记录
// @Tags         lenses (镜头)
// @Produce      json
// @Param        id path uint64 true "镜头ID" minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "镜头不存在"
// @Router       /api/v1/admin/lenses/{id} [delete]
func (ctrl *LensController) DeleteLens(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的镜头ID")
		return
	}

	if err := ctrl.lensService.DeleteLens(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, nil, "镜头删除成功")
}

// RegisterRoutes 注册 LensController 的路由
func (ctrl *LensController) RegisterRoutes(public, admin *gin.RouterGroup) {
	lenses := public.Group("/lenses")
	{
		lenses.GET("", ctrl.ListLenses)
		lenses.GET("/:id", ctrl.GetLens)
	}

	adminLenses := admin.Group("/lenses")
	{
		adminLenses.POST("", ctrl.CreateLens)
		adminLenses.PUT("/:id", ctrl.UpdateLens)
		adminLenses.DELETE("/:id", ctrl.DeleteLens)
	}
}
