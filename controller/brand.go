package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// BrandController 定义品牌控制器的结构体
type BrandController struct {
	brandService service.BrandService
}

// NewBrandController 构造函数，用于创建 BrandController 实例
func NewBrandController(brandService service.BrandService) *BrandController {
	return &BrandController{brandService: brandService}
}

// CreateBrand 创建品牌
// @Summary      创建品牌
// @Description  创建一个新的相机品牌，名称全局唯一；可同时建立卡口关联，主关联默认为列表首个
// @Tags         brands (品牌)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBrandRequest true "品牌信息"
// @Success      200 {object} vo.BrandResponseWrapper "创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      409 {object} vo.BaseResponseWrapper "品牌名称已被占用"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/admin/brands [post]
func (ctrl *BrandController) CreateBrand(c *gin.Context) {
	var req dto.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	brandVO, err := ctrl.brandService.CreateBrand(c.Request.Context(), &req, currentUserIDPtr(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, brandVO, "品牌创建成功")
}

// GetBrand 获取品牌详情
// @Summary      获取品牌详情
// @Description  按ID获取品牌信息，包含其卡口关联列表
// @Tags         brands (品牌)
// @Produce      json
// @Param        id path uint64 true "品牌ID" minimum(1)
// @Success      200 {object} vo.BrandResponseWrapper "获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的品牌ID"
// @Failure      404 {object} vo.BaseResponseWrapper "品牌不存在"
// @Router       /api/v1/brands/{id} [get]
func (ctrl *BrandController) GetBrand(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的品牌ID")
		return
	}

	brandVO, err := ctrl.brandService.GetBrandByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, brandVO, "品牌获取成功")
}

// ListBrands 获取品牌列表
// @Summary      获取品牌列表
// @Description  分页获取品牌列表，支持按名称关键词过滤
// @Tags         brands (品牌)
// @Produce      json
// @Param        skip query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(500) default(100)
// @Param        keyword query string false "名称关键词" maxLength(100)
// @Success      200 {object} vo.ListBrandsResponseWrapper "获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Router       /api/v1/brands [get]
func (ctrl *BrandController) ListBrands(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.brandService.ListBrands(c.Request.Context(), &query)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "品牌列表获取成功")
}

// UpdateBrand 更新品牌
// @Summary      更新品牌
// @Description  部分更新品牌信息；mount_ids 缺省保持不变，空列表清空关联，非空整体替换
// @Tags         brands (品牌)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "品牌ID" minimum(1)
// @Param        request body dto.UpdateBrandRequest true "品牌更新信息"
// @Success      200 {object} vo.BrandResponseWrapper "更新成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      404 {object} vo.BaseResponseWrapper "品牌不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "品牌名称已被占用"
// @Router       /api/v1/admin/brands/{id} [put]
func (ctrl *BrandController) UpdateBrand(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的品牌ID")
		return
	}

	var req dto.UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	brandVO, err := ctrl.brandService.UpdateBrand(c.Request.Context(), id, &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, brandVO, "品牌更新成功")
}

// DeleteBrand 删除品牌
// @Summary      删除品牌
// @Description  删除品牌并清除其卡口关联记录
// @Tags         brands (品牌)
// @Produce      json
// @Param        id path uint64 true "品牌ID" minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的品牌ID"
// @Failure      404 {object} vo.BaseResponseWrapper "品牌不存在"
// @Router       /api/v1/admin/brands/{id} [delete]
func (ctrl *BrandController) DeleteBrand(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的品牌ID")
		return
	}

	if err := ctrl.brandService.DeleteBrand(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, nil, "品牌删除成功")
}

// RegisterRoutes 注册 BrandController 的路由
// - 读取公开；写操作挂在管理员分组下
func (ctrl *BrandController) RegisterRoutes(public, admin *gin.RouterGroup) {
	brands := public.Group("/brands")
	{
		brands.GET("", ctrl.ListBrands)
		brands.GET("/:id", ctrl.GetBrand)
	}

	adminBrands := admin.Group("/brands")
	{
		adminBrands.POST("", ctrl.CreateBrand)
		adminBrands.PUT("/:id", ctrl.UpdateBrand)
		adminBrands.DELETE("/:id", ctrl.DeleteBrand)
	}
}
