package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// CategoryController 定义文章分类控制器的结构体
type CategoryController struct {
	categoryService service.CategoryService
}

// NewCategoryController 构造函数，用于创建 CategoryController 实例
func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Description  创建文章分类，名称与别名全局唯一，可指定父分类形成树形结构
// @Tags         categories (分类)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      200 {object} vo.CategoryResponseWrapper "创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数 / 父分类不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "名称或别名已被占用"
// @Router       /api/v1/admin/categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	categoryVO, err := ctrl.categoryService.CreateCategory(c.Request.Context(), &req, currentUserIDPtr(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, categoryVO, "分类创建成功")
}

// GetCategory 获取分类详情
// @Summary      获取分类详情
// @Tags         categories (分类)
// @Produce      json
// @Param        id path uint64 true "分类ID" minimum(1)
// @Success      200 {object} vo.CategoryResponseWrapper "获取成功"
// @Failure      404 {object} vo.BaseResponseWrapper "分类不存在"
// @Router       /api/v1/categories/{id} [get]
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的分类ID")
		return
	}

	categoryVO, err := ctrl.categoryService.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, categoryVO, "分类获取成功")
}

// ListCategories 获取分类列表
// @Summary      获取分类列表
// @Description  分页获取分类列表，支持按名称关键词过滤
// @Tags         categories (分类)
// @Produce      json
// @Param        skip query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(500) default(100)
// @Param        keyword query string false "名称关键词" maxLength(100)
// @Success      200 {object} vo.ListCategoriesResponseWrapper "获取成功"
// @Router       /api/v1/categories [get]
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.categoryService.ListCategories(c.Request.Context(), &query)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "分类列表获取成功")
}

// UpdateCategory 更新分类
// @Summary      更新分类
// @Description  部分更新分类；parent_id 传 null 提升为顶级分类，指向自身或后代会被拒绝
// @Tags         categories (分类)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "分类ID" minimum(1)
// @Param        request body dto.UpdateCategoryRequest true "分类更新信息"
// @Success      200 {object} vo.CategoryResponseWrapper "更新成功"
// @Failure      400 {object} vo.BaseResponseWrapper "父指针会形成环"
// @Failure      404 {object} vo.BaseResponseWrapper "分类不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "名称或别名已被占用"
// @Router       /api/v1/admin/categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的分类ID")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	categoryVO, err := ctrl.categoryService.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, categoryVO, "分类更新成功")
}

// DeleteCategory 删除分类
// @Summary      删除分类
// @Description  删除分类；子分类整体挂接到其父分类下，引用的文章移出分类
// @Tags         categories (分类)
// @Produce      json
// @Param        id path uint64 true "分类ID" minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "分类不存在"
// @Router       /api/v1/admin/categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的分类ID")
		return
	}

	if err := ctrl.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, nil, "分类删除成功")
}

// RegisterRoutes 注册 CategoryController 的路由
func (ctrl *CategoryController) RegisterRoutes(public, admin *gin.RouterGroup) {
	categories := public.Group("/categories")
	{
		categories.GET("", ctrl.ListCategories)
		categories.GET("/:id", ctrl.GetCategory)
	}

	adminCategories := admin.Group("/categories")
	{
		adminCategories.POST("", ctrl.CreateCategory)
		adminCategories.PUT("/:id", ctrl.UpdateCategory)
		adminCategories.DELETE("/:id", ctrl.DeleteCategory)
	}
}
