package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// TagController 定义文章标签控制器的结构体
type TagController struct {
	tagService service.TagService
}

// NewTagController 构造函数，用于创建 TagController 实例
func NewTagController(tagService service.TagService) *TagController {
	return &TagController{tagService: tagService}
}

// CreateTag 创建标签
// @Summary      创建标签
// @Description  创建文章标签，名称与别名全局唯一
// @Tags         tags (标签)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTagRequest true "标签信息"
// @Success      200 {object} vo.TagResponseWrapper "创建成功"
// @Failure      409 {object} vo.BaseResponseWrapper "名称或别名已被占用"
// @Router       /api/v1/admin/tags [post]
func (ctrl *TagController) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	tagVO, err := ctrl.tagService.CreateTag(c.Request.Context(), &req, currentUserIDPtr(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, tagVO, "标签创建成功")
}

// GetTag 获取标签详情
// @Summary      获取标签详情
// @Tags         tags (标签)
// @Produce      json
// @Param        id path uint64 true "标签ID" minimum(1)
// @Success      200 {object} vo.TagResponseWrapper "获取成功"
// @Failure      404 {object} vo.BaseResponseWrapper "标签不存在"
// @Router       /api/v1/tags/{id} [get]
func (ctrl *TagController) GetTag(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的标签ID")
		return
	}

	tagVO, err := ctrl.tagService.GetTagByID(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, tagVO, "标签获取成功")
}

// ListTags 获取标签列表
// @Summary      获取标签列表
// @Description  分页获取标签列表，支持按名称关键词过滤
// @Tags         tags (标签)
// @Produce      json
// @Param        skip query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(500) default(100)
// @Param        keyword query string false "名称关键词" maxLength(100)
// @Success      200 {object} vo.ListTagsResponseWrapper "获取成功"
// @Router       /api/v1/tags [get]
func (ctrl *TagController) ListTags(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.tagService.ListTags(c.Request.Context(), &query)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "标签列表获取成功")
}

// UpdateTag 更新标签
// @Summary      更新标签
// @Tags         tags (标签)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "标签ID" minimum(1)
// @Param        request body dto.UpdateTagRequest true "标签更新信息"
// @Success      200 {object} vo.TagResponseWrapper "更新成功"
// @Failure      404 {object} vo.BaseResponseWrapper "标签不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "名称或别名已被占用"
// @Router       /api/v1/admin/tags/{id} [put]
func (ctrl *TagController) UpdateTag(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的标签ID")
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	tagVO, err := ctrl.tagService.UpdateTag(c.Request.Context(), id, &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, tagVO, "标签更新成功")
}

// DeleteTag 删除标签
// @Summary      删除标签
// @Description  删除标签；仍被文章引用时返回冲突
// @Tags         tags (标签)
// @Produce      json
// @Param        id path uint64 true "标签ID" minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "标签不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "标签仍被文章引用"
// @Router       /api/v1/admin/tags/{id} [delete]
func (ctrl *TagController) DeleteTag(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的标签ID")
		return
	}

	if err := ctrl.tagService.DeleteTag(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, nil, "标签删除成功")
}

// RegisterRoutes 注册 TagController 的路由
func (ctrl *TagController) RegisterRoutes(public, admin *gin.RouterGroup) {
	tags := public.Group("/tags")
	{
		tags.GET("", ctrl.ListTags)
		tags.GET("/:id", ctrl.GetTag)
	}

	adminTags := admin.Group("/tags")
	{
		adminTags.POST("", ctrl.CreateTag)
		adminTags.PUT("/:id", ctrl.UpdateTag)
		adminTags.DELETE("/:id", ctrl.DeleteTag)
	}
}
