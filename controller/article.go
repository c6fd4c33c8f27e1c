package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/middleware"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// ArticleController 定义文章控制器的结构体
type ArticleController struct {
	articleService service.ArticleService
}

// NewArticleController 构造函数，用于创建 ArticleController 实例
func NewArticleController(articleService service.ArticleService) *ArticleController {
	return &ArticleController{articleService: articleService}
}

// CreateArticle 发布文章
// @Summary      发布文章
// @Description  创建文章，作者为当前登录用户；slug 全局唯一，状态缺省为草稿
// @Tags         articles (文章)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateArticleRequest true "文章信息"
// @Success      200 {object} vo.ArticleDetailResponseWrapper "创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数 / 引用不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "文章别名已被占用"
// @Router       /api/v1/articles [post]
// @Security     BearerAuth
func (ctrl *ArticleController) CreateArticle(c *gin.Context) {
	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	authorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "需要登录")
		return
	}

	articleVO, err := ctrl.articleService.CreateArticle(c.Request.Context(), &req, authorID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, articleVO, "文章创建成功")
}

// GetArticle 获取文章详情
// @Summary      获取文章详情
// @Description  按ID获取文章详情并记录一次浏览（同一访问者12小时内去重）；草稿与归档仅作者或管理员可见
// @Tags         articles (文章)
// @Produce      json
// @Param        id path uint64 true "文章ID" minimum(1)
// @Success      200 {object} vo.ArticleDetailResponseWrapper "获取成功"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/v1/articles/{id} [get]
func (ctrl *ArticleController) GetArticle(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的文章ID")
		return
	}

	// 浏览去重的标识：登录用户用ID，匿名用户退化为客户端IP。
	actorID, actorRole := currentActor(c)
	viewerID := c.ClientIP()
	if actorID != 0 {
		viewerID = strconv.FormatUint(actorID, 10)
	}

	articleVO, err := ctrl.articleService.GetArticleDetail(c.Request.Context(), id, viewerID, actorID, actorRole)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, articleVO, "文章获取成功")
}

// ListArticles 获取文章列表
// @Summary      获取文章列表
// @Description  分页获取文章列表；非管理员只能看到已发布文章，除非按自己的 author_id 过滤
// @Tags         articles (文章)
// @Produce      json
// @Param        skip query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(500) default(100)
// @Param        keyword query string false "标题关键词" maxLength(100)
// @Param        status query string false "状态过滤" Enums(draft,published,archived)
// @Param        category_id query uint64 false "按分类过滤" minimum(1)
// @Param        tag_id query uint64 false "按标签过滤" minimum(1)
// @Param        author_id query uint64 false "按作者过滤" minimum(1)
// @Success      200 {object} vo.ListArticlesResponseWrapper "获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Router       /api/v1/articles [get]
func (ctrl *ArticleController) ListArticles(c *gin.Context) {
	var req dto.ListArticlesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	actorID, actorRole := currentActor(c)
	listVO, err := ctrl.articleService.ListArticles(c.Request.Context(), &req, actorID, actorRole)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "文章列表获取成功")
}

// UpdateArticle 更新文章
// @Summary      更新文章
// @Description  部分更新文章，仅作者或管理员可操作；category_id 传 null 移出分类，tag_ids 空列表清空标签
// @Tags         articles (文章)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "文章ID" minimum(1)
// @Param        request body dto.UpdateArticleRequest true "文章更新信息"
// @Success      200 {object} vo.ArticleDetailResponseWrapper "更新成功"
// @Failure      403 {object} vo.BaseResponseWrapper "无权修改"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "文章别名已被占用"
// @Router       /api/v1/articles/{id} [put]
// @Security     BearerAuth
func (ctrl *ArticleController) UpdateArticle(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的文章ID")
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	actorID, actorRole := currentActor(c)
	articleVO, err := ctrl.articleService.UpdateArticle(c.Request.Context(), id, &req, actorID, actorRole)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, articleVO, "文章更新成功")
}

// DeleteArticle 删除文章
// @Summary      删除文章
// @Description  删除文章，仅作者或管理员可操作；同一事务中删除标签关联与文章下的评论
// @Tags         articles (文章)
// @Produce      json
// @Param        id path uint64 true "文章ID" minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      403 {object} vo.BaseResponseWrapper "无权删除"
// @Failure      404 {object} vo.BaseResponseWrapper "文章不存在"
// @Router       /api/v1/articles/{id} [delete]
// @Security     BearerAuth
func (ctrl *ArticleController) DeleteArticle(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的文章ID")
		return
	}

	actorID, actorRole := currentActor(c)
	if err := ctrl.articleService.DeleteArticle(c.Request.Context(), id, actorID, actorRole); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, nil, "文章删除成功")
}

// RegisterRoutes 注册 ArticleController 的路由
func (ctrl *ArticleController) RegisterRoutes(public, authed *gin.RouterGroup) {
	articles := public.Group("/articles")
	{
		articles.GET("", ctrl.ListArticles)
		articles.GET("/:id", ctrl.GetArticle)
	}

	authedArticles := authed.Group("/articles")
	{
		authedArticles.POST("", ctrl.CreateArticle)
		authedArticles.PUT("/:id", ctrl.UpdateArticle)
		authedArticles.DELETE("/:id", ctrl.DeleteArticle)
	}
}
