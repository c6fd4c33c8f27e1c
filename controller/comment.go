package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/middleware"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// CommentController 定义评论控制器的结构体
type CommentController struct {
	commentService service.CommentService
}

// NewCommentController 构造函数，用于创建 CommentController 实例
func NewCommentController(commentService service.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// CreateComment 发表评论
// @Summary      发表评论
// @Description  对文章、相机或镜头发表评论，可通过 parent_id 回复已有评论
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCommentRequest true "评论信息"
// @Success      200 {object} vo.CommentResponseWrapper "发表成功"
// @Failure      400 {object} vo.BaseResponseWrapper "目标不存在 / 父评论不属于同一目标"
// @Router       /api/v1/comments [post]
// @Security     BearerAuth
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	authorID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "需要登录")
		return
	}

	commentVO, err := ctrl.commentService.CreateComment(c.Request.Context(), &req, authorID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, commentVO, "评论发表成功")
}

// ListComments 获取评论列表
// @Summary      获取评论列表
// @Description  按目标分页获取评论；非管理员只能看到审核通过的评论
// @Tags         comments (评论)
// @Produce      json
// @Param        target_type query string true "目标类型" Enums(article,camera,lens)
// @Param        target_id query uint64 true "目标ID" minimum(1)
// @Param        skip query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(500) default(100)
// @Success      200 {object} vo.ListCommentsResponseWrapper "获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Router       /api/v1/comments [get]
func (ctrl *CommentController) ListComments(c *gin.Context) {
	var req dto.ListCommentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	_, actorRole := currentActor(c)
	listVO, err := ctrl.commentService.ListComments(c.Request.Context(), &req, actorRole)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "评论列表获取成功")
}

// UpdateComment 修改评论
// @Summary      修改评论
// @Description  内容仅作者本人可改，审核状态仅管理员可改
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "评论ID" minimum(1)
// @Param        request body dto.UpdateCommentRequest true "评论更新信息"
// @Success      200 {object} vo.CommentResponseWrapper "修改成功"
// @Failure      403 {object} vo.BaseResponseWrapper "无权修改"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Router       /api/v1/comments/{id} [put]
// @Security     BearerAuth
func (ctrl *CommentController) UpdateComment(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的评论ID")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	actorID, actorRole := currentActor(c)
	commentVO, err := ctrl.commentService.UpdateComment(c.Request.Context(), id, &req, actorID, actorRole)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, commentVO, "评论修改成功")
}

// DeleteComment 删除评论
// @Summary      删除评论
// @Description  删除评论，仅作者或管理员可操作；其回复整体挂接到被删评论的父评论下
// @Tags         comments (评论)
// @Produce      json
// @Param        id path uint64 true "评论ID" minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      403 {object} vo.BaseResponseWrapper "无权删除"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Router       /api/v1/comments/{id} [delete]
// @Security     BearerAuth
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的评论ID")
		return
	}

	actorID, actorRole := currentActor(c)
	if err := ctrl.commentService.DeleteComment(c.Request.Context(), id, actorID, actorRole); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, nil, "评论删除成功")
}

// RegisterRoutes 注册 CommentController 的路由
func (ctrl *CommentController) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/comments", ctrl.ListComments)

	comments := authed.Group("/comments")
	{
		comments.POST("", ctrl.CreateComment)
		comments.PUT("/:id", ctrl.UpdateComment)
		comments.DELETE("/:id", ctrl.DeleteComment)
	}
}
