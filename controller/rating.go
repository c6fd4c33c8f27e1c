package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/middleware"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// RatingController 定义评分控制器的结构体
type RatingController struct {
	ratingService service.RatingService
}

// NewRatingController 构造函数，用于创建 RatingController 实例
func NewRatingController(ratingService service.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// CreateRating 发表评分
// @Summary      发表评分
// @Description  对相机或镜头打分 (1~5)；同一用户对同一目标只能评一次，目标的评分聚合随事务更新
// @Tags         ratings (评分)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateRatingRequest true "评分信息"
// @Success      200 {object} vo.RatingResponseWrapper "评分成功"
// @Failure      400 {object} vo.BaseResponseWrapper "目标不存在 / 类型不可评分"
// @Failure      409 {object} vo.BaseResponseWrapper "已对该目标评过分"
// @Router       /api/v1/ratings [post]
// @Security     BearerAuth
func (ctrl *RatingController) CreateRating(c *gin.Context) {
	var req dto.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "需要登录")
		return
	}

	ratingVO, err := ctrl.ratingService.CreateRating(c.Request.Context(), &req, userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, ratingVO, "评分成功")
}

// ListRatings 获取评分列表
// @Summary      获取评分列表
// @Description  按目标分页获取评分记录
// @Tags         ratings (评分)
// @Produce      json
// @Param        target_type query string true "目标类型" Enums(camera,lens)
// @Param        target_id query uint64 true "目标ID" minimum(1)
// @Param        skip query int false "偏移量" format(int32) minimum(0) default(0)
// @Param        limit query int false "每页数量" format(int32) minimum(1) maximum(500) default(100)
// @Success      200 {object} vo.ListRatingsResponseWrapper "获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Router       /api/v1/ratings [get]
func (ctrl *RatingController) ListRatings(c *gin.Context) {
	var req dto.ListRatingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	listVO, err := ctrl.ratingService.ListRatings(c.Request.Context(), &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, listVO, "评分列表获取成功")
}

// UpdateRating 修改评分
// @Summary      修改评分
// @Description  修改自己的评分或附言，目标的评分聚合随事务更新
// @Tags         ratings (评分)
// @Accept       json
// @Produce      json
// @Param        id path uint64 true "评分ID" minimum(1)
// @Param        request body dto.UpdateRatingRequest true "评分更新信息"
// @Success      200 {object} vo.RatingResponseWrapper "修改成功"
// @Failure      403 {object} vo.BaseResponseWrapper "无权修改"
// @Failure      404 {object} vo.BaseResponseWrapper "评分不存在"
// @Router       /api/v1/ratings/{id} [put]
// @Security     BearerAuth
func (ctrl *RatingController) UpdateRating(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的评分ID")
		return
	}

	var req dto.UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	actorID, actorRole := currentActor(c)
	ratingVO, err := ctrl.ratingService.UpdateRating(c.Request.Context(), id, &req, actorID, actorRole)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, ratingVO, "评分修改成功")
}

// DeleteRating 删除评分
// @Summary      删除评分
// @Description  删除自己的评分，目标的评分聚合随事务更新
// @Tags         ratings (评分)
// @Produce      json
// @Param        id path uint64 true "评分ID" minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      403 {object} vo.BaseResponseWrapper "无权删除"
// @Failure      404 {object} vo.BaseResponseWrapper "评分不存在"
// @Router       /api/v1/ratings/{id} [delete]
// @Security     BearerAuth
func (ctrl *RatingController) DeleteRating(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的评分ID")
		return
	}

	actorID, actorRole := currentActor(c)
	if err := ctrl.ratingService.DeleteRating(c.Request.Context(), id, actorID, actorRole); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, nil, "评分删除成功")
}

// RegisterRoutes 注册 RatingController 的路由
func (ctrl *RatingController) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/ratings", ctrl.ListRatings)

	ratings := authed.Group("/ratings")
	{
		ratings.POST("", ctrl.CreateRating)
		ratings.PUT("/:id", ctrl.UpdateRating)
		ratings.DELETE("/:id", ctrl.DeleteRating)
	}
}
