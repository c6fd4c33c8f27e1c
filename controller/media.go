package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/pkg/response"
	"github.com/Xushengqwer/camera_service/service"
)

// MediaController 定义器材样张图片控制器的结构体
type MediaController struct {
	mediaService service.MediaService
}

// NewMediaController 构造函数，用于创建 MediaController 实例
func NewMediaController(mediaService service.MediaService) *MediaController {
	return &MediaController{mediaService: mediaService}
}

// UploadImage 上传器材样张
// @Summary      上传器材样张
// @Description  通过 multipart form 上传一张相机或镜头的样张图片，文件字段名为 file
// @Tags         images (器材图片)
// @Accept       multipart/form-data
// @Produce      json
// @Param        target_type formData string true "目标类型" Enums(camera,lens)
// @Param        target_id formData uint64 true "目标ID" minimum(1)
// @Param        display_order formData int false "展示顺序，越小越靠前" minimum(0) default(0)
// @Param        file formData file true "图片文件"
// @Success      200 {object} vo.EquipmentImageResponseWrapper "上传成功"
// @Failure      400 {object} vo.BaseResponseWrapper "目标不存在 / 缺少图片文件"
// @Router       /api/v1/admin/images [post]
// @Security     BearerAuth
func (ctrl *MediaController) UploadImage(c *gin.Context) {
	var req dto.UploadEquipmentImageRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "缺少图片文件: "+err.Error())
		return
	}

	imageVO, err := ctrl.mediaService.UploadEquipmentImage(c.Request.Context(), &req, fileHeader)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, imageVO, "图片上传成功")
}

// ListImages 获取器材图片列表
// @Summary      获取器材图片列表
// @Description  查询某相机或镜头的全部图片，按展示顺序排列
// @Tags         images (器材图片)
// @Produce      json
// @Param        target_type query string true "目标类型" Enums(camera,lens)
// @Param        target_id query uint64 true "目标ID" minimum(1)
// @Success      200 {object} vo.EquipmentImageResponseWrapper "获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询参数"
// @Router       /api/v1/images [get]
func (ctrl *MediaController) ListImages(c *gin.Context) {
	var req dto.ListEquipmentImagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	images, err := ctrl.mediaService.ListEquipmentImages(c.Request.Context(), &req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, images, "图片列表获取成功")
}

// DeleteImage 删除器材图片
// @Summary      删除器材图片
// @Description  删除图片记录并尽力删除 COS 上的对象
// @Tags         images (器材图片)
// @Produce      json
// @Param        id path uint64 true "图片ID" minimum(1)
// @Success      200 {object} vo.BaseResponseWrapper "删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "图片不存在"
// @Router       /api/v1/admin/images/{id} [delete]
// @Security     BearerAuth
func (ctrl *MediaController) DeleteImage(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的图片ID")
		return
	}

	if err := ctrl.mediaService.DeleteEquipmentImage(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, nil, "图片删除成功")
}

// RegisterRoutes 注册 MediaController 的路由
func (ctrl *MediaController) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/images", ctrl.ListImages)

	adminImages := admin.Group("/images")
	{
		adminImages.POST("", ctrl.UploadImage)
		adminImages.DELETE("/:id", ctrl.DeleteImage)
	}
}
