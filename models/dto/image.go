package dto

import "github.com/Xushengqwer/camera_service/models/enums"

// UploadEquipmentImageRequest 定义了上传器材图片时随表单提交的元数据。
// 图片文件本身通过 multipart form 的 file 字段上传。
type UploadEquipmentImageRequest struct {
	TargetType   enums.TargetType `form:"target_type" binding:"required"`     // 目标类型：camera / lens
	TargetID     uint64           `form:"target_id" binding:"required,gt=0"`  // 目标ID
	DisplayOrder int              `form:"display_order" binding:"omitempty,gte=0"` // 展示顺序，越小越靠前
}

// ListEquipmentImagesRequest 按目标查询图片列表
type ListEquipmentImagesRequest struct {
	TargetType enums.TargetType `form:"target_type" binding:"required"`
	TargetID   uint64           `form:"target_id" binding:"required,gt=0"`
}
