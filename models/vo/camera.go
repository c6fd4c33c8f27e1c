package vo

import (
	"time"

	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
)

// CameraResponse 定义了相机信息的响应数据结构
type CameraResponse struct {
	ID           uint64           `json:"id"`            // 相机ID
	Model        string           `json:"model"`         // 型号
	ModelZh      string           `json:"model_zh"`      // 中文型号
	BrandID      uint64           `json:"brand_id"`      // 所属品牌ID
	MountID      *uint64          `json:"mount_id"`      // 卡口ID，固定镜头机型为 null
	ReleaseYear  *int             `json:"release_year"`  // 发布年份
	Type         enums.CameraType `json:"type"`          // 相机类型
	SensorSize   string           `json:"sensor_size"`   // 传感器尺寸
	Megapixels   *float64         `json:"megapixels"`    // 像素 (百万)
	ISORange     string           `json:"iso_range"`     // ISO 范围
	ShutterSpeed string           `json:"shutter_speed"` // 快门速度范围
	WeightGrams  *int             `json:"weight_grams"`  // 重量（克）
	Dimensions   string           `json:"dimensions"`    // 外形尺寸
	Description  string           `json:"description"`   // 描述
	Rating       float64          `json:"rating"`        // 平均评分，保留一位小数
	RatingCount  int64            `json:"rating_count"`  // 评分数量
	CreatedAt    time.Time        `json:"created_at"`    // 创建时间
	UpdatedAt    time.Time        `json:"updated_at"`    // 更新时间
}

// ListCamerasResponse 相机列表的分页响应结构
type ListCamerasResponse struct {
	Cameras []*CameraResponse `json:"cameras"` // 当前页的相机列表
	Total   int64             `json:"total"`   // 符合条件的总记录数
}

// MapCameraToVO 将相机实体转换为响应VO
func MapCameraToVO(camera *entities.Camera) *CameraResponse {
	if camera == nil {
		return nil
	}
	return &CameraResponse{
		ID:           camera.ID,
		Model:        camera.Model,
		ModelZh:      camera.ModelZh,
		BrandID:      camera.BrandID,
		MountID:      camera.MountID,
		ReleaseYear:  camera.ReleaseYear,
		Type:         camera.Type,
		SensorSize:   camera.SensorSize,
		Megapixels:   camera.Megapixels,
		ISORange:     camera.ISORange,
		ShutterSpeed: camera.ShutterSpeed,
		WeightGrams:  camera.WeightGrams,
		Dimensions:   camera.Dimensions,
		Description:  camera.Description,
		Rating:       camera.Rating,
		RatingCount:  camera.RatingCount,
		CreatedAt:    camera.CreatedAt,
		UpdatedAt:    camera.UpdatedAt,
	}
}

// MapCamerasToVOs 将相机实体列表转换为响应VO列表
func MapCamerasToVOs(cameras []*entities.Camera) []*CameraResponse {
	if len(cameras) == 0 {
		return []*CameraResponse{} // 返回空切片而不是nil，便于前端处理
	}
	responses := make([]*CameraResponse, 0, len(cameras))
	for _, camera := range cameras {
		if camera == nil {
			continue
		}
		responses = append(responses, MapCameraToVO(camera))
	}
	return responses
}
