package vo

// --- 用于成功响应且包含具体 Data 的包装器 ---

// BrandResponseWrapper 对应 response.APIResponse[vo.BrandResponse]
type BrandResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    BrandResponse `json:"data"`
}

// ListBrandsResponseWrapper 对应 response.APIResponse[vo.ListBrandsResponse]
type ListBrandsResponseWrapper struct {
	Code    int                `json:"code" example:"0"`
	Message string             `json:"message,omitempty" example:"success"`
	Data    ListBrandsResponse `json:"data"`
}

// MountResponseWrapper 对应 response.APIResponse[vo.MountResponse]
type MountResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    MountResponse `json:"data"`
}

// ListMountsResponseWrapper 对应 response.APIResponse[vo.ListMountsResponse]
type ListMountsResponseWrapper struct {
	Code    int                `json:"code" example:"0"`
	Message string             `json:"message,omitempty" example:"success"`
	Data    ListMountsResponse `json:"data"`
}

// CameraResponseWrapper 对应 response.APIResponse[vo.CameraResponse]
type CameraResponseWrapper struct {
	Code    int            `json:"code" example:"0"`
	Message string         `json:"message,omitempty" example:"success"`
	Data    CameraResponse `json:"data"`
}

// ListCamerasResponseWrapper 对应 response.APIResponse[vo.ListCamerasResponse]
type ListCamerasResponseWrapper struct {
	Code    int                 `json:"code" example:"0"`
	Message string              `json:"message,omitempty" example:"success"`
	Data    ListCamerasResponse `json:"data"`
}

// LensResponseWrapper 对应 response.APIResponse[vo.LensResponse]
type LensResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    LensResponse `json:"data"`
}

// ListLensesResponseWrapper 对应 response.APIResponse[vo.ListLensesResponse]
type ListLensesResponseWrapper struct {
	Code    int                `json:"code" example:"0"`
	Message string             `json:"message,omitempty" example:"success"`
	Data    ListLensesResponse `json:"data"`
}

// UserResponseWrapper 对应 response.APIResponse[vo.UserResponse]
type UserResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    UserResponse `json:"data"`
}

// LoginResponseWrapper 对应 response.APIResponse[vo.LoginResponse]
type LoginResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    LoginResponse `json:"data"`
}

// ListUsersResponseWrapper 对应 response.APIResponse[vo.ListUsersResponse]
type ListUsersResponseWrapper struct {
	Code    int               `json:"code" example:"0"`
	Message string            `json:"message,omitempty" example:"success"`
	Data    ListUsersResponse `json:"data"`
}

// ArticleDetailResponseWrapper 对应 response.APIResponse[vo.ArticleDetailVO]
type ArticleDetailResponseWrapper struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    ArticleDetailVO `json:"data"`
}

// ListArticlesResponseWrapper 对应 response.APIResponse[vo.ListArticlesResponse]
type ListArticlesResponseWrapper struct {
	Code    int                  `json:"code" example:"0"`
	Message string               `json:"message,omitempty" example:"success"`
	Data    ListArticlesResponse `json:"data"`
}

// CategoryResponseWrapper 对应 response.APIResponse[vo.CategoryResponse]
type CategoryResponseWrapper struct {
	Code    int              `json:"code" example:"0"`
	Message string           `json:"message,omitempty" example:"success"`
	Data    CategoryResponse `json:"data"`
}

// ListCategoriesResponseWrapper 对应 response.APIResponse[vo.ListCategoriesResponse]
type ListCategoriesResponseWrapper struct {
	Code    int                    `json:"code" example:"0"`
	Message string                 `json:"message,omitempty" example:"success"`
	Data    ListCategoriesResponse `json:"data"`
}

// TagResponseWrapper 对应 response.APIResponse[vo.TagResponse]
type TagResponseWrapper struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message,omitempty" example:"success"`
	Data    TagResponse `json:"data"`
}

// ListTagsResponseWrapper 对应 response.APIResponse[vo.ListTagsResponse]
type ListTagsResponseWrapper struct {
	Code    int              `json:"code" example:"0"`
	Message string           `json:"message,omitempty" example:"success"`
	Data    ListTagsResponse `json:"data"`
}

// CommentResponseWrapper 对应 response.APIResponse[vo.CommentResponse]
type CommentResponseWrapper struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message,omitempty" example:"success"`
	Data    CommentResponse `json:"data"`
}

// ListCommentsResponseWrapper 对应 response.APIResponse[vo.ListCommentsResponse]
type ListCommentsResponseWrapper struct {
	Code    int                  `json:"code" example:"0"`
	Message string               `json:"message,omitempty" example:"success"`
	Data    ListCommentsResponse `json:"data"`
}

// RatingResponseWrapper 对应 response.APIResponse[vo.RatingResponse]
type RatingResponseWrapper struct {
	Code    int            `json:"code" example:"0"`
	Message string         `json:"message,omitempty" example:"success"`
	Data    RatingResponse `json:"data"`
}

// ListRatingsResponseWrapper 对应 response.APIResponse[vo.ListRatingsResponse]
type ListRatingsResponseWrapper struct {
	Code    int                 `json:"code" example:"0"`
	Message string              `json:"message,omitempty" example:"success"`
	Data    ListRatingsResponse `json:"data"`
}

// EquipmentImageResponseWrapper 对应 response.APIResponse[vo.EquipmentImageVO]
type EquipmentImageResponseWrapper struct {
	Code    int              `json:"code" example:"0"`
	Message string           `json:"message,omitempty" example:"success"`
	Data    EquipmentImageVO `json:"data"`
}

// --- 用于错误响应 或 简单成功响应（只有 Code 和 Message） ---

// BaseResponseWrapper 代表一个只包含 Code 和 Message 的响应。
// 适用于错误情况（RespondError 返回时 Data 为 nil 且 omitempty）
// 或某些成功操作（如 DELETE）可能也只返回 Code 和 Message。
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`          // 成功时为 0, 错误时为具体错误码
	Message string `json:"message" example:"success"` // 成功或错误消息
}
