package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/myErrors"
)

// ErrorCode 是响应体中机器可读的业务码。
type ErrorCode int

const (
	CodeSuccess ErrorCode = 0

	// 客户端类错误 (1xxx)
	ErrCodeClientInvalidInput     ErrorCode = 1001 // 参数非法 / 外键无法解析
	ErrCodeClientUnauthorized     ErrorCode = 1002 // 未认证或凭证无效
	ErrCodeClientForbidden        ErrorCode = 1003 // 已认证但无权限
	ErrCodeClientResourceNotFound ErrorCode = 1004 // 资源不存在
	ErrCodeClientConflict         ErrorCode = 1005 // 唯一性冲突

	// 服务端类错误 (2xxx)
	ErrCodeServerInternal ErrorCode = 2001
)

// APIResponse 是统一的响应信封。
type APIResponse struct {
	Code    ErrorCode   `json:"code"`           // 业务码，0 表示成功
	Message string      `json:"message"`        // 可读信息
	Data    interface{} `json:"data,omitempty"` // 业务数据
}

// RespondSuccess 输出成功响应。
func RespondSuccess(c *gin.Context, data interface{}, message string) {
	if message == "" {
		message = "success"
	}
	c.JSON(http.StatusOK, APIResponse{Code: CodeSuccess, Message: message, Data: data})
}

// RespondError 输出失败响应并中止后续 handler。
func RespondError(c *gin.Context, httpStatus int, code ErrorCode, message string) {
	c.AbortWithStatusJSON(httpStatus, APIResponse{Code: code, Message: message})
}

// RespondServiceError 将服务层的 ServiceError 按分类映射为 HTTP 状态码后输出。
// 非 ServiceError 一律按内部错误处理，不向客户端泄露细节。
func RespondServiceError(c *gin.Context, err error) {
	se, ok := myErrors.AsServiceError(err)
	if !ok {
		RespondError(c, http.StatusInternalServerError, ErrCodeServerInternal, "内部服务器错误")
		return
	}
	switch se.Kind {
	case myErrors.KindNotFound:
		RespondError(c, http.StatusNotFound, ErrCodeClientResourceNotFound, se.Message)
	case myErrors.KindConflict:
		RespondError(c, http.StatusConflict, ErrCodeClientConflict, se.Message)
	case myErrors.KindValidation:
		RespondError(c, http.StatusBadRequest, ErrCodeClientInvalidInput, se.Message)
	case myErrors.KindForbidden:
		RespondError(c, http.StatusForbidden, ErrCodeClientForbidden, se.Message)
	case myErrors.KindUnauthenticated:
		RespondError(c, http.StatusUnauthorized, ErrCodeClientUnauthorized, se.Message)
	default:
		RespondError(c, http.StatusInternalServerError, ErrCodeServerInternal, "内部服务器错误")
	}
}
