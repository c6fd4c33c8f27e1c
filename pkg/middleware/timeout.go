package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/pkg/response"
)

// RequestTimeoutMiddleware 给每个请求挂一个带超时的 context。
// 下游的数据库与 Redis 调用都会随 context 一起被取消；
// handler 返回后若发现超时且尚未写响应，补一个 504。
func RequestTimeoutMiddleware(logger *core.ZapLogger, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			logger.Warn("请求处理超时",
				zap.String("path", c.Request.URL.Path),
				zap.Duration("timeout", timeout),
			)
			response.RespondError(c, http.StatusGatewayTimeout,
				response.ErrCodeServerInternal, "请求处理超时")
		}
	}
}
