package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Xushengqwer/camera_service/constant"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/pkg/auth"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/pkg/response"
)

// UserContextMiddleware 解析 Authorization 头并把认证主体写入 gin.Context。
// 令牌缺失或无效时不中断请求，只是不写入身份信息，
// 是否放行由路由分组上的 RequireAuth / RequireAdmin 决定。
func UserContextMiddleware(tokenManager *auth.TokenManager, logger *core.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(header, bearerPrefix) {
			c.Next()
			return
		}

		userID, role, err := tokenManager.ParseToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			// 带了令牌但解析失败，记一条日志便于排查，身份按匿名处理。
			logger.Debug("解析访问令牌失败", zap.Error(err), zap.String("path", c.Request.URL.Path))
			c.Next()
			return
		}

		c.Set(constant.ContextKeyUserID, userID)
		c.Set(constant.ContextKeyUserRole, role)
		c.Next()
	}
}

// RequireAuth 要求请求已通过认证，否则返回 401。
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(constant.ContextKeyUserID); !exists {
			response.RespondError(c, http.StatusUnauthorized,
				response.ErrCodeClientUnauthorized, "请先登录")
			return
		}
		c.Next()
	}
}

// RequireAdmin 要求请求主体具备管理员角色，否则返回 403。
// 必须叠加在 RequireAuth 之后使用。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(constant.ContextKeyUserRole)
		if !exists {
			response.RespondError(c, http.StatusUnauthorized,
				response.ErrCodeClientUnauthorized, "请先登录")
			return
		}
		if userRole, ok := role.(enums.UserRole); !ok || userRole != enums.RoleAdmin {
			response.RespondError(c, http.StatusForbidden,
				response.ErrCodeClientForbidden, "需要管理员权限")
			return
		}
		c.Next()
	}
}

// CurrentUserID 从 gin.Context 中取出认证用户ID。
// 未认证时第二个返回值为 false。
func CurrentUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(constant.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := v.(uint64)
	return userID, ok
}

// CurrentUserRole 从 gin.Context 中取出认证用户角色。
func CurrentUserRole(c *gin.Context) (enums.UserRole, bool) {
	v, exists := c.Get(constant.ContextKeyUserRole)
	if !exists {
		return "", false
	}
	role, ok := v.(enums.UserRole)
	return role, ok
}
