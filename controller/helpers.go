package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/pkg/middleware"
)

// parseIDParam 解析路径中的数字ID，返回 0 表示解析失败（合法ID从1开始）。
func parseIDParam(c *gin.Context, name string) uint64 {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// currentActor 取出当前调用方的身份。
// 匿名请求返回 (0, RoleUser)，交由服务层的权限规则处理。
func currentActor(c *gin.Context) (uint64, enums.UserRole) {
	actorID, _ := middleware.CurrentUserID(c)
	actorRole, ok := middleware.CurrentUserRole(c)
	if !ok {
		actorRole = enums.RoleUser
	}
	return actorID, actorRole
}

// currentUserIDPtr 以指针形式返回当前用户ID，匿名时为 nil，用于 created_by 记录。
func currentUserIDPtr(c *gin.Context) *uint64 {
	if id, ok := middleware.CurrentUserID(c); ok {
		return &id
	}
	return nil
}
