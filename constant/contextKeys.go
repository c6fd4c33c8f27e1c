package constant

// gin.Context 中存放认证信息的 Key。
// 认证中间件解析 JWT 后写入，控制器与服务层只读。
const (
	// ContextKeyUserID 对应的值类型为 uint64
	ContextKeyUserID = "auth_user_id"
	// ContextKeyUserRole 对应的值类型为 enums.UserRole
	ContextKeyUserRole = "auth_user_role"
)
