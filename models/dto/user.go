package dto

import "github.com/Xushengqwer/camera_service/models/enums"

// RegisterRequest 定义了用户注册的请求数据结构
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"` // 用户名，必填，全局唯一
	Email    string `json:"email" binding:"required,email,max=100"`   // 邮箱，必填，全局唯一
	Password string `json:"password" binding:"required,min=8,max=72"` // 明文密码，仅存 bcrypt 散列
	FullName string `json:"full_name" binding:"omitempty,max=100"`    // 全名，可选
}

// LoginRequest 定义了用户登录的请求数据结构
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=72"`
}

// CreateUserRequest 管理员直接创建用户（可指定角色）
type CreateUserRequest struct {
	Username string         `json:"username" binding:"required,min=3,max=50"`
	Email    string         `json:"email" binding:"required,email,max=100"`
	Password string         `json:"password" binding:"required,min=8,max=72"`
	Role     enums.UserRole `json:"role" binding:"omitempty"` // 缺省为普通用户
	FullName string         `json:"full_name" binding:"omitempty,max=100"`
}

// UpdateUserRequest 定义了部分更新用户资料的请求数据结构。
// 用户名、邮箱不可修改；角色与启用状态仅管理员可改，由 service 层裁决。
type UpdateUserRequest struct {
	Password  *string                  `json:"password" binding:"omitempty,min=8,max=72"`
	FullName  Optional[string]         `json:"full_name"`
	AvatarURL Optional[string]         `json:"avatar_url"`
	Bio       Optional[string]         `json:"bio"`
	Role      *enums.UserRole          `json:"role" binding:"omitempty"`
	IsActive  *bool                    `json:"is_active" binding:"omitempty"`
}
