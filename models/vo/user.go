package vo

import (
	"time"

	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
)

// UserResponse 定义了用户信息的响应数据结构。
// 密码散列永远不随任何响应返回。
type UserResponse struct {
	ID        uint64         `json:"id"`         // 用户ID
	Username  string         `json:"username"`   // 用户名
	Email     string         `json:"email"`      // 邮箱
	Role      enums.UserRole `json:"role"`       // 角色：user / admin
	FullName  string         `json:"full_name"`  // 全名
	AvatarURL string         `json:"avatar_url"` // 头像URL
	Bio       string         `json:"bio"`        // 个人简介
	IsActive  bool           `json:"is_active"`  // 是否启用
	LastLogin *time.Time     `json:"last_login"` // 最近登录时间
	CreatedAt time.Time      `json:"created_at"` // 创建时间
	UpdatedAt time.Time      `json:"updated_at"` // 更新时间
}

// LoginResponse 登录成功的响应结构
type LoginResponse struct {
	Token     string        `json:"token"`      // JWT 访问令牌
	ExpiresAt time.Time     `json:"expires_at"` // 令牌过期时间
	User      *UserResponse `json:"user"`       // 当前用户信息
}

// ListUsersResponse 用户列表的分页响应结构
type ListUsersResponse struct {
	Users []*UserResponse `json:"users"` // 当前页的用户列表
	Total int64           `json:"total"` // 符合条件的总记录数
}

// MapUserToVO 将用户实体转换为响应VO
func MapUserToVO(user *entities.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
		IsActive:  user.IsActive,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapUsersToVOs 将用户实体列表转换为响应VO列表
func MapUsersToVOs(users []*entities.User) []*UserResponse {
	if len(users) == 0 {
		return []*UserResponse{}
	}
	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		if user == nil {
			continue
		}
		responses = append(responses, MapUserToVO(user))
	}
	return responses
}
