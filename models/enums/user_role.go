package enums

// UserRole 用户角色。存储为字符串，与原始数据保持一致 (server_default 'user')。
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// IsValid 校验角色取值。
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}
