package entities

import (
	"time"

	"github.com/Xushengqwer/camera_service/models/enums"
)

// User 用户实体
// - 表名: users
// - PasswordHash 为 bcrypt 哈希，任何读取形态 (VO) 中都不得出现
type User struct {
	BaseModel

	// 用户名，唯一，最大长度50个字符
	Username string `gorm:"type:varchar(50);uniqueIndex;not null"`

	// 邮箱，唯一
	Email string `gorm:"type:varchar(255);uniqueIndex;not null"`

	// 密码哈希 (bcrypt)
	PasswordHash string `gorm:"type:varchar(255);not null"`

	// 角色: user / admin，默认 user
	Role enums.UserRole `gorm:"type:varchar(20);not null;default:user"`

	// 姓名
	FullName string `gorm:"type:varchar(100)"`

	// 头像 URL
	AvatarURL string `gorm:"type:varchar(255)"`

	// 个人简介
	Bio string `gorm:"type:text"`

	// 是否启用；禁用的账号无法登录
	IsActive bool `gorm:"default:true"`

	// 最近一次登录时间，登录成功后更新
	LastLogin *time.Time
}
