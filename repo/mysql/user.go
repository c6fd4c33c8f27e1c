package mysql

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/core"
)

// UserRepository 定义了用户数据在 MySQL 中的持久化操作接口。
type UserRepository interface {
	// CreateUser 持久化一个新的用户记录。
	CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error

	// GetUserByID 根据 ID 检索用户，未找到时返回 myErrors.ErrRecordNotFound。
	GetUserByID(ctx context.Context, id uint64) (*entities.User, error)

	// GetUserByUsername 按用户名精确检索用户，登录与唯一性预检依赖它。
	GetUserByUsername(ctx context.Context, username string) (*entities.User, error)

	// GetUserByEmail 按邮箱精确检索用户，用于唯一性预检。
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)

	// ListUsers 分页查询用户列表，keyword 非空时对 username / email 做模糊匹配。
	ListUsers(ctx context.Context, keyword string, offset, limit int) ([]*entities.User, int64, error)

	// UpdateUserFields 按字段映射更新用户。
	UpdateUserFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error

	// UpdateLastLogin 记录最近登录时间，独立于其他字段更新。
	UpdateLastLogin(ctx context.Context, id uint64, loginAt time.Time) error

	// DeleteUser 物理删除用户行。
	DeleteUser(ctx context.Context, db *gorm.DB, id uint64) error
}

type userRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewUserRepository 是 userRepository 的构造函数。
func NewUserRepository(db *gorm.DB, logger *core.ZapLogger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error {
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("查询用户失败", zap.Error(err), zap.Uint64("userID", id))
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按用户名查询用户失败", zap.Error(err), zap.String("username", username))
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, myErrors.ErrRecordNotFound
		}
		r.logger.Error("按邮箱查询用户失败", zap.Error(err), zap.String("email", email))
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListUsers(ctx context.Context, keyword string, offset, limit int) ([]*entities.User, int64, error) {
	var (
		users []*entities.User
		total int64
	)

	query := r.db.WithContext(ctx).Model(&entities.User{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("统计用户总数失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		r.logger.Error("查询用户列表失败", zap.Error(err), zap.String("keyword", keyword))
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) UpdateUserFields(ctx context.Context, db *gorm.DB, id uint64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新用户", zap.Uint64("userID", id))
		return nil
	}

	result := db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.Error("更新用户数据库操作失败", zap.Error(result.Error), zap.Uint64("userID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uint64, loginAt time.Time) error {
	// 登录时间属于旁路信息，失败只记日志不阻断登录流程，由调用方决定。
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", id).
		Update("last_login", loginAt).Error
}

func (r *userRepository) DeleteUser(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Delete(&entities.User{}, id)
	if result.Error != nil {
		r.logger.Error("删除用户失败", zap.Error(result.Error), zap.Uint64("userID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return myErrors.ErrRecordNotFound
	}
	return nil
}
