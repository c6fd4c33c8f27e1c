package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/models/vo"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/repo/mysql"
)

// UserService 定义了用户管理的业务逻辑接口。
// 读取与修改受"本人或管理员"规则约束，调用方身份由控制器从请求上下文取出后传入。
type UserService interface {
	// CreateUser 管理员直接创建用户，可指定角色。
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*vo.UserResponse, error)

	// GetUserByID 查询用户资料，仅本人或管理员可见。
	GetUserByID(ctx context.Context, id uint64, actorID uint64, actorRole enums.UserRole) (*vo.UserResponse, error)

	// ListUsers 分页查询用户列表，仅管理员可用（控制器层经管理员路由保证）。
	ListUsers(ctx context.Context, query *dto.ListQuery) (*vo.ListUsersResponse, error)

	// UpdateUser 部分更新用户资料。
	// - 本人可改密码与资料字段；角色与启用状态仅管理员可改。
	UpdateUser(ctx context.Context, id uint64, req *dto.UpdateUserRequest, actorID uint64, actorRole enums.UserRole) (*vo.UserResponse, error)

	// DeleteUser 删除用户，仅管理员可用；管理员不可删除自己。
	DeleteUser(ctx context.Context, id uint64, actorID uint64) error
}

type userService struct {
	db       *gorm.DB
	userRepo mysql.UserRepository
	logger   *core.ZapLogger
}

// NewUserService 是 userService 的构造函数。
func NewUserService(db *gorm.DB, userRepo mysql.UserRepository, logger *core.ZapLogger) UserService {
	return &userService{
		db:       db,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*vo.UserResponse, error) {
	role := req.Role
	if role == "" {
		role = enums.RoleUser
	}
	if !role.IsValid() {
		return nil, myErrors.NewValidation(fmt.Sprintf("用户角色非法: %s", role))
	}
	if err := checkCredentialsUnique(ctx, s.userRepo, req.Username, req.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码散列失败", zap.Error(err))
		return nil, err
	}

	user := &entities.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     req.FullName,
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.CreateUser(ctx, tx, user)
	})
	if err != nil {
		s.logger.Error("创建用户事务失败", zap.Error(err), zap.String("username", req.Username))
		return nil, err
	}

	s.logger.Info("用户创建成功", zap.Uint64("userID", user.ID), zap.String("role", string(user.Role)))
	return vo.MapUserToVO(user), nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint64, actorID uint64, actorRole enums.UserRole) (*vo.UserResponse, error) {
	if actorID != id && actorRole != enums.RoleAdmin {
		return nil, myErrors.NewForbidden("无权查看该用户资料")
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("用户不存在: %d", id))
		}
		return nil, err
	}
	return vo.MapUserToVO(user), nil
}

func (s *userService) ListUsers(ctx context.Context, query *dto.ListQuery) (*vo.ListUsersResponse, error) {
	users, total, err := s.userRepo.ListUsers(ctx, query.Keyword, query.Skip, query.Limit)
	if err != nil {
		return nil, err
	}
	return &vo.ListUsersResponse{Users: vo.MapUsersToVOs(users), Total: total}, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint64, req *dto.UpdateUserRequest, actorID uint64, actorRole enums.UserRole) (*vo.UserResponse, error) {
	if actorID != id && actorRole != enums.RoleAdmin {
		return nil, myErrors.NewForbidden("无权修改该用户资料")
	}
	if (req.Role != nil || req.IsActive != nil) && actorRole != enums.RoleAdmin {
		return nil, myErrors.NewForbidden("角色与启用状态仅管理员可修改")
	}
	if req.Role != nil && !req.Role.IsValid() {
		return nil, myErrors.NewValidation(fmt.Sprintf("用户角色非法: %s", *req.Role))
	}

	if _, err := s.userRepo.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewNotFound(fmt.Sprintf("用户不存在: %d", id))
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("生成密码散列失败", zap.Error(err))
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}
	if req.FullName.Set {
		updates["full_name"] = req.FullName.Value
	}
	if req.AvatarURL.Set {
		updates["avatar_url"] = req.AvatarURL.Value
	}
	if req.Bio.Set {
		updates["bio"] = req.Bio.Value
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.userRepo.UpdateUserFields(ctx, tx, id, updates)
		})
		if err != nil {
			s.logger.Error("更新用户事务失败", zap.Error(err), zap.Uint64("userID", id))
			return nil, err
		}
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return vo.MapUserToVO(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint64, actorID uint64) error {
	if id == actorID {
		return myErrors.NewValidation("不能删除当前登录的账号")
	}
	if _, err := s.userRepo.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return myErrors.NewNotFound(fmt.Sprintf("用户不存在: %d", id))
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.DeleteUser(ctx, tx, id)
	})
	if err != nil {
		s.logger.Error("删除用户事务失败", zap.Error(err), zap.Uint64("userID", id))
		return err
	}

	s.logger.Info("用户删除成功", zap.Uint64("userID", id))
	return nil
}
