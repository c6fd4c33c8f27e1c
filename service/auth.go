package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/entities"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/models/vo"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/auth"
	"github.com/Xushengqwer/camera_service/pkg/core"
	"github.com/Xushengqwer/camera_service/repo/mysql"
)

// AuthService 定义了注册与登录的业务逻辑接口。
type AuthService interface {
	// Register 注册新用户，角色固定为普通用户。
	Register(ctx context.Context, req *dto.RegisterRequest) (*vo.UserResponse, error)

	// Login 校验凭证并签发 JWT。
	// - 用户名不存在与密码错误返回同一条消息，不泄露账号是否存在。
	Login(ctx context.Context, req *dto.LoginRequest) (*vo.LoginResponse, error)
}

type authService struct {
	db           *gorm.DB
	userRepo     mysql.UserRepository
	tokenManager *auth.TokenManager
	logger       *core.ZapLogger
}

// NewAuthService 是 authService 的构造函数。
func NewAuthService(db *gorm.DB, userRepo mysql.UserRepository, tokenManager *auth.TokenManager, logger *core.ZapLogger) AuthService {
	return &authService{
		db:           db,
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// checkCredentialsUnique 校验用户名与邮箱的全局唯一性。
func checkCredentialsUnique(ctx context.Context, userRepo mysql.UserRepository, username, email string, excludeID uint64) error {
	existing, err := userRepo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, myErrors.ErrRecordNotFound) {
		return err
	}
	if err == nil && existing.ID != excludeID {
		return myErrors.NewConflict(fmt.Sprintf("用户名已被占用: %s", username))
	}

	existing, err = userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, myErrors.ErrRecordNotFound) {
		return err
	}
	if err == nil && existing.ID != excludeID {
		return myErrors.NewConflict(fmt.Sprintf("邮箱已被占用: %s", email))
	}
	return nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*vo.UserResponse, error) {
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
		Role:         enums.RoleUser,
		FullName:     req.FullName,
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.CreateUser(ctx, tx, user)
	})
	if err != nil {
		s.logger.Error("注册用户事务失败", zap.Error(err), zap.String("username", req.Username))
		return nil, err
	}

	s.logger.Info("用户注册成功", zap.Uint64("userID", user.ID), zap.String("username", user.Username))
	return vo.MapUserToVO(user), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*vo.LoginResponse, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, myErrors.ErrRecordNotFound) {
			return nil, myErrors.NewUnauthenticated("用户名或密码错误")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, myErrors.NewUnauthenticated("用户名或密码错误")
	}
	if !user.IsActive {
		return nil, myErrors.NewForbidden("账号已被禁用")
	}

	token, expiresAt, err := s.tokenManager.IssueToken(user.ID, user.Role)
	if err != nil {
		s.logger.Error("签发令牌失败", zap.Error(err), zap.Uint64("userID", user.ID))
		return nil, err
	}

	// 登录时间为旁路更新，失败不阻塞登录。
	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("更新最近登录时间失败", zap.Error(err), zap.Uint64("userID", user.ID))
	} else {
		user.LastLogin = &now
	}

	return &vo.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      vo.MapUserToVO(user),
	}, nil
}
