package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Xushengqwer/camera_service/models/dto"
	"github.com/Xushengqwer/camera_service/models/enums"
	"github.com/Xushengqwer/camera_service/myErrors"
	"github.com/Xushengqwer/camera_service/pkg/auth"
	"github.com/Xushengqwer/camera_service/repo/mysql"
)

func newAuthServiceForTest(t *testing.T, db *gorm.DB) AuthService {
	t.Helper()
	logger := newTestLogger()
	tokenManager, err := auth.NewTokenManager(newTestJWTConfig())
	require.NoError(t, err)
	return NewAuthService(db, mysql.NewUserRepository(db, logger), tokenManager, logger)
}

func newUserServiceForTest(t *testing.T, db *gorm.DB) UserService {
	t.Helper()
	logger := newTestLogger()
	return NewUserService(db, mysql.NewUserRepository(db, logger), logger)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	authSvc := newAuthServiceForTest(t, db)
	userSvc := newUserServiceForTest(t, db)
	ctx := context.Background()

	registered, err := authSvc.Register(ctx, &dto.RegisterRequest{
		Username: "shutterbug", Email: "shutterbug@example.com", Password: "correct-horse", FullName: "快门爱好者",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.RoleUser, registered.Role)
	assert.True(t, registered.IsActive)

	t.Run("用户名冲突", func(t *testing.T) {
		_, err := authSvc.Register(ctx, &dto.RegisterRequest{
			Username: "shutterbug", Email: "other@example.com", Password: "correct-horse",
		})
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("邮箱冲突", func(t *testing.T) {
		_, err := authSvc.Register(ctx, &dto.RegisterRequest{
			Username: "shutterbug2", Email: "shutterbug@example.com", Password: "correct-horse",
		})
		requireKind(t, err, myErrors.KindConflict)
	})

	t.Run("登录成功并更新最近登录时间", func(t *testing.T) {
		resp, err := authSvc.Login(ctx, &dto.LoginRequest{Username: "shutterbug", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, registered.ID, resp.User.ID)
		assert.NotNil(t, resp.User.LastLogin)
	})

	t.Run("密码错误与用户不存在返回同一消息", func(t *testing.T) {
		_, err1 := authSvc.Login(ctx, &dto.LoginRequest{Username: "shutterbug", Password: "wrong-password"})
		requireKind(t, err1, myErrors.KindUnauthenticated)

		_, err2 := authSvc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "whatever-pass"})
		requireKind(t, err2, myErrors.KindUnauthenticated)

		svcErr1, _ := myErrors.AsServiceError(err1)
		svcErr2, _ := myErrors.AsServiceError(err2)
		assert.Equal(t, svcErr1.Message, svcErr2.Message, "不应泄露账号是否存在")
	})

	t.Run("禁用账号不能登录", func(t *testing.T) {
		disabled := false
		_, err := userSvc.UpdateUser(ctx, registered.ID, &dto.UpdateUserRequest{IsActive: &disabled}, 0, enums.RoleAdmin)
		require.NoError(t, err)

		_, err = authSvc.Login(ctx, &dto.LoginRequest{Username: "shutterbug", Password: "correct-horse"})
		requireKind(t, err, myErrors.KindForbidden)
	})
}

func TestUserAccessControl(t *testing.T) {
	db := newTestDB(t)
	authSvc := newAuthServiceForTest(t, db)
	userSvc := newUserServiceForTest(t, db)
	ctx := context.Background()

	alice, err := authSvc.Register(ctx, &dto.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password-one",
	})
	require.NoError(t, err)
	bob, err := authSvc.Register(ctx, &dto.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "password-two",
	})
	require.NoError(t, err)

	t.Run("本人可查看自己的资料", func(t *testing.T) {
		resp, err := userSvc.GetUserByID(ctx, alice.ID, alice.ID, enums.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
	})

	t.Run("他人资料对普通用户不可见", func(t *testing.T) {
		_, err := userSvc.GetUserByID(ctx, alice.ID, bob.ID, enums.RoleUser)
		requireKind(t, err, myErrors.KindForbidden)
	})

	t.Run("管理员可查看任何人", func(t *testing.T) {
		_, err := userSvc.GetUserByID(ctx, alice.ID, 0, enums.RoleAdmin)
		require.NoError(t, err)
	})

	t.Run("本人可改资料字段", func(t *testing.T) {
		resp, err := userSvc.UpdateUser(ctx, alice.ID, &dto.UpdateUserRequest{
			Bio: dto.Optional[string]{Set: true, Valid: true, Value: "胶片与数码双修"},
		}, alice.ID, enums.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, "胶片与数码双修", resp.Bio)
	})

	t.Run("普通用户不能改角色", func(t *testing.T) {
		admin := enums.RoleAdmin
		_, err := userSvc.UpdateUser(ctx, alice.ID, &dto.UpdateUserRequest{Role: &admin}, alice.ID, enums.RoleUser)
		requireKind(t, err, myErrors.KindForbidden)
	})

	t.Run("管理员可提升角色", func(t *testing.T) {
		admin := enums.RoleAdmin
		resp, err := userSvc.UpdateUser(ctx, bob.ID, &dto.UpdateUserRequest{Role: &admin}, 0, enums.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, enums.RoleAdmin, resp.Role)
	})

	t.Run("角色非法", func(t *testing.T) {
		bad := enums.UserRole("superuser")
		_, err := userSvc.UpdateUser(ctx, bob.ID, &dto.UpdateUserRequest{Role: &bad}, 0, enums.RoleAdmin)
		requireKind(t, err, myErrors.KindValidation)
	})
}

func TestCreateAndDeleteUser(t *testing.T) {
	db := newTestDB(t)
	userSvc := newUserServiceForTest(t, db)
	ctx := context.Background()

	admin, err := userSvc.CreateUser(ctx, &dto.CreateUserRequest{
		Username: "ops", Email: "ops@example.com", Password: "admin-password", Role: enums.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.RoleAdmin, admin.Role)

	t.Run("缺省角色为普通用户", func(t *testing.T) {
		resp, err := userSvc.CreateUser(ctx, &dto.CreateUserRequest{
			Username: "plain", Email: "plain@example.com", Password: "plain-password",
		})
		require.NoError(t, err)
		assert.Equal(t, enums.RoleUser, resp.Role)
	})

	t.Run("角色非法", func(t *testing.T) {
		_, err := userSvc.CreateUser(ctx, &dto.CreateUserRequest{
			Username: "weird", Email: "weird@example.com", Password: "weird-password", Role: enums.UserRole("root"),
		})
		requireKind(t, err, myErrors.KindValidation)
	})

	t.Run("不能删除当前登录的账号", func(t *testing.T) {
		requireKind(t, userSvc.DeleteUser(ctx, admin.ID, admin.ID), myErrors.KindValidation)
	})

	t.Run("管理员删除其他用户", func(t *testing.T) {
		victim, err := userSvc.CreateUser(ctx, &dto.CreateUserRequest{
			Username: "leaver", Email: "leaver@example.com", Password: "leaver-password",
		})
		require.NoError(t, err)

		require.NoError(t, userSvc.DeleteUser(ctx, victim.ID, admin.ID))

		_, err = userSvc.GetUserByID(ctx, victim.ID, 0, enums.RoleAdmin)
		requireKind(t, err, myErrors.KindNotFound)
	})

	t.Run("删除不存在的用户", func(t *testing.T) {
		requireKind(t, userSvc.DeleteUser(ctx, 99999, admin.ID), myErrors.KindNotFound)
	})
}
