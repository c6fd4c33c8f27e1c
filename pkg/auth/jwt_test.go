package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/camera_service/config"
	"github.com/Xushengqwer/camera_service/models/enums"
)

func newTestManager(t *testing.T, expireMinutes int) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(config.JWTConfig{
		Secret:        "test-secret",
		Issuer:        "camera_service_test",
		ExpireMinutes: expireMinutes,
	})
	require.NoError(t, err)
	return tm
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager(config.JWTConfig{Secret: ""})
	assert.Error(t, err)
}

func TestIssueAndParseToken(t *testing.T) {
	tm := newTestManager(t, 60)

	token, expiresAt, err := tm.IssueToken(42, enums.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(60*time.Minute), expiresAt, 5*time.Second)

	userID, role, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
	assert.Equal(t, enums.RoleAdmin, role)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	tm := newTestManager(t, 60)

	token, _, err := tm.IssueToken(7, enums.RoleUser)
	require.NoError(t, err)

	_, _, err = tm.ParseToken(token + "x")
	assert.Error(t, err)

	_, _, err = tm.ParseToken("not.a.jwt")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := newTestManager(t, 60)
	other, err := NewTokenManager(config.JWTConfig{Secret: "another-secret", ExpireMinutes: 60})
	require.NoError(t, err)

	token, _, err := tm.IssueToken(7, enums.RoleUser)
	require.NoError(t, err)

	_, _, err = other.ParseToken(token)
	assert.Error(t, err)
}
