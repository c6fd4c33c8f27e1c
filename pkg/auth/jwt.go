package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Xushengqwer/camera_service/config"
	"github.com/Xushengqwer/camera_service/models/enums"
)

// Claims 是服务签发的 JWT 载荷。
// Subject 存用户ID的十进制字符串，Role 是自定义声明。
type Claims struct {
	Role enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager 负责访问令牌的签发与校验。
type TokenManager struct {
	secret  []byte
	issuer  string
	expires time.Duration
}

// NewTokenManager 根据配置构造 TokenManager。
func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("JWT secret 未配置")
	}
	expireMinutes := cfg.ExpireMinutes
	if expireMinutes <= 0 {
		expireMinutes = 60
	}
	return &TokenManager{
		secret:  []byte(cfg.Secret),
		issuer:  cfg.Issuer,
		expires: time.Duration(expireMinutes) * time.Minute,
	}, nil
}

// IssueToken 为用户签发一个 HS256 访问令牌，返回令牌串与过期时间。
func (m *TokenManager) IssueToken(userID uint64, role enums.UserRole) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.expires)

	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("签发 JWT 失败: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken 校验令牌串并还原用户ID与角色。
// 签名无效、过期或载荷异常都会返回错误。
func (m *TokenManager) ParseToken(tokenString string) (uint64, enums.UserRole, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名算法: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("解析 JWT 失败: %w", err)
	}
	if !token.Valid {
		return 0, "", fmt.Errorf("JWT 无效")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("JWT subject 不是合法的用户ID: %w", err)
	}
	if !claims.Role.IsValid() {
		return 0, "", fmt.Errorf("JWT 中的角色非法: %s", claims.Role)
	}
	return userID, claims.Role, nil
}
