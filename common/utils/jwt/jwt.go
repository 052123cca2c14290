// ============================================================================
// JWT 工具 + 角色能力集
// ============================================================================

package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"
)

// Role 系统角色（闭合枚举，禁止散落的字符串比较）
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStaff     Role = "staff"
	RoleVolunteer Role = "volunteer"
	RoleScholar   Role = "scholar"
	RoleSponsor   Role = "sponsor"
)

// Capability 操作能力
type Capability string

const (
	// CapManageParticipants 管理报名（审批/拒绝/移除/手动添加/查看名单）
	CapManageParticipants Capability = "manage_participants"
	// CapJoinEvent 报名参加活动
	CapJoinEvent Capability = "join_event"
)

// roleCapabilities 角色 -> 能力集
// 准入边界只做一次能力检查，不在各路由重复判断角色
var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapManageParticipants: true,
		CapJoinEvent:          true,
	},
	RoleStaff: {
		CapManageParticipants: true,
		CapJoinEvent:          true,
	},
	RoleVolunteer: {
		CapJoinEvent: true,
	},
	RoleScholar: {
		CapJoinEvent: true,
	},
	RoleSponsor: {},
}

var (
	ErrInvalidRole = errors.New("invalid role")
)

// ValidateRole 校验角色合法性
func ValidateRole(role Role) error {
	if _, ok := roleCapabilities[role]; !ok {
		return ErrInvalidRole
	}
	return nil
}

// HasCapability 判断角色是否具备某能力
func HasCapability(role Role, cap Capability) bool {
	caps, ok := roleCapabilities[role]
	return ok && caps[cap]
}

// GetRoleFromContext 从上下文读取角色
func GetRoleFromContext(ctx context.Context) (Role, bool) {
	if ctx == nil {
		return "", false
	}
	value := ctx.Value("role")
	switch v := value.(type) {
	case string:
		return Role(v), v != ""
	case []byte:
		if len(v) == 0 {
			return "", false
		}
		return Role(string(v)), true
	default:
		if value == nil {
			return "", false
		}
		role := fmt.Sprint(value)
		if role == "" {
			return "", false
		}
		return Role(role), true
	}
}

// CanManageParticipants 判断当前上下文是否可管理报名
func CanManageParticipants(ctx context.Context) bool {
	role, ok := GetRoleFromContext(ctx)
	return ok && HasCapability(role, CapManageParticipants)
}

// ==================== Token ====================

type AuthConfig struct {
	Secret string
	Expire int64
}

type Claims struct {
	UserId      int64  `json:"userId"`
	Role        Role   `json:"role"`
	AccessJwtId string `json:"accessJwtId"`
	jwt.RegisteredClaims
}

type TokenResult struct {
	Token    string
	ExpireAt int64
}

// GenerateToken 签发 Token
func GenerateToken(userId int64, role Role, cfg AuthConfig, accessId string) (TokenResult, error) {
	if err := ValidateRole(role); err != nil {
		return TokenResult{}, err
	}
	if cfg.Secret == "" || cfg.Expire <= 0 {
		return TokenResult{}, errors.New("invalid auth config")
	}

	now := time.Now()
	expireAt := now.Add(time.Duration(cfg.Expire) * time.Second)
	claims := Claims{
		UserId:      userId,
		Role:        role,
		AccessJwtId: accessId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expireAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return TokenResult{}, err
	}

	return TokenResult{
		Token:    signed,
		ExpireAt: claims.ExpiresAt.Unix(),
	}, nil
}

// ParseToken 解析并校验 Token
func ParseToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// CheckTokenBlacklist 检查 Token 是否在黑名单
func CheckTokenBlacklist(ctx context.Context, rdb *redis.Client, tokenStr string, secret string) (bool, error) {
	claims, err := ParseToken(tokenStr, secret)
	if err != nil {
		return false, err
	}
	return IsAccessBlacklisted(ctx, rdb, claims.AccessJwtId)
}

// IsAccessBlacklisted 按 accessJwtId 检查黑名单（调用方已解析过 Token 时避免重复解析）
func IsAccessBlacklisted(ctx context.Context, rdb *redis.Client, accessJwtId string) (bool, error) {
	key := fmt.Sprintf("token:blacklist:access:%s", accessJwtId)
	exists, err := rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
