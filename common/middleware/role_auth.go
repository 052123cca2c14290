package middleware

import (
	"net/http"
	"strings"

	"admission-platform/common/ctxdata"
	"admission-platform/common/errorx"
	"admission-platform/common/response"
	"admission-platform/common/utils/jwt"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// CapabilityAuthMiddleware 能力集鉴权中间件
// 准入边界只做一次能力检查（见 jwt.Capability），不在各路由重复角色判断
type CapabilityAuthMiddleware struct {
	db           *gorm.DB
	redis        *redis.Client
	accessSecret string
	capability   jwt.Capability
}

// NewStaffAuthMiddleware 管理报名能力（admin / staff）
func NewStaffAuthMiddleware(db *gorm.DB, rdb *redis.Client, accessSecret string) *CapabilityAuthMiddleware {
	return &CapabilityAuthMiddleware{db: db, redis: rdb, accessSecret: accessSecret, capability: jwt.CapManageParticipants}
}

// NewParticipantAuthMiddleware 报名能力（volunteer / scholar 及以上）
func NewParticipantAuthMiddleware(db *gorm.DB, rdb *redis.Client, accessSecret string) *CapabilityAuthMiddleware {
	return &CapabilityAuthMiddleware{db: db, redis: rdb, accessSecret: accessSecret, capability: jwt.CapJoinEvent}
}

func (m *CapabilityAuthMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.db == nil {
			response.Fail(w, errorx.ErrInternalError())
			return
		}

		ctx := r.Context()

		// 解析 Bearer Token，建立请求身份
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			response.Fail(w, errorx.ErrUnauthorized())
			return
		}
		claims, err := jwt.ParseToken(tokenStr, m.accessSecret)
		if err != nil || claims.UserId <= 0 {
			response.Fail(w, errorx.ErrInvalidToken())
			return
		}

		if !jwt.HasCapability(claims.Role, m.capability) {
			response.Fail(w, errorx.ErrForbidden())
			return
		}

		// 检查黑名单（登出 / 封禁后的旧 Token）
		if m.redis != nil {
			isBlacklisted, _ := jwt.IsAccessBlacklisted(ctx, m.redis, claims.AccessJwtId)
			if isBlacklisted {
				response.Fail(w, errorx.ErrInvalidToken())
				return
			}
		}

		var status int64
		err = m.db.WithContext(ctx).
			Table("users").
			Select("status").
			Where("user_id = ?", claims.UserId).
			Take(&status).Error
		if err != nil {
			response.Fail(w, errorx.ErrDBError(err))
			return
		}

		if status != 1 {
			response.Fail(w, errorx.ErrForbidden())
			return
		}

		ctx = ctxdata.WithUserID(ctx, claims.UserId)
		ctx = ctxdata.WithRole(ctx, string(claims.Role))
		next(w, r.WithContext(ctx))
	}
}

// bearerToken 从 Authorization 头提取 Bearer Token
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
