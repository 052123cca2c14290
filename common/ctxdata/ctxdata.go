package ctxdata

import (
	"context"
	"encoding/json"
	"strconv"
)

// 定义上下文 key 类型，避免冲突
type contextKey string

const (
	// CtxKeyUserID 用户ID在上下文中的key
	CtxKeyUserID contextKey = "userId"
	// CtxKeyRole 角色在上下文中的key
	CtxKeyRole contextKey = "role"
	// CtxKeyRequestID 请求ID
	CtxKeyRequestID contextKey = "requestId"
)

// GetUserIDFromCtx 从上下文中获取用户ID
// go-zero 会将 JWT payload 中的字段注入到 context 中
func GetUserIDFromCtx(ctx context.Context) int64 {
	// 先尝试从自定义 key 获取
	if val := ctx.Value(CtxKeyUserID); val != nil {
		return parseToInt64(val)
	}

	// 兼容 go-zero 的 JWT 解析方式（字符串 key）
	if val := ctx.Value("userId"); val != nil {
		return parseToInt64(val)
	}

	return 0
}

// GetRoleFromCtx 从上下文中获取角色
func GetRoleFromCtx(ctx context.Context) string {
	if val := ctx.Value(CtxKeyRole); val != nil {
		if role, ok := val.(string); ok {
			return role
		}
	}

	if val := ctx.Value("role"); val != nil {
		if role, ok := val.(string); ok {
			return role
		}
	}

	return ""
}

// GetRequestIDFromCtx 从上下文中获取请求ID
func GetRequestIDFromCtx(ctx context.Context) string {
	if val := ctx.Value(CtxKeyRequestID); val != nil {
		if reqID, ok := val.(string); ok {
			return reqID
		}
	}
	return ""
}

// WithUserID 将用户ID注入上下文
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// WithRole 将角色注入上下文
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, CtxKeyRole, role)
}

// WithRequestID 将请求ID注入上下文
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxKeyRequestID, requestID)
}

// parseToInt64 将各种类型转换为 int64
func parseToInt64(val interface{}) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return 0
}
