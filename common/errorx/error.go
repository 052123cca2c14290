package errorx

import (
	"fmt"

	"github.com/pkg/errors"
)

// BizError 业务错误，实现 error 接口
type BizError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error 实现 error 接口
func (e *BizError) Error() string {
	return fmt.Sprintf("BizError: code=%d, message=%s", e.Code, e.Message)
}

// GetCode 获取错误码
func (e *BizError) GetCode() int {
	return e.Code
}

// GetMessage 获取错误消息
func (e *BizError) GetMessage() string {
	return e.Message
}

// New 创建业务错误（使用默认消息）
func New(code int) *BizError {
	return &BizError{
		Code:    code,
		Message: GetMessage(code),
	}
}

// NewWithMessage 创建业务错误（自定义消息）
func NewWithMessage(code int, message string) *BizError {
	return &BizError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误，添加上下文信息
func Wrap(code int, err error) *BizError {
	if err == nil {
		return New(code)
	}
	return &BizError{
		Code:    code,
		Message: fmt.Sprintf("%s: %v", GetMessage(code), err),
	}
}

// Is 判断是否为特定错误码
func Is(err error, code int) bool {
	if err == nil {
		return false
	}
	var bizErr *BizError
	if errors.As(err, &bizErr) {
		return bizErr.Code == code
	}
	return false
}

// FromError 从 error 转换为 BizError
// 支持以下错误类型：
//  1. *BizError：直接返回
//  2. 其他错误：返回内部错误（隐藏细节）
func FromError(err error) *BizError {
	if err == nil {
		return nil
	}

	// 获取原始错误（支持 errors.Wrap 包装的错误）
	causeErr := errors.Cause(err)

	if bizErr, ok := causeErr.(*BizError); ok {
		return bizErr
	}

	return &BizError{
		Code:    CodeInternalError,
		Message: GetMessage(CodeInternalError),
	}
}

// ============ 常用错误快捷方法 ============

// ErrInternalError 内部错误
func ErrInternalError() *BizError {
	return New(CodeInternalError)
}

// ErrInvalidParams 参数错误
func ErrInvalidParams(msg string) *BizError {
	if msg == "" {
		return New(CodeInvalidParams)
	}
	return NewWithMessage(CodeInvalidParams, msg)
}

// ErrUnauthorized 未授权
func ErrUnauthorized() *BizError {
	return New(CodeUnauthorized)
}

// ErrForbidden 禁止访问
func ErrForbidden() *BizError {
	return New(CodeForbidden)
}

// ErrNotFound 资源不存在
func ErrNotFound() *BizError {
	return New(CodeNotFound)
}

// ErrInvalidToken Token无效
func ErrInvalidToken() *BizError {
	return New(CodeTokenInvalid)
}

// ErrTooManyRequests 请求过于频繁
func ErrTooManyRequests() *BizError {
	return New(CodeTooManyRequests)
}

// ErrDBError 数据库错误
func ErrDBError(err error) *BizError {
	return Wrap(CodeDBError, err)
}

// ============ 准入服务相关错误 ============

// ErrEventNotFound 活动不存在
func ErrEventNotFound() *BizError {
	return New(CodeEventNotFound)
}

// ErrEventClosed 活动已关闭报名
func ErrEventClosed() *BizError {
	return New(CodeEventClosed)
}

// ErrEventFull 名额已满
func ErrEventFull() *BizError {
	return New(CodeEventFull)
}

// ErrAlreadyJoined 已报名
func ErrAlreadyJoined() *BizError {
	return New(CodeAlreadyJoined)
}

// ErrNotJoined 未报名
func ErrNotJoined() *BizError {
	return New(CodeNotJoined)
}

// ErrAlreadyProcessed 报名已处理
func ErrAlreadyProcessed() *BizError {
	return New(CodeAlreadyProcessed)
}

// ErrParticipantNotFound 报名记录不存在
func ErrParticipantNotFound() *BizError {
	return New(CodeParticipantNone)
}

// ErrInvalidRole 报名角色无效
func ErrInvalidRole() *BizError {
	return New(CodeInvalidRole)
}

// ErrBlocked 被拒绝名单拦截（附带拒绝原因）
func ErrBlocked(reason string) *BizError {
	if reason == "" {
		return New(CodeBlocked)
	}
	return NewWithMessage(CodeBlocked, fmt.Sprintf("%s：%s", GetMessage(CodeBlocked), reason))
}
