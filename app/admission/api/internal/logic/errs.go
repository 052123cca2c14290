package logic

import (
	"errors"

	"admission-platform/app/admission/model"
	"admission-platform/common/errorx"
)

// ConvertModelError 将 model 层哨兵错误转换为业务错误
// 未识别的错误统一按数据库错误处理
func ConvertModelError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrEventNotFound):
		return errorx.ErrEventNotFound()
	case errors.Is(err, model.ErrEventClosed):
		return errorx.ErrEventClosed()
	case errors.Is(err, model.ErrEventFull):
		return errorx.ErrEventFull()
	case errors.Is(err, model.ErrRoleInvalid):
		return errorx.ErrInvalidRole()
	case errors.Is(err, model.ErrAlreadyJoined):
		return errorx.ErrAlreadyJoined()
	case errors.Is(err, model.ErrParticipationNotFound):
		return errorx.ErrParticipantNotFound()
	case errors.Is(err, model.ErrRejectionNotFound):
		return errorx.ErrNotFound()
	default:
		var bizErr *errorx.BizError
		if errors.As(err, &bizErr) {
			return bizErr
		}
		return errorx.ErrDBError(err)
	}
}

// Acceptable 熔断统计口径：业务层拒绝（满员、重复报名、拒绝名单等）
// 不算服务故障，只有基础设施错误计入熔断
func Acceptable(err error) bool {
	if err == nil {
		return true
	}
	var bizErr *errorx.BizError
	if !errors.As(err, &bizErr) {
		return false
	}
	switch bizErr.Code {
	case errorx.CodeInternalError, errorx.CodeDBError, errorx.CodeCacheError:
		return false
	default:
		return true
	}
}
