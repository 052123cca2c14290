package response

import (
	"net/http"

	"admission-platform/common/errorx"

	"github.com/zeromicro/go-zero/rest/httpx"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageData 分页数据结构
type PageData struct {
	List     interface{} `json:"list"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// Success 成功响应
func Success(w http.ResponseWriter, data interface{}) {
	resp := &Response{
		Code:    errorx.CodeSuccess,
		Message: "success",
		Data:    data,
	}
	httpx.OkJson(w, resp)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(w http.ResponseWriter, list interface{}, total int64, page, pageSize int) {
	resp := &Response{
		Code:    errorx.CodeSuccess,
		Message: "success",
		Data: PageData{
			List:     list,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		},
	}
	httpx.OkJson(w, resp)
}

// Fail 失败响应（使用 BizError）
func Fail(w http.ResponseWriter, err error) {
	bizErr := errorx.FromError(err)
	resp := &Response{
		Code:    bizErr.Code,
		Message: bizErr.Message,
	}
	httpx.WriteJson(w, getHttpStatus(bizErr.Code), resp)
}

// FailWithCode 失败响应（指定错误码）
func FailWithCode(w http.ResponseWriter, code int) {
	resp := &Response{
		Code:    code,
		Message: errorx.GetMessage(code),
	}
	httpx.WriteJson(w, getHttpStatus(code), resp)
}

// getHttpStatus 根据业务错误码映射 HTTP 状态码
//
// 对外契约：
//   - 参数/状态类冲突 -> 400
//   - 拒绝名单拦截、权限不足 -> 403
//   - 活动/记录不存在 -> 404
//   - 重复报名、名额已满 -> 409
//   - 数据库/内部错误 -> 500
func getHttpStatus(code int) int {
	switch code {
	case errorx.CodeSuccess:
		return http.StatusOK
	case errorx.CodeInvalidParams, errorx.CodeInvalidRole,
		errorx.CodeEventClosed, errorx.CodeNotJoined, errorx.CodeAlreadyProcessed:
		return http.StatusBadRequest
	case errorx.CodeUnauthorized, errorx.CodeTokenInvalid:
		return http.StatusUnauthorized
	case errorx.CodeForbidden, errorx.CodeBlocked:
		return http.StatusForbidden
	case errorx.CodeNotFound, errorx.CodeEventNotFound, errorx.CodeParticipantNone:
		return http.StatusNotFound
	case errorx.CodeAlreadyJoined, errorx.CodeEventFull:
		return http.StatusConflict
	case errorx.CodeTooManyRequests:
		return http.StatusTooManyRequests
	case errorx.CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case errorx.CodeInternalError, errorx.CodeDBError, errorx.CodeCacheError:
		return http.StatusInternalServerError
	default:
		// 其他业务错误返回 200，但 code 非 0
		return http.StatusOK
	}
}

// HandleError 统一错误处理（用于 handler 层）
// 用法: response.HandleError(w, err, func() { response.Success(w, data) })
func HandleError(w http.ResponseWriter, err error, successFn func()) {
	if err != nil {
		Fail(w, err)
		return
	}
	successFn()
}

// SetupGlobalErrorHandler 注册 httpx 全局错误处理器
// 必须在 server.Start() 之前调用，所有 httpx.ErrorCtx 走统一响应格式
func SetupGlobalErrorHandler() {
	httpx.SetErrorHandler(func(err error) (int, interface{}) {
		bizErr := errorx.FromError(err)
		return getHttpStatus(bizErr.Code), &Response{
			Code:    bizErr.Code,
			Message: bizErr.Message,
		}
	})
}
