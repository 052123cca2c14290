/**
 * @projectName: AdmissionPlatform
 * @package: errorx
 * @className: codes
 * @description: 统一错误码定义
 * @version: 1.0
 */

package errorx

// 错误码规范：
// 0       - 成功
// 1xxx    - 通用错误
// 3xxx    - 报名准入服务错误

const (
	CodeSuccess            = 0    // 成功
	CodeInternalError      = 1000 // 内部服务器错误
	CodeInvalidParams      = 1001 // 参数校验失败
	CodeUnauthorized       = 1002 // 未授权访问
	CodeForbidden          = 1003 // 禁止访问
	CodeNotFound           = 1004 // 资源不存在
	CodeTooManyRequests    = 1005 // 请求过于频繁
	CodeServiceUnavailable = 1006 // 服务暂不可用
	CodeTimeout            = 1007 // 请求超时
	CodeDBError            = 1008 // 数据库错误
	CodeCacheError         = 1009 // 缓存错误
	CodeTokenInvalid       = 1010 // Token无效

	// 准入服务 - 事件 3001-3010
	CodeEventNotFound = 3001 // 活动不存在
	CodeEventClosed   = 3002 // 活动已关闭报名
	CodeEventFull     = 3003 // 名额已满

	// 准入服务 - 报名记录 3101-3120
	CodeAlreadyJoined    = 3101 // 已报名该活动
	CodeNotJoined        = 3102 // 未报名该活动
	CodeAlreadyProcessed = 3103 // 报名已处理
	CodeParticipantNone  = 3104 // 报名记录不存在
	CodeInvalidRole      = 3105 // 报名角色无效

	// 准入服务 - 拒绝名单 3201-3210
	CodeBlocked = 3201 // 已被拒绝，无法再次报名
)

// codeMessages 错误码对应的默认消息
var codeMessages = map[int]string{
	CodeSuccess:            "success",
	CodeInternalError:      "内部服务器错误",
	CodeInvalidParams:      "参数校验失败",
	CodeUnauthorized:       "未授权访问",
	CodeForbidden:          "禁止访问",
	CodeNotFound:           "资源不存在",
	CodeTooManyRequests:    "请求过于频繁，请稍后再试",
	CodeServiceUnavailable: "服务暂不可用",
	CodeTimeout:            "请求超时",
	CodeDBError:            "数据库错误",
	CodeCacheError:         "缓存错误",
	CodeTokenInvalid:       "登录状态无效",
	CodeEventNotFound:      "活动不存在",
	CodeEventClosed:        "活动已关闭报名",
	CodeEventFull:          "该角色名额已满",
	CodeAlreadyJoined:      "您已报名该活动，请勿重复报名",
	CodeNotJoined:          "您尚未报名该活动",
	CodeAlreadyProcessed:   "该报名已处理，请刷新后重试",
	CodeParticipantNone:    "报名记录不存在",
	CodeInvalidRole:        "报名角色无效",
	CodeBlocked:            "您的报名申请已被拒绝，无法再次报名",
}

// GetMessage 根据错误码获取默认消息
func GetMessage(code int) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return "未知错误"
}

// IsValidCode 判断是否为有效的业务错误码
func IsValidCode(code int) bool {
	_, exists := codeMessages[code]
	return exists
}
