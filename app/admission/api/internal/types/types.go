// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

// ==================== 参与者侧类型 ====================

// JoinEventRequest 报名请求
type JoinEventRequest struct {
	EventId int64  `path:"eventId"`
	Role    string `json:"role,optional"` // volunteer / scholar，缺省 volunteer
}

// JoinEventResponse 报名响应
type JoinEventResponse struct {
	Status string `json:"status"` // PENDING
}

// UnjoinEventRequest 取消报名请求
type UnjoinEventRequest struct {
	EventId int64 `path:"eventId"`
}

// UnjoinEventResponse 取消报名响应
type UnjoinEventResponse struct {
	Result string `json:"result"` // success
}

// CheckParticipationRequest 查询本人报名状态请求
type CheckParticipationRequest struct {
	EventId int64 `path:"eventId"`
}

// CheckParticipationResponse 查询本人报名状态响应
type CheckParticipationResponse struct {
	HasJoined bool   `json:"hasJoined"`
	Status    string `json:"status"` // NONE / PENDING / ACTIVE
	Role      string `json:"role,omitempty"`
	JoinedAt  int64  `json:"joinedAt,omitempty"`
}

// CheckRejectionRequest 查询本人拒绝记录请求
type CheckRejectionRequest struct {
	EventId int64 `path:"eventId"`
}

// CheckRejectionResponse 查询本人拒绝记录响应
type CheckRejectionResponse struct {
	IsRejected bool   `json:"isRejected"`
	Reason     string `json:"reason,omitempty"`
	RejectedAt int64  `json:"rejectedAt,omitempty"`
}

// ==================== 管理侧类型 ====================

// ApproveParticipantRequest 审批通过请求
type ApproveParticipantRequest struct {
	EventId int64 `path:"eventId"`
	UserId  int64 `path:"userId"`
}

// ApproveParticipantResponse 审批通过响应
type ApproveParticipantResponse struct {
	Status string `json:"status"` // ACTIVE
}

// RejectParticipantRequest 拒绝报名请求
type RejectParticipantRequest struct {
	EventId int64  `path:"eventId"`
	UserId  int64  `path:"userId"`
	Reason  string `json:"reason,optional" validate:"max=500"`
}

// RejectParticipantResponse 拒绝报名响应
type RejectParticipantResponse struct {
	Result string `json:"result"` // success
}

// RemoveParticipantRequest 移出活动请求
type RemoveParticipantRequest struct {
	EventId int64  `path:"eventId"`
	UserId  int64  `path:"userId"`
	Reason  string `json:"reason,optional" validate:"max=500"`
}

// RemoveParticipantResponse 移出活动响应
type RemoveParticipantResponse struct {
	Result string `json:"result"` // success
}

// BulkRemoveParticipantsRequest 批量移出请求
type BulkRemoveParticipantsRequest struct {
	EventId int64   `path:"eventId"`
	UserIds []int64 `json:"userIds" validate:"required,min=1,max=100"`
	Reason  string  `json:"reason,optional" validate:"max=500"`
}

// BulkRemoveFailure 单个用户移出失败信息
type BulkRemoveFailure struct {
	UserId int64  `json:"userId"`
	Reason string `json:"reason"`
}

// BulkRemoveParticipantsResponse 批量移出响应
type BulkRemoveParticipantsResponse struct {
	RemovedCount int                 `json:"removedCount"`
	Failures     []BulkRemoveFailure `json:"failures"`
}

// AddParticipantRequest 手动添加参与者请求（跳过审批直接 ACTIVE）
type AddParticipantRequest struct {
	EventId int64  `path:"eventId"`
	UserId  int64  `json:"userId" validate:"required,gt=0"`
	Role    string `json:"role,optional"` // volunteer / scholar，缺省 volunteer
}

// AddParticipantResponse 手动添加参与者响应
type AddParticipantResponse struct {
	Status string `json:"status"` // ACTIVE
}

// ListParticipantsRequest 参与者列表请求
type ListParticipantsRequest struct {
	EventId     int64  `path:"eventId"`
	Page        int    `form:"page,default=1"`
	PageSize    int    `form:"pageSize,default=10"`
	Role        string `form:"role,optional"`   // volunteer / scholar，空为全部
	Status      string `form:"status,optional"` // PENDING / ACTIVE，空为全部
	JoinedStart int64  `form:"joinedStart,optional"`
	JoinedEnd   int64  `form:"joinedEnd,optional"`
}

// ParticipantItem 参与者列表项
type ParticipantItem struct {
	UserId   int64  `json:"userId"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	JoinedAt int64  `json:"joinedAt"`
}

// ListParticipantsResponse 参与者列表响应
type ListParticipantsResponse struct {
	List     []ParticipantItem `json:"list"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}
