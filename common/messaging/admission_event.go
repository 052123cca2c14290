package messaging

import "time"

// ==================== Topic 定义 ====================

const (
	TopicMemberJoined   = "admission.member.joined"
	TopicMemberApproved = "admission.member.approved"
	TopicMemberRejected = "admission.member.rejected"
	TopicMemberRemoved  = "admission.member.removed"
	TopicMemberLeft     = "admission.member.left"
)

// ==================== 事件结构体 ====================

// Actor 操作人归因信息（管理员发起的状态变更携带）
type Actor struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// MemberJoinedEvent 用户报名事件（待审批）
// 消费者：Admission MQ（给用户发确认邮件、给管理员发待审批通知）
type MemberJoinedEvent struct {
	EventID    uint64    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	UserID     uint64    `json:"user_id"`
	Role       int8      `json:"role"`
	JoinedAt   time.Time `json:"joined_at"`
}

// MemberApprovedEvent 报名审批通过事件
// 消费者：Admission MQ（审批通过邮件 + 站内通知）
type MemberApprovedEvent struct {
	EventID    uint64    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	UserID     uint64    `json:"user_id"`
	Actor      Actor     `json:"actor"`
	ApprovedAt time.Time `json:"approved_at"`
}

// MemberRejectedEvent 报名被拒绝事件
// 消费者：Admission MQ（拒绝邮件 + 站内通知）
type MemberRejectedEvent struct {
	EventID    uint64    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	UserID     uint64    `json:"user_id"`
	Actor      Actor     `json:"actor"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejected_at"`
}

// MemberRemovedEvent 被移出活动事件（非惩罚性，可再次报名）
// 消费者：Admission MQ（移除邮件 + 站内通知）
type MemberRemovedEvent struct {
	EventID    uint64    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	UserID     uint64    `json:"user_id"`
	Actor      Actor     `json:"actor"`
	Reason     string    `json:"reason"`
	RemovedAt  time.Time `json:"removed_at"`
}

// MemberLeftEvent 用户主动退出事件
// 消费者：Admission MQ（给管理员发知会通知）
type MemberLeftEvent struct {
	EventID    uint64    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	UserID     uint64    `json:"user_id"`
	LeftAt     time.Time `json:"left_at"`
}
