package model

// 活动状态常量

const (
	EventStatusOpen   int8 = 1 // 开放报名
	EventStatusClosed int8 = 2 // 已关闭
)

// EventStatusText 状态文本映射
var EventStatusText = map[int8]string{
	EventStatusOpen:   "开放报名",
	EventStatusClosed: "已关闭",
}

// 参与角色常量（每个角色独立的名额池）

const (
	RoleVolunteer int8 = 1 // 志愿者
	RoleScholar   int8 = 2 // 学者（特权子群体）
)

// RoleText 角色文本映射
var RoleText = map[int8]string{
	RoleVolunteer: "volunteer",
	RoleScholar:   "scholar",
}

// ValidParticipantRole 判断报名角色是否合法
func ValidParticipantRole(role int8) bool {
	_, ok := RoleText[role]
	return ok
}

// ParseParticipantRole 解析角色字符串
func ParseParticipantRole(role string) (int8, bool) {
	switch role {
	case "volunteer", "":
		// 缺省按志愿者处理
		return RoleVolunteer, true
	case "scholar":
		return RoleScholar, true
	default:
		return 0, false
	}
}

// 报名状态常量

const (
	ParticipationStatusPending int8 = 1 // 待审批
	ParticipationStatusActive  int8 = 2 // 已通过
)

// ParticipationStatusText 报名状态文本映射
var ParticipationStatusText = map[int8]string{
	ParticipationStatusPending: "PENDING",
	ParticipationStatusActive:  "ACTIVE",
}

// 分页参数

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Pagination 分页请求
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize 规范化分页参数
func (p *Pagination) Normalize() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset 计算偏移量
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TimeRange 显式的可选时间范围（秒级时间戳，0 表示不限）
// 列表查询一律使用类型化条件对象，禁止拼接 SQL 字符串
type TimeRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// IsZero 判断范围是否为空
func (r *TimeRange) IsZero() bool {
	return r == nil || (r.Start == 0 && r.End == 0)
}
