package model

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ==================== 错误定义 ====================

var (
	ErrEventNotFound = errors.New("活动不存在")
	ErrEventClosed   = errors.New("活动已关闭报名")
	ErrEventFull     = errors.New("该角色名额已满")
	ErrRoleInvalid   = errors.New("报名角色无效")
)

// ==================== Event 活动模型 ====================

// Event 只承载准入核心需要的字段：状态 + 每角色的名额上限/当前计数
// 活动内容编辑属于外部协作方，不在本服务维护
type Event struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Title  string `gorm:"type:varchar(100);not null;comment:活动标题" json:"title"`
	Status int8   `gorm:"default:1;index;comment:状态: 1开放 2关闭" json:"status"`

	// 名额：每个角色独立的 上限/计数 对（上限 0 = 不限）
	// 计数在 join 时增加（含 PENDING），统计口径为"已申请+已通过"
	TotalVolunteerSlots   uint32 `gorm:"default:0;comment:志愿者名额上限" json:"total_volunteer_slots"`
	CurrentVolunteerCount uint32 `gorm:"default:0;comment:志愿者当前计数" json:"current_volunteer_count"`
	TotalScholarSlots     uint32 `gorm:"default:0;comment:学者名额上限" json:"total_scholar_slots"`
	CurrentScholarCount   uint32 `gorm:"default:0;comment:学者当前计数" json:"current_scholar_count"`

	CreatedAt int64 `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64 `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// IsOpen 判断是否开放报名
func (e *Event) IsOpen() bool {
	return e.Status == EventStatusOpen
}

// CountForRole 获取角色当前计数
func (e *Event) CountForRole(role int8) uint32 {
	if role == RoleScholar {
		return e.CurrentScholarCount
	}
	return e.CurrentVolunteerCount
}

// SlotsForRole 获取角色名额上限
func (e *Event) SlotsForRole(role int8) uint32 {
	if role == RoleScholar {
		return e.TotalScholarSlots
	}
	return e.TotalVolunteerSlots
}

// counterColumn 角色对应的计数列
func counterColumn(role int8) (string, error) {
	switch role {
	case RoleVolunteer:
		return "current_volunteer_count", nil
	case RoleScholar:
		return "current_scholar_count", nil
	default:
		return "", ErrRoleInvalid
	}
}

// ceilingColumn 角色对应的上限列
func ceilingColumn(role int8) (string, error) {
	switch role {
	case RoleVolunteer:
		return "total_volunteer_slots", nil
	case RoleScholar:
		return "total_scholar_slots", nil
	default:
		return "", ErrRoleInvalid
	}
}

// ==================== EventModel 数据访问层 ====================

type EventModel struct {
	db *gorm.DB
}

func NewEventModel(db *gorm.DB) *EventModel {
	return &EventModel{db: db}
}

// Create 创建活动
func (m *EventModel) Create(ctx context.Context, event *Event) error {
	return m.db.WithContext(ctx).Create(event).Error
}

// FindByID 根据ID查询
func (m *EventModel) FindByID(ctx context.Context, id uint64) (*Event, error) {
	var event Event
	err := m.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindByIDTx 在事务内查询
func (m *EventModel) FindByIDTx(ctx context.Context, tx *gorm.DB, id uint64) (*Event, error) {
	var event Event
	err := tx.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// UpdateStatus 更新活动状态
func (m *EventModel) UpdateStatus(ctx context.Context, id uint64, status int8) error {
	result := m.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// IncrementCount 计数 +1（必须与对应的报名写入处于同一事务）
//
// enforceCapacity 为 true 时执行条件自增：仅当 当前计数 < 上限（或上限为 0）才生效，
// 插入与判断在同一条 UPDATE 中原子完成，封死并发超额的竞态窗口；
// 为 false 时保留纯记账语义，只要求活动存在且开放。
func (m *EventModel) IncrementCount(ctx context.Context, tx *gorm.DB, id uint64, role int8, enforceCapacity bool) error {
	counter, err := counterColumn(role)
	if err != nil {
		return err
	}
	ceiling, err := ceilingColumn(role)
	if err != nil {
		return err
	}

	db := tx.WithContext(ctx).
		Model(&Event{}).
		Where("id = ? AND status = ?", id, EventStatusOpen)
	if enforceCapacity {
		db = db.Where(fmt.Sprintf("%s = 0 OR %s < %s", ceiling, counter, ceiling))
	}

	result := db.Update(counter, gorm.Expr(counter+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// 条件未命中：区分 不存在 / 已关闭 / 名额已满
	event, err := m.FindByIDTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if !event.IsOpen() {
		return ErrEventClosed
	}
	return ErrEventFull
}

// DecrementCount 计数 -1，下限为 0（必须与对应的报名删除处于同一事务）
func (m *EventModel) DecrementCount(ctx context.Context, tx *gorm.DB, id uint64, role int8) error {
	counter, err := counterColumn(role)
	if err != nil {
		return err
	}

	// 计数为 0 时不再递减，防止 uint 下溢
	return tx.WithContext(ctx).
		Model(&Event{}).
		Where(fmt.Sprintf("id = ? AND %s > 0", counter), id).
		Update(counter, gorm.Expr(counter+" - 1")).Error
}
