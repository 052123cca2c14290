package model

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== 错误定义 ====================

var (
	ErrRejectionNotFound = errors.New("拒绝记录不存在")
)

// ==================== RejectionRecord 拒绝名单模型 ====================

// RejectionRecord 永久拒绝名单，按 (event, user) 唯一
// 只由 reject 写入；remove/unjoin 不写。存在即永久阻止该用户再次报名该活动，
// 当前设计没有任何解除操作。重复拒绝同一用户为幂等覆盖（原因与操作人更新）
type RejectionRecord struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	EventID uint64 `gorm:"uniqueIndex:uk_reject_event_user,priority:1;index:idx_reject_event;not null;comment:活动ID" json:"event_id"`
	UserID  uint64 `gorm:"uniqueIndex:uk_reject_event_user,priority:2;index:idx_reject_user;not null;comment:用户ID" json:"user_id"`

	AdminID uint64 `gorm:"not null;comment:操作管理员ID" json:"admin_id"`
	Reason  string `gorm:"type:varchar(500);default:'';comment:拒绝原因" json:"reason"`

	CreatedAt int64 `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64 `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RejectionRecord) TableName() string {
	return "rejection_records"
}

// ==================== RejectionRecordModel 数据访问层 ====================

type RejectionRecordModel struct {
	db *gorm.DB
}

func NewRejectionRecordModel(db *gorm.DB) *RejectionRecordModel {
	return &RejectionRecordModel{db: db}
}

// UpsertTx 事务内写入拒绝记录（幂等：同一 (event, user) 重复拒绝只覆盖原因与操作人）
func (m *RejectionRecordModel) UpsertTx(ctx context.Context, tx *gorm.DB, rec *RejectionRecord) error {
	return tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"admin_id", "reason", "updated_at"}),
		}).
		Create(rec).Error
}

// FindByEventUser 根据活动ID和用户ID查询
func (m *RejectionRecordModel) FindByEventUser(ctx context.Context, eventID, userID uint64) (*RejectionRecord, error) {
	var rec RejectionRecord
	err := m.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRejectionNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindByEventUserTx 事务内查询（join 的前置检查）
func (m *RejectionRecordModel) FindByEventUserTx(ctx context.Context, tx *gorm.DB, eventID, userID uint64) (*RejectionRecord, error) {
	var rec RejectionRecord
	err := tx.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRejectionNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// CountByEvent 统计活动的拒绝记录数量
func (m *RejectionRecordModel) CountByEvent(ctx context.Context, eventID uint64) (int64, error) {
	var count int64
	err := m.db.WithContext(ctx).
		Model(&RejectionRecord{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
