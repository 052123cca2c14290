package model

import (
	"context"
	"errors"

	mysqlerr "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ==================== 错误定义 ====================

var (
	ErrParticipationNotFound = errors.New("报名记录不存在")
	ErrAlreadyJoined         = errors.New("已存在报名记录")
)

// ==================== Participation 报名记录模型 ====================

// Participation 每个 (event, user) 至多一行，由复合唯一索引保证
type Participation struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	EventID uint64 `gorm:"uniqueIndex:uk_event_user,priority:1;index:idx_event_id;not null;comment:活动ID" json:"event_id"`
	UserID  uint64 `gorm:"uniqueIndex:uk_event_user,priority:2;index:idx_user_id;not null;comment:用户ID" json:"user_id"`

	Role   int8 `gorm:"not null;comment:角色: 1志愿者 2学者" json:"role"`
	Status int8 `gorm:"default:1;comment:状态: 1待审批 2已通过" json:"status"`

	JoinedAt  int64 `gorm:"autoCreateTime;index" json:"joined_at"`
	UpdatedAt int64 `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Participation) TableName() string {
	return "participations"
}

// StatusText 状态文本
func (p *Participation) StatusText() string {
	if text, ok := ParticipationStatusText[p.Status]; ok {
		return text
	}
	return "UNKNOWN"
}

// ==================== ParticipationModel 数据访问层 ====================

type ParticipationModel struct {
	db *gorm.DB
}

func NewParticipationModel(db *gorm.DB) *ParticipationModel {
	return &ParticipationModel{db: db}
}

// CreateTx 在事务内创建报名记录
// 唯一索引冲突（并发重复 join）返回 ErrAlreadyJoined
func (m *ParticipationModel) CreateTx(ctx context.Context, tx *gorm.DB, p *Participation) error {
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return ErrAlreadyJoined
		}
		return err
	}
	return nil
}

// FindByEventUser 根据活动ID和用户ID查询
func (m *ParticipationModel) FindByEventUser(ctx context.Context, eventID, userID uint64) (*Participation, error) {
	return findParticipation(ctx, m.db, eventID, userID)
}

// FindByEventUserTx 事务内查询（移除/拒绝前取角色用）
func (m *ParticipationModel) FindByEventUserTx(ctx context.Context, tx *gorm.DB, eventID, userID uint64) (*Participation, error) {
	return findParticipation(ctx, tx, eventID, userID)
}

func findParticipation(ctx context.Context, db *gorm.DB, eventID, userID uint64) (*Participation, error) {
	var p Participation
	err := db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipationNotFound
		}
		return nil, err
	}
	return &p, nil
}

// PromoteTx 事务内将 PENDING 提升为 ACTIVE
// 返回受影响行数：0 表示记录不存在或已处理，由调用方区分
func (m *ParticipationModel) PromoteTx(ctx context.Context, tx *gorm.DB, eventID, userID uint64) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&Participation{}).
		Where("event_id = ? AND user_id = ? AND status = ?", eventID, userID, ParticipationStatusPending).
		Update("status", ParticipationStatusActive)
	return result.RowsAffected, result.Error
}

// DeleteTx 事务内删除报名记录
func (m *ParticipationModel) DeleteTx(ctx context.Context, tx *gorm.DB, eventID, userID uint64) (int64, error) {
	result := tx.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&Participation{})
	return result.RowsAffected, result.Error
}

// CountByEventRole 统计活动内某角色的报名行数（不区分 PENDING/ACTIVE）
func (m *ParticipationModel) CountByEventRole(ctx context.Context, eventID uint64, role int8) (int64, error) {
	var count int64
	err := m.db.WithContext(ctx).
		Model(&Participation{}).
		Where("event_id = ? AND role = ?", eventID, role).
		Count(&count).Error
	return count, err
}

// ==================== 列表查询 ====================

// ListQuery 列表查询条件（类型化的可选条件对象）
type ListQuery struct {
	Pagination
	EventID     uint64     // 必填
	Role        int8       // 0 = 全部
	Status      int8       // 0 = 全部
	JoinedRange *TimeRange // 可选报名时间范围
}

// ListResult 列表查询结果
type ListResult struct {
	List     []Participation
	Total    int64
	Page     int
	PageSize int
}

// List 分页列表查询
func (m *ParticipationModel) List(ctx context.Context, query *ListQuery) (*ListResult, error) {
	query.Pagination.Normalize()

	db := m.db.WithContext(ctx).
		Model(&Participation{}).
		Where("event_id = ?", query.EventID)

	if query.Role > 0 {
		db = db.Where("role = ?", query.Role)
	}
	if query.Status > 0 {
		db = db.Where("status = ?", query.Status)
	}
	if !query.JoinedRange.IsZero() {
		if query.JoinedRange.Start > 0 {
			db = db.Where("joined_at >= ?", query.JoinedRange.Start)
		}
		if query.JoinedRange.End > 0 {
			db = db.Where("joined_at <= ?", query.JoinedRange.End)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}

	var list []Participation
	err := db.Order("joined_at DESC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&list).Error
	if err != nil {
		return nil, err
	}

	return &ListResult{
		List:     list,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

// isDuplicateKeyErr 判断是否为重复键错误
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlerr.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
