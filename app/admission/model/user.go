package model

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("用户不存在")
)

// User 用户目录（用户服务维护的表，这里只读取归因/联系信息）
type User struct {
	UserID   uint64 `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username string `gorm:"column:username;type:varchar(50)" json:"username"`
	Avatar   string `gorm:"column:avatar;type:varchar(500);default:''" json:"avatar"`
	Email    string `gorm:"column:email;type:varchar(100)" json:"email"`
	Role     string `gorm:"column:role;type:varchar(20)" json:"role"`
	Status   int8   `gorm:"column:status;default:1" json:"status"`
}

func (User) TableName() string {
	return "users"
}

// Actor 操作人归因数据（附加在管理员触发的状态变更上）
type Actor struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// UserModel 用户目录访问层（只读）
type UserModel struct {
	db *gorm.DB
}

func NewUserModel(db *gorm.DB) *UserModel {
	return &UserModel{db: db}
}

// FindByID 根据ID查询
func (m *UserModel) FindByID(ctx context.Context, userID uint64) (*User, error) {
	var user User
	err := m.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindActor 操作人归因信息（查询失败时回退为仅ID）
func (m *UserModel) FindActor(ctx context.Context, userID uint64) Actor {
	user, err := m.FindByID(ctx, userID)
	if err != nil {
		return Actor{ID: userID}
	}
	return Actor{
		ID:     user.UserID,
		Name:   user.Username,
		Avatar: user.Avatar,
	}
}

// ListAdminIDs 获取所有可管理报名的用户ID（admin / staff）
func (m *UserModel) ListAdminIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := m.db.WithContext(ctx).
		Model(&User{}).
		Where("role IN ? AND status = 1", []string{"admin", "staff"}).
		Pluck("user_id", &ids).Error
	return ids, err
}
