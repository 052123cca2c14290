package model

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 内存 sqlite 测试库
// TranslateError 让唯一索引冲突翻译为 gorm.ErrDuplicatedKey，与 MySQL 1062 路径对齐
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&Event{},
		&Participation{},
		&RejectionRecord{},
		&Notification{},
		&User{},
	))
	return db
}

// mustCreateEvent 建一个开放报名的测试活动
func mustCreateEvent(t *testing.T, db *gorm.DB, volunteerSlots, scholarSlots uint32) *Event {
	t.Helper()

	event := &Event{
		Title:               "测试活动",
		Status:              EventStatusOpen,
		TotalVolunteerSlots: volunteerSlots,
		TotalScholarSlots:   scholarSlots,
	}
	require.NoError(t, NewEventModel(db).Create(t.Context(), event))
	return event
}
