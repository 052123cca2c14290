package admin

import (
	"context"
	"testing"

	"admission-platform/app/admission/api/internal/config"
	"admission-platform/app/admission/api/internal/svc"
	"admission-platform/app/admission/model"
	"admission-platform/common/ctxdata"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/breaker"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminID int64 = 9

// newTestSvcCtx 构造内存库上的服务上下文
func newTestSvcCtx(t *testing.T) *svc.ServiceContext {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Event{},
		&model.Participation{},
		&model.RejectionRecord{},
		&model.User{},
	))

	return &svc.ServiceContext{
		Config: config.Config{
			Admission: config.AdmissionConfig{EnforceCapacity: true},
		},
		DB:          db,
		JoinBreaker: breaker.NewBreaker(breaker.WithName("test-join")),

		EventModel:         model.NewEventModel(db),
		ParticipationModel: model.NewParticipationModel(db),
		RejectionModel:     model.NewRejectionRecordModel(db),
		UserModel:          model.NewUserModel(db),
	}
}

// mustCreateEvent 建一个开放报名的活动
func mustCreateEvent(t *testing.T, svcCtx *svc.ServiceContext, volunteerSlots, scholarSlots uint32) *model.Event {
	t.Helper()

	event := &model.Event{
		Title:               "校园马拉松志愿招募",
		Status:              model.EventStatusOpen,
		TotalVolunteerSlots: volunteerSlots,
		TotalScholarSlots:   scholarSlots,
	}
	require.NoError(t, svcCtx.EventModel.Create(t.Context(), event))
	return event
}

// mustJoin 以指定角色报名，返回后报名行处于 PENDING
func mustJoin(t *testing.T, svcCtx *svc.ServiceContext, eventID, userID uint64, role int8) {
	t.Helper()

	err := svcCtx.DB.WithContext(t.Context()).Transaction(func(tx *gorm.DB) error {
		if err := svcCtx.EventModel.IncrementCount(t.Context(), tx, eventID, role, true); err != nil {
			return err
		}
		return svcCtx.ParticipationModel.CreateTx(t.Context(), tx, &model.Participation{
			EventID: eventID,
			UserID:  userID,
			Role:    role,
			Status:  model.ParticipationStatusPending,
		})
	})
	require.NoError(t, err)
}

// adminCtx 带管理员身份的请求上下文
func adminCtx(t *testing.T) context.Context {
	return ctxdata.WithUserID(t.Context(), testAdminID)
}
