package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"admission-platform/app/admission/model"
	"admission-platform/common/messaging"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeGateway 记录调用的邮件网关，failErr 非空时所有发送失败
type fakeGateway struct {
	failErr error
	sent    []sentEmail
}

type sentEmail struct {
	Kind   string
	To     string
	Name   string
	Title  string
	Reason string
}

func (g *fakeGateway) SendJoinPendingEmail(ctx context.Context, to, name, eventTitle string) error {
	g.sent = append(g.sent, sentEmail{Kind: "join_pending", To: to, Name: name, Title: eventTitle})
	return g.failErr
}

func (g *fakeGateway) SendApprovalEmail(ctx context.Context, to, name, eventTitle string) error {
	g.sent = append(g.sent, sentEmail{Kind: "approved", To: to, Name: name, Title: eventTitle})
	return g.failErr
}

func (g *fakeGateway) SendRejectionEmail(ctx context.Context, to, name, eventTitle, reason string) error {
	g.sent = append(g.sent, sentEmail{Kind: "rejected", To: to, Name: name, Title: eventTitle, Reason: reason})
	return g.failErr
}

func (g *fakeGateway) SendRemovalEmail(ctx context.Context, to, name, eventTitle, reason string) error {
	g.sent = append(g.sent, sentEmail{Kind: "removed", To: to, Name: name, Title: eventTitle, Reason: reason})
	return g.failErr
}

type testDeps struct {
	db            *gorm.DB
	users         *model.UserModel
	notifications model.NotificationModel
	gateway       *fakeGateway
}

// newTestDeps 内存库 + 预置一个参与者和两个管理员
func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Notification{}))

	seed := []model.User{
		{UserID: 100, Username: "张三", Email: "zhangsan@example.com", Role: "volunteer", Status: 1},
		{UserID: 1, Username: "管理员A", Email: "admin-a@example.com", Role: "admin", Status: 1},
		{UserID: 2, Username: "管理员B", Email: "admin-b@example.com", Role: "staff", Status: 1},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	return &testDeps{
		db:            db,
		users:         model.NewUserModel(db),
		notifications: model.NewNotificationModel(db),
		gateway:       &fakeGateway{},
	}
}

func newMessage(t *testing.T, payload interface{}) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), data)
}

func countNotifications(t *testing.T, db *gorm.DB, userID uint64, notifyType string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ?", userID, notifyType).
		Count(&count).Error)
	return count
}

func TestMemberJoinedConsumer(t *testing.T) {
	deps := newTestDeps(t)
	c := NewMemberJoinedConsumer(deps.users, deps.notifications, deps.gateway)

	err := c.HandleMemberJoined(newMessage(t, messaging.MemberJoinedEvent{
		EventID:    7,
		EventTitle: "校园马拉松志愿招募",
		UserID:     100,
		Role:       model.RoleVolunteer,
		JoinedAt:   time.Now(),
	}))
	require.NoError(t, err)

	// 报名用户收到确认邮件
	require.Len(t, deps.gateway.sent, 1)
	assert.Equal(t, "join_pending", deps.gateway.sent[0].Kind)
	assert.Equal(t, "zhangsan@example.com", deps.gateway.sent[0].To)
	assert.Equal(t, "校园马拉松志愿招募", deps.gateway.sent[0].Title)

	// 两个管理员各收到一条待审批通知
	assert.Equal(t, int64(1), countNotifications(t, deps.db, 1, model.NotifyTypeJoinPending))
	assert.Equal(t, int64(1), countNotifications(t, deps.db, 2, model.NotifyTypeJoinPending))
}

func TestMemberJoinedEmailFailureIsolated(t *testing.T) {
	deps := newTestDeps(t)
	deps.gateway.failErr = errors.New("smtp connection refused")
	c := NewMemberJoinedConsumer(deps.users, deps.notifications, deps.gateway)

	// 邮件失败不影响站内通知写入，也不触发重试
	err := c.HandleMemberJoined(newMessage(t, messaging.MemberJoinedEvent{
		EventID:    7,
		EventTitle: "校园马拉松志愿招募",
		UserID:     100,
	}))
	require.NoError(t, err)

	assert.Equal(t, int64(1), countNotifications(t, deps.db, 1, model.NotifyTypeJoinPending))
	assert.Equal(t, int64(1), countNotifications(t, deps.db, 2, model.NotifyTypeJoinPending))
}

func TestMemberJoinedUnknownUser(t *testing.T) {
	deps := newTestDeps(t)
	c := NewMemberJoinedConsumer(deps.users, deps.notifications, deps.gateway)

	// 用户不存在：跳过且不重试
	err := c.HandleMemberJoined(newMessage(t, messaging.MemberJoinedEvent{
		EventID: 7,
		UserID:  9999,
	}))
	require.NoError(t, err)
	assert.Empty(t, deps.gateway.sent)
}

func TestMemberJoinedMalformedPayload(t *testing.T) {
	deps := newTestDeps(t)
	c := NewMemberJoinedConsumer(deps.users, deps.notifications, deps.gateway)

	err := c.HandleMemberJoined(message.NewMessage(watermill.NewUUID(), []byte("{not json")))
	require.Error(t, err)
	assert.False(t, messaging.IsRetryable(err))
}

func TestMemberApprovedConsumer(t *testing.T) {
	deps := newTestDeps(t)
	c := NewMemberApprovedConsumer(deps.users, deps.notifications, deps.gateway)

	err := c.HandleMemberApproved(newMessage(t, messaging.MemberApprovedEvent{
		EventID:    7,
		EventTitle: "校园马拉松志愿招募",
		UserID:     100,
		Actor:      messaging.Actor{ID: 1, Name: "管理员A"},
	}))
	require.NoError(t, err)

	require.Len(t, deps.gateway.sent, 1)
	assert.Equal(t, "approved", deps.gateway.sent[0].Kind)
	assert.Equal(t, int64(1), countNotifications(t, deps.db, 100, model.NotifyTypeApproved))
}

func TestMemberRejectedConsumer(t *testing.T) {
	deps := newTestDeps(t)
	c := NewMemberRejectedConsumer(deps.users, deps.notifications, deps.gateway)

	err := c.HandleMemberRejected(newMessage(t, messaging.MemberRejectedEvent{
		EventID:    7,
		EventTitle: "校园马拉松志愿招募",
		UserID:     100,
		Actor:      messaging.Actor{ID: 1, Name: "管理员A"},
		Reason:     "材料不完整",
	}))
	require.NoError(t, err)

	// 拒绝邮件携带原因
	require.Len(t, deps.gateway.sent, 1)
	assert.Equal(t, "rejected", deps.gateway.sent[0].Kind)
	assert.Equal(t, "材料不完整", deps.gateway.sent[0].Reason)
	assert.Equal(t, int64(1), countNotifications(t, deps.db, 100, model.NotifyTypeRejected))
}

func TestMemberRemovedConsumer(t *testing.T) {
	deps := newTestDeps(t)
	c := NewMemberRemovedConsumer(deps.users, deps.notifications, deps.gateway)

	err := c.HandleMemberRemoved(newMessage(t, messaging.MemberRemovedEvent{
		EventID:    7,
		EventTitle: "校园马拉松志愿招募",
		UserID:     100,
		Actor:      messaging.Actor{ID: 1, Name: "管理员A"},
		Reason:     "活动调整",
	}))
	require.NoError(t, err)

	require.Len(t, deps.gateway.sent, 1)
	assert.Equal(t, "removed", deps.gateway.sent[0].Kind)
	assert.Equal(t, int64(1), countNotifications(t, deps.db, 100, model.NotifyTypeRemoved))
}

func TestMemberLeftConsumer(t *testing.T) {
	deps := newTestDeps(t)
	c := NewMemberLeftConsumer(deps.users, deps.notifications)

	err := c.HandleMemberLeft(newMessage(t, messaging.MemberLeftEvent{
		EventID:    7,
		EventTitle: "校园马拉松志愿招募",
		UserID:     100,
	}))
	require.NoError(t, err)

	// 只有管理员收到知会通知，退出用户不收邮件
	assert.Empty(t, deps.gateway.sent)
	assert.Equal(t, int64(1), countNotifications(t, deps.db, 1, model.NotifyTypeMemberLeft))
	assert.Equal(t, int64(1), countNotifications(t, deps.db, 2, model.NotifyTypeMemberLeft))
	assert.Equal(t, int64(0), countNotifications(t, deps.db, 100, model.NotifyTypeMemberLeft))
}
