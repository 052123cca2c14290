package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"admission-platform/app/admission/model"
	"admission-platform/common/messaging"
	"admission-platform/common/utils/email"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
)

// MemberJoinedConsumer 报名事件消费者
// 给报名用户发确认邮件，给全部管理员发待审批站内通知
type MemberJoinedConsumer struct {
	users         *model.UserModel
	notifications model.NotificationModel
	email         email.Gateway
	logger        logx.Logger
}

func NewMemberJoinedConsumer(users *model.UserModel, notifications model.NotificationModel, gateway email.Gateway) *MemberJoinedConsumer {
	return &MemberJoinedConsumer{
		users:         users,
		notifications: notifications,
		email:         gateway,
		logger:        logx.WithContext(context.Background()),
	}
}

func (c *MemberJoinedConsumer) Subscribe(msgClient *messaging.Client) {
	msgClient.Subscribe(messaging.TopicMemberJoined, "admission-notify-join-pending", c.HandleMemberJoined)
	c.logger.Info("已订阅 admission.member.joined 事件")
}

func (c *MemberJoinedConsumer) HandleMemberJoined(msg *message.Message) error {
	ctx := msg.Context()

	var event messaging.MemberJoinedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Errorf("解析报名事件失败: %v", err)
		return messaging.NewNonRetryableError(fmt.Errorf("解析事件失败: %w", err))
	}

	c.logger.Infof("收到报名事件: event_id=%d, user_id=%d", event.EventID, event.UserID)

	// 1. 给报名用户发确认邮件（尽力而为，失败不重试）
	user, err := c.users.FindByID(ctx, event.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			c.logger.Errorf("报名用户不存在，跳过通知: user_id=%d", event.UserID)
			return nil
		}
		return messaging.NewRetryableError(fmt.Errorf("查询用户失败: %w", err))
	}
	if user.Email != "" {
		if err := c.email.SendJoinPendingEmail(ctx, user.Email, user.Username, event.EventTitle); err != nil {
			messaging.SideEffectFailures.WithLabelValues("email").Inc()
			c.logger.Errorf("报名确认邮件发送失败: user_id=%d, err=%v", event.UserID, err)
		}
	}

	// 2. 给全部管理员发待审批站内通知
	adminIDs, err := c.users.ListAdminIDs(ctx)
	if err != nil {
		return messaging.NewRetryableError(fmt.Errorf("查询管理员列表失败: %w", err))
	}
	if len(adminIDs) == 0 {
		return nil
	}

	list := make([]*model.Notification, 0, len(adminIDs))
	for _, adminID := range adminIDs {
		list = append(list, &model.Notification{
			NotificationID: uuid.NewString(),
			UserID:         adminID,
			Type:           model.NotifyTypeJoinPending,
			Title:          "新报名待审批",
			Content:        fmt.Sprintf("用户「%s」报名了活动「%s」，等待审批", user.Username, event.EventTitle),
			RelatedID:      event.EventID,
			ActorID:        event.UserID,
		})
	}
	if err := c.notifications.InsertBatch(ctx, list); err != nil {
		messaging.SideEffectFailures.WithLabelValues("notification").Inc()
		return messaging.NewRetryableError(fmt.Errorf("写入待审批通知失败: %w", err))
	}

	c.logger.Infof("待审批通知已写入: event_id=%d, admins=%d", event.EventID, len(adminIDs))
	return nil
}
