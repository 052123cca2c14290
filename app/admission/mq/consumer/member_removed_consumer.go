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

// MemberRemovedConsumer 移出活动事件消费者
// 给用户发移出邮件 + 站内通知（非惩罚性，可再次报名）
type MemberRemovedConsumer struct {
	users         *model.UserModel
	notifications model.NotificationModel
	email         email.Gateway
	logger        logx.Logger
}

func NewMemberRemovedConsumer(users *model.UserModel, notifications model.NotificationModel, gateway email.Gateway) *MemberRemovedConsumer {
	return &MemberRemovedConsumer{
		users:         users,
		notifications: notifications,
		email:         gateway,
		logger:        logx.WithContext(context.Background()),
	}
}

func (c *MemberRemovedConsumer) Subscribe(msgClient *messaging.Client) {
	msgClient.Subscribe(messaging.TopicMemberRemoved, "admission-notify-removed", c.HandleMemberRemoved)
	c.logger.Info("已订阅 admission.member.removed 事件")
}

func (c *MemberRemovedConsumer) HandleMemberRemoved(msg *message.Message) error {
	ctx := msg.Context()

	var event messaging.MemberRemovedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Errorf("解析移出事件失败: %v", err)
		return messaging.NewNonRetryableError(fmt.Errorf("解析事件失败: %w", err))
	}

	user, err := c.users.FindByID(ctx, event.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			c.logger.Errorf("用户不存在，跳过通知: user_id=%d", event.UserID)
			return nil
		}
		return messaging.NewRetryableError(fmt.Errorf("查询用户失败: %w", err))
	}

	if user.Email != "" {
		if err := c.email.SendRemovalEmail(ctx, user.Email, user.Username, event.EventTitle, event.Reason); err != nil {
			messaging.SideEffectFailures.WithLabelValues("email").Inc()
			c.logger.Errorf("移出邮件发送失败: user_id=%d, err=%v", event.UserID, err)
		}
	}

	content := fmt.Sprintf("您已被移出活动「%s」", event.EventTitle)
	if event.Reason != "" {
		content = fmt.Sprintf("您已被移出活动「%s」，原因：%s", event.EventTitle, event.Reason)
	}
	if err := c.notifications.Insert(ctx, &model.Notification{
		NotificationID: uuid.NewString(),
		UserID:         event.UserID,
		Type:           model.NotifyTypeRemoved,
		Title:          "已被移出活动",
		Content:        content,
		RelatedID:      event.EventID,
		ActorID:        event.Actor.ID,
	}); err != nil {
		messaging.SideEffectFailures.WithLabelValues("notification").Inc()
		return messaging.NewRetryableError(fmt.Errorf("写入移出通知失败: %w", err))
	}

	c.logger.Infof("移出通知已发送: event_id=%d, user_id=%d", event.EventID, event.UserID)
	return nil
}
