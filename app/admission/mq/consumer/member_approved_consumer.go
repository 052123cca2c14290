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

// MemberApprovedConsumer 审批通过事件消费者
// 给用户发通过邮件 + 站内通知
type MemberApprovedConsumer struct {
	users         *model.UserModel
	notifications model.NotificationModel
	email         email.Gateway
	logger        logx.Logger
}

func NewMemberApprovedConsumer(users *model.UserModel, notifications model.NotificationModel, gateway email.Gateway) *MemberApprovedConsumer {
	return &MemberApprovedConsumer{
		users:         users,
		notifications: notifications,
		email:         gateway,
		logger:        logx.WithContext(context.Background()),
	}
}

func (c *MemberApprovedConsumer) Subscribe(msgClient *messaging.Client) {
	msgClient.Subscribe(messaging.TopicMemberApproved, "admission-notify-approved", c.HandleMemberApproved)
	c.logger.Info("已订阅 admission.member.approved 事件")
}

func (c *MemberApprovedConsumer) HandleMemberApproved(msg *message.Message) error {
	ctx := msg.Context()

	var event messaging.MemberApprovedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Errorf("解析审批通过事件失败: %v", err)
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
		if err := c.email.SendApprovalEmail(ctx, user.Email, user.Username, event.EventTitle); err != nil {
			messaging.SideEffectFailures.WithLabelValues("email").Inc()
			c.logger.Errorf("审批通过邮件发送失败: user_id=%d, err=%v", event.UserID, err)
		}
	}

	if err := c.notifications.Insert(ctx, &model.Notification{
		NotificationID: uuid.NewString(),
		UserID:         event.UserID,
		Type:           model.NotifyTypeApproved,
		Title:          "报名审批通过",
		Content:        fmt.Sprintf("您报名的活动「%s」已通过审批", event.EventTitle),
		RelatedID:      event.EventID,
		ActorID:        event.Actor.ID,
	}); err != nil {
		messaging.SideEffectFailures.WithLabelValues("notification").Inc()
		return messaging.NewRetryableError(fmt.Errorf("写入审批通过通知失败: %w", err))
	}

	c.logger.Infof("审批通过通知已发送: event_id=%d, user_id=%d", event.EventID, event.UserID)
	return nil
}
