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

// MemberRejectedConsumer 报名拒绝事件消费者
// 给用户发拒绝邮件（含原因）+ 站内通知
type MemberRejectedConsumer struct {
	users         *model.UserModel
	notifications model.NotificationModel
	email         email.Gateway
	logger        logx.Logger
}

func NewMemberRejectedConsumer(users *model.UserModel, notifications model.NotificationModel, gateway email.Gateway) *MemberRejectedConsumer {
	return &MemberRejectedConsumer{
		users:         users,
		notifications: notifications,
		email:         gateway,
		logger:        logx.WithContext(context.Background()),
	}
}

func (c *MemberRejectedConsumer) Subscribe(msgClient *messaging.Client) {
	msgClient.Subscribe(messaging.TopicMemberRejected, "admission-notify-rejected", c.HandleMemberRejected)
	c.logger.Info("已订阅 admission.member.rejected 事件")
}

func (c *MemberRejectedConsumer) HandleMemberRejected(msg *message.Message) error {
	ctx := msg.Context()

	var event messaging.MemberRejectedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Errorf("解析拒绝事件失败: %v", err)
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
		if err := c.email.SendRejectionEmail(ctx, user.Email, user.Username, event.EventTitle, event.Reason); err != nil {
			messaging.SideEffectFailures.WithLabelValues("email").Inc()
			c.logger.Errorf("拒绝邮件发送失败: user_id=%d, err=%v", event.UserID, err)
		}
	}

	if err := c.notifications.Insert(ctx, &model.Notification{
		NotificationID: uuid.NewString(),
		UserID:         event.UserID,
		Type:           model.NotifyTypeRejected,
		Title:          "报名未通过",
		Content:        fmt.Sprintf("您报名的活动「%s」未通过审批，原因：%s", event.EventTitle, event.Reason),
		RelatedID:      event.EventID,
		ActorID:        event.Actor.ID,
	}); err != nil {
		messaging.SideEffectFailures.WithLabelValues("notification").Inc()
		return messaging.NewRetryableError(fmt.Errorf("写入拒绝通知失败: %w", err))
	}

	c.logger.Infof("拒绝通知已发送: event_id=%d, user_id=%d", event.EventID, event.UserID)
	return nil
}
