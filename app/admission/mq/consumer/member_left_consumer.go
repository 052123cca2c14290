package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"admission-platform/app/admission/model"
	"admission-platform/common/messaging"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
)

// MemberLeftConsumer 主动退出事件消费者
// 只给管理员发知会通知，不给退出用户发邮件
type MemberLeftConsumer struct {
	users         *model.UserModel
	notifications model.NotificationModel
	logger        logx.Logger
}

func NewMemberLeftConsumer(users *model.UserModel, notifications model.NotificationModel) *MemberLeftConsumer {
	return &MemberLeftConsumer{
		users:         users,
		notifications: notifications,
		logger:        logx.WithContext(context.Background()),
	}
}

func (c *MemberLeftConsumer) Subscribe(msgClient *messaging.Client) {
	msgClient.Subscribe(messaging.TopicMemberLeft, "admission-notify-member-left", c.HandleMemberLeft)
	c.logger.Info("已订阅 admission.member.left 事件")
}

func (c *MemberLeftConsumer) HandleMemberLeft(msg *message.Message) error {
	ctx := msg.Context()

	var event messaging.MemberLeftEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Errorf("解析退出事件失败: %v", err)
		return messaging.NewNonRetryableError(fmt.Errorf("解析事件失败: %w", err))
	}

	username := fmt.Sprintf("用户%d", event.UserID)
	user, err := c.users.FindByID(ctx, event.UserID)
	if err == nil {
		username = user.Username
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return messaging.NewRetryableError(fmt.Errorf("查询用户失败: %w", err))
	}

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
			Type:           model.NotifyTypeMemberLeft,
			Title:          "参与者退出活动",
			Content:        fmt.Sprintf("用户「%s」退出了活动「%s」", username, event.EventTitle),
			RelatedID:      event.EventID,
			ActorID:        event.UserID,
		})
	}
	if err := c.notifications.InsertBatch(ctx, list); err != nil {
		messaging.SideEffectFailures.WithLabelValues("notification").Inc()
		return messaging.NewRetryableError(fmt.Errorf("写入退出通知失败: %w", err))
	}

	c.logger.Infof("退出通知已写入: event_id=%d, user_id=%d, admins=%d", event.EventID, event.UserID, len(adminIDs))
	return nil
}
