package mq

import (
	"context"
	"encoding/json"
	"time"

	"admission-platform/common/messaging"

	"github.com/zeromicro/go-zero/core/logx"
)

// Producer 准入服务消息发布器
// nil 安全：Producer 或 Client 为 nil 时所有方法静默返回
type Producer struct {
	client *messaging.Client
}

// NewProducer 创建消息发布器
func NewProducer(client *messaging.Client) *Producer {
	if client == nil {
		return nil
	}
	return &Producer{client: client}
}

// publishAsync 异步发布事件（核心方法）
// - 开新 goroutine，不阻塞调用方
// - defer recover 防 panic 传播
// - 3 秒超时防 goroutine 泄漏
// - 发布失败只记日志，不影响主业务
func (p *Producer) publishAsync(topic string, payload interface{}) {
	if p == nil || p.client == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logx.Errorf("[MQ-Producer] panic recovered: topic=%s, err=%v", topic, r)
			}
		}()

		data, err := json.Marshal(payload)
		if err != nil {
			logx.Errorf("[MQ-Producer] 序列化失败: topic=%s, err=%v", topic, err)
			return
		}

		pubCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := p.client.Publish(pubCtx, topic, data); err != nil {
			logx.Errorf("[MQ-Producer] 发布失败: topic=%s, err=%v", topic, err)
			return
		}

		logx.Infof("[MQ-Producer] 发布成功: topic=%s, size=%d", topic, len(data))
	}()
}

// ==================== 准入事件（Admission MQ 消费）====================

// PublishMemberJoined 发布用户报名事件（进入待审批）
func (p *Producer) PublishMemberJoined(ctx context.Context, eventID uint64, eventTitle string, userID uint64, role int8) {
	p.publishAsync(messaging.TopicMemberJoined, messaging.MemberJoinedEvent{
		EventID:    eventID,
		EventTitle: eventTitle,
		UserID:     userID,
		Role:       role,
		JoinedAt:   time.Now(),
	})
}

// PublishMemberApproved 发布审批通过事件
func (p *Producer) PublishMemberApproved(ctx context.Context, eventID uint64, eventTitle string, userID uint64, actor messaging.Actor) {
	p.publishAsync(messaging.TopicMemberApproved, messaging.MemberApprovedEvent{
		EventID:    eventID,
		EventTitle: eventTitle,
		UserID:     userID,
		Actor:      actor,
		ApprovedAt: time.Now(),
	})
}

// PublishMemberRejected 发布报名拒绝事件
func (p *Producer) PublishMemberRejected(ctx context.Context, eventID uint64, eventTitle string, userID uint64, actor messaging.Actor, reason string) {
	p.publishAsync(messaging.TopicMemberRejected, messaging.MemberRejectedEvent{
		EventID:    eventID,
		EventTitle: eventTitle,
		UserID:     userID,
		Actor:      actor,
		Reason:     reason,
		RejectedAt: time.Now(),
	})
}

// PublishMemberRemoved 发布移出活动事件
func (p *Producer) PublishMemberRemoved(ctx context.Context, eventID uint64, eventTitle string, userID uint64, actor messaging.Actor, reason string) {
	p.publishAsync(messaging.TopicMemberRemoved, messaging.MemberRemovedEvent{
		EventID:    eventID,
		EventTitle: eventTitle,
		UserID:     userID,
		Actor:      actor,
		Reason:     reason,
		RemovedAt:  time.Now(),
	})
}

// PublishMemberLeft 发布主动退出事件
func (p *Producer) PublishMemberLeft(ctx context.Context, eventID uint64, eventTitle string, userID uint64) {
	p.publishAsync(messaging.TopicMemberLeft, messaging.MemberLeftEvent{
		EventID:    eventID,
		EventTitle: eventTitle,
		UserID:     userID,
		LeftAt:     time.Now(),
	})
}
