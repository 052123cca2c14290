package messaging

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 消息处理指标
var (
	messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admission",
		Subsystem: "mq",
		Name:      "messages_total",
		Help:      "消息处理总数（按处理器与结果分类）",
	}, []string{"handler", "status"})

	handleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "admission",
		Subsystem: "mq",
		Name:      "handle_duration_seconds",
		Help:      "消息处理耗时",
		Buckets:   prometheus.DefBuckets,
	}, []string{"handler"})

	// SideEffectFailures 通知侧副作用失败计数（email / notification）
	// 副作用失败只计数和记日志，绝不回滚已提交的核心事务
	SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "admission",
		Subsystem: "notify",
		Name:      "side_effect_failures_total",
		Help:      "邮件/站内通知发送失败计数",
	}, []string{"kind"})
)

// NewMetricsMiddleware 指标收集中间件（Watermill Router 级别）
func NewMetricsMiddleware() message.HandlerMiddleware {
	return func(next message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			handlerName := message.HandlerNameFromCtx(msg.Context())
			if handlerName == "" {
				handlerName = "unknown"
			}

			start := time.Now()
			produced, err := next(msg)
			handleDuration.WithLabelValues(handlerName).Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = "error"
			}
			messagesTotal.WithLabelValues(handlerName, status).Inc()

			return produced, err
		}
	}
}
