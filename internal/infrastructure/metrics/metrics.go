// Package metrics 定义 Prometheus 指标，通过 /metrics 暴露
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ApplicationsCreated 新建申请数；result 为 created 或 existing（幂等返回）
	ApplicationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adoption_applications_created_total",
			Help: "Total number of create application requests by result",
		},
		[]string{"result"},
	)

	// StatusTransitions 状态流转次数
	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adoption_status_transitions_total",
			Help: "Total number of application status transitions",
		},
		[]string{"from", "to", "trigger"},
	)

	// LockContention 锁竞争导致的失败次数
	LockContention = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adoption_lock_contention_total",
			Help: "Total number of operations rejected because of lock contention",
		},
		[]string{"operation"},
	)

	// MessagesSent 发送消息数
	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adoption_messages_sent_total",
			Help: "Total number of messages sent by sender type",
		},
		[]string{"sender_type"},
	)

	// NotificationsFailed 通知投递失败次数
	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adoption_notifications_failed_total",
			Help: "Total number of failed notification deliveries",
		},
		[]string{"notifier", "event"},
	)
)

// Handler /metrics 路由
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
