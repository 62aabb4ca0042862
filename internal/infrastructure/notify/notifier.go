// Package notify 定义通知发送契约与异步分发器
// 通知是尽力而为的：在主事务提交后发出，失败只记录日志和指标，不影响调用方
package notify

import (
	"context"
	"time"

	"cat_adoption_server/pkg/enum/notify/notify_event_enum"
)

// Event 通知事件
type Event struct {
	Type          notify_event_enum.Event `json:"type"`
	ApplicationId string                  `json:"application_id"`
	ActorId       string                  `json:"actor_id"`
	Recipients    []string                `json:"recipients,omitempty"`

	// 状态变更
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status,omitempty"`

	// 新消息
	MessageId  int64  `json:"message_id,omitempty"`
	SenderType string `json:"sender_type,omitempty"`
	Preview    string `json:"preview,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier 通知渠道
type Notifier interface {
	// Name 渠道名，用于日志与指标
	Name() string
	// Notify 投递事件，返回错误由分发器记录
	Notify(ctx context.Context, event Event) error
}

// Publisher Service 层依赖的发布接口
type Publisher interface {
	Publish(event Event)
}

// PreviewOf 截取消息预览
func PreviewOf(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "…"
}
