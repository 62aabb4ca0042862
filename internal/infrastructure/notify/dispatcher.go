package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"cat_adoption_server/internal/infrastructure/metrics"
)

const deliverTimeout = 5 * time.Second

// Dispatcher 将事件异步扇出到所有渠道
// 队列满时降级为同步投递，与缓存 Worker Pool 的策略一致
type Dispatcher struct {
	notifiers []Notifier
	tasks     chan Event
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher 创建分发器并启动 workers 个投递协程
func NewDispatcher(workers, queueSize int, notifiers ...Notifier) *Dispatcher {
	d := &Dispatcher{
		notifiers: notifiers,
		tasks:     make(chan Event, queueSize),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	zap.L().Info("Notify Dispatcher started", zap.Int("workers", workers), zap.Int("buffer", queueSize), zap.Int("notifiers", len(notifiers)))
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for event := range d.tasks {
		d.deliver(event)
	}
}

// Publish 提交事件，不返回错误
func (d *Dispatcher) Publish(event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	select {
	case d.tasks <- event:
	default:
		zap.L().Warn("Notify queue full, delivering synchronously", zap.String("event", string(event.Type)))
		d.deliver(event)
	}
}

// deliver 逐个渠道投递，单个渠道失败或 panic 不影响其他渠道
func (d *Dispatcher) deliver(event Event) {
	for _, n := range d.notifiers {
		d.deliverOne(n, event)
	}
}

func (d *Dispatcher) deliverOne(n Notifier, event Event) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.NotificationsFailed.WithLabelValues(n.Name(), string(event.Type)).Inc()
			zap.L().Error("Notifier panic", zap.String("notifier", n.Name()), zap.Any("recover", rec))
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()
	if err := n.Notify(ctx, event); err != nil {
		metrics.NotificationsFailed.WithLabelValues(n.Name(), string(event.Type)).Inc()
		zap.L().Error("通知发送失败",
			zap.String("notifier", n.Name()),
			zap.String("event", string(event.Type)),
			zap.String("application_id", event.ApplicationId),
			zap.Error(err),
		)
	}
}

// Close 停止接收事件并等待队列排空
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.tasks)
		d.wg.Wait()
	})
}

var _ Publisher = (*Dispatcher)(nil)
