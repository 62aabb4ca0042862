package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier 将事件写入日志，始终启用，便于追溯
type LogNotifier struct{}

func (LogNotifier) Name() string { return "log" }

func (LogNotifier) Notify(_ context.Context, event Event) error {
	zap.L().Info("notification",
		zap.String("type", string(event.Type)),
		zap.String("application_id", event.ApplicationId),
		zap.String("actor_id", event.ActorId),
		zap.Strings("recipients", event.Recipients),
		zap.String("from_status", event.FromStatus),
		zap.String("to_status", event.ToStatus),
	)
	return nil
}
