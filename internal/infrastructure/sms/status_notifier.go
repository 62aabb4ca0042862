package sms

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"cat_adoption_server/internal/dao/mysql/repository"
	myredis "cat_adoption_server/internal/dao/redis"
	"cat_adoption_server/internal/infrastructure/notify"
	"cat_adoption_server/pkg/constants"
	"cat_adoption_server/pkg/enum/notify/notify_event_enum"
)

// 同一申请同一目标状态在窗口期内只发一次
const statusSmsThrottle = constants.STATUS_SMS_THROTTLE * time.Minute

// StatusNotifier 申请状态变更时给申请人发短信
type StatusNotifier struct {
	sender Sender
	users  repository.UserRepository
	cache  myredis.CacheService // 可为 nil，此时不做去重
}

// NewStatusNotifier 创建状态短信通知渠道
func NewStatusNotifier(sender Sender, users repository.UserRepository, cache myredis.CacheService) *StatusNotifier {
	return &StatusNotifier{sender: sender, users: users, cache: cache}
}

func (n *StatusNotifier) Name() string { return "sms" }

// Notify 只处理状态变更事件
func (n *StatusNotifier) Notify(ctx context.Context, event notify.Event) error {
	if event.Type != notify_event_enum.APPLICATION_STATUS_CHANGED {
		return nil
	}
	param, err := json.Marshal(map[string]string{"status": event.ToStatus})
	if err != nil {
		return err
	}

	// 单个收件人失败不影响其他收件人，错误汇总后交给分发器记录
	var errs []error
	for _, userId := range event.Recipients {
		user, err := n.users.FindByUuid(ctx, userId)
		if err != nil {
			zap.L().Warn("查询短信收件人失败", zap.String("user_id", userId), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if user.Telephone == "" {
			continue
		}

		key := "sms_status_" + event.ApplicationId + "_" + event.ToStatus + "_" + userId
		if n.cache != nil {
			// 先占位后发送，避免并发重复发送
			ok, err := n.cache.SetNX(ctx, key, "1", statusSmsThrottle)
			if err != nil {
				zap.L().Warn("短信去重检查失败，继续发送", zap.Error(err))
			} else if !ok {
				continue
			}
		}

		if err := n.sender.Send(ctx, user.Telephone, string(param)); err != nil {
			// 发送失败释放占位，允许之后重试
			if n.cache != nil {
				_ = n.cache.Delete(ctx, key)
			}
			zap.L().Warn("状态短信发送失败", zap.String("user_id", userId), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ notify.Notifier = (*StatusNotifier)(nil)
