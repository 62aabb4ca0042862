package sms

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat_adoption_server/internal/config"
	"cat_adoption_server/internal/dao/memory"
	myredis "cat_adoption_server/internal/dao/redis"
	"cat_adoption_server/internal/infrastructure/notify"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/enum/notify/notify_event_enum"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(_ context.Context, telephone string, _ string) error {
	f.sent = append(f.sent, telephone)
	return f.err
}

func statusEvent() notify.Event {
	return notify.Event{
		Type:          notify_event_enum.APPLICATION_STATUS_CHANGED,
		ApplicationId: "A1",
		ToStatus:      "trial",
		Recipients:    []string{"U1"},
	}
}

func newUsers() *memory.Store {
	store := memory.NewStore()
	store.PutUser(model.UserInfo{Uuid: "U1", Telephone: "13800000000"})
	return store
}

func TestStatusNotifierThrottlesDuplicates(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := myredis.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0, 0)
	sender := &fakeSender{}
	n := NewStatusNotifier(sender, newUsers().Repositories().User, cache)

	require.NoError(t, n.Notify(context.Background(), statusEvent()))
	require.NoError(t, n.Notify(context.Background(), statusEvent()))
	assert.Equal(t, []string{"13800000000"}, sender.sent)
}

func TestStatusNotifierReleasesThrottleOnFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := myredis.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0, 0)
	sender := &fakeSender{err: errors.New("quota exceeded")}
	n := NewStatusNotifier(sender, newUsers().Repositories().User, cache)

	assert.Error(t, n.Notify(context.Background(), statusEvent()))
	assert.Error(t, n.Notify(context.Background(), statusEvent()))
	assert.Len(t, sender.sent, 2)
}

func TestStatusNotifierContinuesPastUnknownRecipient(t *testing.T) {
	sender := &fakeSender{}
	n := NewStatusNotifier(sender, newUsers().Repositories().User, nil)

	event := statusEvent()
	event.Recipients = []string{"U-missing", "U1"}
	assert.Error(t, n.Notify(context.Background(), event))
	assert.Equal(t, []string{"13800000000"}, sender.sent)
}

func TestStatusNotifierIgnoresOtherEvents(t *testing.T) {
	sender := &fakeSender{}
	n := NewStatusNotifier(sender, newUsers().Repositories().User, nil)

	require.NoError(t, n.Notify(context.Background(), notify.Event{Type: notify_event_enum.MESSAGE_SENT, Recipients: []string{"U1"}}))
	assert.Empty(t, sender.sent)
}

func TestShouldUseMock(t *testing.T) {
	t.Setenv(config.EnvSmsMode, "")
	assert.True(t, shouldUseMock(config.SmsConfig{AccessKeyID: "your accesskey id", AccessKeySecret: "x"}))
	assert.False(t, shouldUseMock(config.SmsConfig{AccessKeyID: "LTAIxxx", AccessKeySecret: "secret"}))

	t.Setenv(config.EnvSmsMode, "mock")
	assert.True(t, shouldUseMock(config.SmsConfig{AccessKeyID: "LTAIxxx", AccessKeySecret: "secret"}))
}
