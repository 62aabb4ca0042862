package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"cat_adoption_server/pkg/enum/notify/notify_event_enum"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
	err    error
	panics bool
}

func (r *recordingNotifier) Name() string { return "recording" }

func (r *recordingNotifier) Notify(_ context.Context, e Event) error {
	if r.panics {
		panic("boom")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestDispatcherFansOutAndSurvivesFailures(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("smtp down")}
	panicking := &recordingNotifier{panics: true}
	healthy := &recordingNotifier{}
	d := NewDispatcher(2, 10, failing, panicking, healthy, LogNotifier{})

	for i := 0; i < 5; i++ {
		d.Publish(Event{Type: notify_event_enum.MESSAGE_SENT, ApplicationId: "A1"})
	}
	d.Close()

	assert.Equal(t, 5, failing.count())
	assert.Equal(t, 5, healthy.count())
}

func TestPublishFallsBackToSyncWhenQueueFull(t *testing.T) {
	healthy := &recordingNotifier{}
	d := NewDispatcher(0, 0, healthy)
	d.Publish(Event{Type: notify_event_enum.APPLICATION_CREATED})
	assert.Equal(t, 1, healthy.count())
	assert.False(t, healthy.events[0].OccurredAt.IsZero())
	d.Close()
}

func TestPreviewOf(t *testing.T) {
	assert.Equal(t, "hello", PreviewOf("hello", 10))
	assert.Equal(t, "喵喵…", PreviewOf("喵喵喵喵", 2))
}
