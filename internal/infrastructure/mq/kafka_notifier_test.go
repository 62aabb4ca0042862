package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat_adoption_server/internal/infrastructure/notify"
	"cat_adoption_server/pkg/enum/notify/notify_event_enum"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaNotifierKeysByApplication(t *testing.T) {
	w := &fakeWriter{}
	n := &KafkaNotifier{writer: w}

	err := n.Notify(context.Background(), notify.Event{
		Type:          notify_event_enum.APPLICATION_STATUS_CHANGED,
		ApplicationId: "A1",
		FromStatus:    "trial",
		ToStatus:      "accepted",
		Recipients:    []string{"U1"},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	assert.Equal(t, "A1", string(w.msgs[0].Key))
	var decoded notify.Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, "accepted", decoded.ToStatus)
	assert.Equal(t, "application_status_changed", string(w.msgs[0].Headers[0].Value))
}

func TestKafkaNotifierSurfacesWriteError(t *testing.T) {
	n := &KafkaNotifier{writer: &fakeWriter{err: errors.New("broker down")}}
	assert.Error(t, n.Notify(context.Background(), notify.Event{ApplicationId: "A1"}))
}
