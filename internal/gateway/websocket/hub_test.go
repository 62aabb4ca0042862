package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat_adoption_server/internal/infrastructure/notify"
	"cat_adoption_server/pkg/enum/notify/notify_event_enum"
)

func TestHubPushesEventToOnlineRecipient(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, Serve(hub, w, r, r.URL.Query().Get("user")))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=U1"
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Online("U1") }, time.Second, 10*time.Millisecond)

	err = hub.Notify(context.Background(), notify.Event{
		Type:          notify_event_enum.MESSAGE_SENT,
		ApplicationId: "A1",
		Recipients:    []string{"U1", "U-offline"},
	})
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got notify.Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "A1", got.ApplicationId)
	assert.Empty(t, got.Recipients)
	assert.NotContains(t, string(data), "U-offline")
	assert.False(t, hub.Online("U-offline"))
}

func TestPushToOfflineUserIsNoop(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.PushToUser("nobody", []byte("{}")))
}
