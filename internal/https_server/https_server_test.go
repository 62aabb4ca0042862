package https_server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat_adoption_server/internal/config"
	"cat_adoption_server/internal/dao/memory"
	"cat_adoption_server/internal/gateway/websocket"
	"cat_adoption_server/internal/handler"
	"cat_adoption_server/internal/infrastructure/notify"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/internal/service"
	"cat_adoption_server/pkg/enum/shelter/member_role_enum"
	"cat_adoption_server/pkg/enum/shelter/shelter_status_enum"
	"cat_adoption_server/pkg/errorx"
	"cat_adoption_server/pkg/util/jwt"
)

type apiEnvelope struct {
	Code int             `json:"code"`
	Msg  any             `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	tokens map[string]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, handler.InitTrans("zh"))
	jwt.Init("https-server-test", 5)

	store := memory.NewStore()
	for _, id := range []string{"U-applicant", "U-admin", "U-staff"} {
		store.PutUser(model.UserInfo{Uuid: id, Nickname: id})
	}
	store.PutShelter(model.Shelter{Uuid: "S1", Name: "喵星救助站", Status: shelter_status_enum.APPROVED})
	store.PutCat(model.Cat{Uuid: "C1", ShelterId: "S1", Name: "橘子"})
	store.PutMember(model.ShelterMember{ShelterId: "S1", UserId: "U-admin", Role: member_role_enum.ADMIN, IsActive: true})
	store.PutMember(model.ShelterMember{ShelterId: "S1", UserId: "U-staff", Role: member_role_enum.STAFF, IsActive: true})

	hub := websocket.NewHub()
	dispatcher := notify.NewDispatcher(1, 16, notify.LogNotifier{}, hub)
	t.Cleanup(dispatcher.Close)

	svc := service.NewServices(store.Repositories(), dispatcher, 3)
	conf := &config.Config{}
	conf.MainConfig.RequestTimeoutSeconds = 5

	tokens := map[string]string{}
	for _, id := range []string{"U-applicant", "U-admin", "U-staff"} {
		token, err := jwt.GenerateAccessToken(id, false)
		require.NoError(t, err)
		tokens[id] = token
	}
	return &testServer{t: t, engine: Init(handler.NewHandlers(svc, hub), conf), tokens: tokens}
}

func (s *testServer) do(method, path, user string, body any) (int, apiEnvelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+s.tokens[user])
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env apiEnvelope
	if w.Code == http.StatusOK || w.Code == http.StatusUnauthorized {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func TestPingAndAuth(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	status, env := s.do(http.MethodGet, "/application/list", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, errorx.CodeUnauthorized, env.Code)
}

func TestAdoptionFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(http.MethodPost, "/application/create", "U-applicant", map[string]any{
		"cat_id":       "C1",
		"full_name":    "张三",
		"phone_number": "13800000000",
		"address":      "杭州市西湖区",
		"motivation":   "想给它一个家",
	})
	require.Equal(t, errorx.CodeSuccess, env.Code, env.Msg)
	var created struct {
		Application struct {
			Uuid string `json:"uuid"`
		} `json:"application"`
		Created bool `json:"created"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, created.Created)
	appId := created.Application.Uuid

	// 缺少必填字段
	_, env = s.do(http.MethodPost, "/application/create", "U-applicant", map[string]any{"cat_id": "C1"})
	assert.Equal(t, errorx.CodeInvalidParam, env.Code)

	_, env = s.do(http.MethodGet, "/application/detail?application_id="+appId, "U-staff", nil)
	require.Equal(t, errorx.CodeSuccess, env.Code, env.Msg)
	var detail struct {
		Status  string         `json:"status"`
		Contact map[string]any `json:"contact"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "reviewing", detail.Status)
	assert.NotEmpty(t, detail.Contact)

	_, env = s.do(http.MethodPost, "/application/updateStatus", "U-admin", map[string]any{"application_id": appId, "status": "adopted"})
	assert.Equal(t, errorx.CodeInvalidParam, env.Code)

	_, env = s.do(http.MethodPost, "/application/updateStatus", "U-admin", map[string]any{"application_id": appId, "status": "accepted"})
	require.Equal(t, errorx.CodeIllegalTransition, env.Code)
	var illegal struct {
		CurrentStatus   string   `json:"current_status"`
		RequestedStatus string   `json:"requested_status"`
		AllowedStatuses []string `json:"allowed_statuses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &illegal))
	assert.Equal(t, "reviewing", illegal.CurrentStatus)
	assert.Equal(t, []string{"trial", "rejected", "cancelled"}, illegal.AllowedStatuses)

	_, env = s.do(http.MethodGet, "/message/list", "U-applicant", nil)
	assert.Equal(t, errorx.CodeMissingScope, env.Code)

	_, env = s.do(http.MethodPost, "/message/send", "U-staff", map[string]any{"application_id": appId, "content": "你好"})
	assert.Equal(t, errorx.CodeForbidden, env.Code)

	_, env = s.do(http.MethodPost, "/message/send", "U-applicant", map[string]any{"application_id": appId, "content": "你好"})
	require.Equal(t, errorx.CodeSuccess, env.Code, env.Msg)

	_, env = s.do(http.MethodGet, "/message/unreadCount?application_id="+appId, "U-staff", nil)
	require.Equal(t, errorx.CodeSuccess, env.Code)
	assert.JSONEq(t, `{"unread_count":1}`, string(env.Data))

	_, env = s.do(http.MethodPost, "/message/markRead", "U-admin", map[string]any{"application_id": appId})
	require.Equal(t, errorx.CodeSuccess, env.Code)
	assert.JSONEq(t, `{"count":1}`, string(env.Data))

	_, env = s.do(http.MethodPost, "/application/archive", "U-applicant", map[string]any{"application_id": appId})
	assert.Equal(t, errorx.CodeNotTerminal, env.Code)
}
