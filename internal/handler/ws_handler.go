// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 通知推送连接
package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cat_adoption_server/internal/gateway/websocket"
	"cat_adoption_server/internal/infrastructure/middleware"
	"cat_adoption_server/pkg/errorx"
)

// WsHandler WebSocket 处理器
type WsHandler struct {
	hub *websocket.Hub
}

// NewWsHandler 创建 WebSocket 处理器
func NewWsHandler(hub *websocket.Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// Connect 建立通知推送连接
// GET /wss?token=xxx
// 连接只用于服务端推送申请状态变更与新消息事件
func (h *WsHandler) Connect(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if !actor.IsAuthenticated {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}
	// 升级失败时 upgrader 已写回 HTTP 错误
	if err := websocket.Serve(h.hub, c.Writer, c.Request, actor.UserId); err != nil {
		zap.L().Warn("ws升级失败", zap.String("user_id", actor.UserId), zap.Error(err))
	}
}
