// Package websocket 维护在线用户连接，把通知事件实时推送给在线的收件人
package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"cat_adoption_server/internal/infrastructure/notify"
)

// Hub 在线连接表，同一用户可有多个连接（多端登录）
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

// NewHub 创建连接表
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.UserId] == nil {
		h.clients[c.UserId] = make(map[*Client]struct{})
	}
	h.clients[c.UserId][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[c.UserId]
	if !ok {
		return
	}
	if _, ok := conns[c]; ok {
		delete(conns, c)
		close(c.send)
	}
	if len(conns) == 0 {
		delete(h.clients, c.UserId)
	}
}

// Online 用户是否在线
func (h *Hub) Online(userId string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userId]) > 0
}

// PushToUser 推送给用户的全部连接，返回成功入队的连接数
// 发送缓冲已满的连接跳过，不阻塞调用方
func (h *Hub) PushToUser(userId string, payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for c := range h.clients[userId] {
		select {
		case c.send <- payload:
			delivered++
		default:
			zap.L().Warn("ws发送缓冲已满，丢弃推送", zap.String("user_id", userId))
		}
	}
	return delivered
}

// Close 断开全部连接
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userId, conns := range h.clients {
		for c := range conns {
			close(c.send)
		}
		delete(h.clients, userId)
	}
}

// Name 实现 notify.Notifier
func (h *Hub) Name() string { return "websocket" }

// Notify 推送给在线收件人，离线用户由其他渠道兜底
// 推送内容不带收件人列表，客户端看不到其他收件人
func (h *Hub) Notify(_ context.Context, event notify.Event) error {
	recipients := event.Recipients
	event.Recipients = nil
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	for _, userId := range recipients {
		h.PushToUser(userId, payload)
	}
	return nil
}

var _ notify.Notifier = (*Hub)(nil)
