package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"cat_adoption_server/pkg/constants"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = constants.CHANNEL_SIZE
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 2048,
	// 跨域由 CORS 中间件统一控制
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client 一个在线连接，只用于服务端推送
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	UserId string
	send   chan []byte
}

// Serve 升级连接并注册到 hub，读写各用一个协程
func Serve(hub *Hub, w http.ResponseWriter, r *http.Request, userId string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	client := &Client{
		hub:    hub,
		conn:   conn,
		UserId: userId,
		send:   make(chan []byte, sendBufferSize),
	}
	hub.register(client)
	go client.writePump()
	go client.readPump()
	zap.L().Info("ws连接成功", zap.String("user_id", userId))
	return nil
}

// readPump 客户端不发送业务数据，这里只处理心跳与断开
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("ws连接异常断开", zap.String("user_id", c.UserId), zap.Error(err))
			}
			return
		}
	}
}

// writePump 从 send 通道取消息写出，定期发送 ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub 已关闭该连接
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				zap.L().Error(err.Error())
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
