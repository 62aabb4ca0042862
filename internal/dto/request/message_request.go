package request

// SendMessageRequest 发送申请沟通消息
// 使用位置:
//   - internal/handler/message_handler.go: SendMessage
//   - internal/service/message/service.go: Send
type SendMessageRequest struct {
	ApplicationId string `json:"application_id" binding:"required"`
	Content       string `json:"content" binding:"required"`
}
