package respond

// MessageRespond 申请沟通消息
// 使用位置:
//   - internal/service/message/service.go: List, Send
type MessageRespond struct {
	// Uuid 雪花 ID 以字符串返回，避免 JavaScript 精度丢失
	Uuid          string `json:"uuid"`
	ApplicationId string `json:"application_id"`
	SenderId      string `json:"sender_id"`
	SenderType    string `json:"sender_type"`
	Content       string `json:"content"`
	IsRead        bool   `json:"is_read"`
	CreatedAt     string `json:"created_at"`
}

// MarkReadRespond 标记已读响应
type MarkReadRespond struct {
	Count int64 `json:"count"`
}

// UnreadCountRespond 未读数响应
type UnreadCountRespond struct {
	UnreadCount int64 `json:"unread_count"`
}
