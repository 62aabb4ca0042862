// Package notify_event_enum 通知事件类型
package notify_event_enum

type Event string

const (
	APPLICATION_CREATED        Event = "application_created"
	APPLICATION_STATUS_CHANGED Event = "application_status_changed"
	MESSAGE_SENT               Event = "message_sent"
)
