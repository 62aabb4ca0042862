// Package sender_type_enum 消息发送方身份，发送时确定，之后不再变化
package sender_type_enum

type SenderType string

const (
	USER    SenderType = "user"    // 申请人
	SHELTER SenderType = "shelter" // 救助站成员
	ADMIN   SenderType = "admin"   // 平台管理员
)
