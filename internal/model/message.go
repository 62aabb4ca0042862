// Package model 定义数据库实体模型
// 本文件定义申请内沟通消息模型
package model

import (
	"database/sql"
	"time"

	"cat_adoption_server/pkg/enum/message/sender_type_enum"
)

// Message 申请沟通消息
// 对应数据库 message 表，只追加，核心流程不删除
type Message struct {
	ID uint `gorm:"primarykey"`

	// Uuid 消息唯一标识
	// 使用雪花算法生成的 int64 类型 ID
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	ApplicationId string `gorm:"column:application_id;index:idx_app_read;type:char(20);not null;comment:申请uuid"`
	SenderId      string `gorm:"column:sender_id;index;type:char(20);not null;comment:发送者uuid"`

	// SenderType 发送时根据身份确定，之后即使成员关系变化也不重新计算
	SenderType sender_type_enum.SenderType `gorm:"column:sender_type;type:varchar(10);not null;comment:发送方身份 user/shelter/admin"`

	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;comment:发送时间"`

	// ReadAt 为空表示未读
	ReadAt sql.NullTime `gorm:"column:read_at;index:idx_app_read;comment:已读时间"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}

// IsRead 是否已读
func (m *Message) IsRead() bool {
	return m.ReadAt.Valid
}
