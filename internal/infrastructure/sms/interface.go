// Package sms 提供短信通知
// 本文件定义短信发送接口，遵循依赖倒置原则
package sms

import "context"

// Sender 短信发送接口
// 抽象短信发送操作，支持多种实现（阿里云、本地 mock 等）
type Sender interface {
	// Send 向手机号发送模板短信，templateParam 为模板变量 JSON
	Send(ctx context.Context, telephone string, templateParam string) error
}

// 确保实现了 Sender 接口
var (
	_ Sender = (*aliyunSender)(nil)
	_ Sender = (*mockSender)(nil)
)
