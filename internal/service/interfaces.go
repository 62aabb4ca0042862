// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"context"

	"cat_adoption_server/internal/dto/request"
	"cat_adoption_server/internal/dto/respond"
	"cat_adoption_server/internal/model"
)

// ApplicationService 领养申请业务接口
// 处理申请的创建、状态流转、查看与隐藏
type ApplicationService interface {
	// Create 提交申请，已有进行中的申请时幂等返回
	Create(ctx context.Context, actor model.Actor, req request.CreateApplicationRequest) (*respond.CreateApplicationRespond, error)
	// UpdateStatus 救助站成员变更申请状态
	UpdateStatus(ctx context.Context, actor model.Actor, req request.UpdateStatusRequest) (*respond.StatusUpdateRespond, error)
	// GetDetail 查看申请详情，救助站首次查看时自动进入审核
	GetDetail(ctx context.Context, actor model.Actor, applicationId string) (*respond.ApplicationRespond, error)
	// Archive 在调用者一侧隐藏已结束的申请
	Archive(ctx context.Context, actor model.Actor, applicationId string) error
	// List 调用者可见的申请列表
	List(ctx context.Context, actor model.Actor) ([]respond.ApplicationRespond, error)
}

// MessageService 申请沟通消息业务接口
type MessageService interface {
	// List 申请下的消息列表，必须指定申请
	List(ctx context.Context, actor model.Actor, applicationId string) ([]respond.MessageRespond, error)
	// Send 发送消息
	Send(ctx context.Context, actor model.Actor, req request.SendMessageRequest) (*respond.MessageRespond, error)
	// MarkRead 标记对方消息为已读
	MarkRead(ctx context.Context, actor model.Actor, applicationId string) (*respond.MarkReadRespond, error)
	// UnreadCount 未读消息数
	UnreadCount(ctx context.Context, actor model.Actor, applicationId string) (*respond.UnreadCountRespond, error)
}
