// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"cat_adoption_server/internal/dao/mysql/repository"
	"cat_adoption_server/internal/infrastructure/notify"
	"cat_adoption_server/internal/service/application"
	"cat_adoption_server/internal/service/message"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过注入的 *Services 访问各个 Service
type Services struct {
	Application ApplicationService // 申请 Service
	Message     MessageService     // 消息 Service
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合实例和通知发布者
//  2. 创建各个 Service 实例
//  3. 返回 Services 聚合
//
// maxActive: 每个申请人进行中的申请上限
func NewServices(repos *repository.Repositories, publisher notify.Publisher, maxActive int) *Services {
	return &Services{
		Application: application.NewApplicationService(repos, publisher, maxActive),
		Message:     message.NewMessageService(repos, publisher),
	}
}
