// Package router 提供 HTTP 路由注册
// 本文件定义申请沟通消息相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册消息相关路由（需要认证）
func (rt *Router) RegisterMessageRoutes(rg *gin.RouterGroup) {
	messageGroup := rg.Group("/message")
	{
		messageGroup.GET("/list", rt.handlers.Message.List)               // 消息列表，必须指定 application_id
		messageGroup.POST("/send", rt.handlers.Message.Send)              // 发送消息
		messageGroup.POST("/markRead", rt.handlers.Message.MarkRead)      // 标记已读
		messageGroup.GET("/unreadCount", rt.handlers.Message.UnreadCount) // 未读数
	}
}
