// Package handler 提供 HTTP 请求处理器
// 本文件处理申请沟通消息相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"cat_adoption_server/internal/dto/request"
	"cat_adoption_server/internal/infrastructure/middleware"
	"cat_adoption_server/internal/service"
)

// MessageHandler 消息请求处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建消息处理器实例
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// List 申请下的消息列表
// GET /message/list?application_id=xxx
// 未指定 application_id 时返回 CodeMissingScope
func (h *MessageHandler) List(c *gin.Context) {
	var req request.ApplicationIdRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.List(c.Request.Context(), middleware.ActorFrom(c), req.ApplicationId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Send 发送消息
// POST /message/send
// 请求体: request.SendMessageRequest
func (h *MessageHandler) Send(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.Send(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead 标记对方消息为已读
// POST /message/markRead
// 请求体: request.ApplicationIdRequest
func (h *MessageHandler) MarkRead(c *gin.Context) {
	var req request.ApplicationIdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.MarkRead(c.Request.Context(), middleware.ActorFrom(c), req.ApplicationId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UnreadCount 未读数
// GET /message/unreadCount?application_id=xxx
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	var req request.ApplicationIdRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.UnreadCount(c.Request.Context(), middleware.ActorFrom(c), req.ApplicationId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
