// Package handler 提供 HTTP 请求处理器
// 本文件处理领养申请相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"cat_adoption_server/internal/dto/request"
	"cat_adoption_server/internal/infrastructure/middleware"
	"cat_adoption_server/internal/service"
)

// ApplicationHandler 领养申请请求处理器
// 通过构造函数注入 ApplicationService，遵循依赖倒置原则
type ApplicationHandler struct {
	applicationSvc service.ApplicationService
}

// NewApplicationHandler 创建申请处理器实例
func NewApplicationHandler(applicationSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationSvc: applicationSvc}
}

// Create 提交领养申请
// POST /application/create
// 请求体: request.CreateApplicationRequest
// 响应: respond.CreateApplicationRespond，created=false 表示返回的是已有申请
func (h *ApplicationHandler) Create(c *gin.Context) {
	// 1. 绑定并验证请求参数
	var req request.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	// 2. 调用 Service 层处理业务逻辑
	data, err := h.applicationSvc.Create(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	// 3. 返回成功响应
	HandleSuccess(c, data)
}

// List 我的申请（申请人视角 + 所在救助站视角）
// GET /application/list
func (h *ApplicationHandler) List(c *gin.Context) {
	data, err := h.applicationSvc.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Detail 申请详情
// GET /application/detail?application_id=xxx
// 救助站成员首次查看时申请自动进入 reviewing
func (h *ApplicationHandler) Detail(c *gin.Context) {
	var req request.ApplicationIdRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.applicationSvc.GetDetail(c.Request.Context(), middleware.ActorFrom(c), req.ApplicationId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateStatus 变更申请状态
// POST /application/updateStatus
// 请求体: request.UpdateStatusRequest
// 非法流转时 data 中返回 current_status / requested_status / allowed_statuses
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.applicationSvc.UpdateStatus(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Archive 隐藏已结束的申请
// POST /application/archive
// 请求体: request.ApplicationIdRequest
func (h *ApplicationHandler) Archive(c *gin.Context) {
	var req request.ApplicationIdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.applicationSvc.Archive(c.Request.Context(), middleware.ActorFrom(c), req.ApplicationId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
