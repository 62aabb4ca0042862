// Package router 提供 HTTP 路由注册
// 本文件定义领养申请相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes 注册领养申请路由（需要认证）
func (rt *Router) RegisterApplicationRoutes(rg *gin.RouterGroup) {
	applicationGroup := rg.Group("/application")
	{
		applicationGroup.POST("/create", rt.handlers.Application.Create)             // 提交申请（幂等）
		applicationGroup.GET("/list", rt.handlers.Application.List)                  // 我的申请
		applicationGroup.GET("/detail", rt.handlers.Application.Detail)              // 申请详情，救助站首次查看自动进入审核
		applicationGroup.POST("/updateStatus", rt.handlers.Application.UpdateStatus) // 变更状态
		applicationGroup.POST("/archive", rt.handlers.Application.Archive)           // 隐藏已结束的申请
	}
}
