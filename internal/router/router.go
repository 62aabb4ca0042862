// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cat_adoption_server/internal/handler"
	"cat_adoption_server/internal/infrastructure/metrics"
	"cat_adoption_server/internal/infrastructure/middleware"
)

// Router 路由管理器，持有 Handler 聚合
type Router struct {
	handlers       *handler.Handlers
	requestTimeout time.Duration
}

// NewRouter 创建路由管理器
// requestTimeout: 业务接口的处理时限，数据库锁等待包含在内
func NewRouter(handlers *handler.Handlers, requestTimeout time.Duration) *Router {
	return &Router{handlers: handlers, requestTimeout: requestTimeout}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	// 公开路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", metrics.Handler())

	// 需要认证的业务路由
	api := r.Group("/", middleware.JWTAuth(), middleware.RequestTimeout(rt.requestTimeout))
	rt.RegisterApplicationRoutes(api) // 领养申请路由
	rt.RegisterMessageRoutes(api)     // 申请沟通消息路由

	// WebSocket 是长连接，不设置请求时限
	ws := r.Group("/", middleware.JWTAuth())
	rt.RegisterWebSocketRoutes(ws)
}
