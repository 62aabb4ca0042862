// Package https_server 提供 HTTP/HTTPS 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件和路由
package https_server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cat_adoption_server/internal/config"
	"cat_adoption_server/internal/handler"
	"cat_adoption_server/internal/infrastructure/logger"
	"cat_adoption_server/internal/infrastructure/middleware"
	"cat_adoption_server/internal/router"
)

// Init 初始化 HTTP/HTTPS 服务器并返回 Gin 引擎实例
// 配置顺序：
//  1. 创建 Gin 引擎（空白，不含默认中间件）
//  2. 请求 ID、日志和恢复中间件
//  3. CORS 跨域规则与安全响应头
//  4. 注册业务路由
func Init(handlers *handler.Handlers, conf *config.Config) *gin.Engine {
	if conf.MainConfig.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinLogger())
	// 参数 true 表示在日志中包含堆栈信息
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // 生产环境应指定具体域名
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{middleware.HeaderRequestID}
	engine.Use(cors.New(corsConfig))

	// 由 Nginx 终止 SSL 时关闭 tlsRedirect
	engine.Use(middleware.Secure(conf.MainConfig.Host, conf.MainConfig.Port, conf.MainConfig.TLSRedirect))

	rt := router.NewRouter(handlers, conf.RequestTimeout())
	rt.RegisterRoutes(engine)

	return engine
}
