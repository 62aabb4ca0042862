package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// Secure 安全响应头，sslRedirect=true 时把 HTTP 请求重定向到 host:port
func Secure(host string, port int, sslRedirect bool) gin.HandlerFunc {
	// 在返回函数之前初始化，避免每次请求都重复创建对象
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:        sslRedirect,
		SSLHost:            host + ":" + strconv.Itoa(port),
		FrameDeny:          true,
		ContentTypeNosniff: true,
		IsDevelopment:      gin.Mode() == gin.DebugMode,
	})

	return func(c *gin.Context) {
		// 重定向到 HTTPS 时 Process 同样返回错误，响应已写出
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			// 不能在中间件里用 Fatal，记录日志并终止当前请求
			zap.L().Debug("secure middleware stopped request", zap.Error(err))
			c.Abort()
			return
		}
		c.Next()
	}
}
