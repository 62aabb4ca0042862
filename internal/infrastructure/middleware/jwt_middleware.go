package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/errorx"
	"cat_adoption_server/pkg/util/jwt"
)

// 上下文中的键
const (
	ContextUserID  = "user_id"
	ContextIsAdmin = "is_admin"
	ContextActor   = "actor"
)

// JWTAuth JWT 认证中间件
// 验证 Access Token 并将调用者身份存入上下文
// 浏览器建立 WebSocket 时无法设置 Header，允许通过 token 查询参数传递
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从 Header 获取 Token
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "请先登录")
			return
		}

		// 2. 验证 Token
		claims, err := jwt.ParseToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Token 已过期或无效，请重新登录")
			return
		}

		// 3. 验证是否为 Access Token
		if claims.Subject != "access_token" || claims.UserID == "" {
			abortUnauthorized(c, "请使用 Access Token 访问此接口")
			return
		}

		// 4. 将调用者身份存入上下文，供后续 Handler 使用
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextIsAdmin, claims.IsAdmin)
		c.Set(ContextActor, model.NewActor(claims.UserID, claims.IsAdmin))
		c.Next()
	}
}

// ActorFrom 读取认证中间件写入的调用者，未经过中间件时返回匿名调用者
func ActorFrom(c *gin.Context) model.Actor {
	if v, ok := c.Get(ContextActor); ok {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Anonymous
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query("token")
		return token, token != ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": errorx.CodeUnauthorized,
		"msg":  msg,
	})
}
