package model

// Actor 当前请求的调用者身份，由认证中间件生成，不落库
type Actor struct {
	UserId          string
	IsAuthenticated bool
	IsPlatformAdmin bool
}

// Anonymous 未登录调用者
var Anonymous = Actor{}

// NewActor 已登录调用者
func NewActor(userId string, isPlatformAdmin bool) Actor {
	return Actor{
		UserId:          userId,
		IsAuthenticated: userId != "",
		IsPlatformAdmin: userId != "" && isPlatformAdmin,
	}
}
