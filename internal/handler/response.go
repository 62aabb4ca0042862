package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"cat_adoption_server/pkg/errorx"
)

// ResponseData 统一响应结构体
// 业务错误同样返回 HTTP 200，由 code 区分
type ResponseData struct {
	Code int `json:"code"` // 业务响应状态码
	Msg  any `json:"msg"`  // 提示信息，参数校验失败时为字段到提示的映射
	Data any `json:"data"` // 数据
}

func reply(c *gin.Context, code int, msg any, data any) {
	c.JSON(http.StatusOK, ResponseData{Code: code, Msg: msg, Data: data})
}

// HandleSuccess 返回成功响应
func HandleSuccess(c *gin.Context, data any) {
	reply(c, errorx.CodeSuccess, "success", data)
}

// HandleError 渲染业务错误，CodeError 之外的错误一律按服务繁忙处理并记录日志
func HandleError(c *gin.Context, err error) {
	var codeErr *errorx.CodeError
	if !errors.As(err, &codeErr) {
		zap.L().Error("system error",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		reply(c, errorx.ErrServerBusy.Code, errorx.ErrServerBusy.Msg, nil)
		return
	}

	switch codeErr.Code {
	case errorx.CodeDBError, errorx.CodeCacheError:
		zap.L().Error("storage error",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	case errorx.CodeContention:
		zap.L().Warn("lock contention",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("path", c.Request.URL.Path),
		)
	}
	// Data 携带结构化信息，如非法流转时的可选状态
	reply(c, codeErr.Code, codeErr.Msg, codeErr.Data)
}

// HandleParamError 处理参数绑定错误，validator 错误会按当前语言翻译
func HandleParamError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		reply(c, errorx.ErrInvalidParam.Code, RemoveTopStruct(validationErrs.Translate(Trans)), nil)
		return
	}

	// JSON 格式错误等
	zap.L().Debug("param bind error", zap.Error(err))
	reply(c, errorx.ErrInvalidParam.Code, errorx.ErrInvalidParam.Msg, nil)
}
