package errorx

import (
	"errors"
	"fmt"
)

// CodeError 带业务错误码的自定义错误
// 实现了 error 接口，支持 %w 包装底层错误，且能被 errors.Is/errors.As 识别
type CodeError struct {
	Code  int    // 业务错误码
	Msg   string // 错误消息
	Data  any    // 附加给调用方的结构化信息（如非法状态流转的可选目标）
	cause error  // 被包装的底层错误
}

// Error 实现 Go 标准 error 接口
// 当存在底层错误时，返回格式为 "消息: 底层错误"；否则仅返回消息
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap 实现 errors.Unwrap 接口，支持 errors.Is/errors.As 向下追溯
func (e *CodeError) Unwrap() error {
	return e.cause
}

// Is 按业务码比较，使预定义实例可直接用于 errors.Is
func (e *CodeError) Is(target error) bool {
	var t *CodeError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithData 返回附带结构化数据的副本，原实例不受影响
func (e *CodeError) WithData(data any) *CodeError {
	cp := *e
	cp.Data = data
	return &cp
}

// New 创建一个新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf 创建一个带格式化消息的 CodeError
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap 包装底层错误，添加业务错误码和消息
// 用法: errorx.Wrap(err, CodeNotFound, "申请不存在")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf 包装底层错误，支持格式化消息
// 用法: errorx.Wrapf(err, CodeNotFound, "申请 %s 不存在", applicationId)
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode 从错误中提取业务错误码，如果不是 CodeError 则返回默认码
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy // 默认返回服务繁忙
}

// HasCode 判断错误链中是否包含指定业务码
func HasCode(err error, code int) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == code
}

// 业务状态码常量定义
const (
	CodeSuccess             = 1000 // 成功
	CodeInvalidParam        = 1001 // 请求参数错误
	CodeUserNotExist        = 1003 // 用户不存在
	CodeServerBusy          = 1005 // 服务繁忙
	CodeUnauthorized        = 1006 // 未授权/认证失败
	CodeNotFound            = 1008 // 资源不存在（无权查看时同样返回，避免泄露存在性）
	CodeDBError             = 1010 // 数据库错误
	CodeCacheError          = 1011 // 缓存错误
	CodeForbidden           = 1012 // 有权查看但无权执行该操作
	CodeIllegalTransition   = 1013 // 申请状态不允许流转到目标状态
	CodeShelterNotApproved  = 1014 // 救助站尚未通过审核
	CodeTooManyApplications = 1015 // 进行中的申请数量已达上限
	CodeNotTerminal         = 1016 // 申请尚未结束，不能隐藏
	CodeMissingScope        = 1017 // 缺少必需的查询范围（如 application_id）
	CodeContention          = 1018 // 资源繁忙（锁等待超时/死锁），可稍后重试
)

// 预定义常用错误实例
// 这些实例既可直接返回，也可用于 errors.Is 比较
var (
	ErrInvalidParam = New(CodeInvalidParam, "请求参数错误")
	ErrServerBusy   = New(CodeServerBusy, "服务繁忙")
	ErrUnauthorized = New(CodeUnauthorized, "请先登录")
	ErrNotFound     = New(CodeNotFound, "资源不存在")
	ErrForbidden    = New(CodeForbidden, "没有权限执行该操作")
	ErrContention   = New(CodeContention, "当前操作人数较多，请稍后重试")
)

// IsNotFound 检查错误是否为"未找到"类型（包括 gorm.ErrRecordNotFound）
func IsNotFound(err error) bool {
	if HasCode(err, CodeNotFound) {
		return true
	}
	return err != nil && err.Error() == "record not found"
}
