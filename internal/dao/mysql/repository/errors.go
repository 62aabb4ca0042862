package repository

import (
	"context"
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"cat_adoption_server/pkg/errorx"
)

// MySQL 锁相关错误号
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// IsContention 判断错误是否由锁竞争引起（锁等待超时、死锁或请求时限耗尽）
func IsContention(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrLockWaitTimeout || myErr.Number == mysqlErrDeadlock
	}
	return false
}

// wrapDBError 包装数据库错误
// 根据错误类型返回不同的错误码：
//   - ErrRecordNotFound -> CodeNotFound
//   - 锁等待超时/死锁/超出请求时限 -> CodeContention
//   - 其他错误 -> CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	case IsContention(err):
		return errorx.Wrap(err, errorx.CodeContention, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf 包装数据库错误（支持格式化消息）
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	case IsContention(err):
		return errorx.Wrapf(err, errorx.CodeContention, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}
