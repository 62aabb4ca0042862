package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cat_adoption_server/pkg/errorx"
)

// NewRepositories 创建基于 GORM 的 Repository 实例
// db: GORM 数据库实例（可以是事务 db）
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Shelter:     NewShelterRepository(db),
		Cat:         NewCatRepository(db),
		Membership:  NewMembershipRepository(db),
		Application: NewApplicationRepository(db),
		Message:     NewMessageRepository(db),
		TxRunner:    gormTxRunner(db),
	}
}

// gormTxRunner 使用 db.Transaction 执行事务
// ctx 的截止时间同时约束锁等待，超时由 wrapDBError 转为 CodeContention
func gormTxRunner(db *gorm.DB) TxFunc {
	return func(ctx context.Context, fn func(txRepos *Repositories) error) error {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(NewRepositories(tx))
		})
		if err == nil {
			return nil
		}
		// 业务错误原样返回，开启/提交事务失败才需要包装
		var codeErr *errorx.CodeError
		if errors.As(err, &codeErr) {
			return err
		}
		return wrapDBError(err, "执行事务")
	}
}
