// Package dao 提供数据访问层的初始化
// 负责建立 MySQL 连接、自动迁移表结构、初始化 Repository 层
package dao

import (
	"fmt"
	"time"

	"cat_adoption_server/internal/config"
	"cat_adoption_server/internal/dao/mysql/repository"
	"cat_adoption_server/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// GormDB 全局 GORM 数据库实例
var GormDB *gorm.DB

// Init 初始化数据库连接并返回 Repository 聚合
// 执行步骤：
//  1. 从配置读取 MySQL 连接信息并构建 DSN
//  2. 使用 GORM 建立数据库连接并配置连接池
//  3. 执行 AutoMigrate 自动迁移表结构
//  4. 创建 Repository 实例
func Init(conf *config.MysqlConfig) (*repository.Repositories, error) {
	// 格式：user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.User,
		conf.Password,
		conf.Host,
		conf.Port,
		conf.DatabaseName,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		// 单条写入不需要隐式事务，需要事务的地方显式调用 Repositories.Transaction
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 目录表（user_info/shelter/cat/shelter_member）由外部系统写入，这里只保证表存在
	if err := db.AutoMigrate(
		&model.UserInfo{},
		&model.Shelter{},
		&model.Cat{},
		&model.ShelterMember{},
		&model.Application{},
		&model.Message{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	GormDB = db
	zap.L().Info("MySQL 连接成功", zap.String("database", conf.DatabaseName))
	return repository.NewRepositories(db), nil
}
