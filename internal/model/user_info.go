// Package model 定义数据库实体模型
// 本文件定义用户信息模型，注册和登录由身份服务负责，这里只读取通知所需字段
package model

import "gorm.io/gorm"

// UserInfo 用户信息模型
// 对应数据库 user_info 表
type UserInfo struct {
	gorm.Model

	// Uuid 用户唯一标识
	// 格式：U + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:用户唯一id"`

	Nickname  string `gorm:"column:nickname;type:varchar(20);not null;comment:昵称"`
	Telephone string `gorm:"column:telephone;index;not null;type:char(11);comment:电话"`

	// IsAdmin 平台管理员标志
	// 0=普通用户, 1=管理员
	IsAdmin int8 `gorm:"column:is_admin;not null;comment:是否是管理员，0.不是，1.是"`

	// Status 账号状态
	// 0=正常, 1=禁用
	Status int8 `gorm:"column:status;index;not null;comment:状态，0.正常，1.禁用"`
}

// TableName 指定表名
func (UserInfo) TableName() string {
	return "user_info"
}
