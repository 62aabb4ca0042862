// Package model 定义数据库实体模型
// 本文件定义由外部系统维护、本服务只读的目录数据
package model

import (
	"gorm.io/gorm"

	"cat_adoption_server/pkg/enum/shelter/shelter_status_enum"
)

// Shelter 救助站
type Shelter struct {
	gorm.Model
	Uuid   string                     `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:救助站uuid"`
	Name   string                     `gorm:"column:name;type:varchar(100);not null;comment:名称"`
	Status shelter_status_enum.Status `gorm:"column:verification_status;type:varchar(20);not null;comment:审核状态"`
}

func (Shelter) TableName() string {
	return "shelter"
}

// IsApproved 是否可以接收领养申请
func (s *Shelter) IsApproved() bool {
	return s.Status == shelter_status_enum.APPROVED
}

// Cat 待领养的猫咪
type Cat struct {
	gorm.Model
	Uuid      string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:猫咪uuid"`
	ShelterId string `gorm:"column:shelter_id;index;type:char(20);not null;comment:所属救助站uuid"`
	Name      string `gorm:"column:name;type:varchar(50);not null;comment:名字"`
}

func (Cat) TableName() string {
	return "cat"
}
