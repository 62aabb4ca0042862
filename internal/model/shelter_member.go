package model

import (
	"gorm.io/gorm"

	"cat_adoption_server/pkg/enum/shelter/member_role_enum"
)

// ShelterMember 救助站成员关系
// (shelter_id, user_id) 唯一，撤销成员资格只置 IsActive=false
type ShelterMember struct {
	gorm.Model
	ShelterId string                `gorm:"column:shelter_id;type:char(20);uniqueIndex:uk_shelter_user;not null;comment:救助站uuid"`
	UserId    string                `gorm:"column:user_id;type:char(20);uniqueIndex:uk_shelter_user;index;not null;comment:用户uuid"`
	Role      member_role_enum.Role `gorm:"column:role;type:varchar(10);not null;comment:admin管理员 staff员工"`
	IsActive  bool                  `gorm:"column:is_active;not null;default:true;comment:是否有效"`
}

func (ShelterMember) TableName() string {
	return "shelter_member"
}
