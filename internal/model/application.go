// Package model 定义数据库实体模型
// 本文件定义领养申请模型
package model

import (
	"time"

	"cat_adoption_server/pkg/enum/application/application_status_enum"
)

// Application 领养申请
// 对应数据库 application 表
// 同一申请人对同一只猫最多存在一条进行中的申请，由创建时的行锁保证，不依赖唯一索引
type Application struct {
	ID uint `gorm:"primarykey"`

	// Uuid 申请唯一标识
	// 格式：A + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:申请uuid"`

	ApplicantId string `gorm:"column:applicant_id;index:idx_applicant_cat;type:char(20);not null;comment:申请人uuid"`
	CatId       string `gorm:"column:cat_id;index:idx_applicant_cat;type:char(20);not null;comment:猫咪uuid"`

	// ShelterId 创建时从猫咪所属救助站复制，之后不再随猫咪变更
	ShelterId string `gorm:"column:shelter_id;index;type:char(20);not null;comment:救助站uuid快照"`

	Status application_status_enum.Status `gorm:"column:status;index;type:varchar(20);not null;comment:状态"`

	// 双方各自的隐藏标记，互不影响
	IsHiddenByApplicant bool `gorm:"column:is_hidden_by_applicant;not null;default:false;comment:申请人已隐藏"`
	IsHiddenByShelter   bool `gorm:"column:is_hidden_by_shelter;not null;default:false;comment:救助站已隐藏"`

	// 申请表单
	FullName              string `gorm:"column:full_name;type:varchar(100);not null;comment:姓名"`
	Age                   int    `gorm:"column:age;comment:年龄"`
	Occupation            string `gorm:"column:occupation;type:varchar(100);comment:职业"`
	PhoneNumber           string `gorm:"column:phone_number;type:varchar(20);not null;comment:联系电话"`
	Address               string `gorm:"column:address;type:varchar(255);not null;comment:地址"`
	HousingType           string `gorm:"column:housing_type;type:varchar(20);comment:住房类型"`
	HasGarden             bool   `gorm:"column:has_garden;comment:是否有院子"`
	FamilyMembers         int    `gorm:"column:family_members;comment:家庭成员数"`
	HasOtherPets          bool   `gorm:"column:has_other_pets;comment:是否有其他宠物"`
	OtherPetsDescription  string `gorm:"column:other_pets_description;type:TEXT;comment:其他宠物说明"`
	HasExperience         bool   `gorm:"column:has_experience;comment:是否有养宠经验"`
	ExperienceDescription string `gorm:"column:experience_description;type:TEXT;comment:经验说明"`
	Motivation            string `gorm:"column:motivation;type:TEXT;not null;comment:领养动机"`
	AdditionalNotes       string `gorm:"column:additional_notes;type:TEXT;comment:补充说明"`

	AppliedAt time.Time `gorm:"column:applied_at;autoCreateTime;not null;comment:申请时间"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime;comment:更新时间"`
}

// TableName 指定表名
func (Application) TableName() string {
	return "application"
}
