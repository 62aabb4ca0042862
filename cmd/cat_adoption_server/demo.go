package main

import (
	"cat_adoption_server/internal/dao/memory"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/enum/shelter/member_role_enum"
	"cat_adoption_server/pkg/enum/shelter/shelter_status_enum"
)

// seedDemo 内存模式下的演示数据，目录数据在生产环境由外部系统维护
func seedDemo(store *memory.Store) {
	store.PutUser(model.UserInfo{Uuid: "U-demo-applicant", Nickname: "领养人", Telephone: "13800000001"})
	store.PutUser(model.UserInfo{Uuid: "U-demo-admin", Nickname: "站长", Telephone: "13800000002"})
	store.PutUser(model.UserInfo{Uuid: "U-demo-staff", Nickname: "志愿者", Telephone: "13800000003"})
	store.PutUser(model.UserInfo{Uuid: "U-demo-root", Nickname: "平台管理员", IsAdmin: 1})

	store.PutShelter(model.Shelter{Uuid: "S-demo", Name: "喵星救助站", Status: shelter_status_enum.APPROVED})
	store.PutShelter(model.Shelter{Uuid: "S-demo-pending", Name: "审核中救助站", Status: shelter_status_enum.PENDING})
	store.PutCat(model.Cat{Uuid: "C-demo-1", ShelterId: "S-demo", Name: "橘子"})
	store.PutCat(model.Cat{Uuid: "C-demo-2", ShelterId: "S-demo", Name: "煤球"})
	store.PutCat(model.Cat{Uuid: "C-demo-3", ShelterId: "S-demo-pending", Name: "奶茶"})

	store.PutMember(model.ShelterMember{ShelterId: "S-demo", UserId: "U-demo-admin", Role: member_role_enum.ADMIN, IsActive: true})
	store.PutMember(model.ShelterMember{ShelterId: "S-demo", UserId: "U-demo-staff", Role: member_role_enum.STAFF, IsActive: true})
}
