package respond

// ApplicantContact 申请人私密联系方式，只对救助站成员展示
type ApplicantContact struct {
	FullName    string `json:"full_name"`
	Age         int    `json:"age"`
	Occupation  string `json:"occupation"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// ApplicationRespond 申请详情/列表项
// 使用位置:
//   - internal/service/application/service.go: Create, GetDetail, List
type ApplicationRespond struct {
	Uuid        string `json:"uuid"`
	ApplicantId string `json:"applicant_id"`
	CatId       string `json:"cat_id"`
	ShelterId   string `json:"shelter_id"`
	Status      string `json:"status"`

	// AllowedActions 当前状态下可流转到的状态
	AllowedActions []string `json:"allowed_actions"`

	HousingType           string `json:"housing_type"`
	HasGarden             bool   `json:"has_garden"`
	FamilyMembers         int    `json:"family_members"`
	HasOtherPets          bool   `json:"has_other_pets"`
	OtherPetsDescription  string `json:"other_pets_description"`
	HasExperience         bool   `json:"has_experience"`
	ExperienceDescription string `json:"experience_description"`
	Motivation            string `json:"motivation"`
	AdditionalNotes       string `json:"additional_notes"`

	// Contact 为空表示调用者不是救助站成员
	Contact *ApplicantContact `json:"contact,omitempty"`

	UnreadCount int64  `json:"unread_count"`
	AppliedAt   string `json:"applied_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CreateApplicationRespond 提交申请响应
// Created=false 表示命中已有的进行中申请
type CreateApplicationRespond struct {
	Application ApplicationRespond `json:"application"`
	Created     bool               `json:"created"`
}

// StatusUpdateRespond 状态变更响应
type StatusUpdateRespond struct {
	ApplicationId  string   `json:"application_id"`
	PreviousStatus string   `json:"previous_status"`
	Status         string   `json:"status"`
	Changed        bool     `json:"changed"`
	AllowedActions []string `json:"allowed_actions"`
}

// ApplicationLimitData 申请数量超限时随错误返回
type ApplicationLimitData struct {
	Limit  int   `json:"limit"`
	Active int64 `json:"active"`
}
