package request

// CreateApplicationRequest 提交领养申请请求
// 使用位置:
//   - internal/handler/application_handler.go: CreateApplication
//   - internal/service/application/service.go: Create
type CreateApplicationRequest struct {
	CatId                 string `json:"cat_id" binding:"required"`
	FullName              string `json:"full_name" binding:"required,max=100"`
	Age                   int    `json:"age" binding:"omitempty,gte=18,lte=120"`
	Occupation            string `json:"occupation" binding:"max=100"`
	PhoneNumber           string `json:"phone_number" binding:"required,max=20"`
	Address               string `json:"address" binding:"required,max=255"`
	HousingType           string `json:"housing_type" binding:"omitempty,oneof=apartment house condo other"`
	HasGarden             bool   `json:"has_garden"`
	FamilyMembers         int    `json:"family_members" binding:"gte=0,lte=50"`
	HasOtherPets          bool   `json:"has_other_pets"`
	OtherPetsDescription  string `json:"other_pets_description" binding:"max=1000"`
	HasExperience         bool   `json:"has_experience"`
	ExperienceDescription string `json:"experience_description" binding:"max=1000"`
	Motivation            string `json:"motivation" binding:"required,max=2000"`
	AdditionalNotes       string `json:"additional_notes" binding:"max=2000"`
}

// UpdateStatusRequest 救助站成员变更申请状态
// 使用位置:
//   - internal/handler/application_handler.go: UpdateStatus
type UpdateStatusRequest struct {
	ApplicationId string `json:"application_id" binding:"required"`
	Status        string `json:"status" binding:"required,app_status"`
}

// ApplicationIdRequest 只携带申请 id 的请求（POST body 或 GET query）
// 是否必填由 Service 层判断，消息列表缺少 id 时返回专门的错误码
type ApplicationIdRequest struct {
	ApplicationId string `json:"application_id" form:"application_id"`
}
