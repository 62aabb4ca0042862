package membership

import (
	"context"

	"cat_adoption_server/internal/dao/mysql/repository"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/enum/message/sender_type_enum"
)

// Standing 调用者与一条申请的关系
// 一个人可以同时具备多种身份，各判断函数按各自的优先级取用
type Standing struct {
	IsApplicant     bool
	Member          Membership
	IsPlatformAdmin bool
}

// StandingOn 计算调用者对申请的身份
func StandingOn(ctx context.Context, members repository.MembershipRepository, actor model.Actor, app *model.Application) (Standing, error) {
	if !actor.IsAuthenticated {
		return Standing{}, nil
	}
	m, err := Resolve(ctx, members, actor, app.ShelterId)
	if err != nil {
		return Standing{}, err
	}
	return Standing{
		IsApplicant:     app.ApplicantId == actor.UserId,
		Member:          m,
		IsPlatformAdmin: actor.IsPlatformAdmin,
	}, nil
}

// HasAny 与申请有任何关系
func (s Standing) HasAny() bool {
	return s.IsApplicant || s.Member.IsMember || s.IsPlatformAdmin
}

// CanRead 可查看申请与消息
func (s Standing) CanRead() bool {
	return s.HasAny()
}

// CanSend 可发送消息，救助站员工只读
func (s Standing) CanSend() bool {
	return s.IsApplicant || s.IsPlatformAdmin || s.Member.IsAdmin()
}

// Side 隐藏申请时作用的一方，平台管理员没有自己的一方，返回 0
func (s Standing) Side() repository.HideSide {
	switch {
	case s.IsApplicant:
		return repository.HideByApplicant
	case s.Member.IsMember:
		return repository.HideByShelter
	}
	return 0
}

// UnreadSenderTypes 调用者需要阅读的消息来源
// 申请人读救助站与平台的消息，救助站成员读申请人的消息，其他人为空
func (s Standing) UnreadSenderTypes() []sender_type_enum.SenderType {
	switch {
	case s.IsApplicant:
		return []sender_type_enum.SenderType{sender_type_enum.SHELTER, sender_type_enum.ADMIN}
	case s.Member.IsMember:
		return []sender_type_enum.SenderType{sender_type_enum.USER}
	}
	return nil
}
