// Package membership 解析调用者与救助站、与某条申请之间的关系
// 所有函数只读，接收 Repository 参数以便在事务内外复用
package membership

import (
	"context"

	"cat_adoption_server/internal/dao/mysql/repository"
	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/enum/shelter/member_role_enum"
	"cat_adoption_server/pkg/errorx"
)

// Membership 调用者在某救助站的成员身份
type Membership struct {
	IsMember bool
	Role     member_role_enum.Role
}

// None 非成员
var None = Membership{Role: member_role_enum.NONE}

// IsAdmin 是否为救助站管理员
func (m Membership) IsAdmin() bool {
	return m.IsMember && m.Role == member_role_enum.ADMIN
}

// Resolve 查询调用者在救助站的有效成员身份
// 未登录、救助站不存在、没有有效成员关系时都返回 None
func Resolve(ctx context.Context, members repository.MembershipRepository, actor model.Actor, shelterId string) (Membership, error) {
	if !actor.IsAuthenticated || actor.UserId == "" || shelterId == "" {
		return None, nil
	}
	member, err := members.FindActive(ctx, shelterId, actor.UserId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return None, nil
		}
		return None, err
	}
	// 角色是封闭集合，库里出现未知值时按非成员处理
	if !member.Role.IsValid() {
		return None, nil
	}
	return Membership{IsMember: true, Role: member.Role}, nil
}
