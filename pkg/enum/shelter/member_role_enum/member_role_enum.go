// Package member_role_enum 救助站成员角色
package member_role_enum

type Role string

const (
	NONE  Role = ""      // 非成员
	STAFF Role = "staff" // 普通员工，可查看不可发消息
	ADMIN Role = "admin" // 救助站管理员
)

func (r Role) IsValid() bool {
	return r == STAFF || r == ADMIN
}
