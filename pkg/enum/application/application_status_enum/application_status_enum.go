// Package application_status_enum 领养申请状态
package application_status_enum

// Status 申请状态，持久化为字符串
type Status string

const (
	PENDING   Status = "pending"   // 待处理
	REVIEWING Status = "reviewing" // 审核中
	TRIAL     Status = "trial"     // 试养中
	ACCEPTED  Status = "accepted"  // 已通过
	REJECTED  Status = "rejected"  // 已拒绝
	CANCELLED Status = "cancelled" // 已取消
)

// All 全部状态，顺序即展示顺序
var All = []Status{PENDING, REVIEWING, TRIAL, ACCEPTED, REJECTED, CANCELLED}

// IsValid 是否为已知状态
func (s Status) IsValid() bool {
	switch s {
	case PENDING, REVIEWING, TRIAL, ACCEPTED, REJECTED, CANCELLED:
		return true
	}
	return false
}

// IsTerminal 是否为终态（不可再流转）
func (s Status) IsTerminal() bool {
	return s == ACCEPTED || s == REJECTED || s == CANCELLED
}

// Active 非终态集合，用于幂等创建与数量上限统计
func Active() []Status {
	return []Status{PENDING, REVIEWING, TRIAL}
}

func (s Status) String() string {
	return string(s)
}
