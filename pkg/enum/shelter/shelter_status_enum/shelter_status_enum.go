// Package shelter_status_enum 救助站审核状态
package shelter_status_enum

type Status string

const (
	PENDING   Status = "pending"   // 待审核
	APPROVED  Status = "approved"  // 已通过，可接收领养申请
	REJECTED  Status = "rejected"  // 已拒绝
	NEED_FIX  Status = "need_fix"  // 需补充资料
	SUSPENDED Status = "suspended" // 已暂停
)
