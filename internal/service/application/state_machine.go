package application

import (
	"cat_adoption_server/pkg/enum/application/application_status_enum"
	"cat_adoption_server/pkg/errorx"
)

type status = application_status_enum.Status

// transitions 状态流转表，终态没有出边
var transitions = map[status][]status{
	application_status_enum.PENDING:   {application_status_enum.REVIEWING, application_status_enum.CANCELLED},
	application_status_enum.REVIEWING: {application_status_enum.TRIAL, application_status_enum.REJECTED, application_status_enum.CANCELLED},
	application_status_enum.TRIAL:     {application_status_enum.ACCEPTED, application_status_enum.REJECTED, application_status_enum.CANCELLED},
	application_status_enum.ACCEPTED:  {},
	application_status_enum.REJECTED:  {},
	application_status_enum.CANCELLED: {},
}

// Event 触发状态流转的事件
type Event interface {
	isEvent()
}

// StatusRequested 显式请求变更到 Status
type StatusRequested struct {
	Status status
}

// ViewedByShelter 救助站成员查看申请，pending 自动进入 reviewing
type ViewedByShelter struct{}

func (StatusRequested) isEvent() {}
func (ViewedByShelter) isEvent() {}

// IllegalTransition 非法流转时随错误返回给调用方
type IllegalTransition struct {
	CurrentStatus   string   `json:"current_status"`
	RequestedStatus string   `json:"requested_status"`
	AllowedStatuses []string `json:"allowed_statuses"`
}

// AllowedNext 当前状态可流转到的状态，返回副本
func AllowedNext(current status) []status {
	next := transitions[current]
	out := make([]status, len(next))
	copy(out, next)
	return out
}

// AllowedActions 以字符串形式返回 AllowedNext，用于响应
func AllowedActions(current status) []string {
	next := transitions[current]
	out := make([]string, 0, len(next))
	for _, s := range next {
		out = append(out, s.String())
	}
	return out
}

// CanTransition 是否允许 from -> to
func CanTransition(from, to status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Apply 纯函数：根据当前状态和事件计算下一状态
// changed=false 表示状态不变（同状态请求或查看事件无需推进）
func Apply(current status, event Event) (next status, changed bool, err error) {
	switch e := event.(type) {
	case StatusRequested:
		if !e.Status.IsValid() {
			return current, false, errorx.Newf(errorx.CodeInvalidParam, "未知的申请状态: %s", e.Status)
		}
		if e.Status == current {
			return current, false, nil
		}
		if !CanTransition(current, e.Status) {
			return current, false, errorx.Newf(errorx.CodeIllegalTransition, "申请状态不能从 %s 变更为 %s", current, e.Status).
				WithData(IllegalTransition{
					CurrentStatus:   current.String(),
					RequestedStatus: e.Status.String(),
					AllowedStatuses: AllowedActions(current),
				})
		}
		return e.Status, true, nil
	case ViewedByShelter:
		if current == application_status_enum.PENDING {
			return application_status_enum.REVIEWING, true, nil
		}
		return current, false, nil
	}
	return current, false, errorx.ErrInvalidParam
}
