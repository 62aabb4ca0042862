// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，GORM 实现在各自的文件中，内存实现位于 dao/memory
package repository

import (
	"context"
	"time"

	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/enum/application/application_status_enum"
	"cat_adoption_server/pkg/enum/message/sender_type_enum"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口（只读，用户由身份服务维护）
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(ctx context.Context, uuid string) (*model.UserInfo, error)
	// LockByUuid 加排他锁读取用户行，用于串行化同一申请人的并发创建
	LockByUuid(ctx context.Context, uuid string) (*model.UserInfo, error)
}

// ShelterRepository 救助站目录（只读）
type ShelterRepository interface {
	FindByUuid(ctx context.Context, uuid string) (*model.Shelter, error)
}

// CatRepository 猫咪目录（只读）
type CatRepository interface {
	FindByUuid(ctx context.Context, uuid string) (*model.Cat, error)
}

// MembershipRepository 救助站成员关系（只读）
type MembershipRepository interface {
	// FindActive 查找有效成员关系，不存在时返回 CodeNotFound
	FindActive(ctx context.Context, shelterId, userId string) (*model.ShelterMember, error)
	// FindActiveByShelter 救助站全部有效成员，用于通知
	FindActiveByShelter(ctx context.Context, shelterId string) ([]model.ShelterMember, error)
	// FindActiveShelterIds 用户作为有效成员所在的救助站
	FindActiveShelterIds(ctx context.Context, userId string) ([]string, error)
}

// HideSide 隐藏申请的一方
type HideSide int8

const (
	HideByApplicant HideSide = iota + 1
	HideByShelter
)

// ApplicationRepository 领养申请数据访问接口
type ApplicationRepository interface {
	// Create 创建申请
	Create(ctx context.Context, app *model.Application) error
	// FindByUuid 普通读取
	FindByUuid(ctx context.Context, uuid string) (*model.Application, error)
	// FindByUuidForUpdate 加排他锁读取，必须在事务内调用
	FindByUuidForUpdate(ctx context.Context, uuid string) (*model.Application, error)
	// FindActiveForUpdate 加锁查找申请人对某只猫的进行中申请，不存在时返回 CodeNotFound
	FindActiveForUpdate(ctx context.Context, applicantId, catId string) (*model.Application, error)
	// CountActiveByApplicant 申请人进行中的申请数量
	CountActiveByApplicant(ctx context.Context, applicantId string) (int64, error)
	// UpdateStatus 更新状态并刷新 updated_at
	UpdateStatus(ctx context.Context, uuid string, status application_status_enum.Status) error
	// Hide 设置某一方的隐藏标记
	Hide(ctx context.Context, uuid string, side HideSide) error
	// FindVisible 申请人未隐藏的申请 + 所在救助站未隐藏的申请，按申请时间倒序
	FindVisible(ctx context.Context, userId string, shelterIds []string) ([]model.Application, error)
}

// MessageRepository 申请沟通消息数据访问接口
type MessageRepository interface {
	// Create 创建消息
	Create(ctx context.Context, message *model.Message) error
	// FindByApplication 申请下全部消息，按发送时间正序
	FindByApplication(ctx context.Context, applicationId string) ([]model.Message, error)
	// CountUnread 统计指定发送方身份的未读消息
	CountUnread(ctx context.Context, applicationId string, senderTypes []sender_type_enum.SenderType) (int64, error)
	// CountUnreadByApplications 一次查询统计多个申请的未读数，没有未读的申请不出现在结果中
	CountUnreadByApplications(ctx context.Context, applicationIds []string, senderTypes []sender_type_enum.SenderType) (map[string]int64, error)
	// MarkRead 批量将指定发送方身份的未读消息标记为已读，返回影响行数
	MarkRead(ctx context.Context, applicationId string, senderTypes []sender_type_enum.SenderType, readAt time.Time) (int64, error)
}

// ==================== Repository 聚合 ====================

// TxFunc 事务执行器，由具体存储实现提供
// fn 返回错误时整个事务回滚
type TxFunc func(ctx context.Context, fn func(txRepos *Repositories) error) error

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	User        UserRepository        // 用户 Repository
	Shelter     ShelterRepository     // 救助站 Repository
	Cat         CatRepository         // 猫咪 Repository
	Membership  MembershipRepository  // 成员关系 Repository
	Application ApplicationRepository // 申请 Repository
	Message     MessageRepository     // 消息 Repository

	// TxRunner 事务执行器
	TxRunner TxFunc
}

// Transaction 在事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
func (r *Repositories) Transaction(ctx context.Context, fn func(txRepos *Repositories) error) error {
	return r.TxRunner(ctx, fn)
}
