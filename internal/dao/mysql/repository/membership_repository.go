// Package repository 提供数据访问层的具体实现
// 本文件实现 MembershipRepository 接口，处理救助站成员关系查询
package repository

import (
	"context"

	"gorm.io/gorm"

	"cat_adoption_server/internal/model"
)

// membershipRepository MembershipRepository 接口的实现
type membershipRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewMembershipRepository 创建 MembershipRepository 实例
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// FindActive 根据救助站和用户查找有效成员关系
func (r *membershipRepository) FindActive(ctx context.Context, shelterId, userId string) (*model.ShelterMember, error) {
	var member model.ShelterMember
	if err := r.db.WithContext(ctx).
		Where("shelter_id = ? AND user_id = ? AND is_active = ?", shelterId, userId, true).
		First(&member).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询救助站成员 shelter_id=%s user_id=%s", shelterId, userId)
	}
	return &member, nil
}

// FindActiveByShelter 查找救助站全部有效成员
func (r *membershipRepository) FindActiveByShelter(ctx context.Context, shelterId string) ([]model.ShelterMember, error) {
	var members []model.ShelterMember
	if err := r.db.WithContext(ctx).
		Where("shelter_id = ? AND is_active = ?", shelterId, true).
		Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询救助站成员列表 shelter_id=%s", shelterId)
	}
	return members, nil
}

// FindActiveShelterIds 查找用户有效任职的救助站ID
func (r *membershipRepository) FindActiveShelterIds(ctx context.Context, userId string) ([]string, error) {
	var shelterIds []string
	if err := r.db.WithContext(ctx).Model(&model.ShelterMember{}).
		Where("user_id = ? AND is_active = ?", userId, true).
		Pluck("shelter_id", &shelterIds).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户所在救助站 user_id=%s", userId)
	}
	return shelterIds, nil
}
