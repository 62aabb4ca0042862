// Package repository 提供数据访问层的具体实现
// 本文件实现 ApplicationRepository 接口，处理领养申请相关的数据库操作
package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cat_adoption_server/internal/model"
	"cat_adoption_server/pkg/enum/application/application_status_enum"
	"cat_adoption_server/pkg/errorx"
)

// applicationRepository ApplicationRepository 接口的实现
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository 创建 ApplicationRepository 实例
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create 创建申请
func (r *applicationRepository) Create(ctx context.Context, app *model.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return wrapDBErrorf(err, "创建申请 applicant_id=%s cat_id=%s", app.ApplicantId, app.CatId)
	}
	return nil
}

// FindByUuid 根据 UUID 查找申请
func (r *applicationRepository) FindByUuid(ctx context.Context, uuid string) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&app).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询申请 uuid=%s", uuid)
	}
	return &app, nil
}

// FindByUuidForUpdate SELECT ... FOR UPDATE，锁持有到事务结束
func (r *applicationRepository) FindByUuidForUpdate(ctx context.Context, uuid string) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("uuid = ?", uuid).
		First(&app).Error; err != nil {
		return nil, wrapDBErrorf(err, "锁定申请 uuid=%s", uuid)
	}
	return &app, nil
}

// FindActiveForUpdate 加锁查找进行中的申请
func (r *applicationRepository) FindActiveForUpdate(ctx context.Context, applicantId, catId string) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("applicant_id = ? AND cat_id = ? AND status IN ?", applicantId, catId, application_status_enum.Active()).
		Order("applied_at ASC").
		First(&app).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询进行中的申请 applicant_id=%s cat_id=%s", applicantId, catId)
	}
	return &app, nil
}

// CountActiveByApplicant 统计申请人进行中的申请
func (r *applicationRepository) CountActiveByApplicant(ctx context.Context, applicantId string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("applicant_id = ? AND status IN ?", applicantId, application_status_enum.Active()).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计进行中的申请 applicant_id=%s", applicantId)
	}
	return count, nil
}

// UpdateStatus 更新申请状态
func (r *applicationRepository) UpdateStatus(ctx context.Context, uuid string, status application_status_enum.Status) error {
	res := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("uuid = ?", uuid).
		Update("status", status)
	if res.Error != nil {
		return wrapDBErrorf(res.Error, "更新申请状态 uuid=%s", uuid)
	}
	if res.RowsAffected == 0 {
		return errorx.Newf(errorx.CodeNotFound, "申请不存在 uuid=%s", uuid)
	}
	return nil
}

// Hide 设置隐藏标记
func (r *applicationRepository) Hide(ctx context.Context, uuid string, side HideSide) error {
	column := "is_hidden_by_applicant"
	if side == HideByShelter {
		column = "is_hidden_by_shelter"
	}
	if err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("uuid = ?", uuid).
		Update(column, true).Error; err != nil {
		return wrapDBErrorf(err, "隐藏申请 uuid=%s", uuid)
	}
	return nil
}

// FindVisible 查询用户可见的申请
func (r *applicationRepository) FindVisible(ctx context.Context, userId string, shelterIds []string) ([]model.Application, error) {
	var apps []model.Application
	query := r.db.WithContext(ctx).Where("applicant_id = ? AND is_hidden_by_applicant = ?", userId, false)
	if len(shelterIds) > 0 {
		query = query.Or("shelter_id IN ? AND is_hidden_by_shelter = ?", shelterIds, false)
	}
	if err := query.Order("applied_at DESC").Find(&apps).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询可见申请 user_id=%s", userId)
	}
	return apps, nil
}
