package repository

import (
	"context"

	"gorm.io/gorm"

	"cat_adoption_server/internal/model"
)

// shelterRepository ShelterRepository 接口的实现
type shelterRepository struct {
	db *gorm.DB
}

// NewShelterRepository 创建救助站 Repository
func NewShelterRepository(db *gorm.DB) ShelterRepository {
	return &shelterRepository{db: db}
}

func (r *shelterRepository) FindByUuid(ctx context.Context, uuid string) (*model.Shelter, error) {
	var shelter model.Shelter
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&shelter).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询救助站 uuid=%s", uuid)
	}
	return &shelter, nil
}

// catRepository CatRepository 接口的实现
type catRepository struct {
	db *gorm.DB
}

// NewCatRepository 创建猫咪 Repository
func NewCatRepository(db *gorm.DB) CatRepository {
	return &catRepository{db: db}
}

func (r *catRepository) FindByUuid(ctx context.Context, uuid string) (*model.Cat, error) {
	var cat model.Cat
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&cat).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询猫咪 uuid=%s", uuid)
	}
	return &cat, nil
}
