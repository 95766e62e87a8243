package repositories

import (
	"buildxpert/internal/models"

	"gorm.io/gorm"
)

type BounceRepository interface {
	Create(bounce *models.Bounce) error
	List(limit, offset int) ([]models.Bounce, int64, error)
	ExistsForEmail(email string) (bool, error)
	DeleteByEmail(email string) error
	Count() (int64, error)
}

type BounceRepositoryImpl struct {
	db *gorm.DB
}

func NewBounceRepository(db *gorm.DB) BounceRepository {
	return &BounceRepositoryImpl{db: db}
}

func (r *BounceRepositoryImpl) Create(bounce *models.Bounce) error {
	return r.db.Create(bounce).Error
}

func (r *BounceRepositoryImpl) List(limit, offset int) ([]models.Bounce, int64, error) {
	var total int64
	if err := r.db.Model(&models.Bounce{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bounces []models.Bounce
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&bounces).Error
	return bounces, total, err
}

func (r *BounceRepositoryImpl) ExistsForEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Bounce{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *BounceRepositoryImpl) DeleteByEmail(email string) error {
	return r.db.Delete(&models.Bounce{}, "email = ?", email).Error
}

func (r *BounceRepositoryImpl) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Bounce{}).Count(&count).Error
	return count, err
}
