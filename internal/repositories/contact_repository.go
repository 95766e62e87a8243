package repositories

import (
	"errors"

	"buildxpert/internal/models"

	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("contact not found")

type ContactRepository interface {
	Create(contact *models.Contact) error
	FindByID(id string) (*models.Contact, error)
	Update(contact *models.Contact) error
	Delete(id string) error
	List(status models.ContactStatus, limit, offset int) ([]models.Contact, int64, error)
	CountByStatus(status models.ContactStatus) (int64, error)
}

type ContactRepositoryImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &ContactRepositoryImpl{db: db}
}

func (r *ContactRepositoryImpl) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

func (r *ContactRepositoryImpl) FindByID(id string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepositoryImpl) Update(contact *models.Contact) error {
	return r.db.Save(contact).Error
}

func (r *ContactRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Contact{}, "id = ?", id).Error
}

func (r *ContactRepositoryImpl) List(status models.ContactStatus, limit, offset int) ([]models.Contact, int64, error) {
	query := r.db.Model(&models.Contact{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contacts []models.Contact
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&contacts).Error
	return contacts, total, err
}

func (r *ContactRepositoryImpl) CountByStatus(status models.ContactStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Contact{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
