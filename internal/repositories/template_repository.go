package repositories

import (
	"errors"

	"buildxpert/internal/models"

	"gorm.io/gorm"
)

var ErrTemplateNotFound = errors.New("email template not found")

type TemplateRepository interface {
	Create(template *models.EmailTemplate) error
	FindByID(id string) (*models.EmailTemplate, error)
	FindByName(name string) (*models.EmailTemplate, error)
	Update(template *models.EmailTemplate) error
	Delete(id string) error
	List() ([]models.EmailTemplate, error)
}

type TemplateRepositoryImpl struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &TemplateRepositoryImpl{db: db}
}

func (r *TemplateRepositoryImpl) Create(template *models.EmailTemplate) error {
	return r.db.Create(template).Error
}

func (r *TemplateRepositoryImpl) FindByID(id string) (*models.EmailTemplate, error) {
	var template models.EmailTemplate
	err := r.db.First(&template, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepositoryImpl) FindByName(name string) (*models.EmailTemplate, error) {
	var template models.EmailTemplate
	err := r.db.First(&template, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepositoryImpl) Update(template *models.EmailTemplate) error {
	return r.db.Save(template).Error
}

func (r *TemplateRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.EmailTemplate{}, "id = ?", id).Error
}

func (r *TemplateRepositoryImpl) List() ([]models.EmailTemplate, error) {
	var templates []models.EmailTemplate
	err := r.db.Order("name ASC").Find(&templates).Error
	return templates, err
}
