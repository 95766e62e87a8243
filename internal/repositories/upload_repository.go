package repositories

import (
	"errors"

	"buildxpert/internal/models"

	"gorm.io/gorm"
)

var ErrUploadNotFound = errors.New("upload not found")

type UploadRepository interface {
	Create(upload *models.Upload) error
	FindByID(id string) (*models.Upload, error)
	FindByJob(jobID string) ([]models.Upload, error)
	AttachToJob(uploadID, jobID string) error
	Delete(id string) error
}

type UploadRepositoryImpl struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &UploadRepositoryImpl{db: db}
}

func (r *UploadRepositoryImpl) Create(upload *models.Upload) error {
	return r.db.Create(upload).Error
}

func (r *UploadRepositoryImpl) FindByID(id string) (*models.Upload, error) {
	var upload models.Upload
	err := r.db.First(&upload, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return &upload, nil
}

func (r *UploadRepositoryImpl) FindByJob(jobID string) ([]models.Upload, error) {
	var uploads []models.Upload
	err := r.db.Where("job_id = ?", jobID).Order("created_at ASC").Find(&uploads).Error
	return uploads, err
}

func (r *UploadRepositoryImpl) AttachToJob(uploadID, jobID string) error {
	return r.db.Model(&models.Upload{}).
		Where("id = ?", uploadID).
		Update("job_id", jobID).Error
}

func (r *UploadRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Upload{}, "id = ?", id).Error
}
