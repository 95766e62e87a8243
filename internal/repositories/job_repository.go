package repositories

import (
	"errors"
	"time"

	"buildxpert/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobFilter struct {
	Status   models.JobStatus
	City     string
	Page     int
	PageSize int
}

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	Update(job *models.Job) error
	Delete(id string) error
	FindWithFilter(filter JobFilter) ([]models.Job, int64, error)
	FindByPoster(posterID string) ([]models.Job, error)
	CountByStatus(status models.JobStatus) (int64, error)
	ExpirePublishedBefore(cutoff time.Time) (int64, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Images").Preload("Poster").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

func (r *JobRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Job{}, "id = ?", id).Error
}

func (r *JobRepositoryImpl) FindWithFilter(filter JobFilter) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("city ILIKE ?", filter.City)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize

	var jobs []models.Job
	err := query.Preload("Images").
		Order("created_at DESC").
		Limit(filter.PageSize).Offset(offset).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) FindByPoster(posterID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("Images").
		Where("poster_id = ?", posterID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) CountByStatus(status models.JobStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// ExpirePublishedBefore flips published jobs whose start date has
// passed to expired. Used by the background worker.
func (r *JobRepositoryImpl) ExpirePublishedBefore(cutoff time.Time) (int64, error) {
	result := r.db.Model(&models.Job{}).
		Where("status = ? AND start_date IS NOT NULL AND start_date < ?", models.JobStatusPublished, cutoff).
		Updates(map[string]interface{}{"status": models.JobStatusExpired})
	return result.RowsAffected, result.Error
}
