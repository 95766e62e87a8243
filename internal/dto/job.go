package dto

import (
	"time"

	"gorm.io/datatypes"

	"buildxpert/internal/models"
)

type CreateJobRequest struct {
	Title        string `json:"title" validate:"omitempty,max=200"`
	PropertyKind string `json:"property_kind" validate:"omitempty,oneof=house apartment office commercial"`
	City         string `json:"city" validate:"omitempty,max=100"`
}

// UpdateJobRequest is one wizard step: only the fields present in the
// request body are applied to the draft.
type UpdateJobRequest struct {
	Title        *string         `json:"title" validate:"omitempty,max=200"`
	Description  *string         `json:"description" validate:"omitempty,max=5000"`
	PropertyKind *string         `json:"property_kind" validate:"omitempty,oneof=house apartment office commercial"`
	Area         *float64        `json:"area" validate:"omitempty,gt=0"`
	City         *string         `json:"city" validate:"omitempty,max=100"`
	Address      *string         `json:"address" validate:"omitempty,max=300"`
	Budget       *float64        `json:"budget" validate:"omitempty,gte=0"`
	StartDate    *time.Time      `json:"start_date"`
	Extras       *datatypes.JSON `json:"extras"`
}

type JobListQuery struct {
	Status   string `form:"status" validate:"omitempty,oneof=draft published closed expired"`
	City     string `form:"city" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type JobResponse struct {
	ID           string           `json:"id"`
	PosterID     string           `json:"poster_id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	PropertyKind string           `json:"property_kind"`
	Area         *float64         `json:"area,omitempty"`
	City         string           `json:"city"`
	Address      string           `json:"address"`
	Budget       *float64         `json:"budget,omitempty"`
	StartDate    *time.Time       `json:"start_date,omitempty"`
	Status       models.JobStatus `json:"status"`
	Extras       datatypes.JSON   `json:"extras,omitempty"`
	Images       []UploadResponse `json:"images,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type JobListResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	Pagination Pagination    `json:"pagination"`
}

func ToJobResponse(job *models.Job) JobResponse {
	resp := JobResponse{
		ID:           job.ID,
		PosterID:     job.PosterID,
		Title:        job.Title,
		Description:  job.Description,
		PropertyKind: job.PropertyKind,
		Area:         job.Area,
		City:         job.City,
		Address:      job.Address,
		Budget:       job.Budget,
		StartDate:    job.StartDate,
		Status:       job.Status,
		Extras:       job.Extras,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
	for i := range job.Images {
		resp.Images = append(resp.Images, ToUploadResponse(&job.Images[i]))
	}
	return resp
}
