package dto

import (
	"time"

	"buildxpert/internal/models"
)

type UploadResponse struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	JobID       *string   `json:"job_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToUploadResponse(u *models.Upload) UploadResponse {
	return UploadResponse{
		ID:          u.ID,
		URL:         u.URL,
		FileName:    u.FileName,
		ContentType: u.ContentType,
		Size:        u.Size,
		JobID:       u.JobID,
		CreatedAt:   u.CreatedAt,
	}
}
