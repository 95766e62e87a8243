package models

// Upload is one stored object (job image or attachment).
type Upload struct {
	BaseModel
	UserID      string  `gorm:"type:uuid;not null;index" json:"user_id"`
	JobID       *string `gorm:"type:uuid;index" json:"job_id,omitempty"`
	Path        string  `gorm:"not null" json:"-"`
	URL         string  `gorm:"not null" json:"url"`
	FileName    string  `json:"file_name"`
	ContentType string  `json:"content_type"`
	Size        int64   `json:"size"`
}
