package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusClosed    JobStatus = "closed"
	JobStatusExpired   JobStatus = "expired"
)

// Job is one painting/construction work request. It is built up over
// several wizard steps, so every descriptive field is optional until
// Publish validates completeness.
type Job struct {
	BaseModel
	PosterID     string         `gorm:"type:uuid;not null;index" json:"poster_id"`
	Title        string         `json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	PropertyKind string         `json:"property_kind"` // house, apartment, office, commercial
	Area         *float64       `json:"area,omitempty"` // m²
	City         string         `json:"city"`
	Address      string         `json:"address"`
	Budget       *float64       `json:"budget,omitempty"`
	StartDate    *time.Time     `json:"start_date,omitempty"`
	Status       JobStatus      `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Extras       datatypes.JSON `gorm:"type:jsonb" json:"extras,omitempty"` // per-kind wizard answers

	Poster *User    `gorm:"foreignKey:PosterID" json:"poster,omitempty"`
	Images []Upload `gorm:"foreignKey:JobID" json:"images,omitempty"`
}
