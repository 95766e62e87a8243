package models

// Bounce records a delivery failure reported by the email provider's
// bounce webhook. Listed addresses are suppressed from further sends
// until an admin removes the entry.
type Bounce struct {
	BaseModel
	Email       string `gorm:"not null;index" json:"email"`
	Type        string `json:"type"` // Permanent, Transient, Complaint
	Description string `gorm:"type:text" json:"description"`
}
