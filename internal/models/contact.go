package models

type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "new"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
)

// Contact is one submission of the public contact form.
type Contact struct {
	BaseModel
	Name    string        `gorm:"not null" json:"name"`
	Email   string        `gorm:"not null;index" json:"email"`
	Phone   string        `json:"phone,omitempty"`
	Subject string        `json:"subject"`
	Message string        `gorm:"type:text;not null" json:"message"`
	Status  ContactStatus `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
}
