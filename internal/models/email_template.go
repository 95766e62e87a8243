package models

import "gorm.io/datatypes"

// EmailTemplate is an admin-editable transactional email template.
// Body is html/template text; Variables documents the placeholders the
// template expects, e.g. {"name": "recipient display name"}.
type EmailTemplate struct {
	BaseModel
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Subject   string         `gorm:"not null" json:"subject"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	Variables datatypes.JSON `gorm:"type:jsonb" json:"variables,omitempty"`
}
