package models

import "time"

type UserRole string

const (
	UserRoleClient UserRole = "CLIENT"
	UserRoleAdmin  UserRole = "ADMIN"
)

type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'CLIENT'" json:"role"`
	Phone        string   `json:"phone,omitempty"`

	// Relations
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
