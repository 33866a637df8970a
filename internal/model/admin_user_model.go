package model

import (
	"time"

	"github.com/google/uuid"
)

type AdminUser struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Password  string    `gorm:"type:varchar(255)" json:"password,omitempty"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *AdminUser) TableName() string {
	return "admin_users"
}

// Sanitized returns a copy safe to hand to clients, with the password
// field stripped.
func (u *AdminUser) Sanitized() AdminUser {
	out := *u
	out.Password = ""
	return out
}
