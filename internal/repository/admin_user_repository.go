package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/lifewood/careers-api/internal/model"
	"gorm.io/gorm"
)

type AdminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{db}
}

func (r *AdminUserRepository) FindByCredentials(email, password string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.First(&user, "email = ? AND password = ?", email, password).Error
	return &user, err
}

func (r *AdminUserRepository) TouchLastLogin(id uuid.UUID) error {
	return r.db.Model(&model.AdminUser{}).Where("id = ?", id).
		Update("last_login", time.Now()).Error
}
