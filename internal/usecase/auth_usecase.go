package usecase

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lifewood/careers-api/internal/config"
	"github.com/lifewood/careers-api/internal/model"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminUserStore interface {
	FindByCredentials(email, password string) (*model.AdminUser, error)
	TouchLastLogin(id uuid.UUID) error
}

type AuthUsecase struct {
	repo AdminUserStore
}

func NewAuthUsecase(repo AdminUserStore) *AuthUsecase {
	return &AuthUsecase{repo: repo}
}

// Login checks the hardcoded superuser credential first, then the
// admin_users table. The returned record never carries a password.
func (uc *AuthUsecase) Login(email, password string) (*model.AdminUser, error) {
	sup := config.LoadAdminConfig()
	if email == sup.SuperuserEmail && password == sup.SuperuserPassword {
		return &model.AdminUser{Email: sup.SuperuserEmail, Name: sup.SuperuserName}, nil
	}

	user, err := uc.repo.FindByCredentials(email, password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	_ = uc.repo.TouchLastLogin(user.ID)
	sanitized := user.Sanitized()
	return &sanitized, nil
}
