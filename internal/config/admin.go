package config

import (
	"os"
	"sync"
)

// AdminConfig holds the hardcoded superuser credential that is checked
// before the admin_users table.
type AdminConfig struct {
	SuperuserEmail    string
	SuperuserPassword string
	SuperuserName     string
}

var (
	adminConfig *AdminConfig
	adminOnce   sync.Once
)

func LoadAdminConfig() *AdminConfig {
	adminOnce.Do(func() {
		email := os.Getenv("ADMIN_SUPERUSER_EMAIL")
		if email == "" {
			email = "admin@lifewood.com"
		}
		password := os.Getenv("ADMIN_SUPERUSER_PASSWORD")
		if password == "" {
			password = "admin123"
		}
		adminConfig = &AdminConfig{
			SuperuserEmail:    email,
			SuperuserPassword: password,
			SuperuserName:     "Admin User",
		}
	})
	return adminConfig
}
