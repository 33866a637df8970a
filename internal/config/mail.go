package config

import (
	"os"
	"strconv"
	"sync"
)

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

var (
	mailConfig *MailConfig
	mailOnce   sync.Once
)

func LoadMailConfig() *MailConfig {
	mailOnce.Do(func() {
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if port == 0 {
			port = 587
		}
		from := os.Getenv("SMTP_FROM")
		if from == "" {
			from = os.Getenv("SMTP_USER")
		}
		mailConfig = &MailConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     port,
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     from,
		}
	})
	return mailConfig
}
