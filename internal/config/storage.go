package config

import (
	"os"
	"sync"
)

// StorageConfig targets an S3-compatible bucket (R2, Supabase storage,
// MinIO). Endpoint is the full base URL; PublicBaseURL is where uploaded
// objects are served from.
type StorageConfig struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		region := os.Getenv("STORAGE_REGION")
		if region == "" {
			region = "auto"
		}
		storageConfig = &StorageConfig{
			Endpoint:      os.Getenv("STORAGE_ENDPOINT"),
			Region:        region,
			Bucket:        os.Getenv("STORAGE_BUCKET"),
			AccessKey:     os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:     os.Getenv("STORAGE_SECRET_KEY"),
			PublicBaseURL: os.Getenv("STORAGE_PUBLIC_URL"),
		}
	})
	return storageConfig
}
