package config

import (
	"sync"
)

var (
	storageOnce   sync.Once
	storageConfig *StorageConfig
)

type StorageConfig struct {
	Backend string // "s3" or "minio"
}

func GetStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		loadEnv()

		storageConfig = &StorageConfig{
			Backend: getenv("STORAGE_BACKEND", "s3"),
		}
	})
	return storageConfig
}
