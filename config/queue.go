package config

import (
	"sync"
)

var (
	queueOnce   sync.Once
	queueConfig *QueueConfig
)

type QueueConfig struct {
	RedisAddr   string
	RedisDB     int
	Concurrency int
}

func GetQueueConfig() *QueueConfig {
	queueOnce.Do(func() {
		loadEnv()

		queueConfig = &QueueConfig{
			RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
			RedisDB:     getenvInt("REDIS_DB", 0),
			Concurrency: getenvInt("QUEUE_CONCURRENCY", 5),
		}
	})
	return queueConfig
}
