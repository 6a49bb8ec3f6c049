package utils

import (
	"context"
	"log"
	"time"

	"medibook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds workflow booking sessions.
	SessionCacheClient *redis.Client
	// DedupCacheClient is the dedicated client for dispatch idempotency keys.
	DedupCacheClient *redis.Client
)

// InitSessionCache initializes the Redis client for booking sessions.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Session Cache): %v", err)
	}
}

// GetSessionCacheClient returns the booking-session cache client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitDedupCache initializes the Redis client for dispatch dedup keys.
func InitDedupCache() {
	DedupCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDedupDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := DedupCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Dedup Cache): %v", err)
	}
}

// GetDedupCacheClient returns the dispatch dedup cache client.
func GetDedupCacheClient() *redis.Client {
	if DedupCacheClient == nil {
		InitDedupCache()
	}
	return DedupCacheClient
}
