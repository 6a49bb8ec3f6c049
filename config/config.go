package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB       int    `mapstructure:"REDIS_SESSION_DB"`
	RedisDedupDB         int    `mapstructure:"REDIS_DEDUP_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Workflow engine tuning.
	SessionTTLMinutes  int `mapstructure:"SESSION_TTL_MINUTES"`
	LocationTimeoutSec int `mapstructure:"LOCATION_TIMEOUT_SEC"`
	PaymentDelayMillis int `mapstructure:"PAYMENT_DELAY_MILLIS"`

	// MongoDB record archive.
	ArchiveEnabled bool `mapstructure:"ARCHIVE_ENABLED"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_DEDUP_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("LOCATION_TIMEOUT_SEC", 5)
	viper.SetDefault("PAYMENT_DELAY_MILLIS", 500)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("ARCHIVE_ENABLED", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SessionTTL returns the booking-session lifetime.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLMinutes) * time.Minute
}

// LocationTimeout returns the bounded wait for geolocation lookups.
func LocationTimeout() time.Duration {
	return time.Duration(AppConfig.LocationTimeoutSec) * time.Second
}
