package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort       string
	APIBaseURL       string
	APIPathPrefix    string
	RequestTimeout   time.Duration
	RetryAttempts    int
	RetryBaseDelay   time.Duration
	PollMinSpacing   time.Duration
	RefreshInterval  time.Duration
	ClockInterval    time.Duration
	SuccessBannerTTL time.Duration
	LogLevel         string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		APIBaseURL:       getEnv("RATES_API_BASE_URL", "http://localhost:3000"),
		APIPathPrefix:    getEnv("RATES_API_PREFIX", "/api"),
		RequestTimeout:   getEnvDuration("RATES_API_TIMEOUT", 15*time.Second),
		RetryAttempts:    getEnvInt("RATES_API_RETRY_ATTEMPTS", 3),
		RetryBaseDelay:   getEnvDuration("RATES_API_RETRY_BASE_DELAY", 1*time.Second),
		PollMinSpacing:   getEnvDuration("RATES_API_MIN_SPACING", 0),
		RefreshInterval:  getEnvDuration("REFRESH_INTERVAL", 30*time.Second),
		ClockInterval:    getEnvDuration("CLOCK_INTERVAL", 1*time.Second),
		SuccessBannerTTL: getEnvDuration("SUCCESS_BANNER_TTL", 5*time.Second),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default %v", key, value, fallback)
		return fallback
	}
	return parsed
}
