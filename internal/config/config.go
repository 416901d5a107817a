// Package config provides configuration management for the wallet roaster application.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is constructed once at
// startup and passed by reference to consuming components.
type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Zerion    ZerionConfig
	Gemini    GeminiConfig
	Roast     RoastConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host           string
	Port           string
	Password       string
	DB             int
	MaxConnections int
}

// ZerionConfig holds upstream portfolio data API configuration
type ZerionConfig struct {
	BaseURL          string
	SecondaryBaseURL string // Optional failover endpoint
	APIKey           string
	RequestTimeout   time.Duration
	RequestsPerSec   float64
	PageSize         int // Positions/transactions page size
	ChartPeriod      string
}

// GeminiConfig holds generative text API configuration
type GeminiConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	RequestTimeout time.Duration
}

// RoastConfig holds roast generation configuration
type RoastConfig struct {
	MinLatency time.Duration // Artificial minimum latency for generative roasts
}

// CacheConfig holds wallet snapshot cache configuration
type CacheConfig struct {
	TTL time.Duration
}

// RateLimitConfig holds API rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSec int
	Burst          int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() (*Config, error) {
	// Load .env file (optional in production)
	if err := godotenv.Load(); err != nil {
		// .env file is optional - environment variables can be set directly
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvAsInt("REDIS_DB", 0),
			MaxConnections: getEnvAsInt("REDIS_MAX_CONNECTIONS", 50),
		},
		Zerion: ZerionConfig{
			BaseURL:          getEnv("ZERION_API_BASE", "https://api.zerion.io/v1"),
			SecondaryBaseURL: getEnv("ZERION_API_BASE_SECONDARY", ""),
			APIKey:           getEnv("ZERION_API_KEY", ""),
			RequestTimeout:   getEnvAsDuration("ZERION_REQUEST_TIMEOUT", 15*time.Second),
			RequestsPerSec:   getEnvAsFloat("ZERION_REQUESTS_PER_SEC", 3),
			PageSize:         getEnvAsInt("ZERION_PAGE_SIZE", 100),
			ChartPeriod:      getEnv("ZERION_CHART_PERIOD", "year"),
		},
		Gemini: GeminiConfig{
			BaseURL:        getEnv("GEMINI_API_BASE", "https://generativelanguage.googleapis.com/v1beta"),
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			RequestTimeout: getEnvAsDuration("GEMINI_REQUEST_TIMEOUT", 30*time.Second),
		},
		Roast: RoastConfig{
			MinLatency: getEnvAsDuration("ROAST_MIN_LATENCY", 2*time.Second),
		},
		Cache: CacheConfig{
			TTL: getEnvAsDuration("CACHE_TTL", 60*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSec: getEnvAsInt("RATE_LIMIT_RPS", 5),
			Burst:          getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat gets an environment variable as a float with a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
