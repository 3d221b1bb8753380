package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"docx-recovery/internal/domain"
	"docx-recovery/pkg/version"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	MaxFileSize        int64
	LogLevel           string
	LogFormat          string
	Version            string
	SanitizerURL       string
	SanitizerTimeout   time.Duration
	RateLimitMax       int
	RateLimitWindow    time.Duration
	CORSAllowedOrigins []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:         getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "4271")),
		MaxFileSize:        getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          getEnvOrDefault("LOG_FORMAT", "json"),
		Version:            getEnvOrDefault("APP_VERSION", version.Short()),
		SanitizerURL:       getEnvOrDefault("SANITIZER_URL", domain.DefaultSanitizerBaseURL),
		SanitizerTimeout:   getEnvDurationOrDefault("SANITIZER_TIMEOUT", 0),
		RateLimitMax:       int(getEnvInt64OrDefault("RATE_LIMIT_MAX", 200)),
		RateLimitWindow:    getEnvDurationOrDefault("RATE_LIMIT_WINDOW", time.Minute),
		CORSAllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the log output format
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetVersion returns the version string served on /version
func (c *AppConfig) GetVersion() string {
	return c.Version
}

// GetSanitizerURL returns the cleanup service endpoint
func (c *AppConfig) GetSanitizerURL() string {
	return c.SanitizerURL
}

// GetSanitizerTimeout returns the outbound call timeout; zero means none
func (c *AppConfig) GetSanitizerTimeout() time.Duration {
	return c.SanitizerTimeout
}

// GetRateLimitMax returns the number of requests allowed per address per window
func (c *AppConfig) GetRateLimitMax() int {
	return c.RateLimitMax
}

// GetRateLimitWindow returns the rate limit window
func (c *AppConfig) GetRateLimitWindow() time.Duration {
	return c.RateLimitWindow
}

// GetCORSAllowedOrigins returns the allowed CORS origins
func (c *AppConfig) GetCORSAllowedOrigins() []string {
	return c.CORSAllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
