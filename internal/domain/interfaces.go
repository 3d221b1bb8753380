package domain

import (
	"context"
	"time"
)

// ArchiveExtractor locates the primary content part inside an uploaded container
type ArchiveExtractor interface {
	// Extract returns the decoded entry text. found is false when the
	// container has no such entry; err is set when the container is unreadable.
	Extract(data []byte) (text string, found bool, err error)
}

// XMLFormatter re-indents XML text
type XMLFormatter interface {
	Format(text string) (string, error)
}

// Sanitizer submits formatted XML to the external cleanup service
type Sanitizer interface {
	Sanitize(ctx context.Context, text string) (*SanitizationResult, error)
}

// RecoveryService runs the full recovery pipeline over an uploaded archive.
// It never fails: every failure is reported through the result outcome.
type RecoveryService interface {
	Recover(ctx context.Context, data []byte) RecoveryResult
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetVersion() string
	GetSanitizerURL() string
	GetSanitizerTimeout() time.Duration
	GetRateLimitMax() int
	GetRateLimitWindow() time.Duration
	GetCORSAllowedOrigins() []string
}
