package config

import (
	"context"
	"net/http"

	"docx-recovery/internal/domain"
	"docx-recovery/internal/repository"
	"docx-recovery/internal/service"
	"docx-recovery/pkg/logger"
	"docx-recovery/pkg/telemetry"
)

const serviceName = "docx-recovery"

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	Tracing         *telemetry.Tracing
	Extractor       domain.ArchiveExtractor
	Formatter       domain.XMLFormatter
	Sanitizer       domain.Sanitizer
	RecoveryService domain.RecoveryService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return NewContainerWithConfig(NewConfig())
}

// NewContainerWithConfig wires the dependency graph around an existing configuration
func NewContainerWithConfig(config domain.Config) *Container {
	appLogger := logger.NewLoggerWithOptions(logger.Options{
		Level:  config.GetLogLevel(),
		Format: config.GetLogFormat(),
	})
	tracing := telemetry.New(serviceName, config.GetVersion())

	extractor := service.NewArchiveExtractor()
	formatter := service.NewXMLFormatter()
	sanitizer := repository.NewSanitizerClient(config, tracing.Transport(http.DefaultTransport), appLogger)
	recoveryService := service.NewRecoveryService(extractor, formatter, sanitizer, appLogger)

	return &Container{
		Config:          config,
		Logger:          appLogger,
		Tracing:         tracing,
		Extractor:       extractor,
		Formatter:       formatter,
		Sanitizer:       sanitizer,
		RecoveryService: recoveryService,
	}
}

// Shutdown releases resources held by the container
func (c *Container) Shutdown(ctx context.Context) error {
	return c.Tracing.Shutdown(ctx)
}
