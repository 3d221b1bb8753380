package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docx-recovery/internal/config"
	"docx-recovery/internal/handler"
	"docx-recovery/pkg/logger"
	"docx-recovery/pkg/version"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.NewLogger("info").Warn(".env file not found or could not be loaded", "error", err.Error())
	}
	// Wiring
	container := config.NewContainer()
	cfg := container.Config

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Handlers
	recoveryHandler := handler.NewRecoveryHandler(
		container.RecoveryService,
		cfg.GetMaxFileSize(),
		container.Logger,
	)
	systemHandler := handler.NewSystemHandler(cfg.GetVersion())

	rateLimiter := handler.NewRateLimiter(cfg.GetRateLimitMax(), cfg.GetRateLimitWindow(), container.Logger)
	rateLimiter.StartJanitor(ctx)

	// Router
	router := handler.NewRouter(recoveryHandler, systemHandler, handler.RouterOptions{
		AllowedOrigins: cfg.GetCORSAllowedOrigins(),
		RateLimiter:    rateLimiter,
		AccessLog:      os.Stdout,
		Logger:         container.Logger,
		Tracing:        container.Tracing,
	})

	// start server
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr, "version", cfg.GetVersion(), "build", version.Get().String())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	container.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}
	if err := container.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Tracer shutdown failed", err)
	}

	container.Logger.Info("Server exited")
}
