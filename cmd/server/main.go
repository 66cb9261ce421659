// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/netflix100plus/admin-console/internal/cache"
	"github.com/netflix100plus/admin-console/internal/config"
	"github.com/netflix100plus/admin-console/internal/i18n"
	"github.com/netflix100plus/admin-console/internal/router"
	"github.com/netflix100plus/admin-console/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := newLogger(cfg.Log)
	log := logrus.NewEntry(logger).WithField("env", cfg.Environment)

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		log.WithError(err).Fatal("Failed to initialize i18n")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	responseCache, err := cache.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize cache")
	}
	defer responseCache.Close()

	// Initialize services
	apiClient, err := services.NewAPIClient(cfg.API, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create API client")
	}
	authService := services.NewAuthService(apiClient, log)
	notificationService := services.NewNotificationService()
	dispatcher := services.NewNotificationDispatcher(notificationService, cfg.I18n.DefaultLocale, log)

	svc := &router.Services{
		APIClient:     apiClient,
		Auth:          authService,
		Notifications: notificationService,
		Users:         services.NewUserService(apiClient),
		Verifications: services.NewVerificationService(apiClient),
		Submissions:   services.NewSubmissionService(apiClient),
		Leaderboard:   services.NewLeaderboardService(apiClient),
		Stats:         services.NewStatsService(apiClient, responseCache, cfg.Cache.StatsTTL, log),
		Settings:      services.NewSettingsService(apiClient),
		Reports:       services.NewReportService(apiClient, responseCache, cfg.Cache.SchedulesTTL, log),
		Exports:       services.NewExportService(apiClient, log),
	}

	var watcher *services.RealtimeWatcher
	if cfg.Realtime.Enabled {
		channel, err := services.NewRealtimeChannel(cfg.Realtime, apiClient.Jar(), dispatcher.Handle, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to create realtime channel")
		}
		svc.Realtime = channel
		watcher = services.NewRealtimeWatcher(authService, channel, log)
		watcher.Start(ctx)
	}

	// Resolve the initial session from the backend cookies
	authService.CheckAuth(ctx)
	log.WithField("session", authService.State().Status).Info("Session checked")

	// Initialize router
	r := router.Initialize(ctx, cfg, svc, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.WithField("addr", srv.Addr).Info("Starting admin console")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	if watcher != nil {
		watcher.Stop()
	}

	// Create a deadline for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	stop()

	log.Info("Server exited")
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
