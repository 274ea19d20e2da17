// Roster scheduling service
// Main entry point

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carefac/roster/internal/config"
	"github.com/carefac/roster/internal/database"
	"github.com/carefac/roster/internal/handler"
	"github.com/carefac/roster/internal/metrics"
	"github.com/carefac/roster/internal/middleware"
	"github.com/carefac/roster/internal/repository"
	"github.com/carefac/roster/internal/security"
	"github.com/carefac/roster/pkg/logger"
)

// Build info, injected via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFormat := "console"
	if cfg.IsProduction() {
		logFormat = "json"
	}
	logger.Init(logger.Config{Level: cfg.App.LogLevel, Format: logFormat, Output: "stdout"})

	fmt.Printf("roster v%s\n", Version)
	fmt.Printf("build: %s (%s)\n", BuildTime, GitCommit)
	fmt.Println()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	staffRepo := repository.NewStaffRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	staffHandler := handler.NewStaffHandler(staffRepo)
	shiftHandler := handler.NewShiftHandler(shiftRepo)
	generateHandler := handler.NewGenerateHandler(staffRepo, shiftRepo, cfg.Roster.RNGSeed)
	statsHandler := handler.NewStatsHandler(staffRepo, shiftRepo)
	exportHandler := handler.NewExportHandler(staffRepo, shiftRepo)

	mux := http.NewServeMux()

	// System endpoints.
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"roster"}`))
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","build_time":"%s","git_commit":"%s"}`, Version, BuildTime, GitCommit)
	})

	// API root: a directory of what's mounted below.
	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"message": "roster API v1",
			"endpoints": {
				"schedule": {
					"generate": "POST /api/v1/schedule/generate",
					"validate": "POST /api/v1/schedule/validate"
				},
				"staff": {
					"list": "GET /api/v1/staff",
					"create": "POST /api/v1/staff",
					"get": "GET /api/v1/staff/{id}",
					"update": "PUT /api/v1/staff/{id}",
					"delete": "DELETE /api/v1/staff/{id}",
					"update_availabilities": "POST /api/v1/staff/availabilities/update/{id}"
				},
				"shifts": {
					"shift_data": "GET /api/v1/shift-data",
					"create": "POST /api/v1/shifts",
					"get": "GET /api/v1/shifts/{id}",
					"update": "PUT /api/v1/shifts/{id}",
					"delete": "DELETE /api/v1/shifts/{id}",
					"clear": "POST /api/v1/shifts/clear"
				},
				"stats": {
					"fairness": "GET /api/v1/stats/fairness",
					"coverage": "GET /api/v1/stats/coverage"
				},
				"constraints": {
					"library": "GET /api/v1/constraints/library"
				},
				"export": {
					"xlsx": "GET /api/v1/roster/{year}/{month}/export.xlsx"
				}
			}
		}`))
	})

	// Roster generation.
	mux.HandleFunc("/api/v1/schedule/generate", generateHandler.Generate)
	mux.HandleFunc("/api/v1/schedule/validate", generateHandler.Validate)

	// Staff CRUD.
	mux.HandleFunc("GET /api/v1/staff", staffHandler.List)
	mux.HandleFunc("POST /api/v1/staff", staffHandler.Create)
	mux.HandleFunc("GET /api/v1/staff/{id}", staffHandler.Get)
	mux.HandleFunc("PUT /api/v1/staff/{id}", staffHandler.Update)
	mux.HandleFunc("DELETE /api/v1/staff/{id}", staffHandler.Delete)
	mux.HandleFunc("POST /api/v1/staff/availabilities/update/{id}", staffHandler.UpdateAvailabilities)

	// Shift CRUD.
	mux.HandleFunc("/api/v1/shift-data", shiftHandler.List)
	mux.HandleFunc("POST /api/v1/shifts", shiftHandler.Create)
	mux.HandleFunc("GET /api/v1/shifts/{id}", shiftHandler.Get)
	mux.HandleFunc("PUT /api/v1/shifts/{id}", shiftHandler.Update)
	mux.HandleFunc("DELETE /api/v1/shifts/{id}", shiftHandler.Delete)
	mux.HandleFunc("/api/v1/shifts/clear", shiftHandler.Clear)

	// Fairness / coverage diagnostics.
	mux.HandleFunc("/api/v1/stats/fairness", statsHandler.Fairness)
	mux.HandleFunc("/api/v1/stats/coverage", statsHandler.Coverage)

	// Constraint catalog.
	mux.HandleFunc("/api/v1/constraints/library", handler.ConstraintsLibrary)

	// Spreadsheet export.
	mux.HandleFunc("/api/v1/roster/{year}/{month}/export.xlsx", exportHandler.Export)

	// Monitoring.
	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	// Middleware chain: requestID -> recovery -> securityHeaders -> auth -> logging -> handler.
	authConfig := &middleware.AuthConfig{
		APIKeyManager: security.NewAPIKeyManager(),
		RateLimiter:   security.NewRateLimiter(cfg.API.RateLimit, time.Minute),
		SkipPaths:     []string{"/health", "/version", "/metrics"},
		Enabled:       false, // single-deployment default; flip on for multi-caller setups
	}
	wrapped := middleware.RequestIDMiddleware(
		middleware.RecoveryMiddleware(
			middleware.SecurityHeadersMiddleware(
				middleware.AuthMiddleware(authConfig)(
					middleware.LoggingMiddleware(mux),
				),
			),
		),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      wrapped,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().
			Int("port", cfg.App.Port).
			Str("version", Version).
			Str("url", fmt.Sprintf("http://localhost:%d", cfg.App.Port)).
			Str("api_docs", fmt.Sprintf("http://localhost:%d/api/v1/", cfg.App.Port)).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server failed to start")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}

	logger.Info().Msg("server shut down")
}
