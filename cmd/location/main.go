package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/config"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/geo"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/handler"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/middleware"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/notifier"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/repository"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.LoadLocation()

	ctx := context.Background()
	db, err := repository.Open(ctx, cfg.DatabaseURL, cfg.ConnectAttempts, cfg.ConnectDelay)
	if err != nil {
		slog.Error("could not connect to the database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	locationRepo := repository.NewLocationRepository(db)
	if err := locationRepo.EnsureSchema(ctx); err != nil {
		slog.Error("could not initialize location_history table", "error", err)
		os.Exit(1)
	}

	zones, err := buildLocator(ctx, cfg, db)
	if err != nil {
		slog.Error("could not set up geofence containment", "error", err)
		os.Exit(1)
	}

	var alerts service.Notifier
	if cfg.NotificationURL != "" {
		alerts = notifier.NewClient(cfg.NotificationURL)
	} else {
		slog.Warn("NOTIFICATION_URL not set, out-of-zone alerts will only be logged")
		alerts = notifier.LogOnly{}
	}

	locationService := service.NewLocationService(locationRepo, zones, alerts)
	locationHandler := handler.NewLocationHandler(locationService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/", handler.Health("Location Service"))
	r.Post("/location", locationHandler.HandleReport)
	r.Get("/location/{touristId}", locationHandler.HandleHistory)

	serve(r, cfg.Port, "location service")
}

// buildLocator prefers a GeoJSON fence file when configured, falling
// back to ST_Covers queries against the geofences table.
func buildLocator(ctx context.Context, cfg config.Config, db *sql.DB) (service.GeofenceLocator, error) {
	if cfg.GeofenceFile != "" {
		data, err := os.ReadFile(cfg.GeofenceFile)
		if err != nil {
			return nil, err
		}
		fences, err := geo.ParseFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		slog.Info("loaded geofences from file", "file", cfg.GeofenceFile, "zones", len(fences))
		return geo.NewFenceIndex(fences...), nil
	}

	geofenceRepo := repository.NewGeofenceRepository(db)
	if err := geofenceRepo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return geofenceRepo, nil
}

func serve(h http.Handler, port, name string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: h,
	}

	go func() {
		slog.Info("server starting", "service", name, "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server", "service", name)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped", "service", name)
}
