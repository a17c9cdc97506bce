package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/config"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/handler"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/middleware"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/repository"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.LoadNotification()

	ctx := context.Background()
	db, err := repository.Open(ctx, cfg.DatabaseURL, cfg.ConnectAttempts, cfg.ConnectDelay)
	if err != nil {
		slog.Error("could not connect to the database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	notificationRepo := repository.NewNotificationRepository(db)
	if err := notificationRepo.EnsureSchema(ctx); err != nil {
		slog.Error("could not initialize notifications table", "error", err)
		os.Exit(1)
	}

	notificationService := service.NewNotificationService(notificationRepo)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/", handler.Health("Notification Service"))
	r.Post("/notifications", notificationHandler.HandleCreate)
	r.Get("/notifications/{userId}", notificationHandler.HandleList)
	r.Patch("/notifications/{id}/read", notificationHandler.HandleMarkRead)

	serve(r, cfg.Port, "notification service")
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
