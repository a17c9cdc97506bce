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

	cfg := config.LoadAuth()

	ctx := context.Background()
	db, err := repository.Open(ctx, cfg.DatabaseURL, cfg.ConnectAttempts, cfg.ConnectDelay)
	if err != nil {
		slog.Error("could not connect to the database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		slog.Error("could not initialize users table", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.BcryptCost)
	authHandler := handler.NewAuthHandler(authService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/", handler.Health("Auth Service"))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/profile", authHandler.HandleProfile)
	})

	serve(r, cfg.Port, "auth service")
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
