package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docpoint/docpoint-go/internal/config"
	"github.com/docpoint/docpoint-go/internal/handler"
	"github.com/docpoint/docpoint-go/internal/media"
	"github.com/docpoint/docpoint-go/internal/middleware"
	"github.com/docpoint/docpoint-go/internal/repository"
	"github.com/docpoint/docpoint-go/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	uploader := media.NewCloudinaryClient(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset, cfg.UploadTimeout)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.StoreTimeout)
	profileService := service.NewProfileService(userRepo, uploader, cfg.StoreTimeout, cfg.UploadTimeout)
	doctorService := service.NewDoctorService(doctorRepo, uploader,
		cfg.AdminEmail, cfg.AdminPassword, cfg.JWTSecret, cfg.JWTExpiry, cfg.StoreTimeout, cfg.UploadTimeout)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	doctorHandler := handler.NewDoctorHandler(doctorService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/doctor/list", doctorHandler.HandleDoctorList)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/user/register", authHandler.HandleRegister)
		r.Post("/api/user/login", authHandler.HandleLogin)
		r.Post("/api/admin/login", doctorHandler.HandleAdminLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.UserAuth(cfg.JWTSecret))
		r.Get("/api/user/get-profile", profileHandler.HandleGetProfile)
		r.Post("/api/user/update-profile", profileHandler.HandleUpdateProfile)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.JWTSecret))
		r.Post("/api/admin/add-doctor", doctorHandler.HandleAddDoctor)
		r.Get("/api/admin/all-doctors", doctorHandler.HandleAllDoctors)
		r.Post("/api/admin/change-availability", doctorHandler.HandleChangeAvailability)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
