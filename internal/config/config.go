package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string

	JWTSecret string
	// JWTExpiry of zero means issued tokens never expire.
	JWTExpiry time.Duration

	AdminEmail    string
	AdminPassword string

	CloudinaryCloudName    string
	CloudinaryUploadPreset string

	StoreTimeout  time.Duration
	UploadTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "4000"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/docpoint?parseTime=true&multiStatements=true"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: getDuration("JWT_EXPIRY", 0),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@docpoint.dev"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin12345"),

		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryUploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", ""),

		StoreTimeout:  getDuration("STORE_TIMEOUT", 5*time.Second),
		UploadTimeout: getDuration("UPLOAD_TIMEOUT", 30*time.Second),
	}

	// A missing signing secret is a deployment mistake, not something to
	// discover one failed request at a time. Development gets a fallback;
	// production refuses to start.
	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			slog.Error("JWT_SECRET must be set in production environment")
			os.Exit(1)
		}
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	if cfg.Env == "production" {
		if cfg.JWTSecret == "dev-secret-change-in-production" {
			slog.Error("JWT_SECRET must be set in production environment")
			os.Exit(1)
		}
		if cfg.AdminPassword == "admin12345" {
			slog.Error("ADMIN_PASSWORD must be set in production environment")
			os.Exit(1)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("unparseable duration in environment, using default", "key", key, "value", v)
	return fallback
}
