package infra

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv                string
	Port                  string
	DatabaseURL           string
	UploadDir             string
	DetectorURL           string
	DetectorTimeout       time.Duration
	DetectorImageSize     int
	DetectorMinConfidence float64
	CORSAllowedOrigins    []string
	MaxUploadBytes        int64
	HTTPReadTimeout       time.Duration
	HTTPWriteTimeout      time.Duration
	HTTPIdleTimeout       time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. DATABASE_URL and DETECTOR_URL are optional: without
// the former the service runs on the in-memory ledger, without the latter
// uploads are stored but not counted.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		Port:                  getEnv("PORT", "8000"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		UploadDir:             getEnv("UPLOAD_DIR", "uploads"),
		DetectorURL:           os.Getenv("DETECTOR_URL"),
		DetectorTimeout:       time.Second * time.Duration(getEnvInt("DETECTOR_TIMEOUT_SECONDS", 30)),
		DetectorImageSize:     getEnvInt("DETECTOR_IMAGE_SIZE", 640),
		DetectorMinConfidence: getEnvFloat("DETECTOR_MIN_CONFIDENCE", 0.25),
		CORSAllowedOrigins:    splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MaxUploadBytes:        int64(getEnvInt("MAX_UPLOAD_MB", 20)) << 20,
		HTTPReadTimeout:       time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:      time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:       time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitAndTrim(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
