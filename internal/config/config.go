package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ayush/edusync-gateway/internal/api"
)

// Config holds all gateway configuration loaded from environment variables.
type Config struct {
	Port           string
	APIBaseURL     string
	APITimeout     time.Duration
	AllowedOrigins []string

	RedisAddr     string
	RedisPassword string
	InFlightTTL   time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MediaPublicURL string
}

// Load reads a .env file if one exists, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	return &Config{
		Port:           getenv("PORT", "8080"),
		APIBaseURL:     getenv("API_BASE_URL", api.DefaultBaseURL),
		APITimeout:     getenvDuration("API_TIMEOUT", 0),
		AllowedOrigins: getenvList("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		RedisAddr:      getenv("REDIS_ADDR", ""),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		InFlightTTL:    getenvDuration("INFLIGHT_TTL", 30*time.Second),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "course-media"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		MediaPublicURL: getenv("MEDIA_PUBLIC_URL", ""),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
		log.Printf("config: ignoring invalid %s=%q", key, v)
	}
	return fallback
}

// getenvList splits a comma separated value, dropping empty entries.
func getenvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
