package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	BackendAPIURL   string
	RedisURL        string
	CartTTL         time.Duration
	JWTSecret       string
	UpstreamTimeout time.Duration
	AllowedOrigins  []string
}

// Load reads configuration from a .env file if present, falling back to
// process environment variables.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Port:            getEnv("PORT", "8090"),
		Env:             getEnv("APP_ENV", "development"),
		BackendAPIURL:   getEnv("BACKEND_API_URL", "http://localhost:8080/api"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:         getDuration("CART_TTL", time.Hour*24*7),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using default %s", key, defaultVal)
	}
	return defaultVal
}
