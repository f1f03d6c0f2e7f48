package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	// RedisURL is optional; when empty, refresh tokens are not tracked and
	// stay valid until natural expiry.
	RedisURL string

	JWTSecret  string
	JWTIssuer  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	BcryptCost int
	LogLevel   string

	// Optional bootstrap superuser, created at startup if absent.
	FirstSuperuserEmail    string
	FirstSuperuserPassword string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:  getEnv("JWT_ISSUER", "authd"),
		AccessTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 30)) * time.Minute,
		RefreshTTL: time.Duration(getEnvInt("REFRESH_TOKEN_TTL_MINUTES", 7*24*60)) * time.Minute,

		BcryptCost: getEnvInt("BCRYPT_COST", 0),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		FirstSuperuserEmail:    os.Getenv("FIRST_SUPERUSER_EMAIL"),
		FirstSuperuserPassword: os.Getenv("FIRST_SUPERUSER_PASSWORD"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
