package config

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr             string
	StoreDriver      string
	MongoURI         string
	MongoDatabase    string
	Timeout          time.Duration
	StoreTimeout     time.Duration
	ServerLog        *log.Logger
	AllowedOrigins   []string
	ValidationStatus int
	MaxRequestBody   int64
}

// Load reads environment variables (and a .env file when present) and returns a fully populated Config.
func Load() Config {
	serverLog := log.New(os.Stdout, "[landlordlink-api] ", log.LstdFlags|log.Lshortfile)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		serverLog.Printf(".env の読み込みに失敗しました: %v", err)
	}

	driver := strings.ToLower(envOrDefault("STORE_DRIVER", StoreDriverMongo))
	if driver != StoreDriverMongo && driver != StoreDriverMemory {
		serverLog.Printf("unknown STORE_DRIVER %q, falling back to %s", driver, StoreDriverMongo)
		driver = StoreDriverMongo
	}

	validationStatus := http.StatusInternalServerError
	if raw := strings.TrimSpace(os.Getenv("VALIDATION_ERROR_STATUS")); raw != "" {
		switch parsed, err := strconv.Atoi(raw); {
		case err == nil && (parsed == http.StatusBadRequest || parsed == http.StatusUnprocessableEntity || parsed == http.StatusInternalServerError):
			validationStatus = parsed
		default:
			serverLog.Printf("ignoring VALIDATION_ERROR_STATUS=%q (allowed: 400, 422, 500)", raw)
		}
	}

	maxBody := int64(1 << 20)
	if raw := strings.TrimSpace(os.Getenv("MAX_REQUEST_BODY_BYTES")); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			maxBody = parsed
		}
	}

	cfg := Config{
		Addr:             envOrDefault("HTTP_ADDR", ":8080"),
		StoreDriver:      driver,
		MongoURI:         firstEnv([]string{"MONGO_URI", "DATABASE_URL"}, "mongodb://mongo:27017"),
		MongoDatabase:    firstEnv([]string{"MONGO_DB", "DATABASE_NAME"}, "landlordlink"),
		Timeout:          durationOrDefault("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		StoreTimeout:     durationOrDefault("STORE_TIMEOUT", 0),
		ServerLog:        serverLog,
		AllowedOrigins:   parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		ValidationStatus: validationStatus,
		MaxRequestBody:   maxBody,
	}

	cfg.ServerLog.Printf("loaded config: addr=%q store=%q database=%q validationStatus=%d", cfg.Addr, cfg.StoreDriver, cfg.MongoDatabase, cfg.ValidationStatus)

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys []string, fallback string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
