package config

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	// storage
	DBURL        string
	DBName       string
	StoreDriver  string
	StoreTimeout time.Duration

	// redis backs the listing cache and the seed guard when set
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CacheTTL time.Duration

	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	RegisterRateLimit  int

	OTELEndpoint    string
	OTELServiceName string
	OTELSampleRatio float64
}

func Load() Config {
	// a missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	dbURL := getEnv("DATABASE_URL", "")

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8000),

		DBURL:        dbURL,
		DBName:       getEnv("DATABASE_NAME", ""),
		StoreDriver:  resolveDriver(getEnv("STORE_DRIVER", ""), dbURL),
		StoreTimeout: time.Duration(getEnvInt("STORE_TIMEOUT_MS", 5000)) * time.Millisecond,

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		CacheTTL: time.Duration(getEnvInt("CACHE_TTL_SECONDS", 30)) * time.Second,

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		RegisterRateLimit:  getEnvInt("REGISTER_RATE_LIMIT", 30),

		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELServiceName: getEnv("OTEL_SERVICE_NAME", "tourneyhub"),
		OTELSampleRatio: getEnvFloat("OTEL_SAMPLE_RATIO", 1),
	}
}

// resolveDriver picks the storage backend. An explicit STORE_DRIVER wins,
// otherwise the scheme of the connection string decides.
func resolveDriver(explicit, dbURL string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}

	switch {
	case strings.HasPrefix(dbURL, "mongodb://"), strings.HasPrefix(dbURL, "mongodb+srv://"):
		return "mongo"
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return "postgres"
	default:
		return "mongo"
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", fallback)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slog.Warn("invalid float env var, using default", "key", key, "value", v, "default", fallback)
			return fallback
		}
		return f
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
