package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env   string
	Port  int
	Debug bool

	// dashboard -> backend base URL
	BackendURL string

	AllowedOrigins []string

	// OTLP gRPC collector endpoint; tracing stays off when empty
	OTLPEndpoint string

	RateLimit  int
	RateWindow time.Duration
}

func Load() Config {
	// best effort, a missing .env file is fine
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "development")
	port := getEnvInt("PORT", 8086)
	debug := getEnvBool("DEBUG", false)

	return Config{
		Env:            env,
		Port:           port,
		Debug:          debug,
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8086"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:8084")),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		RateLimit:      getEnvInt("RATE_LIMIT", 100),
		RateWindow:     time.Duration(getEnvInt("RATE_WINDOW_SECONDS", 60)) * time.Second,
	}
}

// LoadDashboard is Load with the dashboard's own default port.
func LoadDashboard() Config {
	cfg := Load()

	if os.Getenv("PORT") == "" {
		cfg.Port = 8084
	}

	return cfg
}

func (c Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
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
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}

	return fallback
}
