package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port    string
	Env     string
	LogMode string

	// Gemini AI (empty key = model unconfigured, fallbacks only)
	GeminiAPIKey         string
	GeminiModel          string
	GeminiConcurrentReqs int

	// Timeouts
	RequestTimeout    time.Duration
	ModelTimeout      time.Duration
	TranscriptTimeout time.Duration
	ParserTimeout     time.Duration

	// YouTube
	YouTubeMetadata bool

	// Uploads
	StoragePath string
	MaxUploadMB int

	// Rate limiting (Redis optional; in-memory when empty)
	RedisURL           string
	RateLimitPerMinute int

	// Error reporting
	SentryDSN string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "5000"),
		Env:                  getEnvOrDefault("ENV", "development"),
		LogMode:              getEnvOrDefault("LOG_MODE", "development"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiConcurrentReqs: getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		RequestTimeout:       getEnvAsDurationOrDefault("REQUEST_TIMEOUT", 2*time.Minute),
		ModelTimeout:         getEnvAsDurationOrDefault("MODEL_TIMEOUT", 60*time.Second),
		TranscriptTimeout:    getEnvAsDurationOrDefault("TRANSCRIPT_TIMEOUT", 30*time.Second),
		ParserTimeout:        getEnvAsDurationOrDefault("PARSER_TIMEOUT", 30*time.Second),
		YouTubeMetadata:      getEnvAsBoolOrDefault("YOUTUBE_METADATA", true),
		StoragePath:          getEnvOrDefault("STORAGE_PATH", "./uploads"),
		MaxUploadMB:          getEnvAsIntOrDefault("MAX_UPLOAD_MB", 100),
		RedisURL:             getEnvOrDefault("REDIS_URL", ""),
		RateLimitPerMinute:   getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
		SentryDSN:            getEnvOrDefault("SENTRY_DSN", ""),
		FrontendURL:          getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	if cfg.GeminiConcurrentReqs < 1 {
		cfg.GeminiConcurrentReqs = 1
	}

	return cfg
}

// ModelConfigured reports whether a model credential is present.
func (c *Config) ModelConfigured() bool {
	return c.GeminiAPIKey != ""
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
