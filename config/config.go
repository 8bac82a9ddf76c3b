package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	JWTSecret   string
	FrontendURL string
	// Redis Configuration (unlock/interaction snapshots + rate limiting)
	RedisURL      string
	RedisPassword string
	// Media storage (S3 or Wasabi)
	S3Provider        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	MediaBucket       string
	MediaBaseURL      string
	WasabiEndpoint    string
	// Simulated latencies. The unlock confirmation and video processing
	// steps always resolve; these only control how long they take.
	UnlockConfirmDelay   time.Duration
	VideoProcessingDelay time.Duration
	MaxVideoUploadBytes  int64
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitUploadThreshold int
	// Debug endpoints (unlock reset) are only mounted when enabled.
	EnableDebugRoutes bool
}

func LoadConfig() (*Config, error) {
	// .env only exists locally; ignored in production.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Media storage
		S3Provider:        getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "ap-southeast-1"),
		MediaBucket:       getEnv("MEDIA_BUCKET", ""),
		MediaBaseURL:      strings.TrimRight(getEnv("MEDIA_BASE_URL", ""), "/"),
		WasabiEndpoint:    getEnv("WASABI_ENDPOINT", ""),
		// Simulated latencies
		UnlockConfirmDelay:   time.Duration(getEnvInt("UNLOCK_CONFIRM_DELAY_MS", 1500)) * time.Millisecond,
		VideoProcessingDelay: time.Duration(getEnvInt("VIDEO_PROCESSING_DELAY_MS", 2000)) * time.Millisecond,
		MaxVideoUploadBytes:  int64(getEnvInt("MAX_VIDEO_UPLOAD_MB", 50)) * 1024 * 1024,
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),
		EnableDebugRoutes:        getEnvBool("ENABLE_DEBUG_ROUTES", false),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. All authenticated requests will be rejected.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Unlock/interaction state will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
