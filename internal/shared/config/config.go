package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	S3SSEKMSKeyID   string

	LLMProvider     string
	LLMModel        string
	AnthropicAPIKey string
	OpenAIAPIKey    string

	WebhookSecret string
	DatabaseURL   string

	CacheTTL         time.Duration
	MaxContentLength int
	ConcurrentCalls  int
	MaxUploadBytes   int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	secret := os.Getenv("WEBHOOK_SECRET")
	if env == "production" && secret == "" {
		log.Printf("WEBHOOK_SECRET is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8001"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		S3SSEKMSKeyID:   getEnv("S3_SSE_KMS_KEY_ID", ""),

		LLMProvider:     normalizeProvider(getEnv("LLM_PROVIDER", "anthropic")),
		LLMModel:        getEnv("LLM_MODEL", ""),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),

		WebhookSecret: getEnv("WEBHOOK_SECRET", "cf1-ai-webhook-secret-key"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		CacheTTL:         time.Duration(getEnvInt("CACHE_TTL_HOURS", 24)) * time.Hour,
		MaxContentLength: getEnvInt("MAX_CONTENT_LENGTH", 8000),
		ConcurrentCalls:  getEnvInt("CONCURRENT_LLM_CALLS", 3),
		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	default:
		return "anthropic"
	}
}
