package config

import (
	"encoding/base64"
	"os"
	"strconv"
	"strings"
	"time"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type Config struct {
	Port        string
	LogLevel    string
	CORSOrigins string
	RateLimit   int

	// Depolama: memory | postgres | sqlite | redis
	StoreDriver        string
	DatabaseURL        string
	RedisURL           string
	StoreMaxValueBytes int

	ClassPassphrase string
	JWTSecret       string
	TurnstileSecret string

	Timezone           *time.Location
	StatusPollInterval time.Duration
	StatusPublisher    string // log | redis
	StatusChannel      string

	GeminiAPIKey     string
	GeminiModel      string
	AssistantTimeout time.Duration

	// Görseller: dataurl | r2
	ImageBackend  string
	MaxImageBytes int64
	R2            R2Config
	PublicBaseURL string
}

// storeHeadroom data URL öneki ve kaydın geri kalan JSON alanları için pay
const storeHeadroom = 64 * 1024

// defaultStoreMaxValueBytes en büyük görselin data URL hâli sığacak şekilde
// değer limitini görsel limitinden türetir
func defaultStoreMaxValueBytes(maxImageBytes int64) int {
	return base64.StdEncoding.EncodedLen(int(maxImageBytes)) + storeHeadroom
}

func LoadConfig() *Config {
	maxImageBytes := int64(getEnvInt("MAX_IMAGE_BYTES", 4*1024*1024))

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
		RateLimit:   getEnvInt("RATE_LIMIT", 120),

		StoreDriver: getEnv("STORE_DRIVER", "memory"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),

		// varsayılan, en büyük görselin data URL'i sığacak kadar
		StoreMaxValueBytes: getEnvInt("STORE_MAX_VALUE_BYTES", defaultStoreMaxValueBytes(maxImageBytes)),

		ClassPassphrase: getEnv("CLASS_PASSPHRASE", "LN91"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TurnstileSecret: os.Getenv("CF_TURNSTILE_SECRET_KEY"),

		StatusPollInterval: getEnvDuration("STATUS_POLL_INTERVAL", time.Minute),
		StatusPublisher:    getEnv("STATUS_PUBLISHER", "log"),
		StatusChannel:      getEnv("STATUS_CHANNEL", "class_gather_status"),

		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AssistantTimeout: getEnvDuration("ASSISTANT_TIMEOUT", 15*time.Second),

		ImageBackend:  getEnv("IMAGE_BACKEND", "dataurl"),
		MaxImageBytes: maxImageBytes,
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:5173/events/"),
	}

	cfg.Timezone = time.Local
	if name := os.Getenv("TIMEZONE"); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			cfg.Timezone = loc
		}
	}

	// R2 config
	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
