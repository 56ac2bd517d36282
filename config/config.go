package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	CORS     CORSConfig
	Admin    AdminConfig
	Upload   UploadConfig
	S3       S3Config
	Redis    RedisConfig
	Telegram TelegramConfig
}

type ServerConfig struct {
	Port          string
	GinMode       string
	Environment   string
	PublicBaseURL string // used for absolute links in sitemap.xml
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AdminConfig gates the admin surface. An empty AllowedIPs list disables the IP check.
// Forwarding headers are honoured only from TrustedProxies; empty trusts none.
type AdminConfig struct {
	AllowedIPs     []string
	TrustedProxies []string
}

type UploadConfig struct {
	Backend         string // local or s3
	PublicDir       string
	ImageDir        string
	PDFDir          string
	MaxBytes        int64
	CleanupSchedule string
	CleanupGrace    time.Duration
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

// RedisConfig is optional; an empty Host turns session revocation into a no-op.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
	APIURL   string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:          getEnv("SERVER_PORT", "8080"),
			GinMode:       getEnv("GIN_MODE", "debug"),
			Environment:   getEnv("ENVIRONMENT", "development"),
			PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "https://doorhan-crimea.com"), "/"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "doorhan"),
			Password: getEnv("DB_PASSWORD", "doorhan"),
			DBName:   getEnv("DB_NAME", "doorhan"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", "change-me"),
			TTL:          parseDuration(getEnv("SESSION_TTL", "720h"), 720*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "admin_session"),
			CookieSecure: parseBool(getEnv("SESSION_COOKIE_SECURE", "false")),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Admin: AdminConfig{
			AllowedIPs:     parseSlice(getEnv("ADMIN_ALLOWED_IPS", "")),
			TrustedProxies: parseSlice(getEnv("TRUSTED_PROXIES", "")),
		},
		Upload: UploadConfig{
			Backend:         getEnv("UPLOAD_BACKEND", "local"),
			PublicDir:       getEnv("UPLOAD_PUBLIC_DIR", "./public"),
			ImageDir:        getEnv("UPLOAD_IMAGE_DIR", "img/upload"),
			PDFDir:          getEnv("UPLOAD_PDF_DIR", "pdf"),
			MaxBytes:        parseInt64(getEnv("UPLOAD_MAX_BYTES", "20971520"), 20<<20),
			CleanupSchedule: getEnv("UPLOAD_CLEANUP_SCHEDULE", "30 3 * * *"),
			CleanupGrace:    parseDuration(getEnv("UPLOAD_CLEANUP_GRACE", "24h"), 24*time.Hour),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "eu-central-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       int(parseInt64(getEnv("REDIS_DB", "0"), 0)),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
			APIURL:   getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		},
	}

	if config.Upload.Backend == "s3" && config.S3.Bucket == "" {
		return nil, fmt.Errorf("UPLOAD_BACKEND=s3 requires AWS_S3_BUCKET")
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt64(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseSlice(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
