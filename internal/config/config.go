package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// UploadConfig bounds document uploads. Only .docx files are accepted; the
// size cap is enforced by the Fiber body limit.
type UploadConfig struct {
	MaxSizeMB        int
	PresignExpiryMin int
}

// ScanConfig selects the accessibility rule set. An empty path uses the
// embedded defaults.
type ScanConfig struct {
	RuleSetPath string
}

// SuggestConfig selects the fix suggestion provider. Provider "gemini"
// requires an API key; anything else (or a missing key) uses the built-in
// rule table.
type SuggestConfig struct {
	Provider string
	Model    string
	APIKey   string
}

// RateLimitConfig caps requests per client IP per minute. Zero disables
// the limiter.
type RateLimitConfig struct {
	RPM int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	Database  DatabaseConfig
	MinIO     MinIOConfig
	Upload    UploadConfig
	Scan      ScanConfig
	Suggest   SuggestConfig
	RateLimit RateLimitConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Upload: UploadConfig{
			MaxSizeMB:        getEnvInt("UPLOAD_MAX_SIZE_MB", 25),
			PresignExpiryMin: getEnvInt("PRESIGN_EXPIRY_MIN", 15),
		},
		Scan: ScanConfig{
			RuleSetPath: getEnv("SCAN_RULESET_PATH", ""),
		},
		Suggest: SuggestConfig{
			Provider: getEnv("SUGGEST_PROVIDER", "rules"),
			Model:    getEnv("SUGGEST_MODEL", "gemini-2.0-flash"),
			APIKey:   getEnv("GEMINI_API_KEY", ""),
		},
		RateLimit: RateLimitConfig{
			RPM: getEnvInt("RATE_LIMIT_RPM", 300),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
