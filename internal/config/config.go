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

// S3Config holds object storage settings for S3-compatible backends.
// EndpointURL is optional; when empty the AWS regional endpoint is used.
type S3Config struct {
	BucketName           string
	RegionName           string
	EndpointURL          string
	AccessKeyID          string
	SecretAccessKey      string
	PresignExpirySeconds int
}

// APIConfig controls the API key gate. An empty Key disables the gate.
type APIConfig struct {
	Key        string
	HeaderName string
}

// AuthzConfig points at the external clinical-history authorization service.
// An empty BaseURL skips the remote check entirely.
type AuthzConfig struct {
	BaseURL string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables once at startup and never
// mutated afterwards. Sensitive values are not hardcoded.
type AppConfig struct {
	Port     string
	Database DatabaseConfig
	S3       S3Config
	API      APIConfig
	Authz    AuthzConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port: getEnv("PORT", "8080"), // default only for non-sensitive value
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
		S3: S3Config{
			BucketName:           getEnv("S3_BUCKET_NAME", ""),
			RegionName:           getEnv("S3_REGION_NAME", "us-east-1"),
			EndpointURL:          getEnv("S3_ENDPOINT_URL", ""),
			AccessKeyID:          getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey:      getEnv("S3_SECRET_ACCESS_KEY", ""),
			PresignExpirySeconds: getEnvInt("S3_PRESIGNED_EXPIRATION_SECONDS", 900),
		},
		API: APIConfig{
			Key:        getEnv("API_KEY", ""),
			HeaderName: getEnv("API_HEADER_NAME", "x-api-key"),
		},
		Authz: AuthzConfig{
			BaseURL: getEnv("AUTHZ_BASE_URL", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
