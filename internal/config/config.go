package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// UploadSignStrategy selects how upload credentials are issued.
type UploadSignStrategy string

const (
	SignStrategyPut  UploadSignStrategy = "put"  // single presigned PUT URL
	SignStrategyPost UploadSignStrategy = "post" // presigned POST policy document
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session store
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration
	SessionSecret string
	CookieSecure  bool

	// Bearer credentials
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Object storage
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	// Upload signing
	UploadSignStrategy UploadSignStrategy
	UploadURLTTL       time.Duration
	DownloadURLTTL     time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "intake_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SessionTTL:    parseDuration(getEnv("SESSION_TTL", "720h"), 720*time.Hour),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		CookieSecure:  getEnv("COOKIE_SECURE", "true") == "true",

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "https://auth.talentbridge.io/"),
		JWTAudience: getEnv("JWT_AUDIENCE", "intake-api"),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "auto"),
		S3Bucket:    getEnv("S3_BUCKET", "intake-uploads"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),

		UploadSignStrategy: parseStrategy(getEnv("UPLOAD_SIGN_STRATEGY", "put")),
		UploadURLTTL:       parseDuration(getEnv("UPLOAD_URL_TTL", "15m"), 15*time.Minute),
		DownloadURLTTL:     parseDuration(getEnv("DOWNLOAD_URL_TTL", "5m"), 5*time.Minute),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseStrategy(s string) UploadSignStrategy {
	if s == string(SignStrategyPost) {
		return SignStrategyPost
	}
	return SignStrategyPut
}
