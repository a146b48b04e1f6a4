package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultSessionSecret = "secret_key_change_me"

// Config 应用配置，全部来自环境变量
type Config struct {
	App     AppConfig
	Feed    FeedConfig
	Cache   CacheConfig
	Storage StorageConfig
	MinIO   MinIOConfig
}

type AppConfig struct {
	Environment   string // development, production
	Port          string
	DatabaseURL   string
	SessionSecret string
	TemplatesDir  string
	SiteURL       string
}

// FeedConfig controls how listings are cut and summarized.
type FeedConfig struct {
	PageSize          int
	PostSummaryLength int
}

type CacheConfig struct {
	Backend       string // memory, redis
	TTL           time.Duration
	Size          int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type StorageConfig struct {
	Backend   string // local, minio
	MediaRoot string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load 读取环境变量并校验
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Environment:   getEnv("APP_ENV", "development"),
			Port:          getEnv("PORT", "8080"),
			DatabaseURL:   getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable"),
			SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
			TemplatesDir:  getEnv("TEMPLATES_DIR", "./web/templates"),
			SiteURL:       strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		},
		Feed: FeedConfig{
			PageSize:          getEnvInt("PAGE_SIZE", 10),
			PostSummaryLength: getEnvInt("POST_SUMMARY_LENGTH", 15),
		},
		Cache: CacheConfig{
			Backend:       getEnv("CACHE_BACKEND", "memory"),
			TTL:           getEnvDuration("CACHE_TTL", 20*time.Second),
			Size:          getEnvInt("CACHE_SIZE", 500),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Backend:   getEnv("STORAGE_BACKEND", "local"),
			MediaRoot: getEnv("MEDIA_ROOT", "./media"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "yatube"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate 检查配置是否合法
func (c *Config) Validate() error {
	if c.Feed.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.Feed.PageSize)
	}
	if c.Feed.PostSummaryLength < 1 {
		return fmt.Errorf("POST_SUMMARY_LENGTH must be positive, got %d", c.Feed.PostSummaryLength)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}
	switch c.Storage.Backend {
	case "local", "minio":
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	if c.App.Environment == "production" && c.App.SessionSecret == defaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}
	return nil
}

// IsDevelopment reports whether the app runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration accepts Go durations ("20s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
