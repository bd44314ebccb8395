package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Telegram TelegramConfig
	Download DownloadConfig
	Session  SessionConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type TelegramConfig struct {
	BotToken    string
	ExternalURL string
}

type DownloadConfig struct {
	ScratchDir             string
	MaxConcurrentDownloads int
	DownloadTimeout        time.Duration
	FetchTimeout           time.Duration
	MaxFileSize            int64
}

type SessionConfig struct {
	TTL      time.Duration
	Capacity int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "10000")
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")

	// Telegram configuration
	cfg.Telegram.BotToken = getEnvRequired("BOT_TOKEN")
	cfg.Telegram.ExternalURL = getEnvRequired("EXTERNAL_URL")

	// Download configuration
	cfg.Download.ScratchDir = getEnv("DOWNLOAD_DIR", "downloads")
	cfg.Download.MaxConcurrentDownloads = getEnvInt("MAX_CONCURRENT_DOWNLOADS", 3)
	downloadTimeout, err := time.ParseDuration(getEnv("DOWNLOAD_TIMEOUT", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DOWNLOAD_TIMEOUT: %w", err)
	}
	cfg.Download.DownloadTimeout = downloadTimeout
	fetchTimeout, err := time.ParseDuration(getEnv("FETCH_TIMEOUT", "45s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}
	cfg.Download.FetchTimeout = fetchTimeout
	cfg.Download.MaxFileSize = getEnvInt64("MAX_FILE_SIZE", 2*1024*1024*1024) // 2GB default

	// Session configuration
	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.Session.TTL = sessionTTL
	cfg.Session.Capacity = getEnvInt("SESSION_CAPACITY", 10000)

	// Redis configuration (optional, enables the redis session backend)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	return cfg, nil
}

// WebhookPath returns the path segment the Telegram webhook is served on.
func (c *Config) WebhookPath() string {
	return "/webhook/" + c.Telegram.BotToken
}

// WebhookURL returns the externally reachable webhook endpoint registered
// with Telegram at startup.
func (c *Config) WebhookURL() string {
	return c.Telegram.ExternalURL + c.WebhookPath()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
