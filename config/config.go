package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

type Config struct {
	// Telegram Bot
	BotToken string
	BotDebug bool

	// Public URL Telegram posts updates to
	BaseURL string
	Port    int

	// Number of goroutines handling updates
	Workers int

	DB DatabaseConfig

	// Optional, enables update de-duplication
	RedisURL string
}

type DatabaseConfig struct {
	Driver   string // mysql, sqlite
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Path     string // sqlite only
}

// DSN builds the connection string for the configured driver.
func (dc DatabaseConfig) DSN() string {
	if dc.Driver == "sqlite" {
		return dc.Path
	}

	mc := mysql.NewConfig()
	mc.User = dc.User
	mc.Passwd = dc.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", dc.Host, dc.Port)
	mc.DBName = dc.Database
	mc.ParseTime = true
	// report matched rows, so a zero-delta counter update still finds its group
	mc.ClientFoundRows = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// WebhookPath is the secret path Telegram delivers updates to.
func (c *Config) WebhookPath() string {
	return "/bot" + c.BotToken
}

// WebhookURL is the full URL registered with Telegram.
func (c *Config) WebhookURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.WebhookPath()
}

// Load reads the configuration from the environment, after loading .env if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] .env file not loaded, using environment only")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		BotToken: os.Getenv("TELEGRAM_TOKEN"),
		BaseURL:  getEnv("BASE_URL", "http://localhost"),
		RedisURL: os.Getenv("REDIS_URL"),
		DB: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "mysql"),
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			User:     getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: getEnv("DB_NAME", "boomerometro"),
			Path:     getEnv("DB_PATH", "boomerometro.db"),
		},
	}

	if cfg.BotToken == "" {
		return nil, errors.New("TELEGRAM_TOKEN is required")
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 3000); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("WORKERS", 10); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("WORKERS must be positive, got %d", cfg.Workers)
	}
	if cfg.DB.Port, err = getEnvInt("DB_PORT", 3306); err != nil {
		return nil, err
	}
	if v := os.Getenv("BOT_DEBUG"); v != "" {
		if cfg.BotDebug, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid BOT_DEBUG %q: %w", v, err)
		}
	}

	switch cfg.DB.Driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
