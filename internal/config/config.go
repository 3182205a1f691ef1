package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN возвращает строку подключения для gorm.io/driver/postgres
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// QueueConfig настройки очереди
type QueueConfig struct {
	Timezone       string
	ServiceMinutes int
	PositionPolicy string // "lazy" или "compact"
	ClinicCacheTTL time.Duration
	CloseCron      string
}

type Config struct {
	HTTPAddr     string
	CORSOrigins  []string
	AccessSecret string

	Database DatabaseConfig
	Redis    RedisConfig
	Queue    QueueConfig

	Log struct {
		Level  string
		Format string
	}
}

// Location часовой пояс, по которому определяется «сегодня».
func (q QueueConfig) Location() (*time.Location, error) {
	if q.Timezone == "" || q.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(q.Timezone)
}

// LoadDotenv подгружает .env, если окружение не подготовлено заранее (ENV_CHEK).
func LoadDotenv(files ...string) error {
	if os.Getenv("ENV_CHEK") != "" {
		return nil
	}
	return godotenv.Load(files...)
}

// Load собирает конфигурацию из переменных окружения.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))
	cfg.AccessSecret = os.Getenv("JWT_ACCESS_SECRET")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Name = getEnv("DB_NAME", "careplus")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")

	cfg.Queue.Timezone = getEnv("QUEUE_TIMEZONE", "Local")
	cfg.Queue.PositionPolicy = getEnv("QUEUE_POSITION_POLICY", "lazy")
	cfg.Queue.CloseCron = getEnv("QUEUE_CLOSE_CRON", "0 5 0 * * *")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	var err error
	if cfg.Database.Port, err = getInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Queue.ServiceMinutes, err = getInt("QUEUE_SERVICE_MINUTES", 15); err != nil {
		return nil, err
	}
	if cfg.Queue.ClinicCacheTTL, err = getDuration("CLINIC_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые нельзя исправить значением по умолчанию.
func (c *Config) Validate() error {
	if c.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if c.Queue.ServiceMinutes <= 0 {
		return fmt.Errorf("QUEUE_SERVICE_MINUTES must be positive, got %d", c.Queue.ServiceMinutes)
	}
	switch c.Queue.PositionPolicy {
	case "lazy", "compact":
	default:
		return fmt.Errorf("QUEUE_POSITION_POLICY must be lazy or compact, got %q", c.Queue.PositionPolicy)
	}
	if _, err := c.Queue.Location(); err != nil {
		return fmt.Errorf("QUEUE_TIMEZONE: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
