// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	API         APIConfig
	Realtime    RealtimeConfig
	Cache       CacheConfig
	Redis       RedisConfig
	Console     ConsoleConfig
	Log         LogConfig
	I18n        I18nConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

// APIConfig points at the Netflix 100 Plus backend. BaseURL includes the /v1 prefix.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables
	RateBurst int
}

type RealtimeConfig struct {
	Enabled          bool
	URL              string
	HandshakeTimeout time.Duration
}

type CacheConfig struct {
	Driver       string // memory | redis
	StatsTTL     time.Duration
	SchedulesTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ConsoleConfig struct {
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
	LoginRateBurst int
}

type LogConfig struct {
	Level  string
	Format string
}

type I18nConfig struct {
	DefaultLocale string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	apiBaseURL := strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000/v1"), "/")

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8090"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		API: APIConfig{
			BaseURL:   apiBaseURL,
			Timeout:   getEnvAsDuration("API_TIMEOUT", 30*time.Second),
			RateLimit: getEnvAsFloat("API_RATE_LIMIT", 10),
			RateBurst: getEnvAsInt("API_RATE_BURST", 20),
		},
		Realtime: RealtimeConfig{
			Enabled:          getEnvAsBool("REALTIME_ENABLED", true),
			URL:              getEnv("REALTIME_URL", originOf(apiBaseURL)),
			HandshakeTimeout: getEnvAsDuration("REALTIME_HANDSHAKE_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			Driver:       strings.ToLower(getEnv("CACHE_DRIVER", "memory")),
			StatsTTL:     getEnvAsDuration("CACHE_STATS_TTL", 5*time.Minute),
			SchedulesTTL: getEnvAsDuration("CACHE_SCHEDULES_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Console: ConsoleConfig{
			AllowedOrigins: getEnvAsSlice("CONSOLE_ALLOWED_ORIGINS", []string{"http://localhost:3001"}),
			RateLimit:      getEnvAsFloat("CONSOLE_RATE_LIMIT", 10),
			RateBurst:      getEnvAsInt("CONSOLE_RATE_BURST", 30),
			LoginRateBurst: getEnvAsInt("CONSOLE_LOGIN_RATE_BURST", 5),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.API.BaseURL)
	}

	if u.Scheme != "https" && c.Environment == "production" {
		return fmt.Errorf("API_BASE_URL must use https in production")
	}

	if _, err := url.Parse(c.Realtime.URL); err != nil {
		return fmt.Errorf("invalid REALTIME_URL: %w", err)
	}

	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("CACHE_DRIVER must be memory or redis, got %q", c.Cache.Driver)
	}

	if c.API.RateLimit < 0 {
		return fmt.Errorf("API_RATE_LIMIT must not be negative")
	}

	return nil
}

// Addr returns the console bind address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// originOf strips the path from a URL; the realtime server lives at the API origin.
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
