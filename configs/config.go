package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	CMS        CMSConfig
	Cache      CacheConfig
	Locale     LocaleConfig
	Navigation NavigationConfig
	Log        LogConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize       int
	MaxRetries     int
	DialTimeout    time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PoolTimeout    time.Duration
	IdleTimeout    time.Duration
	CommandTimeout time.Duration
}

// Addr returns the host:port pair used to dial Redis.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type CMSConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// Circuit breaker settings for the outbound client
	BreakerMaxRequests      uint32
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerFailureThreshold float64
	BreakerMinRequests      uint32
}

type CacheConfig struct {
	Prefix     string
	DefaultTTL time.Duration
}

type LocaleConfig struct {
	Default   string
	Supported []string
}

type NavigationConfig struct {
	Name string
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitConfig struct {
	RequestsPerMinute int
	BurstMultiplier   float64
	Window            time.Duration
	KeyPrefix         string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "3000"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			AllowedOrigins: getListEnv("ALLOWED_ORIGINS", []string{"*"}),
			Environment:    getEnv("APP_ENV", "development"),
		},
		Redis: RedisConfig{
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getIntEnv("REDIS_DB", 0),
			PoolSize:       getIntEnv("REDIS_POOL_SIZE", 10),
			MaxRetries:     getIntEnv("REDIS_MAX_RETRIES", 3),
			DialTimeout:    getDurationEnv("REDIS_DIAL_TIMEOUT", 10*time.Second),
			ReadTimeout:    getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:   getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:    getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:    getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
			CommandTimeout: getDurationEnv("REDIS_COMMAND_TIMEOUT", 5*time.Second),
		},
		CMS: CMSConfig{
			BaseURL:                 getEnv("STRAPI_API_URL", "http://localhost:1337/api"),
			Token:                   getEnv("STRAPI_TOKEN", ""),
			Timeout:                 getDurationEnv("STRAPI_TIMEOUT", 10*time.Second),
			BreakerMaxRequests:      uint32(getIntEnv("STRAPI_BREAKER_MAX_REQUESTS", 5)),
			BreakerInterval:         getDurationEnv("STRAPI_BREAKER_INTERVAL", 30*time.Second),
			BreakerTimeout:          getDurationEnv("STRAPI_BREAKER_TIMEOUT", 60*time.Second),
			BreakerFailureThreshold: getFloatEnv("STRAPI_BREAKER_FAILURE_THRESHOLD", 0.8),
			BreakerMinRequests:      uint32(getIntEnv("STRAPI_BREAKER_MIN_REQUESTS", 5)),
		},
		Cache: CacheConfig{
			Prefix:     getEnv("CACHE_PREFIX", "strapi"),
			DefaultTTL: getDurationEnv("CACHE_DEFAULT_TTL", 5*time.Minute),
		},
		Locale: LocaleConfig{
			Default:   getEnv("DEFAULT_LOCALE", "vi"),
			Supported: getListEnv("SUPPORTED_LOCALES", []string{"vi", "en", "fr"}),
		},
		Navigation: NavigationConfig{
			Name: getEnv("NAVIGATION_NAME", "Navigation"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getIntEnv("RATE_LIMIT_RPM", 60),
			BurstMultiplier:   getFloatEnv("RATE_LIMIT_BURST", 2.0),
			Window:            getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			KeyPrefix:         getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:client"),
		},
	}

	cfg.Locale.Default = strings.TrimSpace(cfg.Locale.Default)
	if cfg.Locale.Default == "" {
		return nil, fmt.Errorf("DEFAULT_LOCALE must not be empty")
	}
	if !containsFold(cfg.Locale.Supported, cfg.Locale.Default) {
		return nil, fmt.Errorf("DEFAULT_LOCALE %q is not listed in SUPPORTED_LOCALES", cfg.Locale.Default)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping blank entries.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
