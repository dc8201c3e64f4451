package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/redis/go-redis/v9"

	"github.com/aescanero/dago-node-render/internal/zones"
)

// Config holds all configuration for the render worker
type Config struct {
	// Worker configuration
	WorkerID string `env:"WORKER_ID" envDefault:"render-1"`

	// Redis configuration
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Stream configuration
	StreamKey     string        `env:"STREAM_KEY" envDefault:"render.work"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"render-workers"`
	ResultStream  string        `env:"RESULT_STREAM" envDefault:"render.done"`
	BlockTime     time.Duration `env:"BLOCK_TIME" envDefault:"1s"`
	MaxRetries    int           `env:"MAX_RETRIES" envDefault:"3"`

	// Rendering configuration
	DefaultLocale     string `env:"DEFAULT_LOCALE" envDefault:"en-us"`
	DefaultTimezone   string `env:"DEFAULT_TIMEZONE" envDefault:""`
	TemplateCacheSize int    `env:"TEMPLATE_CACHE_SIZE" envDefault:"0"`

	// CEL configuration
	CELEnabled bool `env:"CEL_ENABLED" envDefault:"true"`

	// Health check configuration
	HealthPort int `env:"HEALTH_PORT" envDefault:"8083"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return LoadWith(env.Options{})
}

// LoadWith loads configuration using explicit env parsing options
func LoadWith(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.WorkerID == "" {
		return fmt.Errorf("WORKER_ID is required")
	}

	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.StreamKey == "" {
		return fmt.Errorf("STREAM_KEY is required")
	}

	if c.ConsumerGroup == "" {
		return fmt.Errorf("CONSUMER_GROUP is required")
	}

	if c.ResultStream == "" {
		return fmt.Errorf("RESULT_STREAM is required")
	}

	if c.ResultStream == c.StreamKey {
		return fmt.Errorf("RESULT_STREAM must differ from STREAM_KEY")
	}

	if c.BlockTime <= 0 {
		return fmt.Errorf("BLOCK_TIME must be positive")
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES must be non-negative")
	}

	if c.DefaultLocale == "" {
		return fmt.Errorf("DEFAULT_LOCALE is required")
	}

	if c.DefaultTimezone != "" && !slices.Contains(zones.Offsets(), c.DefaultTimezone) {
		return fmt.Errorf("DEFAULT_TIMEZONE must be a UTC offset such as +05:30, got %q", c.DefaultTimezone)
	}

	if c.TemplateCacheSize < 0 {
		return fmt.Errorf("TEMPLATE_CACHE_SIZE must be non-negative")
	}

	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("HEALTH_PORT must be between 1 and 65535")
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// RedisOptions returns Redis client options
func (c *Config) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{WorkerID=%s, RedisAddr=%s, RedisDB=%d, StreamKey=%s, ConsumerGroup=%s, "+
			"ResultStream=%s, DefaultLocale=%s, DefaultTimezone=%s, CELEnabled=%v, HealthPort=%d, LogLevel=%s}",
		c.WorkerID,
		c.RedisAddr,
		c.RedisDB,
		c.StreamKey,
		c.ConsumerGroup,
		c.ResultStream,
		c.DefaultLocale,
		c.DefaultTimezone,
		c.CELEnabled,
		c.HealthPort,
		c.LogLevel,
	)
}
