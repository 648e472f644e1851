package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Upload   UploadConfig
	LLM      LLMConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	RateLimitPerMinute int
	RateLimitBurst     int
}

// DatabaseConfig holds the embedded database configuration.
type DatabaseConfig struct {
	Path string
}

// UploadConfig bounds document uploads before the pipeline is invoked.
type UploadConfig struct {
	MaxFileSize int64
}

// ProviderConfig holds one LLM provider binding. A provider with an empty
// APIKey is treated as unconfigured.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// LLMConfig holds the provider bindings and shared call parameters.
type LLMConfig struct {
	OpenAI    ProviderConfig
	Anthropic ProviderConfig
	Gemini    ProviderConfig
	Timeout   time.Duration
}

// LoadConfig loads configuration from the environment, after loading a .env
// file when one is present.
func LoadConfig() (*Config, error) {
	if err := loadEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:               getEnv("HTTP_ADDR", ":8080"),
			ReadTimeout:        getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:       getEnvAsDuration("HTTP_WRITE_TIMEOUT", 2*time.Minute),
			IdleTimeout:        getEnvAsDuration("HTTP_IDLE_TIMEOUT", time.Minute),
			RateLimitPerMinute: getEnvAsInt("AI_RATE_LIMIT_PER_MINUTE", 30),
			RateLimitBurst:     getEnvAsInt("AI_RATE_LIMIT_BURST", 10),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "fintrack.db"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10*1024*1024),
		},
		LLM: LLMConfig{
			OpenAI: ProviderConfig{
				APIKey:  getEnv("OPENAI_API_KEY", ""),
				BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
				Model:   getEnv("OPENAI_MODEL", "gpt-4o"),
			},
			Anthropic: ProviderConfig{
				APIKey:  getEnv("ANTHROPIC_API_KEY", ""),
				BaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
				Model:   getEnv("ANTHROPIC_MODEL", "claude-3-sonnet-20240229"),
			},
			Gemini: ProviderConfig{
				APIKey:  getEnv("GOOGLE_API_KEY", ""),
				BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
				Model:   getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
			},
			Timeout: getEnvAsDuration("LLM_TIMEOUT", 90*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration. Provider credentials are not
// required here: dispatch fails at call time when none is configured.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidConfig)
	}
	if c.Database.Path == "" {
		return NewAppError("CONFIG_ERROR", "DB_PATH is required", ErrInvalidConfig)
	}
	if c.Upload.MaxFileSize <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_FILE_SIZE must be greater than 0", ErrInvalidConfig)
	}
	if c.Server.RateLimitPerMinute <= 0 || c.Server.RateLimitBurst <= 0 {
		return NewAppError("CONFIG_ERROR", "rate limit values must be greater than 0", ErrInvalidConfig)
	}
	return nil
}

// ErrInvalidConfig marks configuration validation failures.
var ErrInvalidConfig = fmt.Errorf("invalid configuration")

func loadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Helper functions for environment variable parsing.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
