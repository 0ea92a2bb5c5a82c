package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"exptracker/auth"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	DatabaseName string `envconfig:"DATABASE_NAME"`

	// HTTP API configuration
	HTTPAddr  string        `envconfig:"HTTP_ADDR" default:":8080"`
	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTIssuer string        `envconfig:"JWT_ISSUER" default:"exptracker"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// Discord configuration. The bot is disabled when no token is set.
	DiscordToken      string `envconfig:"DISCORD_TOKEN"`
	GuildID           string `envconfig:"DISCORD_GUILD_ID"`
	AnnounceChannelID string `envconfig:"ANNOUNCE_CHANNEL_ID"` // Channel for level-up announcements

	// Stars granted to a player on first contact
	StartingStars int64 `envconfig:"STARTING_STARS" default:"0"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"` // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				return
			}
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the required configuration for the current environment
func (c *Config) Validate() error {
	if c.Environment == "test" {
		return nil
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
		return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
	}
	if c.StartingStars < 0 {
		return fmt.Errorf("STARTING_STARS cannot be negative")
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// TokenConfig returns the access token parameters
func (c *Config) TokenConfig() auth.TokenConfig {
	return auth.TokenConfig{
		Secret: c.JWTSecret,
		Issuer: c.JWTIssuer,
		TTL:    c.JWTTTL,
	}
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		HTTPAddr:    ":0",
		JWTSecret:   "test-secret",
		JWTIssuer:   "exptracker",
		JWTTTL:      time.Hour,
		LogLevel:    "debug",
		Environment: "test",
	}
}
