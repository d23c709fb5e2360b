package config

import (
	"log/slog"
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

const (
	DefaultPort       = 8080
	DefaultEndpoint   = "/webhook"
	DefaultAPIVersion = "v19.0"
)

// Config holds the bot configuration. AccessToken and VerifyToken are
// required; everything else falls back to a default. The struct is treated
// as read-only once the bot has been constructed.
type Config struct {
	// Facebook app configuration
	AccessToken string
	VerifyToken string

	// AppSecret enables webhook payload signature verification when set.
	AppSecret string

	// Server configuration
	Port       int
	Endpoint   string
	APIVersion string
}

// Load builds a Config from environment variables, reading a .env file
// first when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	cfg := &Config{
		AccessToken: os.Getenv("ACCESS_TOKEN"),
		VerifyToken: os.Getenv("VERIFY_TOKEN"),
		AppSecret:   os.Getenv("APP_SECRET"),
		Port:        getEnvInt("PORT", DefaultPort),
		Endpoint:    getEnv("WEBHOOK_ENDPOINT", DefaultEndpoint),
		APIVersion:  getEnv("API_VERSION", DefaultAPIVersion),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills in zero-valued optional fields. Useful when a Config
// is built by hand instead of through Load.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
}

// Validate reports whether the configuration is usable. Missing tokens are
// a hard error: the bot cannot verify its webhook or call the Graph API
// without them.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AccessToken, validation.Required.Error("access token is required")),
		validation.Field(&c.VerifyToken, validation.Required.Error("verify token is required")),
		validation.Field(&c.Port, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Endpoint, validation.Required),
		validation.Field(&c.APIVersion, validation.Required),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return n
}
