// Package config holds the env-driven configuration for the library.
package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/voidfemme/chatbot-library/utils"
)

// Config controls library-wide behavior. Every field can be set from the
// environment; see the env tags for the variable names.
type Config struct {
	LogLevel            utils.LogLevel `env:"CHATBOT_LOG_LEVEL" envDefault:"WARN"`
	EnableTemplateCache bool           `env:"CHATBOT_TEMPLATE_CACHE" envDefault:"true"`
	MaxTemplateSize     int            `env:"CHATBOT_MAX_TEMPLATE_SIZE" envDefault:"65536"`
	DefaultCategory     string         `env:"CHATBOT_DEFAULT_CATEGORY" envDefault:"general"`
	TokenModel          string         `env:"CHATBOT_TOKEN_MODEL" envDefault:"gpt-4o"`
}

// LoadConfig builds a Config from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type ConfigOption func(*Config)

// NewConfig returns a Config with library defaults, ignoring the environment.
func NewConfig() *Config {
	return &Config{
		LogLevel:            utils.LogLevelWarn,
		EnableTemplateCache: true,
		MaxTemplateSize:     65536,
		DefaultCategory:     "general",
		TokenModel:          "gpt-4o",
	}
}

func SetLogLevel(level utils.LogLevel) ConfigOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}

func SetEnableTemplateCache(enable bool) ConfigOption {
	return func(c *Config) {
		c.EnableTemplateCache = enable
	}
}

func SetMaxTemplateSize(size int) ConfigOption {
	return func(c *Config) {
		c.MaxTemplateSize = size
	}
}

func SetDefaultCategory(category string) ConfigOption {
	return func(c *Config) {
		c.DefaultCategory = category
	}
}

func SetTokenModel(model string) ConfigOption {
	return func(c *Config) {
		c.TokenModel = model
	}
}

// ApplyOptions applies the given options to the Config.
func ApplyOptions(cfg *Config, opts ...ConfigOption) *Config {
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
