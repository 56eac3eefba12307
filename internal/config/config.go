package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

type Config struct {
	// Server
	Port string `env:"PORT" envDefault:"5001"`
	Env  string `env:"ENV" envDefault:"development"`

	// Upstream AI provider
	Provider     string `env:"AI_PROVIDER" envDefault:"groq"`
	GroqAPIKey   string `env:"GROQ_API_KEY"`
	GroqBaseURL  string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// ClientConfig is the subset read by the terminal chat client.
type ClientConfig struct {
	RelayURL string `env:"RELAY_URL" envDefault:"http://localhost:5001"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
	// The terminal owns stdout/stderr, so client logs go to a file or nowhere.
	LogFile string `env:"CHAT_LOG_FILE"`
}

// Load reads the relay configuration from the environment, after applying a
// .env file if one exists.
func Load() (*Config, error) {
	// Missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	cfg.RelayURL = strings.TrimRight(cfg.RelayURL, "/")
	return cfg, nil
}

// Validate reports every cross-field problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Port == "" {
		result = multierror.Append(result, errors.New("PORT must not be empty"))
	}

	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		result = multierror.Append(result, fmt.Errorf("ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env))
	}

	switch c.Provider {
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			result = multierror.Append(result, errors.New("GROQ_API_KEY is required when AI_PROVIDER=groq"))
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			result = multierror.Append(result, errors.New("GEMINI_API_KEY is required when AI_PROVIDER=gemini"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown AI_PROVIDER %q", c.Provider))
	}

	return result.ErrorOrNil()
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
