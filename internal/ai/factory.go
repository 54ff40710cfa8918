package ai

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config is the ai section of the application configuration.
type Config struct {
	Provider           string        `mapstructure:"provider"`
	APIKey             string        `mapstructure:"api_key"`
	BaseURL            string        `mapstructure:"base_url"`
	Model              string        `mapstructure:"model"`
	MaxTokens          int           `mapstructure:"max_tokens"`
	Temperature        float64       `mapstructure:"temperature"`
	Timeout            time.Duration `mapstructure:"timeout"`
	MaxRetries         int           `mapstructure:"max_retries"`
	InitialBackoff     time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff         time.Duration `mapstructure:"max_backoff"`
	MaxConcurrentCalls int64         `mapstructure:"max_concurrent_calls"`
	RequestsPerSecond  float64       `mapstructure:"requests_per_second"`
}

// RetryConfig derives the retry policy. Zero durations and limits keep their
// defaults; MaxRetries is used as given.
func (c Config) RetryConfig() RetryConfig {
	rc := DefaultRetryConfig()
	if c.MaxRetries >= 0 {
		rc.MaxRetries = c.MaxRetries
	}
	if c.InitialBackoff > 0 {
		rc.InitialBackoff = c.InitialBackoff
	}
	if c.MaxBackoff > 0 {
		rc.MaxBackoff = c.MaxBackoff
	}
	if c.Timeout > 0 {
		rc.Timeout = c.Timeout
	}
	if c.MaxConcurrentCalls > 0 {
		rc.MaxConcurrentCalls = c.MaxConcurrentCalls
	}
	rc.RequestsPerSecond = c.RequestsPerSecond
	return rc
}

// NewCompleter builds the configured provider wrapped in a RetryingCompleter.
// A missing API key yields a *ConfigurationError.
func NewCompleter(cfg Config, logger *slog.Logger) (Completer, error) {
	var (
		inner Completer
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderOpenAI:
		inner, err = NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout)
	case ProviderAnthropic:
		inner, err = NewAnthropicClient(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewRetryingCompleter(inner, cfg.RetryConfig(), logger), nil
}
