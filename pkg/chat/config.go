package chat

import (
	"log/slog"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL       = "https://api.openai.com/v1"
	DefaultModel         = "gpt-3.5-turbo"
	DefaultMaxTokens     = 150
	DefaultTemperature   = 0.7
	DefaultTimeout       = 30 * time.Second
	DefaultStreamTimeout = 2 * time.Minute
)

// Config holds chat client configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// API endpoint
	BaseURL string
	APIKey  string

	// Model defaults
	Model       string
	MaxTokens   int
	Temperature float64

	// Timeouts
	Timeout       time.Duration
	StreamTimeout time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithBaseURL sets the API base URL (any OpenAI-compatible endpoint).
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel sets the default chat model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithMaxTokens sets the default response length limit.
func WithMaxTokens(n int) Option {
	return func(c *Config) { c.MaxTokens = n }
}

// WithTemperature sets the default sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = t }
}

// WithTimeout sets the single-shot request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithStreamTimeout sets the streaming request timeout.
func WithStreamTimeout(d time.Duration) Option {
	return func(c *Config) { c.StreamTimeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		Model:         DefaultModel,
		MaxTokens:     DefaultMaxTokens,
		Temperature:   DefaultTemperature,
		Timeout:       DefaultTimeout,
		StreamTimeout: DefaultStreamTimeout,
		Logger:        slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
