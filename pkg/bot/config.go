// Package bot orchestrates the deskbot: continuous listening,
// activation gating, chat completion, speech, and the device face.
package bot

import (
	"os"

	"github.com/emodesk/deskbot/internal/config"
	"github.com/emodesk/deskbot/pkg/tts"
)

// Config holds all configuration for the deskbot application.
// Flag parsing is done in cmd/deskbot/main.go; this struct is data only.
type Config struct {
	// Debug enables verbose debug logging.
	Debug bool

	// TextMode reads typed commands from stdin instead of the microphone.
	TextMode bool

	// Mute disables all speech output.
	Mute bool

	// FallbackTTS skips the cloud voice and uses the local engine only.
	FallbackTTS bool

	// ActivationOnly requires an activation phrase before commands are
	// processed. When false the bot treats every utterance as a command.
	ActivationOnly bool

	// StreamReplies streams completions and dispatches display
	// directives mid-reply.
	StreamReplies bool

	// Voice is the cloud TTS voice, one of the six fixed choices.
	Voice string

	// WebPort serves the dashboard when non-empty ("" = off).
	WebPort string

	// AudioDevice names the capture device ("" = system default).
	AudioDevice string

	// DeviceIP and DevicePort locate the ESP32 display.
	DeviceIP   string
	DevicePort string

	// OpenAIKey is the API key (typically from the environment).
	OpenAIKey string
}

// DefaultConfig returns sensible defaults for the deskbot.
func DefaultConfig() Config {
	return Config{
		ActivationOnly: true,
		StreamReplies:  true,
		Voice:          tts.VoiceNova,
		DeviceIP:       config.DefaultDeviceIP,
		DevicePort:     config.DefaultDevicePort,
	}
}

// LoadEnvConfig loads configuration values from environment variables.
// Call this after flag parsing to apply environment overrides.
func (c *Config) LoadEnvConfig() {
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	if ip := os.Getenv("ESP32_IP"); ip != "" {
		c.DeviceIP = ip
	}
	if port := os.Getenv("ESP32_PORT"); port != "" {
		c.DevicePort = port
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.OpenAIKey == "" {
		return &ConfigError{Field: "OpenAIKey", Message: "OPENAI_API_KEY environment variable is required"}
	}
	if c.Voice != "" && !tts.ValidVoice(c.Voice) {
		return &ConfigError{Field: "Voice", Message: "voice must be one of: alloy, echo, fable, onyx, nova, shimmer"}
	}
	return nil
}

// DeviceAddr returns the display device address as host:port.
func (c *Config) DeviceAddr() string {
	return c.DeviceIP + ":" + c.DevicePort
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
