// Package tts provides a unified interface for text-to-speech providers.
//
// The bot speaks through OpenAI TTS by default and falls back to a local
// offline engine when the cloud call fails. Providers implement the
// Provider interface, enabling switching without changing caller code.
//
// Example usage:
//
//	provider, _ := tts.NewOpenAI(
//	    tts.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    tts.WithVoice(tts.VoiceNova),
//	)
//	defer provider.Close()
//
//	result, _ := provider.Synthesize(ctx, "Hello world")
//	// result.Audio contains MP3 bytes, unless result.Spoken is set
package tts

import (
	"context"
)

// Provider defines the TTS provider interface.
type Provider interface {
	// Synthesize converts text to audio, returning the complete audio
	// buffer. Providers that play audio themselves return an empty
	// buffer with Spoken set.
	Synthesize(ctx context.Context, text string) (*AudioResult, error)

	// Health checks provider availability.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// AudioResult represents a complete synthesis result.
type AudioResult struct {
	// Audio contains MP3 bytes, empty when Spoken is set.
	Audio []byte

	// Spoken is true when the provider played the audio directly
	// (local engines speak through the sound device themselves).
	Spoken bool

	// CharCount is the number of characters synthesized.
	CharCount int

	// LatencyMs is the time to the full response in milliseconds.
	LatencyMs int64
}

// The six fixed OpenAI voice choices.
const (
	VoiceAlloy   = "alloy"   // neutral
	VoiceEcho    = "echo"    // male
	VoiceFable   = "fable"   // British accent
	VoiceOnyx    = "onyx"    // deep male
	VoiceNova    = "nova"    // female (default)
	VoiceShimmer = "shimmer" // soft female
)

// Voices returns the fixed voice set in display order.
func Voices() []string {
	return []string{VoiceAlloy, VoiceEcho, VoiceFable, VoiceOnyx, VoiceNova, VoiceShimmer}
}

// ValidVoice reports whether v is one of the fixed voice choices.
func ValidVoice(v string) bool {
	for _, voice := range Voices() {
		if v == voice {
			return true
		}
	}
	return false
}
