package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emodesk/deskbot/internal/httpc"
)

const (
	// DefaultOpenAIBaseURL is the OpenAI API base.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	// ModelTTS1 is the standard speech model.
	ModelTTS1 = "tts-1"

	// ModelTTS1HD is the higher-quality, higher-latency speech model.
	ModelTTS1HD = "tts-1-hd"
)

// OpenAI implements Provider using the OpenAI speech endpoint.
// It returns MP3 audio for the caller to play.
type OpenAI struct {
	config *Config
	client *http.Client
}

// NewOpenAI creates an OpenAI TTS provider.
func NewOpenAI(opts ...Option) (*OpenAI, error) {
	config := DefaultConfig()
	config.BaseURL = DefaultOpenAIBaseURL
	config.Apply(opts...)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &OpenAI{
		config: config,
		client: httpc.NewClient(config.Timeout),
	}, nil
}

type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// Synthesize converts text to MP3 audio via POST /audio/speech.
// There is no retry here: on failure the chain moves to the next provider.
func (o *OpenAI) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	start := time.Now()

	body, err := json.Marshal(speechRequest{
		Model: o.config.ModelID,
		Input: text,
		Voice: o.config.VoiceID,
	})
	if err != nil {
		return nil, WrapError("openai", err)
	}

	url := o.config.BaseURL + "/audio/speech"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, WrapError("openai", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, WrapError("openai", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(msg),
			Provider:   "openai",
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError("openai", fmt.Errorf("read audio: %w", err))
	}

	latency := time.Since(start).Milliseconds()
	o.config.Logger.Debug("tts synthesized",
		"provider", "openai",
		"voice", o.config.VoiceID,
		"chars", len(text),
		"bytes", len(audio),
		"latency_ms", latency)

	return &AudioResult{
		Audio:     audio,
		CharCount: len(text),
		LatencyMs: latency,
	}, nil
}

// Health verifies the API key is accepted by listing models.
func (o *OpenAI) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.config.BaseURL+"/models", nil)
	if err != nil {
		return WrapError("openai", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.config.APIKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return WrapError("openai", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "health check failed", Provider: "openai"}
	}
	return nil
}

// Close releases the provider's resources.
func (o *OpenAI) Close() error {
	o.client.CloseIdleConnections()
	return nil
}

var _ Provider = (*OpenAI)(nil)
