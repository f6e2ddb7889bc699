package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/emodesk/deskbot/pkg/audio"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "whisper-1"
	defaultTimeout = 30 * time.Second
)

// Whisper transcribes audio through the OpenAI transcription endpoint.
type Whisper struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

// WhisperOption configures the Whisper client.
type WhisperOption func(*Whisper)

// WithBaseURL overrides the API base URL (for tests and proxies).
func WithBaseURL(url string) WhisperOption {
	return func(w *Whisper) { w.baseURL = strings.TrimSuffix(url, "/") }
}

// WithModel overrides the transcription model.
func WithModel(model string) WhisperOption {
	return func(w *Whisper) { w.model = model }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) WhisperOption {
	return func(w *Whisper) { w.logger = logger }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) WhisperOption {
	return func(w *Whisper) { w.client = c }
}

// NewWhisper creates a Whisper transcription client.
func NewWhisper(apiKey string, opts ...WhisperOption) (*Whisper, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	w := &Whisper{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("component", "stt.whisper")

	return w, nil
}

// Transcribe uploads the chunk as WAV and returns the lower-cased text.
func (w *Whisper) Transcribe(ctx context.Context, chunk audio.Chunk) (string, error) {
	start := time.Now()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", "utterance.wav")
	if err != nil {
		return "", fmt.Errorf("stt: build form: %w", err)
	}
	if _, err := part.Write(chunk.WAV()); err != nil {
		return "", fmt.Errorf("stt: write audio: %w", err)
	}
	if err := mw.WriteField("model", w.model); err != nil {
		return "", fmt.Errorf("stt: write model field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("stt: close form: %w", err)
	}

	url := w.baseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("stt: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("stt: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &APIError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("stt: decode response: %w", err)
	}

	text := strings.ToLower(strings.TrimSpace(result.Text))
	w.logger.Debug("transcribed utterance",
		"chars", len(text),
		"audio_ms", chunk.Duration().Milliseconds(),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return text, nil
}

// Close releases idle connections.
func (w *Whisper) Close() error {
	w.client.CloseIdleConnections()
	return nil
}

var _ Transcriber = (*Whisper)(nil)
