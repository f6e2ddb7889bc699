package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAISynthesize(t *testing.T) {
	mp3 := []byte("ID3fake-mp3-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header %q", got)
		}

		var req speechRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != ModelTTS1 {
			t.Errorf("model %q", req.Model)
		}
		if req.Voice != VoiceNova {
			t.Errorf("voice %q, want default nova", req.Voice)
		}
		if req.Input != "hello there" {
			t.Errorf("input %q", req.Input)
		}

		w.Write(mp3)
	}))
	defer srv.Close()

	p, err := NewOpenAI(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}
	defer p.Close()

	result, err := p.Synthesize(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if !bytes.Equal(result.Audio, mp3) {
		t.Errorf("audio bytes do not match")
	}
	if result.Spoken {
		t.Error("cloud result should not be marked spoken")
	}
	if result.CharCount != len("hello there") {
		t.Errorf("char count %d", result.CharCount)
	}
}

func TestOpenAISynthesizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, _ := NewOpenAI(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	defer p.Close()

	_, err := p.Synthesize(context.Background(), "hi")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status %d", apiErr.StatusCode)
	}
	if apiErr.Provider != "openai" {
		t.Errorf("provider %q", apiErr.Provider)
	}
}

func TestOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI(); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestOpenAIRejectsUnknownVoice(t *testing.T) {
	_, err := NewOpenAI(WithAPIKey("k"), WithVoice("growl"))
	if !errors.Is(err, ErrUnknownVoice) {
		t.Errorf("expected ErrUnknownVoice, got %v", err)
	}
}

func TestValidVoice(t *testing.T) {
	for _, v := range Voices() {
		if !ValidVoice(v) {
			t.Errorf("voice %q should be valid", v)
		}
	}
	if ValidVoice("robotic") {
		t.Error("unknown voice accepted")
	}
}

func TestChainFallsBackToSecondProvider(t *testing.T) {
	failing := NewMockWithError(errors.New("network down"))
	working := NewMock()

	chain, err := NewChain(nil, failing, working)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}

	result, err := chain.Synthesize(context.Background(), "fallback please")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(result.Audio) == 0 {
		t.Error("expected audio from fallback provider")
	}
	if calls := failing.SynthesizeCalls(); len(calls) != 1 {
		t.Errorf("primary called %d times", len(calls))
	}
	if calls := working.SynthesizeCalls(); len(calls) != 1 || calls[0] != "fallback please" {
		t.Errorf("fallback calls %v", calls)
	}
}

func TestChainAllProvidersFail(t *testing.T) {
	boom := errors.New("boom")
	chain, _ := NewChain(nil, NewMockWithError(boom), NewMockWithError(boom))

	_, err := chain.Synthesize(context.Background(), "hi")
	var chainErr *ChainError
	if !errors.As(err, &chainErr) {
		t.Fatalf("expected ChainError, got %v", err)
	}
	if len(chainErr.Errors) != 2 {
		t.Errorf("recorded %d errors, want 2", len(chainErr.Errors))
	}
}

func TestChainRequiresProviders(t *testing.T) {
	if _, err := NewChain(nil); !errors.Is(err, ErrProviderUnavailable) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestChainStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	primary := &Mock{SynthesizeFunc: func(context.Context, string) (*AudioResult, error) {
		cancel()
		return nil, errors.New("interrupted")
	}}
	fallback := NewMock()

	chain, _ := NewChain(nil, primary, fallback)
	if _, err := chain.Synthesize(ctx, "hi"); err == nil {
		t.Fatal("expected error after cancellation")
	}
	if calls := fallback.SynthesizeCalls(); len(calls) != 0 {
		t.Errorf("fallback should not run after cancel, got %d calls", len(calls))
	}
}

func TestChainClosesAllProviders(t *testing.T) {
	a, b := NewMock(), NewMock()
	chain, _ := NewChain(nil, a, b)
	if err := chain.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.Closed() || !b.Closed() {
		t.Error("not all providers closed")
	}
}
