package stt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emodesk/deskbot/pkg/audio"
)

func TestWhisperTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header %q", got)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model field %q", got)
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		head := make([]byte, 4)
		file.Read(head)
		if string(head) != "RIFF" {
			t.Errorf("upload is not WAV, header %q", head)
		}

		json.NewEncoder(w).Encode(map[string]string{"text": "  Hey Bot What Time Is It "})
	}))
	defer srv.Close()

	w, err := NewWhisper("test-key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewWhisper: %v", err)
	}
	defer w.Close()

	text, err := w.Transcribe(context.Background(), audio.NewChunk([]byte{0, 0, 0, 0}))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "hey bot what time is it" {
		t.Errorf("text %q, want lower-cased trimmed transcript", text)
	}
}

func TestWhisperNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad audio"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	w, _ := NewWhisper("test-key", WithBaseURL(srv.URL))
	defer w.Close()

	_, err := w.Transcribe(context.Background(), audio.NewChunk(nil))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, "bad audio") {
		t.Errorf("message %q", apiErr.Message)
	}
}

func TestWhisperRequiresKey(t *testing.T) {
	if _, err := NewWhisper(""); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}
