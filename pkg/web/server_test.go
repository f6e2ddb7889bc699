package web

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
)

func TestStateEndpoint(t *testing.T) {
	s := NewServer("0", nil)
	s.UpdateState(func(st *BotState) {
		st.Listening = true
		st.Mood = "happy"
		st.LastUserMessage = "what time is it"
	})

	req := httptest.NewRequest("GET", "/api/state", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var state BotState
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !state.Listening || state.Mood != "happy" {
		t.Errorf("state %+v", state)
	}
	if state.LastUserMessage != "what time is it" {
		t.Errorf("last user message %q", state.LastUserMessage)
	}
}

func TestConversationEndpoint(t *testing.T) {
	s := NewServer("0", nil)
	s.AddConversation("user", "hello")
	s.AddConversation("bot", "hi there")

	req := httptest.NewRequest("GET", "/api/conversation", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var entries []ConversationEntry
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries %d", len(entries))
	}
	if entries[0].Role != "user" || entries[1].Role != "bot" {
		t.Errorf("roles %q %q", entries[0].Role, entries[1].Role)
	}
}

func TestConversationBufferBounded(t *testing.T) {
	s := NewServer("0", nil)
	for i := 0; i < maxConversationEntries+10; i++ {
		s.AddConversation("user", "msg")
	}

	s.conversationMu.RLock()
	defer s.conversationMu.RUnlock()
	if len(s.conversation) != maxConversationEntries {
		t.Errorf("buffer %d, want %d", len(s.conversation), maxConversationEntries)
	}
}

func TestWSUpgradeRequired(t *testing.T) {
	s := NewServer("0", nil)

	req := httptest.NewRequest("GET", "/ws/state", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 426 {
		t.Errorf("status %d, want 426 upgrade required", resp.StatusCode)
	}
}
