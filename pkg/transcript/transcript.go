// Package transcript holds the growing conversation history for a
// deskbot session.
//
// The transcript is append-only and single-writer: only the bot's run
// loop mutates it, so no lock guards appends. Snapshots taken for API
// payloads copy the backing slice. The history grows without bound for
// the life of the process; there is no eviction or summarization.
package transcript

import (
	"time"

	"github.com/google/uuid"
)

// Role tags a transcript entry.
type Role string

// Conversation roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation.
type Message struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// Transcript is the ordered conversation history.
type Transcript struct {
	messages []Message
}

// New creates a transcript seeded with the system persona prompt.
// An empty prompt seeds nothing.
func New(systemPrompt string) *Transcript {
	t := &Transcript{}
	if systemPrompt != "" {
		t.append(RoleSystem, systemPrompt)
	}
	return t
}

// AddUser appends a user turn and returns it.
func (t *Transcript) AddUser(content string) Message {
	return t.append(RoleUser, content)
}

// AddAssistant appends an assistant turn and returns it.
func (t *Transcript) AddAssistant(content string) Message {
	return t.append(RoleAssistant, content)
}

func (t *Transcript) append(role Role, content string) Message {
	msg := Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
		Time:    time.Now(),
	}
	t.messages = append(t.messages, msg)
	return msg
}

// Messages returns a snapshot of the history in order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent entry, or nil when the transcript holds
// only the system prompt or nothing at all.
func (t *Transcript) Last() *Message {
	if len(t.messages) == 0 {
		return nil
	}
	msg := t.messages[len(t.messages)-1]
	if msg.Role == RoleSystem {
		return nil
	}
	return &msg
}
