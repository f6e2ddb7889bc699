// Package chat provides the conversational brain of the deskbot.
//
// A Provider speaks the OpenAI-compatible chat completions API, in both
// single-shot and streamed form. The Pipeline on top of it owns the
// conversation transcript and the display directive handling.
//
// Example usage:
//
//	client, _ := chat.NewClient(
//	    chat.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    chat.WithModel("gpt-3.5-turbo"),
//	)
//	defer client.Close()
//
//	resp, _ := client.Chat(ctx, &chat.Request{
//	    Messages: []chat.Message{
//	        {Role: chat.RoleUser, Content: "Hello!"},
//	    },
//	})
package chat

import "context"

// Provider is the chat completion interface.
type Provider interface {
	// Chat generates a complete response from a sequence of messages.
	Chat(ctx context.Context, req *Request) (*Response, error)

	// Stream generates a streaming response for real-time output.
	Stream(ctx context.Context, req *Request) (Stream, error)

	// Health checks provider connectivity and API key validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// Stream is a streaming response for real-time output.
type Stream interface {
	// Recv returns the next chunk. A chunk with Done set ends the stream.
	Recv() (*Chunk, error)

	// Close stops the stream and releases resources.
	Close() error
}

// Chunk is a piece of a streaming response.
type Chunk struct {
	// Delta is the incremental text content.
	Delta string

	// FinishReason indicates why generation stopped (stop, length).
	FinishReason string

	// Done is true when the stream is complete.
	Done bool
}

// Role identifies the author of a message.
type Role string

// Standard chat roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation, in wire format.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request for a chat completion.
type Request struct {
	// Messages is the conversation history.
	Messages []Message

	// Model overrides the default model.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls randomness (0.0-2.0).
	Temperature float64
}

// Response from a chat completion.
type Response struct {
	// Content is the assistant's reply.
	Content string

	// FinishReason indicates why generation stopped.
	FinishReason string

	// Usage tracks token consumption.
	Usage Usage

	// Model used for generation.
	Model string

	// LatencyMs is the response time in milliseconds.
	LatencyMs int64
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
