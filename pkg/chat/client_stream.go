package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Stream returns a streaming chat response.
func (c *Client) Stream(ctx context.Context, req *Request) (Stream, error) {
	payload := c.buildPayload(req, true)

	// Streams run longer than single-shot completions.
	client := &http.Client{Timeout: c.config.StreamTimeout}
	resp, err := c.post(ctx, "/chat/completions", payload, client)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, c.parseError(resp)
	}

	return &clientStream{
		reader: bufio.NewReader(resp.Body),
		body:   resp.Body,
	}, nil
}

// clientStream implements Stream for SSE responses.
type clientStream struct {
	reader *bufio.Reader
	body   io.ReadCloser
}

// Recv returns the next stream chunk.
func (s *clientStream) Recv() (*Chunk, error) {
	for {
		line, err := s.reader.ReadString('\n')
		if err == io.EOF {
			return &Chunk{Done: true}, nil
		}
		if err != nil {
			return nil, WrapError(fmt.Errorf("read stream: %w", err))
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			return &Chunk{Done: true}, nil
		}

		var event streamEvent
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			// Skip malformed events
			continue
		}

		if len(event.Choices) == 0 {
			continue
		}

		choice := event.Choices[0]
		return &Chunk{
			Delta:        choice.Delta.Content,
			FinishReason: choice.FinishReason,
			Done:         choice.FinishReason != "",
		}, nil
	}
}

// Close stops the stream.
func (s *clientStream) Close() error {
	return s.body.Close()
}

// streamEvent is the SSE event format.
type streamEvent struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
			Role    string `json:"role"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}
