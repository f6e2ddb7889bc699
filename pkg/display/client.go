// Package display drives the ESP32 OLED face over its HTTP API.
//
// Updates are cosmetic and strictly best-effort: every failure is logged
// and swallowed, nothing is retried, and a dropped update is simply lost.
package display

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds a single device request.
const DefaultTimeout = 2 * time.Second

// Sender pushes an instruction to the device.
type Sender interface {
	Send(ctx context.Context, instruction string)
	SendMood(ctx context.Context, mood Mood)
}

// Client talks to the ESP32 display over HTTP GET.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a display client for the device at addr (host:port).
func NewClient(addr string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: fmt.Sprintf("http://%s", addr),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logger.With("component", "display"),
	}
}

// Send pushes an instruction (a mood name or "text:..." literal) to the
// device. Failures are logged, never returned.
func (c *Client) Send(ctx context.Context, instruction string) {
	u := fmt.Sprintf("%s/face?state=%s", c.baseURL, url.QueryEscape(instruction))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.logger.Warn("device request build failed", "error", err)
		return
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("device unreachable", "instruction", instruction, "error", err)
		return
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("device rejected instruction",
			"instruction", instruction,
			"status", resp.StatusCode,
		)
		return
	}

	c.logger.Debug("sent to device", "instruction", instruction, "status", resp.StatusCode)
}

// SendMood pushes one of the fixed moods.
func (c *Client) SendMood(ctx context.Context, mood Mood) {
	c.Send(ctx, string(mood))
}

// SendTag resolves a directive tag through the unified Instruction mapping
// and dispatches it. Unknown tags are logged and dropped.
func (c *Client) SendTag(ctx context.Context, tag string) {
	instruction, ok := Instruction(tag, nil)
	if !ok {
		c.logger.Warn("unknown display tag", "tag", tag)
		return
	}
	c.Send(ctx, instruction)
}

var _ Sender = (*Client)(nil)
