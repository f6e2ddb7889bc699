package tts

import (
	"context"
	"log/slog"
)

// Chain tries providers in order until one succeeds. The deskbot wires
// it as cloud-then-local: OpenAI first, offline engine when the network
// or the API is down. A failed provider is not retried within a call.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain creates a provider chain. Order matters: the first provider
// is always tried first.
func NewChain(logger *slog.Logger, providers ...Provider) (*Chain, error) {
	if len(providers) == 0 {
		return nil, ErrProviderUnavailable
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{providers: providers, logger: logger}, nil
}

// Synthesize tries each provider in order, returning the first success.
func (c *Chain) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	var errs []error
	for i, p := range c.providers {
		result, err := p.Synthesize(ctx, text)
		if err == nil {
			return result, nil
		}
		errs = append(errs, err)
		if i < len(c.providers)-1 {
			c.logger.Warn("tts provider failed, falling back", "index", i, "error", err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, &ChainError{Errors: errs}
}

// Health succeeds if any provider in the chain is healthy.
func (c *Chain) Health(ctx context.Context) error {
	var errs []error
	for _, p := range c.providers {
		if err := p.Health(ctx); err == nil {
			return nil
		} else {
			errs = append(errs, err)
		}
	}
	return &ChainError{Errors: errs}
}

// Close closes every provider, returning the first error seen.
func (c *Chain) Close() error {
	var first error
	for _, p := range c.providers {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var _ Provider = (*Chain)(nil)
