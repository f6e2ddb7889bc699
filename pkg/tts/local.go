package tts

import (
	"context"
	"os/exec"
	"time"
)

// localEngines lists offline speech binaries in preference order.
// espeak on Linux, say on macOS.
var localEngines = [][]string{
	{"espeak"},
	{"say"},
}

// Local implements Provider using an offline speech engine. It speaks
// through the sound device directly, so results carry no audio bytes.
// Used as the fallback when the cloud provider fails.
type Local struct {
	config *Config
	binary string
	args   []string
}

// NewLocal creates a local TTS provider, probing PATH for a usable
// speech binary.
func NewLocal(opts ...Option) (*Local, error) {
	config := DefaultConfig()
	config.Apply(opts...)

	for _, engine := range localEngines {
		if _, err := exec.LookPath(engine[0]); err == nil {
			return &Local{
				config: config,
				binary: engine[0],
				args:   engine[1:],
			}, nil
		}
	}
	return nil, ErrNoLocalEngine
}

// Engine returns the name of the speech binary in use.
func (l *Local) Engine() string { return l.binary }

// Synthesize speaks the text through the local engine. The returned
// result has Spoken set and no audio buffer.
func (l *Local) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	start := time.Now()

	args := append(append([]string(nil), l.args...), text)
	cmd := exec.CommandContext(ctx, l.binary, args...)
	if err := cmd.Run(); err != nil {
		return nil, WrapError("local", err)
	}

	latency := time.Since(start).Milliseconds()
	l.config.Logger.Debug("tts spoke locally",
		"provider", "local",
		"engine", l.binary,
		"chars", len(text),
		"latency_ms", latency)

	return &AudioResult{
		Spoken:    true,
		CharCount: len(text),
		LatencyMs: latency,
	}, nil
}

// Health reports whether the speech binary is still on PATH.
func (l *Local) Health(_ context.Context) error {
	if _, err := exec.LookPath(l.binary); err != nil {
		return WrapError("local", err)
	}
	return nil
}

// Close is a no-op for the local engine.
func (l *Local) Close() error { return nil }

var _ Provider = (*Local)(nil)
