package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"runtime"
	"time"
)

// ErrNoCaptureTool is returned when no supported recorder binary exists.
var ErrNoCaptureTool = errors.New("audio: no capture tool found (install arecord or sox)")

// Source captures utterance-length audio from a microphone.
type Source interface {
	// Record blocks until maxDur of audio has been captured.
	Record(ctx context.Context, maxDur time.Duration) (Chunk, error)

	// Name returns the backend name.
	Name() string

	// Close releases resources.
	io.Closer
}

// ExecSource captures audio by running a platform recorder subprocess.
type ExecSource struct {
	tool   string
	device string
	logger *slog.Logger
}

// NewSource picks the best recorder for the platform: arecord on Linux,
// sox's rec elsewhere. device is passed to ALSA ("" means default).
func NewSource(device string, logger *slog.Logger) (*ExecSource, error) {
	if logger == nil {
		logger = slog.Default()
	}

	candidates := []string{"rec", "sox"}
	if runtime.GOOS == "linux" {
		candidates = []string{"arecord", "rec", "sox"}
	}

	for _, tool := range candidates {
		if _, err := exec.LookPath(tool); err == nil {
			logger.Info("audio source ready",
				"tool", tool,
				"sample_rate", SampleRate,
				"channels", Channels,
			)
			return &ExecSource{tool: tool, device: device, logger: logger.With("component", "audio.source")}, nil
		}
	}

	return nil, ErrNoCaptureTool
}

// Record captures maxDur of raw PCM16 mono audio.
func (s *ExecSource) Record(ctx context.Context, maxDur time.Duration) (Chunk, error) {
	secs := maxDur.Seconds()
	if secs <= 0 {
		secs = 5
	}

	var cmd *exec.Cmd
	switch s.tool {
	case "arecord":
		args := []string{
			"-q", "-t", "raw",
			"-f", "S16_LE",
			"-r", fmt.Sprint(SampleRate),
			"-c", fmt.Sprint(Channels),
			"-d", fmt.Sprintf("%.0f", secs),
		}
		if s.device != "" {
			args = append(args, "-D", s.device)
		}
		cmd = exec.CommandContext(ctx, s.tool, args...)
	default: // rec / sox
		cmd = exec.CommandContext(ctx, s.tool,
			"-q", "-t", "raw",
			"-b", "16", "-e", "signed-integer",
			"-r", fmt.Sprint(SampleRate),
			"-c", fmt.Sprint(Channels),
			"-",
			"trim", "0", fmt.Sprintf("%.1f", secs),
		)
	}

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return Chunk{}, ctx.Err()
		}
		return Chunk{}, fmt.Errorf("audio: %s capture failed: %w", s.tool, err)
	}

	chunk := NewChunk(out)
	s.logger.Debug("captured utterance",
		"bytes", len(out),
		"duration", chunk.Duration().Round(time.Millisecond),
	)

	return chunk, nil
}

// Name returns the recorder binary in use.
func (s *ExecSource) Name() string {
	return s.tool
}

// Close is a no-op; each capture runs its own subprocess.
func (s *ExecSource) Close() error {
	return nil
}

var _ Source = (*ExecSource)(nil)
