package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
)

// ErrNoPlaybackTool is returned when no supported player binary exists.
var ErrNoPlaybackTool = errors.New("audio: no playback tool found (install mpg123, ffplay or afplay)")

// Player plays synthesized speech through the local speakers.
type Player struct {
	tool   string
	logger *slog.Logger

	mu       sync.Mutex
	speaking bool
}

// NewPlayer picks the best MP3 player for the platform.
func NewPlayer(logger *slog.Logger) (*Player, error) {
	if logger == nil {
		logger = slog.Default()
	}

	candidates := []string{"mpg123", "ffplay"}
	if runtime.GOOS == "darwin" {
		candidates = []string{"afplay", "ffplay", "mpg123"}
	}

	for _, tool := range candidates {
		if _, err := exec.LookPath(tool); err == nil {
			return &Player{tool: tool, logger: logger.With("component", "audio.player")}, nil
		}
	}

	return nil, ErrNoPlaybackTool
}

// PlayMP3 writes the MP3 bytes to a temp file and plays it, blocking
// until playback finishes.
func (p *Player) PlayMP3(ctx context.Context, mp3 []byte) error {
	if len(mp3) == 0 {
		return nil
	}

	f, err := os.CreateTemp("", "deskbot-speech-*.mp3")
	if err != nil {
		return fmt.Errorf("audio: temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(mp3); err != nil {
		f.Close()
		return fmt.Errorf("audio: write speech file: %w", err)
	}
	f.Close()

	p.setSpeaking(true)
	defer p.setSpeaking(false)

	var cmd *exec.Cmd
	switch p.tool {
	case "ffplay":
		cmd = exec.CommandContext(ctx, p.tool, "-nodisp", "-autoexit", "-loglevel", "quiet", path)
	case "mpg123":
		cmd = exec.CommandContext(ctx, p.tool, "-q", path)
	default: // afplay
		cmd = exec.CommandContext(ctx, p.tool, path)
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("audio: %s playback failed: %w", p.tool, err)
	}

	p.logger.Debug("playback finished", "bytes", len(mp3), "path", filepath.Base(path))
	return nil
}

// Speaking reports whether playback is in progress.
func (p *Player) Speaking() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speaking
}

func (p *Player) setSpeaking(v bool) {
	p.mu.Lock()
	p.speaking = v
	p.mu.Unlock()
}
