// Deskbot - voice-interactive desk companion with an ESP32 OLED face
// Listens for activation phrases, chats via OpenAI, and mirrors moods
// on the device display.
package main

import (
	"context"
	"flag"
	stdlog "log"
	"os/signal"
	"syscall"

	"github.com/emodesk/deskbot/internal/config"
	"github.com/emodesk/deskbot/internal/log"
	"github.com/emodesk/deskbot/pkg/bot"
)

func main() {
	cfg := parseFlags()

	log.InitDebug(cfg.Debug)

	app := bot.New(cfg, log.L())
	if err := app.Init(); err != nil {
		stdlog.Fatalf("initialization failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil && err != context.Canceled {
		stdlog.Fatalf("runtime error: %v", err)
	}
}

// parseFlags parses command line flags and returns configuration.
func parseFlags() bot.Config {
	cfg := bot.DefaultConfig()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	textMode := flag.Bool("text", false, "Type commands instead of speaking")
	mute := flag.Bool("mute", false, "Disable speech output")
	fallbackTTS := flag.Bool("fallback-tts", false, "Use the local speech engine instead of the cloud voice")
	alwaysListen := flag.Bool("always-listen", false, "Treat every utterance as a command (no activation phrase)")
	noStream := flag.Bool("no-stream", false, "Wait for complete replies instead of streaming")
	voice := flag.String("voice", cfg.Voice, "Cloud voice: alloy, echo, fable, onyx, nova, shimmer")
	webPort := flag.String("web", "", "Serve the dashboard on this port (empty = off)")
	device := flag.String("audio-device", "", "Capture device (empty = system default)")
	deviceIP := flag.String("esp32-ip", "", "ESP32 display IP (overrides ESP32_IP env var)")
	flag.Parse()

	cfg.Debug = *debug
	cfg.TextMode = *textMode
	cfg.Mute = *mute
	cfg.FallbackTTS = *fallbackTTS
	cfg.ActivationOnly = !*alwaysListen
	cfg.StreamReplies = !*noStream
	cfg.Voice = *voice
	cfg.WebPort = *webPort
	cfg.AudioDevice = *device

	// Environment variables, seeded from .env when present.
	if err := config.LoadDotenv(); err != nil {
		stdlog.Printf("warning: could not load .env: %v", err)
	}
	cfg.LoadEnvConfig()
	if *deviceIP != "" {
		cfg.DeviceIP = *deviceIP
	}

	return cfg
}
