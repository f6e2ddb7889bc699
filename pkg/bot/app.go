package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emodesk/deskbot/pkg/audio"
	"github.com/emodesk/deskbot/pkg/chat"
	"github.com/emodesk/deskbot/pkg/display"
	"github.com/emodesk/deskbot/pkg/gate"
	"github.com/emodesk/deskbot/pkg/listen"
	"github.com/emodesk/deskbot/pkg/stt"
	"github.com/emodesk/deskbot/pkg/tts"
	"github.com/emodesk/deskbot/pkg/web"
)

// Persona is the system prompt that shapes every reply. The example
// replies teach the model the [DISPLAY:tag] marker convention.
const Persona = `You are Emo, an AI powered cute Desk bot that controls a small OLED display on an ESP32 device.
You can show different faces (happy, neutral, sad, angry, grinning, scared) and display simple information.
When asked about time, weather, or other data that would be helpful to display, you should both
answer conversationally AND tell the system to display relevant information on the OLED.
Also your responses should be short, as cute as possible and funny. Behave like a 10 year old baby.

Example responses:
1. If someone asks if you're happy: "I'm feeling great today! [DISPLAY:happy]"
2. If someone asks for the time: "It's currently 3:45 PM. [DISPLAY:time]"
3. If someone asks if you're upset: "Grrrr, I'm a bit mad right now! [DISPLAY:angry]"
4. If someone shares bad news: "I'm sorry to hear that. [DISPLAY:sad]"
5. If someone says something funny: "Hehe, that's hilarious! [DISPLAY:grinning]"
6. If someone asks about weather: "It's sunny and 72°F today. [DISPLAY:weather]"
7. If someone startles you or mentions something scary: "Eek! That's frightening! [DISPLAY:scared]"

Try to be helpful, friendly, and use the display capabilities when relevant.`

// Canned utterances.
const (
	WelcomeMessage  = "Welcome to the AI Desk Bot! How can I help you today?"
	GoodbyeMessage  = "Goodbye! Have a great day!"
	ListeningPrompt = "I'm listening"
)

// joinTimeout bounds the wait for the capture worker on shutdown.
const joinTimeout = 6 * time.Second

// App is the main deskbot orchestrator. It manages all components and
// their lifecycle.
type App struct {
	cfg    Config
	logger *slog.Logger

	// Components, built by Init.
	session     *listen.Session
	queue       *listen.Queue
	worker      *listen.Worker
	source      audio.Source
	transcriber stt.Transcriber
	speech      tts.Provider
	player      *audio.Player
	sender      display.Sender
	gate        *gate.Gate
	pipeline    *chat.Pipeline
	dashboard   *web.Server
}

// New creates a deskbot application with the given configuration.
func New(cfg Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{cfg: cfg, logger: logger.With("component", "bot")}
}

// Init builds all components. Call after New and before Run.
// A missing API key or, in voice mode, a dead capture source is fatal.
func (a *App) Init() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.session = listen.NewSession(Persona)
	a.gate = gate.New(!a.cfg.ActivationOnly)
	a.sender = display.NewClient(a.cfg.DeviceAddr(), a.logger)

	chatClient, err := chat.NewClient(
		chat.WithAPIKey(a.cfg.OpenAIKey),
		chat.WithLogger(a.logger),
	)
	if err != nil {
		return fmt.Errorf("chat client: %w", err)
	}
	a.pipeline = chat.NewPipeline(chatClient, a.session.Transcript, a.sender, a.logger)

	whisper, err := stt.NewWhisper(a.cfg.OpenAIKey, stt.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("transcriber: %w", err)
	}
	a.transcriber = whisper

	if err := a.initSpeech(); err != nil {
		return err
	}

	if !a.cfg.TextMode {
		source, err := audio.NewSource(a.cfg.AudioDevice, a.logger)
		if err != nil {
			return fmt.Errorf("capture source: %w", err)
		}
		a.source = source
		a.queue = listen.NewQueue()
		a.worker = listen.NewWorker(a.session, a.source, a.queue, a.logger)
	}

	if a.cfg.WebPort != "" {
		a.dashboard = web.NewServer(a.cfg.WebPort, a.logger)
	}

	return nil
}

// initSpeech builds the TTS chain: cloud voice first, local engine as
// the fallback. With FallbackTTS set, only the local engine is used.
func (a *App) initSpeech() error {
	if a.cfg.Mute {
		return nil
	}

	local, localErr := tts.NewLocal(tts.WithLogger(a.logger))

	if a.cfg.FallbackTTS {
		if localErr != nil {
			return fmt.Errorf("local speech engine: %w", localErr)
		}
		a.speech = local
		return nil
	}

	cloud, err := tts.NewOpenAI(
		tts.WithAPIKey(a.cfg.OpenAIKey),
		tts.WithVoice(a.cfg.Voice),
		tts.WithLogger(a.logger),
	)
	if err != nil {
		return fmt.Errorf("cloud speech: %w", err)
	}

	providers := []tts.Provider{cloud}
	if localErr == nil {
		providers = append(providers, local)
	} else {
		a.logger.Warn("no local speech engine, cloud only", "error", localErr)
	}

	chain, err := tts.NewChain(a.logger, providers...)
	if err != nil {
		return err
	}
	a.speech = chain

	player, err := audio.NewPlayer(a.logger)
	if err != nil {
		return fmt.Errorf("audio player: %w", err)
	}
	a.player = player
	return nil
}

// Run starts the main loop, blocking until the context is cancelled or
// the user says an exit phrase.
func (a *App) Run(ctx context.Context) error {
	if a.dashboard != nil {
		a.dashboard.StartAsync()
	}

	a.welcome(ctx)

	var err error
	if a.cfg.TextMode {
		err = a.runTextLoop(ctx)
	} else {
		a.worker.Start(ctx)
		err = a.runVoiceLoop(ctx)
	}

	a.Shutdown(ctx)
	return err
}

// Shutdown stops the capture worker, says goodbye, and releases
// component resources. Safe to call after Run returns.
func (a *App) Shutdown(ctx context.Context) {
	a.session.Stop()
	if a.queue != nil {
		a.queue.Close()
	}
	if a.worker != nil {
		a.worker.Join(joinTimeout)
	}

	a.sender.SendMood(ctx, display.MoodNeutral)

	if a.source != nil {
		a.source.Close()
	}
	if a.speech != nil {
		a.speech.Close()
	}
	if a.transcriber != nil {
		a.transcriber.Close()
	}
	if a.dashboard != nil {
		a.dashboard.Shutdown()
	}
	a.logger.Info("deskbot stopped")
}

// welcome shows a happy face and announces the bot.
func (a *App) welcome(ctx context.Context) {
	a.logger.Info("deskbot started",
		"text_mode", a.cfg.TextMode,
		"activation_only", a.cfg.ActivationOnly,
		"voice", a.cfg.Voice)

	a.sender.SendMood(ctx, display.MoodHappy)
	a.speak(ctx, WelcomeMessage)
}

// speak voices text through the TTS chain. Every failure is logged and
// swallowed: losing one utterance never stops the bot.
func (a *App) speak(ctx context.Context, text string) {
	if a.cfg.Mute || a.speech == nil || text == "" {
		return
	}

	a.setSpeaking(true)
	defer a.setSpeaking(false)

	result, err := a.speech.Synthesize(ctx, text)
	if err != nil {
		a.logger.Error("speech synthesis failed", "error", err)
		return
	}
	if result.Spoken {
		return
	}
	if a.player == nil {
		a.logger.Warn("no audio player, dropping speech", "chars", result.CharCount)
		return
	}
	if err := a.player.PlayMP3(ctx, result.Audio); err != nil {
		a.logger.Error("speech playback failed", "error", err)
	}
}

func (a *App) setSpeaking(v bool) {
	if a.dashboard != nil {
		a.dashboard.UpdateState(func(s *web.BotState) { s.Speaking = v })
	}
}
