package bot

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/emodesk/deskbot/pkg/display"
	"github.com/emodesk/deskbot/pkg/listen"
	"github.com/emodesk/deskbot/pkg/web"
)

// State names the run loop's phases, mostly for logging and the
// dashboard.
type State string

// Loop states. SHUTDOWN is the only terminal state.
const (
	StateListening    State = "LISTENING"
	StateTranscribing State = "TRANSCRIBING"
	StateActivated    State = "ACTIVATED"
	StateIgnored      State = "IGNORED"
	StateResponding   State = "RESPONDING"
	StateShutdown     State = "SHUTDOWN"
)

// exitPhrases end the session when spoken as the whole command.
var exitPhrases = []string{"quit", "exit", "bye"}

// popWait bounds each queue poll so the loop can observe stop signals.
const popWait = 500 * time.Millisecond

// runVoiceLoop drains the capture queue until the session ends.
func (a *App) runVoiceLoop(ctx context.Context) error {
	a.logger.Info("voice loop running", "exit_phrases", exitPhrases)

	for a.session.Live() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.setState(StateListening)

		chunk, ok := a.queue.Pop(ctx, popWait)
		if !ok {
			continue
		}

		a.iterate(ctx, func() {
			a.setState(StateTranscribing)
			text, err := a.transcriber.Transcribe(ctx, chunk)
			if err != nil {
				a.logger.Warn("transcription failed", "error", err)
				return
			}
			if text == "" {
				return
			}
			a.logger.Info("heard", "text", text)
			a.handleUtterance(ctx, text)
		})
	}

	a.setState(StateShutdown)
	return nil
}

// runTextLoop reads typed commands from stdin. No worker or queue is
// involved; each line is handled synchronously.
func (a *App) runTextLoop(ctx context.Context) error {
	a.logger.Info("text loop running", "exit_phrases", exitPhrases)
	scanner := bufio.NewScanner(os.Stdin)

	for a.session.Live() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.setState(StateListening)

		fmt.Print("You: ")
		if !scanner.Scan() {
			a.session.Stop()
			break
		}

		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}

		a.iterate(ctx, func() {
			a.handleUtterance(ctx, line)
		})
	}

	a.setState(StateShutdown)
	return scanner.Err()
}

// iterate runs one loop body, converting panics into logged errors so
// the loop always resumes at LISTENING.
func (a *App) iterate(ctx context.Context, body func()) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("iteration panicked, resuming", "panic", r)
		}
	}()
	body()
}

// handleUtterance gates a transcribed utterance and, when activated,
// produces and speaks a reply.
func (a *App) handleUtterance(ctx context.Context, text string) {
	result := a.gate.Check(text)
	if !result.Activated {
		a.setState(StateIgnored)
		a.logger.Debug("no activation phrase, ignoring", "text", text)
		return
	}
	a.setState(StateActivated)

	command := result.Command
	if command == "" {
		// Just the activation phrase. Acknowledge and take one
		// synchronous follow-up capture, bypassing the queue.
		command = a.followUp(ctx)
		if command == "" {
			return
		}
	}

	if isExitPhrase(command) {
		a.logger.Info("exit phrase heard", "command", command)
		a.setState(StateShutdown)
		a.speak(ctx, GoodbyeMessage)
		a.session.Stop()
		return
	}

	a.respond(ctx, command)
}

// followUp acknowledges a bare activation phrase and listens once more
// for the actual command.
func (a *App) followUp(ctx context.Context) string {
	a.sender.SendMood(ctx, display.MoodNeutral)
	a.speak(ctx, ListeningPrompt)

	if a.source == nil {
		return ""
	}

	chunk, err := a.source.Record(ctx, listen.DefaultPhraseLimit)
	if err != nil {
		a.logger.Warn("follow-up capture failed", "error", err)
		return ""
	}

	text, err := a.transcriber.Transcribe(ctx, chunk)
	if err != nil {
		a.logger.Warn("follow-up transcription failed", "error", err)
		return ""
	}
	return text
}

// respond runs the chat pipeline, speaks the reply, and resets the
// device face to neutral.
func (a *App) respond(ctx context.Context, command string) {
	a.setState(StateResponding)
	a.noteConversation("user", command)

	var reply string
	if a.cfg.StreamReplies {
		reply = a.pipeline.AskStream(ctx, command)
	} else {
		reply = a.pipeline.Ask(ctx, command)
	}

	a.logger.Info("replying", "chars", len(reply))
	a.noteConversation("bot", reply)

	a.speak(ctx, reply)
	a.sender.SendMood(ctx, display.MoodNeutral)
}

// isExitPhrase reports whether the command is exactly an exit phrase.
func isExitPhrase(command string) bool {
	command = strings.TrimSpace(command)
	for _, p := range exitPhrases {
		if command == p {
			return true
		}
	}
	return false
}

// setState mirrors the loop state onto the dashboard.
func (a *App) setState(state State) {
	if a.dashboard == nil {
		return
	}
	a.dashboard.UpdateState(func(s *web.BotState) {
		s.Listening = state == StateListening
		s.Turns = a.session.Transcript.Len()
	})
}

// noteConversation mirrors a turn onto the dashboard feed.
func (a *App) noteConversation(role, message string) {
	if a.dashboard == nil {
		return
	}
	a.dashboard.AddConversation(role, message)
	a.dashboard.UpdateState(func(s *web.BotState) {
		if role == "user" {
			s.LastUserMessage = message
		} else {
			s.LastBotMessage = message
		}
	})
}
