package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/emodesk/deskbot/pkg/audio"
	"github.com/emodesk/deskbot/pkg/chat"
	"github.com/emodesk/deskbot/pkg/display"
	"github.com/emodesk/deskbot/pkg/gate"
	"github.com/emodesk/deskbot/pkg/listen"
	"github.com/emodesk/deskbot/pkg/stt"
	"github.com/emodesk/deskbot/pkg/tts"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testApp builds an App wired entirely to mocks. alwaysListen mirrors
// the -always-listen flag.
func testApp(alwaysListen bool) (*App, *chat.Mock, *display.Mock, *stt.Mock, *tts.Mock, *audio.MockSource) {
	chatMock := chat.NewMock()
	sender := display.NewMock()
	sttMock := stt.NewMock()
	ttsMock := tts.NewMock()
	source := audio.NewMockSource()

	session := listen.NewSession(Persona)
	a := &App{
		cfg:         DefaultConfig(),
		logger:      discardLogger(),
		session:     session,
		gate:        gate.New(alwaysListen),
		sender:      sender,
		transcriber: sttMock,
		speech:      ttsMock,
		source:      source,
		pipeline:    chat.NewPipeline(chatMock, session.Transcript, sender, discardLogger()),
	}
	return a, chatMock, sender, sttMock, ttsMock, source
}

func TestUtteranceWithoutPhraseIsIgnored(t *testing.T) {
	a, chatMock, _, _, ttsMock, _ := testApp(false)

	a.handleUtterance(context.Background(), "what is the weather like")

	if calls := chatMock.StreamCalls(); len(calls) != 0 {
		t.Errorf("chat called %d times for an unactivated utterance", len(calls))
	}
	if calls := ttsMock.SynthesizeCalls(); len(calls) != 0 {
		t.Errorf("speech produced for an unactivated utterance: %v", calls)
	}
	if !a.session.Live() {
		t.Error("session should stay live")
	}
}

func TestActivationPhraseStrippedFromCommand(t *testing.T) {
	a, chatMock, _, _, _, _ := testApp(false)
	chatMock.QueueStream("It's 3 PM! ", "[DISPLAY:time]")

	a.handleUtterance(context.Background(), "hey bot what time is it")

	calls := chatMock.StreamCalls()
	if len(calls) != 1 {
		t.Fatalf("chat calls %d", len(calls))
	}
	msgs := calls[0].Messages
	last := msgs[len(msgs)-1]
	if last.Role != chat.RoleUser || last.Content != "what time is it" {
		t.Errorf("user turn %+v, want phrase stripped", last)
	}
}

func TestAlwaysListenPassesTextVerbatim(t *testing.T) {
	a, chatMock, _, _, _, _ := testApp(true)
	chatMock.QueueStream("Hello!")

	a.handleUtterance(context.Background(), "tell me a joke")

	calls := chatMock.StreamCalls()
	if len(calls) != 1 {
		t.Fatalf("chat calls %d", len(calls))
	}
	msgs := calls[0].Messages
	if msgs[len(msgs)-1].Content != "tell me a joke" {
		t.Errorf("command %q, want verbatim input", msgs[len(msgs)-1].Content)
	}
}

func TestExitPhraseStopsSession(t *testing.T) {
	a, chatMock, _, _, ttsMock, _ := testApp(false)

	a.handleUtterance(context.Background(), "hey bot quit")

	if a.session.Live() {
		t.Error("session should be stopped after an exit phrase")
	}
	if calls := chatMock.StreamCalls(); len(calls) != 0 {
		t.Error("exit phrase should not reach the chat pipeline")
	}
	calls := ttsMock.SynthesizeCalls()
	if len(calls) != 1 || calls[0] != GoodbyeMessage {
		t.Errorf("spoken %v, want goodbye", calls)
	}
}

func TestBareActivationTriggersFollowUpListen(t *testing.T) {
	a, chatMock, _, sttMock, ttsMock, source := testApp(false)
	source.QueuePCM([]byte{0, 0, 0, 0})
	sttMock.QueueText("sing me a song")
	chatMock.QueueStream("La la la!")

	a.handleUtterance(context.Background(), "hey bot")

	if got := ttsMock.SynthesizeCalls(); len(got) == 0 || got[0] != ListeningPrompt {
		t.Errorf("spoken %v, want acknowledgement first", got)
	}
	if source.Records() != 1 {
		t.Errorf("follow-up captures %d, want 1 synchronous listen", source.Records())
	}

	calls := chatMock.StreamCalls()
	if len(calls) != 1 {
		t.Fatalf("chat calls %d", len(calls))
	}
	msgs := calls[0].Messages
	if msgs[len(msgs)-1].Content != "sing me a song" {
		t.Errorf("command %q, want the follow-up text", msgs[len(msgs)-1].Content)
	}
}

func TestRespondResetsDisplayToNeutral(t *testing.T) {
	a, chatMock, sender, _, _, _ := testApp(true)
	chatMock.QueueStream("Feeling great! ", "[DISPLAY:happy]")

	a.handleUtterance(context.Background(), "are you happy")

	sends := sender.Sends()
	if len(sends) != 2 {
		t.Fatalf("sends %v, want directive then neutral reset", sends)
	}
	if sends[0] != "happy" || sends[1] != "neutral" {
		t.Errorf("sends %v", sends)
	}
}

func TestIterationRecoversFromPanic(t *testing.T) {
	a, _, _, _, _, _ := testApp(false)

	a.iterate(context.Background(), func() {
		panic("boom")
	})
	if !a.session.Live() {
		t.Error("panic should not stop the session")
	}
}

func TestIsExitPhrase(t *testing.T) {
	for _, p := range exitPhrases {
		if !isExitPhrase(p) {
			t.Errorf("%q should be an exit phrase", p)
		}
	}
	if isExitPhrase("quit smoking") {
		t.Error("exit phrases must match the whole command")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OpenAIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.OpenAIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("missing API key accepted")
	}

	cfg.OpenAIKey = "sk-test"
	cfg.Voice = "growl"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown voice accepted")
	}
}

func TestDeviceAddr(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.DeviceAddr(); got != "192.168.29.240:80" {
		t.Errorf("device addr %q", got)
	}
}
