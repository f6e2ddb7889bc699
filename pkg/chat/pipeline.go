package chat

import (
	"context"
	"log/slog"

	"github.com/emodesk/deskbot/pkg/directive"
	"github.com/emodesk/deskbot/pkg/display"
	"github.com/emodesk/deskbot/pkg/transcript"
)

// Apology is spoken when a completion fails. The failed exchange keeps
// the user turn in the transcript but no assistant turn is recorded.
const Apology = "Sorry, I encountered an error while processing your request."

// Pipeline turns user text into a spoken reply: it appends the turn to
// the transcript, requests a completion, dispatches at most one display
// directive per reply, and returns the reply with the marker removed.
type Pipeline struct {
	provider Provider
	log      *transcript.Transcript
	sender   display.Sender
	logger   *slog.Logger
}

// NewPipeline creates a pipeline. sender may be nil when no device is
// connected; directives are then resolved and dropped.
func NewPipeline(provider Provider, log *transcript.Transcript, sender display.Sender, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		provider: provider,
		log:      log,
		sender:   sender,
		logger:   logger.With("component", "chat.pipeline"),
	}
}

// Transcript exposes the conversation log.
func (p *Pipeline) Transcript() *transcript.Transcript {
	return p.log
}

// Ask runs a single-shot completion for userText and returns the reply
// with any directive marker removed. On failure it returns the fixed
// apology; the user turn stays in the transcript, the assistant turn is
// not appended.
func (p *Pipeline) Ask(ctx context.Context, userText string) string {
	p.log.AddUser(userText)

	resp, err := p.provider.Chat(ctx, &Request{Messages: p.messages()})
	if err != nil {
		p.logger.Error("completion failed", "error", err)
		return Apology
	}

	p.log.AddAssistant(resp.Content)

	if tag, ok := directive.Extract(resp.Content); ok {
		p.dispatch(ctx, tag)
	}
	return directive.Strip(resp.Content)
}

// AskStream runs a streamed completion for userText. The display
// directive is dispatched the moment its closing bracket arrives, before
// the stream ends, and at most once per reply. The full raw reply is
// appended to the transcript; the returned text has the marker removed.
// On failure it returns the fixed apology without an assistant turn.
func (p *Pipeline) AskStream(ctx context.Context, userText string) string {
	p.log.AddUser(userText)

	stream, err := p.provider.Stream(ctx, &Request{Messages: p.messages()})
	if err != nil {
		p.logger.Error("stream open failed", "error", err)
		return Apology
	}
	defer stream.Close()

	scanner := directive.NewScanner()
	for {
		chunk, err := stream.Recv()
		if err != nil {
			p.logger.Error("stream read failed", "error", err)
			return Apology
		}
		if chunk.Delta != "" {
			if tag, found := scanner.Feed(chunk.Delta); found {
				p.dispatch(ctx, tag)
			}
		}
		if chunk.Done {
			break
		}
	}

	raw := scanner.Text()
	p.log.AddAssistant(raw)
	return directive.Strip(raw)
}

// messages snapshots the transcript in wire format.
func (p *Pipeline) messages() []Message {
	turns := p.log.Messages()
	out := make([]Message, len(turns))
	for i, t := range turns {
		out[i] = Message{Role: Role(t.Role), Content: t.Content}
	}
	return out
}

// dispatch resolves a directive tag through the unified mapping and
// pushes it to the device. Unknown tags are logged and dropped.
func (p *Pipeline) dispatch(ctx context.Context, tag string) {
	instruction, ok := display.Instruction(tag, nil)
	if !ok {
		p.logger.Warn("unknown display tag", "tag", tag)
		return
	}
	if p.sender == nil {
		p.logger.Debug("no display attached, dropping directive", "tag", tag)
		return
	}
	p.sender.Send(ctx, instruction)
}
