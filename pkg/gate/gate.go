// Package gate decides whether a transcribed utterance should be treated
// as a command for the bot.
package gate

import "strings"

// DefaultPhrases is the fixed activation-phrase set. Order matters only
// for which phrase a match reports; the first match wins.
var DefaultPhrases = []string{
	"hey bot",
	"hey desk bot",
	"emo",
	"emodesk",
	"hi bot",
	"hello bot",
}

// Result is the outcome of gating one utterance.
type Result struct {
	// Command is the effective command text after phrase stripping.
	Command string

	// Phrase is the activation phrase that matched, if any.
	Phrase string

	// Activated reports whether the utterance should be processed.
	Activated bool
}

// Gate checks utterances against an activation-phrase set.
type Gate struct {
	// Phrases is the activation set; nil means DefaultPhrases.
	Phrases []string

	// AlwaysListen bypasses phrase matching entirely: every utterance is
	// treated as a command, returned unchanged.
	AlwaysListen bool
}

// New creates a gate with the default phrase set.
func New(alwaysListen bool) *Gate {
	return &Gate{AlwaysListen: alwaysListen}
}

// Check gates a lower-cased transcribed utterance. On a phrase match the
// single matched occurrence is removed and the trimmed remainder becomes
// the command. An empty Command with Activated=true means the user said
// only the activation phrase and a follow-up listen is needed.
func (g *Gate) Check(text string) Result {
	if g.AlwaysListen {
		return Result{Command: text, Activated: true}
	}

	phrases := g.Phrases
	if phrases == nil {
		phrases = DefaultPhrases
	}

	for _, phrase := range phrases {
		idx := strings.Index(text, phrase)
		if idx < 0 {
			continue
		}
		remainder := text[:idx] + text[idx+len(phrase):]
		return Result{
			Command:   strings.TrimSpace(remainder),
			Phrase:    phrase,
			Activated: true,
		}
	}

	return Result{}
}
