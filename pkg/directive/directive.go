// Package directive recognizes bracketed display markers in assistant
// text, both in complete replies and incrementally as streamed fragments
// arrive.
//
// The marker syntax is [DISPLAY:<tag>]. At most one directive is acted
// upon per reply.
package directive

import "strings"

// Marker delimiters.
const (
	openMarker  = "[DISPLAY:"
	closeMarker = "]"
)

// Extract returns the first directive tag in text, lower-cased.
func Extract(text string) (tag string, ok bool) {
	start := strings.Index(text, openMarker)
	if start < 0 {
		return "", false
	}
	end := strings.Index(text[start:], closeMarker)
	if end < 0 {
		return "", false
	}
	end += start
	if end <= start+len(openMarker) {
		return "", false
	}
	return strings.ToLower(text[start+len(openMarker) : end]), true
}

// Strip removes the first directive marker from text, returning the
// remainder otherwise unchanged. Text without a complete marker is
// returned as-is.
func Strip(text string) string {
	start := strings.Index(text, openMarker)
	if start < 0 {
		return text
	}
	end := strings.Index(text[start:], closeMarker)
	if end < 0 {
		return text
	}
	end += start
	return text[:start] + text[end+len(closeMarker):]
}

// Scanner accepts streamed text fragments and reports a completed
// directive exactly once, as soon as the closing marker arrives. It keeps
// the full accumulated text for the caller.
type Scanner struct {
	buf  strings.Builder
	done bool
}

// NewScanner creates a scanner for one reply.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Feed appends a fragment. The first call whose accumulated buffer holds
// a complete marker returns its tag with found=true; every later call
// returns found=false regardless of content.
func (s *Scanner) Feed(fragment string) (tag string, found bool) {
	s.buf.WriteString(fragment)
	if s.done {
		return "", false
	}
	tag, ok := Extract(s.buf.String())
	if !ok {
		return "", false
	}
	s.done = true
	return tag, true
}

// Done reports whether a directive has already been emitted.
func (s *Scanner) Done() bool {
	return s.done
}

// Text returns the full accumulated reply text, markers included.
func (s *Scanner) Text() string {
	return s.buf.String()
}

// Reset clears the scanner for a new reply.
func (s *Scanner) Reset() {
	s.buf.Reset()
	s.done = false
}
