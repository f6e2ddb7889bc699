package directive

import "testing"

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		in   string
		tag  string
		ok   bool
	}{
		{"simple", "I'm great! [DISPLAY:happy]", "happy", true},
		{"uppercase tag lowered", "Hm. [DISPLAY:Angry]", "angry", true},
		{"text literal", "Sure! [DISPLAY:text:Time: 3:45 PM]", "text:time: 3:45 pm", true},
		{"mid sentence", "a [DISPLAY:sad] b", "sad", true},
		{"no marker", "just words", "", false},
		{"unclosed", "oops [DISPLAY:happy", "", false},
		{"empty tag", "[DISPLAY:]", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tag, ok := Extract(tc.in)
			if ok != tc.ok || tag != tc.tag {
				t.Errorf("Extract(%q) = (%q, %v), want (%q, %v)", tc.in, tag, ok, tc.tag, tc.ok)
			}
		})
	}
}

func TestStrip(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trailing marker", "Hi! [DISPLAY:happy]", "Hi! "},
		{"mid sentence", "a [DISPLAY:sad] b", "a  b"},
		{"no marker unchanged", "just words", "just words"},
		{"unclosed unchanged", "oops [DISPLAY:happy", "oops [DISPLAY:happy"},
		{"only first removed", "[DISPLAY:happy][DISPLAY:sad]", "[DISPLAY:sad]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Strip(tc.in); got != tc.want {
				t.Errorf("Strip(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestScannerFiresOnceAcrossFragments(t *testing.T) {
	s := NewScanner()

	fragments := []string{"Hi! ", "[DIS", "PLAY:ha", "ppy", "]", " bye"}

	var tags []string
	for _, f := range fragments {
		if tag, found := s.Feed(f); found {
			tags = append(tags, tag)
		}
	}

	if len(tags) != 1 || tags[0] != "happy" {
		t.Fatalf("expected one happy dispatch, got %v", tags)
	}
	if !s.Done() {
		t.Error("scanner should be done")
	}
	if s.Text() != "Hi! [DISPLAY:happy] bye" {
		t.Errorf("accumulated text %q", s.Text())
	}
}

func TestScannerFiresAsEarlyAsMarkerCompletes(t *testing.T) {
	s := NewScanner()

	if _, found := s.Feed("Hello [DISPLAY:grin"); found {
		t.Fatal("marker incomplete, must not fire")
	}
	tag, found := s.Feed("ning] and more text later")
	if !found || tag != "grinning" {
		t.Fatalf("expected grinning on marker completion, got (%q, %v)", tag, found)
	}
}

func TestScannerSecondMarkerSuppressed(t *testing.T) {
	s := NewScanner()
	if tag, found := s.Feed("[DISPLAY:happy]"); !found || tag != "happy" {
		t.Fatalf("first marker: (%q, %v)", tag, found)
	}
	if _, found := s.Feed("[DISPLAY:sad]"); found {
		t.Error("second marker must be suppressed")
	}
}

func TestScannerReset(t *testing.T) {
	s := NewScanner()
	s.Feed("[DISPLAY:happy]")
	s.Reset()

	if s.Done() || s.Text() != "" {
		t.Fatal("reset did not clear state")
	}
	if tag, found := s.Feed("[DISPLAY:sad]"); !found || tag != "sad" {
		t.Errorf("after reset: (%q, %v)", tag, found)
	}
}
