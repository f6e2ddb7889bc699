package gate

import "testing"

func TestCheckStripsExactlyOneOccurrence(t *testing.T) {
	g := New(false)

	cases := []struct {
		name    string
		in      string
		command string
		phrase  string
	}{
		{"phrase at start", "hey bot what time is it", "what time is it", "hey bot"},
		{"phrase mid utterance", "so emo tell me a joke", "so  tell me a joke", "emo"},
		{"phrase only", "hey bot", "", "hey bot"},
		{"first listed phrase wins", "hey bot hello bot", "hello bot", "hey bot"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := g.Check(tc.in)
			if !res.Activated {
				t.Fatal("expected activation")
			}
			if res.Command != tc.command {
				t.Errorf("command %q, want %q", res.Command, tc.command)
			}
			if res.Phrase != tc.phrase {
				t.Errorf("phrase %q, want %q", res.Phrase, tc.phrase)
			}
		})
	}
}

func TestCheckNoMatch(t *testing.T) {
	g := New(false)
	res := g.Check("what a lovely day")
	if res.Activated || res.Command != "" {
		t.Errorf("expected ignored utterance, got %+v", res)
	}
}

func TestCheckAlwaysListenReturnsInputUnchanged(t *testing.T) {
	g := New(true)

	for _, in := range []string{"what a lovely day", "hey bot what time is it", ""} {
		res := g.Check(in)
		if !res.Activated {
			t.Errorf("always-listen must activate for %q", in)
		}
		if res.Command != in {
			t.Errorf("command %q, want input %q unchanged", res.Command, in)
		}
	}
}

func TestCheckCustomPhrases(t *testing.T) {
	g := &Gate{Phrases: []string{"computer"}}
	res := g.Check("computer lights on")
	if !res.Activated || res.Command != "lights on" {
		t.Errorf("got %+v", res)
	}
	if res = g.Check("hey bot lights on"); res.Activated {
		t.Error("default phrases must not apply when a custom set is given")
	}
}
