package vision

// State is the smoothed emotional read of the webcam feed.
type State string

// The two states the watcher reports.
const (
	StateHappy   State = "happy"
	StateNeutral State = "neutral"
)

// StateTracker smooths per-frame smile confidence into a stable state.
// It keeps a moving average over the last few frames and requires a run
// of consecutive frames past the threshold before flipping state, so a
// single noisy frame never reaches the device.
type StateTracker struct {
	threshold        float64
	happyThreshold   int
	neutralThreshold int
	historySize      int

	history            []float64
	consecutiveHappy   int
	consecutiveNeutral int
	state              State
}

// NewStateTracker creates a tracker starting in the neutral state.
func NewStateTracker(cfg Config) *StateTracker {
	return &StateTracker{
		threshold:        cfg.SmileConfidence,
		happyThreshold:   cfg.HappyThreshold,
		neutralThreshold: cfg.NeutralThreshold,
		historySize:      cfg.HistorySize,
		state:            StateNeutral,
	}
}

// Observe folds one frame's smile confidence into the tracker and
// reports whether the state changed.
func (t *StateTracker) Observe(confidence float64) (State, bool) {
	t.history = append(t.history, confidence)
	if len(t.history) > t.historySize {
		t.history = t.history[1:]
	}

	var sum float64
	for _, c := range t.history {
		sum += c
	}
	avg := sum / float64(len(t.history))

	if avg >= t.threshold {
		t.consecutiveHappy++
		t.consecutiveNeutral = 0
	} else {
		t.consecutiveNeutral++
		t.consecutiveHappy = 0
	}

	switch {
	case t.consecutiveHappy >= t.happyThreshold && t.state != StateHappy:
		t.state = StateHappy
		return t.state, true
	case t.consecutiveNeutral >= t.neutralThreshold && t.state != StateNeutral:
		t.state = StateNeutral
		return t.state, true
	}
	return t.state, false
}

// State returns the current smoothed state.
func (t *StateTracker) State() State {
	return t.state
}

// Average returns the current moving-average confidence.
func (t *StateTracker) Average() float64 {
	if len(t.history) == 0 {
		return 0
	}
	var sum float64
	for _, c := range t.history {
		sum += c
	}
	return sum / float64(len(t.history))
}
