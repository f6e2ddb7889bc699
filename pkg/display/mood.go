package display

import (
	"fmt"
	"strings"
	"time"
)

// Mood is a face the device can show.
type Mood string

// The closed set of device moods.
const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodNeutral  Mood = "neutral"
	MoodAngry    Mood = "angry"
	MoodGrinning Mood = "grinning"
	MoodScared   Mood = "scared"
)

// Moods returns all valid moods in display order.
func Moods() []Mood {
	return []Mood{MoodHappy, MoodSad, MoodNeutral, MoodAngry, MoodGrinning, MoodScared}
}

// ParseMood returns the mood matching s, case-insensitively.
func ParseMood(s string) (Mood, bool) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case MoodHappy, MoodSad, MoodNeutral, MoodAngry, MoodGrinning, MoodScared:
		return m, true
	}
	return "", false
}

// TextPrefix marks a literal-text device instruction.
const TextPrefix = "text:"

// Clock abstracts time for the "time" directive so tests can pin it.
type Clock func() time.Time

// Instruction maps a directive tag to the device instruction string.
// This is the single mapping consulted by both the synchronous and the
// streaming chat paths. Returns ok=false for tags the device cannot show.
func Instruction(tag string, now Clock) (string, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))

	if m, ok := ParseMood(tag); ok {
		return string(m), true
	}

	switch {
	case tag == "time":
		if now == nil {
			now = time.Now
		}
		return fmt.Sprintf("%sTime: %s", TextPrefix, now().Format("3:04 PM")), true
	case tag == "weather":
		cond, temp := localWeather()
		return fmt.Sprintf("%s%s, %d°F", TextPrefix, cond, temp), true
	case strings.HasPrefix(tag, TextPrefix):
		return tag, true
	}

	return "", false
}

// localWeather is a stand-in until a weather provider is wired up.
func localWeather() (condition string, tempF int) {
	return "Sunny", 72
}
