package challenge

import (
	"strings"
	"time"

	"chordscope/chord"

	"github.com/google/uuid"
)

// Target is a chord the player is asked to play
type Target struct {
	Template *chord.Template
	Root     int // pitch class
	Label    string
}

func newTarget(t *chord.Template, root int) Target {
	return Target{Template: t, Root: root, Label: t.Label(root)}
}

// IsZero reports whether no target has been generated yet
func (t Target) IsZero() bool {
	return t.Template == nil
}

// Matches reports whether m plays this target in any inversion
func (t Target) Matches(m chord.Match) bool {
	if t.Template == nil || m.Template == nil {
		return false
	}
	return m.Template.Abbrev == t.Template.Abbrev && m.Root.PitchClass() == t.Root
}

// Article is the indefinite article to put before the label
func (t Target) Article() string {
	if t.Label == "" {
		return "a"
	}
	switch strings.ToLower(t.Label[:1]) {
	case "a", "e", "f":
		return "an"
	}
	return "a"
}

// Session is one run of the challenge, from Start to Stop
type Session struct {
	ID        uuid.UUID
	Target    Target
	Next      Target
	Score     int
	Started   time.Time // when the current target was shown
	Durations []time.Duration
}

// Average is the mean time per solved target, 0 before the first
func (s *Session) Average() time.Duration {
	if len(s.Durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s.Durations {
		total += d
	}
	return total / time.Duration(len(s.Durations))
}
