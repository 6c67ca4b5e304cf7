// Package challenge runs the "play this chord" game: it picks random
// targets from the enabled roots and templates, scores submissions and
// times each solved target.
package challenge

import (
	"math/rand"
	"slices"
	"time"

	"chordscope/chord"
	"chordscope/debug"
	"chordscope/keys"

	"github.com/google/uuid"
)

// Releaser drops every press held by a source. *keys.Registry is one.
type Releaser interface {
	ReleaseAllForSource(src keys.Source)
}

// Rand is the part of *rand.Rand the controller needs
type Rand interface {
	Intn(n int) int
}

// Controller owns the challenge session. It is idle until Start.
// Not safe for concurrent use.
type Controller struct {
	releaser Releaser
	rng      Rand
	now      func() time.Time

	roots     []int
	templates []*chord.Template

	session *Session
}

// New creates an idle controller. A nil rng is seeded from the clock; a nil
// clock means time.Now.
func New(releaser Releaser, rng Rand, clock func() time.Time) *Controller {
	if clock == nil {
		clock = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(clock().UnixNano()))
	}
	return &Controller{
		releaser:  releaser,
		rng:       rng,
		now:       clock,
		roots:     AllRoots(),
		templates: chord.DefaultChallengeTemplates(),
	}
}

// AllRoots is every pitch class, the default root set
func AllRoots() []int {
	roots := make([]int, chord.TonesPerOctave)
	for i := range roots {
		roots[i] = i
	}
	return roots
}

// SetEnabled replaces the sets targets are drawn from. Either may be empty;
// generation then falls back to C and the default triad. The current
// targets are kept.
func (c *Controller) SetEnabled(roots []int, templates []*chord.Template) {
	pcs := make([]int, 0, len(roots))
	for _, r := range roots {
		pc := ((r % chord.TonesPerOctave) + chord.TonesPerOctave) % chord.TonesPerOctave
		if !slices.Contains(pcs, pc) {
			pcs = append(pcs, pc)
		}
	}
	c.roots = pcs
	c.templates = slices.Clone(templates)
	c.templates = slices.DeleteFunc(c.templates, func(t *chord.Template) bool { return t == nil })
}

// Start begins a new session with the given sets. Two targets are drawn so
// the next one can be previewed.
func (c *Controller) Start(roots []int, templates []*chord.Template) {
	c.SetEnabled(roots, templates)
	c.session = &Session{
		ID:      uuid.New(),
		Started: c.now(),
	}
	c.GenerateTarget()
	c.GenerateTarget()
	debug.Log("challenge", "session %s started, target=%s next=%s",
		c.session.ID, c.session.Target.Label, c.session.Next.Label)
}

// Stop discards the session
func (c *Controller) Stop() {
	if c.session != nil {
		debug.Log("challenge", "session %s stopped, score=%d", c.session.ID, c.session.Score)
	}
	c.session = nil
}

func (c *Controller) Running() bool {
	return c.session != nil
}

// Session returns a copy of the running session; ok is false when idle
func (c *Controller) Session() (s Session, ok bool) {
	if c.session == nil {
		return Session{}, false
	}
	s = *c.session
	s.Durations = slices.Clone(c.session.Durations)
	return s, true
}

// GenerateTarget moves Next into Target and draws a fresh Next.
// Does nothing while idle.
func (c *Controller) GenerateTarget() {
	if c.session == nil {
		return
	}
	c.session.Target = c.session.Next
	c.session.Next = c.draw()
}

// Skip abandons the current target without scoring and restarts its timer
func (c *Controller) Skip() {
	if c.session == nil {
		return
	}
	debug.Log("challenge", "skipped %s", c.session.Target.Label)
	c.GenerateTarget()
	c.session.Started = c.now()
}

func (c *Controller) draw() Target {
	root := 0
	if len(c.roots) > 0 {
		root = c.roots[c.rng.Intn(len(c.roots))]
	}
	tmpl := chord.DefaultTriad()
	if len(c.templates) > 0 {
		tmpl = c.templates[c.rng.Intn(len(c.templates))]
	}
	return newTarget(tmpl, root)
}

// CheckSubmission scores matches against the current target. It does nothing
// while idle or while a pointer gesture is still being drawn. On success the
// confirmed pointer presses are released and the next target comes up.
func (c *Controller) CheckSubmission(matches []chord.Match, gestureInProgress bool) bool {
	if c.session == nil || gestureInProgress {
		return false
	}

	target := c.session.Target
	if !slices.ContainsFunc(matches, target.Matches) {
		return false
	}

	now := c.now()
	elapsed := now.Sub(c.session.Started)
	c.session.Score++
	c.session.Durations = append(c.session.Durations, elapsed)
	c.session.Started = now
	debug.Log("challenge", "solved %s in %s, score=%d", target.Label, elapsed, c.session.Score)

	if c.releaser != nil {
		c.releaser.ReleaseAllForSource(keys.Confirmed)
	}
	c.GenerateTarget()
	return true
}

// AverageDuration is the mean solve time of the session, 0 when there is none
func (c *Controller) AverageDuration() time.Duration {
	if c.session == nil {
		return 0
	}
	return c.session.Average()
}
