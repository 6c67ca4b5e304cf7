package challenge

import (
	"math/rand"
	"testing"
	"time"

	"chordscope/chord"
	"chordscope/keys"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand returns its values in order, wrapped into range
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)] % n
	r.i++
	return v
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func lookup(t *testing.T, abbrev string) *chord.Template {
	t.Helper()
	tmpl, ok := chord.Lookup(abbrev)
	require.True(t, ok, abbrev)
	return tmpl
}

func matchesFor(keys ...chord.Key) []chord.Match {
	return chord.Recognize(keys)
}

func TestStartPopulatesTargetAndNext(t *testing.T) {
	clock := newClock()
	// root, template, root, template
	c := New(nil, &seqRand{vals: []int{0, 0, 7, 1}}, clock.Now)

	assert.False(t, c.Running())
	c.Start(AllRoots(), []*chord.Template{lookup(t, "maj"), lookup(t, "min")})
	require.True(t, c.Running())

	s, ok := c.Session()
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, "Cmaj", s.Target.Label)
	assert.Equal(t, "Gmin", s.Next.Label)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, clock.Now(), s.Started)
}

func TestStartWithRandomSourceFillsBoth(t *testing.T) {
	c := New(nil, rand.New(rand.NewSource(42)), nil)
	c.Start(AllRoots(), chord.DefaultChallengeTemplates())

	s, _ := c.Session()
	assert.False(t, s.Target.IsZero())
	assert.False(t, s.Next.IsZero())
}

func TestGenerateTargetAdvances(t *testing.T) {
	c := New(nil, &seqRand{vals: []int{0, 1, 2, 3, 4, 5}}, nil)
	c.Start(AllRoots(), chord.Triads)

	before, _ := c.Session()
	c.GenerateTarget()
	after, _ := c.Session()
	assert.Equal(t, before.Next, after.Target)
}

func TestCorrectSubmission(t *testing.T) {
	clock := newClock()
	reg := keys.NewRegistry()
	c := New(reg, &seqRand{vals: []int{0}}, clock.Now)
	c.Start([]int{0}, []*chord.Template{lookup(t, "maj")})

	reg.Press(60, keys.Confirmed)
	reg.Press(64, keys.Confirmed)
	reg.Press(67, keys.Channel(0))

	clock.Advance(3 * time.Second)
	require.True(t, c.CheckSubmission(matchesFor(60, 64, 67), false))

	s, _ := c.Session()
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, []time.Duration{3 * time.Second}, s.Durations)
	assert.Equal(t, clock.Now(), s.Started)
	assert.Equal(t, []chord.Key{67}, reg.Snapshot(), "confirmed presses released, hardware kept")
}

func TestInversionCounts(t *testing.T) {
	c := New(nil, &seqRand{vals: []int{0}}, nil)
	c.Start([]int{0}, []*chord.Template{lookup(t, "maj")})

	assert.True(t, c.CheckSubmission(matchesFor(64, 67, 72), false))
}

func TestWrongChordDoesNotScore(t *testing.T) {
	c := New(nil, &seqRand{vals: []int{0}}, nil)
	c.Start([]int{0}, []*chord.Template{lookup(t, "maj")})

	assert.False(t, c.CheckSubmission(matchesFor(60, 63, 67), false), "C minor")
	assert.False(t, c.CheckSubmission(matchesFor(62, 66, 69), false), "D major")
	assert.False(t, c.CheckSubmission(nil, false))

	s, _ := c.Session()
	assert.Equal(t, 0, s.Score)
	assert.Empty(t, s.Durations)
}

func TestSubmissionDuringGestureIsIgnored(t *testing.T) {
	reg := keys.NewRegistry()
	reg.Press(60, keys.Confirmed)
	c := New(reg, &seqRand{vals: []int{0}}, nil)
	c.Start([]int{0}, []*chord.Template{lookup(t, "maj")})

	assert.False(t, c.CheckSubmission(matchesFor(60, 64, 67), true))
	s, _ := c.Session()
	assert.Equal(t, 0, s.Score)
	assert.True(t, reg.IsHeldBy(60, keys.Confirmed))
}

func TestSubmissionWhileIdleIsIgnored(t *testing.T) {
	c := New(nil, nil, nil)
	assert.False(t, c.CheckSubmission(matchesFor(60, 64, 67), false))
	_, ok := c.Session()
	assert.False(t, ok)
}

func TestEmptySetsFallBack(t *testing.T) {
	c := New(nil, &seqRand{vals: []int{3}}, nil)
	c.Start(nil, nil)

	s, _ := c.Session()
	assert.Equal(t, 0, s.Target.Root)
	assert.Same(t, chord.DefaultTriad(), s.Target.Template)
	assert.Equal(t, "Cmaj", s.Next.Label)
}

func TestSetEnabledNormalisesRoots(t *testing.T) {
	c := New(nil, &seqRand{vals: []int{0, 0}}, nil)
	c.Start([]int{-1, 11, 23}, []*chord.Template{lookup(t, "min")})

	s, _ := c.Session()
	assert.Equal(t, 11, s.Target.Root)
	assert.Equal(t, "Bmin", s.Target.Label)
}

func TestAverageDuration(t *testing.T) {
	clock := newClock()
	c := New(nil, &seqRand{vals: []int{0}}, clock.Now)
	assert.Zero(t, c.AverageDuration())

	c.Start([]int{0}, []*chord.Template{lookup(t, "maj")})
	assert.Zero(t, c.AverageDuration())

	clock.Advance(2 * time.Second)
	require.True(t, c.CheckSubmission(matchesFor(60, 64, 67), false))
	clock.Advance(4 * time.Second)
	require.True(t, c.CheckSubmission(matchesFor(60, 64, 67), false))

	assert.Equal(t, 3*time.Second, c.AverageDuration())
}

func TestSkipRestartsTimer(t *testing.T) {
	clock := newClock()
	c := New(nil, &seqRand{vals: []int{0, 0, 2, 0, 4, 0}}, clock.Now)
	c.Start(AllRoots(), []*chord.Template{lookup(t, "maj")})

	clock.Advance(10 * time.Second)
	c.Skip()

	s, _ := c.Session()
	assert.Equal(t, "Dmaj", s.Target.Label)
	assert.Equal(t, "Emaj", s.Next.Label)
	assert.Equal(t, clock.Now(), s.Started)
	assert.Equal(t, 0, s.Score)
}

func TestStopDiscardsSession(t *testing.T) {
	c := New(nil, &seqRand{vals: []int{0}}, nil)
	c.Start([]int{0}, []*chord.Template{lookup(t, "maj")})
	require.True(t, c.CheckSubmission(matchesFor(60, 64, 67), false))

	c.Stop()
	assert.False(t, c.Running())
	assert.Zero(t, c.AverageDuration())

	c.Start([]int{0}, []*chord.Template{lookup(t, "maj")})
	s, _ := c.Session()
	assert.Equal(t, 0, s.Score, "a new session starts from scratch")
}

func TestArticle(t *testing.T) {
	cases := map[string]string{
		"Amaj":   "an",
		"Emin":   "an",
		"F#dim":  "an",
		"Cmaj":   "a",
		"G7sus4": "a",
		"":       "a",
	}
	for label, want := range cases {
		assert.Equal(t, want, Target{Label: label}.Article(), label)
	}
}
