package effects

import (
	"errors"
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewCyclerRequiresPhrases(t *testing.T) {
	_, err := NewCycler(NewManualClock(epoch), nil, CyclerOptions{}, nil)
	if !errors.Is(err, ErrNoPhrases) {
		t.Fatalf("Expected ErrNoPhrases, got %v", err)
	}
}

func TestCyclerDefaults(t *testing.T) {
	opts := CyclerOptions{Speed: 100 * time.Millisecond}.withDefaults()
	if opts.DeleteSpeed != 50*time.Millisecond {
		t.Errorf("Expected delete speed 50ms, got %v", opts.DeleteSpeed)
	}
	if opts.Delay != DefaultHoldDelay {
		t.Errorf("Expected default delay %v, got %v", DefaultHoldDelay, opts.Delay)
	}

	opts = CyclerOptions{}.withDefaults()
	if opts.Speed != DefaultTypeSpeed {
		t.Errorf("Expected default speed %v, got %v", DefaultTypeSpeed, opts.Speed)
	}
}

func TestCyclerTimeline(t *testing.T) {
	clock := NewManualClock(epoch)
	var frames []string
	c, err := NewCycler(clock, []string{"Hi", "Yo"}, CyclerOptions{
		Speed: 100 * time.Millisecond,
		Delay: 200 * time.Millisecond,
	}, func(s string) { frames = append(frames, s) })
	if err != nil {
		t.Fatalf("NewCycler: %v", err)
	}
	c.Start()
	defer c.Stop()

	steps := []struct {
		advance time.Duration
		text    string
		mode    Mode
		index   int
	}{
		{0, "", Typing, 0},                           // t=0
		{100 * time.Millisecond, "H", Typing, 0},     // t=100
		{100 * time.Millisecond, "Hi", Holding, 0},   // t=200
		{199 * time.Millisecond, "Hi", Holding, 0},   // t=399
		{1 * time.Millisecond, "Hi", Deleting, 0},    // t=400
		{50 * time.Millisecond, "H", Deleting, 0},    // t=450
		{50 * time.Millisecond, "", Typing, 1},       // t=500
		{100 * time.Millisecond, "Y", Typing, 1},     // t=600
		{100 * time.Millisecond, "Yo", Holding, 1},   // t=700
	}

	for i, step := range steps {
		clock.Advance(step.advance)
		st := c.State()
		if got := c.Text(); got != step.text {
			t.Errorf("step %d: Expected text %q, got %q", i, step.text, got)
		}
		if st.Mode != step.mode {
			t.Errorf("step %d: Expected mode %v, got %v", i, step.mode, st.Mode)
		}
		if st.PhraseIndex != step.index {
			t.Errorf("step %d: Expected phrase index %d, got %d", i, step.index, st.PhraseIndex)
		}
	}

	want := []string{"", "H", "Hi", "Hi", "H", "", "Y", "Yo"}
	if len(frames) != len(want) {
		t.Fatalf("Expected %d frames, got %d: %q", len(want), len(frames), frames)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frame %d: Expected %q, got %q", i, want[i], frames[i])
		}
	}
}

func TestCyclerInvariantAndCoverage(t *testing.T) {
	clock := NewManualClock(epoch)
	phrases := []string{"AI & Full-Stack", "", "Unity", "ネオン"}
	c, err := NewCycler(clock, phrases, CyclerOptions{
		Speed: 20 * time.Millisecond,
		Delay: 60 * time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatalf("NewCycler: %v", err)
	}
	c.Start()
	defer c.Stop()

	visits := make(map[int]int)
	last := -1
	for i := 0; i < 2000; i++ {
		clock.Advance(10 * time.Millisecond)
		st := c.State()
		n := len([]rune(st.Phrases[st.PhraseIndex]))
		if st.CharCount < 0 || st.CharCount > n {
			t.Fatalf("tick %d: char count %d outside [0,%d]", i, st.CharCount, n)
		}
		if st.PhraseIndex != last {
			visits[st.PhraseIndex]++
			last = st.PhraseIndex
		}
	}

	for i := range phrases {
		if visits[i] < 2 {
			t.Errorf("Expected phrase %d visited repeatedly, got %d visits", i, visits[i])
		}
	}
}

func TestCyclerDeletesToEmptyBeforeAdvancing(t *testing.T) {
	clock := NewManualClock(epoch)
	var frames []string
	var indexAtEmpty []int
	c, _ := NewCycler(clock, []string{"abc", "de"}, CyclerOptions{
		Speed: 10 * time.Millisecond,
		Delay: 10 * time.Millisecond,
	}, func(s string) {
		frames = append(frames, s)
	})
	c.Start()
	defer c.Stop()

	// t=70: "abc" typed, held, deleted, and "d" typed
	for i := 0; i < 14; i++ {
		clock.Advance(5 * time.Millisecond)
		if c.Text() == "" {
			indexAtEmpty = append(indexAtEmpty, c.State().PhraseIndex)
		}
	}

	sawEmptyAfterTyping := false
	for i := 1; i < len(frames); i++ {
		if frames[i] == "" && frames[i-1] == "a" {
			sawEmptyAfterTyping = true
		}
	}
	if !sawEmptyAfterTyping {
		t.Errorf("Expected deletion to reach empty text, frames %q", frames)
	}
	if c.State().PhraseIndex != 1 {
		t.Errorf("Expected second phrase after full cycle, got %d", c.State().PhraseIndex)
	}
	if len(indexAtEmpty) == 0 {
		t.Error("Expected to observe an empty display")
	}
}

func TestCyclerEmptyPhraseHoldsImmediately(t *testing.T) {
	clock := NewManualClock(epoch)
	c, _ := NewCycler(clock, []string{"", "x"}, CyclerOptions{
		Speed: 100 * time.Millisecond,
		Delay: 300 * time.Millisecond,
	}, nil)
	c.Start()
	defer c.Stop()

	if st := c.State(); st.Mode != Holding {
		t.Fatalf("Expected Holding for empty phrase, got %v", st.Mode)
	}

	clock.Advance(300 * time.Millisecond)
	if st := c.State(); st.Mode != Deleting {
		t.Fatalf("Expected Deleting after hold, got %v", st.Mode)
	}

	clock.Advance(50 * time.Millisecond)
	st := c.State()
	if st.PhraseIndex != 1 || st.Mode != Typing {
		t.Errorf("Expected typing phrase 1, got index %d mode %v", st.PhraseIndex, st.Mode)
	}
}

func TestCyclerStopCancelsTicks(t *testing.T) {
	clock := NewManualClock(epoch)
	calls := 0
	c, _ := NewCycler(clock, []string{"hello"}, CyclerOptions{Speed: 10 * time.Millisecond}, func(string) { calls++ })
	c.Start()
	clock.Advance(25 * time.Millisecond)
	c.Stop()

	before := calls
	clock.Advance(time.Second)
	if calls != before {
		t.Errorf("Expected no ticks after Stop, got %d more", calls-before)
	}
	if c.Running() {
		t.Error("Expected cycler to be stopped")
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", clock.Pending())
	}
}

func TestCyclerSetPhrasesRestarts(t *testing.T) {
	clock := NewManualClock(epoch)
	c, _ := NewCycler(clock, []string{"first"}, CyclerOptions{Speed: 10 * time.Millisecond}, nil)
	c.Start()
	clock.Advance(30 * time.Millisecond)

	if err := c.SetPhrases([]string{"zz"}); err != nil {
		t.Fatalf("SetPhrases: %v", err)
	}
	if got := c.Text(); got != "" {
		t.Errorf("Expected empty text after restart, got %q", got)
	}
	clock.Advance(10 * time.Millisecond)
	if got := c.Text(); got != "z" {
		t.Errorf("Expected %q, got %q", "z", got)
	}
	if clock.Pending() != 1 {
		t.Errorf("Expected exactly one pending tick, got %d", clock.Pending())
	}

	if err := c.SetPhrases(nil); !errors.Is(err, ErrNoPhrases) {
		t.Errorf("Expected ErrNoPhrases, got %v", err)
	}
	c.Stop()
}
