package effects

import (
	"sync"
	"testing"
	"time"
)

func TestManualClockFiresInDeadlineOrder(t *testing.T) {
	clock := NewManualClock(epoch)
	var order []string
	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	clock.Advance(20 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("Expected [a b], got %v", order)
	}
	if !clock.Now().Equal(epoch.Add(20 * time.Millisecond)) {
		t.Errorf("Expected clock at +20ms, got %v", clock.Now().Sub(epoch))
	}

	clock.Advance(10 * time.Millisecond)
	if len(order) != 3 {
		t.Errorf("Expected third timer to fire, got %v", order)
	}
}

func TestManualClockCallbackSeesDeadline(t *testing.T) {
	clock := NewManualClock(epoch)
	var seen time.Time
	clock.AfterFunc(15*time.Millisecond, func() { seen = clock.Now() })
	clock.Advance(time.Second)

	if !seen.Equal(epoch.Add(15 * time.Millisecond)) {
		t.Errorf("Expected callback at +15ms, got %v", seen.Sub(epoch))
	}
}

func TestManualClockStop(t *testing.T) {
	clock := NewManualClock(epoch)
	fired := false
	timer := clock.AfterFunc(time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("Expected Stop to report a pending timer")
	}
	if timer.Stop() {
		t.Error("Expected second Stop to report false")
	}
	clock.Advance(time.Second)
	if fired {
		t.Error("Expected stopped timer not to fire")
	}
}

func TestEntityRunsSequentialSteps(t *testing.T) {
	clock := NewManualClock(epoch)
	var at []time.Duration
	e := NewEntity(clock, func(now time.Time) (time.Duration, bool) {
		at = append(at, now.Sub(epoch))
		return 10 * time.Millisecond, len(at) < 3
	})
	e.Start(5 * time.Millisecond)
	clock.Advance(time.Second)

	want := []time.Duration{5 * time.Millisecond, 15 * time.Millisecond, 25 * time.Millisecond}
	if len(at) != len(want) {
		t.Fatalf("Expected %d steps, got %v", len(want), at)
	}
	for i := range want {
		if at[i] != want[i] {
			t.Errorf("step %d: Expected %v, got %v", i, want[i], at[i])
		}
	}
	if e.Running() {
		t.Error("Expected entity to finish after more=false")
	}
}

func TestEntityRestartReplacesPendingStep(t *testing.T) {
	clock := NewManualClock(epoch)
	steps := 0
	e := NewEntity(clock, func(time.Time) (time.Duration, bool) {
		steps++
		return 0, false
	})
	e.Start(50 * time.Millisecond)
	clock.Advance(40 * time.Millisecond)
	e.Start(50 * time.Millisecond)

	clock.Advance(20 * time.Millisecond)
	if steps != 0 {
		t.Errorf("Expected restart to cancel first schedule, got %d steps", steps)
	}
	if clock.Pending() != 1 {
		t.Errorf("Expected one pending timer, got %d", clock.Pending())
	}
	clock.Advance(30 * time.Millisecond)
	if steps != 1 {
		t.Errorf("Expected one step, got %d", steps)
	}
}

func TestEntityStopInsideStep(t *testing.T) {
	clock := NewManualClock(epoch)
	var e *Entity
	steps := 0
	e = NewEntity(clock, func(time.Time) (time.Duration, bool) {
		steps++
		e.Stop()
		return time.Millisecond, true
	})
	e.Start(time.Millisecond)
	clock.Advance(time.Second)

	if steps != 1 {
		t.Errorf("Expected stop during step to prevent reschedule, got %d steps", steps)
	}
}

func TestEntityRealClockStop(t *testing.T) {
	var mu sync.Mutex
	steps := 0
	e := NewEntity(NewRealClock(), func(time.Time) (time.Duration, bool) {
		mu.Lock()
		steps++
		mu.Unlock()
		return time.Millisecond, true
	})
	e.Start(time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	e.Stop()
	// let a step that was already in flight finish
	time.Sleep(5 * time.Millisecond)

	mu.Lock()
	after := steps
	mu.Unlock()
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if after == 0 {
		t.Error("Expected at least one step before Stop")
	}
	if steps != after {
		t.Errorf("Expected no steps after Stop, got %d more", steps-after)
	}
}
