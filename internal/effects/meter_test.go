package effects

import (
	"testing"
	"time"
)

func TestMeterSettlesOnTarget(t *testing.T) {
	clock := NewManualClock(epoch)
	var last float64
	updates := 0
	m := NewMeter(clock, func(v float64) {
		last = v
		updates++
	})

	m.SetTarget(85)
	clock.Advance(10 * time.Second)

	if m.Value() != 85 {
		t.Errorf("Expected meter at 85, got %v", m.Value())
	}
	if last != 85 {
		t.Errorf("Expected last update 85, got %v", last)
	}
	if updates < 2 {
		t.Errorf("Expected an animated approach, got %d updates", updates)
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected meter to stop scheduling once settled, got %d timers", clock.Pending())
	}
}

func TestMeterClampsTarget(t *testing.T) {
	m := NewMeter(NewManualClock(epoch), nil)
	m.SetTarget(140)
	if m.Target() != 100 {
		t.Errorf("Expected clamp to 100, got %v", m.Target())
	}
	m.SetTarget(-3)
	if m.Target() != 0 {
		t.Errorf("Expected clamp to 0, got %v", m.Target())
	}
	m.Stop()
}
