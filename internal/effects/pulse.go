package effects

import (
	"sync"
	"time"
)

// DefaultPulseDuration is how long a ripple/shake/bounce class stays applied
const DefaultPulseDuration = 600 * time.Millisecond

// Target receives presentational classes. Implementations must be comparable (pointers).
type Target interface {
	AddClass(name string)
	RemoveClass(name string)
}

// EffectPulse describes one live pulse
type EffectPulse struct {
	Target    Target
	ClassName string
	ExpiresAt time.Time
}

type pulseKey struct {
	target   Target
	category string
}

type pulseSlot struct {
	pulse  EffectPulse
	entity *Entity
}

// Pulser applies transient classes and guarantees their removal.
// At most one pulse is live per (target, category).
type Pulser struct {
	clock    Clock
	duration time.Duration

	mu    sync.Mutex
	slots map[pulseKey]*pulseSlot
}

// NewPulser creates a pulser. A non-positive duration uses DefaultPulseDuration.
func NewPulser(clock Clock, duration time.Duration) *Pulser {
	if duration <= 0 {
		duration = DefaultPulseDuration
	}
	return &Pulser{
		clock:    clock,
		duration: duration,
		slots:    make(map[pulseKey]*pulseSlot),
	}
}

// Duration returns the configured pulse lifetime
func (p *Pulser) Duration() time.Duration {
	return p.duration
}

// Trigger applies className to target under category. A pulse already live on the
// same key is cancelled and its class removed before the new one is applied.
func (p *Pulser) Trigger(target Target, category, className string) {
	if target == nil {
		return
	}
	key := pulseKey{target: target, category: category}

	p.mu.Lock()
	defer p.mu.Unlock()

	if prev, ok := p.slots[key]; ok {
		prev.entity.Stop()
		target.RemoveClass(prev.pulse.ClassName)
	}

	slot := &pulseSlot{
		pulse: EffectPulse{
			Target:    target,
			ClassName: className,
			ExpiresAt: p.clock.Now().Add(p.duration),
		},
	}
	// A removal that already fired for prev finds a different slot and backs off
	slot.entity = NewEntity(p.clock, func(time.Time) (time.Duration, bool) {
		p.expire(key, slot)
		return 0, false
	})
	p.slots[key] = slot

	target.AddClass(className)
	slot.entity.Start(p.duration)
}

// Active returns the live pulse for a key
func (p *Pulser) Active(target Target, category string) (EffectPulse, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	slot, ok := p.slots[pulseKey{target: target, category: category}]
	if !ok {
		return EffectPulse{}, false
	}
	return slot.pulse, true
}

// Len returns the number of live pulses
func (p *Pulser) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slots)
}

// StopAll cancels every pending removal and strips the classes immediately
func (p *Pulser) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, slot := range p.slots {
		slot.entity.Stop()
		key.target.RemoveClass(slot.pulse.ClassName)
		delete(p.slots, key)
	}
}

func (p *Pulser) expire(key pulseKey, slot *pulseSlot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.slots[key] != slot {
		return
	}
	key.target.RemoveClass(slot.pulse.ClassName)
	delete(p.slots, key)
}
