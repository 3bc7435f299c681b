package effects

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	meterFPS       = 30
	meterFrequency = 6.0
	meterDamping   = 0.7
	meterSettle    = 0.5
)

// Meter springs a 0-100 level toward its target, one step per frame.
// It stops scheduling once it has settled.
type Meter struct {
	spring   harmonica.Spring
	interval time.Duration
	entity   *Entity
	onChange func(float64)

	mu     sync.Mutex
	pos    float64
	vel    float64
	target float64
}

// NewMeter creates a meter at zero. onChange receives every stepped value and may be nil.
func NewMeter(clock Clock, onChange func(float64)) *Meter {
	m := &Meter{
		spring:   harmonica.NewSpring(harmonica.FPS(meterFPS), meterFrequency, meterDamping),
		interval: time.Second / meterFPS,
		onChange: onChange,
	}
	m.entity = NewEntity(clock, m.step)
	return m
}

// SetTarget clamps level to [0,100] and starts animating toward it
func (m *Meter) SetTarget(level float64) {
	m.mu.Lock()
	m.target = math.Max(0, math.Min(100, level))
	m.mu.Unlock()

	m.entity.Start(m.interval)
}

// Value returns the current animated level
func (m *Meter) Value() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

// Target returns the level the meter is heading to
func (m *Meter) Target() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target
}

// Stop freezes the meter where it is
func (m *Meter) Stop() {
	m.entity.Stop()
}

func (m *Meter) step(time.Time) (time.Duration, bool) {
	m.mu.Lock()
	m.pos, m.vel = m.spring.Update(m.pos, m.vel, m.target)
	settled := math.Abs(m.pos-m.target) < meterSettle && math.Abs(m.vel) < meterSettle
	if settled {
		m.pos, m.vel = m.target, 0
	}
	pos := m.pos
	m.mu.Unlock()

	if m.onChange != nil {
		m.onChange(pos)
	}
	return m.interval, !settled
}
