package effects

import (
	"errors"
	"sync"
	"time"
)

// ErrNoPhrases is returned when a cycler is given nothing to type
var ErrNoPhrases = errors.New("effects: cycler needs at least one phrase")

// Mode is the typewriter state
type Mode int

const (
	Typing Mode = iota
	Holding
	Deleting
)

func (m Mode) String() string {
	switch m {
	case Typing:
		return "typing"
	case Holding:
		return "holding"
	case Deleting:
		return "deleting"
	default:
		return "unknown"
	}
}

const (
	DefaultTypeSpeed = 80 * time.Millisecond
	DefaultHoldDelay = 2 * time.Second
)

// CyclerOptions tunes the typewriter cadence. Zero values take defaults.
type CyclerOptions struct {
	Speed       time.Duration // per typed rune
	Delay       time.Duration // hold on a complete phrase
	DeleteSpeed time.Duration // per deleted rune, half of Speed when zero
}

func (o CyclerOptions) withDefaults() CyclerOptions {
	if o.Speed <= 0 {
		o.Speed = DefaultTypeSpeed
	}
	if o.Delay <= 0 {
		o.Delay = DefaultHoldDelay
	}
	if o.DeleteSpeed <= 0 {
		o.DeleteSpeed = o.Speed / 2
		if o.DeleteSpeed <= 0 {
			o.DeleteSpeed = o.Speed
		}
	}
	return o
}

// CyclerState is a snapshot of the typewriter
type CyclerState struct {
	Phrases     []string
	PhraseIndex int
	CharCount   int
	Mode        Mode
}

// Cycler types and deletes phrases in an endless loop.
// 0 <= CharCount <= len(phrase) holds after every tick.
type Cycler struct {
	opts     CyclerOptions
	onChange func(string)
	entity   *Entity

	mu      sync.Mutex
	phrases [][]rune
	index   int
	count   int
	mode    Mode
}

// NewCycler creates a stopped cycler. onChange receives the visible text after every tick
// and may be nil.
func NewCycler(clock Clock, phrases []string, opts CyclerOptions, onChange func(string)) (*Cycler, error) {
	if len(phrases) == 0 {
		return nil, ErrNoPhrases
	}
	c := &Cycler{
		opts:     opts.withDefaults(),
		onChange: onChange,
		phrases:  toRunes(phrases),
	}
	c.entity = NewEntity(clock, c.tick)
	return c, nil
}

// Start resets to the first phrase and begins typing
func (c *Cycler) Start() {
	c.entity.Stop()

	c.mu.Lock()
	c.index = 0
	first := c.resetLocked()
	text := c.textLocked()
	c.mu.Unlock()

	c.emit(text)
	c.entity.Start(first)
}

// Stop cancels the pending tick. Call it when the display target goes away.
func (c *Cycler) Stop() {
	c.entity.Stop()
}

// Running reports whether a tick is scheduled
func (c *Cycler) Running() bool {
	return c.entity.Running()
}

// SetPhrases replaces the rotation and restarts from the first phrase
func (c *Cycler) SetPhrases(phrases []string) error {
	if len(phrases) == 0 {
		return ErrNoPhrases
	}
	c.entity.Stop()

	c.mu.Lock()
	c.phrases = toRunes(phrases)
	c.index = 0
	c.mu.Unlock()

	c.Start()
	return nil
}

// Text returns the visible prefix of the current phrase
func (c *Cycler) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.textLocked()
}

// State returns a copy of the typewriter state
func (c *Cycler) State() CyclerState {
	c.mu.Lock()
	defer c.mu.Unlock()

	phrases := make([]string, len(c.phrases))
	for i, p := range c.phrases {
		phrases[i] = string(p)
	}
	return CyclerState{
		Phrases:     phrases,
		PhraseIndex: c.index,
		CharCount:   c.count,
		Mode:        c.mode,
	}
}

// resetLocked enters Typing on the current phrase and returns the delay to the first tick.
// An empty phrase is already fully typed.
func (c *Cycler) resetLocked() time.Duration {
	c.count = 0
	if len(c.phrases[c.index]) == 0 {
		c.mode = Holding
		return c.opts.Delay
	}
	c.mode = Typing
	return c.opts.Speed
}

func (c *Cycler) tick(time.Time) (time.Duration, bool) {
	c.mu.Lock()
	var next time.Duration
	phrase := c.phrases[c.index]

	switch c.mode {
	case Typing:
		if c.count < len(phrase) {
			c.count++
		}
		if c.count == len(phrase) {
			c.mode = Holding
			next = c.opts.Delay
		} else {
			next = c.opts.Speed
		}

	case Holding:
		c.mode = Deleting
		next = c.opts.DeleteSpeed

	case Deleting:
		if c.count > 0 {
			c.count--
		}
		if c.count == 0 {
			c.index = (c.index + 1) % len(c.phrases)
			next = c.resetLocked()
		} else {
			next = c.opts.DeleteSpeed
		}
	}

	text := c.textLocked()
	c.mu.Unlock()

	c.emit(text)
	return next, true
}

func (c *Cycler) textLocked() string {
	return string(c.phrases[c.index][:c.count])
}

func (c *Cycler) emit(text string) {
	if c.onChange != nil {
		c.onChange(text)
	}
}

func toRunes(phrases []string) [][]rune {
	out := make([][]rune, len(phrases))
	for i, p := range phrases {
		out[i] = []rune(p)
	}
	return out
}
