package effects

import (
	"math/rand"
	"sync"
	"time"
)

// Surface is anything the rain can paint on: a canvas proxy, a terminal grid
type Surface interface {
	Size() (width, height int)
	// Fade composites a black fill of the given opacity over the previous frame
	Fade(alpha float64)
	DrawGlyph(x, y int, glyph rune)
}

// DefaultAlphabet is the runic glyph set of the hero background
const DefaultAlphabet = "ᛃᛇᛋᛏᛒᛗᛞᚨᚱᚲᚷᚺᚾᛉᚹᛖᛝᚠᚢᚥᛁᛜᛟ"

// RainConfig holds the rain tunables
type RainConfig struct {
	GlyphSize   int
	Alphabet    string
	FadeAlpha   float64
	ResetChance float64 // per-frame chance that an off-screen column restarts
	Interval    time.Duration
}

// DefaultRainConfig matches the page canvas: 14px glyphs, 4% fade, 2.5% reset, 100ms frames
func DefaultRainConfig() RainConfig {
	return RainConfig{
		GlyphSize:   14,
		Alphabet:    DefaultAlphabet,
		FadeAlpha:   0.04,
		ResetChance: 0.025,
		Interval:    100 * time.Millisecond,
	}
}

func (c RainConfig) withDefaults() RainConfig {
	d := DefaultRainConfig()
	if c.GlyphSize <= 0 {
		c.GlyphSize = d.GlyphSize
	}
	if c.Alphabet == "" {
		c.Alphabet = d.Alphabet
	}
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	return c
}

// Rain repaints falling glyph columns with fade trails
type Rain struct {
	cfg     RainConfig
	glyphs  []rune
	surface Surface
	entity  *Entity

	mu     sync.Mutex
	rng    *rand.Rand
	width  int
	height int
	drops  []float64
}

// NewRain creates a stopped renderer. A nil rng seeds from the clock.
func NewRain(clock Clock, surface Surface, cfg RainConfig, rng *rand.Rand) *Rain {
	cfg = cfg.withDefaults()
	if rng == nil {
		rng = rand.New(rand.NewSource(clock.Now().UnixNano()))
	}
	r := &Rain{
		cfg:     cfg,
		glyphs:  []rune(cfg.Alphabet),
		surface: surface,
		rng:     rng,
	}
	r.entity = NewEntity(clock, func(time.Time) (time.Duration, bool) {
		r.Frame()
		return r.cfg.Interval, true
	})
	return r
}

// Start paints frames every Interval until Stop
func (r *Rain) Start() {
	r.entity.Start(r.cfg.Interval)
}

// Stop cancels the frame loop
func (r *Rain) Stop() {
	r.entity.Stop()
}

// Running reports whether a frame is scheduled
func (r *Rain) Running() bool {
	return r.entity.Running()
}

// Columns returns the current column count
func (r *Rain) Columns() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drops)
}

// Drops returns a copy of the per-column drop rows
func (r *Rain) Drops() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.drops...)
}

// Resize re-derives floor(width/GlyphSize) columns.
// Surviving columns keep their drop, new ones start at the top.
func (r *Rain) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resizeLocked(width, height)
}

func (r *Rain) resizeLocked(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	r.width, r.height = width, height

	cols := width / r.cfg.GlyphSize
	if cols == len(r.drops) {
		return
	}
	drops := make([]float64, cols)
	n := copy(drops, r.drops)
	for i := n; i < cols; i++ {
		drops[i] = 1
	}
	r.drops = drops
}

// Frame paints one frame. A missing or empty surface skips silently.
func (r *Rain) Frame() {
	if r.surface == nil || len(r.glyphs) == 0 {
		return
	}
	w, h := r.surface.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if w != r.width || h != r.height || r.drops == nil {
		r.resizeLocked(w, h)
	}

	r.surface.Fade(r.cfg.FadeAlpha)

	size := float64(r.cfg.GlyphSize)
	for i := range r.drops {
		glyph := r.glyphs[r.rng.Intn(len(r.glyphs))]
		r.surface.DrawGlyph(i*r.cfg.GlyphSize, int(r.drops[i]*size), glyph)

		if r.drops[i]*size > float64(r.height) && r.rng.Float64() < r.cfg.ResetChance {
			r.drops[i] = 0
		}
		r.drops[i]++
	}
}
