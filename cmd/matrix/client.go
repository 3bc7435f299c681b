package main

import (
	"math/rand"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/cyber-portfolio/internal/config"
	"github.com/Zachkp/cyber-portfolio/internal/content"
	"github.com/Zachkp/cyber-portfolio/internal/effects"
	"github.com/Zachkp/cyber-portfolio/internal/theme"
)

const (
	frameInterval = 33 * time.Millisecond
	meterWidth    = 24
	maxMeters     = 6

	pulseCategory = "ripple"
	pulseClass    = "pulse"
	contactLabel  = "[ CONTACT ]"
)

type meterRow struct {
	name  string
	level int
	meter *effects.Meter
}

// client owns the screen and the effects painting on it. Effects advance on
// clock timers; the frame loop only reads their state.
type client struct {
	screen tcell.Screen
	grid   *grid
	rain   *effects.Rain
	cycler *effects.Cycler
	pulser *effects.Pulser
	button *button
	meters []meterRow
	theme  *theme.Manager
	sound  *clicker

	name string

	mu     sync.Mutex
	typed  string
	status string
}

func newClient(screen tcell.Screen, clock effects.Clock, cfg *config.Config, p *content.Portfolio, themes *theme.Manager, sound *clicker) (*client, error) {
	w, h := screen.Size()
	c := &client{
		screen: screen,
		grid:   newGrid(w, h),
		pulser: effects.NewPulser(clock, cfg.Effects.PulseDuration),
		button: newButton(contactLabel),
		theme:  themes,
		sound:  sound,
		name:   "PORTFOLIO",
	}

	rainCfg := cfg.Effects.RainConfig()
	// One terminal cell per glyph
	rainCfg.GlyphSize = 1
	c.rain = effects.NewRain(clock, c.grid, rainCfg, rand.New(rand.NewSource(time.Now().UnixNano())))

	phrases := cfg.Effects.Phrases
	if p != nil {
		if p.PersonalInfo.Name != "" {
			c.name = p.PersonalInfo.Name
		}
		if len(phrases) == 0 {
			phrases = p.HeroTitles
		}
		for i, lvl := range p.Levels() {
			if i == maxMeters {
				break
			}
			c.meters = append(c.meters, meterRow{
				name:  lvl.Name,
				level: lvl.Level,
				meter: effects.NewMeter(clock, nil),
			})
		}
	}
	if len(phrases) == 0 {
		phrases = []string{"Developer"}
	}

	cycler, err := effects.NewCycler(clock, phrases, cfg.Effects.CyclerOptions(), c.setTyped)
	if err != nil {
		return nil, err
	}
	c.cycler = cycler
	return c, nil
}

func (c *client) setTyped(text string) {
	c.mu.Lock()
	grew := utf8.RuneCountInString(text) > utf8.RuneCountInString(c.typed)
	c.typed = text
	c.mu.Unlock()
	if grew {
		c.sound.click()
	}
}

func (c *client) typedText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typed
}

func (c *client) setStatus(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = s
}

func (c *client) start() {
	c.rain.Start()
	c.cycler.Start()
	for _, m := range c.meters {
		m.meter.SetTarget(float64(m.level))
	}
}

func (c *client) stop() {
	c.rain.Stop()
	c.cycler.Stop()
	c.pulser.StopAll()
	for _, m := range c.meters {
		m.meter.Stop()
	}
}

// handleEvent returns false when the client should quit
func (c *client) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			c.pulser.Trigger(c.button, pulseCategory, pulseClass)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 't':
				next, err := c.theme.Toggle()
				if err != nil {
					c.setStatus("theme not saved: " + err.Error())
				} else {
					c.setStatus("theme: " + string(next))
				}
			}
		}

	case *tcell.EventResize:
		c.screen.Sync()
		w, h := c.screen.Size()
		c.grid.Resize(w, h)
		c.rain.Resize(w, h)
	}
	return true
}

func (c *client) draw() {
	p := paletteFor(c.theme.Current())
	base := p.base()

	c.screen.SetStyle(base)
	c.screen.Clear()
	c.grid.draw(c.screen, p)

	w, h := c.screen.Size()
	mid := h / 2

	drawCentered(c.screen, w, mid-2, c.name, base.Bold(true))
	drawCentered(c.screen, w, mid, c.typedText()+"_", base.Foreground(p.accent))

	btn := base
	if c.button.has(pulseClass) {
		btn = btn.Reverse(true)
	}
	drawCentered(c.screen, w, mid+2, c.button.label, btn)

	top := mid + 4
	for i, row := range c.meters {
		y := top + i
		if y >= h-1 {
			break
		}
		c.drawMeter(2, y, row, base)
	}

	c.mu.Lock()
	status := c.status
	c.mu.Unlock()
	help := "enter: contact  t: theme  q: quit"
	if status != "" {
		help = status + "  |  " + help
	}
	drawText(c.screen, 0, h-1, help, base.Dim(true))

	c.screen.Show()
}

func (c *client) drawMeter(x, y int, row meterRow, style tcell.Style) {
	v := row.meter.Value()
	filled := int(v / 100 * meterWidth)
	label := []rune(row.name)
	if len(label) > 14 {
		label = label[:14]
	}
	x = drawText(c.screen, x, y, padRight(string(label), 15), style)
	for i := 0; i < meterWidth; i++ {
		r := '░'
		if i < filled {
			r = '█'
		}
		c.screen.SetContent(x+i, y, r, nil, style)
	}
}

// run drives the frame loop until quit
func (c *client) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	c.start()
	defer c.stop()

	for {
		select {
		case ev := <-events:
			if !c.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			c.draw()
		}
	}
}

func drawCentered(screen tcell.Screen, width, y int, s string, style tcell.Style) {
	x := (width - utf8.RuneCountInString(s)) / 2
	if x < 0 {
		x = 0
	}
	drawText(screen, x, y, s, style)
}

// drawText writes s from x and returns the column after it
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func padRight(s string, n int) string {
	for utf8.RuneCountInString(s) < n {
		s += " "
	}
	return s
}
