package main

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Cells dimmer than this are cleared so old trails do not linger forever
const fadeFloor = 0.08

type cell struct {
	glyph rune
	level float64
}

// grid is a terminal-sized intensity buffer the rain paints on, one glyph per cell
type grid struct {
	mu     sync.Mutex
	width  int
	height int
	cells  []cell
}

func newGrid(width, height int) *grid {
	g := &grid{}
	g.Resize(width, height)
	return g
}

func (g *grid) Size() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width, g.height
}

// Resize drops the previous contents
func (g *grid) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.width, g.height = width, height
	g.cells = make([]cell, width*height)
}

func (g *grid) Fade(alpha float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	keep := 1 - alpha
	for i := range g.cells {
		c := &g.cells[i]
		if c.glyph == 0 {
			continue
		}
		c.level *= keep
		if c.level < fadeFloor {
			*c = cell{}
		}
	}
}

// DrawGlyph paints at full intensity. Off-grid positions are ignored.
func (g *grid) DrawGlyph(x, y int, glyph rune) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = cell{glyph: glyph, level: 1}
}

func (g *grid) at(x, y int) (rune, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0, 0
	}
	c := g.cells[y*g.width+x]
	return c.glyph, c.level
}

// draw copies the buffer to the screen, shading each glyph by its intensity
func (g *grid) draw(screen tcell.Screen, p palette) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			if c.glyph == 0 {
				continue
			}
			screen.SetContent(x, y, c.glyph, nil, p.rain(c.level))
		}
	}
}
