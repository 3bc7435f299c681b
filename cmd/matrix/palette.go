package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/cyber-portfolio/internal/theme"
)

type palette struct {
	bg     tcell.Color
	fg     tcell.Color
	accent tcell.Color
	// rain colour at full intensity
	r, g, b int32
}

var (
	darkPalette = palette{
		bg:     tcell.ColorBlack,
		fg:     tcell.NewRGBColor(0, 255, 65),
		accent: tcell.NewRGBColor(0, 255, 255),
		r:      0, g: 255, b: 65,
	}
	lightPalette = palette{
		bg:     tcell.NewRGBColor(244, 247, 244),
		fg:     tcell.NewRGBColor(0, 102, 51),
		accent: tcell.NewRGBColor(0, 102, 204),
		r:      60, g: 150, b: 90,
	}
)

func paletteFor(t theme.Theme) palette {
	if t == theme.Light {
		return lightPalette
	}
	return darkPalette
}

func (p palette) base() tcell.Style {
	return tcell.StyleDefault.Background(p.bg).Foreground(p.fg)
}

// rain blends the rain colour toward the background by level
func (p palette) rain(level float64) tcell.Style {
	br, bg, bb := p.bg.RGB()
	mix := func(to, from int32) int32 {
		return from + int32(float64(to-from)*level)
	}
	c := tcell.NewRGBColor(mix(p.r, br), mix(p.g, bg), mix(p.b, bb))
	return tcell.StyleDefault.Background(p.bg).Foreground(c)
}
