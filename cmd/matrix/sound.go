package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	clickRate     = beep.SampleRate(44100)
	clickDuration = 12 * time.Millisecond
	clickPitch    = 1320
)

// clicker plays a short keyboard tick. The zero value is silent.
type clicker struct {
	enabled bool
	release func()
}

func newClicker(enabled bool) (*clicker, error) {
	if !enabled {
		return &clicker{}, nil
	}
	if err := speaker.Init(clickRate, clickRate.N(time.Second/20)); err != nil {
		return &clicker{}, err
	}
	return &clicker{enabled: true, release: speaker.Close}, nil
}

func (c *clicker) click() {
	if c == nil || !c.enabled {
		return
	}
	sine, err := generators.SineTone(clickRate, clickPitch)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(clickRate.N(clickDuration), sine))
}

func (c *clicker) close() {
	if c != nil && c.enabled {
		if c.release != nil {
			c.release()
		}
		c.enabled = false
	}
}
