package output

import (
	"errors"
	"fmt"

	"github.com/clambin/ledsequencer/internal/gpio"
	"github.com/clambin/ledsequencer/internal/pattern"
)

// LineWriter sets the level of a binary output line
type LineWriter interface {
	Write(high bool) error
}

var _ pattern.Output = &GPIO{}

// GPIO drives one GPIO line per output channel. With ActiveLow, a channel that is on drives its line low.
type GPIO struct {
	Lines     [pattern.ChannelCount]LineWriter
	ActiveLow bool
}

// NewGPIO opens the provided sysfs GPIO lines as outputs
func NewGPIO(root string, lines [pattern.ChannelCount]int, activeLow bool) (*GPIO, error) {
	g := GPIO{ActiveLow: activeLow}
	for i, number := range lines {
		l, err := gpio.Open(root, number, gpio.Out)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		g.Lines[i] = l
	}
	return &g, nil
}

// Set writes all channels. A failing line does not stop the other lines from being written.
func (g *GPIO) Set(levels pattern.Levels) error {
	var err error
	for i, on := range levels {
		if lineErr := g.Lines[i].Write(on != g.ActiveLow); lineErr != nil {
			err = errors.Join(err, fmt.Errorf("channel %d: %w", i, lineErr))
		}
	}
	return err
}
