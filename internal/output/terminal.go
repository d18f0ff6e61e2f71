package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/clambin/ledsequencer/internal/pattern"
)

var _ pattern.Output = &Terminal{}

// Terminal renders the output channels as a row of coloured LEDs, one line per step
type Terminal struct {
	w   io.Writer
	on  lipgloss.Style
	off lipgloss.Style
}

// NewTerminal creates a Terminal that writes to w
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{
		w:   w,
		on:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3030")).Bold(true),
		off: lipgloss.NewStyle().Foreground(lipgloss.Color("#404040")),
	}
}

func (t *Terminal) Set(levels pattern.Levels) error {
	_, err := fmt.Fprintln(t.w, t.Render(levels))
	return err
}

// Render returns the row of LEDs for levels
func (t *Terminal) Render(levels pattern.Levels) string {
	leds := make([]string, 0, len(levels))
	for _, on := range levels {
		if on {
			leds = append(leds, t.on.Render("●"))
		} else {
			leds = append(leds, t.off.Render("○"))
		}
	}
	return strings.Join(leds, " ")
}
