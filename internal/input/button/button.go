package button

import (
	"context"
	"time"

	"github.com/clambin/ledsequencer/internal/command"
	"github.com/clambin/ledsequencer/internal/input"
	log "github.com/sirupsen/logrus"
)

// PollInterval is the interval at which the Poller samples the button
const PollInterval = 200 * time.Millisecond

// Input is a binary input line. Read returns true while the button is pressed.
type Input interface {
	Read() (bool, error)
}

// Poller samples a button at a fixed interval. Each time it finds the button pressed, it selects the next pattern.
// There is no debouncing: holding the button selects a new pattern at every poll.
type Poller struct {
	input    Input
	patterns *command.Queue[int]
	logger   *log.Entry
	interval time.Duration
	counter  counter
}

// NewPoller creates a Poller that sends pattern selections to patterns
func NewPoller(in Input, patterns *command.Queue[int], logger *log.Entry) *Poller {
	return &Poller{
		input:    in,
		patterns: patterns,
		logger:   logger,
		interval: PollInterval,
	}
}

// Run polls the button until the context is canceled
func (p *Poller) Run(ctx context.Context) error {
	p.logger.WithField("interval", p.interval).Info("started")
	defer p.logger.Info("stopped")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.poll(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	pressed, err := p.input.Read()
	if err != nil {
		p.logger.WithError(err).Warn("failed to read button")
		return
	}
	if pressed {
		p.logger.Debug("button pressed")
		p.counter.press(ctx, p.patterns, p.logger)
	}
}

// counter cycles through the patterns
type counter struct {
	value int
}

func (c *counter) next() int {
	c.value = (c.value + 1) % (input.MaxPattern + 1)
	return c.value
}

// press selects the next pattern. It waits until the pattern queue has space.
func (c *counter) press(ctx context.Context, patterns *command.Queue[int], logger *log.Entry) {
	value := c.next()
	if err := patterns.Send(ctx, value, command.Block); err != nil {
		return
	}
	logger.WithField("pattern", value).Info("pattern selected")
}
