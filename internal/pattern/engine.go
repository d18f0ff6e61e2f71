package pattern

import (
	"context"
	"math/rand/v2"
	"time"

	log "github.com/sirupsen/logrus"
)

// Output sets the levels of all output channels in one batch
type Output interface {
	Set(Levels) error
}

// WaitFunc blocks for the provided duration, or until the context is canceled
type WaitFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default WaitFunc
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Engine runs the steps of the supported patterns against an Output. Each pattern keeps its
// own state, so switching away from a pattern and back resumes where it left off.
type Engine struct {
	// Wait is called after each step. Defaults to Sleep.
	Wait     WaitFunc
	output   Output
	patterns [len(selectorNames)]Pattern
	logger   *log.Entry
}

// NewEngine creates an Engine for the provided Output. r seeds the random pattern (nil uses the global source).
func NewEngine(output Output, r *rand.Rand, logger *log.Entry) *Engine {
	e := Engine{
		Wait:   Sleep,
		output: output,
		logger: logger,
	}
	for i := range e.patterns {
		// New only fails for an invalid selector
		e.patterns[i], _ = New(Selector(i), r)
	}
	return &e
}

// Step performs one step of the selected pattern: it writes the pattern's next levels to the Output
// and then waits for interval. Output errors are logged, not returned.
// If the selector is not valid, Step does nothing and returns false.
func (e *Engine) Step(ctx context.Context, s Selector, interval time.Duration) bool {
	if !s.Valid() {
		return false
	}
	next := e.patterns[s].Next()
	if err := e.output.Set(next); err != nil {
		e.logger.WithError(err).WithField("pattern", s).Debug("failed to set output")
	}
	_ = e.Wait(ctx, interval)
	return true
}

// Reset resets the state of the selected pattern
func (e *Engine) Reset(s Selector) {
	if s.Valid() {
		e.patterns[s].Reset()
	}
}
