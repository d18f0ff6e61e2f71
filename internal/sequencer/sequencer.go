package sequencer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/clambin/ledsequencer/internal/command"
	"github.com/clambin/ledsequencer/internal/pattern"
	log "github.com/sirupsen/logrus"
)

const (
	// MinInterval and MaxInterval bound the step interval that producers may request
	MinInterval = 50 * time.Millisecond
	MaxInterval = time.Second
	// DefaultInterval is the step interval at startup
	DefaultInterval = 400 * time.Millisecond
)

// Config holds the initial state of a Sequencer
type Config struct {
	Pattern  pattern.Selector
	Interval time.Duration
	// ResetOnSwitch restarts a pattern from its first step when it gets selected.
	// By default, a pattern resumes where it left off.
	ResetOnSwitch bool
}

// Status is a snapshot of the Sequencer's state
type Status struct {
	Pattern  pattern.Selector
	Interval time.Duration
	Steps    uint64
}

func (s Status) String() string {
	return fmt.Sprintf("pattern: %d (%s), speed: %d ms, steps: %d", s.Pattern, s.Pattern, s.Interval.Milliseconds(), s.Steps)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Pattern    int    `json:"pattern"`
		Name       string `json:"name"`
		IntervalMS int64  `json:"speed"`
		Steps      uint64 `json:"steps"`
	}{
		Pattern:    int(s.Pattern),
		Name:       s.Pattern.String(),
		IntervalMS: s.Interval.Milliseconds(),
		Steps:      s.Steps,
	})
}

// Sequencer runs the selected pattern. It is the only consumer of the pattern and speed queues,
// and the only writer of the selected pattern and the step interval: all changes must be sent through the queues.
type Sequencer struct {
	patterns      *command.Queue[int]
	speeds        *command.Queue[int]
	engine        *pattern.Engine
	logger        *log.Entry
	selected      pattern.Selector
	interval      time.Duration
	resetOnSwitch bool
	steps         uint64
	status        atomic.Pointer[Status]
}

// New creates a Sequencer. If cfg.Interval is zero, DefaultInterval is used.
func New(cfg Config, patterns, speeds *command.Queue[int], engine *pattern.Engine, logger *log.Entry) *Sequencer {
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	s := Sequencer{
		patterns:      patterns,
		speeds:        speeds,
		engine:        engine,
		logger:        logger,
		selected:      cfg.Pattern,
		interval:      cfg.Interval,
		resetOnSwitch: cfg.ResetOnSwitch,
	}
	s.publish()
	return &s
}

// Run runs the Sequencer until the context is canceled
func (s *Sequencer) Run(ctx context.Context) error {
	s.logger.WithField("status", s.Status()).Info("started")
	defer s.logger.Info("stopped")

	for ctx.Err() == nil {
		s.Iterate(ctx)
	}
	return nil
}

// Iterate performs one iteration of the Sequencer: it takes the next speed and pattern command, if any,
// and then runs one step of the selected pattern. Pending commands never block the pattern.
func (s *Sequencer) Iterate(ctx context.Context) {
	if speed, ok := s.speeds.TryReceive(); ok {
		s.interval = time.Duration(speed) * time.Millisecond
		s.logger.WithField("speed", speed).Info("speed selected")
	}

	if value, ok := s.patterns.TryReceive(); ok {
		next := pattern.Selector(value)
		if s.resetOnSwitch && next != s.selected {
			s.engine.Reset(next)
		}
		s.selected = next
		s.logger.WithField("pattern", next).Info("pattern selected")
	}

	if s.engine.Step(ctx, s.selected, s.interval) {
		s.steps++
	} else {
		// an unknown pattern produces no output. wait anyway so we don't spin.
		_ = s.engine.Wait(ctx, s.interval)
	}
	s.publish()
}

// Status returns the latest snapshot of the Sequencer's state. It is safe to call from any goroutine.
func (s *Sequencer) Status() Status {
	return *s.status.Load()
}

func (s *Sequencer) publish() {
	s.status.Store(&Status{
		Pattern:  s.selected,
		Interval: s.interval,
		Steps:    s.steps,
	})
}
