package button

import (
	"context"
	"time"

	"github.com/clambin/ledsequencer/internal/command"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// SampleInterval is the interval at which the EdgeDetector samples the button
	SampleInterval = 10 * time.Millisecond
	// DefaultDebounce is the default debounce interval
	DefaultDebounce = 50 * time.Millisecond
	edgeQueueSize   = 10
)

// Edge selects the next pattern on each debounced press of a button. Detecting the press is kept apart
// from handling it: the EdgeDetector only queues the time of each rising edge, the Debouncer does the rest.
type Edge struct {
	Detector  *EdgeDetector
	Debouncer *Debouncer
}

// NewEdge creates an Edge. Presses within debounce of the previous accepted press are ignored.
func NewEdge(in Input, patterns *command.Queue[int], debounce time.Duration, logger *log.Entry) *Edge {
	edges := command.New[time.Time]("edges", edgeQueueSize)
	return &Edge{
		Detector:  NewEdgeDetector(in, edges, logger.WithField("stage", "detector")),
		Debouncer: NewDebouncer(edges, patterns, debounce, logger.WithField("stage", "debouncer")),
	}
}

// Run runs the detector and the debouncer until the context is canceled
func (e *Edge) Run(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return e.Detector.Run(ctx) })
	g.Go(func() error { return e.Debouncer.Run(ctx) })
	return g.Wait()
}

// EdgeDetector samples a button and queues the time of every rising edge. It never blocks on the queue:
// if the queue is full, the edge is dropped.
type EdgeDetector struct {
	input    Input
	edges    *command.Queue[time.Time]
	logger   *log.Entry
	interval time.Duration
	pressed  bool
}

func NewEdgeDetector(in Input, edges *command.Queue[time.Time], logger *log.Entry) *EdgeDetector {
	return &EdgeDetector{
		input:    in,
		edges:    edges,
		logger:   logger,
		interval: SampleInterval,
	}
}

// Run samples the button until the context is canceled
func (d *EdgeDetector) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			d.sample(ctx, now)
		}
	}
}

func (d *EdgeDetector) sample(ctx context.Context, now time.Time) {
	pressed, err := d.input.Read()
	if err != nil {
		d.logger.WithError(err).Warn("failed to read button")
		return
	}
	if pressed && !d.pressed {
		if err = d.edges.Send(ctx, now, command.DropIfFull); err != nil {
			d.logger.WithError(err).Debug("edge dropped")
		}
	}
	d.pressed = pressed
}

// Debouncer receives button edges and selects the next pattern for each edge that is at least debounce
// after the last accepted one.
type Debouncer struct {
	edges    *command.Queue[time.Time]
	patterns *command.Queue[int]
	debounce time.Duration
	logger   *log.Entry
	last     time.Time
	counter  counter
}

func NewDebouncer(edges *command.Queue[time.Time], patterns *command.Queue[int], debounce time.Duration, logger *log.Entry) *Debouncer {
	return &Debouncer{
		edges:    edges,
		patterns: patterns,
		debounce: debounce,
		logger:   logger,
	}
}

// Run handles edges until the context is canceled
func (d *Debouncer) Run(ctx context.Context) error {
	d.logger.WithField("debounce", d.debounce).Info("started")
	defer d.logger.Info("stopped")

	for {
		edge, err := d.edges.Receive(ctx)
		if err != nil {
			return nil
		}
		d.handle(ctx, edge)
	}
}

func (d *Debouncer) handle(ctx context.Context, edge time.Time) {
	if !d.last.IsZero() && edge.Sub(d.last) < d.debounce {
		d.logger.WithField("since", edge.Sub(d.last)).Debug("bounce ignored")
		return
	}
	d.last = edge
	d.counter.press(ctx, d.patterns, d.logger)
}
