package testutils

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/clambin/ledsequencer/internal/pattern"
	log "github.com/sirupsen/logrus"
)

// DiscardLogger returns a logger that writes nothing
func DiscardLogger() *log.Entry {
	l := log.New()
	l.SetOutput(io.Discard)
	return log.NewEntry(l)
}

var _ pattern.Output = &FakeOutput{}

// FakeOutput records every batch written to it. If Err is set, Set returns it after recording the batch.
type FakeOutput struct {
	Err     error
	lock    sync.Mutex
	batches []pattern.Levels
}

func (f *FakeOutput) Set(levels pattern.Levels) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.batches = append(f.batches, levels)
	return f.Err
}

// Writes returns the number of batches written
func (f *FakeOutput) Writes() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.batches)
}

// Last returns the last batch written
func (f *FakeOutput) Last() pattern.Levels {
	f.lock.Lock()
	defer f.lock.Unlock()
	if len(f.batches) == 0 {
		return pattern.Levels{}
	}
	return f.batches[len(f.batches)-1]
}

// Batches returns all batches written
func (f *FakeOutput) Batches() []pattern.Levels {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]pattern.Levels(nil), f.batches...)
}

// Waits is a pattern.WaitFunc that records the requested durations and returns immediately
type Waits struct {
	lock      sync.Mutex
	durations []time.Duration
}

func (w *Waits) Wait(ctx context.Context, d time.Duration) error {
	w.lock.Lock()
	w.durations = append(w.durations, d)
	w.lock.Unlock()
	return ctx.Err()
}

// Get returns the recorded durations
func (w *Waits) Get() []time.Duration {
	w.lock.Lock()
	defer w.lock.Unlock()
	return append([]time.Duration(nil), w.durations...)
}

// FakeInput is a button input whose level is set by the test
type FakeInput struct {
	level atomic.Bool
	reads atomic.Int64
	Err   error
}

func (f *FakeInput) Read() (bool, error) {
	f.reads.Add(1)
	return f.level.Load(), f.Err
}

// Press sets the input's level
func (f *FakeInput) Press(pressed bool) {
	f.level.Store(pressed)
}

// Reads returns how often the input was read
func (f *FakeInput) Reads() int64 {
	return f.reads.Load()
}
