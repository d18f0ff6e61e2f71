package command_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/clambin/ledsequencer/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := command.New[int]("pattern", 10)
	assert.Equal(t, "pattern", q.Name())
	assert.Equal(t, 10, q.Cap())

	values := []int{3, 1, 2, 0, 2}
	for _, value := range values {
		require.NoError(t, q.Send(t.Context(), value, command.Block))
	}
	assert.Equal(t, len(values), q.Len())

	received := make([]int, 0, len(values))
	for range values {
		value, ok := q.TryReceive()
		require.True(t, ok)
		received = append(received, value)
	}
	assert.Equal(t, values, received)

	_, ok := q.TryReceive()
	assert.False(t, ok)
}

func TestQueue_DropIfFull(t *testing.T) {
	q := command.New[int]("speed", 2)

	assert.NoError(t, q.Send(t.Context(), 100, command.DropIfFull))
	assert.NoError(t, q.Send(t.Context(), 200, command.DropIfFull))
	assert.ErrorIs(t, q.Send(t.Context(), 300, command.DropIfFull), command.ErrQueueFull)
	assert.Equal(t, uint64(1), q.Dropped())

	value, ok := q.TryReceive()
	require.True(t, ok)
	assert.Equal(t, 100, value)
	value, ok = q.TryReceive()
	require.True(t, ok)
	assert.Equal(t, 200, value)
	_, ok = q.TryReceive()
	assert.False(t, ok)
}

func TestQueue_Block(t *testing.T) {
	q := command.New[int]("pattern", 1)
	require.NoError(t, q.Send(t.Context(), 1, command.Block))

	done := make(chan error)
	go func() { done <- q.Send(t.Context(), 2, command.Block) }()

	select {
	case <-done:
		t.Fatal("Send should block while the queue is full")
	case <-time.After(50 * time.Millisecond):
	}

	value, ok := q.TryReceive()
	require.True(t, ok)
	assert.Equal(t, 1, value)
	assert.NoError(t, <-done)

	value, ok = q.TryReceive()
	require.True(t, ok)
	assert.Equal(t, 2, value)
	assert.Zero(t, q.Dropped())
}

func TestQueue_Block_Canceled(t *testing.T) {
	q := command.New[int]("pattern", 1)
	require.NoError(t, q.Send(t.Context(), 1, command.Block))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Send(ctx, 2, command.Block), context.DeadlineExceeded)
	assert.Equal(t, 1, q.Len())
}

func TestQueue_Receive(t *testing.T) {
	q := command.New[string]("edges", 0)
	assert.Equal(t, command.DefaultCapacity, q.Cap())

	go func() { _ = q.Send(context.Background(), "foo", command.Block) }()
	value, err := q.Receive(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "foo", value)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = q.Receive(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueue_MultipleProducers(t *testing.T) {
	const producers = 4
	const count = 100
	q := command.New[int]("pattern", 8)

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := range producers {
		go func() {
			defer wg.Done()
			for i := range count {
				_ = q.Send(t.Context(), p*count+i, command.Block)
			}
		}()
	}

	last := make(map[int]int)
	for received := 0; received < producers*count; {
		value, ok := q.TryReceive()
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}
		received++
		producer := value / count
		if previous, found := last[producer]; found {
			// values of a single producer arrive in the order they were sent
			assert.Greater(t, value, previous)
		}
		last[producer] = value
	}
	wg.Wait()
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "block", command.Block.String())
	assert.Equal(t, "drop-if-full", command.DropIfFull.String())
}
