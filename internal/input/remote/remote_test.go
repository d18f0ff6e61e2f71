package remote_test

import (
	"context"
	"testing"
	"time"

	"github.com/clambin/ledsequencer/internal/command"
	"github.com/clambin/ledsequencer/internal/input"
	"github.com/clambin/ledsequencer/internal/input/remote"
	"github.com/clambin/ledsequencer/internal/pattern"
	"github.com/clambin/ledsequencer/internal/sequencer"
	"github.com/clambin/ledsequencer/internal/testutils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Run(t *testing.T) {
	client := testutils.StartRedis(t)
	ctx, cancel := context.WithCancel(t.Context())

	d := input.Dispatcher{
		Patterns: command.New[int]("pattern", 10),
		Speeds:   command.New[int]("speed", 10),
		Logger:   testutils.DiscardLogger(),
	}
	status := func() sequencer.Status {
		return sequencer.Status{Pattern: pattern.Random, Interval: 50 * time.Millisecond, Steps: 10}
	}
	s := remote.New(client, "cmd", "status", &d, status, testutils.DiscardLogger())

	errCh := make(chan error)
	go func() { errCh <- s.Run(ctx) }()

	assert.Eventually(t, func() bool {
		subscribers, err := client.PubSubNumSub(ctx, "cmd").Result()
		return err == nil && subscribers["cmd"] == 1
	}, 5*time.Second, 10*time.Millisecond)

	replies := client.Subscribe(ctx, "status")
	t.Cleanup(func() { _ = replies.Close() })
	_, err := replies.Receive(ctx)
	require.NoError(t, err)

	for _, line := range []string{"pattern 3", "speed 5000", "speed 50", "status"} {
		require.NoError(t, client.Publish(ctx, "cmd", line).Err())
	}

	value, err := d.Patterns.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, value)
	value, err = d.Speeds.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, value)

	var msg *redis.Message
	select {
	case msg = <-replies.Channel():
	case <-time.After(5 * time.Second):
		t.Fatal("no status reply")
	}
	assert.JSONEq(t, `{"pattern":3,"name":"random","speed":50,"steps":10}`, msg.Payload)

	cancel()
	assert.NoError(t, <-errCh)
}

func TestSource_Run_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	d := input.Dispatcher{Logger: testutils.DiscardLogger()}
	s := remote.New(client, "cmd", "status", &d, nil, testutils.DiscardLogger())

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	assert.Error(t, s.Run(ctx))
}
