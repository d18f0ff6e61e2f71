package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clambin/ledsequencer/internal/input"
	"github.com/clambin/ledsequencer/internal/sequencer"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const source = "redis"

// Source receives command lines from a redis pub/sub channel and forwards them to the Dispatcher.
// Status commands are answered on a separate channel.
type Source struct {
	client         *redis.Client
	dispatcher     *input.Dispatcher
	commandChannel string
	statusChannel  string
	status         func() sequencer.Status
	logger         *log.Entry
}

// New creates a Source
func New(client *redis.Client, commandChannel, statusChannel string, dispatcher *input.Dispatcher, status func() sequencer.Status, logger *log.Entry) *Source {
	return &Source{
		client:         client,
		dispatcher:     dispatcher,
		commandChannel: commandChannel,
		statusChannel:  statusChannel,
		status:         status,
		logger:         logger.WithField("channel", commandChannel),
	}
}

// Run handles incoming commands until the context is canceled. It returns an error if it can't subscribe to the command channel.
func (s *Source) Run(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, s.commandChannel)
	defer func() { _ = sub.Close() }()

	// wait for the subscription to be confirmed, so connection errors are reported
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe %s: %w", s.commandChannel, err)
	}
	s.logger.Info("started")
	defer s.logger.Info("stopped")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			_ = s.dispatcher.Handle(ctx, source, msg.Payload, func() { s.publishStatus(ctx) })
		}
	}
}

func (s *Source) publishStatus(ctx context.Context) {
	payload, err := json.Marshal(s.status())
	if err == nil {
		err = s.client.Publish(ctx, s.statusChannel, payload).Err()
	}
	if err != nil {
		s.logger.WithError(err).Warn("failed to publish status")
	}
}
