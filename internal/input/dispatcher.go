package input

import (
	"context"
	"errors"

	"github.com/clambin/ledsequencer/internal/command"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Results recorded in the Dispatcher's counter
const (
	ResultAccepted = "accepted"
	ResultInvalid  = "invalid"
	ResultDropped  = "dropped"
)

// Dispatcher forwards command lines to the pattern and speed queues. Commands are sent without blocking:
// if a queue is full, the command is dropped.
type Dispatcher struct {
	Patterns *command.Queue[int]
	Speeds   *command.Queue[int]
	// Counter, if set, counts the handled commands. Its labels are "source", "command" and "result".
	Counter *prometheus.CounterVec
	Logger  *log.Entry
}

// Handle parses a line received from source and forwards the command. For a status command, Handle calls status.
// The returned error is for information only: invalid input is never reported back to the sender.
func (d *Dispatcher) Handle(ctx context.Context, source string, line string, status func()) error {
	logger := d.Logger.WithField("source", source)

	cmd, err := Parse(line)
	if err != nil {
		if !errors.Is(err, ErrEmpty) {
			logger.WithError(err).WithField("line", line).Debug("ignoring invalid command")
			d.count(source, "unknown", ResultInvalid)
		}
		return err
	}

	switch cmd.Kind {
	case KindPattern:
		err = d.Patterns.Send(ctx, cmd.Value, command.DropIfFull)
	case KindSpeed:
		err = d.Speeds.Send(ctx, cmd.Value, command.DropIfFull)
	case KindStatus:
		logger.Info("status requested")
		if status != nil {
			status()
		}
	}

	result := ResultAccepted
	if err != nil {
		result = ResultDropped
		logger.WithError(err).WithField("command", cmd).Debug("command dropped")
	} else {
		logger.WithField("command", cmd).Info("command received")
	}
	d.count(source, cmd.Kind.String(), result)
	return err
}

func (d *Dispatcher) count(source, cmd, result string) {
	if d.Counter != nil {
		d.Counter.WithLabelValues(source, cmd, result).Inc()
	}
}
