package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/clambin/ledsequencer/internal/input"
	"github.com/clambin/ledsequencer/internal/sequencer"
	log "github.com/sirupsen/logrus"
)

const source = "console"

// Console reads commands from a line-oriented text stream (e.g. stdin) and forwards them to the Dispatcher
type Console struct {
	dispatcher *input.Dispatcher
	in         io.Reader
	out        io.Writer
	status     func() sequencer.Status
	logger     *log.Entry
}

// New creates a Console. status is called to answer a status command. Replies are written to out.
func New(dispatcher *input.Dispatcher, in io.Reader, out io.Writer, status func() sequencer.Status, logger *log.Entry) *Console {
	return &Console{
		dispatcher: dispatcher,
		in:         in,
		out:        out,
		status:     status,
		logger:     logger,
	}
}

// Run handles incoming lines until the input is exhausted or the context is canceled.
// Reaching the end of the input is not an error: the rest of the system keeps running.
func (c *Console) Run(ctx context.Context) error {
	c.logger.Info("started")
	defer c.logger.Info("stopped")
	_, _ = fmt.Fprintf(c.out, "Commands: pattern <%d-%d>, speed <%d-%d>, status\n", input.MinPattern, input.MaxPattern, input.MinSpeed, input.MaxSpeed)

	lines := make(chan string)
	go c.read(ctx, lines)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			_ = c.dispatcher.Handle(ctx, source, line, c.reportStatus)
		}
	}
}

// read blocks on the input, so it may outlive Run if the input never returns
func (c *Console) read(ctx context.Context, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		c.logger.WithError(err).Warn("failed to read input")
	}
}

func (c *Console) reportStatus() {
	if c.status == nil {
		return
	}
	_, _ = fmt.Fprintln(c.out, c.status())
}
