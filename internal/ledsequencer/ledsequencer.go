package ledsequencer

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/clambin/ledsequencer/internal/command"
	"github.com/clambin/ledsequencer/internal/configuration"
	"github.com/clambin/ledsequencer/internal/gpio"
	"github.com/clambin/ledsequencer/internal/input"
	"github.com/clambin/ledsequencer/internal/input/button"
	"github.com/clambin/ledsequencer/internal/input/console"
	"github.com/clambin/ledsequencer/internal/input/remote"
	"github.com/clambin/ledsequencer/internal/output"
	"github.com/clambin/ledsequencer/internal/pattern"
	"github.com/clambin/ledsequencer/internal/sequencer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type task interface {
	Run(ctx context.Context) error
}

// LEDSequencer wires the sequencer to its outputs and input sources
type LEDSequencer struct {
	http.Handler
	Sequencer *sequencer.Sequencer
	patterns  *command.Queue[int]
	speeds    *command.Queue[int]
	tasks     []task
	redis     *redis.Client
	cfg       configuration.Configuration
	logger    *log.Entry
}

// New creates a LEDSequencer. The console source, if enabled, reads from stdin and writes to stdout.
// If r is not nil, the LEDSequencer's metrics are registered with it.
func New(cfg configuration.Configuration, stdin io.Reader, stdout io.Writer, r prometheus.Registerer, logger *log.Entry) (*LEDSequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	l := LEDSequencer{
		patterns: command.New[int]("pattern", cfg.Sequencer.Capacity()),
		speeds:   command.New[int]("speed", cfg.Sequencer.Capacity()),
		cfg:      cfg,
		logger:   logger,
	}

	out, err := buildOutput(cfg.Output, stdout)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	var status func() sequencer.Status
	m := newMetrics(func() sequencer.Status { return status() }, l.patterns, l.speeds)

	engine := pattern.NewEngine(m.OutputMiddleware(out), nil, logger.WithField("component", "engine"))
	l.Sequencer = sequencer.New(sequencer.Config{
		Pattern:       cfg.Sequencer.Pattern,
		Interval:      cfg.Sequencer.Speed,
		ResetOnSwitch: cfg.Sequencer.ResetOnSwitch,
	}, l.patterns, l.speeds, engine, logger.WithField("component", "sequencer"))
	status = l.Sequencer.Status
	l.tasks = append(l.tasks, l.Sequencer)

	if cfg.Button.Enabled {
		in, err := gpio.Open(cfg.Output.GPIORoot, cfg.Button.Line, gpio.In)
		if err != nil {
			return nil, fmt.Errorf("button: %w", err)
		}
		buttonLogger := logger.WithField("component", "button")
		if cfg.Button.Mode == configuration.ButtonEdge {
			l.tasks = append(l.tasks, button.NewEdge(in, l.patterns, cfg.Button.Debounce, buttonLogger))
		} else {
			l.tasks = append(l.tasks, button.NewPoller(in, l.patterns, buttonLogger))
		}
	}

	dispatcher := input.Dispatcher{
		Patterns: l.patterns,
		Speeds:   l.speeds,
		Counter:  m.commands,
		Logger:   logger.WithField("component", "commands"),
	}
	if cfg.Console.Enabled {
		l.tasks = append(l.tasks, console.New(&dispatcher, stdin, stdout, status, logger.WithField("component", "console")))
	}
	if cfg.Redis.Addr != "" {
		l.redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		l.tasks = append(l.tasks, remote.New(l.redis, cfg.Redis.CommandChannel, cfg.Redis.StatusChannel, &dispatcher, status, logger.WithField("component", "redis")))
	}

	h := http.NewServeMux()
	routes(h, l.Sequencer)
	l.Handler = h

	if r != nil {
		r.MustRegister(m)
	}
	return &l, nil
}

func buildOutput(cfg configuration.OutputConfiguration, stdout io.Writer) (pattern.Output, error) {
	var outputs output.Multi
	for _, driver := range cfg.Drivers {
		var o pattern.Output
		var err error
		switch driver {
		case configuration.OutputGPIO:
			o, err = output.NewGPIO(cfg.GPIORoot, [pattern.ChannelCount]int(cfg.Lines), cfg.ActiveLow)
		case configuration.OutputLEDs:
			o, err = output.NewLEDs([pattern.ChannelCount]string(cfg.LEDPaths))
		case configuration.OutputTerminal:
			o = output.NewTerminal(stdout)
		default:
			err = fmt.Errorf("invalid output: %s", driver)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", driver, err)
		}
		outputs = append(outputs, o)
	}
	if len(outputs) == 1 {
		return outputs[0], nil
	}
	return outputs, nil
}

// Run runs the sequencer, its input sources and the HTTP server until the context is canceled, or one of them fails
func (l *LEDSequencer) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, t := range l.tasks {
		g.Go(func() error { return t.Run(ctx) })
	}
	if l.cfg.PrometheusAddr != "" {
		runHTTPServer(ctx, l.cfg.PrometheusAddr, l.Handler, g, l.logger.WithField("component", "http"))
	}
	err := g.Wait()
	if l.redis != nil {
		_ = l.redis.Close()
	}
	return err
}
