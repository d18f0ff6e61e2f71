package ledsequencer

import (
	"github.com/clambin/ledsequencer/internal/pattern"
	"github.com/clambin/ledsequencer/internal/sequencer"
	"github.com/prometheus/client_golang/prometheus"
)

var _ prometheus.Collector = &metrics{}

type queueStats interface {
	Name() string
	Len() int
	Dropped() uint64
}

type metrics struct {
	commands     *prometheus.CounterVec
	outputErrors prometheus.Counter
	status       func() sequencer.Status
	queues       []queueStats

	stepsDesc    *prometheus.Desc
	patternDesc  *prometheus.Desc
	intervalDesc *prometheus.Desc
	queuedDesc   *prometheus.Desc
	droppedDesc  *prometheus.Desc
}

func newMetrics(status func() sequencer.Status, queues ...queueStats) *metrics {
	return &metrics{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledsequencer_commands_total",
				Help: "Number of commands received, by source, command and result.",
			},
			[]string{"source", "command", "result"},
		),
		outputErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ledsequencer_output_errors_total",
				Help: "Number of output writes that failed.",
			},
		),
		status: status,
		queues: queues,
		stepsDesc: prometheus.NewDesc(
			"ledsequencer_steps_total",
			"Number of pattern steps performed.",
			nil, nil,
		),
		patternDesc: prometheus.NewDesc(
			"ledsequencer_pattern",
			"Selected pattern.",
			[]string{"name"}, nil,
		),
		intervalDesc: prometheus.NewDesc(
			"ledsequencer_step_interval_seconds",
			"Interval between two pattern steps.",
			nil, nil,
		),
		queuedDesc: prometheus.NewDesc(
			"ledsequencer_queue_length",
			"Number of commands waiting in a queue.",
			[]string{"queue"}, nil,
		),
		droppedDesc: prometheus.NewDesc(
			"ledsequencer_queue_dropped_total",
			"Number of commands dropped because the queue was full.",
			[]string{"queue"}, nil,
		),
	}
}

func (m *metrics) Describe(ch chan<- *prometheus.Desc) {
	m.commands.Describe(ch)
	m.outputErrors.Describe(ch)
	ch <- m.stepsDesc
	ch <- m.patternDesc
	ch <- m.intervalDesc
	ch <- m.queuedDesc
	ch <- m.droppedDesc
}

func (m *metrics) Collect(ch chan<- prometheus.Metric) {
	m.commands.Collect(ch)
	m.outputErrors.Collect(ch)
	status := m.status()
	ch <- prometheus.MustNewConstMetric(m.stepsDesc, prometheus.CounterValue, float64(status.Steps))
	ch <- prometheus.MustNewConstMetric(m.patternDesc, prometheus.GaugeValue, float64(status.Pattern), status.Pattern.String())
	ch <- prometheus.MustNewConstMetric(m.intervalDesc, prometheus.GaugeValue, status.Interval.Seconds())
	for _, q := range m.queues {
		ch <- prometheus.MustNewConstMetric(m.queuedDesc, prometheus.GaugeValue, float64(q.Len()), q.Name())
		ch <- prometheus.MustNewConstMetric(m.droppedDesc, prometheus.CounterValue, float64(q.Dropped()), q.Name())
	}
}

// OutputMiddleware counts the failed writes to the next Output
func (m *metrics) OutputMiddleware(next pattern.Output) pattern.Output {
	return outputFunc(func(levels pattern.Levels) error {
		err := next.Set(levels)
		if err != nil {
			m.outputErrors.Inc()
		}
		return err
	})
}

type outputFunc func(pattern.Levels) error

func (f outputFunc) Set(levels pattern.Levels) error {
	return f(levels)
}
