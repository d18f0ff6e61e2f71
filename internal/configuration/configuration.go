package configuration

import (
	"errors"
	"fmt"
	"time"

	"github.com/clambin/ledsequencer/internal/command"
	"github.com/clambin/ledsequencer/internal/gpio"
	"github.com/clambin/ledsequencer/internal/input"
	"github.com/clambin/ledsequencer/internal/input/button"
	"github.com/clambin/ledsequencer/internal/pattern"
	"gopkg.in/alecthomas/kingpin.v2"
)

// Output drivers
const (
	OutputGPIO     = "gpio"
	OutputLEDs     = "leds"
	OutputTerminal = "terminal"
)

// Button modes
const (
	ButtonPoll = "poll"
	ButtonEdge = "edge"
)

type Configuration struct {
	Debug          bool
	PrometheusAddr string
	Sequencer      SequencerConfiguration
	Output         OutputConfiguration
	Button         ButtonConfiguration
	Console        ConsoleConfiguration
	Redis          RedisConfiguration
}

type SequencerConfiguration struct {
	Pattern       pattern.Selector
	Speed         time.Duration
	ResetOnSwitch bool
	QueueSize     int
}

type OutputConfiguration struct {
	Drivers   []string
	GPIORoot  string
	Lines     []int
	ActiveLow bool
	LEDPaths  []string
}

type ButtonConfiguration struct {
	Enabled  bool
	Line     int
	Mode     string
	Debounce time.Duration
}

type ConsoleConfiguration struct {
	Enabled bool
}

// RedisConfiguration configures the remote command source. It is disabled if Addr is blank.
type RedisConfiguration struct {
	Addr           string
	CommandChannel string
	StatusChannel  string
}

// Parse parses the command line arguments (without the program name) into a Configuration
func Parse(name, version string, args []string) (Configuration, error) {
	var cfg Configuration
	var patternName string
	var speed int

	a := kingpin.New(name, "LED pattern sequencer")
	a.Version(version)
	a.HelpFlag.Short('h')
	a.Flag("debug", "Log debug messages").Short('d').Default("false").BoolVar(&cfg.Debug)
	a.Flag("prometheus", "Prometheus metrics listener address (blank: disabled)").Default(":9090").StringVar(&cfg.PrometheusAddr)

	a.Flag("pattern", "Initial pattern (sweep, blink-all, alternate, random or 0-3)").Default("sweep").StringVar(&patternName)
	a.Flag("speed", fmt.Sprintf("Initial step interval in ms (%d-%d)", input.MinSpeed, input.MaxSpeed)).Default("400").IntVar(&speed)
	a.Flag("reset-on-switch", "Restart a pattern from its first step when it is selected").Default("false").BoolVar(&cfg.Sequencer.ResetOnSwitch)
	a.Flag("queue-size", "Capacity of the pattern and speed command queues").Default("10").IntVar(&cfg.Sequencer.QueueSize)

	a.Flag("output", "Output driver (gpio, leds, terminal). May be repeated").Default(OutputGPIO).EnumsVar(&cfg.Output.Drivers, OutputGPIO, OutputLEDs, OutputTerminal)
	a.Flag("gpio-root", "Location of the sysfs GPIO interface").Default(gpio.DefaultRoot).StringVar(&cfg.Output.GPIORoot)
	a.Flag("led", "GPIO line of an LED. Must be given once per LED").Default("4", "16", "17", "5").IntsVar(&cfg.Output.Lines)
	a.Flag("active-low", "LEDs are on when their GPIO line is low").Default("true").BoolVar(&cfg.Output.ActiveLow)
	a.Flag("led-path", "sysfs directory of an LED (leds output). Must be given once per LED").
		Default("/sys/class/leds/led0", "/sys/class/leds/led1", "/sys/class/leds/led2", "/sys/class/leds/led3").StringsVar(&cfg.Output.LEDPaths)

	a.Flag("button", "Read the pattern button").Default("true").BoolVar(&cfg.Button.Enabled)
	a.Flag("button-line", "GPIO line of the pattern button").Default("15").IntVar(&cfg.Button.Line)
	a.Flag("button-mode", "How to read the button (poll, edge)").Default(ButtonPoll).EnumVar(&cfg.Button.Mode, ButtonPoll, ButtonEdge)
	a.Flag("debounce", "Debounce interval of the button in edge mode").Default(button.DefaultDebounce.String()).DurationVar(&cfg.Button.Debounce)

	a.Flag("console", "Read commands from stdin").Default("true").BoolVar(&cfg.Console.Enabled)

	a.Flag("redis", "Redis address to receive commands from (blank: disabled)").Default("").StringVar(&cfg.Redis.Addr)
	a.Flag("redis-command-channel", "Redis channel to receive commands from").Default("ledsequencer.command").StringVar(&cfg.Redis.CommandChannel)
	a.Flag("redis-status-channel", "Redis channel to publish status replies to").Default("ledsequencer.status").StringVar(&cfg.Redis.StatusChannel)

	if _, err := a.Parse(args); err != nil {
		return cfg, err
	}

	var err error
	if cfg.Sequencer.Pattern, err = pattern.ParseSelector(patternName); err != nil {
		return cfg, err
	}
	cfg.Sequencer.Speed = time.Duration(speed) * time.Millisecond
	return cfg, cfg.Validate()
}

// Validate checks that the Configuration is usable
func (c Configuration) Validate() error {
	var err error
	if !c.Sequencer.Pattern.Valid() {
		err = errors.Join(err, fmt.Errorf("invalid pattern: %d", c.Sequencer.Pattern))
	}
	if ms := c.Sequencer.Speed.Milliseconds(); ms < input.MinSpeed || ms > input.MaxSpeed {
		err = errors.Join(err, fmt.Errorf("speed must be between %d and %d ms: %d", input.MinSpeed, input.MaxSpeed, ms))
	}
	if c.Sequencer.QueueSize < 1 {
		err = errors.Join(err, fmt.Errorf("queue size must be at least 1: %d", c.Sequencer.QueueSize))
	}
	if len(c.Output.Drivers) == 0 {
		err = errors.Join(err, errors.New("no output configured"))
	}
	for _, driver := range c.Output.Drivers {
		switch driver {
		case OutputGPIO:
			if len(c.Output.Lines) != pattern.ChannelCount {
				err = errors.Join(err, fmt.Errorf("gpio output needs %d lines: %v", pattern.ChannelCount, c.Output.Lines))
			}
		case OutputLEDs:
			if len(c.Output.LEDPaths) != pattern.ChannelCount {
				err = errors.Join(err, fmt.Errorf("leds output needs %d paths: %v", pattern.ChannelCount, c.Output.LEDPaths))
			}
		case OutputTerminal:
		default:
			err = errors.Join(err, fmt.Errorf("invalid output: %s", driver))
		}
	}
	if c.Button.Enabled {
		if c.Button.Mode != ButtonPoll && c.Button.Mode != ButtonEdge {
			err = errors.Join(err, fmt.Errorf("invalid button mode: %s", c.Button.Mode))
		}
		if c.Button.Mode == ButtonEdge && c.Button.Debounce <= 0 {
			err = errors.Join(err, fmt.Errorf("debounce must be positive: %s", c.Button.Debounce))
		}
	}
	return err
}

// Capacity returns the capacity of the command queues
func (c SequencerConfiguration) Capacity() int {
	if c.QueueSize < 1 {
		return command.DefaultCapacity
	}
	return c.QueueSize
}
