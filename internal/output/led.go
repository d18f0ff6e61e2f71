package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/clambin/ledsequencer/internal/pattern"
)

// LED is an LED class device in sysfs (e.g. /sys/class/leds/led0)
type LED struct {
	brightnessPath string
	triggerPath    string
	maxBrightness  int
}

// NewLED opens the LED at path and switches it to manual mode, so the kernel doesn't drive it
func NewLED(path string) (*LED, error) {
	l := LED{
		brightnessPath: filepath.Join(path, "brightness"),
		triggerPath:    filepath.Join(path, "trigger"),
		maxBrightness:  1,
	}
	if content, err := os.ReadFile(filepath.Join(path, "max_brightness")); err == nil {
		if value, err := strconv.Atoi(strings.TrimSpace(string(content))); err == nil && value > 0 {
			l.maxBrightness = value
		}
	}
	if err := l.SetActiveMode("none"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &l, nil
}

// Set switches the LED on or off
func (l *LED) Set(on bool) error {
	if on {
		return l.SetBrightness(l.maxBrightness)
	}
	return l.SetBrightness(0)
}

func (l *LED) GetBrightness() (int, error) {
	content, err := os.ReadFile(l.brightnessPath)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(content)))
}

func (l *LED) SetBrightness(value int) error {
	return os.WriteFile(l.brightnessPath, []byte(strconv.Itoa(value)), 0644)
}

// GetModes returns all supported trigger modes
func (l *LED) GetModes() ([]string, error) {
	content, err := os.ReadFile(l.triggerPath)
	if err != nil {
		return nil, err
	}
	modes := strings.Fields(string(content))
	for i := range modes {
		modes[i] = strings.TrimSuffix(strings.TrimPrefix(modes[i], "["), "]")
	}
	return modes, nil
}

var triggerRegExp = regexp.MustCompile(`\[(.+?)]`)

// GetActiveMode returns the current trigger mode
func (l *LED) GetActiveMode() (string, error) {
	content, err := os.ReadFile(l.triggerPath)
	if err != nil {
		return "", err
	}
	if matches := triggerRegExp.FindSubmatch(content); matches != nil {
		return string(matches[1]), nil
	}
	return "", nil
}

// SetActiveMode sets the trigger mode. The mode must be one of the supported modes.
func (l *LED) SetActiveMode(mode string) error {
	active, err := l.GetActiveMode()
	if err != nil {
		return err
	}
	if active == mode {
		return nil
	}
	modes, err := l.GetModes()
	if err != nil {
		return err
	}
	for _, m := range modes {
		if m == mode {
			return os.WriteFile(l.triggerPath, []byte(mode), 0644)
		}
	}
	return fmt.Errorf("invalid mode: %s", mode)
}

var _ pattern.Output = &LEDs{}

// LEDs drives one sysfs LED per output channel
type LEDs [pattern.ChannelCount]*LED

// NewLEDs opens the LEDs at the provided sysfs paths
func NewLEDs(paths [pattern.ChannelCount]string) (*LEDs, error) {
	var leds LEDs
	for i, path := range paths {
		led, err := NewLED(path)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}
		leds[i] = led
	}
	return &leds, nil
}

func (l *LEDs) Set(levels pattern.Levels) error {
	var err error
	for i, on := range levels {
		if ledErr := l[i].Set(on); ledErr != nil {
			err = errors.Join(err, fmt.Errorf("channel %d: %w", i, ledErr))
		}
	}
	return err
}
