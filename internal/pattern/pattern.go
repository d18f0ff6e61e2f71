package pattern

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ChannelCount is the number of output channels driven by a pattern
const ChannelCount = 4

// Levels holds the state of each output channel. true switches the channel on.
type Levels [ChannelCount]bool

// String returns the levels as a string of 1s and 0s, first channel first
func (l Levels) String() string {
	var output strings.Builder
	for _, on := range l {
		if on {
			output.WriteByte('1')
		} else {
			output.WriteByte('0')
		}
	}
	return output.String()
}

// Selector identifies one of the supported patterns
type Selector int

const (
	Sweep Selector = iota
	BlinkAll
	Alternate
	Random
)

var selectorNames = [...]string{"sweep", "blink-all", "alternate", "random"}

// Valid returns true if the Selector refers to a supported pattern
func (s Selector) Valid() bool {
	return s >= 0 && int(s) < len(selectorNames)
}

func (s Selector) String() string {
	if !s.Valid() {
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
	return selectorNames[s]
}

// ParseSelector accepts a pattern name or its index
func ParseSelector(value string) (Selector, error) {
	for i, name := range selectorNames {
		if value == name {
			return Selector(i), nil
		}
	}
	if index, err := strconv.Atoi(value); err == nil && Selector(index).Valid() {
		return Selector(index), nil
	}
	return 0, fmt.Errorf("invalid pattern: %q", value)
}

// Pattern computes the output levels of a visual pattern, one step at a time
type Pattern interface {
	// Next returns the levels for the current step and advances the pattern's state
	Next() Levels
	// Reset returns the pattern to its first step
	Reset()
}

// New creates the Pattern for the provided Selector. r is only used by the random pattern.
func New(s Selector, r *rand.Rand) (Pattern, error) {
	var p Pattern
	switch s {
	case Sweep:
		p = &SweepPattern{}
	case BlinkAll:
		p = &BlinkAllPattern{}
	case Alternate:
		p = &AlternatePattern{}
	case Random:
		p = &RandomPattern{Rand: r}
	default:
		return nil, fmt.Errorf("invalid pattern: %s", s)
	}
	return p, nil
}
