package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Value ranges accepted by Parse
const (
	MinPattern = 0
	MaxPattern = 3
	MinSpeed   = 50
	MaxSpeed   = 1000
)

var (
	ErrEmpty          = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidValue   = errors.New("invalid value")
	ErrOutOfRange     = errors.New("value out of range")
)

// Kind identifies a command
type Kind int

const (
	KindPattern Kind = iota
	KindSpeed
	KindStatus
)

var kindNames = map[Kind]string{
	KindPattern: "pattern",
	KindSpeed:   "speed",
	KindStatus:  "status",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a parsed command line
type Command struct {
	Kind  Kind
	Value int
}

func (c Command) String() string {
	if c.Kind == KindStatus {
		return c.Kind.String()
	}
	return c.Kind.String() + " " + strconv.Itoa(c.Value)
}

// Parse parses one command line: a command name, optionally followed by an integer value, separated by whitespace.
// Any further fields are ignored. Values outside their allowed range are rejected.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmpty
	}

	switch fields[0] {
	case "status":
		return Command{Kind: KindStatus}, nil
	case "pattern":
		return parseValue(KindPattern, fields, MinPattern, MaxPattern)
	case "speed":
		return parseValue(KindSpeed, fields, MinSpeed, MaxSpeed)
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
}

func parseValue(kind Kind, fields []string, low, high int) (Command, error) {
	if len(fields) < 2 {
		return Command{}, fmt.Errorf("%w: %s: missing value", ErrInvalidValue, kind)
	}
	value, err := strconv.Atoi(fields[1])
	if err != nil {
		return Command{}, fmt.Errorf("%w: %s: %q", ErrInvalidValue, kind, fields[1])
	}
	if value < low || value > high {
		return Command{}, fmt.Errorf("%w: %s: %d not in [%d,%d]", ErrOutOfRange, kind, value, low, high)
	}
	return Command{Kind: kind, Value: value}, nil
}
