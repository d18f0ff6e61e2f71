package gpio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultRoot is the location of the sysfs GPIO interface
const DefaultRoot = "/sys/class/gpio"

// Direction of a GPIO line
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// exporting a line creates its directory asynchronously: retry setting the direction for a while
var (
	exportRetries = 10
	exportDelay   = 10 * time.Millisecond
)

// Line is a GPIO line, accessed through sysfs
type Line struct {
	number    int
	valuePath string
}

// Open exports the GPIO line if needed and sets its direction
func Open(root string, number int, direction Direction) (*Line, error) {
	dir := filepath.Join(root, "gpio"+strconv.Itoa(number))
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		if err = os.WriteFile(filepath.Join(root, "export"), []byte(strconv.Itoa(number)), 0200); err != nil {
			return nil, fmt.Errorf("export gpio%d: %w", number, err)
		}
	}

	var err error
	for range exportRetries {
		if err = os.WriteFile(filepath.Join(dir, "direction"), []byte(direction), 0644); err == nil {
			return &Line{number: number, valuePath: filepath.Join(dir, "value")}, nil
		}
		time.Sleep(exportDelay)
	}
	return nil, fmt.Errorf("set gpio%d direction: %w", number, err)
}

// Number returns the line's number
func (l *Line) Number() int {
	return l.number
}

// Read returns true if the line is high
func (l *Line) Read() (bool, error) {
	content, err := os.ReadFile(l.valuePath)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(content)) == "1", nil
}

// Write sets the line high (true) or low (false)
func (l *Line) Write(high bool) error {
	data := "0"
	if high {
		data = "1"
	}
	return os.WriteFile(l.valuePath, []byte(data), 0644)
}
