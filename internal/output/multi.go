package output

import (
	"errors"

	"github.com/clambin/ledsequencer/internal/pattern"
)

var _ pattern.Output = Multi{}

// Multi writes each batch to all of its outputs
type Multi []pattern.Output

func (m Multi) Set(levels pattern.Levels) error {
	var err error
	for _, o := range m {
		err = errors.Join(err, o.Set(levels))
	}
	return err
}
