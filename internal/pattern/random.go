package pattern

import (
	"math/rand/v2"
)

// RandomPattern sets each channel to a random level. If Rand is nil, the global source is used.
type RandomPattern struct {
	Rand *rand.Rand
}

var _ Pattern = &RandomPattern{}

// Next returns the next pattern
func (r *RandomPattern) Next() Levels {
	var next Levels
	for i := range next {
		next[i] = r.intN(2) == 1
	}
	return next
}

// Reset is a no-op: the random pattern has no state
func (r *RandomPattern) Reset() {}

func (r *RandomPattern) intN(n int) int {
	if r.Rand == nil {
		return rand.IntN(n)
	}
	return r.Rand.IntN(n)
}
