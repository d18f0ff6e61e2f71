package pattern

// BlinkAllPattern switches all channels on and off together, starting with all on
type BlinkAllPattern struct {
	off bool
}

var _ Pattern = &BlinkAllPattern{}

// Next returns the next pattern
func (b *BlinkAllPattern) Next() Levels {
	var next Levels
	for i := range next {
		next[i] = !b.off
	}
	b.off = !b.off
	return next
}

func (b *BlinkAllPattern) Reset() {
	b.off = false
}
