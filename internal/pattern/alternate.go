package pattern

// AlternatePattern switches between the first and the second pair of channels
type AlternatePattern struct {
	swapped bool
}

var _ Pattern = &AlternatePattern{}

// Next returns the next pattern
func (a *AlternatePattern) Next() Levels {
	first := !a.swapped
	a.swapped = !a.swapped
	return Levels{first, first, !first, !first}
}

func (a *AlternatePattern) Reset() {
	a.swapped = false
}
