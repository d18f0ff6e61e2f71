package pattern

// SweepPattern moves the active channel from the first to the last channel, then back again
// (i.e. the Knight Rider pattern :-))
type SweepPattern struct {
	position  int
	direction int
}

var _ Pattern = &SweepPattern{}

// Next returns the next pattern
func (s *SweepPattern) Next() Levels {
	if s.direction == 0 {
		s.direction = 1
	}
	var next Levels
	next[s.position] = true

	s.position += s.direction
	if s.position == 0 || s.position == ChannelCount-1 {
		s.direction = -s.direction
	}
	return next
}

func (s *SweepPattern) Reset() {
	s.position = 0
	s.direction = 1
}
