package gesture

// Stabilizer requires a decision to hold for a number of consecutive frames
// before it fires. After firing the run starts over, so a held gesture
// fires again only after another full run.
//
// With a run length of 1 every non-None decision fires immediately and the
// player's settle delay is the only throttle.
type Stabilizer struct {
	frames int
	last   Decision
	run    int
}

// NewStabilizer creates a Stabilizer that fires after frames consecutive
// identical decisions. Values below 1 are treated as 1.
func NewStabilizer(frames int) *Stabilizer {
	if frames < 1 {
		frames = 1
	}
	return &Stabilizer{frames: frames}
}

// Frames returns the configured run length.
func (s *Stabilizer) Frames() int {
	return s.frames
}

// Observe feeds one frame's decision and reports whether it should be dispatched.
func (s *Stabilizer) Observe(d Decision) bool {
	if d == None {
		s.Reset()
		return false
	}

	if d != s.last {
		s.last = d
		s.run = 0
	}
	s.run++

	if s.run >= s.frames {
		s.run = 0
		return true
	}
	return false
}

// Reset forgets the current run.
func (s *Stabilizer) Reset() {
	s.last = None
	s.run = 0
}
