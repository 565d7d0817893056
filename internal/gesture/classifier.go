package gesture

import (
	"fmt"
	"strings"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/zone"
)

// Decision is the command selected for a single frame.
type Decision int

const (
	None Decision = iota
	PlayPause
	VolumeUp
	VolumeDown
	SeekForward
	SeekBackward
)

var decisionNames = [...]string{
	None:         "none",
	PlayPause:    "play_pause",
	VolumeUp:     "volume_up",
	VolumeDown:   "volume_down",
	SeekForward:  "seek_forward",
	SeekBackward: "seek_backward",
}

func (d Decision) String() string {
	if d < 0 || int(d) >= len(decisionNames) {
		return fmt.Sprintf("decision(%d)", int(d))
	}
	return decisionNames[d]
}

// ParseDecision is the inverse of Decision.String.
func ParseDecision(s string) (Decision, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range decisionNames {
		if name == s {
			return Decision(d), nil
		}
	}
	return None, fmt.Errorf("unknown decision %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decision) UnmarshalText(text []byte) error {
	parsed, err := ParseDecision(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Evaluation is a decision together with the inputs that produced it.
type Evaluation struct {
	Decision   Decision
	HasHand    bool
	Fingers    FingerState
	Count      int
	Handedness detector.Handedness
	// X is the reference-space x coordinate the zone rule was applied to:
	// the index tip for seek gestures, the palm center otherwise.
	X      int
	Region zone.Region
}

// Classifier selects at most one command per frame. It holds only the
// session's zone boundaries and is safe for concurrent use.
type Classifier struct {
	zones zone.Boundaries
}

// NewClassifier creates a Classifier for the given zone boundaries.
func NewClassifier(b zone.Boundaries) *Classifier {
	return &Classifier{zones: b}
}

// Boundaries returns the zone boundaries the classifier was built with.
func (c *Classifier) Boundaries() zone.Boundaries {
	return c.zones
}

// Classify returns the decision for one observation.
func (c *Classifier) Classify(obs *detector.Observation) Decision {
	return c.Evaluate(obs).Decision
}

// Evaluate classifies one observation and reports the intermediate values.
//
// The number of extended fingers picks exactly one gesture family:
//
//	0  fist in the center zone            -> PlayPause (any hand)
//	1  index only, left hand in left zone -> SeekBackward
//	   index only, right hand in right    -> SeekForward
//	2  index+middle, left hand in left    -> VolumeDown
//	   index+middle, right hand in right  -> VolumeUp
//
// Any other count, a hand in the opposite zone, or an unknown handedness
// for the seek and volume families yields None.
func (c *Classifier) Evaluate(obs *detector.Observation) Evaluation {
	if obs == nil || !obs.HasHand {
		return Evaluation{}
	}

	fingers := ExtractFingers(obs)
	ev := Evaluation{
		HasHand:    true,
		Fingers:    fingers,
		Count:      fingers.Count(),
		Handedness: obs.Handedness,
		X:          obs.Landmarks[detector.PalmCenter].X,
	}

	switch ev.Count {
	case 0:
		ev.Region = c.zones.Region(ev.X)
		if ev.Region == zone.Center {
			ev.Decision = PlayPause
		}

	case 1:
		ev.X = obs.Landmarks[detector.IndexTip].X
		ev.Region = c.zones.Region(ev.X)
		if !fingers.Extended(Index) || !tipAboveBase(obs, Index) {
			break
		}
		ev.Decision = sided(ev.Region, obs.Handedness, SeekBackward, SeekForward)

	case 2:
		ev.Region = c.zones.Region(ev.X)
		if !fingers.Extended(Index) || !fingers.Extended(Middle) {
			break
		}
		if !tipAboveBase(obs, Index) || !tipAboveBase(obs, Middle) {
			break
		}
		ev.Decision = sided(ev.Region, obs.Handedness, VolumeDown, VolumeUp)

	default:
		ev.Region = c.zones.Region(ev.X)
	}

	return ev
}

// sided applies the zone/handedness pairing: only a left hand in the left
// zone or a right hand in the right zone triggers.
func sided(r zone.Region, h detector.Handedness, left, right Decision) Decision {
	switch {
	case r == zone.Left && h == detector.HandLeft:
		return left
	case r == zone.Right && h == detector.HandRight:
		return right
	default:
		return None
	}
}
