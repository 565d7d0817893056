// Package detector provides hand detection interfaces and types for gesture control.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21

	// PalmCenter is the landmark used as the position of the whole hand.
	PalmCenter = MiddleMCP
)

// Point3D represents a 3D point in space with x, y, z coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
// Coordinates are normalized to [0, 1] relative to the frame.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Handedness is the side of a detected hand from the observer's viewpoint.
type Handedness string

const (
	HandUnknown Handedness = ""
	HandLeft    Handedness = "Left"
	HandRight   Handedness = "Right"
)

// ParseHandedness maps a detector label to a Handedness. Anything other
// than "Left" or "Right" is HandUnknown.
func ParseHandedness(label string) Handedness {
	switch Handedness(label) {
	case HandLeft:
		return HandLeft
	case HandRight:
		return HandRight
	default:
		return HandUnknown
	}
}

func (h Handedness) String() string {
	if h == HandUnknown {
		return "Unknown"
	}
	return string(h)
}

// Landmark is a single hand point in reference-space pixels.
type Landmark struct {
	Index int `json:"index"`
	X     int `json:"x"`
	Y     int `json:"y"`
}

// Observation is the per-frame view of at most one hand that the gesture
// classifier consumes. Landmarks are only meaningful when HasHand is true.
type Observation struct {
	HasHand    bool
	Landmarks  [NumLandmarks]Landmark
	Handedness Handedness
}

// Point returns the landmark at index i.
func (o *Observation) Point(i int) Landmark {
	return o.Landmarks[i]
}

// Observe reduces a detector result to an Observation in a coordinate space
// of refWidth x refHeight pixels.
//
// With no hands the observation is empty. With more than one hand the first
// hand's landmarks are used but the handedness is reported as HandUnknown,
// since it is ambiguous which hand the user meant.
func Observe(hands []HandLandmarks, refWidth, refHeight int) Observation {
	if len(hands) == 0 {
		return Observation{}
	}

	hand := hands[0]
	obs := Observation{
		HasHand:    true,
		Handedness: ParseHandedness(hand.Handedness),
	}
	if len(hands) > 1 {
		obs.Handedness = HandUnknown
	}

	for i := 0; i < NumLandmarks; i++ {
		obs.Landmarks[i] = Landmark{
			Index: i,
			X:     int(hand.Points[i].X * float64(refWidth)),
			Y:     int(hand.Points[i].Y * float64(refHeight)),
		}
	}

	return obs
}
