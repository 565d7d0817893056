// Package gesture turns hand observations into media control decisions.
package gesture

import "github.com/ayusman/mudra/internal/detector"

// Finger identifies one of the four non-thumb fingers.
type Finger int

const (
	Index Finger = iota
	Middle
	Ring
	Pinky
)

// fingerTips maps each Finger to its tip landmark.
var fingerTips = [4]int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}

// FingerState records which of index, middle, ring and pinky are extended.
type FingerState [4]bool

// Extended reports whether f is extended.
func (s FingerState) Extended(f Finger) bool {
	return s[f]
}

// Count returns the number of extended fingers (0-4).
func (s FingerState) Count() int {
	n := 0
	for _, up := range s {
		if up {
			n++
		}
	}
	return n
}

func (s FingerState) String() string {
	b := []byte("----")
	for i, c := range "IMRP" {
		if s[i] {
			b[i] = byte(c)
		}
	}
	return string(b)
}

// ExtractFingers applies the curl heuristic: a finger is extended when its
// tip sits higher in the image than the joint two landmarks below it. It
// assumes an upright hand.
//
// The observation must contain a hand; calling it with HasHand=false
// yields a meaningless result.
func ExtractFingers(obs *detector.Observation) FingerState {
	var s FingerState
	for i, tip := range fingerTips {
		s[i] = obs.Landmarks[tip].Y < obs.Landmarks[tip-2].Y
	}
	return s
}

// tipAboveBase reports whether a finger's tip is above its MCP knuckle.
func tipAboveBase(obs *detector.Observation, f Finger) bool {
	tip := fingerTips[f]
	return obs.Landmarks[tip].Y < obs.Landmarks[tip-3].Y
}
