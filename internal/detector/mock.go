package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu       sync.Mutex
	hands    []HandLandmarks
	sequence [][]HandLandmarks
	err      error
	calls    int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
	m.sequence = nil
}

// SetSequence scripts one result per Detect call. Once the sequence is
// exhausted Detect returns no hands.
func (m *MockDetector) SetSequence(seq [][]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence = seq
	m.hands = nil
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.sequence != nil {
		if len(m.sequence) == 0 {
			return nil, nil
		}
		next := m.sequence[0]
		m.sequence = m.sequence[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// fingerColumns is the horizontal offset of each non-thumb finger from the
// palm center, index first.
var fingerColumns = [4]float64{0.03, 0.0, -0.03, -0.055}

// SyntheticHand builds an upright hand in normalized coordinates with its
// palm center at (palmX, 0.6). extended selects which of index, middle,
// ring and pinky point upward; the others are curled into the palm.
func SyntheticHand(handedness string, palmX float64, extended [4]bool) HandLandmarks {
	hand := HandLandmarks{
		Handedness: handedness,
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: palmX, Y: 0.8}

	hand.Points[ThumbCMC] = Point3D{X: palmX + 0.05, Y: 0.75}
	hand.Points[ThumbMCP] = Point3D{X: palmX + 0.07, Y: 0.7}
	hand.Points[ThumbIP] = Point3D{X: palmX + 0.06, Y: 0.66}
	hand.Points[ThumbTip] = Point3D{X: palmX + 0.04, Y: 0.64}

	for f := 0; f < 4; f++ {
		mcp := IndexMCP + f*4
		x := palmX + fingerColumns[f]

		hand.Points[mcp] = Point3D{X: x, Y: 0.6}
		if extended[f] {
			hand.Points[mcp+1] = Point3D{X: x, Y: 0.5}
			hand.Points[mcp+2] = Point3D{X: x, Y: 0.43}
			hand.Points[mcp+3] = Point3D{X: x, Y: 0.36}
		} else {
			hand.Points[mcp+1] = Point3D{X: x, Y: 0.55, Z: -0.05}
			hand.Points[mcp+2] = Point3D{X: x, Y: 0.6, Z: -0.04}
			hand.Points[mcp+3] = Point3D{X: x, Y: 0.63, Z: -0.02}
		}
	}
	// The middle finger column sits on the palm center.
	hand.Points[PalmCenter] = Point3D{X: palmX, Y: 0.6}

	return hand
}

// FistLandmarks returns a closed fist with its palm at palmX.
func FistLandmarks(handedness string, palmX float64) HandLandmarks {
	return SyntheticHand(handedness, palmX, [4]bool{})
}

// PointLandmarks returns a hand with only the index finger raised.
func PointLandmarks(handedness string, palmX float64) HandLandmarks {
	return SyntheticHand(handedness, palmX, [4]bool{true, false, false, false})
}

// VSignLandmarks returns a hand with the index and middle fingers raised.
func VSignLandmarks(handedness string, palmX float64) HandLandmarks {
	return SyntheticHand(handedness, palmX, [4]bool{true, true, false, false})
}

// OpenPalmLandmarks returns a hand with all four fingers raised.
func OpenPalmLandmarks(handedness string, palmX float64) HandLandmarks {
	return SyntheticHand(handedness, palmX, [4]bool{true, true, true, true})
}
