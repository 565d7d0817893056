package gesture

import (
	"testing"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/zone"
)

// Normalized palm positions inside each zone of a 640 wide reference frame.
const (
	leftX   = 0.1
	centerX = 0.5
	rightX  = 0.9
)

func observe(hands ...detector.HandLandmarks) *detector.Observation {
	obs := detector.Observe(hands, zone.ReferenceWidth, 480)
	return &obs
}

func newTestClassifier() *Classifier {
	return NewClassifier(zone.Compute(1920, 1080))
}

func TestClassifier_NoHand(t *testing.T) {
	c := newTestClassifier()

	if got := c.Classify(observe()); got != None {
		t.Errorf("expected None for empty observation, got %s", got)
	}
	if got := c.Classify(nil); got != None {
		t.Errorf("expected None for nil observation, got %s", got)
	}
}

func TestClassifier_NonActionableCounts(t *testing.T) {
	c := newTestClassifier()

	states := [][4]bool{
		{true, true, true, false},
		{true, true, false, true},
		{false, true, true, true},
		{true, true, true, true},
	}

	for _, state := range states {
		for _, hand := range []string{"Left", "Right", ""} {
			for _, x := range []float64{leftX, centerX, rightX} {
				obs := observe(detector.SyntheticHand(hand, x, state))
				if got := c.Classify(obs); got != None {
					t.Errorf("state %v hand %q x %.1f: expected None, got %s", state, hand, x, got)
				}
			}
		}
	}
}

func TestClassifier_PlayPause(t *testing.T) {
	c := newTestClassifier()

	t.Run("fist in center fires for any handedness", func(t *testing.T) {
		for _, hand := range []string{"Left", "Right", ""} {
			obs := observe(detector.FistLandmarks(hand, centerX))
			if got := c.Classify(obs); got != PlayPause {
				t.Errorf("hand %q: expected PlayPause, got %s", hand, got)
			}
		}
	})

	t.Run("fist across the center zone", func(t *testing.T) {
		for px := 186; px <= 454; px += 17 {
			obs := observe(detector.FistLandmarks("Right", float64(px)/zone.ReferenceWidth+0.0001))
			if got := c.Classify(obs); got != PlayPause {
				t.Errorf("palm x %d: expected PlayPause, got %s", px, got)
			}
		}
	})

	t.Run("fist outside center does nothing", func(t *testing.T) {
		for _, x := range []float64{leftX, rightX} {
			for _, hand := range []string{"Left", "Right"} {
				obs := observe(detector.FistLandmarks(hand, x))
				if got := c.Classify(obs); got != None {
					t.Errorf("hand %q x %.1f: expected None, got %s", hand, x, got)
				}
			}
		}
	})

	t.Run("fist exactly on a boundary does nothing", func(t *testing.T) {
		obs := observe(detector.FistLandmarks("Left", centerX))
		obs.Landmarks[detector.PalmCenter].X = 185
		if got := c.Classify(obs); got != None {
			t.Errorf("expected None on boundary, got %s", got)
		}
	})

	t.Run("ambiguous handedness still plays", func(t *testing.T) {
		obs := observe(
			detector.FistLandmarks("Left", centerX),
			detector.FistLandmarks("Right", rightX),
		)
		if obs.Handedness != detector.HandUnknown {
			t.Fatalf("expected unknown handedness, got %s", obs.Handedness)
		}
		if got := c.Classify(obs); got != PlayPause {
			t.Errorf("expected PlayPause, got %s", got)
		}
	})
}

func TestClassifier_Seek(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name string
		hand string
		x    float64
		want Decision
	}{
		{"left hand in left zone", "Left", leftX, SeekBackward},
		{"right hand in right zone", "Right", rightX, SeekForward},
		{"right hand in left zone", "Right", leftX, None},
		{"left hand in right zone", "Left", rightX, None},
		{"left hand in center", "Left", centerX, None},
		{"right hand in center", "Right", centerX, None},
		{"unknown hand in left zone", "", leftX, None},
		{"unknown hand in right zone", "", rightX, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := observe(detector.PointLandmarks(tt.hand, tt.x))
			if got := c.Classify(obs); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	t.Run("single raised finger other than index", func(t *testing.T) {
		obs := observe(detector.SyntheticHand("Left", leftX, [4]bool{false, false, false, true}))
		if got := c.Classify(obs); got != None {
			t.Errorf("expected None, got %s", got)
		}
	})

	t.Run("index tip below its knuckle", func(t *testing.T) {
		obs := observe(detector.PointLandmarks("Left", leftX))
		// Raised relative to the middle joint but still under the base knuckle.
		base := obs.Landmarks[detector.IndexMCP].Y
		obs.Landmarks[detector.IndexPIP].Y = base + 20
		obs.Landmarks[detector.IndexTip].Y = base + 10

		ev := c.Evaluate(obs)
		if ev.Count != 1 {
			t.Fatalf("expected count 1, got %d", ev.Count)
		}
		if ev.Decision != None {
			t.Errorf("expected None, got %s", ev.Decision)
		}
	})

	t.Run("zone uses the index tip", func(t *testing.T) {
		// Palm in the center but the fingertip crosses into the right zone.
		obs := observe(detector.PointLandmarks("Right", centerX))
		obs.Landmarks[detector.IndexTip].X = 500

		ev := c.Evaluate(obs)
		if ev.Decision != SeekForward {
			t.Errorf("expected SeekForward, got %s", ev.Decision)
		}
		if ev.X != 500 || ev.Region != zone.Right {
			t.Errorf("expected x 500 in right zone, got %d in %s", ev.X, ev.Region)
		}
	})
}

func TestClassifier_Volume(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name string
		hand string
		x    float64
		want Decision
	}{
		{"left hand in left zone", "Left", leftX, VolumeDown},
		{"right hand in right zone", "Right", rightX, VolumeUp},
		{"right hand in left zone", "Right", leftX, None},
		{"left hand in right zone", "Left", rightX, None},
		{"left hand in center", "Left", centerX, None},
		{"right hand in center", "Right", centerX, None},
		{"unknown hand in right zone", "", rightX, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := observe(detector.VSignLandmarks(tt.hand, tt.x))
			if got := c.Classify(obs); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	t.Run("two raised fingers other than index and middle", func(t *testing.T) {
		obs := observe(detector.SyntheticHand("Right", rightX, [4]bool{false, false, true, true}))
		if got := c.Classify(obs); got != None {
			t.Errorf("expected None, got %s", got)
		}
	})

	t.Run("middle tip below its knuckle", func(t *testing.T) {
		obs := observe(detector.VSignLandmarks("Right", rightX))
		base := obs.Landmarks[detector.MiddleMCP].Y
		obs.Landmarks[detector.MiddlePIP].Y = base + 20
		obs.Landmarks[detector.MiddleTip].Y = base + 10

		if got := c.Classify(obs); got != None {
			t.Errorf("expected None, got %s", got)
		}
	})
}

func TestClassifier_Evaluate(t *testing.T) {
	c := newTestClassifier()
	ev := c.Evaluate(observe(detector.VSignLandmarks("Left", leftX)))

	if !ev.HasHand {
		t.Error("expected HasHand")
	}
	if ev.Count != 2 {
		t.Errorf("expected count 2, got %d", ev.Count)
	}
	if ev.Fingers.String() != "IM--" {
		t.Errorf("expected IM--, got %s", ev.Fingers)
	}
	if ev.Handedness != detector.HandLeft {
		t.Errorf("expected Left, got %s", ev.Handedness)
	}
	if ev.Region != zone.Left {
		t.Errorf("expected left region, got %s", ev.Region)
	}
	if ev.X != 64 {
		t.Errorf("expected palm x 64, got %d", ev.X)
	}
}

func TestDecision_Text(t *testing.T) {
	for _, d := range []Decision{None, PlayPause, VolumeUp, VolumeDown, SeekForward, SeekBackward} {
		parsed, err := ParseDecision(d.String())
		if err != nil {
			t.Fatalf("ParseDecision(%q) error = %v", d, err)
		}
		if parsed != d {
			t.Errorf("ParseDecision(%q) = %s", d, parsed)
		}
	}

	if _, err := ParseDecision("rewind"); err == nil {
		t.Error("expected error for unknown decision")
	}

	var d Decision
	if err := d.UnmarshalText([]byte(" Volume_Up ")); err != nil || d != VolumeUp {
		t.Errorf("UnmarshalText() = %s, %v", d, err)
	}

	if Decision(42).String() != "decision(42)" {
		t.Errorf("unexpected string for out of range decision: %s", Decision(42))
	}
}
