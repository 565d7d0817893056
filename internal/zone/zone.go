// Package zone splits the camera view into left, center and right control regions.
package zone

import "fmt"

// Boundary fractions of the display width, taken from a 1920 pixel wide layout.
const (
	LeftNumerator  = 555
	RightNumerator = 1365
	LayoutWidth    = 1920

	// ReferenceWidth is the width of the coordinate space landmarks are reported in.
	ReferenceWidth = 640
)

// Region is a horizontal section of the frame.
type Region int

const (
	// Edge is a point lying exactly on a boundary; it belongs to no region.
	Edge Region = iota
	Left
	Center
	Right
)

func (r Region) String() string {
	switch r {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	default:
		return "edge"
	}
}

// Boundaries holds the two vertical lines in reference space. A Boundaries
// value is computed once per session and never changes.
type Boundaries struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// Compute derives the zone boundaries from the display size and rescales
// them into the ReferenceWidth coordinate space. A non-positive width is
// treated as ReferenceWidth.
func Compute(width, height int) Boundaries {
	if width <= 0 {
		width = ReferenceWidth
	}
	w := float64(width)

	leftPx := w * LeftNumerator / LayoutWidth
	rightPx := w * RightNumerator / LayoutWidth

	return Boundaries{
		Left:  leftPx * ReferenceWidth / w,
		Right: rightPx * ReferenceWidth / w,
	}
}

// Region classifies a reference-space x coordinate.
func (b Boundaries) Region(x int) Region {
	fx := float64(x)
	switch {
	case fx < b.Left:
		return Left
	case fx > b.Right:
		return Right
	case fx > b.Left && fx < b.Right:
		return Center
	default:
		return Edge
	}
}

func (b Boundaries) String() string {
	return fmt.Sprintf("left=%.1f right=%.1f", b.Left, b.Right)
}
