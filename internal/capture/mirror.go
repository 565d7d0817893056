package capture

import "gocv.io/x/gocv"

// Mirror flips frame around its vertical axis in place, so that the image
// matches what the user sees in a mirror.
func Mirror(frame *gocv.Mat) {
	if frame == nil || frame.Empty() {
		return
	}
	gocv.Flip(*frame, frame, 1)
}
