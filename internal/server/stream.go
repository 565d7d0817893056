package server

import (
	"fmt"
	"net/http"
	"sync"

	"gocv.io/x/gocv"
)

// FrameHub fans the session's frames out to MJPEG viewers. Frames are only
// JPEG-encoded while at least one viewer is connected.
type FrameHub struct {
	mu      sync.Mutex
	viewers int
	jpeg    []byte
	seq     uint64
	updated chan struct{}
}

// NewFrameHub creates an empty FrameHub.
func NewFrameHub() *FrameHub {
	return &FrameHub{updated: make(chan struct{})}
}

// Publish encodes frame for connected viewers. It is safe to pass as the
// session's frame callback.
func (h *FrameHub) Publish(frame *gocv.Mat) {
	if frame == nil || frame.Empty() || h.Viewers() == 0 {
		return
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		return
	}
	defer buf.Close()

	h.PublishJPEG(append([]byte(nil), buf.GetBytes()...))
}

// PublishJPEG hands an already encoded frame to viewers.
func (h *FrameHub) PublishJPEG(jpeg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.jpeg = jpeg
	h.seq++
	close(h.updated)
	h.updated = make(chan struct{})
}

// Viewers returns the number of connected stream clients.
func (h *FrameHub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewers
}

func (h *FrameHub) next(after uint64) ([]byte, uint64, <-chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.seq > after {
		return h.jpeg, h.seq, nil
	}
	return nil, after, h.updated
}

// ServeHTTP streams the latest frames as multipart MJPEG until the client
// goes away.
func (h *FrameHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	h.mu.Lock()
	h.viewers++
	seen := h.seq
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.viewers--
		h.mu.Unlock()
	}()

	for {
		jpeg, seq, wait := h.next(seen)
		if wait != nil {
			select {
			case <-r.Context().Done():
				return
			case <-wait:
				continue
			}
		}
		seen = seq

		fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(jpeg))
		if _, err := w.Write(jpeg); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}
