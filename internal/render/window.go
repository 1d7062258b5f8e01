package render

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrWindowClosed is returned by Present once the window has been closed.
var ErrWindowClosed = errors.New("render: window closed")

// Window is where finished frames are shown. Present must copy what it needs
// from fb before returning; the loop keeps painting into the same buffer.
type Window interface {
	IsOpen() bool
	Present(fb *FrameBuffer) error
}

// HeadlessWindow shows nothing. It keeps the last presented frame so a run
// can be inspected without a terminal.
type HeadlessWindow struct {
	mu     sync.Mutex
	last   *FrameBuffer
	frames atomic.Uint64
	closed atomic.Bool
}

func NewHeadlessWindow() *HeadlessWindow {
	return &HeadlessWindow{}
}

func (w *HeadlessWindow) IsOpen() bool { return !w.closed.Load() }

func (w *HeadlessWindow) Present(fb *FrameBuffer) error {
	if w.closed.Load() {
		return ErrWindowClosed
	}
	w.mu.Lock()
	if w.last == nil || len(w.last.Pix) != len(fb.Pix) {
		w.last = fb.Clone()
	} else {
		w.last.CopyFrom(fb)
	}
	w.mu.Unlock()
	w.frames.Add(1)
	return nil
}

// Close makes IsOpen report false and further presents fail.
func (w *HeadlessWindow) Close() { w.closed.Store(true) }

// Frames returns the number of successful presents.
func (w *HeadlessWindow) Frames() uint64 { return w.frames.Load() }

// Last returns a copy of the most recently presented frame, or nil.
func (w *HeadlessWindow) Last() *FrameBuffer {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return nil
	}
	return w.last.Clone()
}
