package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/keilerkonzept/sortvis/internal/event"
	"github.com/keilerkonzept/sortvis/internal/list"
	"github.com/keilerkonzept/sortvis/internal/render"
)

func TestPauseGate(t *testing.T) {
	g := newPauseGate()
	if !g.toggle() {
		t.Fatal("toggle should pause")
	}

	done := make(chan struct{})
	go func() {
		g.wait()
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("wait returned while paused")
	case <-time.After(50 * time.Millisecond):
	}

	if g.toggle() {
		t.Fatal("second toggle should resume")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait did not return after resume")
	}
}

func TestPauseGateRelease(t *testing.T) {
	g := newPauseGate()
	g.toggle()

	done := make(chan struct{})
	go func() {
		g.wait()
		close(done)
	}()
	g.release()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait did not return after release")
	}

	if g.toggle() || g.isPaused() {
		t.Error("a released gate must stay open")
	}
	g.wait()
}

func TestTermWindowPresent(t *testing.T) {
	w := newTermWindow()
	if !w.IsOpen() {
		t.Fatal("new window should be open")
	}
	if _, _, ok := w.latest(0); ok {
		t.Fatal("latest should report nothing before the first present")
	}

	fb := render.NewFrameBuffer(3, 2, 1)
	if err := w.Present(fb); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	fb.Fill(2)

	got, seq, ok := w.latest(0)
	if !ok || seq != 1 {
		t.Fatalf("latest(0) = _, %d, %v", seq, ok)
	}
	if got.At(0, 0) != 1 {
		t.Errorf("window kept a reference to the loop's buffer: pixel = %v", got.At(0, 0))
	}
	if _, _, ok := w.latest(seq); ok {
		t.Error("latest should report nothing new for the same sequence")
	}

	w.close()
	if w.IsOpen() {
		t.Error("closed window reports open")
	}
	if err := w.Present(fb); !errors.Is(err, render.ErrWindowClosed) {
		t.Errorf("Present after close = %v, want ErrWindowClosed", err)
	}
}

func TestFrameRenderer(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantLines     int
	}{
		{"even", 4, 4, 2},
		{"odd", 5, 3, 2},
		{"single row", 2, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := render.NewFrameBuffer(tt.width, tt.height, render.DefaultPalette.Background)
			fb.Pix[0] = render.DefaultPalette.Idle

			lines := strings.Split(newFrameRenderer().render(fb), "\n")
			if len(lines) != tt.wantLines {
				t.Fatalf("got %d lines, want %d", len(lines), tt.wantLines)
			}
			for i, line := range lines {
				if n := strings.Count(line, "▀"); n != tt.width {
					t.Errorf("line %d has %d cells, want %d", i, n, tt.width)
				}
			}
		})
	}

	if got := newFrameRenderer().render(nil); got != "" {
		t.Errorf("render(nil) = %q", got)
	}
}

func TestHotIndicesRanking(t *testing.T) {
	h := newHotIndices(3, 10*time.Second, time.Second, time.Hour, 0)

	for range 5 {
		h.observe(list.Swap[uint32](1, 2))
	}
	h.observe(list.Compare[uint32](3, 4))
	h.observe(list.Get[uint32](7))
	h.observe(list.Get[uint32](7))

	now := time.Now()
	items, full := h.top(now)
	if !full {
		t.Error("first ranking should be a full re-rank")
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(items), items)
	}
	top2 := map[string]bool{items[0].Item: true, items[1].Item: true}
	if !top2["1"] || !top2["2"] {
		t.Errorf("expected indices 1 and 2 on top, got %+v", items)
	}
	if items[0].Count != 5 || items[1].Count != 5 {
		t.Errorf("expected 5 touches each, got %+v", items[:2])
	}
	if items[2].Item != "7" || items[2].Count != 2 {
		t.Errorf("expected index 7 third with 2 touches, got %+v", items[2])
	}

	for range 10 {
		h.observe(list.Set[uint32](7, 0))
	}
	items, full = h.top(now.Add(time.Second))
	if full {
		t.Error("expected a partial refresh within fullRefresh")
	}
	if items[0].Item != "7" || items[0].Count != 12 {
		t.Errorf("partial refresh did not re-sort: %+v", items)
	}
}

func TestDurationRing(t *testing.T) {
	r := newDurationRing(3)
	if st := r.snapshot(); st.n != 0 {
		t.Fatalf("empty ring snapshot = %+v", st)
	}
	for _, d := range []time.Duration{1, 2, 3, 10} {
		r.add(d * time.Millisecond)
	}
	st := r.snapshot()
	if st.n != 3 || st.last != 10*time.Millisecond || st.max != 10*time.Millisecond {
		t.Errorf("snapshot = %+v", st)
	}
	if st.avg != 5*time.Millisecond {
		t.Errorf("avg = %s, want 5ms", st.avg)
	}
}

func TestRunMetrics(t *testing.T) {
	m := newRunMetrics(16)
	m.setEnabled(true)

	batch := event.Batch[uint32]{{Index: 0, Color: event.Read}, {Index: 1, Color: event.Read}}
	m.observeOp(list.Compare[uint32](0, 1), batch)
	m.observeOp(list.Swap[uint32](0, 1), batch)
	m.observeOp(list.Get[uint32](2), batch[:1])
	m.observeOp(list.Set[uint32](2, 5), batch[:1])
	m.observeTick(render.TickStats{Elapsed: time.Millisecond, Applied: 2})
	m.observeTick(render.TickStats{Elapsed: 3 * time.Millisecond, Drained: true})

	s := m.snapshot()
	if s.reads != 2 || s.writes != 2 || s.compares != 1 || s.swaps != 1 {
		t.Errorf("operation counters = %+v", s)
	}
	if s.updates != 6 {
		t.Errorf("updates = %d, want 6", s.updates)
	}
	if s.frames != 2 || s.busy != 1 || !s.drained {
		t.Errorf("frame counters = %+v", s)
	}
	if s.frame.max != 3*time.Millisecond || s.frame.avg != 2*time.Millisecond {
		t.Errorf("frame stats = %+v", s.frame)
	}

	m.setEnabled(false)
	if s := m.snapshot(); s.reads != 0 || s.frames != 0 {
		t.Errorf("disabled metrics should report nothing, got %+v", s)
	}
}
