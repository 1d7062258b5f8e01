package main

import (
	"sync/atomic"
	"time"

	"github.com/keilerkonzept/sortvis/internal/event"
	"github.com/keilerkonzept/sortvis/internal/list"
	"github.com/keilerkonzept/sortvis/internal/render"
)

type durationRing struct {
	buf   []time.Duration
	idx   int
	count int
}

func newDurationRing(n int) *durationRing {
	if n < 1 {
		n = 1
	}
	return &durationRing{buf: make([]time.Duration, n)}
}

func (r *durationRing) add(d time.Duration) {
	r.buf[r.idx] = d
	r.idx = (r.idx + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

type durationStats struct {
	last time.Duration
	max  time.Duration
	avg  time.Duration
	n    int
}

func (r *durationRing) snapshot() durationStats {
	if r.count == 0 {
		return durationStats{}
	}
	var sum, longest time.Duration
	for _, d := range r.buf[:r.count] {
		sum += d
		longest = max(longest, d)
	}
	lastIdx := r.idx - 1
	if lastIdx < 0 {
		lastIdx = len(r.buf) - 1
	}
	return durationStats{
		last: r.buf[lastIdx],
		max:  longest,
		avg:  sum / time.Duration(r.count),
		n:    r.count,
	}
}

// runMetrics is written by the sorting goroutine (operations) and the render
// loop (frames) and read by the stats pane.
type runMetrics struct {
	enabled atomic.Bool

	startedNs atomic.Int64
	gets      atomic.Uint64
	sets      atomic.Uint64
	compares  atomic.Uint64
	swaps     atomic.Uint64
	updates   atomic.Uint64

	frames        atomic.Uint64
	appliedFrames atomic.Uint64
	drained       atomic.Bool

	// ring belongs to the render loop; readers see the published frameTimes.
	frameTimes atomic.Pointer[durationStats]
	ring       *durationRing
}

func newRunMetrics(window int) *runMetrics {
	m := &runMetrics{ring: newDurationRing(window)}
	m.startedNs.Store(time.Now().UnixNano())
	m.frameTimes.Store(&durationStats{})
	return m
}

func (m *runMetrics) setEnabled(v bool) { m.enabled.Store(v) }
func (m *runMetrics) isEnabled() bool   { return m.enabled.Load() }

// observeOp is a player tap: it runs on the sorting goroutine.
func (m *runMetrics) observeOp(op list.Operation[uint32], batch event.Batch[uint32]) {
	if !m.isEnabled() {
		return
	}
	switch op.Kind {
	case list.OpGet:
		m.gets.Add(1)
	case list.OpSet:
		m.sets.Add(1)
	case list.OpCompare:
		m.compares.Add(1)
	case list.OpSwap:
		m.swaps.Add(1)
	}
	m.updates.Add(uint64(len(batch)))
}

// observeTick runs on the render loop goroutine, the only writer of ring.
func (m *runMetrics) observeTick(s render.TickStats) {
	m.frames.Add(1)
	if s.Applied > 0 {
		m.appliedFrames.Add(1)
	}
	m.drained.Store(s.Drained)
	if !m.isEnabled() {
		return
	}
	m.ring.add(s.Elapsed)
	st := m.ring.snapshot()
	m.frameTimes.Store(&st)
}

type snapshot struct {
	elapsed  time.Duration
	reads    uint64
	writes   uint64
	compares uint64
	swaps    uint64
	updates  uint64
	frames   uint64
	busy     uint64
	drained  bool
	frame    durationStats
}

func (m *runMetrics) snapshot() snapshot {
	if !m.isEnabled() {
		return snapshot{}
	}
	compares := m.compares.Load()
	swaps := m.swaps.Load()
	return snapshot{
		elapsed:  time.Since(time.Unix(0, m.startedNs.Load())),
		reads:    m.gets.Load() + compares,
		writes:   m.sets.Load() + swaps,
		compares: compares,
		swaps:    swaps,
		updates:  m.updates.Load(),
		frames:   m.frames.Load(),
		busy:     m.appliedFrames.Load(),
		drained:  m.drained.Load(),
		frame:    *m.frameTimes.Load(),
	}
}
