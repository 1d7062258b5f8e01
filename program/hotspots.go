package main

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/keilerkonzept/topk/heap"
	"github.com/keilerkonzept/topk/sliding"

	"github.com/keilerkonzept/sortvis/internal/list"
)

// hotIndices counts how often each index is touched over a sliding time
// window and keeps an approximate top-K ranking of the busiest indices.
//
// The sketch is written from the sorting goroutine and read from the UI, so
// it sits behind a mutex. Rankings are refreshed incrementally: a full
// re-rank from the sketch every fullRefresh, and in between only the counts
// of the first partialSize ranked indices are re-read and re-sorted.
type hotIndices struct {
	mu     sync.Mutex
	sketch *sliding.Sketch

	k           int
	fullRefresh time.Duration
	partialSize int

	lastFull time.Time
	items    []heap.Item
}

const (
	hotSketchWidth = 1024
	hotSketchDepth = 3
)

func newHotIndices(k int, window, tick, fullRefresh time.Duration, partialSize int) *hotIndices {
	if k < 1 {
		k = 1
	}
	if fullRefresh < 0 {
		fullRefresh = 2 * time.Second
	}
	if partialSize < 0 {
		partialSize = 0
	}
	sketch := sliding.New(k, int(window/tick),
		sliding.WithWidth(hotSketchWidth),
		sliding.WithDepth(hotSketchDepth),
	)
	return &hotIndices{
		sketch:      sketch,
		k:           k,
		fullRefresh: fullRefresh,
		partialSize: partialSize,
	}
}

// observe is a player tap: it runs on the sorting goroutine.
func (h *hotIndices) observe(op list.Operation[uint32]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sketch.Incr(strconv.Itoa(op.I))
	if op.Kind == list.OpCompare || op.Kind == list.OpSwap {
		h.sketch.Incr(strconv.Itoa(op.J))
	}
}

// tick advances the sliding window by one bucket.
func (h *hotIndices) tick() {
	h.mu.Lock()
	h.sketch.Ticks(1)
	h.mu.Unlock()
}

// top returns the current ranking, most touched first, and whether it was a
// full re-rank.
func (h *hotIndices) top(now time.Time) ([]heap.Item, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if now.IsZero() {
		now = time.Now()
	}
	if h.fullRefresh == 0 || len(h.items) == 0 || now.Sub(h.lastFull) >= h.fullRefresh {
		h.items = h.sketch.SortedSlice()
		if len(h.items) > h.k {
			h.items = h.items[:h.k]
		}
		h.lastFull = now
		return cloneItems(h.items), true
	}

	limit := len(h.items)
	if h.partialSize > 0 && h.partialSize < limit {
		limit = h.partialSize
	}
	for i := range h.items[:limit] {
		h.items[i].Count = h.sketch.Count(h.items[i].Item)
	}
	sort.SliceStable(h.items[:limit], func(i, j int) bool {
		a, b := h.items[i], h.items[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Item < b.Item
	})
	return cloneItems(h.items), false
}

func cloneItems(in []heap.Item) []heap.Item {
	out := make([]heap.Item, len(in))
	copy(out, in)
	return out
}
