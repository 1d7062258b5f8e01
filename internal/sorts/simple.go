package sorts

import (
	"cmp"

	"github.com/keilerkonzept/sortvis/internal/list"
)

// Bubble makes passes over a shrinking prefix until a pass swaps nothing.
func Bubble[T cmp.Ordered](l list.List[T]) {
	n := l.Len()
	for pass, swapped := 0, true; swapped && pass < n; pass++ {
		swapped = false
		for i := 1; i < n-pass; i++ {
			if l.Compare(i-1, i) > 0 {
				l.Swap(i-1, i)
				swapped = true
			}
		}
	}
}

// Selection swaps the minimum of the unsorted suffix into place.
func Selection[T cmp.Ordered](l list.List[T]) {
	n := l.Len()
	for i := 0; i < n; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			if l.Compare(minIdx, j) > 0 {
				minIdx = j
			}
		}
		if minIdx != i {
			l.Swap(i, minIdx)
		}
	}
}

// Insertion sinks each element left by adjacent swaps.
func Insertion[T cmp.Ordered](l list.List[T]) {
	insertionGap(l, 1)
}

func insertionGap[T cmp.Ordered](l list.List[T], gap int) {
	n := l.Len()
	for i := gap; i < n; i++ {
		for j := i; j >= gap && l.Compare(j-gap, j) > 0; j -= gap {
			l.Swap(j-gap, j)
		}
	}
}
