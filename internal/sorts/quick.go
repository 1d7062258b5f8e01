package sorts

import (
	"cmp"

	"github.com/keilerkonzept/sortvis/internal/list"
)

// QuickLomuto is quicksort with a Lomuto partition around the last element.
// Elements equal to the pivot end up on its left.
func QuickLomuto[T cmp.Ordered](l list.List[T]) {
	quick(l, 0, l.Len()-1, lomuto[T])
}

// QuickHoare is quicksort with a Hoare partition around the middle element.
// Both scans stop on elements equal to the pivot, so runs of equal elements
// are split evenly instead of degrading to quadratic time.
func QuickHoare[T cmp.Ordered](l list.List[T]) {
	quickHoare(l, 0, l.Len()-1)
}

// quick recurses into the smaller side first and loops on the larger one, so
// stack depth stays logarithmic.
func quick[T cmp.Ordered](l list.List[T], lo, hi int, partition func(list.List[T], int, int) int) {
	for lo < hi {
		p := partition(l, lo, hi)
		if p-lo < hi-p {
			quick(l, lo, p-1, partition)
			lo = p + 1
		} else {
			quick(l, p+1, hi, partition)
			hi = p - 1
		}
	}
}

// lomuto returns the final index of the pivot.
func lomuto[T cmp.Ordered](l list.List[T], lo, hi int) int {
	store := lo
	for i := lo; i < hi; i++ {
		if l.Compare(i, hi) <= 0 {
			if i != store {
				l.Swap(i, store)
			}
			store++
		}
	}
	if store != hi {
		l.Swap(store, hi)
	}
	return store
}

func quickHoare[T cmp.Ordered](l list.List[T], lo, hi int) {
	for lo < hi {
		p := hoare(l, lo, hi)
		if p-lo < hi-p {
			quickHoare(l, lo, p)
			lo = p + 1
		} else {
			quickHoare(l, p+1, hi)
			hi = p
		}
	}
}

// hoare partitions [lo, hi] into [lo, p] <= pivot <= [p+1, hi]. The pivot
// value is read once; its index is tracked through swaps since the list only
// compares by index.
func hoare[T cmp.Ordered](l list.List[T], lo, hi int) int {
	pivot := lo + (hi-lo)/2
	i, j := lo-1, hi+1
	for {
		for {
			i++
			if l.Compare(i, pivot) >= 0 {
				break
			}
		}
		for {
			j--
			if l.Compare(j, pivot) <= 0 {
				break
			}
		}
		if i >= j {
			return j
		}
		l.Swap(i, j)
		switch pivot {
		case i:
			pivot = j
		case j:
			pivot = i
		}
	}
}
