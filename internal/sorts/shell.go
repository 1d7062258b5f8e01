package sorts

import (
	"cmp"
	"math"

	"github.com/keilerkonzept/sortvis/internal/list"
)

// TokudaGaps returns the Tokuda gaps ceil(0.8*(2.25^k - 1)) that are <= max,
// in ascending order: 1, 4, 9, 20, 46, 103, ...
func TokudaGaps(max int) []int {
	var gaps []int
	for p := 2.25; ; p *= 2.25 {
		g := int(math.Ceil(0.8 * (p - 1)))
		if g > max {
			return gaps
		}
		gaps = append(gaps, g)
	}
}

// Shell runs gapped insertion passes over the Tokuda gaps, largest first,
// finishing with a plain insertion pass (gap 1).
func Shell[T cmp.Ordered](l list.List[T]) {
	n := l.Len()
	if n < 2 {
		return
	}
	gaps := TokudaGaps(n - 1)
	for k := len(gaps) - 1; k >= 0; k-- {
		insertionGap(l, gaps[k])
	}
}
