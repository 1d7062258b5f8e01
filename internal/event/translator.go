package event

import (
	"cmp"

	"github.com/keilerkonzept/sortvis/internal/list"
)

// Translator is the stateful side of translation: it remembers which indices
// the previous batch colored transiently and reverts those that the next
// batch does not touch, so no bar stays highlighted after its last access.
type Translator[T cmp.Ordered] struct {
	pending []int
	touched map[int]struct{}
}

func NewTranslator[T cmp.Ordered]() *Translator[T] {
	return &Translator[T]{touched: make(map[int]struct{}, 4)}
}

// Next translates op and appends an Idle update for every index colored
// transiently by the previous batch and not touched by this one.
func (t *Translator[T]) Next(op list.Operation[T], view list.View[T]) Batch[T] {
	batch := Translate(op, view)

	clear(t.touched)
	for _, u := range batch {
		t.touched[u.Index] = struct{}{}
	}
	for _, i := range t.pending {
		if _, ok := t.touched[i]; !ok {
			batch = append(batch, Update[T]{i, view.At(i), Idle})
		}
	}

	t.pending = t.pending[:0]
	for _, u := range batch {
		if u.Color.Transient() {
			t.pending = appendUnique(t.pending, u.Index)
		}
	}
	return batch
}

// Initial paints every index Idle with its current value.
func (t *Translator[T]) Initial(view list.View[T]) Batch[T] {
	t.pending = t.pending[:0]
	batch := make(Batch[T], view.Len())
	for i := range batch {
		batch[i] = Update[T]{i, view.At(i), Idle}
	}
	return batch
}

// Terminal produces the completion pass, one single-update batch per index in
// order. An index is DoneError when its predecessor is greater, DoneOk
// otherwise; any inversion in the sequence yields at least one DoneError.
func (t *Translator[T]) Terminal(view list.View[T]) []Batch[T] {
	t.pending = t.pending[:0]
	out := make([]Batch[T], view.Len())
	for i := range out {
		c := DoneOk
		if i > 0 && cmp.Less(view.At(i), view.At(i-1)) {
			c = DoneError
		}
		out[i] = Batch[T]{{i, view.At(i), c}}
	}
	return out
}

// Inversions counts adjacent out-of-order pairs, i.e. the number of DoneError
// updates Terminal produces.
func Inversions[T cmp.Ordered](values []T) int {
	n := 0
	for i := 1; i < len(values); i++ {
		if cmp.Less(values[i], values[i-1]) {
			n++
		}
	}
	return n
}

func appendUnique(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
