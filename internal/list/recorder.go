package list

import (
	"cmp"
	"fmt"
)

// Recorder is a plain list that keeps every operation it performed, so a run
// can be replayed step by step without re-running the algorithm.
type Recorder[T cmp.Ordered] struct {
	data  []T
	Steps []Operation[T]
}

func NewRecorder[T cmp.Ordered](data []T) *Recorder[T] {
	return &Recorder[T]{data: data}
}

func (r *Recorder[T]) Len() int { return len(r.data) }

func (r *Recorder[T]) Get(i int) T {
	r.Steps = append(r.Steps, Get[T](i))
	return r.data[i]
}

func (r *Recorder[T]) Set(i int, v T) {
	r.data[i] = v
	r.Steps = append(r.Steps, Set(i, v))
}

func (r *Recorder[T]) Compare(i, j int) int {
	r.Steps = append(r.Steps, Compare[T](i, j))
	return cmp.Compare(r.data[i], r.data[j])
}

func (r *Recorder[T]) Swap(i, j int) {
	r.data[i], r.data[j] = r.data[j], r.data[i]
	r.Steps = append(r.Steps, Swap[T](i, j))
}

// Replay applies steps to a copy of initial and returns the result. Reads and
// compares are no-ops.
func Replay[T cmp.Ordered](initial []T, steps []Operation[T]) []T {
	out := make([]T, len(initial))
	copy(out, initial)
	_ = ReplayTo(out, steps, nil)
	return out
}

// ReplayTo applies steps to data in place, reporting each step to obs the same
// way an Instrumented list would. The first observer error stops the replay
// and is returned wrapped in ErrAborted; data then holds the state after the
// failed step.
func ReplayTo[T cmp.Ordered](data []T, steps []Operation[T], obs Observer[T]) error {
	view := View[T]{s: data}
	for _, op := range steps {
		switch op.Kind {
		case OpSet:
			data[op.I] = op.Value
		case OpSwap:
			data[op.I], data[op.J] = data[op.J], data[op.I]
		}
		if obs == nil {
			continue
		}
		if err := obs.Observe(op, view); err != nil {
			return fmt.Errorf("%w: %w", ErrAborted, err)
		}
	}
	return nil
}
