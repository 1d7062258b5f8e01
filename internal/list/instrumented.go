package list

import (
	"cmp"
	"errors"
	"fmt"
)

// Observer is told about every operation after it has been applied. It runs
// synchronously on the caller's goroutine and must not retain or mutate the
// view. A non-nil error aborts the algorithm (see Run).
type Observer[T cmp.Ordered] interface {
	Observe(op Operation[T], view View[T]) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc[T cmp.Ordered] func(op Operation[T], view View[T]) error

func (f ObserverFunc[T]) Observe(op Operation[T], view View[T]) error { return f(op, view) }

// Instrumented performs each operation on its sequence and then reports it to
// its observer.
type Instrumented[T cmp.Ordered] struct {
	data []T
	obs  Observer[T]
}

// NewInstrumented wraps data. The list takes ownership of data for as long as
// an algorithm runs against it.
func NewInstrumented[T cmp.Ordered](data []T, obs Observer[T]) *Instrumented[T] {
	return &Instrumented[T]{data: data, obs: obs}
}

func (l *Instrumented[T]) Len() int { return len(l.data) }

func (l *Instrumented[T]) Get(i int) T {
	v := l.data[i]
	l.notify(Get[T](i))
	return v
}

func (l *Instrumented[T]) Set(i int, v T) {
	l.data[i] = v
	l.notify(Set(i, v))
}

func (l *Instrumented[T]) Compare(i, j int) int {
	c := cmp.Compare(l.data[i], l.data[j])
	l.notify(Compare[T](i, j))
	return c
}

func (l *Instrumented[T]) Swap(i, j int) {
	l.data[i], l.data[j] = l.data[j], l.data[i]
	l.notify(Swap[T](i, j))
}

func (l *Instrumented[T]) notify(op Operation[T]) {
	if l.obs == nil {
		return
	}
	if err := l.obs.Observe(op, View[T]{s: l.data}); err != nil {
		panic(abort{err: err})
	}
}

// abort carries an observer failure up through an algorithm that has no error
// returns of its own. Run converts it back into an error.
type abort struct{ err error }

// ErrAborted wraps every error returned by Run for an observer failure.
var ErrAborted = errors.New("list: algorithm aborted by observer")

// Run calls fn and converts an observer failure raised inside it into an
// error wrapping both ErrAborted and the observer's error. Other panics
// propagate unchanged.
func Run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("%w: %w", ErrAborted, a.err)
		}
	}()
	fn()
	return nil
}
