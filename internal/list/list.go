// Package list defines the capability set sorting algorithms are written
// against, and the list implementations that satisfy it: a plain slice, an
// instrumented list that reports every operation to an observer, and a
// recorder used for step replay.
package list

import (
	"cmp"
	"fmt"
)

// List is everything an algorithm may do with its input. Algorithms never see
// the backing storage.
type List[T cmp.Ordered] interface {
	Len() int
	Get(i int) T
	Set(i int, v T)
	// Compare returns -1, 0 or +1 as element i is less than, equal to or
	// greater than element j.
	Compare(i, j int) int
	Swap(i, j int)
}

// Kind tags an Operation.
type Kind uint8

const (
	OpGet Kind = iota
	OpSet
	OpCompare
	OpSwap
)

func (k Kind) String() string {
	switch k {
	case OpGet:
		return "Get"
	case OpSet:
		return "Set"
	case OpCompare:
		return "Compare"
	case OpSwap:
		return "Swap"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Operation is one primitive list access. J is only meaningful for Compare and
// Swap, Value only for Set.
type Operation[T cmp.Ordered] struct {
	Kind  Kind
	I, J  int
	Value T
}

func Get[T cmp.Ordered](i int) Operation[T] { return Operation[T]{Kind: OpGet, I: i} }

func Set[T cmp.Ordered](i int, v T) Operation[T] {
	return Operation[T]{Kind: OpSet, I: i, Value: v}
}

func Compare[T cmp.Ordered](i, j int) Operation[T] {
	return Operation[T]{Kind: OpCompare, I: i, J: j}
}

func Swap[T cmp.Ordered](i, j int) Operation[T] { return Operation[T]{Kind: OpSwap, I: i, J: j} }

// Mutates reports whether the operation can change a value.
func (o Operation[T]) Mutates() bool {
	return o.Kind == OpSet || o.Kind == OpSwap
}

// Indices returns the indices the operation touches.
func (o Operation[T]) Indices() []int {
	switch o.Kind {
	case OpCompare, OpSwap:
		return []int{o.I, o.J}
	default:
		return []int{o.I}
	}
}

func (o Operation[T]) String() string {
	switch o.Kind {
	case OpGet:
		return fmt.Sprintf("Get[%d]", o.I)
	case OpSet:
		return fmt.Sprintf("Set[%d]=%v", o.I, o.Value)
	default:
		return fmt.Sprintf("%s[%d][%d]", o.Kind, o.I, o.J)
	}
}

// View is a read-only window on a sequence. Observers receive a View so they
// can read current values without being able to mutate them.
type View[T cmp.Ordered] struct {
	s []T
}

// ViewOf returns a read-only view of s.
func ViewOf[T cmp.Ordered](s []T) View[T] { return View[T]{s: s} }

func (v View[T]) Len() int { return len(v.s) }

func (v View[T]) At(i int) T { return v.s[i] }

// Snapshot copies the viewed values.
func (v View[T]) Snapshot() []T {
	out := make([]T, len(v.s))
	copy(out, v.s)
	return out
}

// Slice is the uninstrumented list: identical semantics, no callback.
type Slice[T cmp.Ordered] []T

func (s Slice[T]) Len() int             { return len(s) }
func (s Slice[T]) Get(i int) T          { return s[i] }
func (s Slice[T]) Set(i int, v T)       { s[i] = v }
func (s Slice[T]) Compare(i, j int) int { return cmp.Compare(s[i], s[j]) }
func (s Slice[T]) Swap(i, j int)        { s[i], s[j] = s[j], s[i] }
