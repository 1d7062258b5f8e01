// Package event turns list operations into visual updates: which bar to
// repaint, with which value, in which color class.
package event

import (
	"cmp"
	"fmt"

	"github.com/keilerkonzept/sortvis/internal/list"
)

// Color is a semantic paint category, decoupled from actual pixel values.
type Color uint8

const (
	Idle Color = iota
	Read
	Write
	DoneOk
	DoneError
)

func (c Color) String() string {
	switch c {
	case Idle:
		return "Idle"
	case Read:
		return "Read"
	case Write:
		return "Write"
	case DoneOk:
		return "DoneOk"
	case DoneError:
		return "DoneError"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// Transient reports whether the color reverts to Idle once the index is no
// longer being touched.
func (c Color) Transient() bool {
	return c == Read || c == Write
}

// Update is one instruction to the renderer. Value is a copy; updates never
// alias the sequence.
type Update[T cmp.Ordered] struct {
	Index int
	Value T
	Color Color
}

// Batch is the set of updates produced for one operation. Order inside a
// batch is insignificant; batches are applied in arrival order.
type Batch[T cmp.Ordered] []Update[T]

// Translate maps one operation to its updates, reading values after the
// operation was applied.
func Translate[T cmp.Ordered](op list.Operation[T], view list.View[T]) Batch[T] {
	switch op.Kind {
	case list.OpGet:
		return Batch[T]{{op.I, view.At(op.I), Read}}
	case list.OpSet:
		return Batch[T]{{op.I, view.At(op.I), Write}}
	case list.OpCompare:
		return Batch[T]{{op.I, view.At(op.I), Read}, {op.J, view.At(op.J), Read}}
	case list.OpSwap:
		return Batch[T]{{op.I, view.At(op.I), Write}, {op.J, view.At(op.J), Write}}
	default:
		return nil
	}
}
