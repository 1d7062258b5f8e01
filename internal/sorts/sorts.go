// Package sorts holds the algorithms that can be animated. Every algorithm is
// written against list.List only, so it runs unchanged on a plain slice, an
// instrumented list or a recorder.
package sorts

import (
	"cmp"
	"sort"

	"github.com/keilerkonzept/sortvis/internal/errors"
	"github.com/keilerkonzept/sortvis/internal/list"
)

// Sorter sorts a list in place using only the list's operations.
type Sorter[T cmp.Ordered] interface {
	Name() string
	Sort(l list.List[T])
}

type sorterFunc[T cmp.Ordered] struct {
	name string
	fn   func(list.List[T])
}

func (s sorterFunc[T]) Name() string        { return s.name }
func (s sorterFunc[T]) Sort(l list.List[T]) { s.fn(l) }

// Registry maps algorithm names to their implementations.
func Registry[T cmp.Ordered]() map[string]Sorter[T] {
	all := []Sorter[T]{
		sorterFunc[T]{"bubblesort", Bubble[T]},
		sorterFunc[T]{"selectionsort", Selection[T]},
		sorterFunc[T]{"insertionsort", Insertion[T]},
		sorterFunc[T]{"quicksort", QuickHoare[T]},
		sorterFunc[T]{"quicksort-hoare", QuickHoare[T]},
		sorterFunc[T]{"quicksort-lomuto", QuickLomuto[T]},
		sorterFunc[T]{"shellsort", Shell[T]},
	}
	m := make(map[string]Sorter[T], len(all))
	for _, s := range all {
		m[s.Name()] = s
	}
	return m
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	r := Registry[int]()
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the algorithm registered under name.
func Lookup[T cmp.Ordered](name string) (Sorter[T], error) {
	s, ok := Registry[T]()[name]
	if !ok {
		return nil, errors.UnknownAlgorithm(name)
	}
	return s, nil
}
