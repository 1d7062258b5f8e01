package render

import (
	"fmt"

	"github.com/keilerkonzept/sortvis/internal/errors"
)

// Number is the element type the renderer can scale into a bar height.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Span is the half-open pixel column range [X0, X1) of one bar.
type Span struct {
	X0, X1 int
}

// Layout is the fixed mapping from index and value to a pixel rectangle. It is
// computed once from the initial data and never changes during a run, so a
// value above the initial maximum gets clipped at the top of the frame.
type Layout struct {
	Width, Height int
	Margin        int
	Spans         []Span
	UnitHeight    float64
}

// NewLayout spreads len(data) bars of equal width across width pixels with
// margin pixels between and around them, and scales the largest value to the
// full drawable height.
func NewLayout[T Number](data []T, width, height, margin int) (Layout, error) {
	switch {
	case width < 1 || height < 1:
		return Layout{}, errors.ConfigInvalid(fmt.Sprintf("window must be at least 1x1 pixels (got %dx%d)", width, height))
	case margin < 0:
		return Layout{}, errors.ConfigInvalid("margin must be >= 0")
	case height <= 2*margin:
		return Layout{}, errors.ConfigInvalid(fmt.Sprintf("height %d leaves no room inside margin %d", height, margin))
	}

	var largest float64
	for _, v := range data {
		largest = max(largest, float64(v))
	}
	unit := 0.0
	if largest > 0 {
		unit = float64(height-2*margin) / largest
	}

	n := len(data)
	spans := make([]Span, n)
	if n > 0 {
		barWidth := float64(width-(n+1)*margin) / float64(n)
		if barWidth < 1 {
			return Layout{}, errors.ConfigInvalid(fmt.Sprintf("%d elements do not fit in %d pixels with margin %d", n, width, margin))
		}
		pos := float64(margin)
		for i := range spans {
			spans[i] = Span{int(pos), int(pos + barWidth)}
			pos += barWidth + float64(margin)
		}
	}

	return Layout{
		Width:      width,
		Height:     height,
		Margin:     margin,
		Spans:      spans,
		UnitHeight: unit,
	}, nil
}

// Top returns the first row of the bar for value v, clipped to the frame.
func (l Layout) Top(v float64) int {
	top := l.Height - (int(v*l.UnitHeight) + l.Margin)
	return min(max(top, 0), l.Height-l.Margin)
}
