package render

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/keilerkonzept/sortvis/internal/channel"
	sverrors "github.com/keilerkonzept/sortvis/internal/errors"
	"github.com/keilerkonzept/sortvis/internal/event"
	"github.com/keilerkonzept/sortvis/internal/logger"
)

// Config is the fixed rendering configuration handed to the loop at
// construction time.
type Config struct {
	Width, Height int
	Margin        int
	// Refresh is the pacing target for one tick. Late ticks are not errors.
	Refresh time.Duration
	Palette Palette
	// ExitOnDrain ends Run once the source is closed and drained instead of
	// presenting the last frame until the window closes.
	ExitOnDrain bool
}

// Source is the consumer side of the batch channel.
type Source[T Number] interface {
	TryReceive() (event.Batch[T], channel.Status)
}

// TickStats describes one finished tick.
type TickStats struct {
	Elapsed time.Duration
	Applied int
	Drained bool
}

// Loop is the render side of the pipeline: each tick it applies at most one
// batch to its frame buffer and presents the frame.
type Loop[T Number] struct {
	cfg     Config
	painter Painter[T]
	fb      *FrameBuffer
	src     Source[T]
	win     Window
	log     *slog.Logger

	onTick  func(TickStats)
	drained bool
	frames  uint64
}

// LoopOption configures optional Loop behaviour.
type LoopOption[T Number] func(*Loop[T])

// WithTickHook calls fn after every presented frame, on the loop goroutine.
func WithTickHook[T Number](fn func(TickStats)) LoopOption[T] {
	return func(l *Loop[T]) { l.onTick = fn }
}

// WithLogger replaces the component logger.
func WithLogger[T Number](log *slog.Logger) LoopOption[T] {
	return func(l *Loop[T]) { l.log = log }
}

func NewLoop[T Number](cfg Config, layout Layout, src Source[T], win Window, opts ...LoopOption[T]) *Loop[T] {
	l := &Loop[T]{
		cfg:     cfg,
		painter: NewPainter[T](layout, cfg.Palette),
		fb:      NewFrameBuffer(layout.Width, layout.Height, cfg.Palette.Background),
		src:     src,
		win:     win,
		log:     logger.ComponentLogger("render"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FrameBuffer returns the buffer the loop paints into. Only safe to read once
// Run has returned.
func (l *Loop[T]) FrameBuffer() *FrameBuffer { return l.fb }

// Run ticks until the window closes. A closed source is not an error: the
// last frame keeps being presented so the window stays responsive. Present
// failing for any reason other than ErrWindowClosed ends the loop with an
// error.
func (l *Loop[T]) Run(ctx context.Context) error {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		l.log.Info("render loop exited", "frames", l.frames, "drained", l.drained)
	}()

	for l.win.IsOpen() {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		applied := l.receive()

		if err := l.win.Present(l.fb); err != nil {
			if errors.Is(err, ErrWindowClosed) {
				return nil
			}
			return sverrors.PresentFailed(err)
		}
		l.frames++

		elapsed := time.Since(start)
		if l.onTick != nil {
			l.onTick(TickStats{Elapsed: elapsed, Applied: applied, Drained: l.drained})
		}
		if l.drained && l.cfg.ExitOnDrain {
			return nil
		}

		wait := l.cfg.Refresh - elapsed
		if wait <= 0 {
			continue
		}
		if timer == nil {
			timer = time.NewTimer(wait)
		} else {
			timer.Reset(wait)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// receive applies at most one batch and returns how many updates it held.
func (l *Loop[T]) receive() int {
	if l.drained {
		return 0
	}
	batch, st := l.src.TryReceive()
	switch st {
	case channel.Received:
		for _, u := range batch {
			l.painter.Paint(l.fb, u)
		}
		return len(batch)
	case channel.Closed:
		l.drained = true
		l.log.Debug("source drained", "frames", l.frames)
	}
	return 0
}
