// Package player runs one sort as the producer side of the animation: it
// wraps the data in an instrumented list, translates every operation into a
// batch of visual updates and pushes the batches into the bounded channel.
package player

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/keilerkonzept/sortvis/internal/channel"
	sverrors "github.com/keilerkonzept/sortvis/internal/errors"
	"github.com/keilerkonzept/sortvis/internal/event"
	"github.com/keilerkonzept/sortvis/internal/list"
	"github.com/keilerkonzept/sortvis/internal/logger"
	"github.com/keilerkonzept/sortvis/internal/sorts"
)

// Sink is the producer side of the batch channel.
type Sink[T cmp.Ordered] interface {
	Send(ctx context.Context, b event.Batch[T]) error
	CloseSend()
}

// Tap sees every operation and the batch it produced, on the sorting
// goroutine, before the batch is sent. It may block (to pause the sort) but
// must not touch the view after returning.
type Tap[T cmp.Ordered] func(op list.Operation[T], batch event.Batch[T])

// Counts holds the number of operations of each kind.
type Counts struct {
	Get, Set, Compare, Swap uint64
}

func (c *Counts) add(k list.Kind) {
	switch k {
	case list.OpGet:
		c.Get++
	case list.OpSet:
		c.Set++
	case list.OpCompare:
		c.Compare++
	case list.OpSwap:
		c.Swap++
	}
}

// Total returns the number of operations of any kind.
func (c Counts) Total() uint64 { return c.Get + c.Set + c.Compare + c.Swap }

// Result describes a finished run.
type Result[T cmp.Ordered] struct {
	Algorithm string
	Final     []T
	Ops       Counts
	// Inversions is the number of DoneError updates of the terminal pass.
	Inversions int
	Batches    uint64
	// Detached is set when the receiver went away mid-run. The sort still ran
	// to completion, only the remaining updates were discarded.
	Detached bool
	Elapsed  time.Duration
}

// Sorted reports whether the terminal pass found no inversion.
func (r Result[T]) Sorted() bool { return r.Inversions == 0 }

// Player owns one run.
type Player[T cmp.Ordered] struct {
	sorter sorts.Sorter[T]
	sink   Sink[T]
	tap    Tap[T]
	step   time.Duration
	log    *slog.Logger
}

// Option configures a Player.
type Option[T cmp.Ordered] func(*Player[T])

// WithTap installs a tap.
func WithTap[T cmp.Ordered](tap Tap[T]) Option[T] {
	return func(p *Player[T]) { p.tap = tap }
}

// WithStepPeriod waits d after every sent operation batch. Zero runs the
// algorithm as fast as the channel drains.
func WithStepPeriod[T cmp.Ordered](d time.Duration) Option[T] {
	return func(p *Player[T]) { p.step = d }
}

// WithLogger replaces the component logger.
func WithLogger[T cmp.Ordered](log *slog.Logger) Option[T] {
	return func(p *Player[T]) { p.log = log }
}

func New[T cmp.Ordered](sorter sorts.Sorter[T], sink Sink[T], opts ...Option[T]) *Player[T] {
	p := &Player[T]{
		sorter: sorter,
		sink:   sink,
		log:    logger.ComponentLogger("player"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// observer is the single observer owned by the instrumented list for the
// duration of the sort.
type observer[T cmp.Ordered] struct {
	ctx        context.Context
	p          *Player[T]
	translator *event.Translator[T]
	ops        Counts
	batches    uint64
	detached   bool
}

func (o *observer[T]) Observe(op list.Operation[T], view list.View[T]) error {
	o.ops.add(op.Kind)
	if o.detached {
		return nil
	}
	batch := o.translator.Next(op, view)
	if o.p.tap != nil {
		o.p.tap(op, batch)
	}
	if err := o.send(batch); err != nil {
		return err
	}
	return o.pace()
}

func (o *observer[T]) pace() error {
	if o.p.step <= 0 || o.detached {
		return nil
	}
	t := time.NewTimer(o.p.step)
	defer t.Stop()
	select {
	case <-o.ctx.Done():
		return o.ctx.Err()
	case <-t.C:
		return nil
	}
}

// send treats a closed receiver as "nobody is watching": the run continues
// without producing further updates. Context cancellation aborts the sort.
func (o *observer[T]) send(b event.Batch[T]) error {
	if o.detached {
		return nil
	}
	err := o.p.sink.Send(o.ctx, b)
	if errors.Is(err, channel.ErrClosed) {
		o.detached = true
		o.p.log.Info("receiver closed, finishing sort without updates", "batches", o.batches)
		return nil
	}
	if err != nil {
		return err
	}
	o.batches++
	return nil
}

// Run sorts data in place: an initial Idle pass, the sort itself, then the
// terminal pass. The sink is always closed on return, including when the
// algorithm panics, so the render loop sees the end of the stream.
func (p *Player[T]) Run(ctx context.Context, data []T) (Result[T], error) {
	return p.play(ctx, data, func(o *observer[T]) error {
		l := list.NewInstrumented(data, list.Observer[T](o))
		return list.Run(func() { p.sorter.Sort(l) })
	})
}

// Replay first sorts a copy of data on a recording list, then plays the
// recorded steps back onto data through the same translator and sink. The
// batch stream is the one Run would send; only the algorithm is no longer
// running while the animation plays.
func (p *Player[T]) Replay(ctx context.Context, data []T) (Result[T], error) {
	return p.play(ctx, data, func(o *observer[T]) error {
		rec := list.NewRecorder(slices.Clone(data))
		p.sorter.Sort(rec)
		p.log.Debug("run recorded", "algorithm", p.sorter.Name(), "steps", len(rec.Steps))
		return list.ReplayTo(data, rec.Steps, list.Observer[T](o))
	})
}

func (p *Player[T]) play(ctx context.Context, data []T, body func(o *observer[T]) error) (res Result[T], err error) {
	defer p.sink.CloseSend()

	start := time.Now()
	o := &observer[T]{ctx: ctx, p: p, translator: event.NewTranslator[T]()}
	res.Algorithm = p.sorter.Name()

	defer func() {
		if r := recover(); r != nil {
			err = sverrors.SortPanicked(p.sorter.Name(), r)
			p.log.Error("sort panicked", "algorithm", p.sorter.Name(), "panic", r)
		}
	}()

	view := list.ViewOf(data)
	if err := o.send(o.translator.Initial(view)); err != nil {
		return res, err
	}

	p.log.Info("sort started", "algorithm", p.sorter.Name(), "elements", len(data))
	if err := body(o); err != nil {
		return res, err
	}

	for _, b := range o.translator.Terminal(view) {
		if err := o.send(b); err != nil {
			return res, err
		}
	}

	res.Final = view.Snapshot()
	res.Ops = o.ops
	res.Inversions = event.Inversions(res.Final)
	res.Batches = o.batches
	res.Detached = o.detached
	res.Elapsed = time.Since(start)
	p.log.Info("sort finished",
		"algorithm", res.Algorithm,
		"ops", res.Ops.Total(),
		"batches", res.Batches,
		"inversions", res.Inversions,
		"detached", res.Detached,
		"elapsed", res.Elapsed)
	return res, nil
}
