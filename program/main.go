package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/keilerkonzept/sortvis/internal/channel"
	"github.com/keilerkonzept/sortvis/internal/errors"
	"github.com/keilerkonzept/sortvis/internal/event"
	"github.com/keilerkonzept/sortvis/internal/list"
	"github.com/keilerkonzept/sortvis/internal/logger"
	"github.com/keilerkonzept/sortvis/internal/player"
	"github.com/keilerkonzept/sortvis/internal/render"
	"github.com/keilerkonzept/sortvis/internal/sorts"
	"github.com/keilerkonzept/sortvis/internal/source"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errors.KindConfig) {
			fmt.Fprintln(os.Stderr, "Run 'sortvis --help' for usage.")
		}
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when the run never started because of bad configuration or
// input, and 1 for everything that failed once it was running.
func exitCode(err error) int {
	switch errors.GetKind(err) {
	case errors.KindConfig, errors.KindInput:
		return 2
	}
	return 1
}

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	var listAlgorithms bool

	cmd := &cobra.Command{
		Use:   "sortvis",
		Short: "Animate a sorting algorithm in the terminal",
		Long: `sortvis runs a sorting algorithm on a list of unsigned integers and animates
every read and write it makes as colored bars.

Values come from --random, --file, or one integer per line on stdin.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listAlgorithms {
				for _, name := range sorts.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			if err := cfg.validateAndNormalize(); err != nil {
				return err
			}
			stdin := cmd.InOrStdin()
			return run(cmd.Context(), cfg, stdin, isTerminal(stdin), cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.BoolVar(&listAlgorithms, "list", false, "List the available algorithms and exit")
	f.StringVarP(&cfg.Algorithm, "algorithm", "a", cfg.Algorithm, "Sorting algorithm (see --list)")
	f.IntVarP(&cfg.RandomCount, "random", "n", cfg.RandomCount, "Sort this many random values")
	f.IntVar(&cfg.RandomMax, "max", cfg.RandomMax, "Largest random value")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one)")
	f.StringVarP(&cfg.InputPath, "file", "f", cfg.InputPath, "Read values from this file, one per line")
	f.BoolVar(&cfg.Replay, "replay", cfg.Replay, "Record the whole sort first, then play the recorded steps back")
	f.DurationVar(&cfg.StepPeriod, "step", cfg.StepPeriod, "Pause after every operation")

	f.IntVar(&cfg.Width, "width", cfg.Width, "Frame width in pixels (terminal columns)")
	f.IntVar(&cfg.Height, "height", cfg.Height, "Frame height in pixels (two per terminal row)")
	f.IntVar(&cfg.Margin, "margin", cfg.Margin, "Pixels between and around bars")
	f.DurationVar(&cfg.Refresh, "refresh", cfg.Refresh, "Target time per frame")
	f.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "Number of update batches buffered between sort and renderer")
	f.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Render without a terminal UI and exit when the animation is drained")
	f.BoolVar(&cfg.AltScreen, "alt-screen", cfg.AltScreen, "Use the terminal's alternate screen")

	f.BoolVar(&cfg.StatsEnabled, "stats", cfg.StatsEnabled, "Show the stats pane")
	f.IntVar(&cfg.StatsWindow, "stats-window", cfg.StatsWindow, "Number of frames in the frame time window")
	f.IntVar(&cfg.HotK, "hot-k", cfg.HotK, "Number of hot indices to show")
	f.DurationVar(&cfg.HotWindow, "hot-window", cfg.HotWindow, "Sliding window for hot indices")
	f.DurationVar(&cfg.HotTick, "hot-tick", cfg.HotTick, "Hot index window precision")
	f.DurationVar(&cfg.FullRefresh, "full-refresh", cfg.FullRefresh, "Full hot index re-rank interval (0 re-ranks every tick)")
	f.IntVar(&cfg.PartialSize, "partial-size", cfg.PartialSize, "Hot indices re-read between full re-ranks (0 means all)")

	f.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file")
	f.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")

	cmd.MarkFlagsMutuallyExclusive("random", "file")
	return cmd
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

// loadData picks the data source: a file, random values, or piped stdin.
func loadData(cfg Config, stdin io.Reader, stdinTTY bool) ([]uint32, error) {
	switch {
	case cfg.InputPath != "":
		return source.ReadFile(cfg.InputPath)
	case cfg.RandomCount > 0:
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return source.Random(cfg.RandomCount, uint32(cfg.RandomMax), seed), nil
	case stdinTTY:
		return nil, errors.ConfigInvalid("no input: pass --random or --file, or pipe values on stdin")
	}
	return source.Read(stdin)
}

// run sorts and animates one data set. It returns once the window is closed,
// or in headless mode once every update has been rendered.
func run(ctx context.Context, cfg Config, stdin io.Reader, stdinTTY bool, stdout io.Writer) error {
	if err := logger.Init(cfg.LogFile); err != nil {
		return errors.E(errors.Op("logger.Init"), errors.KindConfig, err)
	}
	defer logger.Close()
	logger.SetDebug(cfg.Debug)

	runID := uuid.NewString()
	log := logger.WithRun(runID)

	sorter, err := sorts.Lookup[uint32](cfg.Algorithm)
	if err != nil {
		return err
	}
	data, err := loadData(cfg, stdin, stdinTTY)
	if err != nil {
		return err
	}
	layout, err := render.NewLayout(data, cfg.Width, cfg.Height, cfg.Margin)
	if err != nil {
		return err
	}
	log.Info("run configured",
		"algorithm", sorter.Name(),
		"elements", len(data),
		"width", cfg.Width,
		"height", cfg.Height,
		"capacity", cfg.Capacity,
		"replay", cfg.Replay,
		"headless", cfg.Headless)

	ch := channel.New[event.Batch[uint32]](cfg.Capacity)
	metrics := newRunMetrics(cfg.StatsWindow)
	metrics.setEnabled(cfg.StatsEnabled)
	hot := newHotIndices(cfg.HotK, cfg.HotWindow, cfg.HotTick, cfg.FullRefresh, cfg.PartialSize)
	gate := newPauseGate()

	producer := player.New[uint32](sorter, ch,
		player.WithTap[uint32](func(op list.Operation[uint32], b event.Batch[uint32]) {
			gate.wait()
			metrics.observeOp(op, b)
			hot.observe(op)
		}),
		player.WithStepPeriod[uint32](cfg.StepPeriod),
		player.WithLogger[uint32](log.With("component", "player")),
	)
	play := producer.Run
	if cfg.Replay {
		play = producer.Replay
	}

	var (
		win  render.Window
		tw   *termWindow
		prog *tui.Program
	)
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Headless {
		win = render.NewHeadlessWindow()
	} else {
		tw = newTermWindow()
		win = tw
		m := newModel(cfg, sorter.Name(), tw, gate, metrics, hot, func() uint64 { return ch.Stats().Stalls })
		opts := []tui.ProgramOption{tui.WithContext(gctx), tui.WithInputTTY()}
		if cfg.AltScreen {
			opts = append(opts, tui.WithAltScreen())
		}
		prog = tui.NewProgram(m, opts...)
	}

	loop := render.NewLoop[uint32](cfg.renderConfig(), layout, ch, win,
		render.WithTickHook[uint32](metrics.observeTick),
		render.WithLogger[uint32](log.With("component", "render")),
	)

	var (
		res     player.Result[uint32]
		sortErr error
	)
	// A failing sort must not take the window down: the last frame stays up
	// until the user closes it.
	g.Go(func() error {
		res, sortErr = play(ctx, data)
		if prog != nil {
			prog.Send(doneMsg{summary: shortSummary(res), err: sortErr})
		}
		return nil
	})
	g.Go(func() error {
		defer ch.CloseReceive()
		return loop.Run(gctx)
	})
	if prog != nil {
		g.Go(func() error {
			defer gate.release()
			defer tw.close()
			if _, err := prog.Run(); err != nil && !stderrors.Is(err, tui.ErrProgramKilled) {
				return errors.E(errors.Op("tui.Run"), errors.KindRender, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("run failed", "error", err)
		return err
	}
	if sortErr != nil {
		return sortErr
	}

	fmt.Fprintln(stdout, summary(res, ch.Stats()))
	if cfg.Headless && !res.Sorted() {
		return errors.E(errors.Op("run"), errors.KindSort,
			fmt.Sprintf("%s left %d inversions", res.Algorithm, res.Inversions))
	}
	return nil
}

func shortSummary(res player.Result[uint32]) string {
	if res.Sorted() {
		return fmt.Sprintf("sorted %d values in %s", len(res.Final), res.Elapsed.Round(time.Millisecond))
	}
	return fmt.Sprintf("%d inversions left", res.Inversions)
}

func summary(res player.Result[uint32], st channel.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d values, ", res.Algorithm, len(res.Final))
	fmt.Fprintf(&sb, "%d ops (%d compares, %d swaps, %d gets, %d sets), ",
		res.Ops.Total(), res.Ops.Compare, res.Ops.Swap, res.Ops.Get, res.Ops.Set)
	fmt.Fprintf(&sb, "%d batches, %d stalls, ", res.Batches, st.Stalls)
	if res.Sorted() {
		sb.WriteString("sorted")
	} else {
		fmt.Fprintf(&sb, "%d inversions", res.Inversions)
	}
	if res.Detached {
		sb.WriteString(" (window closed early)")
	}
	return sb.String()
}
