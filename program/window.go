package main

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"
	"github.com/keilerkonzept/topk/heap"

	"github.com/keilerkonzept/sortvis/internal/render"
)

var (
	selectedColor = styles.AdaptiveColor{Light: "0", Dark: "9"}
	borderColor   = styles.AdaptiveColor{Light: "#555", Dark: "#555"}
	statsFg       = styles.NewStyle().Foreground(styles.AdaptiveColor{Light: "1", Dark: "9"})
	plotStyle     = styles.NewStyle().
			BorderStyle(styles.NormalBorder()).
			Foreground(borderColor).
			BorderForeground(borderColor)
)

// pauseGate blocks the sorting goroutine between operations while paused.
// Once released it never blocks again.
type pauseGate struct {
	mu       sync.Mutex
	cond     *sync.Cond
	paused   bool
	released bool
}

func newPauseGate() *pauseGate {
	g := &pauseGate{}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// toggle flips the pause state and returns the new one.
func (g *pauseGate) toggle() bool {
	g.mu.Lock()
	if !g.released {
		g.paused = !g.paused
	}
	paused := g.paused
	g.mu.Unlock()
	g.cond.Broadcast()
	return paused
}

func (g *pauseGate) isPaused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

func (g *pauseGate) wait() {
	g.mu.Lock()
	for g.paused && !g.released {
		g.cond.Wait()
	}
	g.mu.Unlock()
}

// release unpauses for good. Called when the window goes away so a paused
// producer can finish.
func (g *pauseGate) release() {
	g.mu.Lock()
	g.released = true
	g.paused = false
	g.mu.Unlock()
	g.cond.Broadcast()
}

// termWindow is the render.Window shown by the bubbletea program. Present
// copies the frame; the UI picks up the newest copy on its own tick.
type termWindow struct {
	mu    sync.Mutex
	frame *render.FrameBuffer
	seq   uint64

	open atomic.Bool
}

func newTermWindow() *termWindow {
	w := &termWindow{}
	w.open.Store(true)
	return w
}

func (w *termWindow) IsOpen() bool { return w.open.Load() }

func (w *termWindow) Present(fb *render.FrameBuffer) error {
	if !w.open.Load() {
		return render.ErrWindowClosed
	}
	w.mu.Lock()
	if w.frame == nil || len(w.frame.Pix) != len(fb.Pix) {
		w.frame = fb.Clone()
	} else {
		w.frame.CopyFrom(fb)
	}
	w.seq++
	w.mu.Unlock()
	return nil
}

func (w *termWindow) close() { w.open.Store(false) }

// latest returns a copy of the newest frame if it is newer than seq.
func (w *termWindow) latest(seq uint64) (*render.FrameBuffer, uint64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.frame == nil || w.seq == seq {
		return nil, seq, false
	}
	return w.frame.Clone(), w.seq, true
}

type cellKey struct{ top, bottom render.Pixel }

// frameRenderer turns a frame buffer into terminal lines, two pixel rows per
// line using upper half blocks: foreground is the top pixel, background the
// bottom one.
type frameRenderer struct {
	cells map[cellKey]styles.Style
}

func newFrameRenderer() *frameRenderer {
	return &frameRenderer{cells: make(map[cellKey]styles.Style)}
}

func (r *frameRenderer) style(k cellKey) styles.Style {
	s, ok := r.cells[k]
	if !ok {
		s = styles.NewStyle().
			Foreground(styles.Color(k.top.RGB())).
			Background(styles.Color(k.bottom.RGB()))
		r.cells[k] = s
	}
	return s
}

func (r *frameRenderer) render(fb *render.FrameBuffer) string {
	if fb == nil || fb.Width == 0 || fb.Height == 0 {
		return ""
	}
	var sb strings.Builder
	for y := 0; y < fb.Height; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run := 0
		var cur cellKey
		for x := 0; x < fb.Width; x++ {
			k := cellKey{top: fb.At(x, y)}
			if y+1 < fb.Height {
				k.bottom = fb.At(x, y+1)
			} else {
				k.bottom = k.top
			}
			if run > 0 && k != cur {
				sb.WriteString(r.style(cur).Render(strings.Repeat("▀", run)))
				run = 0
			}
			cur = k
			run++
		}
		sb.WriteString(r.style(cur).Render(strings.Repeat("▀", run)))
	}
	return sb.String()
}

type frameTickMsg time.Time

func doFrameTick(d time.Duration) tui.Cmd {
	return tui.Every(d, func(t time.Time) tui.Msg {
		return frameTickMsg(t)
	})
}

type hotTickMsg time.Time

func doHotTick(d time.Duration) tui.Cmd {
	return tui.Every(d, func(t time.Time) tui.Msg {
		return hotTickMsg(t)
	})
}

// doneMsg is sent by the producer once the sort has finished.
type doneMsg struct {
	summary string
	err     error
}

const (
	statsPaneWidth  = 40
	plotHeight      = 6
	plotDataPoints  = 120
	minFrameRefresh = 16 * time.Millisecond
)

type model struct {
	cfg       Config
	algorithm string

	win     *termWindow
	gate    *pauseGate
	metrics *runMetrics
	hot     *hotIndices
	stalls  func() uint64

	frames    *frameRenderer
	frameSeq  uint64
	frameView string

	width, height int

	list     list.Model
	help     help.Model
	plot     *plot.Canvas
	plotData [][]float64

	lastReads, lastWrites uint64

	done *doneMsg
}

func newModel(cfg Config, algorithm string, win *termWindow, gate *pauseGate, metrics *runMetrics, hot *hotIndices, stalls func() uint64) *model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = styles.NewStyle().
		Border(styles.NormalBorder(), false, false, false, true).
		BorderForeground(borderColor).
		Foreground(selectedColor).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle
	d.ShowDescription = true

	l := list.New(make([]list.Item, 0), d, statsPaneWidth, 10)
	l.Styles.NoItems = l.Styles.NoItems.Padding(0, 2)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)

	p := plot.NewCanvas(statsPaneWidth-2, plotHeight)
	p.NumDataPoints = plotDataPoints
	p.ShowAxis = false
	p.LineColors = make([]plot.Color, 2)

	m := &model{
		cfg:       cfg,
		algorithm: algorithm,
		win:       win,
		gate:      gate,
		metrics:   metrics,
		hot:       hot,
		stalls:    stalls,
		frames:    newFrameRenderer(),
		list:      l,
		help:      help.New(),
		plot:      &p,
		plotData:  [][]float64{make([]float64, plotDataPoints), make([]float64, plotDataPoints)},
	}
	m.setPlotColors()
	m.plot.Fill(m.plotData)
	return m
}

func (m *model) setPlotColors() {
	if styles.DefaultRenderer().HasDarkBackground() {
		m.plot.LineColors[0], m.plot.LineColors[1] = plot.DimGray, plot.Red
	} else {
		m.plot.LineColors[0], m.plot.LineColors[1] = plot.LightGray, plot.Black
	}
}

func (m *model) frameRefresh() time.Duration {
	return max(m.cfg.Refresh, minFrameRefresh)
}

func (m *model) Init() tui.Cmd {
	return tui.Batch(doFrameTick(m.frameRefresh()), doHotTick(m.cfg.HotTick))
}

func (m *model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	switch msg := msg.(type) {
	case frameTickMsg:
		if fb, seq, ok := m.win.latest(m.frameSeq); ok {
			m.frameSeq = seq
			m.frameView = m.frames.render(fb)
		}
		m.updatePlot()
		return m, doFrameTick(m.frameRefresh())
	case hotTickMsg:
		if m.gate.isPaused() {
			return m, doHotTick(m.cfg.HotTick)
		}
		m.hot.tick()
		items, _ := m.hot.top(time.Time(msg))
		cmd := m.updateList(items)
		return m, tui.Batch(cmd, doHotTick(m.cfg.HotTick))
	case doneMsg:
		m.done = &msg
		return m, nil
	case tui.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		// counters + plot with border + help
		available := m.height - len(m.statsLines()) - (plotHeight + 2) - 1
		m.list.SetSize(statsPaneWidth, max(1, available))
		return m, nil
	case tui.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.win.close()
			m.gate.release()
			return m, tui.Quit
		case key.Matches(msg, keys.Pause):
			m.gate.toggle()
			return m, nil
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}
	var cmd tui.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updatePlot appends the reads and writes since the previous frame tick.
func (m *model) updatePlot() {
	if !m.cfg.StatsEnabled {
		return
	}
	snap := m.metrics.snapshot()
	reads, writes := snap.reads-m.lastReads, snap.writes-m.lastWrites
	m.lastReads, m.lastWrites = snap.reads, snap.writes
	for i, v := range []uint64{reads, writes} {
		series := m.plotData[i]
		copy(series, series[1:])
		series[len(series)-1] = float64(v)
	}
	m.plot.Fill(m.plotData)
}

func (m *model) updateList(ranked []heap.Item) tui.Cmd {
	numDecimals := 1 + int(math.Ceil(math.Log10(float64(m.cfg.HotK+1))))
	rankFormat := "#%-" + fmt.Sprint(numDecimals) + "d"
	pad := strings.Repeat(" ", numDecimals+1)

	items := make([]list.Item, len(ranked))
	for i, item := range ranked {
		items[i] = listItem{
			rank: fmt.Sprintf(rankFormat, i+1),
			pad:  pad,
			Item: item,
		}
	}
	return m.list.SetItems(items)
}

func (m *model) status() string {
	switch {
	case m.done != nil && m.done.err != nil:
		return "FAILED"
	case m.gate.isPaused():
		return "PAUSED"
	case m.done != nil:
		return "DONE"
	}
	return "RUNNING"
}

func (m *model) statsLines() []string {
	snap := m.metrics.snapshot()
	lines := []string{
		fmt.Sprintf("%s (%s)", strings.ToUpper(m.algorithm), m.status()),
		fmt.Sprintf("elapsed: %s", snap.elapsed.Round(time.Millisecond)),
		fmt.Sprintf("reads: %d  writes: %d", snap.reads, snap.writes),
		fmt.Sprintf("compares: %d  swaps: %d", snap.compares, snap.swaps),
		fmt.Sprintf("updates: %d  stalls: %d", snap.updates, m.stalls()),
		fmt.Sprintf("frames: %d (%d busy)", snap.frames, snap.busy),
		fmt.Sprintf("frame time avg/max: %s/%s", formatMetricDuration(snap.frame.avg), formatMetricDuration(snap.frame.max)),
	}
	if m.done != nil {
		if m.done.err != nil {
			lines = append(lines, "error: "+m.done.err.Error())
		} else {
			lines = append(lines, m.done.summary)
		}
	}
	return lines
}

func (m *model) View() string {
	view := m.frameView
	if m.cfg.StatsEnabled {
		stats := statsFg.Width(statsPaneWidth).Render(strings.Join(m.statsLines(), "\n"))
		right := styles.JoinVertical(styles.Left,
			stats,
			plotStyle.Render(m.plot.String()),
			m.list.View(),
		)
		view = styles.JoinHorizontal(styles.Top, view, " ", right)
	}
	return styles.JoinVertical(styles.Left, view, m.help.View(keys))
}

func formatMetricDuration(d time.Duration) string {
	if d <= 0 {
		return "0.000ms"
	}
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}

type listItem struct {
	rank string
	pad  string
	heap.Item
}

func (i listItem) Title() string       { return i.rank + " index " + i.Item.Item }
func (i listItem) Description() string { return fmt.Sprintf("%s %d touches", i.pad, i.Count) }
func (i listItem) FilterValue() string { return i.Item.Item }

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Pause, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Pause, k.Help},
		{k.Up, k.Down},
	}
}

type keyMap struct {
	Pause key.Binding
	Up    key.Binding
	Down  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p/space", "pause"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}
