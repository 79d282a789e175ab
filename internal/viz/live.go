package viz

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/photonwalk/internal/scene"
	"github.com/san-kum/photonwalk/internal/sim"
	"github.com/san-kum/photonwalk/internal/walk"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailCapacity   = 400
)

type (
	frameMsg  sim.Event
	nextMsg   struct{}
	closedMsg struct{}
)

// Model renders a running walk. Frames arrive from a sim.FrameChannel; the
// model only asks for the next frame when it is ready, so pausing the view
// also holds the loop.
type Model struct {
	events   <-chan sim.Event
	stop     func()
	interval time.Duration

	scene   *scene.Scene
	canvas  *Canvas
	scale   float64
	title   string
	trails  [][]walk.PhotonState
	history []float64

	tick    int
	escaped int
	result  *sim.Result
	paused  bool
	pending bool
	quit    bool
}

// NewModel builds a view over events. stop is called once when the user quits
// and must make the producing loop return.
func NewModel(events <-chan sim.Event, stop func(), sc *scene.Scene, fps int, title string) Model {
	if fps <= 0 {
		fps = 30
	}
	cw, ch := float64(width*2), float64(height*4)
	return Model{
		events:   events,
		stop:     stop,
		interval: time.Second / time.Duration(fps),
		scene:    sc,
		canvas:   NewCanvas(width, height),
		scale:    math.Min(cw/(2*scene.FieldHalfWidth), ch/(2*scene.FieldHalfHeight)),
		title:    title,
		trails:   make([][]walk.PhotonState, len(sc.Colors)),
		history:  make([]float64, 0, historyCapacity),
	}
}

func waitForEvent(events <-chan sim.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return frameMsg(ev)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles input events and consumes frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.quit {
				m.quit = true
				if m.stop != nil {
					m.stop()
				}
			}
			return m, tea.Quit
		case " ", "p":
			if m.result != nil {
				return m, nil
			}
			m.paused = !m.paused
			if !m.paused && m.pending {
				m.pending = false
				return m, waitForEvent(m.events)
			}
		}
	case frameMsg:
		m.apply(sim.Event(msg))
		if m.result != nil {
			return m, waitForEvent(m.events)
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return nextMsg{} })
	case nextMsg:
		if m.paused {
			m.pending = true
			return m, nil
		}
		return m, waitForEvent(m.events)
	case closedMsg:
		// The final frame stays on screen until the user quits.
		return m, nil
	}
	return m, nil
}

func (m *Model) apply(ev sim.Event) {
	if ev.Result != nil {
		m.result = ev.Result
	}
	if ev.Tick == m.tick && ev.Result != nil {
		return
	}
	m.tick = ev.Tick
	for len(m.trails) < len(ev.Population) {
		m.trails = append(m.trails, nil)
	}
	for i, p := range ev.Population {
		trail := append(m.trails[i], p)
		if len(trail) > trailCapacity {
			trail = trail[len(trail)-trailCapacity:]
		}
		m.trails[i] = trail
	}
	m.escaped = ev.Population.Escaped(m.scene.RadiusSteps)
	m.history = append(m.history, ev.Population.Furthest())
	if len(m.history) > historyCapacity {
		m.history = m.history[len(m.history)-historyCapacity:]
	}
}

// project maps step space to canvas sub-pixels with the star at the center.
func (m *Model) project(x, y float64) (int, int) {
	cw, ch := width*2, height*4
	return cw/2 + int(math.Round(x*m.scale)), ch/2 - int(math.Round(y*m.scale))
}

func (m *Model) draw() {
	m.canvas.Clear()

	m.canvas.SetPen("#ffffff")
	for _, p := range m.scene.Background {
		x, y := m.project(p.X, p.Y)
		m.canvas.Set(x, y)
	}

	m.canvas.SetPen(scene.StarColor)
	cx, cy := m.project(0, 0)
	m.canvas.DrawCircle(cx, cy, int(math.Round(m.scene.RadiusSteps*m.scale)))

	for i, trail := range m.trails {
		m.canvas.SetPen(m.scene.Color(i))
		px, py := cx, cy
		for _, p := range trail {
			x, y := m.project(p.X, p.Y)
			m.canvas.DrawLine(px, py, x, y)
			px, py = x, y
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(titleStyle.Render(strings.ToUpper(m.title)) + "\n\n")
	s.WriteString(m.status() + "\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(30),
			asciigraph.Caption("Furthest radius (steps)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	furthest := 0.0
	if len(m.history) > 0 {
		furthest = m.history[len(m.history)-1]
	}
	s.WriteString(statLine("Tick", fmt.Sprintf("%d", m.tick)))
	s.WriteString(statLine("Furthest", fmt.Sprintf("%.1f / %.0f", furthest, m.scene.RadiusSteps)))
	s.WriteString(statLine("Escaped", fmt.Sprintf("%d / %d", m.escaped, len(m.trails))))
	s.WriteString(labelStyle.Render("Surface") + surfaceBar(furthest/m.scene.RadiusSteps, 20) + "\n")

	if m.result != nil {
		for _, name := range sortedKeys(m.result.Metrics) {
			s.WriteString(statLine(name, fmt.Sprintf("%.2f", m.result.Metrics[name])))
		}
	}

	hint := "SP:Pause Q:Quit"
	if m.result != nil {
		hint = "Q:Quit"
	}
	s.WriteString(hintStyle.Render(hint))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func (m Model) status() string {
	switch {
	case m.result != nil:
		return doneStyle.Render(fmt.Sprintf("%s (%s)", sim.Terminated, m.result.Reason))
	case m.paused:
		return pausedStyle.Render("PAUSED")
	default:
		return runningStyle.Render(sim.Running.String())
	}
}

// Result is the final result once the loop has terminated, or nil.
func (m Model) Result() *sim.Result { return m.result }

// Live runs loop in the background and shows it until the user quits. The
// view stays open after the walk ends. Quitting early cancels the loop.
func Live(ctx context.Context, loop *sim.Loop, sc *scene.Scene, fps int, title string, opts ...tea.ProgramOption) (*sim.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var flag sim.Flag
	loop.AddCancelSignal(&flag)
	frames := sim.NewFrameChannel(ctx)
	loop.AddObserver(frames)

	type outcome struct {
		res *sim.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := loop.Run(ctx)
		done <- outcome{res, err}
	}()

	stop := func() {
		flag.Raise()
		cancel()
	}
	model := NewModel(frames.Events(), stop, sc, fps, title)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		stop()
		<-done
		return nil, err
	}

	out := <-done
	return out.res, out.err
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
