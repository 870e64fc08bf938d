package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/colinbarry/verlet-cloth/internal/cloth"
	"github.com/colinbarry/verlet-cloth/internal/config"
	"github.com/colinbarry/verlet-cloth/internal/engine"
	"github.com/colinbarry/verlet-cloth/internal/geom"
	"github.com/colinbarry/verlet-cloth/internal/metrics"
)

const (
	canvasWidth     = 72
	canvasHeight    = 22
	historyCapacity = 600
)

// Canvas cell offset of the rendered mesh inside the terminal, induced by
// canvasStyle's padding. Mouse coordinates arrive in terminal cells and are
// shifted by this before the viewport inverse-maps them to cloth space.
const (
	padLeft = 2
	padTop  = 1
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(13)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the interactive TUI: it drives the engine from wall-clock
// timestamps and translates mouse drags into cut segments.
type Model struct {
	cfg      *config.Config
	eng      *engine.Engine
	canvas   *Canvas
	view     Viewport
	fps      int
	start    time.Time
	running  bool
	showHelp bool

	dragging bool
	lastDrag geom.Vec2

	cutsMade      int
	energyHistory []float64
}

func NewModel(cfg *config.Config) (Model, error) {
	topo, err := cloth.Build(cfg.Columns, cfg.Rows)
	if err != nil {
		return Model{}, err
	}
	eng := engine.New(topo, cfg.Seed)
	eng.SetIterations(cfg.Iterations)

	canvas := NewCanvas(canvasWidth, canvasHeight)
	return Model{
		cfg:           cfg,
		eng:           eng,
		canvas:        canvas,
		view:          FitViewport(canvas),
		fps:           60,
		start:         time.Now(),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "k":
			m.eng.SetIterations(m.eng.Iterations() + 1)
		case "down", "j":
			m.eng.SetIterations(m.eng.Iterations() - 1)
		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case TickMsg:
		if m.running {
			m.eng.Advance(time.Since(m.start).Seconds())
			m.energyHistory = append(m.energyHistory, metrics.StretchEnergyOf(m.eng.Topology()))
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// handleMouse turns a left-button drag into a chain of cut segments. Each
// motion sample cuts from the previous sample to the current one, batching
// every constraint crossed since the last sample into one removal.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	at := m.clothAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.lastDrag = at
		}
	case tea.MouseActionMotion:
		if m.dragging {
			m.cutsMade += m.eng.Cut(m.lastDrag, at)
			m.lastDrag = at
		}
	case tea.MouseActionRelease:
		m.dragging = false
	}
}

// clothAt maps a terminal cell to cloth coordinates through the center of
// the cell's braille dot block.
func (m *Model) clothAt(cx, cy int) geom.Vec2 {
	sx := float64((cx-padLeft)*2) + 1
	sy := float64((cy-padTop)*4) + 2
	return m.view.ToCloth(sx, sy)
}

func (m *Model) reset() {
	topo, err := cloth.Build(m.cfg.Columns, m.cfg.Rows)
	if err != nil {
		return
	}
	iters := m.eng.Iterations()
	m.eng = engine.New(topo, m.cfg.Seed)
	m.eng.SetIterations(iters)
	m.start = time.Now()
	m.cutsMade = 0
	m.energyHistory = m.energyHistory[:0]
}

func (m Model) View() string {
	m.canvas.Clear()
	topo := m.eng.Topology()
	DrawMesh(m.canvas, m.view, topo.Segments(), topo.ActivePoints())
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("VERLET CLOTH") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("stretch energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.eng.Time())) + "\n")
	s.WriteString(labelStyle.Render("Points") + valueStyle.Render(fmt.Sprintf("%d", topo.NumPoints())) + "\n")
	s.WriteString(labelStyle.Render("Constraints") + valueStyle.Render(fmt.Sprintf("%d", topo.NumConstraints())) + "\n")
	s.WriteString(labelStyle.Render("Iterations") + valueStyle.Render(fmt.Sprintf("%d", m.eng.Iterations())) + "\n")
	s.WriteString(labelStyle.Render("Cuts") + valueStyle.Render(fmt.Sprintf("%d", m.cutsMade)) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\ndrag mouse to tear\nSP:Pause R:Reset Q:Quit\n↑↓:Stiffness ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD & MOUSE            ║
╠══════════════════════════════════════╣
║  Drag     - Cut constraints          ║
║  Space    - Pause/Resume             ║
║  R        - Rebuild the cloth        ║
║  Up/K     - More solver passes       ║
║  Down/J   - Fewer solver passes      ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive starts the interactive TUI for the given configuration. fps
// values below 1 fall back to the default frame rate.
func RunLive(cfg *config.Config, fps int) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	if fps > 0 {
		m.fps = fps
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
