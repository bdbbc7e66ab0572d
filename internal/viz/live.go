package viz

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	defaultFPS      = 60
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the live viewer. It pulls frames from the simulator each tick and
// turns key presses into simulator commands; it holds no physics of its own.
type Model struct {
	cfg           *config.Config
	sim           *sim.Simulator
	width, height int
	canvas        *Canvas
	camera        *Camera
	running       bool
	showHelp      bool
	showAxes      bool
	stepsPerFrame int
	fps           int
	energyHistory []float64
	recorder      *Recorder
	gifPath       string
	err           error
}

// NewModel builds a viewer for cfg. fps <= 0 uses 60 frames per second.
func NewModel(cfg *config.Config, fps int) (Model, error) {
	s, err := sim.FromConfig(cfg)
	if err != nil {
		return Model{}, err
	}
	if fps <= 0 {
		fps = defaultFPS
	}
	return Model{
		cfg:           cfg,
		sim:           s,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		running:       true,
		stepsPerFrame: 1,
		fps:           fps,
		energyHistory: make([]float64, 0, historyCapacity),
		gifPath:       "nbodysim.gif",
	}, nil
}

// Simulator exposes the driven session, mainly for tests and embedding hosts.
func (m Model) Simulator() *sim.Simulator { return m.sim }

func (m Model) Running() bool { return m.running }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "n":
			if _, err := m.sim.AddRandomBody(); err != nil {
				m.err = err
			}
		case "r":
			m.reset()
		case ".":
			m.step()
		case ">":
			m.stepsPerFrame = min(m.stepsPerFrame*2, 64)
		case "<":
			m.stepsPerFrame = max(m.stepsPerFrame/2, 1)
		case "a":
			m.showAxes = !m.showAxes
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case tea.WindowSizeMsg:
		// leave room for the stats panel
		w, h := max(msg.Width-50, 20), max(msg.Height-3, 8)
		m.width, m.height = w, h
		m.canvas = NewCanvas(w, h)
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame && m.err == nil; i++ {
				m.step()
			}
		}
		m.draw()
		if m.recorder != nil {
			m.recorder.Capture(m.canvas)
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the simulation one tick and records the energy.
func (m *Model) step() {
	if err := m.sim.Tick(); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.energyHistory = append(m.energyHistory, m.sim.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// reset rebuilds the session from the configuration it started with.
func (m *Model) reset() {
	s, err := sim.FromConfig(m.cfg)
	if err != nil {
		m.err = err
		return
	}
	m.sim = s
	m.err = nil
	m.energyHistory = m.energyHistory[:0]
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewRecorder(m.width, m.height)
		return
	}
	rec := m.recorder
	m.recorder = nil
	if rec.Len() == 0 {
		return
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.err = err
		return
	}
	defer f.Close()
	if err := rec.Encode(f); err != nil {
		m.err = err
	}
}

// draw projects every trail and body onto the canvas. Trails are drawn as
// connected segments and each body as a disc sized by its mass.
func (m *Model) draw() {
	m.canvas.Clear()
	if m.showAxes {
		DrawAxes(m.canvas, m.camera, 2)
	}
	w, h := m.canvas.PixelSize()
	frame := m.sim.Frame()
	for i, b := range frame.Bodies {
		px, py, havePrev := 0, 0, false
		for _, p := range b.Trail {
			x, y, _, ok := m.camera.Project(p, w, h)
			if !ok {
				havePrev = false
				continue
			}
			if havePrev {
				m.canvas.DrawLine(px, py, x, y, i)
			} else {
				m.canvas.Set(x, y, i)
			}
			px, py, havePrev = x, y, true
		}
		x, y, _, ok := m.camera.Project(b.Position, w, h)
		if ok {
			m.canvas.FillDisc(x, y, discRadius(b.Mass, m.camera.Zoom), i)
		}
	}
}

func discRadius(mass, zoom float64) int {
	r := int(math.Round(math.Cbrt(mass) * 0.1 * zoom * 4))
	return min(max(r, 1), 4)
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(Palette()))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.cfg.Name)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.recorder != nil {
		status += " " + StatusRecording.Render("REC")
	}
	s.WriteString(status + "\n\n")
	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	p := m.sim.Params()
	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	rows := [][2]string{
		{"Time", fmt.Sprintf("%.2fs", m.sim.Time())},
		{"Step", fmt.Sprintf("%d (x%d)", m.sim.Steps(), m.stepsPerFrame)},
		{"Bodies", fmt.Sprintf("%d", m.sim.Len())},
		{"Energy", fmt.Sprintf("%.2f", energy)},
		{"G", fmt.Sprintf("%g", p.G)},
		{"dt", fmt.Sprintf("%g", p.Dt)},
		{"Trail", fmt.Sprintf("%d", p.TrailCapacity)},
		{"Theme", CurrentTheme.Name},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r[0]) + valueStyle.Render(r[1]) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause N:Add R:Reset\nT:Theme  G:Record ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  N        - Add a random body        ║
║  R        - Reset simulation         ║
║  .        - Single step              ║
║  < >      - Steps per frame          ║
║  x/y/z    - Rotate (shift reverses)  ║
║  + -      - Zoom                     ║
║  A        - Toggle axes              ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive opens the viewer for cfg in the alternate screen.
func RunLive(cfg *config.Config, fps int) error {
	m, err := NewModel(cfg, fps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
