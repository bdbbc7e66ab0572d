package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/nbodysim/internal/config"
)

var presetInfo = map[string]string{
	"reference": "three seed bodies",
	"binary":    "circular two-body orbit",
	"pair":      "two bodies at rest",
	"cluster":   "seed bodies plus random",
	"figure8":   "three-body choreography",
	"slow":      "reference at small dt",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	itemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	itemDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	itemIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	descIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

type model struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	width, height int
	liveModel     Model
	err           error
}

func NewInteractiveApp() *model {
	return &model{
		state:   stateMenu,
		presets: config.ListPresets(),
		width:   80, height: 24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
		return m, nil
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%g", &val); err == nil {
				m.setParam(config.ParamNames[m.paramCursor], val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(config.ParamNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", m.param(config.ParamNames[m.paramCursor]))
	case "s":
		cmd := m.start()
		return m, cmd
	case "left", "h":
		name := config.ParamNames[m.paramCursor]
		m.setParam(name, m.param(name)*0.9)
	case "right", "l":
		name := config.ParamNames[m.paramCursor]
		m.setParam(name, m.param(name)*1.1)
	}
	return m, nil
}

func (m *model) param(name string) float64 {
	v, _ := m.cfg.Param(name)
	return v
}

func (m *model) setParam(name string, v float64) {
	_ = m.cfg.SetParam(name, v)
}

// start validates the edited config and hands over to the live viewer.
func (m *model) start() tea.Cmd {
	live, err := NewModel(m.cfg, defaultFPS)
	if err != nil {
		m.err = err
		return nil
	}
	live, _ = resize(live, m.width, m.height)
	m.liveModel = live
	m.state = stateSim
	return m.liveModel.Init()
}

func resize(live Model, w, h int) (Model, tea.Cmd) {
	next, cmd := live.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model), cmd
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + itemIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("NBODYSIM") + "\n    " + menuSub.Render("gravitational n-body simulator") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorMark.Render("▸"), itemActive.Render(fmt.Sprintf("%-16s", name)), itemDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", itemIdle.Render(fmt.Sprintf("  %-16s", name)), descIdle.Render(desc)))
		}
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.selected)) + "\n    " + menuSub.Render(presetInfo[m.selected]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range config.ParamNames {
		valStr := fmt.Sprintf("%10g", m.param(name))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorMark.Render("▸"), itemActive.Render(fmt.Sprintf("%-16s", name)), itemDesc.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", itemIdle.Render(fmt.Sprintf("  %-16s", name)), descIdle.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive starts the preset picker, which opens the live viewer.
func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}
