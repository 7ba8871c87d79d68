package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/config"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/experiment"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

var presetInfo = map[string]string{
	"break":      "rifle break on a full rack",
	"soft_break": "pistol break on a full rack",
	"drop":       "cue ball falling onto the felt",
	"bank":       "lone cue ball off the rails",
	"single":     "cut a single ball to a pocket",
}

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuValue  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true)
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var tunables = []string{"yaw", "pitch", "gravity", "friction", "rows", "dt"}

// App is the preset picker in front of the live table.
type App struct {
	state       int
	cursor      int
	presets     []string
	selected    string
	params      map[string]float64
	paramCursor int
	editing     bool
	editBuf     string
	err         error
	live        Model
}

func NewApp() *App {
	return &App{
		state:   stateMenu,
		presets: config.ListPresets(),
		params:  make(map[string]float64),
	}
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.state == stateSim {
			next, cmd := m.live.Update(msg)
			m.live = next.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	return m, nil
}

func (m App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
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
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
		m.loadParams()
	}
	return m, nil
}

func (m App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	name := tunables[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				m.params[name] = val
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += s
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
		if m.paramCursor < len(tunables)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", m.params[name])
	case "left", "h":
		m.params[name] -= step(name)
	case "right", "l":
		m.params[name] += step(name)
	case "s":
		return m.start()
	}
	return m, nil
}

func step(name string) float64 {
	switch name {
	case "rows":
		return 1
	case "dt":
		return 0.001
	}
	return 0.05
}

func (m *App) loadParams() {
	cfg, err := config.GetPreset(m.selected)
	if err != nil {
		m.err = err
		return
	}
	aim := LiveAim(cfg)
	m.params = map[string]float64{
		"yaw":      aim.Yaw,
		"pitch":    aim.Pitch,
		"gravity":  cfg.Physics.Gravity,
		"friction": cfg.Physics.Friction,
		"rows":     float64(cfg.Rack.Rows),
		"dt":       cfg.Run.Dt,
	}
}

func (m App) start() (App, tea.Cmd) {
	cfg, err := config.GetPreset(m.selected)
	if err != nil {
		m.err = err
		return m, nil
	}
	cfg.Physics.Gravity = m.params["gravity"]
	cfg.Physics.Friction = m.params["friction"]
	cfg.Rack.Rows = int(m.params["rows"])
	cfg.Run.Dt = m.params["dt"]

	aim := LiveAim(cfg)
	aim.Yaw, aim.Pitch = m.params["yaw"], m.params["pitch"]

	live, err := NewLive(cfg, aim)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = live
	m.state = stateSim
	return m, m.live.Init()
}

// LiveAim is the starting aim for cfg: its first scheduled shot, or a
// straight shot along +X.
func LiveAim(cfg *config.Config) sim.Aim {
	if len(cfg.Shots) > 0 {
		s := cfg.Shots[0]
		return sim.Aim{Yaw: s.Yaw, Pitch: s.Pitch, Distance: s.Distance, Weapon: s.Weapon}
	}
	return sim.Aim{Pitch: 0.1, Distance: config.DefaultDistance, Weapon: config.DefaultWeapon}
}

// NewLive racks cfg and wraps it in a live Model.
func NewLive(cfg *config.Config, aim sim.Aim) (Model, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(nil); err != nil {
		return Model{}, err
	}
	name := cfg.Preset
	if name == "" {
		name = "custom"
	}
	return NewModel(exp.GetSimulator(), cfg.RackConfig(), cfg.WeaponMap(), aim, cfg.Run.Dt, name), nil
}

func (m App) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("SINUCA BALÍSTICA") + "\n    " + menuSub.Render("pool with firearms") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuValue.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuDim.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m App) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.selected)) + "\n    " + menuSub.Render(presetInfo[m.selected]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range tunables {
		valStr := fmt.Sprintf("%8.3f", m.params[name])
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", name)), menuValue.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-10s", name)), menuDim.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive starts the preset picker full screen.
func RunInteractive() error {
	_, err := tea.NewProgram(NewApp(), tea.WithAltScreen()).Run()
	return err
}

// RunLive plays cfg full screen without the picker.
func RunLive(cfg *config.Config, gifPath string) error {
	live, err := NewLive(cfg, LiveAim(cfg))
	if err != nil {
		return err
	}
	if gifPath != "" {
		live.SetGIFPath(gifPath)
	}
	_, err = tea.NewProgram(live, tea.WithAltScreen()).Run()
	return err
}
