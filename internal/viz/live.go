package viz

import (
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/Mlschwarzbold/SinucaBalistica/internal/physics"
	"github.com/Mlschwarzbold/SinucaBalistica/internal/sim"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 600
	frameTime       = time.Second / 60
	eventLogSize    = 6

	yawStep    = 0.05
	pitchStep  = 0.02
	maxPitch   = 1.4
	aimLineLen = 0.25
)

type TickMsg time.Time

// Model runs a simulator in real time and lets the player aim and shoot at
// the cue ball.
type Model struct {
	sim     *sim.Simulator
	rack    sim.RackConfig
	weapons []sim.Weapon
	weapon  int
	aim     sim.Aim
	pending *sim.Shot

	dt            float64
	width, height int
	canvas        *Canvas
	camera        *Camera
	shooterView   bool
	running       bool
	name          string

	energyHistory []float64
	events        []sim.Event
	counts        map[sim.EventKind]int

	recording bool
	frames    []*image.Paletted
	gifPath   string
	showHelp  bool
	err       error
}

// NewModel wraps s, which should already be racked. rack is used again on
// reset and aim.Weapon picks the starting weapon.
func NewModel(s *sim.Simulator, rack sim.RackConfig, weapons map[string]sim.Weapon, aim sim.Aim, dt float64, name string) Model {
	m := Model{
		sim:           s,
		rack:          rack,
		aim:           aim,
		dt:            dt,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		running:       true,
		name:          name,
		energyHistory: make([]float64, 0, historyCapacity),
		counts:        make(map[sim.EventKind]int),
		gifPath:       "sinuca.gif",
	}
	for _, n := range sim.WeaponNames(weapons) {
		m.weapons = append(m.weapons, weapons[n])
		if n == aim.Weapon {
			m.weapon = len(m.weapons) - 1
		}
	}
	return m
}

// SetGIFPath changes where recordings are written.
func (m *Model) SetGIFPath(path string) { m.gifPath = path }

func tick() tea.Cmd {
	return tea.Tick(frameTime, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.aim.Yaw -= yawStep
		case "right", "l":
			m.aim.Yaw += yawStep
		case "up", "k":
			m.aim.Pitch = math.Min(maxPitch, m.aim.Pitch+pitchStep)
		case "down", "j":
			m.aim.Pitch = math.Max(-maxPitch, m.aim.Pitch-pitchStep)
		case " ":
			m.shoot()
		case "w":
			if len(m.weapons) > 0 {
				m.weapon = (m.weapon + 1) % len(m.weapons)
			}
		case "v":
			m.shooterView = !m.shooterView
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "p":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			NextTheme()
		case "g":
			if m.recording {
				m.err = m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

// Weapon is the currently selected weapon.
func (m Model) Weapon() sim.Weapon {
	if len(m.weapons) == 0 {
		return sim.Weapon{}
	}
	return m.weapons[m.weapon]
}

func (m Model) Aim() sim.Aim { return m.aim }

// shoot queues a shot at the cue ball for the next step.
func (m *Model) shoot() {
	cue := m.sim.Scene().First()
	if cue == nil {
		return
	}
	shot := m.aim.ShotAt(cue, m.Weapon())
	m.pending = &shot
}

// advance runs one frame's worth of steps.
func (m *Model) advance() {
	steps := max(int(frameTime.Seconds()/m.dt+0.5), 1)
	for i := 0; i < steps; i++ {
		events := m.sim.Step(m.dt, m.pending)
		m.pending = nil
		for _, e := range events {
			m.counts[e.Kind]++
		}
		m.events = append(m.events, events...)
		if n := len(m.events); n > eventLogSize {
			m.events = m.events[n-eventLogSize:]
		}
	}

	m.energyHistory = append(m.energyHistory, m.sim.Scene().KineticEnergy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	if err := m.sim.Reset(m.rack); err != nil {
		m.err = err
		return
	}
	m.pending = nil
	m.events = m.events[:0]
	m.energyHistory = m.energyHistory[:0]
	m.counts = make(map[sim.EventKind]int)
}

// tableProjector maps table X/Z onto canvas sub-pixels, X across and Z down.
type tableProjector struct {
	b      physics.Bounds
	cw, ch int
}

func (p tableProjector) point(v mgl64.Vec3) (int, int) {
	sx := (v.X() - p.b.XMinus) / (p.b.XPlus - p.b.XMinus) * float64(p.cw-1)
	sy := (v.Z() - p.b.ZMinus) / (p.b.ZPlus - p.b.ZMinus) * float64(p.ch-1)
	return int(math.Round(sx)), int(math.Round(sy))
}

func (p tableProjector) length(r float64) int {
	return int(math.Round(r / (p.b.XPlus - p.b.XMinus) * float64(p.cw-1)))
}

func (m *Model) draw() {
	m.canvas.Clear()
	scene := m.sim.Scene()
	if m.shooterView {
		m.drawShooter(scene)
		return
	}
	m.drawTopDown(scene)
}

func (m *Model) drawTopDown(scene *sim.Scene) {
	cw, ch := m.canvas.Dots()
	proj := tableProjector{b: scene.Table.Bounds, cw: cw, ch: ch}

	m.canvas.Rect(0, 0, cw-1, ch-1)
	for _, p := range scene.Table.Pockets {
		x, y := proj.point(p)
		m.canvas.Circle(x, y, proj.length(scene.Table.PocketRadius))
	}
	for _, b := range scene.Bodies {
		if scene.Table.Sunk(b) {
			continue
		}
		x, y := proj.point(b.Position)
		m.canvas.Disc(x, y, max(proj.length(b.Radius), 1))
	}

	if cue := scene.First(); cue != nil && !scene.Table.Sunk(cue) {
		dir := physics.Planarize(m.aim.ViewDirection())
		if dir.Len() > 0 {
			x0, y0 := proj.point(cue.Position)
			x1, y1 := proj.point(cue.Position.Add(dir.Normalize().Mul(aimLineLen)))
			m.canvas.DrawLine(x0, y0, x1, y1)
		}
	}
}

func (m *Model) drawShooter(scene *sim.Scene) {
	target := mgl64.Vec3{}
	if cue := scene.First(); cue != nil {
		target = cue.Position
	}
	m.camera.Follow(m.aim, target)
	Render3D(m.canvas, TableWireframe(scene.Table), m.camera)
	RenderBalls(m.canvas, scene.Bodies, m.camera)

	cw, ch := m.canvas.Dots()
	m.canvas.Circle(cw/2, ch/2, 1)
}

// railHUD describes when the cue ball next meets a rail.
func railHUD(scene *sim.Scene) string {
	cue := scene.First()
	if cue == nil {
		return "-"
	}
	rail, t, ok := physics.NextRail(cue, scene.Table.Bounds)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%s in %.2fs", rail, t)
}

func (m Model) status() string {
	switch {
	case m.recording:
		return StatusRecording.Render("● REC")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	}
	return StatusRunning.Render("RUNNING")
}

func (m Model) View() string {
	scene := m.sim.Scene()
	feltStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Felt)
	canvasView := canvasStyle.Render(feltStyle.Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	w := m.Weapon()
	mult := w.Multiplier
	if scene.Opening() {
		mult = w.OpeningMultiplier
	}
	row("Time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("Weapon", fmt.Sprintf("%s ×%.1f", w.Name, mult))
	row("Yaw", fmt.Sprintf("%.1f°", mgl64.RadToDeg(m.aim.Yaw)))
	row("Pitch", fmt.Sprintf("%.1f°", mgl64.RadToDeg(m.aim.Pitch)))
	row("Energy", fmt.Sprintf("%.3f J", scene.KineticEnergy()))
	row("Next rail", railHUD(scene))

	sunk := len(scene.Sunk())
	total := max(len(scene.Bodies), 1)
	row("Pocketed", fmt.Sprintf("%d/%d ", sunk, len(scene.Bodies))+ProgressBar(float64(sunk)/float64(total), 10))
	row("Contacts", fmt.Sprintf("%d balls, %d shots", m.counts[sim.EventBall], m.counts[sim.EventShot]))

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if len(m.events) > 0 {
		s.WriteString(Separator(30) + "\n")
		for _, e := range m.events {
			s.WriteString(Subtle.Render(fmt.Sprintf("%6.2fs %-6s #%d %.2f m/s", e.Time, e.Kind, e.BodyID, e.Speed)) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("←→↑↓:Aim SP:Fire W:Weapon V:View\nP:Pause R:Rerack T:Theme ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  ←/→      - Yaw the aim              ║
║  ↑/↓      - Pitch the aim            ║
║  Space    - Fire                     ║
║  W        - Cycle weapons            ║
║  V        - Top-down / shooter view  ║
║  +/-      - Camera distance          ║
║  P        - Pause/Resume             ║
║  R        - Rerack                   ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
