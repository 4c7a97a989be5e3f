package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/polymer/pkg/chain"
	"github.com/matzehuels/polymer/pkg/pipeline"
	"github.com/matzehuels/polymer/pkg/render/projection"
	"github.com/matzehuels/polymer/pkg/render/styles"
)

// Viewer tuning.
const (
	rotateStep = 15.0
	zoomStep   = 1.25
	minZoom    = 0.1
	maxZoom    = 20.0

	// Terminal cells are roughly twice as tall as wide.
	cellAspect = 0.5

	// Rows used by the header, status and help lines.
	chromeRows = 4
)

var (
	viewerDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	viewerBondStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewerErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// viewerKeyMap binds the viewer controls.
type viewerKeyMap struct {
	Left, Right, Up, Down key.Binding
	ZoomIn, ZoomOut       key.Binding
	Regenerate, Save      key.Binding
	Quit                  key.Binding
}

var viewerKeys = viewerKeyMap{
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "yaw")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "yaw")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pitch")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pitch")),
	ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
	Regenerate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "regenerate")),
	Save:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k viewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.ZoomIn, k.ZoomOut, k.Regenerate, k.Save, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k viewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.ZoomIn, k.ZoomOut},
		{k.Regenerate, k.Save, k.Quit},
	}
}

// =============================================================================
// ViewerModel - Interactive terminal chain viewer
// =============================================================================

// ViewerModel is the bubbletea model behind the view command.
type ViewerModel struct {
	ctx      context.Context
	runner   *pipeline.Runner
	opts     pipeline.Options
	savePath string
	help     help.Model

	Chain  chain.Chain
	XYZ    string
	Camera projection.Camera
	Width  int
	Height int
	Status string
	Err    error
}

// chainMsg delivers a freshly generated chain.
type chainMsg struct {
	res *pipeline.Result
	err error
}

// savedMsg reports the outcome of writing the XYZ file.
type savedMsg struct {
	path string
	err  error
}

// NewViewerModel creates a viewer that generates chains with runner.
func NewViewerModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, savePath string) ViewerModel {
	cam := opts.Camera()
	if cam.Zoom <= 0 {
		cam.Zoom = 1
	}
	return ViewerModel{
		ctx:      ctx,
		runner:   runner,
		opts:     opts,
		savePath: savePath,
		help:     help.New(),
		Camera:   cam,
		Width:    80,
		Height:   24,
	}
}

func (m ViewerModel) Init() tea.Cmd {
	return m.generate
}

func (m ViewerModel) generate() tea.Msg {
	opts := m.opts
	opts.Formats = []string{pipeline.FormatXYZ}
	res, err := m.runner.Execute(m.ctx, opts)
	return chainMsg{res: res, err: err}
}

func (m ViewerModel) save() tea.Msg {
	err := os.WriteFile(m.savePath, []byte(m.XYZ), 0644)
	return savedMsg{path: m.savePath, err: err}
}

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, viewerKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, viewerKeys.Left):
			m.Camera.Yaw = wrapDegrees(m.Camera.Yaw - rotateStep)
		case key.Matches(msg, viewerKeys.Right):
			m.Camera.Yaw = wrapDegrees(m.Camera.Yaw + rotateStep)
		case key.Matches(msg, viewerKeys.Up):
			m.Camera.Pitch = wrapDegrees(m.Camera.Pitch + rotateStep)
		case key.Matches(msg, viewerKeys.Down):
			m.Camera.Pitch = wrapDegrees(m.Camera.Pitch - rotateStep)
		case key.Matches(msg, viewerKeys.ZoomIn):
			m.Camera.Zoom = math.Min(m.Camera.Zoom*zoomStep, maxZoom)
		case key.Matches(msg, viewerKeys.ZoomOut):
			m.Camera.Zoom = math.Max(m.Camera.Zoom/zoomStep, minZoom)
		case key.Matches(msg, viewerKeys.Regenerate):
			m.Status = "regenerating..."
			return m, m.generate
		case key.Matches(msg, viewerKeys.Save):
			if m.XYZ == "" {
				return m, nil
			}
			return m, m.save
		}
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case chainMsg:
		if msg.err != nil {
			m.Err = msg.err
			m.Status = ""
			return m, nil
		}
		m.Err = nil
		m.Chain = msg.res.Chain
		m.XYZ = msg.res.XYZ
		m.Status = fmt.Sprintf("%d units", msg.res.Chain.Len())
	case savedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Status = "saved " + msg.path
	}
	return m, nil
}

func (m ViewerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("polymer"))
	b.WriteString(viewerDimStyle.Render(fmt.Sprintf("  units %d  angle %g°  rigidity %g  yaw %g°  pitch %g°  zoom %.2f",
		m.opts.Units, m.opts.Angle, m.opts.Rigidity, m.Camera.Yaw, m.Camera.Pitch, m.Camera.Zoom)))
	b.WriteString("\n\n")

	rows := max(m.Height-chromeRows, 1)
	for _, line := range drawChain(m.Chain, m.Camera, max(m.Width, 1), rows) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch {
	case m.Err != nil:
		b.WriteString(viewerErrStyle.Render(m.Err.Error()))
	case m.Status != "":
		b.WriteString(StyleSuccess.Render(m.Status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(viewerKeys))
	return b.String()
}

// =============================================================================
// Canvas
// =============================================================================

type cell struct {
	r     rune
	color string // hex; empty for bonds
}

// drawChain rasterizes the projected chain into width×height terminal
// cells. Nearer atoms and bonds overwrite farther ones.
func drawChain(c chain.Chain, cam projection.Camera, width, height int) []string {
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}

	if len(c) > 0 {
		scene := projection.Project(c, cam, projection.Viewport{
			Width:   float64(width - 1),
			Height:  float64(height - 1),
			Margin:  1,
			AspectY: cellAspect,
		})
		plot := func(x, y float64, v cell) {
			col, row := int(math.Round(x)), int(math.Round(y))
			if row >= 0 && row < height && col >= 0 && col < width {
				grid[row][col] = v
			}
		}
		for _, bd := range scene.Bonds {
			steps := int(math.Max(math.Abs(bd.X2-bd.X1), math.Abs(bd.Y2-bd.Y1)))
			for i := 1; i < steps; i++ {
				t := float64(i) / float64(steps)
				plot(bd.X1+t*(bd.X2-bd.X1), bd.Y1+t*(bd.Y2-bd.Y1), cell{r: '·'})
			}
		}
		for _, a := range scene.Atoms {
			plot(a.X, a.Y, cell{r: atomRune(a.Label), color: styles.Hex(styles.ElementColor(a.Label))})
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var sb strings.Builder
		for _, v := range row {
			switch {
			case v.r == ' ':
				sb.WriteRune(' ')
			case v.color == "":
				sb.WriteString(viewerBondStyle.Render(string(v.r)))
			default:
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(v.color)).Bold(true).Render(string(v.r)))
			}
		}
		lines[y] = sb.String()
	}
	return lines
}

func atomRune(label string) rune {
	for _, r := range label {
		return r
	}
	return 'o'
}

// wrapDegrees maps an angle into [-180, 180).
func wrapDegrees(d float64) float64 {
	d = math.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}
