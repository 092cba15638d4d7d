package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/redshift/internal/lab"
	"github.com/san-kum/redshift/internal/wave"
)

const (
	frameInterval = 16 * time.Millisecond
	historyLen    = 120
)

type input struct {
	kind  lab.CommandKind
	label string
	unit  string
}

var inputs = []input{
	{lab.CommandWavelength, "wavelength", "nm"},
	{lab.CommandMass, "black hole mass", "M☉"},
	{lab.CommandRadius, "emission radius", "km"},
}

type model struct {
	lab   *lab.Lab
	frame lab.Frame
	steps int
	log   *slog.Logger

	cursor  int
	editing bool
	editBuf string
	values  []string
	notice  string

	emittedHist  []float64
	observedHist []float64

	width  int
	height int
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// NewInteractiveApp wraps a lab for the terminal. rate is the target number
// of lab ticks per second; each 16ms frame runs its share of them.
func NewInteractiveApp(l *lab.Lab, rate int, logger *slog.Logger) *model {
	steps := rate * int(frameInterval/time.Millisecond) / 1000
	if steps < 1 {
		steps = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	obs := l.Source(wave.Observer)
	return &model{
		lab:   l,
		frame: l.Frame(),
		steps: steps,
		log:   logger,
		values: []string{
			formatValue(l.LastWavelength()),
			formatValue(obs.Mass()),
			radiusValue(l),
		},
		emittedHist:  make([]float64, 0, historyLen),
		observedHist: make([]float64, 0, historyLen),
		width:        100,
		height:       40,
	}
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		for i := 0; i < m.steps; i++ {
			if !m.lab.Tick() {
				break
			}
		}
		m.frame = m.lab.Frame()
		if m.lab.Clock().Running() {
			m.record()
		}
		return m, tick()
	}
	return m, nil
}

func (m *model) record() {
	if e, ok := m.frame.Emitted.Origin(); ok {
		m.emittedHist = appendHist(m.emittedHist, e.E.Y)
	}
	if o, ok := m.frame.Observed.Origin(); ok {
		m.observedHist = appendHist(m.observedHist, o.E.Y)
	}
}

func appendHist(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyLen {
		h = h[1:]
	}
	return h
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(inputs)
	case "enter":
		m.editing = true
		m.editBuf = ""
		m.notice = ""
	case " ", "p":
		m.lab.ToggleRun()
		m.frame = m.lab.Frame()
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.submit()
	case "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			r := []rune(m.editBuf)
			m.editBuf = string(r[:len(r)-1])
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.editBuf += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *model) submit() {
	in := inputs[m.cursor]
	m.editing = false
	err := m.lab.Apply(lab.Command{Kind: in.kind, Payload: m.editBuf})
	if err != nil {
		m.log.Debug("input rejected", "field", in.label, "error", err)
		m.notice = lab.Notice(err)
	} else {
		m.notice = ""
		m.values[m.cursor] = strings.TrimSpace(m.editBuf)
		m.emittedHist = m.emittedHist[:0]
		m.observedHist = m.observedHist[:0]
	}
	m.editBuf = ""
	m.frame = m.lab.Frame()
}

func (m model) View() string {
	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render(m.frame.State.String())
	if m.frame.State == lab.Paused {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render(m.frame.State.String())
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n\n",
		statusIcon, cyan.Render("r e d s h i f t"), statusText,
		dim.Render(fmt.Sprintf("tick %d  %s", m.frame.Tick, m.lab.Fidelity()))))

	cw := m.width - 50
	if cw < minCanvasW {
		cw = minCanvasW
	}
	ch := (m.height - 20) / 2
	if ch < minCanvasH {
		ch = minCanvasH
	}

	b.WriteString(m.viewPanel("The emitted wave", m.frame.Emitted, cw, ch))
	b.WriteString("\n")
	b.WriteString(m.viewPanel("The observed wave", m.frame.Observed, cw, ch))
	b.WriteString("\n")

	if len(m.emittedHist) > 1 && len(m.observedHist) > 1 {
		graph := asciigraph.PlotMany([][]float64{m.emittedHist, m.observedHist},
			asciigraph.Height(4),
			asciigraph.Width(cw),
			asciigraph.SeriesColors(asciigraph.DarkOrange, asciigraph.Red),
			asciigraph.Caption("E at x=0: emitted / observed"),
		)
		b.WriteString(graph + "\n\n")
	}

	for i, in := range inputs {
		val := m.values[i]
		if m.editing && i == m.cursor {
			val = m.editBuf + "▋"
		}
		line := fmt.Sprintf("%-16s %12s %s", in.label, val, in.unit)
		if i == m.cursor {
			b.WriteString("   " + cyan.Render("▸ ") + white.Render(line) + "\n")
		} else {
			b.WriteString("     " + dim.Render(line) + "\n")
		}
	}

	if m.notice != "" {
		b.WriteString("\n   " + red.Render(m.notice) + "\n")
	}

	b.WriteString("\n" + dim.Render(fmt.Sprintf("   ↑↓ select  enter edit  space %s  q quit", strings.ToLower(m.frame.RunLabel))) + "\n")
	b.WriteString(dimmer.Render("   green marker: one wavelength   ⊙/⊗ magnetic field out of/into the page") + "\n")
	return b.String()
}

func (m model) viewPanel(title string, p lab.Panel, w, h int) string {
	rows := drawPanel(p, w, h)
	for i, row := range rows {
		switch {
		case i == len(rows)-1:
			rows[i] = green.Render(row)
		default:
			rows[i] = orange.Render(row)
		}
	}
	canvas := lipgloss.JoinVertical(lipgloss.Left, rows...)
	status := statusBox.Render(p.Status)
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, status)
	return "   " + cyan.Render(title) + "\n" + panelBox.Render(body) + "\n"
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}

func radiusValue(l *lab.Lab) string {
	if r, ok := l.Source(wave.Observer).EmissionRadius(); ok {
		return formatValue(r)
	}
	return "unset"
}

func RunInteractive(l *lab.Lab, rate int, logger *slog.Logger) error {
	p := tea.NewProgram(NewInteractiveApp(l, rate, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
