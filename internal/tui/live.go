package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/redshift/internal/lab"
)

const (
	liveWidth   = 70
	liveHeight  = 11
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints frames as plain text, at most frameRate times a
// second. It is a lab.Observer for headless runs.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{out: out, frameRate: frameRate}
}

func (r *LiveRenderer) OnFrame(f lab.Frame) {
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	fmt.Fprint(r.out, clearScreen+RenderFrame(f, liveWidth, liveHeight))
}

// RenderFrame draws both panels without colour.
func RenderFrame(f lab.Frame, w, h int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  tick=%d  %s  [%s]\n", f.Tick, f.State, f.RunLabel))
	for _, p := range []struct {
		title string
		panel lab.Panel
	}{
		{"The emitted wave", f.Emitted},
		{"The observed wave", f.Observed},
	} {
		b.WriteString("  " + strings.Repeat("-", w) + "\n")
		b.WriteString(fmt.Sprintf("  %s  t=%.4g s\n", p.title, p.panel.Time))
		for _, row := range drawPanel(p.panel, w, h) {
			b.WriteString("  " + row + "\n")
		}
		for _, line := range strings.Split(p.panel.Status, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
