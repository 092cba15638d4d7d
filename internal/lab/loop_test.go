package lab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/redshift/internal/wave"
)

func TestLoopMaxTicks(t *testing.T) {
	l := New(DefaultOptions())
	lp := &Loop{Lab: l, MaxTicks: 100}

	if err := lp.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if l.Ticks() != 100 {
		t.Errorf("expected 100 ticks, got %d", l.Ticks())
	}
}

func TestLoopScript(t *testing.T) {
	l := New(DefaultOptions())
	var rejected []Command
	lp := &Loop{
		Lab:      l,
		MaxTicks: 30,
		Script: []Step{
			{Tick: 20, Command: Command{Kind: CommandToggle}},
			{Tick: 0, Command: Command{Kind: CommandMass, Payload: "1000"}},
			{Tick: 5, Command: Command{Kind: CommandRadius, Payload: "6000"}},
			{Tick: 6, Command: Command{Kind: CommandRadius, Payload: "far"}},
		},
		OnError: func(cmd Command, err error) { rejected = append(rejected, cmd) },
	}

	if err := lp.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	obs := l.Source(wave.Observer)
	if _, ok := obs.Observed(); !ok {
		t.Error("expected observation after scripted radius")
	}
	if len(rejected) != 1 || rejected[0].Payload != "far" {
		t.Errorf("expected one rejected command, got %v", rejected)
	}
	if l.Clock().Running() {
		t.Error("expected clock paused by script")
	}
	// radius command at tick 5 restarts the observer clock; pause at tick 20
	if want := 15 * obs.TimeStep(); obs.Time() < want*0.999 || obs.Time() > want*1.001 {
		t.Errorf("expected observer time %g, got %g", want, obs.Time())
	}
	if l.Ticks() != 20 {
		t.Errorf("expected 20 advancing ticks, got %d", l.Ticks())
	}
}

func TestLoopCommandsChannel(t *testing.T) {
	l := New(DefaultOptions())
	cmds := make(chan Command, 2)
	cmds <- Command{Kind: CommandWavelength, Payload: "650"}
	close(cmds)

	lp := &Loop{Lab: l, MaxTicks: 10, Commands: cmds}
	if err := lp.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if l.LastWavelength() != 650 {
		t.Errorf("expected wavelength 650, got %g", l.LastWavelength())
	}
}

func TestLoopCancel(t *testing.T) {
	l := New(DefaultOptions())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	lp := &Loop{Lab: l, Rate: 1000}
	err := lp.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if l.Ticks() == 0 {
		t.Error("expected some ticks before cancellation")
	}
}
