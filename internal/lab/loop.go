package lab

import (
	"context"
	"sort"
	"time"
)

// Step schedules a command before the tick with the given index.
type Step struct {
	Tick    int     `yaml:"tick"`
	Command Command `yaml:",inline"`
}

// Loop drives a Lab at a fixed tick rate. Ticks, scripted steps and live
// commands all run on the goroutine calling Run.
type Loop struct {
	Lab *Lab

	// Rate is the target ticks per second; 0 ticks as fast as possible.
	Rate int

	// MaxTicks stops the loop after that many ticks; 0 runs until ctx is done.
	MaxTicks int

	Script   []Step
	Commands <-chan Command

	// OnError is called for every rejected command. The loop keeps running.
	OnError func(cmd Command, err error)
}

func (lp *Loop) Run(ctx context.Context) error {
	script := make([]Step, len(lp.Script))
	copy(script, lp.Script)
	sort.SliceStable(script, func(i, j int) bool { return script[i].Tick < script[j].Tick })

	var tickC <-chan time.Time
	if lp.Rate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(lp.Rate))
		defer ticker.Stop()
		tickC = ticker.C
	}

	commands := lp.Commands
	n := 0
	for lp.MaxTicks == 0 || n < lp.MaxTicks {
		for len(script) > 0 && script[0].Tick <= n {
			lp.apply(script[0].Command)
			script = script[1:]
		}

		if tickC == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case cmd, ok := <-commands:
				if !ok {
					commands = nil
					continue
				}
				lp.apply(cmd)
				continue
			default:
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case cmd, ok := <-commands:
				if !ok {
					commands = nil
					continue
				}
				lp.apply(cmd)
				continue
			case <-tickC:
			}
		}

		lp.Lab.Tick()
		n++
	}
	return nil
}

func (lp *Loop) apply(cmd Command) {
	if err := lp.Lab.Apply(cmd); err != nil && lp.OnError != nil {
		lp.OnError(cmd, err)
	}
}
