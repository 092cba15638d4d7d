package lab

// RunState is the animation clock state. Both states accept commands.
type RunState int

const (
	Running RunState = iota
	Paused
)

func (s RunState) String() string {
	if s == Paused {
		return "paused"
	}
	return "running"
}

// Clock gates time advancement for every frame at once.
type Clock struct {
	state RunState
}

func NewClock() *Clock {
	return &Clock{state: Running}
}

func (c *Clock) State() RunState { return c.state }
func (c *Clock) Running() bool   { return c.state == Running }

// Toggle flips between Running and Paused and returns the new state.
func (c *Clock) Toggle() RunState {
	if c.state == Running {
		c.state = Paused
	} else {
		c.state = Running
	}
	return c.state
}

// Label is the caption of the control that would toggle the clock next.
func (c *Clock) Label() string {
	if c.state == Running {
		return "Pause"
	}
	return "Resume"
}
