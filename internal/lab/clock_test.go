package lab

import "testing"

func TestClockToggle(t *testing.T) {
	c := NewClock()
	if !c.Running() || c.Label() != "Pause" {
		t.Fatalf("expected running clock labelled Pause, got %s %q", c.State(), c.Label())
	}

	if s := c.Toggle(); s != Paused || c.Label() != "Resume" {
		t.Errorf("expected paused clock labelled Resume, got %s %q", s, c.Label())
	}

	if s := c.Toggle(); s != Running || c.Label() != "Pause" {
		t.Errorf("expected running clock after two toggles, got %s %q", s, c.Label())
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"500", 500, true},
		{" 707.1 ", 707.1, true},
		{"1e3", 1000, true},
		{"-5", -5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"5nm", 0, false},
		{"NaN", 0, false},
		{"-Inf", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseNumber(tt.input)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("%q: expected %g, got %g (%v)", tt.input, tt.want, got, err)
		}
		if !tt.ok && err != ErrInvalidInput {
			t.Errorf("%q: expected ErrInvalidInput, got %v", tt.input, err)
		}
	}
}

func TestParseFidelity(t *testing.T) {
	for in, want := range map[string]Fidelity{"": Reference, "reference": Reference, "corrected": Corrected} {
		got, err := ParseFidelity(in)
		if err != nil || got != want {
			t.Errorf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParseFidelity("exact"); err == nil {
		t.Error("expected error for unknown fidelity")
	}
}
