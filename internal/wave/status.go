package wave

import "fmt"

// Status renders the human-readable description shown beside each frame.
func (s *Source) Status() string {
	w, f := s.Effective()
	if s.frame == Observer {
		return fmt.Sprintf("Wavelength: %g nm\nRedshift Ratio: %g\nSchwarzschild Radius: %g km\nFrequency: %g hertz (Hz)",
			w, s.redshift, s.rs, f)
	}
	return fmt.Sprintf("Wavelength: %g nm\nSchwarzschild Radius: %g km\nFrequency: %g hertz (Hz)",
		w, s.rs, f)
}
