package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/redshift/internal/lab"
)

// LoadScript reads a list of scheduled commands:
//
//	- tick: 0
//	  command: mass
//	  value: "1000"
func LoadScript(path string) ([]lab.Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var steps []lab.Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i, s := range steps {
		if s.Tick < 0 {
			return nil, fmt.Errorf("%w: %s: step %d has negative tick", ErrInvalidConfig, path, i)
		}
		if s.Command.Kind == "" {
			return nil, fmt.Errorf("%w: %s: step %d has no command", ErrInvalidConfig, path, i)
		}
	}
	return steps, nil
}
