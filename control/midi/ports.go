package midi

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2/drivers"
)

// InPorts lists the names of the available input ports. It needs a
// registered driver.
func InPorts() ([]string, error) {
	ins, err := drivers.Ins()
	if err != nil {
		return nil, fmt.Errorf("midi: list inputs: %w", err)
	}

	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}

	return names, nil
}

// FindInPort returns the first input port whose name contains name,
// case-insensitively.
func FindInPort(name string) (drivers.In, error) {
	ins, err := drivers.Ins()
	if err != nil {
		return nil, fmt.Errorf("midi: list inputs: %w", err)
	}

	want := strings.ToLower(name)
	for _, in := range ins {
		if strings.Contains(strings.ToLower(in.String()), want) {
			return in, nil
		}
	}

	return nil, fmt.Errorf("midi: no input port matching %q", name)
}

// Close shuts down the registered driver.
func Close() {
	drivers.Close()
}
