//go:build !linux

package serial

import (
	"fmt"
	"slices"
	"sort"

	bugst "go.bug.st/serial"
)

// ListPorts returns the serial ports the operating system reports.
func ListPorts() ([]string, error) {
	ports, err := bugst.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	sort.Strings(ports)
	return ports, nil
}

func portExists(path string) bool {
	ports, err := bugst.GetPortsList()
	if err != nil {
		return false
	}
	return slices.Contains(ports, path)
}
