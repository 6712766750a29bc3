//go:build windows

package procfind

import (
	"errors"
	"os"
	"strings"

	"gotlhelp/tlhelp"
)

// PidOf returns the pids of all processes whose executable name equals
// name (case-insensitive). The slice is empty when nothing matches.
func PidOf(name string) ([]uint32, error) {
	if name == "" {
		return nil, errors.New("empty name")
	}
	snap, err := tlhelp.NewProcessSnapshot()
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	var pids []uint32
	for entry := range snap.All() {
		if strings.EqualFold(entry.ExeFile, name) {
			pids = append(pids, entry.ProcessID)
		}
	}
	return pids, snap.Err()
}

// OneByName returns the first match for name (lowest PID), or
// os.ErrNotExist if none.
func OneByName(name string) (*ProcessInfo, error) {
	f := NewFinder()
	ps, err := f.FindProcessByName(name)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, os.ErrNotExist
	}
	// pick the lowest PID for determinism
	minIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i].PID < ps[minIdx].PID {
			minIdx = i
		}
	}
	return &ps[minIdx], nil
}
