//go:build windows

package procfind

import "gotlhelp/tlhelp"

// Modules returns the modules loaded into the process identified by pid.
func Modules(pid uint32) ([]tlhelp.ModuleEntry, error) {
	snap, err := tlhelp.NewModuleSnapshot(pid)
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	var out []tlhelp.ModuleEntry
	for entry := range snap.All() {
		out = append(out, entry)
	}
	return out, snap.Err()
}

// Threads returns the threads owned by the process identified by pid. The
// thread snapshot is system-wide; this filters it down.
func Threads(pid uint32) ([]tlhelp.ThreadEntry, error) {
	snap, err := tlhelp.NewThreadSnapshot()
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	var out []tlhelp.ThreadEntry
	for entry := range snap.All() {
		if entry.OwnerProcessID == pid {
			out = append(out, entry)
		}
	}
	return out, snap.Err()
}
