//go:build windows

package tlhelp

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// ProcessEntry describes one running process taken from a process
// snapshot.
type ProcessEntry struct {
	ProcessID       uint32
	Threads         uint32
	ParentProcessID uint32
	BasePriority    int32
	ExeFile         string
}

// ModuleEntry describes one module loaded into a process.
//
// ModuleHandle is an opaque token owned by the target process; never pass
// it to CloseHandle or FreeLibrary. BaseAddr is an address in the target
// process, not a pointer valid in this one.
type ModuleEntry struct {
	ProcessID    uint32
	BaseAddr     uintptr
	BaseSize     uint32
	ModuleHandle windows.Handle
	Module       string
	ExePath      string
}

// ThreadEntry describes one thread taken from a thread snapshot.
type ThreadEntry struct {
	ThreadID       uint32
	OwnerProcessID uint32
	BasePriority   int32
}

// ProcessSnapshot enumerates all processes on the system.
type ProcessSnapshot = Snapshot[windows.ProcessEntry32, ProcessEntry]

// ModuleSnapshot enumerates the modules loaded into one process.
type ModuleSnapshot = Snapshot[windows.ModuleEntry32, ModuleEntry]

// ThreadSnapshot enumerates all threads on the system.
type ThreadSnapshot = Snapshot[windows.ThreadEntry32, ThreadEntry]

var processTag = tag[windows.ProcessEntry32, ProcessEntry]{
	flags: windows.TH32CS_SNAPPROCESS,
	init: func(raw *windows.ProcessEntry32) {
		*raw = windows.ProcessEntry32{Size: uint32(unsafe.Sizeof(*raw))}
	},
	first: windows.Process32First,
	next:  windows.Process32Next,
	decode: func(raw *windows.ProcessEntry32) ProcessEntry {
		return ProcessEntry{
			ProcessID:       raw.ProcessID,
			Threads:         raw.Threads,
			ParentProcessID: raw.ParentProcessID,
			BasePriority:    raw.PriClassBase,
			ExeFile:         windows.UTF16ToString(raw.ExeFile[:]),
		}
	},
}

var moduleTag = tag[windows.ModuleEntry32, ModuleEntry]{
	flags: windows.TH32CS_SNAPMODULE | windows.TH32CS_SNAPMODULE32,
	init: func(raw *windows.ModuleEntry32) {
		*raw = windows.ModuleEntry32{Size: uint32(unsafe.Sizeof(*raw))}
	},
	first: windows.Module32First,
	next:  windows.Module32Next,
	decode: func(raw *windows.ModuleEntry32) ModuleEntry {
		return ModuleEntry{
			ProcessID:    raw.ProcessID,
			BaseAddr:     raw.ModBaseAddr,
			BaseSize:     raw.ModBaseSize,
			ModuleHandle: raw.ModuleHandle,
			Module:       windows.UTF16ToString(raw.Module[:]),
			ExePath:      windows.UTF16ToString(raw.ExePath[:]),
		}
	},
}

var threadTag = tag[windows.ThreadEntry32, ThreadEntry]{
	flags: windows.TH32CS_SNAPTHREAD,
	init: func(raw *windows.ThreadEntry32) {
		*raw = windows.ThreadEntry32{Size: uint32(unsafe.Sizeof(*raw))}
	},
	first: windows.Thread32First,
	next:  windows.Thread32Next,
	decode: func(raw *windows.ThreadEntry32) ThreadEntry {
		return ThreadEntry{
			ThreadID:       raw.ThreadID,
			OwnerProcessID: raw.OwnerProcessID,
			BasePriority:   raw.BasePri,
		}
	},
}

// NewProcessSnapshot captures every process on the system
// (TH32CS_SNAPPROCESS). Close the returned snapshot when done.
func NewProcessSnapshot() (*ProcessSnapshot, error) {
	return newSnapshot(processTag, 0)
}

// NewModuleSnapshot captures the modules of the process identified by pid
// (TH32CS_SNAPMODULE|TH32CS_SNAPMODULE32). pid 0 means the calling
// process. Close the returned snapshot when done.
func NewModuleSnapshot(pid uint32) (*ModuleSnapshot, error) {
	return newSnapshot(moduleTag, pid)
}

// NewThreadSnapshot captures every thread on the system
// (TH32CS_SNAPTHREAD); filter on OwnerProcessID for a single process.
// Close the returned snapshot when done.
func NewThreadSnapshot() (*ThreadSnapshot, error) {
	return newSnapshot(threadTag, 0)
}

// ProcessSnapshotFromHandle wraps an already-open snapshot handle. It does
// not verify that the handle was created with the process flags; a handle
// of the wrong kind yields a snapshot that is exhausted from the start.
// The returned snapshot takes ownership of the handle.
func ProcessSnapshotFromHandle(handle windows.Handle) (*ProcessSnapshot, error) {
	return fromHandle(processTag, handle)
}

// ModuleSnapshotFromHandle wraps an already-open snapshot handle. See
// ProcessSnapshotFromHandle for the caveats.
func ModuleSnapshotFromHandle(handle windows.Handle) (*ModuleSnapshot, error) {
	return fromHandle(moduleTag, handle)
}

// ThreadSnapshotFromHandle wraps an already-open snapshot handle. See
// ProcessSnapshotFromHandle for the caveats.
func ThreadSnapshotFromHandle(handle windows.Handle) (*ThreadSnapshot, error) {
	return fromHandle(threadTag, handle)
}
