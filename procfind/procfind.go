//go:build windows

// Package procfind discovers processes and their relationships by walking
// toolhelp snapshots.
package procfind

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gotlhelp/tlhelp"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// ErrProcessNotFound is returned when no process matches the query.
var ErrProcessNotFound = errors.New("process not found")

// ProcessInfo contains basic information about a process
type ProcessInfo struct {
	PID          uint32 // Process ID
	PPID         uint32 // Parent Process ID
	Name         string // Executable file name
	Threads      int    // Number of threads
	BasePriority int32  // Base priority of threads created by the process
}

// ProcessTreeNode represents a node in a process tree
type ProcessTreeNode struct {
	Process  ProcessInfo
	Children []*ProcessTreeNode
}

// Finder answers process discovery queries. Each query takes a fresh
// snapshot, so results reflect the system at call time.
type Finder struct {
	log *logger.Logger
}

// NewFinder creates a new Finder instance
func NewFinder() *Finder {
	return &Finder{
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "procfind")),
	}
}

// FindAllProcesses returns information about all running processes.
func (f *Finder) FindAllProcesses() ([]ProcessInfo, error) {
	snap, err := tlhelp.NewProcessSnapshot()
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	var out []ProcessInfo
	for entry := range snap.All() {
		out = append(out, infoFromEntry(entry))
	}
	if err := snap.Err(); err != nil {
		return nil, fmt.Errorf("process walk stopped early: %w", err)
	}
	f.log.Debugln("Enumerated", len(out), "processes")
	return out, nil
}

// FindProcessByPID finds a process by its PID. Returns ErrProcessNotFound
// if the pid is not running.
func (f *Finder) FindProcessByPID(pid uint32) (*ProcessInfo, error) {
	all, err := f.FindAllProcesses()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].PID == pid {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("pid %d: %w", pid, ErrProcessNotFound)
}

// FindProcessByName finds processes by their executable name. The match is
// exact but case-insensitive, the way Windows treats file names.
func (f *Finder) FindProcessByName(name string) ([]ProcessInfo, error) {
	all, err := f.FindAllProcesses()
	if err != nil {
		return nil, err
	}
	var out []ProcessInfo
	for _, info := range all {
		if strings.EqualFold(info.Name, name) {
			out = append(out, info)
		}
	}
	f.log.Debugln("Name", name, "matched", len(out), "processes")
	return out, nil
}

// FindProcessByNamePattern finds processes whose executable name matches
// the regular expression pattern.
func (f *Finder) FindProcessByNamePattern(pattern string) ([]ProcessInfo, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	all, err := f.FindAllProcesses()
	if err != nil {
		return nil, err
	}
	var out []ProcessInfo
	for _, info := range all {
		if re.MatchString(info.Name) {
			out = append(out, info)
		}
	}
	return out, nil
}

func infoFromEntry(entry tlhelp.ProcessEntry) ProcessInfo {
	return ProcessInfo{
		PID:          entry.ProcessID,
		PPID:         entry.ParentProcessID,
		Name:         entry.ExeFile,
		Threads:      int(entry.Threads),
		BasePriority: entry.BasePriority,
	}
}
