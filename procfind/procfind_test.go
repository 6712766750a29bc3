//go:build windows

package procfind

import (
	"errors"
	"testing"

	"golang.org/x/sys/windows"
)

func TestFindProcessByPIDSelf(t *testing.T) {
	f := NewFinder()
	self := windows.GetCurrentProcessId()

	info, err := f.FindProcessByPID(self)
	if err != nil {
		t.Fatal(err)
	}
	if info.PID != self {
		t.Fatalf("PID = %d, want %d", info.PID, self)
	}
	if info.Name == "" {
		t.Error("own process has empty Name")
	}
	if info.Threads < 1 {
		t.Errorf("own process reports %d threads", info.Threads)
	}
}

func TestFindProcessByPIDMissing(t *testing.T) {
	f := NewFinder()
	// Pids are multiples of 4; 3 can never exist.
	if _, err := f.FindProcessByPID(3); !errors.Is(err, ErrProcessNotFound) {
		t.Fatalf("err = %v, want ErrProcessNotFound", err)
	}
}

func TestPidOfSelf(t *testing.T) {
	f := NewFinder()
	self := windows.GetCurrentProcessId()
	info, err := f.FindProcessByPID(self)
	if err != nil {
		t.Fatal(err)
	}

	pids, err := PidOf(info.Name)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, pid := range pids {
		if pid == self {
			found = true
		}
	}
	if !found {
		t.Fatalf("PidOf(%q) = %v, own pid %d missing", info.Name, pids, self)
	}
}

func TestPidOfEmptyName(t *testing.T) {
	if _, err := PidOf(""); err == nil {
		t.Fatal("PidOf(\"\") did not fail")
	}
}

func TestFindProcessByNamePatternBad(t *testing.T) {
	if _, err := NewFinder().FindProcessByNamePattern("("); err == nil {
		t.Fatal("bad pattern did not fail")
	}
}

func TestGetProcessTreeSelf(t *testing.T) {
	f := NewFinder()
	self := windows.GetCurrentProcessId()

	node, err := f.GetProcessTree(self)
	if err != nil {
		t.Fatal(err)
	}
	if node.Process.PID != self {
		t.Fatalf("tree root pid = %d, want %d", node.Process.PID, self)
	}
}

func TestModulesAndThreadsOfSelf(t *testing.T) {
	self := windows.GetCurrentProcessId()

	mods, err := Modules(self)
	if err != nil {
		t.Fatal(err)
	}
	if len(mods) == 0 {
		t.Fatal("no modules for the current process")
	}

	threads, err := Threads(self)
	if err != nil {
		t.Fatal(err)
	}
	if len(threads) == 0 {
		t.Fatal("no threads for the current process")
	}
	for _, th := range threads {
		if th.OwnerProcessID != self {
			t.Fatalf("thread %d owned by %d, filter broken", th.ThreadID, th.OwnerProcessID)
		}
	}
}
