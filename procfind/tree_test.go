//go:build windows

package procfind

import "testing"

func TestDescendantsStopOnStalePPIDCycle(t *testing.T) {
	// PPIDs are captured at creation, so pid reuse can leave two live
	// processes pointing at each other. The walk must still terminate.
	all := []ProcessInfo{
		{PID: 10, PPID: 20, Name: "a.exe"},
		{PID: 20, PPID: 10, Name: "b.exe"},
	}

	got := descendantsOf(all, 10)
	if len(got) != 1 || got[0].PID != 20 {
		t.Fatalf("descendantsOf(10) = %v, want just pid 20", got)
	}
}

func TestDescendantsWalkChain(t *testing.T) {
	all := []ProcessInfo{
		{PID: 1, PPID: 0},
		{PID: 2, PPID: 1},
		{PID: 3, PPID: 2},
		{PID: 4, PPID: 99},
	}

	got := descendantsOf(all, 1)
	if len(got) != 2 {
		t.Fatalf("descendantsOf(1) = %v, want pids 2 and 3", got)
	}
	for _, info := range got {
		if info.PID != 2 && info.PID != 3 {
			t.Fatalf("unexpected descendant %d", info.PID)
		}
	}
}

func TestBuildTreeStopsOnStalePPIDCycle(t *testing.T) {
	all := []ProcessInfo{
		{PID: 10, PPID: 20, Name: "a.exe"},
		{PID: 20, PPID: 10, Name: "b.exe"},
	}

	node := buildTree(all, 10)
	if node == nil {
		t.Fatal("buildTree returned nil for a present root")
	}
	if node.Process.PID != 10 {
		t.Fatalf("root pid = %d, want 10", node.Process.PID)
	}
	if len(node.Children) != 1 || node.Children[0].Process.PID != 20 {
		t.Fatalf("children = %v, want just pid 20", node.Children)
	}
	if len(node.Children[0].Children) != 0 {
		t.Fatal("stale back-edge to the root was placed in the tree")
	}
}

func TestBuildTreeMissingRoot(t *testing.T) {
	if node := buildTree([]ProcessInfo{{PID: 1, PPID: 0}}, 42); node != nil {
		t.Fatalf("buildTree for an absent pid = %v, want nil", node)
	}
}
