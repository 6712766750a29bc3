//go:build windows

package procfind

import "fmt"

// FindChildProcesses finds all direct children of the given PID.
func (f *Finder) FindChildProcesses(parentPID uint32) ([]ProcessInfo, error) {
	all, err := f.FindAllProcesses()
	if err != nil {
		return nil, err
	}
	var out []ProcessInfo
	for _, info := range all {
		if info.PPID == parentPID && info.PID != parentPID {
			out = append(out, info)
		}
	}
	return out, nil
}

// FindDescendantProcesses finds all descendants (children, grandchildren,
// and so on) of the given PID.
func (f *Finder) FindDescendantProcesses(rootPID uint32) ([]ProcessInfo, error) {
	all, err := f.FindAllProcesses()
	if err != nil {
		return nil, err
	}
	return descendantsOf(all, rootPID), nil
}

// GetProcessTree returns a tree of processes rooted at rootPID.
func (f *Finder) GetProcessTree(rootPID uint32) (*ProcessTreeNode, error) {
	all, err := f.FindAllProcesses()
	if err != nil {
		return nil, err
	}
	node := buildTree(all, rootPID)
	if node == nil {
		return nil, fmt.Errorf("pid %d: %w", rootPID, ErrProcessNotFound)
	}
	return node, nil
}

// descendantsOf collects every process reachable from rootPID through the
// parent-child index, breadth first. PPIDs are recorded at process
// creation and go stale when pids are reused, so the index can contain
// cycles among distinct pids; the visited set keeps the walk finite.
func descendantsOf(all []ProcessInfo, rootPID uint32) []ProcessInfo {
	children := childIndex(all)
	visited := map[uint32]bool{rootPID: true}
	var out []ProcessInfo
	queue := children[rootPID]
	for len(queue) > 0 {
		info := queue[0]
		queue = queue[1:]
		if visited[info.PID] {
			continue
		}
		visited[info.PID] = true
		out = append(out, info)
		queue = append(queue, children[info.PID]...)
	}
	return out
}

// buildTree builds the tree rooted at rootPID, or nil if rootPID is not
// present. Children already placed in the tree are skipped, for the same
// stale-PPID reason as descendantsOf.
func buildTree(all []ProcessInfo, rootPID uint32) *ProcessTreeNode {
	var root *ProcessInfo
	for i := range all {
		if all[i].PID == rootPID {
			root = &all[i]
			break
		}
	}
	if root == nil {
		return nil
	}
	children := childIndex(all)
	visited := map[uint32]bool{rootPID: true}
	var build func(info ProcessInfo) *ProcessTreeNode
	build = func(info ProcessInfo) *ProcessTreeNode {
		node := &ProcessTreeNode{Process: info}
		for _, child := range children[info.PID] {
			if visited[child.PID] {
				continue
			}
			visited[child.PID] = true
			node.Children = append(node.Children, build(child))
		}
		return node
	}
	return build(*root)
}

// childIndex maps each pid to its direct children. Self-parented entries
// (the idle process reports itself) are left out so walks terminate.
func childIndex(all []ProcessInfo) map[uint32][]ProcessInfo {
	children := make(map[uint32][]ProcessInfo)
	for _, info := range all {
		if info.PID == info.PPID {
			continue
		}
		children[info.PPID] = append(children[info.PPID], info)
	}
	return children
}
