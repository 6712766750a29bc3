// Package tlhelp wraps the Windows Toolhelp32 snapshot API. It offers a
// generic Snapshot type that walks the processes, modules, threads or heap
// lists captured by CreateToolhelp32Snapshot, plus cross-process memory
// reads through Toolhelp32ReadProcessMemory.
//
// A Snapshot is a single-pass cursor: pull entries with Next (or range over
// All), check Err if you care why the walk stopped, and Close it when done.
//
//	snap, err := tlhelp.NewProcessSnapshot()
//	if err != nil {
//		return err
//	}
//	defer snap.Close()
//	for entry := range snap.All() {
//		fmt.Println(entry.ProcessID, entry.ExeFile)
//	}
package tlhelp
