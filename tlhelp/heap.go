//go:build windows

package tlhelp

import (
	"iter"
	"unsafe"

	"golang.org/x/sys/windows"
)

// HeapList describes one heap of a process and doubles as the cursor over
// that heap's blocks. The cursor is seeded when the heap-list snapshot
// decodes the entry, so a HeapList is immediately iterable; it owns no
// handle of its own and needs no Close.
type HeapList struct {
	ProcessID uint32
	HeapID    uintptr
	Flags     uint32

	raw heapEntry32
	ok  bool
	err error
}

// HeapEntry describes one block of a heap.
//
// Handle is an opaque token for the block, owned by the heap; never close
// it. Address and BlockSize refer to memory of the target process.
type HeapEntry struct {
	Handle    windows.Handle
	Address   uintptr
	BlockSize uintptr
	Flags     uint32
	LockCount uint32
	ProcessID uint32
	HeapID    uintptr
}

// HeapListSnapshot enumerates the heaps of one process. Each entry is
// itself a cursor over that heap's blocks.
type HeapListSnapshot = Snapshot[heapList32, *HeapList]

var heapListTag = tag[heapList32, *HeapList]{
	flags: windows.TH32CS_SNAPHEAPLIST,
	init: func(raw *heapList32) {
		*raw = heapList32{Size: unsafe.Sizeof(*raw)}
	},
	first: heap32ListFirst,
	next:  heap32ListNext,
	decode: func(raw *heapList32) *HeapList {
		hl := &HeapList{
			ProcessID: raw.ProcessID,
			HeapID:    raw.HeapID,
			Flags:     raw.Flags,
		}
		// Seed the block cursor. A failure here is a normal empty walk:
		// the heap may have no walkable blocks or may be gone already.
		hl.raw = heapEntry32{Size: unsafe.Sizeof(hl.raw)}
		if err := heap32First(&hl.raw, raw.ProcessID, raw.HeapID); err != nil {
			hl.stop(err)
		} else {
			hl.ok = true
		}
		return hl
	},
}

// NewHeapListSnapshot captures the heaps of the process identified by pid
// (TH32CS_SNAPHEAPLIST). pid 0 means the calling process. Close the
// returned snapshot when done.
func NewHeapListSnapshot(pid uint32) (*HeapListSnapshot, error) {
	return newSnapshot(heapListTag, pid)
}

// HeapListSnapshotFromHandle wraps an already-open snapshot handle. See
// ProcessSnapshotFromHandle for the caveats.
func HeapListSnapshotFromHandle(handle windows.Handle) (*HeapListSnapshot, error) {
	return fromHandle(heapListTag, handle)
}

// Next returns the next block of this heap. The second result is false
// once the walk is exhausted; exhaustion is terminal.
func (hl *HeapList) Next() (HeapEntry, bool) {
	if !hl.ok {
		return HeapEntry{}, false
	}
	entry := HeapEntry{
		Handle:    hl.raw.Handle,
		Address:   hl.raw.Address,
		BlockSize: hl.raw.BlockSize,
		Flags:     hl.raw.Flags,
		LockCount: hl.raw.LockCount,
		ProcessID: hl.raw.ProcessID,
		HeapID:    hl.raw.HeapID,
	}
	if err := heap32Next(&hl.raw); err != nil {
		hl.stop(err)
	}
	return entry, true
}

// All returns a single-use iterator draining the block cursor.
func (hl *HeapList) All() iter.Seq[HeapEntry] {
	return func(yield func(HeapEntry) bool) {
		for {
			entry, ok := hl.Next()
			if !ok || !yield(entry) {
				return
			}
		}
	}
}

// Err reports why the block walk stopped; nil for a normal end of list.
func (hl *HeapList) Err() error {
	return hl.err
}

func (hl *HeapList) stop(err error) {
	hl.ok = false
	if err != windows.ERROR_NO_MORE_FILES && hl.err == nil {
		hl.err = err
	}
}
