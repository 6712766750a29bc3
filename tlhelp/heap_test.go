//go:build windows

package tlhelp

import (
	"testing"
	"unsafe"

	"golang.org/x/sys/windows"
)

func TestHeapListSnapshotOfSelf(t *testing.T) {
	pid := windows.GetCurrentProcessId()
	snap, err := NewHeapListSnapshot(pid)
	if err != nil {
		t.Fatal(err)
	}
	defer snap.Close()

	heaps := 0
	for hl := range snap.All() {
		heaps++
		if hl.ProcessID != pid {
			t.Errorf("heap list ProcessID = %d, want %d", hl.ProcessID, pid)
		}
		if hl.HeapID == 0 {
			t.Error("heap list has zero HeapID")
		}

		// Walk a bounded number of blocks; walking a busy heap to the
		// end can take a while and the protocol is what matters here.
		blocks := 0
		for block := range hl.All() {
			if block.ProcessID != pid {
				t.Errorf("block ProcessID = %d, want %d", block.ProcessID, pid)
			}
			if block.HeapID != hl.HeapID {
				t.Errorf("block HeapID = %#x, want %#x", block.HeapID, hl.HeapID)
			}
			blocks++
			if blocks >= 1000 {
				break
			}
		}
	}
	if err := snap.Err(); err != nil {
		t.Fatalf("heap list walk stopped early: %v", err)
	}
	// Every process owns at least its default heap.
	if heaps == 0 {
		t.Fatal("no heaps reported for the current process")
	}
}

func TestHeapListExhaustionIsTerminal(t *testing.T) {
	snap, err := NewHeapListSnapshot(windows.GetCurrentProcessId())
	if err != nil {
		t.Fatal(err)
	}
	defer snap.Close()

	hl, ok := snap.Next()
	if !ok {
		t.Fatal("no heaps to test with")
	}
	for range hl.All() {
	}
	for i := 0; i < 3; i++ {
		if _, ok := hl.Next(); ok {
			t.Fatal("heap cursor yielded a block after exhaustion")
		}
	}
}

func TestHeapListEmptyCursorIsStillValid(t *testing.T) {
	// A heap list whose block walk cannot start is a usable entry with an
	// empty sequence: the two failure surfaces are independent.
	raw := heapList32{
		Size:      unsafe.Sizeof(heapList32{}),
		ProcessID: windows.GetCurrentProcessId(),
		HeapID:    1, // not a real heap id, Heap32First will refuse it
		Flags:     HF32_DEFAULT,
	}
	hl := heapListTag.decode(&raw)
	if hl.ProcessID != raw.ProcessID || hl.HeapID != 1 || hl.Flags != HF32_DEFAULT {
		t.Fatalf("heap list fields not mapped: %+v", hl)
	}
	if _, ok := hl.Next(); ok {
		t.Fatal("cursor over a nonexistent heap yielded a block")
	}
}

func TestHeapRawSizes(t *testing.T) {
	// The self-reported sizes the provider checks before populating.
	var hl heapList32
	heapListTag.init(&hl)
	if hl.Size != unsafe.Sizeof(hl) {
		t.Fatalf("heapList32 Size = %d, want %d", hl.Size, unsafe.Sizeof(hl))
	}
	he := heapEntry32{Size: unsafe.Sizeof(heapEntry32{})}
	if he.Size == 0 {
		t.Fatal("heapEntry32 has zero size")
	}
}
