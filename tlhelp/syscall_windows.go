//go:build windows

package tlhelp

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32 = syscall.NewLazyDLL("kernel32.dll")

	procHeap32ListFirst             = modkernel32.NewProc("Heap32ListFirst")
	procHeap32ListNext              = modkernel32.NewProc("Heap32ListNext")
	procHeap32First                 = modkernel32.NewProc("Heap32First")
	procHeap32Next                  = modkernel32.NewProc("Heap32Next")
	procToolhelp32ReadProcessMemory = modkernel32.NewProc("Toolhelp32ReadProcessMemory")
)

// heapList32 mirrors HEAPLIST32. golang.org/x/sys/windows stops short of
// the heap-walking half of the toolhelp API, so the layouts live here.
// Size is a SIZE_T and HeapID a ULONG_PTR, hence uintptr.
type heapList32 struct {
	Size      uintptr
	ProcessID uint32
	HeapID    uintptr
	Flags     uint32
}

// heapEntry32 mirrors HEAPENTRY32.
type heapEntry32 struct {
	Size      uintptr
	Handle    windows.Handle
	Address   uintptr
	BlockSize uintptr
	Flags     uint32
	LockCount uint32
	resvd     uint32
	ProcessID uint32
	HeapID    uintptr
}

// HEAPLIST32 dwFlags values.
const (
	HF32_DEFAULT = 1
	HF32_SHARED  = 2
)

// HEAPENTRY32 dwFlags values.
const (
	LF32_FIXED    = 0x1
	LF32_FREE     = 0x2
	LF32_MOVEABLE = 0x4
)

func heap32ListFirst(snapshot windows.Handle, hl *heapList32) error {
	ret, _, err := procHeap32ListFirst.Call(uintptr(snapshot), uintptr(unsafe.Pointer(hl)))
	if ret == 0 {
		return err
	}
	return nil
}

func heap32ListNext(snapshot windows.Handle, hl *heapList32) error {
	ret, _, err := procHeap32ListNext.Call(uintptr(snapshot), uintptr(unsafe.Pointer(hl)))
	if ret == 0 {
		return err
	}
	return nil
}

func heap32First(he *heapEntry32, pid uint32, heapID uintptr) error {
	ret, _, err := procHeap32First.Call(uintptr(unsafe.Pointer(he)), uintptr(pid), heapID)
	if ret == 0 {
		return err
	}
	return nil
}

func heap32Next(he *heapEntry32) error {
	ret, _, err := procHeap32Next.Call(uintptr(unsafe.Pointer(he)))
	if ret == 0 {
		return err
	}
	return nil
}

func toolhelp32ReadProcessMemory(pid uint32, addr uintptr, buf *byte, size uintptr, read *uintptr) error {
	ret, _, err := procToolhelp32ReadProcessMemory.Call(
		uintptr(pid),
		addr,
		uintptr(unsafe.Pointer(buf)),
		size,
		uintptr(unsafe.Pointer(read)),
	)
	if ret == 0 {
		return err
	}
	return nil
}
