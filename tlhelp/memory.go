//go:build windows

package tlhelp

import (
	"fmt"
	"io"
)

// ReadProcessMemory copies len(buf) bytes from addr in the address space
// of the process identified by pid into buf, using
// Toolhelp32ReadProcessMemory. It returns the number of bytes actually
// copied, which callers should check against len(buf). A zero-length buf
// succeeds without touching the target process.
func ReadProcessMemory(pid uint32, addr uintptr, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	var read uintptr
	if err := toolhelp32ReadProcessMemory(pid, addr, &buf[0], uintptr(len(buf)), &read); err != nil {
		return 0, fmt.Errorf("Toolhelp32ReadProcessMemory: %w", err)
	}
	return int(read), nil
}

// Reader adapts ReadProcessMemory to io.ReaderAt for one target process.
// The offset passed to ReadAt is the absolute address in the target.
type Reader struct {
	pid uint32
}

// NewReader returns a Reader over the memory of the process identified by
// pid. It holds no OS resources.
func NewReader(pid uint32) *Reader {
	return &Reader{pid: pid}
}

// Pid returns the target process id.
func (r *Reader) Pid() uint32 {
	return r.pid
}

// ReadAt implements io.ReaderAt.
func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	n, err := ReadProcessMemory(r.pid, uintptr(off), p)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}
