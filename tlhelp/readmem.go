//go:build windows

package tlhelp

import (
	"bytes"
	"encoding/binary"
	"unsafe"
)

// Typed reads over Reader. Values are decoded little-endian, which is
// what every architecture with a toolhelp API uses.

// Uint8 reads an unsigned 8-bit integer at addr.
func (r *Reader) Uint8(addr uintptr) (uint8, error) {
	var b [1]byte
	if _, err := r.ReadAt(b[:], int64(addr)); err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads an unsigned 16-bit integer at addr.
func (r *Reader) Uint16(addr uintptr) (uint16, error) {
	var b [2]byte
	if _, err := r.ReadAt(b[:], int64(addr)); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// Uint32 reads an unsigned 32-bit integer at addr.
func (r *Reader) Uint32(addr uintptr) (uint32, error) {
	var b [4]byte
	if _, err := r.ReadAt(b[:], int64(addr)); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// Uint64 reads an unsigned 64-bit integer at addr.
func (r *Reader) Uint64(addr uintptr) (uint64, error) {
	var b [8]byte
	if _, err := r.ReadAt(b[:], int64(addr)); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Pointer reads a pointer-sized value at addr.
func (r *Reader) Pointer(addr uintptr) (uintptr, error) {
	var b [unsafe.Sizeof(uintptr(0))]byte
	if _, err := r.ReadAt(b[:], int64(addr)); err != nil {
		return 0, err
	}
	if len(b) == 4 {
		return uintptr(binary.LittleEndian.Uint32(b[:])), nil
	}
	return uintptr(binary.LittleEndian.Uint64(b[:])), nil
}

// CString reads a NUL-terminated byte string at addr, scanning at most max
// bytes. If no terminator is found within max bytes the whole buffer is
// returned.
func (r *Reader) CString(addr uintptr, max int) (string, error) {
	if max <= 0 {
		return "", nil
	}
	buf := make([]byte, max)
	n, err := ReadProcessMemory(r.pid, addr, buf)
	if err != nil {
		return "", err
	}
	buf = buf[:n]
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}
