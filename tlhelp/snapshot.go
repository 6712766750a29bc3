//go:build windows

package tlhelp

import (
	"fmt"
	"iter"

	"golang.org/x/sys/windows"
)

// tag binds one record kind to its raw layout and toolhelp entry points.
// The four package-level tag values are the only instances; outside code
// cannot invent a fifth kind.
type tag[R, T any] struct {
	flags  uint32
	init   func(*R)
	first  func(windows.Handle, *R) error
	next   func(windows.Handle, *R) error
	decode func(*R) T
}

// Snapshot walks the records captured by one CreateToolhelp32Snapshot
// handle. R is the raw toolhelp record, T the decoded entry handed to the
// caller. It always holds the next unread record so Next can answer
// "is there another one" without a separate peek call.
//
// A Snapshot is single-pass and not safe for concurrent use. Close must be
// called to release the handle; it is idempotent.
type Snapshot[R, T any] struct {
	tag    tag[R, T]
	handle windows.Handle
	raw    R
	ok     bool // raw holds an undelivered record
	err    error
	closed bool
}

func newSnapshot[R, T any](tg tag[R, T], pid uint32) (*Snapshot[R, T], error) {
	handle, err := windows.CreateToolhelp32Snapshot(tg.flags, pid)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot: %w", err)
	}
	return snapshotFromHandle(tg, handle), nil
}

// snapshotFromHandle seeds the look-ahead record. An empty list, or a
// handle of the wrong kind, leaves the snapshot exhausted from the start
// rather than failing.
func snapshotFromHandle[R, T any](tg tag[R, T], handle windows.Handle) *Snapshot[R, T] {
	s := &Snapshot[R, T]{tag: tg, handle: handle}
	s.tag.init(&s.raw)
	if err := s.tag.first(handle, &s.raw); err != nil {
		s.stop(err)
	} else {
		s.ok = true
	}
	return s
}

func fromHandle[R, T any](tg tag[R, T], handle windows.Handle) (*Snapshot[R, T], error) {
	if handle == windows.InvalidHandle {
		return nil, fmt.Errorf("snapshot: %w", windows.ERROR_INVALID_HANDLE)
	}
	return snapshotFromHandle(tg, handle), nil
}

// Next returns the next entry. The second result is false once the
// snapshot is exhausted; exhaustion is terminal and later calls never
// touch the underlying handle again.
func (s *Snapshot[R, T]) Next() (T, bool) {
	if !s.ok {
		var zero T
		return zero, false
	}
	entry := s.tag.decode(&s.raw)
	if err := s.tag.next(s.handle, &s.raw); err != nil {
		s.stop(err)
	}
	return entry, true
}

// All returns a single-use iterator draining the snapshot.
func (s *Snapshot[R, T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			entry, ok := s.Next()
			if !ok || !yield(entry) {
				return
			}
		}
	}
}

// Err reports why the walk stopped. It returns nil while entries remain
// and after a normal end of list; it returns the OS error if an advance
// failed for any other reason.
func (s *Snapshot[R, T]) Err() error {
	return s.err
}

// Handle returns the underlying snapshot handle. The Snapshot keeps
// ownership; do not close it.
func (s *Snapshot[R, T]) Handle() windows.Handle {
	return s.handle
}

// Close releases the snapshot handle. Calling it more than once is a
// no-op.
func (s *Snapshot[R, T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.ok = false
	return windows.CloseHandle(s.handle)
}

// stop moves the snapshot to its terminal state, keeping the errno around
// unless the provider reported a plain end of list.
func (s *Snapshot[R, T]) stop(err error) {
	s.ok = false
	if err != windows.ERROR_NO_MORE_FILES && s.err == nil {
		s.err = err
	}
}
