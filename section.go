// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import (
	"fmt"
	"io"
)

// Section is an independently seekable read-only window onto a byte range
// of a parent Reader. Every transfer goes through the parent's synchronized
// readAt, so concurrent sections never interleave mid-read against the
// shared stream. One Section must not be used from two goroutines at once:
// its position is view-local state.
type Section struct {
	parent *Reader
	base   int64
	length int64
	pos    int64
	closed bool
}

// newSection creates a window over [base, base+length) of the parent stream.
func newSection(parent *Reader, base, length int64) *Section {
	return &Section{parent: parent, base: base, length: length}
}

// Size returns the declared window length in bytes.
func (s *Section) Size() int64 {
	return s.length
}

// Read reads up to len(p) bytes, clipped to the window end.
func (s *Section) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	remaining := s.length - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := s.parent.readAt(p, s.base+s.pos)
	s.pos += int64(n)
	if err == io.EOF && s.pos < s.length {
		err = io.ErrUnexpectedEOF
	}

	return n, err
}

// Seek updates the window position. The resulting position is clamped to
// [0, Size]; seeking past the end is allowed and later reads return io.EOF.
func (s *Section) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = s.pos + offset
	case io.SeekEnd:
		pos = s.length + offset
	default:
		return 0, fmt.Errorf("seek entry section: invalid whence %d", whence)
	}

	if pos < 0 {
		pos = 0
	}
	if pos > s.length {
		pos = s.length
	}

	s.pos = pos
	return pos, nil
}

// Close releases the section. The parent stream stays open; closing a
// section never affects the parent or sibling sections.
func (s *Section) Close() error {
	s.closed = true
	return nil
}
