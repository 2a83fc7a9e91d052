package srl

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// newTestParent builds a reader over raw bytes without header parsing.
func newTestParent(data []byte) *Reader {
	return &Reader{ra: bytes.NewReader(data), size: int64(len(data))}
}

func TestSection_ReadWindow(t *testing.T) {
	t.Parallel()

	parent := newTestParent([]byte("0123456789abcdef"))
	s := newSection(parent, 4, 6) // "456789"

	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "456789" {
		t.Fatalf("ReadAll=%q, want 456789", got)
	}

	// a second section over the same parent is independent
	s2 := newSection(parent, 0, 4)
	got, err = io.ReadAll(s2)
	if err != nil {
		t.Fatalf("ReadAll second section: %v", err)
	}
	if string(got) != "0123" {
		t.Fatalf("ReadAll=%q, want 0123", got)
	}
}

func TestSection_ReadClipped(t *testing.T) {
	t.Parallel()

	parent := newTestParent([]byte("0123456789"))
	s := newSection(parent, 2, 4)

	buf := make([]byte, 64)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 4 || string(buf[:n]) != "2345" {
		t.Fatalf("Read=%q (%d bytes), want 2345", buf[:n], n)
	}

	if _, err := s.Read(buf); err != io.EOF {
		t.Fatalf("read at window end: err=%v, want io.EOF", err)
	}
}

func TestSection_Seek(t *testing.T) {
	t.Parallel()

	parent := newTestParent([]byte("0123456789"))
	s := newSection(parent, 2, 6) // "234567"

	testCases := []struct {
		name    string
		offset  int64
		whence  int
		wantPos int64
	}{
		{name: "start", offset: 2, whence: io.SeekStart, wantPos: 2},
		{name: "current", offset: 1, whence: io.SeekCurrent, wantPos: 3},
		{name: "end", offset: -2, whence: io.SeekEnd, wantPos: 4},
		{name: "past end clamps", offset: 100, whence: io.SeekStart, wantPos: 6},
		{name: "negative clamps", offset: -100, whence: io.SeekCurrent, wantPos: 0},
	}

	for _, tc := range testCases {
		pos, err := s.Seek(tc.offset, tc.whence)
		if err != nil {
			t.Fatalf("%s: Seek: %v", tc.name, err)
		}
		if pos != tc.wantPos {
			t.Fatalf("%s: Seek=%d, want %d", tc.name, pos, tc.wantPos)
		}
	}

	if _, err := s.Seek(0, 42); err == nil {
		t.Fatal("invalid whence must fail")
	}
}

func TestSection_ReadAfterSeekPastEnd(t *testing.T) {
	t.Parallel()

	parent := newTestParent([]byte("0123456789"))
	s := newSection(parent, 0, 4)

	if _, err := s.Seek(10, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	if _, err := s.Read(make([]byte, 4)); err != io.EOF {
		t.Fatalf("read past end: err=%v, want io.EOF", err)
	}
}

func TestSection_CloseIndependent(t *testing.T) {
	t.Parallel()

	parent := newTestParent([]byte("0123456789"))
	a := newSection(parent, 0, 4)
	b := newSection(parent, 4, 4)

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := a.Read(make([]byte, 1)); !errors.Is(err, ErrClosed) {
		t.Fatalf("read on closed section: err=%v, want ErrClosed", err)
	}
	if _, err := a.Seek(0, io.SeekStart); !errors.Is(err, ErrClosed) {
		t.Fatalf("seek on closed section: err=%v, want ErrClosed", err)
	}

	got, err := io.ReadAll(b)
	if err != nil {
		t.Fatalf("sibling read after close: %v", err)
	}
	if string(got) != "4567" {
		t.Fatalf("sibling read=%q, want 4567", got)
	}
}

func TestSection_WindowBeyondParent(t *testing.T) {
	t.Parallel()

	parent := newTestParent([]byte("0123"))
	s := newSection(parent, 2, 8)

	buf := make([]byte, 8)
	n, err := s.Read(buf)
	if n != 2 || string(buf[:n]) != "23" {
		t.Fatalf("Read=%q (%d bytes), want 23", buf[:n], n)
	}
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("err=%v, want io.ErrUnexpectedEOF", err)
	}
}

// serialReaderAt wraps a ReaderAt and fails the test when two reads are
// ever in flight at once.
type serialReaderAt struct {
	inner    io.ReaderAt
	mu       sync.Mutex
	spans    [][2]time.Time
	active   atomic.Int32
	violated atomic.Bool
}

func (s *serialReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if s.active.Add(1) > 1 {
		s.violated.Store(true)
	}

	start := time.Now()
	time.Sleep(time.Millisecond)
	n, err := s.inner.ReadAt(p, off)
	end := time.Now()

	s.active.Add(-1)

	s.mu.Lock()
	s.spans = append(s.spans, [2]time.Time{start, end})
	s.mu.Unlock()

	return n, err
}

func TestSection_ConcurrentReadsDoNotInterleave(t *testing.T) {
	t.Parallel()

	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}

	recorder := &serialReaderAt{inner: bytes.NewReader(data)}
	parent := &Reader{ra: recorder, size: int64(len(data))}

	// two views over disjoint ranges, read from separate goroutines
	first := newSection(parent, 0, 2048)
	second := newSection(parent, 2048, 2048)

	var wg sync.WaitGroup
	for _, section := range []*Section{first, second} {
		wg.Go(func() {
			buf := make([]byte, 128)
			for {
				_, err := section.Read(buf)
				if err == io.EOF {
					return
				}
				if err != nil {
					t.Errorf("Read: %v", err)
					return
				}
			}
		})
	}
	wg.Wait()

	if recorder.violated.Load() {
		t.Fatal("underlying reads overlapped in time")
	}

	gotFirst, gotSecond := verifySectionContents(t, parent, data)
	if !gotFirst || !gotSecond {
		t.Fatal("section contents mismatch")
	}
}

// verifySectionContents re-reads both halves and compares against source.
func verifySectionContents(t *testing.T, parent *Reader, data []byte) (bool, bool) {
	t.Helper()

	firstHalf, err := io.ReadAll(newSection(parent, 0, 2048))
	if err != nil {
		t.Fatalf("re-read first half: %v", err)
	}

	secondHalf, err := io.ReadAll(newSection(parent, 2048, 2048))
	if err != nil {
		t.Fatalf("re-read second half: %v", err)
	}

	return bytes.Equal(firstHalf, data[:2048]), bytes.Equal(secondHalf, data[2048:])
}
