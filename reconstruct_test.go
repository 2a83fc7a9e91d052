package srl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
)

// reverseBytes is a trivial reconstruction strategy for tests: the stored
// source is read fully and emitted in reverse order.
func reverseBytes(dst io.Writer, src io.Reader, entry Entry) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	if int64(len(data)) != entry.Size {
		return fmt.Errorf("short source: %d of %d bytes", len(data), entry.Size)
	}

	for i := len(data)/2 - 1; i >= 0; i-- {
		opp := len(data) - 1 - i
		data[i], data[opp] = data[opp], data[i]
	}

	_, err = dst.Write(data)
	return err
}

func TestReader_ReconstructedEntry(t *testing.T) {
	t.Parallel()

	rom := buildROM(t, defaultROMSpec())
	r, err := NewReaderFromReaderAtWithOptions(bytes.NewReader(rom), testROMSize, ReaderOptions{
		Reconstructors: map[string]Reconstructor{"reverse": reverseBytes},
		ExtraEntries: []Entry{{
			Path:         "arm9.rev",
			Kind:         EntryReconstructed,
			Format:       "reverse",
			Offset:       testARM9Offset,
			Size:         int64(len(testARM9Payload)),
			OriginalSize: int64(len(testARM9Payload)),
		}},
	})
	if err != nil {
		t.Fatalf("NewReaderFromReaderAtWithOptions: %v", err)
	}

	got, err := r.ReadEntry("arm9.rev")
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}

	want := make([]byte, len(testARM9Payload))
	for i, b := range testARM9Payload {
		want[len(want)-1-i] = b
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("ReadEntry=%q, want %q", got, want)
	}
}

func TestReader_ReconstructedEntryUnknownFormat(t *testing.T) {
	t.Parallel()

	rom := buildROM(t, defaultROMSpec())
	r, err := NewReaderFromReaderAtWithOptions(bytes.NewReader(rom), testROMSize, ReaderOptions{
		ExtraEntries: []Entry{{
			Path:   "mystery",
			Kind:   EntryReconstructed,
			Format: "huffman",
			Offset: testARM9Offset,
			Size:   4,
		}},
	})
	if err != nil {
		t.Fatalf("NewReaderFromReaderAtWithOptions: %v", err)
	}

	if _, err := r.OpenEntry("mystery"); !errors.Is(err, ErrNoReconstructor) {
		t.Fatalf("expected ErrNoReconstructor, got %v", err)
	}
}

func TestReader_ReconstructedEntryStrategyFailure(t *testing.T) {
	t.Parallel()

	failing := func(dst io.Writer, src io.Reader, entry Entry) error {
		return errors.New("corrupt source")
	}

	rom := buildROM(t, defaultROMSpec())
	r, err := NewReaderFromReaderAtWithOptions(bytes.NewReader(rom), testROMSize, ReaderOptions{
		Reconstructors: map[string]Reconstructor{"fail": failing},
		ExtraEntries: []Entry{{
			Path:   "broken",
			Kind:   EntryReconstructed,
			Format: "fail",
			Offset: testARM9Offset,
			Size:   4,
		}},
	})
	if err != nil {
		t.Fatalf("NewReaderFromReaderAtWithOptions: %v", err)
	}

	rc, err := r.OpenEntry("broken")
	if err != nil {
		t.Fatalf("OpenEntry: %v", err)
	}
	defer func() { _ = rc.Close() }()

	if _, err := io.ReadAll(rc); err == nil {
		t.Fatal("reading a failing reconstruction must surface the error")
	}
}

func TestCheckedInt64ToInt(t *testing.T) {
	t.Parallel()

	if _, err := checkedInt64ToInt(-1); !errors.Is(err, ErrSizeOverflow) {
		t.Fatalf("negative size: expected ErrSizeOverflow, got %v", err)
	}

	got, err := checkedInt64ToInt(0x2400)
	if err != nil {
		t.Fatalf("checkedInt64ToInt: %v", err)
	}
	if got != 0x2400 {
		t.Fatalf("checkedInt64ToInt=%d, want %d", got, 0x2400)
	}
}
