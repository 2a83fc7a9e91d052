// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Reader provides read-only access to a parsed SRL cartridge container.
// It exclusively owns the underlying stream for its lifetime; every stream
// access, including those issued through spawned sections, is serialized by
// one lock. Parsed state is immutable after construction.
type Reader struct {
	// ra is the underlying random-access reader used for payload reads.
	ra io.ReaderAt
	// file is set when Reader owns an *os.File opened via Open.
	file *os.File
	// icon is the decoded icon block; nil when absent or malformed.
	icon *Icon
	// reconstructors maps format keys to reconstruction strategies.
	reconstructors map[string]Reconstructor
	// regionLockout is decoded from the extended header; empty without one.
	regionLockout RegionLockout
	// title stores raw application title bytes from the primary header.
	title []byte
	// table stores immutable entry metadata.
	table EntryTable
	// size is total source size in bytes.
	size int64
	// iconOffset is absolute offset of the icon block.
	iconOffset int64
	// usedROMSize is the total used ROM size header field.
	usedROMSize int64
	// mu serializes underlying stream access and guards closed state.
	mu sync.Mutex
	// unitCode selects the extended header via bit0.
	unitCode byte
	// closed reports whether Close was already called.
	closed bool
}

// Open opens an SRL container by path and parses header structures.
func Open(path string) (*Reader, error) {
	return OpenWithOptions(path, ReaderOptions{})
}

// OpenWithOptions opens an SRL container by path and parses header structures
// using explicit reader options.
func OpenWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	f, size, err := openFileWithSize(path)
	if err != nil {
		return nil, err
	}

	r, err := NewReaderFromReaderAtWithOptions(f, size, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	r.file = f
	return r, nil
}

// NewReaderFromReaderAt parses an SRL container from an existing ReaderAt
// and known size.
func NewReaderFromReaderAt(ra io.ReaderAt, size int64) (*Reader, error) {
	return NewReaderFromReaderAtWithOptions(ra, size, ReaderOptions{})
}

// NewReaderFromReaderAtWithOptions parses an SRL container from an existing
// ReaderAt and known size using explicit reader options.
func NewReaderFromReaderAtWithOptions(ra io.ReaderAt, size int64, opts ReaderOptions) (*Reader, error) {
	opts.applyDefaults()

	r := &Reader{ra: ra, size: size, reconstructors: opts.Reconstructors}
	if err := r.parse(opts); err != nil {
		return nil, err
	}

	return r, nil
}

// parse reads the container single-pass: primary header, optional extended
// header, entry table, then best-effort icon decode.
func (r *Reader) parse(opts ReaderOptions) error {
	header := make([]byte, headerSize)
	if _, err := r.ra.ReadAt(header, 0); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: short header", ErrInvalidHeader)
		}

		return fmt.Errorf("read header: %w", err)
	}

	r.title = append([]byte(nil), header[titleOffset:titleOffset+titleSize]...)
	r.unitCode = header[unitCodeOffset]

	if r.unitCode&0x01 != 0 {
		extHeader := make([]byte, extHeaderSize)
		if _, err := r.ra.ReadAt(extHeader, headerSize); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return fmt.Errorf("%w: short extended header", ErrInvalidHeader)
			}

			return fmt.Errorf("read extended header: %w", err)
		}

		r.regionLockout = decodeRegionLockout(extHeader[regionLockoutOffset])
	}

	r.iconOffset = int64(ReadLE(header[iconOffsetField : iconOffsetField+4]))
	r.usedROMSize = int64(ReadLE(header[usedROMSizeField : usedROMSizeField+4]))

	r.table = newEntryTableFromHeader(header, r.iconOffset, r.size)
	for _, entry := range opts.ExtraEntries {
		r.table.add(entry, r.size)
	}

	// Icon decode runs before visibility filtering so entry rules cannot
	// hide the banner record from the decoder itself.
	if !opts.SkipIcon {
		r.loadIcon()
	}

	matcher, err := newEntryMatcher(opts.EntryRules, opts.EntryMatcherOptions)
	if err != nil {
		return err
	}

	r.table.entries = filterEntriesByPrefix(r.table.entries, opts.EntryPathPrefix)
	r.table.entries = filterEntriesByRules(r.table.entries, matcher)

	return nil
}

// loadIcon decodes the icon block at the header-specified offset. Any
// failure (missing banner entry, short read, malformed block) leaves the
// container without an icon: the metadata is cosmetic and its absence must
// never fail construction.
func (r *Reader) loadIcon() {
	// Only a direct entry maps to raw icon bytes; a reconstructed banner
	// would hand its stored source bytes to the decoder.
	entry, err := r.table.Resolve("banner", true)
	if err != nil || entry.Kind != EntryDirect {
		return
	}

	block := make([]byte, IconSize)
	if _, err := r.readAt(block, entry.Offset); err != nil {
		return
	}

	icon, err := ParseIcon(block)
	if err != nil {
		return
	}

	r.icon = icon
}

// readAt is the synchronized read-at operation every section goes through.
func (r *Reader) readAt(p []byte, off int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, ErrClosed
	}
	if r.ra == nil {
		return 0, ErrNilReader
	}

	return r.ra.ReadAt(p, off)
}

// Title returns the application title from the primary header, trimmed of
// trailing padding.
func (r *Reader) Title() string {
	return strings.TrimRight(string(r.title), "\x00")
}

// RawTitle returns a copy of the raw application title bytes.
func (r *Reader) RawTitle() []byte {
	return append([]byte(nil), r.title...)
}

// UnitCode returns the header unit code byte.
func (r *Reader) UnitCode() byte {
	return r.unitCode
}

// RegionLockout returns the decoded extended-header region lockout value.
// It is empty when the container has no extended header.
func (r *Reader) RegionLockout() RegionLockout {
	return r.regionLockout
}

// Icon returns the decoded icon block, or nil when absent or malformed.
// Callers must check for nil before requesting title info.
func (r *Reader) Icon() *Icon {
	return r.icon
}

// Entries returns a copy of visible entry metadata.
func (r *Reader) Entries() []Entry {
	if r == nil {
		return nil
	}

	return r.table.Entries()
}

// Len returns the number of visible entries.
func (r *Reader) Len() int {
	if r == nil {
		return 0
	}

	return r.table.Len()
}

// Size returns the total container size in bytes.
func (r *Reader) Size() int64 {
	return r.size
}

// UsedROMSize returns the total used ROM size header field.
func (r *Reader) UsedROMSize() int64 {
	return r.usedROMSize
}

// AlignedROMSize returns the used ROM size rounded up to a full sector.
func (r *Reader) AlignedROMSize() int64 {
	return RoundUp(r.usedROMSize, SectorSize)
}

// OpenEntry opens the named entry for reading with path normalization, so
// "/arm9.bin" and "arm9" open the same entry. Reconstructed entries yield a
// stream of rebuilt content.
func (r *Reader) OpenEntry(name string) (io.ReadCloser, error) {
	return r.openEntryNamed(name, true)
}

// OpenEntryExact opens the named entry without path normalization.
func (r *Reader) OpenEntryExact(name string) (io.ReadCloser, error) {
	return r.openEntryNamed(name, false)
}

// ReadEntry reads full (reconstructed) content of the named entry.
func (r *Reader) ReadEntry(name string) ([]byte, error) {
	rc, err := r.OpenEntry(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}

// openEntryNamed resolves one entry by path and opens its payload stream.
func (r *Reader) openEntryNamed(name string, normalize bool) (io.ReadCloser, error) {
	if r == nil || r.ra == nil {
		return nil, ErrNilReader
	}

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	entry, err := r.table.Resolve(name, normalize)
	if err != nil {
		return nil, err
	}

	return r.openEntry(entry)
}

// openEntry opens payload stream for already resolved entry metadata.
func (r *Reader) openEntry(entry Entry) (io.ReadCloser, error) {
	if entry.Kind == EntryDirect {
		return newSection(r, entry.Offset, entry.Size), nil
	}

	format := entry.Format
	if format == "" {
		format = FormatLZSS
	}

	reconstruct, ok := r.reconstructors[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoReconstructor, format, entry.Path)
	}

	src := newSection(r, entry.Offset, entry.Size)
	pr, pw := io.Pipe()
	go runReconstruct(reconstruct, entry, pw, src)

	return pr, nil
}

// Close closes the underlying file if reader owns one. Sections spawned
// from the reader stop working after close.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true
	if r.file != nil {
		return r.file.Close()
	}

	return nil
}

// decodeRegionLockout maps the raw extended-header byte to its label.
// Unrecognized values are not rejected: they decode to their decimal form.
func decodeRegionLockout(raw byte) RegionLockout {
	switch raw {
	case 0x00:
		return RegionLockoutNormal
	case 0x80:
		return RegionLockoutChina
	case 0x40:
		return RegionLockoutKorea
	default:
		return RegionLockout(strconv.Itoa(int(raw)))
	}
}

// openFileWithSize opens a file and returns a handle plus current size.
func openFileWithSize(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open SRL: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat: %w", err)
	}

	return f, fi.Size(), nil
}
