// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import "fmt"

// EntryTable maps logical entry paths to immutable entry metadata.
// The table keeps entries in registration order for deterministic listing.
type EntryTable struct {
	entries []Entry
}

// headerEntryField describes one fixed header record yielding a direct entry.
type headerEntryField struct {
	path        string
	offsetField int
	sizeField   int
}

// headerEntryFields lists the primary header records that describe the
// standard sub-resources of a container.
var headerEntryFields = []headerEntryField{
	{path: "arm9", offsetField: arm9OffsetField, sizeField: arm9SizeField},
	{path: "arm7", offsetField: arm7OffsetField, sizeField: arm7SizeField},
	{path: "fnt", offsetField: fntOffsetField, sizeField: fntSizeField},
	{path: "fat", offsetField: fatOffsetField, sizeField: fatSizeField},
}

// newEntryTableFromHeader builds the table from fixed primary header records.
// Records with a zero offset or size, or a range outside the container, are
// skipped so a truncated file still yields a usable (possibly empty) table.
func newEntryTableFromHeader(header []byte, iconOffset int64, totalSize int64) EntryTable {
	var t EntryTable
	for _, field := range headerEntryFields {
		offset := int64(ReadLE(header[field.offsetField : field.offsetField+4]))
		size := int64(ReadLE(header[field.sizeField : field.sizeField+4]))
		t.add(Entry{Path: field.path, Kind: EntryDirect, Offset: offset, Size: size}, totalSize)
	}

	t.add(Entry{Path: "banner", Kind: EntryDirect, Offset: iconOffset, Size: IconSize}, totalSize)
	return t
}

// add appends one entry, dropping empty or out-of-bounds direct ranges.
func (t *EntryTable) add(e Entry, totalSize int64) {
	if e.Kind == EntryDirect {
		if e.Offset <= 0 || e.Size <= 0 {
			return
		}

		end := e.Offset + e.Size
		if end < e.Offset || end > totalSize {
			return
		}
	}

	t.entries = append(t.entries, e)
}

// Len returns the number of entries in the table.
func (t *EntryTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of table entries in registration order.
func (t *EntryTable) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Resolve returns entry metadata for path. When normalize is true both the
// lookup path and stored paths are normalized before comparison, so
// "/arm9.bin" and "arm9" resolve identically.
func (t *EntryTable) Resolve(path string, normalize bool) (Entry, error) {
	lookup := path
	if normalize {
		lookup = NormalizeEntryPath(path)
	}

	for i := range t.entries {
		stored := t.entries[i].Path
		if normalize {
			stored = NormalizeEntryPath(stored)
		}

		if stored == lookup {
			return t.entries[i], nil
		}
	}

	return Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, path)
}
