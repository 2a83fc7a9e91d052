// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import (
	"fmt"
	"io"
)

// ListEntries opens a container and returns entry metadata without opening
// payload streams.
func ListEntries(path string) ([]Entry, error) {
	return ListEntriesWithOptions(path, ReaderOptions{})
}

// ListEntriesWithOptions opens a container and returns entry metadata
// without opening payload streams, using explicit reader options. Icon
// decoding is skipped for metadata-only scans.
func ListEntriesWithOptions(path string, opts ReaderOptions) ([]Entry, error) {
	opts.SkipIcon = true

	r, err := OpenWithOptions(path, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.Entries(), nil
}

// ReadIcon opens a container and decodes only its icon block. Unlike
// construction-time icon loading this is a direct request, so malformed or
// missing icon data is reported as an error.
func ReadIcon(path string) (*Icon, error) {
	f, size, err := openFileWithSize(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadIconFromReaderAt(f, size)
}

// ReadIconFromReaderAt decodes only the icon block from a random-access source.
func ReadIconFromReaderAt(ra io.ReaderAt, size int64) (*Icon, error) {
	if ra == nil {
		return nil, ErrNilReader
	}
	if size < headerSize {
		return nil, fmt.Errorf("%w: short header", ErrInvalidHeader)
	}

	header := make([]byte, headerSize)
	if _, err := ra.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	iconOffset := int64(ReadLE(header[iconOffsetField : iconOffsetField+4]))
	if iconOffset <= 0 || iconOffset+IconSize > size {
		return nil, fmt.Errorf("%w: icon block outside container", ErrMalformedIcon)
	}

	block := make([]byte, IconSize)
	if _, err := ra.ReadAt(block, iconOffset); err != nil {
		return nil, fmt.Errorf("%w: short icon block", ErrMalformedIcon)
	}

	return ParseIcon(block)
}
