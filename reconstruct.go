// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import (
	"fmt"
	"io"
	"math"

	"github.com/woozymasta/lzss"
)

// FormatLZSS is the default reconstruction strategy key: LZSS-compressed
// stored source, decompressed on read.
const FormatLZSS = "lzss"

// runReconstruct streams one reconstructed entry into the pipe writer and
// always releases the source section.
func runReconstruct(reconstruct Reconstructor, entry Entry, dst *io.PipeWriter, src io.ReadCloser) {
	defer func() { _ = src.Close() }()

	if err := reconstruct(dst, src, entry); err != nil {
		_ = dst.CloseWithError(fmt.Errorf("reconstruct entry %s: %w", entry.Path, err))
		return
	}

	_ = dst.Close()
}

// reconstructLZSS rebuilds an LZSS-compressed source into its original form.
func reconstructLZSS(dst io.Writer, src io.Reader, entry Entry) error {
	outLen, err := checkedInt64ToInt(entry.OriginalSize)
	if err != nil {
		return fmt.Errorf("resolve output size: %w", err)
	}

	if _, err := lzss.DecompressToWriter(dst, src, outLen, nil); err != nil {
		return err
	}

	return nil
}

// checkedInt64ToInt converts int64 to int with platform-safe overflow check.
func checkedInt64ToInt(v int64) (int, error) {
	if v < 0 || uint64(v) > uint64(math.MaxInt) {
		return 0, ErrSizeOverflow
	}

	return int(v), nil
}
