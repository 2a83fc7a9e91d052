// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// extractCopyBufferSize defines per-worker buffer size for file copy during extraction.
const extractCopyBufferSize = 64 * 1024

// extractWorkItem stores one selected entry with its prepared output path.
type extractWorkItem struct {
	relPath string
	entry   Entry
}

// Extract writes selected entries from the container to dstDir. Extraction
// is parallelized by MaxWorkers; on failure it returns the first
// encountered error. Reconstructed entries are written in rebuilt form.
func (r *Reader) Extract(ctx context.Context, dstDir string, opts ExtractOptions) error {
	if r == nil || r.ra == nil {
		return ErrNilReader
	}

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return ErrClosed
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	entries := r.table.entries
	if opts.Entries != nil {
		entries = opts.Entries
	}

	if len(entries) == 0 {
		return nil
	}

	dstRootAbs, err := filepath.Abs(dstDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}

	if err := os.MkdirAll(dstRootAbs, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	workItems, err := prepareExtractWorkItems(entries, opts.RawNames)
	if err != nil {
		return err
	}

	if err := prepareExtractDirs(dstRootAbs, workItems); err != nil {
		return err
	}

	taskCh := make(chan extractWorkItem, len(workItems))
	errCh := make(chan error, len(workItems))
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Go(func() {
			copyBuf := make([]byte, extractCopyBufferSize)
			for task := range taskCh {
				err := r.extractPreparedEntry(ctx, dstRootAbs, task, copyBuf, opts.OnEntryDone)
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		})
	}

	for _, task := range workItems {
		select {
		case <-ctx.Done():
			close(taskCh)
			wg.Wait()
			return ctx.Err()
		case taskCh <- task:
		}
	}

	close(taskCh)
	wg.Wait()
	close(errCh)

	var first error
	for err := range errCh {
		if err != nil && first == nil {
			first = err
		}
	}

	return first
}

// prepareExtractWorkItems resolves relative output paths for selected entries.
func prepareExtractWorkItems(entries []Entry, rawNames bool) ([]extractWorkItem, error) {
	items := make([]extractWorkItem, 0, len(entries))
	used := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		relPath := entry.Path
		if !rawNames {
			sanitized, err := SanitizePath(entry.Path)
			if err != nil {
				return nil, fmt.Errorf("sanitize path %s: %w", entry.Path, err)
			}

			relPath = sanitized
		}

		if relPath == "" || strings.Contains(relPath, "..") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEntryPath, entry.Path)
		}

		if _, ok := used[relPath]; ok {
			continue
		}

		used[relPath] = struct{}{}
		items = append(items, extractWorkItem{relPath: relPath, entry: entry})
	}

	return items, nil
}

// prepareExtractDirs creates output directories before workers start.
func prepareExtractDirs(dstRootAbs string, items []extractWorkItem) error {
	created := make(map[string]struct{}, len(items))
	for _, item := range items {
		relDir := filepath.Dir(filepath.FromSlash(item.relPath))
		if relDir == "." {
			continue
		}

		if _, ok := created[relDir]; ok {
			continue
		}

		created[relDir] = struct{}{}
		if err := os.MkdirAll(filepath.Join(dstRootAbs, relDir), 0o750); err != nil {
			return fmt.Errorf("create dir for %s: %w", item.relPath, err)
		}
	}

	return nil
}

// extractPreparedEntry writes one entry payload to its prepared output path.
func (r *Reader) extractPreparedEntry(
	ctx context.Context,
	dstRootAbs string,
	task extractWorkItem,
	copyBuf []byte,
	onDone func(entry Entry, written int64, outputPath string),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	outputPath := filepath.Join(dstRootAbs, filepath.FromSlash(task.relPath))
	if !strings.HasPrefix(outputPath, dstRootAbs+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrExtractPathOutsideRoot, task.relPath)
	}

	src, err := r.openEntry(task.entry)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return fmt.Errorf("create %s: %w", task.relPath, err)
	}

	written, err := io.CopyBuffer(dst, src, copyBuf)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("extract %s: %w", task.relPath, err)
	}

	if onDone != nil {
		onDone(task.entry, written, outputPath)
	}

	return nil
}
