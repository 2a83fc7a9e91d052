// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import "errors"

// Sentinel errors for SRL operations. Use errors.Is in callers.
var (
	// ErrInvalidHeader means the container is missing or has a short/unreadable primary header.
	ErrInvalidHeader = errors.New("invalid SRL container: missing or bad header")
	// ErrEntryNotFound means the requested entry path has no matching entry.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrMalformedIcon means the icon block is too short or structurally invalid.
	ErrMalformedIcon = errors.New("malformed icon block")
	// ErrNilReader means the reader is nil.
	ErrNilReader = errors.New("reader is nil")
	// ErrClosed means the reader or resource is already closed.
	ErrClosed = errors.New("reader or resource already closed")
	// ErrSizeOverflow means a decoded size does not fit the host int range.
	ErrSizeOverflow = errors.New("size exceeds host int range")
	// ErrInvalidEntryPath means an entry path is empty or invalid after normalization.
	ErrInvalidEntryPath = errors.New("invalid entry path")
	// ErrInvalidEntryRules means one or more entry visibility rules are invalid.
	ErrInvalidEntryRules = errors.New("invalid entry rules")
	// ErrNoReconstructor means a reconstructed entry references an unknown strategy.
	ErrNoReconstructor = errors.New("no reconstructor registered for entry format")
	// ErrExtractPathOutsideRoot means resolved extraction path escapes destination root.
	ErrExtractPathOutsideRoot = errors.New("extract path escapes destination root")
)
