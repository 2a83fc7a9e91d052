// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import (
	"strings"
)

// binExtension is the conventional stored-entry suffix tolerated in lookups.
const binExtension = ".bin"

// NormalizeEntryPath converts an entry lookup path to canonical form.
// It trims spaces, removes leading "/" separators, and removes the
// case-insensitive ".bin" suffix, so "/arm9.bin" and "arm9" resolve to the
// same entry. Normalization is idempotent.
func NormalizeEntryPath(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimLeft(raw, "/")

	for hasBinSuffix(raw) {
		raw = raw[:len(raw)-len(binExtension)]
	}

	return raw
}

// hasBinSuffix reports whether p ends with ".bin" in any letter case.
func hasBinSuffix(p string) bool {
	if len(p) < len(binExtension) {
		return false
	}

	return strings.EqualFold(p[len(p)-len(binExtension):], binExtension)
}
