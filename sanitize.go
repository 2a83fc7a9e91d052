// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import (
	"fmt"
	"strings"
	"unicode"
)

// maxSanitizedSegmentLen limits one path segment to common filesystem-safe length.
const maxSanitizedSegmentLen = 240

// reservedDOSNames contains case-insensitive reserved DOS/Windows device names.
var reservedDOSNames = map[string]struct{}{
	"aux":    {},
	"clock$": {},
	"com1":   {},
	"com2":   {},
	"com3":   {},
	"com4":   {},
	"com5":   {},
	"com6":   {},
	"com7":   {},
	"com8":   {},
	"com9":   {},
	"con":    {},
	"lpt1":   {},
	"lpt2":   {},
	"lpt3":   {},
	"lpt4":   {},
	"lpt5":   {},
	"lpt6":   {},
	"lpt7":   {},
	"lpt8":   {},
	"lpt9":   {},
	"nul":    {},
	"prn":    {},
}

// SanitizePath rewrites one entry path to a deterministic filesystem-safe
// slash-separated form suitable as an extraction output path.
func SanitizePath(pathValue string) (string, error) {
	pathValue = strings.TrimSpace(strings.ReplaceAll(pathValue, `\`, "/"))
	parts := strings.Split(pathValue, "/")
	sanitized := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || part == "." {
			continue
		}

		if part == ".." {
			return "", fmt.Errorf("%w: %q", ErrExtractPathOutsideRoot, pathValue)
		}

		sanitized = append(sanitized, sanitizePathSegment(part))
	}

	if len(sanitized) == 0 {
		return "_", nil
	}

	return strings.Join(sanitized, "/"), nil
}

// sanitizePathSegment sanitizes one path segment for broad filesystem compatibility.
func sanitizePathSegment(segment string) string {
	var b strings.Builder
	b.Grow(len(segment))
	for _, r := range segment {
		if r < 0x20 || r == 0x7F || unicode.Is(unicode.Cf, r) {
			b.WriteRune('_')
			continue
		}

		if strings.ContainsRune(`<>:"/\|?*`, r) {
			b.WriteRune('_')
			continue
		}

		b.WriteRune(r)
	}

	out := strings.TrimRight(b.String(), " .")
	if out == "" {
		out = "_"
	}

	if len(out) > maxSanitizedSegmentLen {
		out = out[:maxSanitizedSegmentLen]
	}

	if isReservedDeviceName(out) {
		out = "_" + out
	}

	return out
}

// isReservedDeviceName reports whether segment collides with a reserved device name.
func isReservedDeviceName(segment string) bool {
	base := segment
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}

	_, ok := reservedDOSNames[strings.ToLower(base)]
	return ok
}
