// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// AppTitle is one region's decoded title record.
type AppTitle struct {
	// ShortDesc is the first title line.
	ShortDesc string `json:"short_desc" yaml:"short_desc"`
	// LongDesc joins the first two title lines when both are present.
	LongDesc string `json:"long_desc" yaml:"long_desc"`
	// Publisher is the trailing publisher line.
	Publisher string `json:"publisher" yaml:"publisher"`
}

// IsZero reports whether all record fields are empty.
func (t AppTitle) IsZero() bool {
	return t.ShortDesc == "" && t.LongDesc == "" && t.Publisher == ""
}

// Icon is the decoded fixed-size icon block: per-region titles, region lock
// state, and opaque bitmap payloads. Built once, immutable afterward.
type Icon struct {
	titles map[string]AppTitle
	// RegionLock is the exposed region lock label. The original decoder
	// discards the computed decomposition and always publishes an empty
	// string; that behavior is preserved.
	RegionLock string `json:"region_lock" yaml:"region_lock"`
	// SmallIcon is the raw small icon bitmap payload.
	SmallIcon []byte `json:"-" yaml:"-"`
	// Palette is the raw palette payload.
	Palette []byte `json:"-" yaml:"-"`
	// regionLockNames keeps the internal bitmask decomposition.
	regionLockNames []string
	// regionLockBits is the raw region lock bitmask.
	regionLockBits uint32
}

// utf16leDecoder decodes UTF-16LE title records.
var utf16leDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ParseIcon decodes one fixed-size icon block.
func ParseIcon(block []byte) (*Icon, error) {
	if len(block) < IconSize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrMalformedIcon, len(block), IconSize)
	}

	icon := &Icon{
		titles:    make(map[string]AppTitle, len(regionNames)),
		SmallIcon: append([]byte(nil), block[iconSmallOffset:iconSmallOffset+iconSmallSize]...),
		Palette:   append([]byte(nil), block[iconPaletteOffset:iconPaletteOffset+iconPaletteSize]...),
	}

	// The table reserves iconTitleSlots records; only the first twelve map
	// to regions, the rest are unused.
	for i, region := range regionNames {
		start := iconTitleOffset + i*iconTitleRecSize
		icon.titles[region] = decodeTitleRecord(block[start : start+iconTitleRecSize])
	}

	icon.regionLockBits = uint32(ReadLE(block[iconRegionField : iconRegionField+4]))
	if icon.regionLockBits == regionLockAllBits {
		icon.regionLockNames = []string{"ALL"}
	} else {
		members, _ := DecomposeFlags(regionLockFlags, icon.regionLockBits)
		icon.regionLockNames = flagNames(members)
	}

	return icon, nil
}

// IconFromFile decodes a standalone icon block stored in a file.
func IconFromFile(path string) (*Icon, error) {
	block, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read icon file: %w", err)
	}

	return ParseIcon(block)
}

// decodeTitleRecord decodes one UTF-16LE title record into an AppTitle.
// The record holds one, two, or three newline-delimited lines; any other
// line count degrades to an empty record instead of failing the block.
func decodeTitleRecord(record []byte) AppTitle {
	decoded, _, err := transform.Bytes(utf16leDecoder.NewDecoder(), record)
	if err != nil {
		return AppTitle{}
	}

	lines := splitTitleLines(strings.Trim(string(decoded), "\x00"))
	switch len(lines) {
	case 3:
		return AppTitle{
			ShortDesc: lines[0],
			LongDesc:  lines[0] + " " + lines[1],
			Publisher: lines[2],
		}
	case 2:
		return AppTitle{
			ShortDesc: lines[0],
			LongDesc:  lines[0],
			Publisher: lines[1],
		}
	default:
		return AppTitle{}
	}
}

// splitTitleLines splits decoded record text on mandatory line breaks
// (LF, CR, CRLF, VT, FF, FS, GS, RS, NEL, LS, PS). A break terminates the
// current line: text ending in a break does not yield a trailing empty
// line, so "A\nB\n" is two lines, not three.
func splitTitleLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isTitleLineBreak(r) {
			i += size
			continue
		}

		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}

		start = i
	}

	if start < len(text) {
		lines = append(lines, text[start:])
	}

	return lines
}

// isTitleLineBreak reports whether r is a mandatory line break.
func isTitleLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '', ' ', ' ':
		return true
	}

	return false
}

// TitleByRegion returns the title record for one region name.
func (ic *Icon) TitleByRegion(region string) (AppTitle, bool) {
	title, ok := ic.titles[region]
	return title, ok
}

// Titles returns a copy of the per-region title table.
func (ic *Icon) Titles() map[string]AppTitle {
	out := make(map[string]AppTitle, len(ic.titles))
	for region, title := range ic.titles {
		out[region] = title
	}

	return out
}

// Title returns the first non-empty title record in the given language
// preference order. Without arguments the default order is used, which
// checks English before the format's own first region. It never fails:
// when every preferred record is empty or absent it returns the literal
// "unknown" triple.
func (ic *Icon) Title(languages ...string) AppTitle {
	if len(languages) == 0 {
		languages = defaultTitleOrder
	}

	for _, language := range languages {
		if title, ok := ic.titles[language]; ok && !title.IsZero() {
			return title
		}
	}

	return AppTitle{ShortDesc: "unknown", LongDesc: "unknown", Publisher: "unknown"}
}

// RegionLockBits returns the raw region lock bitmask.
func (ic *Icon) RegionLockBits() uint32 {
	return ic.regionLockBits
}
