// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import (
	"io"

	"github.com/woozymasta/pathrules"
)

// Primary header binary layout (offsets relative to container start).
const (
	headerSize    = 0x180 // fixed primary header size in bytes
	extHeaderSize = 0xE80 // extended header size, present only when unit code bit0 is set

	titleOffset    = 0x00 // raw application title bytes
	titleSize      = 0x12
	unitCodeOffset = 0x12 // bit0 selects extended header

	arm9OffsetField = 0x20
	arm9SizeField   = 0x2C
	arm7OffsetField = 0x30
	arm7SizeField   = 0x3C
	fntOffsetField  = 0x40
	fntSizeField    = 0x44
	fatOffsetField  = 0x48
	fatSizeField    = 0x4C

	iconOffsetField  = 0x68 // little-endian offset of the icon block
	usedROMSizeField = 0x80 // little-endian total used ROM size

	// regionLockoutOffset is relative to extended header start.
	regionLockoutOffset = 0x34
)

// Icon block binary layout (offsets relative to icon block start).
const (
	// IconSize is the fixed size of the embedded icon block in bytes.
	IconSize = 0x2400

	iconSmallOffset   = 0x20
	iconSmallSize     = 0x200
	iconPaletteOffset = 0x220
	iconPaletteSize   = 0x20
	iconTitleOffset   = 0x240
	iconTitleRecSize  = 0x100
	iconTitleSlots    = 16 // reserved slots; only the first iconTitleUsed are populated
	iconTitleUsed     = 12
	iconRegionField   = 0x2018

	// regionLockAllBits is the reserved "all regions" bitmask value.
	regionLockAllBits = 0x7FFFFFFF
)

// SectorSize is the ROM sector alignment used for padded size calculations.
const SectorSize = 0x200

// RegionLockout is the decoded extended-header region lockout value.
// Unrecognized raw bytes are preserved as their decimal string form.
type RegionLockout string

// Known region lockout values.
const (
	RegionLockoutNormal RegionLockout = "Normal"
	RegionLockoutChina  RegionLockout = "China"
	RegionLockoutKorea  RegionLockout = "Korea"
)

// EntryKind distinguishes how an entry payload is materialized.
type EntryKind uint8

// Entry kinds.
const (
	// EntryDirect means payload is a contiguous byte range of the container.
	EntryDirect EntryKind = iota
	// EntryReconstructed means payload must be rebuilt from a stored source
	// region by a named reconstruction strategy.
	EntryReconstructed
)

// Entry describes a single embedded sub-resource.
type Entry struct {
	// Path is the logical entry name.
	Path string `json:"path" yaml:"path"`
	// Format names the reconstruction strategy for reconstructed entries.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	// Offset is byte offset of stored payload (direct) or stored source (reconstructed).
	Offset int64 `json:"offset" yaml:"offset"`
	// Size is stored payload size in bytes.
	Size int64 `json:"size" yaml:"size"`
	// OriginalSize is reconstructed output size; zero for direct entries.
	OriginalSize int64 `json:"original_size,omitempty" yaml:"original_size,omitempty"`
	// Kind reports how payload is materialized.
	Kind EntryKind `json:"kind" yaml:"kind"`
}

// Reconstructor rebuilds one reconstructed entry payload from its stored
// source stream into dst.
type Reconstructor func(dst io.Writer, src io.Reader, entry Entry) error

// ReaderOptions configures reader parse behavior.
type ReaderOptions struct {
	// Reconstructors maps entry format keys to reconstruction strategies.
	// The "lzss" key is registered by default.
	Reconstructors map[string]Reconstructor `json:"-" yaml:"-"`
	// EntryPathPrefix limits visible entries to the given normalized prefix.
	EntryPathPrefix string `json:"entry_path_prefix,omitempty" yaml:"entry_path_prefix,omitempty"`
	// EntryRules defines ordered path rules for entry visibility.
	EntryRules []pathrules.Rule `json:"entry_rules,omitempty" yaml:"entry_rules,omitempty"`
	// EntryMatcherOptions control entry visibility rule matching.
	EntryMatcherOptions pathrules.MatcherOptions `json:"entry_matcher_options,omitzero" yaml:"entry_matcher_options,omitzero"`
	// ExtraEntries registers caller-known entries in addition to header-derived
	// ones. Extras are appended after the header-derived entries, so an extra
	// sharing a header-derived name never shadows it on lookup.
	ExtraEntries []Entry `json:"-" yaml:"-"`
	// SkipIcon disables best-effort icon decoding during construction.
	SkipIcon bool `json:"skip_icon,omitempty" yaml:"skip_icon,omitempty"`
}

// ExtractOptions configures Extract behavior.
type ExtractOptions struct {
	// OnEntryDone is called after one entry is fully written to disk.
	OnEntryDone func(entry Entry, written int64, outputPath string) `json:"-" yaml:"-"`
	// Entries limits extraction to selected metadata list; nil means all visible entries.
	Entries []Entry `json:"-" yaml:"-"`
	// MaxWorkers is number of extraction workers (zero means GOMAXPROCS).
	MaxWorkers int `json:"max_workers,omitempty" yaml:"max_workers,omitempty"`
	// RawNames disables default path sanitization during extract.
	RawNames bool `json:"raw_names,omitempty" yaml:"raw_names,omitempty"`
}

// regionNames lists title-table regions in on-disk record order.
var regionNames = []string{
	"Japanese",
	"English",
	"French",
	"German",
	"Italian",
	"Spanish",
	"Simplified Chinese",
	"Korean",
	"Dutch",
	"Portuguese",
	"Russian",
	"Traditional Chinese",
}

// defaultTitleOrder is the title lookup fallback order. English is checked
// before Japanese even though Japanese is the format's first record.
var defaultTitleOrder = []string{
	"English",
	"Japanese",
	"French",
	"German",
	"Italian",
	"Spanish",
	"Simplified Chinese",
	"Korean",
	"Dutch",
	"Portuguese",
	"Russian",
	"Traditional Chinese",
}

// regionLockFlags is the fixed-order region lock bit table. The EUR label
// intentionally covers two adjacent bits.
var regionLockFlags = []Flag{
	{Name: "JPN", Value: 1 << 0},
	{Name: "USA", Value: 1 << 1},
	{Name: "EUR", Value: 1 << 2},
	{Name: "EUR", Value: 1 << 3},
	{Name: "CHN", Value: 1 << 4},
	{Name: "KOR", Value: 1 << 5},
	{Name: "TWN", Value: 1 << 6},
	{Name: "FREE", Value: 1 << 7},
}

// applyDefaults fills zero-valued reader options with defaults.
func (opts *ReaderOptions) applyDefaults() {
	if opts.Reconstructors == nil {
		opts.Reconstructors = map[string]Reconstructor{}
	}

	if _, ok := opts.Reconstructors[FormatLZSS]; !ok {
		opts.Reconstructors[FormatLZSS] = reconstructLZSS
	}

	if opts.EntryMatcherOptions == (pathrules.MatcherOptions{}) {
		opts.EntryMatcherOptions = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionInclude,
		}
	}

	if opts.EntryMatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.EntryMatcherOptions.DefaultAction = pathrules.ActionInclude
	}
}
