// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

/*
Package srl provides read-only access to SRL (Nintendo DS cartridge image)
containers. It parses the primary header, the optional extended header with
its region lockout field, and the embedded icon block, and exposes the
standard sub-resources (arm9, arm7, fnt, fat, banner) as independent
file-like streams without copying the container into memory.

Icon decoding is best effort: a malformed or missing icon block never fails
container construction, so callers must check Icon() for nil.

# Reading

Open a container and inspect header metadata:

	r, err := srl.Open("game.nds")
	if err != nil {
	    return err
	}
	defer r.Close()

	fmt.Println(r.Title(), r.RegionLockout())
	if icon := r.Icon(); icon != nil {
	    fmt.Println(icon.Title().ShortDesc)
	}

Open an embedded entry as a stream. Lookup paths are normalized, so
"/arm9.bin" and "arm9" open the same entry:

	f, err := r.OpenEntry("/arm9.bin")
	if err != nil {
	    return err
	}
	defer f.Close()

Entry streams returned for direct entries are independently seekable
sections of the container; two sections may be read from separate
goroutines, but one section must not be shared between goroutines.

For metadata-only scans, list entries without payload reads:

	entries, err := srl.ListEntries("game.nds")
	if err != nil {
	    return err
	}
	_ = entries

Entry visibility can be limited with path rules:

	r, err := srl.OpenWithOptions("game.nds", srl.ReaderOptions{
	    EntryRules: []pathrules.Rule{
	        {Action: pathrules.ActionInclude, Pattern: "arm9"},
	        {Action: pathrules.ActionInclude, Pattern: "arm7"},
	    },
	    EntryMatcherOptions: pathrules.MatcherOptions{
	        CaseInsensitive: true,
	        DefaultAction:   pathrules.ActionExclude,
	    },
	})

# Reconstructed entries

Entries that are not stored contiguously (for example a decompressed code
image whose stored form is LZSS-compressed) are registered as reconstructed
entries. Opening one streams the rebuilt payload through the strategy named
by its Format key; the "lzss" strategy is registered by default and custom
strategies can be supplied via ReaderOptions.Reconstructors:

	r, err := srl.OpenWithOptions("game.nds", srl.ReaderOptions{
	    ExtraEntries: []srl.Entry{{
	        Path:         "arm9.dec",
	        Kind:         srl.EntryReconstructed,
	        Format:       srl.FormatLZSS,
	        Offset:       arm9Offset,
	        Size:         arm9StoredSize,
	        OriginalSize: arm9DecompressedSize,
	    }},
	})

# Extracting

Extract visible entries to a directory (parallel workers):

	if err := r.Extract(ctx, "out/", srl.ExtractOptions{MaxWorkers: 4}); err != nil {
	    return err
	}

Output paths are sanitized by default; pass RawNames to keep entry names
verbatim.
*/
package srl
