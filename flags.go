// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import (
	"math/bits"
	"sort"
)

// Flag is one named bit value in a fixed-order flag table.
type Flag struct {
	// Name is the flag label.
	Name string `json:"name" yaml:"name"`
	// Value is the flag bit pattern.
	Value uint32 `json:"value" yaml:"value"`
}

// DecomposeFlags decomposes value into the minimal ordered set of table
// members whose OR covers all known bits, plus the residual of unknown bits.
// Members fully contained in value are matched first, remaining bits are
// covered by single-bit members when available, and the result is sorted by
// descending value. When value itself matches a composite member and its
// full breakdown is also present, the breakdown wins and the composite is
// dropped; a composite with no matching single-bit members is kept as-is.
// Output is deterministic for a fixed table order.
func DecomposeFlags(table []Flag, value uint32) ([]Flag, uint32) {
	notCovered := value
	var members []Flag

	for _, member := range table {
		if member.Value != 0 && member.Value&value == member.Value {
			members = append(members, member)
			notCovered &^= member.Value
		}
	}

	tmp := notCovered
	for tmp != 0 {
		bit := uint32(1) << (31 - bits.LeadingZeros32(tmp))
		if member, ok := lookupFlagValue(table, bit); ok {
			members = append(members, member)
			notCovered &^= bit
		}

		tmp &^= bit
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Value > members[j].Value
	})

	if len(members) > 1 && members[0].Value == value {
		// the breakdown is complete, the composite member itself is redundant
		members = members[1:]
	}

	return members, notCovered
}

// lookupFlagValue returns the first table member with an exact value match.
func lookupFlagValue(table []Flag, value uint32) (Flag, bool) {
	if value == 0 {
		return Flag{}, false
	}

	for _, member := range table {
		if member.Value == value {
			return member, true
		}
	}

	return Flag{}, false
}

// flagNames returns member labels with duplicates removed, preserving order.
func flagNames(members []Flag) []string {
	names := make([]string, 0, len(members))
	seen := make(map[string]struct{}, len(members))
	for _, member := range members {
		if _, ok := seen[member.Name]; ok {
			continue
		}

		seen[member.Name] = struct{}{}
		names = append(names, member.Name)
	}

	return names
}
