// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

// ReadLE interprets b as a little-endian unsigned integer.
// Inputs longer than 8 bytes wrap; header fields never exceed 4 bytes.
func ReadLE(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}

	return v
}

// ReadBE interprets b as a big-endian unsigned integer.
func ReadBE(b []byte) uint64 {
	var v uint64
	for i := 0; i < len(b); i++ {
		v = v<<8 | uint64(b[i])
	}

	return v
}

// RoundUp returns the smallest multiple of alignment that is >= value.
// Integer ceiling division keeps large offsets exact.
func RoundUp(value, alignment int64) int64 {
	if alignment <= 0 {
		return value
	}

	return (value + alignment - 1) / alignment * alignment
}
