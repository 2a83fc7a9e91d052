package srl

import (
	"testing"
)

func TestReadLE(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   []byte
		want uint64
	}{
		{name: "empty", in: nil, want: 0},
		{name: "single", in: []byte{0x7F}, want: 0x7F},
		{name: "dword", in: []byte{0x78, 0x56, 0x34, 0x12}, want: 0x12345678},
		{name: "qword", in: []byte{1, 0, 0, 0, 0, 0, 0, 0x80}, want: 0x8000000000000001},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := ReadLE(tc.in); got != tc.want {
				t.Fatalf("ReadLE(%v)=%#x, want %#x", tc.in, got, tc.want)
			}
		})
	}
}

func TestReadBE(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   []byte
		want uint64
	}{
		{name: "empty", in: nil, want: 0},
		{name: "single", in: []byte{0x7F}, want: 0x7F},
		{name: "dword", in: []byte{0x12, 0x34, 0x56, 0x78}, want: 0x12345678},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := ReadBE(tc.in); got != tc.want {
				t.Fatalf("ReadBE(%v)=%#x, want %#x", tc.in, got, tc.want)
			}
		})
	}
}

func TestReadLE_MirrorsReadBE(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{
		{0x01},
		{0x01, 0x02},
		{0xDE, 0xAD, 0xBE, 0xEF},
		{0x00, 0xFF, 0x10, 0x20, 0x30},
	}

	for _, in := range inputs {
		reversed := make([]byte, len(in))
		for i, b := range in {
			reversed[len(in)-1-i] = b
		}

		if got, want := ReadLE(in), ReadBE(reversed); got != want {
			t.Errorf("ReadLE(%v)=%#x, want ReadBE(reversed)=%#x", in, got, want)
		}
	}
}

func TestRoundUp(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		value     int64
		alignment int64
		want      int64
	}{
		{name: "zero", value: 0, alignment: 0x200, want: 0},
		{name: "exact", value: 0x400, alignment: 0x200, want: 0x400},
		{name: "rounds", value: 0x401, alignment: 0x200, want: 0x600},
		{name: "unit alignment", value: 123, alignment: 1, want: 123},
		{name: "large offset stays exact", value: 1<<60 + 1, alignment: 0x200, want: 1<<60 + 0x200},
		{name: "nonpositive alignment passthrough", value: 77, alignment: 0, want: 77},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := RoundUp(tc.value, tc.alignment); got != tc.want {
				t.Fatalf("RoundUp(%d, %d)=%d, want %d", tc.value, tc.alignment, got, tc.want)
			}
		})
	}
}

func TestRoundUp_Properties(t *testing.T) {
	t.Parallel()

	alignments := []int64{1, 4, 0x200, 0x1000}
	for _, a := range alignments {
		for v := int64(0); v < 3*a; v += a/3 + 1 {
			got := RoundUp(v, a)
			if got < v {
				t.Fatalf("RoundUp(%d, %d)=%d < value", v, a, got)
			}
			if got%a != 0 {
				t.Fatalf("RoundUp(%d, %d)=%d not a multiple of alignment", v, a, got)
			}
			if got >= v+a {
				t.Fatalf("RoundUp(%d, %d)=%d >= value+alignment", v, a, got)
			}
		}
	}
}
