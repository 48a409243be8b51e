package services

import (
	"math"
	"testing"
)

func TestHashCode(t *testing.T) {
	tests := []struct {
		in   string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"10 Downing Street, London SW1A 2AA", 1168443958},
		{"221B Baker Street, London NW1 6XE", -1189940368},
		{"Depot: Battersea, SW11", -2020154879},
		// Non-ASCII input hashes by UTF-16 code unit.
		{"Café Müller", 1428366267},
		// Astral characters contribute both surrogate halves.
		{"🚚 depot", 1957804625},
		{"polygenelubricants", math.MinInt32},
	}

	for _, tt := range tests {
		if got := hashCode(tt.in); got != tt.want {
			t.Errorf("hashCode(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSandboxSeed(t *testing.T) {
	tests := []struct {
		in   int32
		want uint32
	}{
		{0, 0},
		{97, 97},
		{1168443958, 3958},
		{-1189940368, 368},
		{math.MaxInt32, 3647},
		{math.MinInt32, 3648},
	}

	for _, tt := range tests {
		if got := sandboxSeed(tt.in); got != tt.want {
			t.Errorf("sandboxSeed(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMulberry32Sequence(t *testing.T) {
	rng := NewMulberry32(0)
	want := []float64{0.26642920868471265, 0.0003297457005828619, 0.2232720274478197}

	for i, w := range want {
		if got := rng.Next(); got != w {
			t.Fatalf("draw %d = %v, want %v", i, got, w)
		}
	}
}

func TestMulberry32SeedsAreIndependent(t *testing.T) {
	a := NewMulberry32(3958)
	b := NewMulberry32(3958)
	other := NewMulberry32(3959)

	for i := 0; i < 100; i++ {
		x, y := a.Next(), b.Next()
		if x != y {
			t.Fatalf("draw %d: same seed diverged: %v != %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d out of range: %v", i, x)
		}
	}

	if NewMulberry32(3958).Next() == other.Next() {
		t.Fatalf("adjacent seeds produced the same first draw")
	}
}

func TestMulberry32ZeroValue(t *testing.T) {
	var rng Mulberry32
	if got := rng.Next(); got != 0.26642920868471265 {
		t.Fatalf("zero-value first draw = %v", got)
	}
}
