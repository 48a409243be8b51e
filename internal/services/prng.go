package services

import "unicode/utf16"

// hashCode is the 32-bit rolling string hash h = h*31 + unit, computed over
// UTF-16 code units with two's-complement wraparound at every step.
// Iterating UTF-16 units (not runes or bytes) keeps non-ASCII input
// compatible with previously issued sandbox ids.
func hashCode(s string) int32 {
	var h uint32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + uint32(unit)
	}
	return int32(h)
}

// sandboxSeed folds a hash into [0, 10000). The absolute value is taken in
// 64 bits so math.MinInt32 does not overflow back to a negative number.
func sandboxSeed(h int32) uint32 {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return uint32(v % 10000)
}

// Mulberry32 is a 32-bit state multiply-xorshift generator.
// A zero value is a valid generator seeded with 0. It is not safe for
// concurrent use; create one per call site.
type Mulberry32 struct {
	state uint32
}

func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Next advances the state and returns a float in [0, 1).
// All arithmetic is uint32 and wraps on overflow.
func (m *Mulberry32) Next() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}
