package vmath

import "math/bits"

// Q16.16 Fixed Point constants
const (
	Shift = 16
	Scale = 1 << Shift
	Mask  = Scale - 1
	Half  = 1 << (Shift - 1)
)

// Q16 is a Q16.16 fixed point value: 16 integer bits, 16 fractional bits
// Stored in int64 so products like speed*dt*Scale never overflow before division
type Q16 int64

// --- Arithmetic ---

func FromInt(i int) Q16 { return Q16(int64(i) << Shift) }

// Int truncates toward negative infinity (arithmetic shift)
func (q Q16) Int() int { return int(int64(q) >> Shift) }

// Frac returns the fractional part in [0, Scale)
func (q Q16) Frac() int64 { return int64(q) & Mask }

// Mod returns q reduced into [0, m), m must be positive
func Mod(q, m Q16) Q16 {
	if m <= 0 {
		return 0
	}
	r := q % m
	if r < 0 {
		r += m
	}
	return r
}

// Rate returns amount*dt*Scale/per truncated, as Q16
// Used for frame-rate independent integration: amount units per `per` milliseconds over dt milliseconds
func Rate(amount, dt, per int64) Q16 {
	return Q16(MulDiv(amount*dt, Scale, per))
}

// MulDiv computes (a * b) / c with 128-bit intermediate, truncating toward zero
func MulDiv(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	neg := ((a < 0) != (b < 0)) != (c < 0)
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if c < 0 {
		c = -c
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi >= uint64(c) {
		// Quotient overflows 64 bits, saturate
		if neg {
			return -(1<<63 - 1)
		}
		return 1<<63 - 1
	}
	q, _ := bits.Div64(hi, lo, uint64(c))
	r := int64(q)
	if neg {
		return -r
	}
	return r
}
