package vmath

// LCG constants (ANSI C rand)
const (
	lcgMul = 1103515245
	lcgInc = 12345
)

// LCG advances state one step and returns (next, value); value is the new state
func LCG(state uint32) (next, value uint32) {
	next = state*lcgMul + lcgInc
	return next, next
}

// Rand is a deterministic linear-congruential generator
// Not safe for concurrent use; each owner keeps its own instance
type Rand struct {
	state uint32
}

// NewRand creates a generator from seed
func NewRand(seed uint32) Rand {
	return Rand{state: seed}
}

// Seed resets the generator state
func (r *Rand) Seed(seed uint32) {
	r.state = seed
}

// State returns the current generator state
func (r *Rand) State() uint32 {
	return r.state
}

func (r *Rand) Next() uint32 {
	var v uint32
	r.state, v = LCG(r.state)
	return v
}

// Intn returns a value in [0, n) using the high bits of the step
// Multiply-shift instead of modulo: LCG low bits have short periods
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((uint64(r.Next()) * uint64(n)) >> 32)
}

// Mix32 is a stateless integer hash for keyed pseudo-random values
func Mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}
