package vmath

import "math"

// Sin8LUTSize is one full wave cycle indexed by an 8-bit phase
const Sin8LUTSize = 256

// Sin8LUT is a DC-centred byte sine: 128 at phase 0, 255 at 64, 1 at 192
// Built once at init; lookups are pure integer
var Sin8LUT [Sin8LUTSize]uint8

func init() {
	for i := 0; i < Sin8LUTSize; i++ {
		rad := 2.0 * math.Pi * float64(i) / Sin8LUTSize
		Sin8LUT[i] = uint8(math.Round(128 + 127*math.Sin(rad)))
	}
}

// Sin8 returns the byte sine for an 8-bit phase
func Sin8(phase uint8) uint8 {
	return Sin8LUT[phase]
}
