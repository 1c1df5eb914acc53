package render

// RGB represents a 24-bit pixel color
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
	RGBRed   = RGB{255, 0, 0}
	RGBGreen = RGB{0, 255, 0}
	RGBBlue  = RGB{0, 0, 255}
)

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// IsBlack returns true if all channels are zero
func (c RGB) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// scale8 is ch*s/255 truncated, never rounds up
func scale8(ch, s uint8) uint8 {
	return uint8(uint16(ch) * uint16(s) / 255)
}

// Scale multiplies all channels by s/255 with integer truncation
// s=255 is identity, s=0 is black
func Scale(c RGB, s uint8) RGB {
	return RGB{
		R: scale8(c.R, s),
		G: scale8(c.G, s),
		B: scale8(c.B, s),
	}
}

// ScalePct multiplies all channels by pct/100, pct clamped to 100
func ScalePct(c RGB, pct uint8) RGB {
	if pct >= 100 {
		return c
	}
	p := uint16(pct)
	return RGB{
		R: uint8(uint16(c.R) * p / 100),
		G: uint8(uint16(c.G) * p / 100),
		B: uint8(uint16(c.B) * p / 100),
	}
}

// Lerp8 interpolates from a to b by t/255, truncating
// t=0 returns a, t=255 returns b
func Lerp8(a, b, t uint8) uint8 {
	if b >= a {
		return a + uint8(uint16(b-a)*uint16(t)/255)
	}
	return a - uint8(uint16(a-b)*uint16(t)/255)
}
