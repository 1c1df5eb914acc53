package render

// HSV converts hue (degrees, reduced mod 360), saturation and value (percent, clamped to 100)
// to RGB with a 6-sector integer conversion
//
// Every division truncates; the result is bit-exact across platforms:
//
//	v = val*255/100
//	p = v*(100-sat)/100
//	q = v*(6000-sat*rem)/6000
//	t = v*(6000-sat*(60-rem))/6000
func HSV(hue, sat, val int) RGB {
	hue %= 360
	if hue < 0 {
		hue += 360
	}
	sat = clampPct(sat)
	val = clampPct(val)

	v := val * 255 / 100
	if sat == 0 {
		return RGB{uint8(v), uint8(v), uint8(v)}
	}

	region := hue / 60
	rem := hue % 60

	p := uint8(v * (100 - sat) / 100)
	q := uint8(v * (6000 - sat*rem) / 6000)
	t := uint8(v * (6000 - sat*(60-rem)) / 6000)
	vv := uint8(v)

	switch region {
	case 0:
		return RGB{vv, t, p}
	case 1:
		return RGB{q, vv, p}
	case 2:
		return RGB{p, vv, t}
	case 3:
		return RGB{p, q, vv}
	case 4:
		return RGB{t, p, vv}
	default:
		return RGB{vv, p, q}
	}
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
