package hostlink

import (
	"math"

	"fixturecode-go/types"
)

// RGBToRGBW converts an RGB colour to the fixtures' RGBW space by way of
// HSV. Saturation is softened (sqrt) and value is squared for a perceptual
// ramp; whatever saturation takes away goes to the white channel.
func RGBToRGBW(r, g, b uint8) types.Color {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	hi := math.Max(rf, math.Max(gf, bf))
	lo := math.Min(rf, math.Min(gf, bf))

	var s float64
	if hi > 0 {
		s = (hi - lo) / hi
	}
	// Fully saturated, full-value colour of the same hue.
	hr, hg, hb := 1.0, 0.0, 0.0
	if hi > lo {
		span := hi - lo
		hr, hg, hb = (rf-lo)/span, (gf-lo)/span, (bf-lo)/span
	}

	s = math.Sqrt(s)
	v := hi * hi
	return types.Color{
		R: unitToU8(hr * s * v),
		G: unitToU8(hg * s * v),
		B: unitToU8(hb * s * v),
		W: unitToU8(v * (1 - s)),
	}
}

func unitToU8(x float64) uint8 {
	switch {
	case x > 1:
		return 255
	case x < 0:
		return 0
	}
	return uint8(255 * x)
}
