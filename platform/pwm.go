package platform

import (
	"fixturecode-go/x/mathx"
	"fixturecode-go/x/timex"
)

// periodFor clamps a slice frequency into the range the RP2 dividers reach
// at the default system clock and returns its period in nanoseconds.
func periodFor(freqHz uint64) uint64 {
	return timex.PeriodFromHz(mathx.Clamp(freqHz, 40, 100_000))
}

// scaleDuty maps 0..255 onto a counter compare value in 0..top+1 so that
// 255 holds the output high for the whole period.
func scaleDuty(v uint8, top uint32) uint32 {
	if v == 255 {
		return top + 1
	}
	return mathx.ScaleU8(v, top)
}
