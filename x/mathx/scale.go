package mathx

// ScaleU8 maps an 8-bit intensity onto [0, top] with rounding, so 0 and 255
// land exactly on 0 and top.
func ScaleU8(v uint8, top uint32) uint32 {
	if top == 0 {
		return 0
	}
	return uint32(RoundDiv(uint64(v)*uint64(top), 255))
}
