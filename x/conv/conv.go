// Package conv renders integers into byte slices without fmt or strconv,
// which keeps log lines and protocol diagnostics cheap on MCU builds.
package conv

const hexDigits = "0123456789ABCDEF"

// AppendUint appends the decimal form of n.
func AppendUint(dst []byte, n uint64) []byte {
	var b [20]byte
	i := len(b)
	for {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return append(dst, b[i:]...)
}

// AppendInt appends the decimal form of n, with a leading '-' if negative.
func AppendInt(dst []byte, n int64) []byte {
	if n < 0 {
		// two's complement negation also covers math.MinInt64
		return AppendUint(append(dst, '-'), uint64(-n))
	}
	return AppendUint(dst, uint64(n))
}

// AppendHex8 appends b as two uppercase hex digits.
func AppendHex8(dst []byte, b byte) []byte {
	return append(dst, hexDigits[b>>4], hexDigits[b&0xF])
}

// Itoa is AppendInt into a fresh string.
func Itoa(n int) string { return string(AppendInt(nil, int64(n))) }
