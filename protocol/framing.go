package protocol

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t'
}

// SkipWhitespace drops buffered whitespace from the head of the stream
// without blocking. It reports whether a non-whitespace byte is waiting.
func SkipWhitespace(r *Reader) bool {
	for {
		b, ok := r.TryPeek()
		if !ok {
			return false
		}
		if !isSpace(b) {
			return true
		}
		r.TryByte()
	}
}

// DiscardLine drops buffered bytes up to and including the next '\n',
// without blocking. It returns the number of bytes dropped.
func DiscardLine(r *Reader) int {
	n := 0
	for {
		b, ok := r.TryByte()
		if !ok {
			return n
		}
		n++
		if b == '\n' {
			return n
		}
	}
}
