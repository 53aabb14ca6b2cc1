package protocol

import (
	"fixturecode-go/errcode"
	"fixturecode-go/x/conv"
)

// Limits bound one document.
type Limits struct {
	MaxBytes int // significant bytes (whitespace outside strings is not stored)
	MaxDepth int // nested objects/arrays
}

// DefaultLimits match a 128-byte static document with a nesting limit of 10.
var DefaultLimits = Limits{MaxBytes: 128, MaxDepth: 10}

// ReadDocument reads exactly one JSON value from r, validating it byte by
// byte, and stops on the value's last byte so whatever follows stays in the
// stream. The compact document is appended to buf[:0] and returned.
//
// Failures are errcode.E values with codes incomplete_input, invalid_input,
// no_memory or too_deep. After the last three the rest of the offending line
// is discarded, so a bad line costs exactly one error. The exception is an
// invalid byte that belongs to the next command: one found after a line
// break, or a '{' or '[' where a key or separator was due. That byte is
// pushed back and the next call starts from it.
func ReadDocument(r *Reader, lim Limits, buf []byte) ([]byte, error) {
	d := docReader{r: r, lim: lim, buf: buf[:0]}
	if d.lim.MaxBytes <= 0 {
		d.lim.MaxBytes = DefaultLimits.MaxBytes
	}
	if d.lim.MaxDepth <= 0 {
		d.lim.MaxDepth = DefaultLimits.MaxDepth
	}

	b, err := d.skipSpace()
	if err == nil {
		err = d.value(b, 0)
	}
	if err != nil {
		if len(d.buf) == 0 && errcode.Of(err) == errcode.IncompleteInput {
			return nil, &errcode.E{C: errcode.EmptyInput, Op: "read_document", Msg: "no document"}
		}
		if errcode.Resync(err) {
			switch {
			case d.last == '\n':
			case errcode.Of(err) == errcode.InvalidInput && (d.crossed || d.last == '{' || d.last == '['):
				r.unread(d.last)
			default:
				DiscardLine(r)
			}
		}
		return nil, err
	}
	return d.buf, nil
}

type docReader struct {
	r    *Reader
	lim  Limits
	buf  []byte
	off  int  // bytes consumed
	last byte // last byte consumed

	crossed bool // a line break was consumed inside the document
}

func (d *docReader) next() (byte, error) {
	b, err := d.r.next()
	if err != nil {
		return 0, d.incomplete()
	}
	d.off++
	if d.last == '\n' {
		d.crossed = true
	}
	d.last = b
	return b, nil
}

func (d *docReader) emit(b byte) error {
	if len(d.buf) >= d.lim.MaxBytes {
		return &errcode.E{C: errcode.NoMemory, Op: "read_document", Msg: "document exceeds " + conv.Itoa(d.lim.MaxBytes) + " bytes"}
	}
	d.buf = append(d.buf, b)
	return nil
}

func (d *docReader) skipSpace() (byte, error) {
	for {
		b, err := d.next()
		if err != nil || !isSpace(b) {
			return b, err
		}
	}
}

func (d *docReader) value(b byte, depth int) error {
	switch {
	case b == '{':
		return d.object(depth + 1)
	case b == '[':
		return d.array(depth + 1)
	case b == '"':
		return d.str()
	case b == 't':
		return d.literal("true")
	case b == 'f':
		return d.literal("false")
	case b == 'n':
		return d.literal("null")
	case b == '-' || isDigit(b):
		return d.number(b)
	}
	return d.invalid(b)
}

func (d *docReader) enter(depth int) error {
	if depth > d.lim.MaxDepth {
		return &errcode.E{C: errcode.TooDeep, Op: "read_document", Msg: "nesting exceeds " + conv.Itoa(d.lim.MaxDepth)}
	}
	return nil
}

func (d *docReader) object(depth int) error {
	if err := d.enter(depth); err != nil {
		return err
	}
	if err := d.emit('{'); err != nil {
		return err
	}
	b, err := d.skipSpace()
	if err != nil {
		return err
	}
	if b == '}' {
		return d.emit(b)
	}
	for {
		if b != '"' {
			return d.invalid(b)
		}
		if err := d.str(); err != nil {
			return err
		}
		if b, err = d.skipSpace(); err != nil {
			return err
		}
		if b != ':' {
			return d.invalid(b)
		}
		if err := d.emit(b); err != nil {
			return err
		}
		if b, err = d.skipSpace(); err != nil {
			return err
		}
		if err := d.value(b, depth); err != nil {
			return err
		}
		if b, err = d.skipSpace(); err != nil {
			return err
		}
		switch b {
		case '}':
			return d.emit(b)
		case ',':
			if err := d.emit(b); err != nil {
				return err
			}
			if b, err = d.skipSpace(); err != nil {
				return err
			}
		default:
			return d.invalid(b)
		}
	}
}

func (d *docReader) array(depth int) error {
	if err := d.enter(depth); err != nil {
		return err
	}
	if err := d.emit('['); err != nil {
		return err
	}
	b, err := d.skipSpace()
	if err != nil {
		return err
	}
	if b == ']' {
		return d.emit(b)
	}
	for {
		if err := d.value(b, depth); err != nil {
			return err
		}
		if b, err = d.skipSpace(); err != nil {
			return err
		}
		switch b {
		case ']':
			return d.emit(b)
		case ',':
			if err := d.emit(b); err != nil {
				return err
			}
			if b, err = d.skipSpace(); err != nil {
				return err
			}
		default:
			return d.invalid(b)
		}
	}
}

// str reads a string whose opening quote was already consumed.
func (d *docReader) str() error {
	if err := d.emit('"'); err != nil {
		return err
	}
	for {
		b, err := d.next()
		if err != nil {
			return err
		}
		switch {
		case b == '"':
			return d.emit(b)
		case b == '\\':
			if err := d.emit(b); err != nil {
				return err
			}
			if err := d.escape(); err != nil {
				return err
			}
		case b < 0x20:
			return d.invalid(b)
		default:
			if err := d.emit(b); err != nil {
				return err
			}
		}
	}
}

func (d *docReader) escape() error {
	b, err := d.next()
	if err != nil {
		return err
	}
	switch b {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return d.emit(b)
	case 'u':
		if err := d.emit(b); err != nil {
			return err
		}
		for i := 0; i < 4; i++ {
			h, err := d.next()
			if err != nil {
				return err
			}
			if !isHex(h) {
				return d.invalid(h)
			}
			if err := d.emit(h); err != nil {
				return err
			}
		}
		return nil
	}
	return d.invalid(b)
}

// literal reads true, false or null; the first letter was already consumed.
func (d *docReader) literal(word string) error {
	if err := d.emit(word[0]); err != nil {
		return err
	}
	for i := 1; i < len(word); i++ {
		b, err := d.next()
		if err != nil {
			return err
		}
		if b != word[i] {
			return d.invalid(b)
		}
		if err := d.emit(b); err != nil {
			return err
		}
	}
	return nil
}

// number reads -?(0|[1-9][0-9]*)(.[0-9]+)?([eE][+-]?[0-9]+)? starting at b.
// The byte after the number is left in the stream; a stall right after a
// complete number ends it.
func (d *docReader) number(b byte) error {
	if err := d.emit(b); err != nil {
		return err
	}
	if b == '-' {
		var err error
		if b, err = d.next(); err != nil {
			return err
		}
		if !isDigit(b) {
			return d.invalid(b)
		}
		if err := d.emit(b); err != nil {
			return err
		}
	}
	if b != '0' {
		if err := d.digits(); err != nil {
			return err
		}
	}
	if p, ok := d.peek(); ok && p == '.' {
		if err := d.fraction(); err != nil {
			return err
		}
	}
	if p, ok := d.peek(); ok && (p == 'e' || p == 'E') {
		d.next()
		if err := d.emit(p); err != nil {
			return err
		}
		if s, ok := d.peek(); ok && (s == '+' || s == '-') {
			d.next()
			if err := d.emit(s); err != nil {
				return err
			}
		}
		return d.requiredDigits()
	}
	return nil
}

// fraction consumes the '.' of a fraction and its digits.
func (d *docReader) fraction() error {
	b, _ := d.next()
	if err := d.emit(b); err != nil {
		return err
	}
	return d.requiredDigits()
}

// requiredDigits reads at least one digit, then any more.
func (d *docReader) requiredDigits() error {
	b, err := d.next()
	if err != nil {
		return err
	}
	if !isDigit(b) {
		return d.invalid(b)
	}
	if err := d.emit(b); err != nil {
		return err
	}
	return d.digits()
}

// digits consumes a (possibly empty) run of digits.
func (d *docReader) digits() error {
	for {
		p, ok := d.peek()
		if !ok || !isDigit(p) {
			return nil
		}
		d.next()
		if err := d.emit(p); err != nil {
			return err
		}
	}
}

// peek waits for the next byte without consuming it; ok is false when the
// stream stalls.
func (d *docReader) peek() (byte, bool) {
	b, err := d.r.peekWait()
	return b, err == nil
}

func (d *docReader) incomplete() error {
	return &errcode.E{C: errcode.IncompleteInput, Op: "read_document", Msg: "stream stalled after " + conv.Itoa(d.off) + " bytes"}
}

func (d *docReader) invalid(b byte) error {
	msg := make([]byte, 0, 32)
	msg = append(msg, "unexpected "...)
	if b >= 0x20 && b < 0x7f {
		msg = append(msg, '\'', b, '\'')
	} else {
		msg = conv.AppendHex8(append(msg, "byte 0x"...), b)
	}
	msg = conv.AppendInt(append(msg, " at "...), int64(d.off))
	return &errcode.E{C: errcode.InvalidInput, Op: "read_document", Msg: string(msg)}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
