// Package protocol frames, decodes and answers the line-delimited JSON
// commands arriving on the serial link.
package protocol

import (
	"time"

	"fixturecode-go/errcode"
)

// Port is the serial link as the command loop sees it: a non-blocking
// availability check, single-byte reads and a writer for replies.
// machine.Serial, machine.UART and the ring-backed links all satisfy it.
type Port interface {
	Buffered() int
	ReadByte() (byte, error)
	Write(p []byte) (int, error)
}

// Reader adds one byte of pushback and bounded waits on top of a Port.
type Reader struct {
	port    Port
	peeked  bool
	peek    byte
	timeout time.Duration
	poll    time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

// NewReader wraps p. timeout bounds how long a document may stall between
// bytes; zero means only bytes already buffered count.
func NewReader(p Port, timeout time.Duration) *Reader {
	return &Reader{
		port:    p,
		timeout: timeout,
		poll:    time.Millisecond,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Port returns the underlying link.
func (r *Reader) Port() Port { return r.port }

// Buffered is the number of bytes readable without waiting.
func (r *Reader) Buffered() int {
	n := r.port.Buffered()
	if r.peeked {
		n++
	}
	return n
}

// TryByte consumes one byte if one is buffered.
func (r *Reader) TryByte() (byte, bool) {
	if r.peeked {
		r.peeked = false
		return r.peek, true
	}
	if r.port.Buffered() <= 0 {
		return 0, false
	}
	b, err := r.port.ReadByte()
	if err != nil {
		return 0, false
	}
	return b, true
}

// TryPeek returns the next byte without consuming it, if one is buffered.
func (r *Reader) TryPeek() (byte, bool) {
	if r.peeked {
		return r.peek, true
	}
	b, ok := r.TryByte()
	if ok {
		r.unread(b)
	}
	return b, ok
}

func (r *Reader) unread(b byte) {
	r.peek, r.peeked = b, true
}

// next consumes one byte, waiting up to the timeout for it to arrive.
func (r *Reader) next() (byte, error) {
	if b, ok := r.TryByte(); ok {
		return b, nil
	}
	if r.timeout <= 0 {
		return 0, errcode.IncompleteInput
	}
	deadline := r.now().Add(r.timeout)
	for r.now().Before(deadline) {
		r.sleep(r.poll)
		if b, ok := r.TryByte(); ok {
			return b, nil
		}
	}
	return 0, errcode.IncompleteInput
}

// peekWait is next without consuming.
func (r *Reader) peekWait() (byte, error) {
	b, err := r.next()
	if err == nil {
		r.unread(b)
	}
	return b, err
}
