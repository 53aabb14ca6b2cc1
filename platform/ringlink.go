package platform

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"fixturecode-go/x/logx"
	"fixturecode-go/x/shmring"
)

// RecvFunc fills p with whatever has arrived, blocking until at least one
// byte is available, ctx ends or the source fails.
type RecvFunc func(ctx context.Context, p []byte) (int, error)

// RingLink is a protocol.Port whose receive side is fed by a pump
// goroutine into a shmring. Only the pump writes the ring and only the
// command loop reads it.
type RingLink struct {
	rx      *shmring.Ring
	tx      io.Writer
	dropped atomic.Uint32
}

func NewRingLink(size int, tx io.Writer) *RingLink {
	return &RingLink{rx: shmring.New(size), tx: tx}
}

func (l *RingLink) Buffered() int               { return l.rx.Available() }
func (l *RingLink) ReadByte() (byte, error)     { return l.rx.ReadByte() }
func (l *RingLink) Write(p []byte) (int, error) { return l.tx.Write(p) }

// Dropped counts bytes lost because the ring stayed full.
func (l *RingLink) Dropped() uint32 { return l.dropped.Load() }

// Pump copies from recv into the ring until ctx ends or recv fails. When
// the ring is full it waits up to fullWait for the reader before dropping.
func (l *RingLink) Pump(ctx context.Context, recv RecvFunc, chunk int, fullWait time.Duration) {
	if chunk <= 0 {
		chunk = 64
	}
	buf := make([]byte, chunk)
	for ctx.Err() == nil {
		n, err := recv(ctx, buf)
		if n > 0 {
			l.push(ctx, buf[:n], fullWait)
		}
		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				logx.Error("link receive failed:", err)
			}
			return
		}
	}
}

func (l *RingLink) push(ctx context.Context, p []byte, fullWait time.Duration) {
	deadline := time.Now().Add(fullWait)
	for len(p) > 0 {
		n := l.rx.WriteFrom(p)
		p = p[n:]
		if len(p) == 0 {
			return
		}
		if ctx.Err() != nil || !time.Now().Before(deadline) {
			l.dropped.Add(uint32(len(p)))
			logx.Error("link rx overflow, dropped", len(p))
			return
		}
		time.Sleep(time.Millisecond)
	}
}

// StartPump runs Pump in the background and returns its cancel function.
// A recv blocked in a driver call is not interrupted; the pump exits on its
// next return.
func (l *RingLink) StartPump(ctx context.Context, recv RecvFunc) context.CancelFunc {
	cctx, cancel := context.WithCancel(ctx)
	go l.Pump(cctx, recv, 64, 100*time.Millisecond)
	return cancel
}

// ReaderRecv adapts a blocking io.Reader to RecvFunc.
func ReaderRecv(r io.Reader) RecvFunc {
	return func(_ context.Context, p []byte) (int, error) { return r.Read(p) }
}
