// Package heartbeat blinks the status LED so a bench operator can see the
// firmware is alive.
package heartbeat

import "time"

// Pin is anything that can be driven high or low.
type Pin interface {
	Set(on bool)
}

// PinFunc adapts a plain function to Pin.
type PinFunc func(on bool)

func (f PinFunc) Set(on bool) { f(on) }

// Blinker toggles a pin every Interval. It is polled from the command
// loop's idle branch, so it never runs concurrently with command handling.
type Blinker struct {
	pin      Pin
	interval time.Duration
	next     time.Time
	on       bool
	toggles  uint32
}

// New returns a blinker on pin. A nil pin gives a blinker whose Poll does
// nothing.
func New(pin Pin, interval time.Duration) *Blinker {
	return &Blinker{pin: pin, interval: interval}
}

// Poll toggles the pin if the interval has elapsed and reports whether it did.
// With no interval the pin is lit once and left on.
func (b *Blinker) Poll(now time.Time) bool {
	if b == nil || b.pin == nil {
		return false
	}
	if b.interval <= 0 {
		if !b.on {
			b.on = true
			b.pin.Set(true)
		}
		return false
	}
	if b.next.IsZero() {
		b.next = now.Add(b.interval)
		return false
	}
	if now.Before(b.next) {
		return false
	}
	b.on = !b.on
	b.pin.Set(b.on)
	b.toggles++
	b.next = b.next.Add(b.interval)
	if now.After(b.next) {
		// fell behind, e.g. during a long self-test
		b.next = now.Add(b.interval)
	}
	return true
}

// On reports the last level written.
func (b *Blinker) On() bool { return b.on }

func (b *Blinker) Toggles() uint32 { return b.toggles }
