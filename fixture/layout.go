// Package fixture maps RGBW colours onto the twelve output channels of the
// three LED fixtures.
package fixture

import (
	"fixturecode-go/errcode"
	"fixturecode-go/x/conv"
)

const (
	Count              = 3 // fixtures
	ChannelsPerFixture = 4 // R, G, B, W
)

// Channel is a physical output identifier: a GPIO number for direct PWM,
// or an expander output index for the PCA9685 backend.
type Channel int

// Layout is the fixed (fixture, colour channel) -> Channel table.
// It is immutable after NewLayout.
type Layout struct {
	ch [Count][ChannelsPerFixture]Channel
}

// NewLayout validates and freezes a channel table. Every identifier must be
// non-negative and used once.
func NewLayout(table [Count][ChannelsPerFixture]Channel) (Layout, error) {
	seen := make(map[Channel]struct{}, Count*ChannelsPerFixture)
	for f := range table {
		for c, id := range table[f] {
			if id < 0 {
				return Layout{}, &errcode.E{C: errcode.UnknownPin, Op: "fixture.layout", Msg: slot(f, c)}
			}
			if _, dup := seen[id]; dup {
				return Layout{}, &errcode.E{C: errcode.PinInUse, Op: "fixture.layout", Msg: slot(f, c)}
			}
			seen[id] = struct{}{}
		}
	}
	return Layout{ch: table}, nil
}

// MustLayout is NewLayout for compiled-in board tables.
func MustLayout(table [Count][ChannelsPerFixture]Channel) Layout {
	l, err := NewLayout(table)
	if err != nil {
		panic(err.Error())
	}
	return l
}

// Sequential numbers outputs base, base+1, ... fixture by fixture, the
// wiring of the PCA9685 boards and the host simulator.
func Sequential(base Channel) [Count][ChannelsPerFixture]Channel {
	var t [Count][ChannelsPerFixture]Channel
	for f := range t {
		for c := range t[f] {
			t[f][c] = base + Channel(f*ChannelsPerFixture+c)
		}
	}
	return t
}

// Channel returns the output for fixture f (0-based) and colour index c
// (0=R, 1=G, 2=B, 3=W).
func (l Layout) Channel(f, c int) Channel { return l.ch[f][c] }

// Fixture returns the four outputs of fixture f in R, G, B, W order.
func (l Layout) Fixture(f int) [ChannelsPerFixture]Channel { return l.ch[f] }

// All returns every channel, fixture by fixture.
func (l Layout) All() []Channel {
	out := make([]Channel, 0, Count*ChannelsPerFixture)
	for f := range l.ch {
		out = append(out, l.ch[f][:]...)
	}
	return out
}

func slot(f, c int) string {
	return "fixture " + conv.Itoa(f+1) + " channel " + "RGBW"[c:c+1]
}
