// Package platform binds the command loop to real hardware: the serial link,
// the PWM backend and the status LED of the selected board.
package platform

import (
	"strings"

	"fixturecode-go/errcode"
	"fixturecode-go/fixture"
	"fixturecode-go/platform/boards"
	"fixturecode-go/protocol"
	"fixturecode-go/services/config"
	"fixturecode-go/services/heartbeat"
)

// Platform is everything main needs from the board.
type Platform struct {
	Board  boards.Board
	Link   protocol.Port
	Output fixture.Output
	Layout fixture.Layout
	Status heartbeat.Pin // nil when the board has no status LED

	// Memory records channel levels on simulated boards.
	Memory *fixture.Memory

	closers []func()
}

// Close releases pumps and drives every channel dark.
func (p *Platform) Close() {
	if p.Output != nil {
		for _, ch := range p.Layout.All() {
			p.Output.SetChannelIntensity(ch, 0)
		}
	}
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
	p.closers = nil
}

func (p *Platform) onClose(f func()) { p.closers = append(p.closers, f) }

// resolve picks the board named in cfg and validates its layout.
func resolve(cfg config.Config) (boards.Board, fixture.Layout, error) {
	b, ok := boards.Lookup(cfg.Board)
	if !ok {
		return boards.Board{}, fixture.Layout{}, &errcode.E{C: errcode.InvalidParams, Op: "platform.open", Msg: "unknown board " + cfg.Board + " (known: " + strings.Join(boards.Names(), ", ") + ")"}
	}
	l, err := fixture.NewLayout(b.Channels)
	if err != nil {
		return boards.Board{}, fixture.Layout{}, err
	}
	return b, l, nil
}
