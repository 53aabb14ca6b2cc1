// Package selftest runs the power-on colour sequence across every fixture.
package selftest

import (
	"context"
	"time"

	"fixturecode-go/types"
	"fixturecode-go/x/logx"
)

// Shower is the part of fixture.Dispatcher the sequence needs.
type Shower interface {
	Show(mask types.FixtureMask, c types.Color)
}

// DefaultSequence is red, green, blue, white, then all channels off.
var DefaultSequence = []types.Color{types.Red, types.Green, types.Blue, types.White, types.Black}

type Options struct {
	Colors []types.Color        // nil => DefaultSequence
	Dwell  time.Duration        // hold time between steps
	Sleep  func(time.Duration)  // nil => time.Sleep
	Status func(on bool)        // optional status LED, lit while running
}

// Run shows each colour on all fixtures, holding Dwell between steps. The
// last colour is not held. Cancelling ctx skips remaining steps but still
// shows the last colour, so fixtures never stay lit.
func Run(ctx context.Context, out Shower, opt Options) error {
	colors := opt.Colors
	if colors == nil {
		colors = DefaultSequence
	}
	if len(colors) == 0 {
		return nil
	}
	sleep := opt.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	if opt.Status != nil {
		opt.Status(true)
		defer opt.Status(false)
	}

	logx.Info("self-test start, steps", len(colors))
	last := len(colors) - 1
	for i, c := range colors[:last] {
		if err := ctx.Err(); err != nil {
			out.Show(types.FixtureAll, colors[last])
			logx.Error("self-test aborted at step", i)
			return err
		}
		out.Show(types.FixtureAll, c)
		if opt.Dwell > 0 {
			sleep(opt.Dwell)
		}
	}
	out.Show(types.FixtureAll, colors[last])
	logx.Info("self-test done")
	return nil
}
