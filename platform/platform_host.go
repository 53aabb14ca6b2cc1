//go:build !rp2040 && !rp2350

package platform

import (
	"context"
	"io"
	"os"

	"fixturecode-go/errcode"
	"fixturecode-go/fixture"
	"fixturecode-go/platform/boards"
	"fixturecode-go/services/config"
	"fixturecode-go/x/logx"
)

// DefaultBoard is the board this build drives when config names none.
const DefaultBoard = "host"

// Open runs the simulator over stdin/stdout. Logs go to stderr so the
// protocol stream stays clean.
func Open(ctx context.Context, cfg config.Config) (*Platform, error) {
	logx.SetOutput(os.Stderr)
	return OpenWith(ctx, cfg, os.Stdin, os.Stdout)
}

// OpenWith runs the simulator over arbitrary streams.
func OpenWith(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) (*Platform, error) {
	b, l, err := resolve(cfg)
	if err != nil {
		return nil, err
	}
	if b.Backend != boards.BackendSim {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "platform.open", Msg: b.Name + " needs " + b.Backend.String() + " hardware"}
	}

	mem := fixture.NewMemory()
	link := NewRingLink(cfg.RXBuffer, out)
	p := &Platform{
		Board:  b,
		Link:   link,
		Layout: l,
		Memory: mem,
		Output: fixture.OutputFunc(func(ch fixture.Channel, v uint8) {
			mem.SetChannelIntensity(ch, v)
			logx.Debug("pwm channel", int(ch), "level", v)
		}),
	}
	p.onClose(link.StartPump(ctx, ReaderRecv(in)))
	logx.Info("platform", b.Name, "backend", b.Backend.String())
	return p, nil
}
