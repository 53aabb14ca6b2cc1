// Command channelwalk is bench firmware for checking fixture wiring: it
// lights every channel in turn, fixture by fixture, then repeats.
package main

import (
	"context"
	"time"

	"fixturecode-go/fixture"
	"fixturecode-go/platform"
	"fixturecode-go/services/config"
	"fixturecode-go/services/heartbeat"
	"fixturecode-go/x/logx"
)

// ---------- Configuration ----------

const (
	stepUp   = 20 * time.Millisecond // per level step while fading in
	dwellOn  = 400 * time.Millisecond
	stepDown = 10 * time.Millisecond

	levelStep = 15

	// Cycles: 0 = loop forever
	cyclesToRun = 0
)

type walkOpts struct {
	StepUp, DwellOn, StepDown time.Duration
	Cycles                    int
	Sleep                     func(time.Duration)
	Blink                     *heartbeat.Blinker
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load(platform.DefaultBoard)
	if err != nil {
		logx.Error("config:", err)
	}
	time.Sleep(cfg.BootDelay())

	plat, err := platform.Open(ctx, cfg)
	if err != nil {
		for {
			logx.Error("boot failed:", err)
			time.Sleep(time.Second)
		}
	}
	defer plat.Close()

	walk(ctx, plat.Output, plat.Layout, walkOpts{
		StepUp:   stepUp,
		DwellOn:  dwellOn,
		StepDown: stepDown,
		Cycles:   cyclesToRun,
		Sleep:    time.Sleep,
		Blink:    heartbeat.New(plat.Status, cfg.Heartbeat()),
	})
}

// walk fades each channel of each fixture up, holds it, and fades it back
// to dark before moving on. Only one channel is ever lit.
func walk(ctx context.Context, out fixture.Output, l fixture.Layout, o walkOpts) {
	for cycle := 1; o.Cycles == 0 || cycle <= o.Cycles; cycle++ {
		logx.Info("walk cycle", cycle)
		for f := 0; f < fixture.Count; f++ {
			for c, ch := range l.Fixture(f) {
				if ctx.Err() != nil {
					return
				}
				logx.Info("fixture", f+1, "channel", "RGBW"[c:c+1], "output", int(ch))
				fade(out, ch, o, true)
				o.Sleep(o.DwellOn)
				fade(out, ch, o, false)
				o.Blink.Poll(time.Now())
			}
		}
	}
}

func fade(out fixture.Output, ch fixture.Channel, o walkOpts, up bool) {
	if up {
		for v := 0; v < 255; v += levelStep {
			out.SetChannelIntensity(ch, uint8(v))
			o.Sleep(o.StepUp)
		}
		out.SetChannelIntensity(ch, 255)
		return
	}
	for v := 255; v > 0; v -= levelStep {
		out.SetChannelIntensity(ch, uint8(v))
		o.Sleep(o.StepDown)
	}
	out.SetChannelIntensity(ch, 0)
}
