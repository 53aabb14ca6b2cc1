package main

import (
	"context"
	"time"

	"fixturecode-go/fixture"
	"fixturecode-go/platform"
	"fixturecode-go/protocol"
	"fixturecode-go/services/command"
	"fixturecode-go/services/config"
	"fixturecode-go/services/heartbeat"
	"fixturecode-go/services/selftest"
	"fixturecode-go/x/logx"
)

func main() {
	ctx, stop := rootContext()
	defer stop()

	cfg, err := config.Load(platform.DefaultBoard)
	if err != nil {
		logx.Error("config:", err, "(using defaults)")
	}
	if cfg.Debug {
		logx.SetLevel(logx.LevelDebug)
	}

	// Allow USB CDC to enumerate before we talk.
	time.Sleep(cfg.BootDelay())
	logx.Info("boot", cfg.Board)

	plat, err := platform.Open(ctx, cfg)
	if err != nil {
		halt(ctx, err)
		return
	}
	defer plat.Close()

	disp := fixture.NewDispatcher(plat.Layout, plat.Output)
	opt := selftest.Options{Dwell: cfg.SelfTestDwell()}
	if plat.Status != nil {
		opt.Status = plat.Status.Set
	}
	if err := selftest.Run(ctx, disp, opt); err != nil {
		return
	}

	svc := command.New(plat.Link, disp, command.Options{
		Limits:      protocol.Limits{MaxBytes: cfg.MaxDocument, MaxDepth: cfg.MaxDepth},
		ReadTimeout: cfg.ReadTimeout(),
		IdlePoll:    cfg.IdlePoll(),
		StatsEvery:  cfg.StatsEvery(),
		Blinker:     heartbeat.New(plat.Status, cfg.Heartbeat()),
	})
	if err := svc.Announce(); err != nil {
		logx.Error("announce:", err)
	}
	_ = svc.Run(ctx)
}

// halt reports a boot failure until ctx ends. Nothing is driven.
func halt(ctx context.Context, err error) {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		logx.Error("boot failed:", err)
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
	}
}
