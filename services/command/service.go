// Package command runs the firmware's main loop: read one JSON document at a
// time from the serial link, drive the fixtures, answer with one line.
package command

import (
	"context"
	"time"

	"fixturecode-go/errcode"
	"fixturecode-go/protocol"
	"fixturecode-go/services/heartbeat"
	"fixturecode-go/types"
	"fixturecode-go/x/logx"
)

// Applier drives the fixtures; fixture.Dispatcher implements it.
type Applier interface {
	Apply(cmd types.Command)
}

type Options struct {
	Limits      protocol.Limits
	ReadTimeout time.Duration // max stall inside one document
	IdlePoll    time.Duration // sleep when nothing is buffered
	StatsEvery  time.Duration // 0 disables periodic stats lines
	Blinker     *heartbeat.Blinker
}

// Stats counts loop outcomes since start.
type Stats struct {
	Commands  uint32
	Errors    uint32
	LastError errcode.Code
}

type Service struct {
	r     *protocol.Reader
	out   Applier
	lim   protocol.Limits
	buf   []byte
	idle  time.Duration
	blink *heartbeat.Blinker
	stats Stats

	statsEvery time.Duration
	nextStats  time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

func New(port protocol.Port, out Applier, opt Options) *Service {
	lim := opt.Limits
	if lim.MaxBytes <= 0 || lim.MaxDepth <= 0 {
		lim = protocol.DefaultLimits
	}
	idle := opt.IdlePoll
	if idle <= 0 {
		idle = time.Millisecond
	}
	return &Service{
		r:          protocol.NewReader(port, opt.ReadTimeout),
		out:        out,
		lim:        lim,
		buf:        make([]byte, 0, lim.MaxBytes),
		idle:       idle,
		blink:      opt.Blinker,
		statsEvery: opt.StatsEvery,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

// Announce tells the host the device is ready for commands.
func (s *Service) Announce() error {
	return protocol.WriteReply(s.r.Port(), types.Ready())
}

// Step handles at most one document. It returns false without blocking
// when no document has started arriving.
func (s *Service) Step() bool {
	if !protocol.SkipWhitespace(s.r) {
		return false
	}

	doc, err := protocol.ReadDocument(s.r, s.lim, s.buf)
	var cmd types.Command
	if err == nil {
		cmd, err = protocol.DecodeCommand(doc)
	}
	if err != nil {
		s.stats.Errors++
		s.stats.LastError = errcode.Of(err)
		if errcode.IsDecode(err) {
			logx.Debug("command rejected:", err)
		} else {
			logx.Error("command failed:", err)
		}
	} else {
		s.out.Apply(cmd)
		s.stats.Commands++
		logx.Debug("led", uint8(cmd.LED), "r", cmd.R, "g", cmd.G, "b", cmd.B, "w", cmd.W)
	}

	if werr := protocol.WriteReply(s.r.Port(), protocol.ReplyFor(err)); werr != nil {
		logx.Error("reply write failed:", werr)
	}
	return true
}

// Run loops until ctx is cancelled. Heartbeat and stats only run while
// the link is idle.
func (s *Service) Run(ctx context.Context) error {
	logx.Info("command loop running")
	for {
		if err := ctx.Err(); err != nil {
			logx.Info("command loop stopping")
			return err
		}
		if s.Step() {
			continue
		}
		now := s.now()
		s.blink.Poll(now)
		s.logStats(now)
		s.sleep(s.idle)
	}
}

func (s *Service) Stats() Stats { return s.stats }

func (s *Service) logStats(now time.Time) {
	if s.statsEvery <= 0 {
		return
	}
	if s.nextStats.IsZero() {
		s.nextStats = now.Add(s.statsEvery)
		return
	}
	if now.Before(s.nextStats) {
		return
	}
	s.nextStats = now.Add(s.statsEvery)
	logx.Info("commands", s.stats.Commands, "errors", s.stats.Errors, "last", string(s.stats.LastError))
}
