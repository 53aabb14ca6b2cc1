//go:build (rp2040 || rp2350) && !uart_link

package platform

import (
	"context"
	"machine"

	"fixturecode-go/platform/boards"
	"fixturecode-go/services/config"
	"fixturecode-go/x/logx"
)

// openLink uses the USB CDC console as the command link. The console is
// shared with println, so logging is silenced unless debugging.
func openLink(_ context.Context, cfg config.Config, _ boards.Board, p *Platform) error {
	p.Link = machine.Serial
	if !cfg.Debug {
		logx.SetLevel(logx.LevelOff)
	}
	return nil
}
