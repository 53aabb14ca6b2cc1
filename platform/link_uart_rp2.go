//go:build (rp2040 || rp2350) && uart_link

package platform

import (
	"context"
	"machine"

	"fixturecode-go/errcode"
	"fixturecode-go/platform/boards"
	"fixturecode-go/services/config"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// openLink carries commands over UART0, leaving the USB console for logs.
func openLink(ctx context.Context, cfg config.Config, b boards.Board, p *Platform) error {
	hw := uartx.UART0
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: cfg.Baud,
		TX:       machine.Pin(b.UART.TX),
		RX:       machine.Pin(b.UART.RX),
	}); err != nil {
		return &errcode.E{C: errcode.DeviceError, Op: "platform.uart", Err: err}
	}
	link := NewRingLink(cfg.RXBuffer, hw)
	p.Link = link
	p.onClose(link.StartPump(ctx, hw.RecvSomeContext))
	return nil
}
