//go:build rp2040 || rp2350

package platform

import (
	"context"
	"machine"

	"fixturecode-go/errcode"
	"fixturecode-go/fixture"
	"fixturecode-go/platform/boards"
	"fixturecode-go/services/config"
	"fixturecode-go/x/logx"
)

// Open configures the board's PWM backend, status LED and command link.
func Open(ctx context.Context, cfg config.Config) (*Platform, error) {
	b, l, err := resolve(cfg)
	if err != nil {
		return nil, err
	}
	p := &Platform{Board: b, Layout: l}

	switch b.Backend {
	case boards.BackendDirect:
		out, err := newDirectPWM(l, cfg.PWMFreqHz)
		if err != nil {
			return nil, err
		}
		p.Output = out
	case boards.BackendPCA9685:
		sda, scl := machine.Pin(b.I2C.SDA), machine.Pin(b.I2C.SCL)
		sda.Configure(machine.PinConfig{Mode: machine.PinI2C})
		scl.Configure(machine.PinConfig{Mode: machine.PinI2C})
		if err := machine.I2C0.Configure(machine.I2CConfig{SCL: scl, SDA: sda, Frequency: b.I2C.Hz}); err != nil {
			return nil, &errcode.E{C: errcode.DeviceError, Op: "platform.i2c", Err: err}
		}
		out, err := NewPCA9685Output(machine.I2C0, b.I2C.Addr, cfg.PWMFreqHz)
		if err != nil {
			return nil, err
		}
		p.Output = out
	default:
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "platform.open", Msg: b.Name + " is not an RP2 board"}
	}

	if b.StatusLED >= 0 {
		led := machine.Pin(b.StatusLED)
		led.Configure(machine.PinConfig{Mode: machine.PinOutput})
		led.Low()
		p.Status = statusPin{led}
	}

	if err := openLink(ctx, cfg, b, p); err != nil {
		p.Close()
		return nil, err
	}
	logx.Info("platform", b.Name, "backend", b.Backend.String())
	return p, nil
}

type statusPin struct{ p machine.Pin }

func (s statusPin) Set(on bool) { s.p.Set(on) }

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Top() uint32
	Set(channel uint8, value uint32)
}

// Select controller handle for a given slice number.
func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type pwmPin struct {
	ctrl  pwmCtrl
	chIdx uint8 // 0 => A, 1 => B
	top   uint32
}

// directPWM drives each fixture channel from the RP2 PWM slice behind its
// GPIO. Both channels of a slice share one period.
type directPWM struct {
	pins map[fixture.Channel]pwmPin
}

func newDirectPWM(l fixture.Layout, freqHz uint64) (*directPWM, error) {
	d := &directPWM{pins: make(map[fixture.Channel]pwmPin)}
	configured := make(map[uint8]bool)
	period := periodFor(freqHz)

	for _, ch := range l.All() {
		pin := machine.Pin(ch)
		slice, err := machine.PWMPeripheral(pin)
		if err != nil {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "platform.pwm", Err: err}
		}
		ctrl := pwmGroupBySlice(slice)
		if !configured[slice] {
			if err := ctrl.Configure(machine.PWMConfig{Period: period}); err != nil {
				return nil, &errcode.E{C: errcode.DeviceError, Op: "platform.pwm", Err: err}
			}
			configured[slice] = true
		}
		// Channel within the slice: even pin => A(0), odd pin => B(1).
		pp := pwmPin{ctrl: ctrl, chIdx: uint8(ch & 1), top: ctrl.Top()}
		pin.Configure(machine.PinConfig{Mode: machine.PinPWM})
		pp.ctrl.Set(pp.chIdx, 0)
		d.pins[ch] = pp
	}
	return d, nil
}

func (d *directPWM) SetChannelIntensity(ch fixture.Channel, v uint8) {
	pp, ok := d.pins[ch]
	if !ok {
		return
	}
	pp.ctrl.Set(pp.chIdx, scaleDuty(v, pp.top))
}
