package platform

import (
	"fixturecode-go/errcode"
	"fixturecode-go/fixture"
	"fixturecode-go/x/logx"
	"fixturecode-go/x/mathx"
	"fixturecode-go/x/timex"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/pca9685"
)

const (
	pcaLEDStart = 0x06 // LED0_ON_L
	pcaFullBit  = 0x10 // bit 4 of ON_H / OFF_H
	pcaOutputs  = 16
)

// PCA9685Output drives fixture channels as outputs of a PCA9685 expander.
// Each output starts its pulse at count 0 and ends it at the scaled level;
// 0 and 255 use the full-off and full-on bits so there is no residual glitch.
type PCA9685Output struct {
	bus  drivers.I2C
	addr uint8
	dev  pca9685.Dev
	top  uint32
	buf  [5]byte
	errs uint32
}

// NewPCA9685Output checks and configures the expander at addr. The PWM
// frequency is clamped to the 40..1000 Hz the chip supports.
func NewPCA9685Output(bus drivers.I2C, addr uint8, freqHz uint64) (*PCA9685Output, error) {
	dev := pca9685.New(bus, addr)
	if err := dev.IsConnected(); err != nil {
		return nil, &errcode.E{C: errcode.DeviceError, Op: "pca9685.connect", Err: err}
	}
	freqHz = mathx.Clamp(freqHz, 40, 1000)
	if err := dev.Configure(pca9685.PWMConfig{Period: timex.PeriodFromHz(freqHz)}); err != nil {
		return nil, &errcode.E{C: errcode.DeviceError, Op: "pca9685.configure", Err: err}
	}
	return &PCA9685Output{bus: bus, addr: addr, dev: dev, top: dev.Top()}, nil
}

func (o *PCA9685Output) SetChannelIntensity(ch fixture.Channel, v uint8) {
	if ch < 0 || ch >= pcaOutputs {
		return
	}
	var on, off uint16
	switch v {
	case 0:
		off = pcaFullBit << 8
	case 255:
		on = pcaFullBit << 8
	default:
		off = uint16(mathx.ScaleU8(v, o.top))
	}
	o.buf[0] = pcaLEDStart + 4*uint8(ch)
	o.buf[1], o.buf[2] = byte(on), byte(on>>8)
	o.buf[3], o.buf[4] = byte(off), byte(off>>8)
	if err := o.bus.Tx(uint16(o.addr), o.buf[:], nil); err != nil {
		o.errs++
		logx.Error("pca9685 write failed, channel", int(ch), err)
	}
}

// Errors counts failed channel writes.
func (o *PCA9685Output) Errors() uint32 { return o.errs }
