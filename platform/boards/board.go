// Package boards describes the PCBs the firmware knows how to drive.
package boards

import "fixturecode-go/fixture"

// Backend selects which hardware produces the PWM signals.
type Backend uint8

const (
	BackendSim     Backend = iota // in-memory, host builds
	BackendDirect                 // RP2 PWM slices on GPIO
	BackendPCA9685                // external 16-channel expander on I2C
)

func (b Backend) String() string {
	switch b {
	case BackendDirect:
		return "direct"
	case BackendPCA9685:
		return "pca9685"
	default:
		return "sim"
	}
}

// Board is the wiring of one PCB: which output drives each fixture channel
// and where the status LED and buses sit. Operating parameters (baud, PWM
// frequency) live in services/config.
type Board struct {
	Name    string
	Backend Backend

	// Channels are GPIO numbers for BackendDirect and expander outputs
	// otherwise.
	Channels [fixture.Count][fixture.ChannelsPerFixture]fixture.Channel

	StatusLED int // GPIO; -1 = none

	// BackendPCA9685 only.
	I2C struct {
		SDA, SCL int
		Hz       uint32
		Addr     uint8
	}

	// Optional hardware UART for the command link (uart_link builds).
	UART struct {
		TX, RX int
	}
}

// PicoDirect drives the fixtures straight from GP2..GP13.
var PicoDirect = func() Board {
	b := Board{
		Name:    "pico_direct",
		Backend: BackendDirect,
		Channels: [fixture.Count][fixture.ChannelsPerFixture]fixture.Channel{
			{2, 3, 4, 5},
			{6, 7, 8, 9},
			{10, 11, 12, 13},
		},
		StatusLED: 25,
	}
	b.UART.TX, b.UART.RX = 0, 1
	return b
}()

// PicoPCA9685 drives the fixtures from expander outputs 0..11.
var PicoPCA9685 = func() Board {
	b := Board{
		Name:      "pico_pca9685",
		Backend:   BackendPCA9685,
		Channels:  fixture.Sequential(0),
		StatusLED: 25,
	}
	b.I2C.SDA, b.I2C.SCL, b.I2C.Hz, b.I2C.Addr = 4, 5, 400_000, 0x40
	b.UART.TX, b.UART.RX = 0, 1
	return b
}()

// Host is the simulator wiring used by desktop builds and tests.
var Host = Board{
	Name:      "host",
	Backend:   BackendSim,
	Channels:  fixture.Sequential(0),
	StatusLED: -1,
}

var known = []Board{PicoDirect, PicoPCA9685, Host}

// Lookup finds a board by name.
func Lookup(name string) (Board, bool) {
	for _, b := range known {
		if b.Name == name {
			return b, true
		}
	}
	return Board{}, false
}

// Names lists the known boards.
func Names() []string {
	out := make([]string, len(known))
	for i, b := range known {
		out[i] = b.Name
	}
	return out
}
