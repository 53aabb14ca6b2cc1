package config

import (
	"encoding/json"
	"time"

	"fixturecode-go/errcode"
	"fixturecode-go/x/mathx"
)

// -----------------------------------------------------------------------------
// Firmware configuration
// -----------------------------------------------------------------------------

// Config holds the compiled-in operating parameters. Boards overlay a JSON
// document on top of Default(); there is no runtime configuration surface.
type Config struct {
	Board           string `json:"board"`
	Baud            uint32 `json:"baud"`
	PWMFreqHz       uint64 `json:"pwm_freq_hz"`
	SelfTestDwellMs uint32 `json:"selftest_dwell_ms"`
	ReadTimeoutMs   uint32 `json:"read_timeout_ms"` // mid-document stall limit; 0 = buffered bytes only
	MaxDocument     int    `json:"max_document"`    // bytes per command document
	MaxDepth        int    `json:"max_depth"`       // JSON nesting limit
	IdlePollMs      uint32 `json:"idle_poll_ms"`
	HeartbeatMs     uint32 `json:"heartbeat_ms"` // status LED toggle period; 0 = steady on
	StatsEveryMs    uint32 `json:"stats_every_ms"`
	RXBuffer        int    `json:"rx_buffer"` // ring size for pumped links (power of two)
	BootDelayMs     uint32 `json:"boot_delay_ms"` // wait for USB CDC to enumerate
	Debug           bool   `json:"debug"`
}

const defaultBoard = "host"

// Default is the firmware contract: 115200 baud, 500 ms colour bars,
// a 1 s stream timeout and a 128-byte document.
func Default() Config {
	return Config{
		Board:           defaultBoard,
		Baud:            115_200,
		PWMFreqHz:       1_000,
		SelfTestDwellMs: 500,
		ReadTimeoutMs:   1_000,
		MaxDocument:     128,
		MaxDepth:        10,
		IdlePollMs:      1,
		HeartbeatMs:     1_000,
		StatsEveryMs:    60_000,
		RXBuffer:        256,
	}
}

// Normalise clamps every field into its supported range.
func (c Config) Normalise() Config {
	if c.Board == "" {
		c.Board = defaultBoard
	}
	if c.Baud == 0 {
		c.Baud = 115_200
	}
	c.PWMFreqHz = mathx.Clamp(c.PWMFreqHz, 40, 100_000)
	c.SelfTestDwellMs = mathx.Clamp(c.SelfTestDwellMs, 0, 5_000)
	c.ReadTimeoutMs = mathx.Clamp(c.ReadTimeoutMs, 0, 10_000)
	c.MaxDocument = mathx.Clamp(c.MaxDocument, 16, 1024)
	c.MaxDepth = mathx.Clamp(c.MaxDepth, 1, 32)
	c.IdlePollMs = mathx.Clamp(c.IdlePollMs, 1, 100)
	c.RXBuffer = ceilPow2(mathx.Clamp(c.RXBuffer, 64, 4096))
	c.BootDelayMs = mathx.Clamp(c.BootDelayMs, 0, 10_000)
	// Zero keeps its meaning for both: steady LED, no stats lines.
	if c.HeartbeatMs != 0 {
		c.HeartbeatMs = mathx.Clamp(c.HeartbeatMs, 50, 60_000)
	}
	if c.StatsEveryMs != 0 {
		c.StatsEveryMs = mathx.Clamp(c.StatsEveryMs, 1_000, 3_600_000)
	}
	return c
}

func ceilPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (c Config) SelfTestDwell() time.Duration { return ms(c.SelfTestDwellMs) }
func (c Config) ReadTimeout() time.Duration   { return ms(c.ReadTimeoutMs) }
func (c Config) IdlePoll() time.Duration      { return ms(c.IdlePollMs) }
func (c Config) Heartbeat() time.Duration     { return ms(c.HeartbeatMs) }
func (c Config) StatsEvery() time.Duration    { return ms(c.StatsEveryMs) }
func (c Config) BootDelay() time.Duration     { return ms(c.BootDelayMs) }

func ms(v uint32) time.Duration { return time.Duration(v) * time.Millisecond }

// -----------------------------------------------------------------------------
// Embedded overlays
// -----------------------------------------------------------------------------

// EmbeddedConfigLookup allows overriding how board overlays are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

// Load returns Default() overlaid with the board's embedded JSON document,
// normalised. A board without an overlay gets the defaults.
func Load(board string) (Config, error) {
	c := Default()
	if board != "" {
		c.Board = board
	}

	raw, ok := EmbeddedConfigLookup(c.Board)
	if !ok || len(raw) == 0 {
		return c.Normalise(), nil
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return Default().Normalise(), &errcode.E{C: errcode.InvalidParams, Op: "config.load", Msg: "board " + c.Board, Err: err}
	}
	if c.Board == "" {
		c.Board = board
	}
	return c.Normalise(), nil
}
