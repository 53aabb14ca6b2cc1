package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board name (platform/boards)
// Val: raw JSON overlay applied on top of Default()
// -----------------------------------------------------------------------------

const cfgPicoDirect = `{
  "pwm_freq_hz": 1000,
  "heartbeat_ms": 1000,
  "boot_delay_ms": 1500
}`

// The PCA9685 tops out at 1 kHz; keep LEDs flicker-free at its ceiling.
const cfgPicoPCA9685 = `{
  "pwm_freq_hz": 1000,
  "heartbeat_ms": 500,
  "boot_delay_ms": 1500
}`

// The host simulator answers immediately and skips the long dwell.
const cfgHost = `{
  "selftest_dwell_ms": 50,
  "read_timeout_ms": 200,
  "stats_every_ms": 0,
  "debug": true
}`

var embeddedConfigs = map[string][]byte{
	"pico_direct":  []byte(cfgPicoDirect),
	"pico_pca9685": []byte(cfgPicoPCA9685),
	"host":         []byte(cfgHost),
}
