package types

// ------------------------
// Colour
// ------------------------

// Color is one RGBW intensity quadruple. Each channel is independent;
// no gamma or white-balance is applied anywhere on the device.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	W uint8 `json:"w"`
}

// Named colours used by the startup colour bars.
var (
	Red   = Color{R: 255}
	Green = Color{G: 255}
	Blue  = Color{B: 255}
	White = Color{W: 255}
	Black = Color{}
)

// Channels returns the intensities in output order R, G, B, W.
func (c Color) Channels() [4]uint8 { return [4]uint8{c.R, c.G, c.B, c.W} }
