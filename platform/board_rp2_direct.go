//go:build (rp2040 || rp2350) && !board_pca9685

package platform

// DefaultBoard is the board this build drives when config names none.
const DefaultBoard = "pico_direct"
