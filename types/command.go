package types

// ------------------------
// Fixture selection
// ------------------------

// FixtureMask selects fixtures: bit0 = fixture 1, bit1 = fixture 2,
// bit2 = fixture 3. Higher bits are ignored.
type FixtureMask uint8

const (
	Fixture1   FixtureMask = 1 << 0
	Fixture2   FixtureMask = 1 << 1
	Fixture3   FixtureMask = 1 << 2
	FixtureAll             = Fixture1 | Fixture2 | Fixture3
)

// Has reports whether the 0-based fixture index i is selected.
func (m FixtureMask) Has(i int) bool {
	if i < 0 || i > 7 {
		return false
	}
	return m&(1<<uint(i)) != 0
}

// ------------------------
// Command
// ------------------------

// Command is one decoded request. It lives for a single loop iteration.
type Command struct {
	LED FixtureMask `json:"led"`
	Color
}
