package fixture

import (
	"fixturecode-go/types"
)

// Dispatcher writes colours to the fixtures selected by a mask.
type Dispatcher struct {
	layout Layout
	out    Output
	state  [Count]types.Color
}

func NewDispatcher(layout Layout, out Output) *Dispatcher {
	return &Dispatcher{layout: layout, out: out}
}

// Show writes c to every fixture selected in mask, fixture 1 first, each in
// R, G, B, W order. All writes have completed when Show returns.
func (d *Dispatcher) Show(mask types.FixtureMask, c types.Color) {
	v := c.Channels()
	for f := 0; f < Count; f++ {
		if !mask.Has(f) {
			continue
		}
		chs := d.layout.Fixture(f)
		for i, ch := range chs {
			d.out.SetChannelIntensity(ch, v[i])
		}
		d.state[f] = c
	}
}

// Apply shows a decoded command.
func (d *Dispatcher) Apply(cmd types.Command) { d.Show(cmd.LED, cmd.Color) }

// State returns the last colour written to each fixture.
func (d *Dispatcher) State() [Count]types.Color { return d.state }

func (d *Dispatcher) Layout() Layout { return d.layout }
