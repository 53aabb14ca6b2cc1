package fixture

// Output is the PWM capability behind the fixtures. Writes are synchronous
// and assumed to succeed; backends log their own failures.
type Output interface {
	SetChannelIntensity(ch Channel, v uint8)
}

// OutputFunc adapts a plain function to Output.
type OutputFunc func(ch Channel, v uint8)

func (f OutputFunc) SetChannelIntensity(ch Channel, v uint8) { f(ch, v) }
