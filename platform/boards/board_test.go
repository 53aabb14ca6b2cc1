package boards

import (
	"testing"

	"fixturecode-go/fixture"
)

func TestBoardsHaveValidLayouts(t *testing.T) {
	for _, name := range Names() {
		b, ok := Lookup(name)
		if !ok {
			t.Fatalf("%s not found", name)
		}
		if _, err := fixture.NewLayout(b.Channels); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestPicoDirectWiring(t *testing.T) {
	l := fixture.MustLayout(PicoDirect.Channels)
	if l.Channel(0, 0) != 2 || l.Channel(2, 3) != 13 {
		t.Fatalf("pins = %v", l.All())
	}
	if PicoDirect.Backend.String() != "direct" || PicoPCA9685.I2C.Addr != 0x40 {
		t.Fatal("board descriptors changed")
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("nope"); ok {
		t.Fatal("unknown board resolved")
	}
}
