package selftest

import (
	"context"
	"testing"
	"time"

	"fixturecode-go/fixture"
	"fixturecode-go/types"
)

type step struct {
	mask types.FixtureMask
	c    types.Color
}

type recShower struct{ steps []step }

func (r *recShower) Show(m types.FixtureMask, c types.Color) { r.steps = append(r.steps, step{m, c}) }

func TestRun_DefaultSequence(t *testing.T) {
	rec := &recShower{}
	var sleeps []time.Duration
	var status []bool
	err := Run(context.Background(), rec, Options{
		Dwell:  500 * time.Millisecond,
		Sleep:  func(d time.Duration) { sleeps = append(sleeps, d) },
		Status: func(on bool) { status = append(status, on) },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []types.Color{types.Red, types.Green, types.Blue, types.White, types.Black}
	if len(rec.steps) != len(want) {
		t.Fatalf("steps = %d", len(rec.steps))
	}
	for i, s := range rec.steps {
		if s.mask != types.FixtureAll || s.c != want[i] {
			t.Fatalf("step %d = %+v", i, s)
		}
	}
	if len(sleeps) != 4 || sleeps[0] != 500*time.Millisecond {
		t.Fatalf("sleeps = %v", sleeps)
	}
	if len(status) != 2 || !status[0] || status[1] {
		t.Fatalf("status = %v", status)
	}
}

func TestRun_EndsDarkOnEveryChannel(t *testing.T) {
	mem := fixture.NewMemory()
	d := fixture.NewDispatcher(fixture.MustLayout(fixture.Sequential(0)), mem)
	if err := Run(context.Background(), d, Options{Sleep: func(time.Duration) {}}); err != nil {
		t.Fatal(err)
	}
	for _, ch := range d.Layout().All() {
		if mem.Level(ch) != 0 {
			t.Fatalf("channel %d left at %d", ch, mem.Level(ch))
		}
	}
	// 5 colours x 3 fixtures x 4 channels
	if n := len(mem.Writes()); n != 60 {
		t.Fatalf("writes = %d", n)
	}
}

func TestRun_CancelledStillEndsWithLastColour(t *testing.T) {
	rec := &recShower{}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Run(ctx, rec, Options{Dwell: time.Millisecond, Sleep: func(time.Duration) {
		calls++
		if calls == 2 {
			cancel()
		}
	}})
	if err != context.Canceled {
		t.Fatalf("err = %v", err)
	}
	if len(rec.steps) != 3 || rec.steps[2].c != types.Black {
		t.Fatalf("steps = %+v", rec.steps)
	}
}
