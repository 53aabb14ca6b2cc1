package heartbeat

import (
	"sync"
	"testing"
	"time"
)

type recPin struct {
	mu     sync.Mutex
	levels []bool
}

func (p *recPin) Set(on bool) {
	p.mu.Lock()
	p.levels = append(p.levels, on)
	p.mu.Unlock()
}

func TestBlinker_PollTogglesOnInterval(t *testing.T) {
	pin := &recPin{}
	b := New(pin, 100*time.Millisecond)
	t0 := time.Unix(100, 0)

	if b.Poll(t0) {
		t.Fatal("first poll only arms the timer")
	}
	if b.Poll(t0.Add(99 * time.Millisecond)) {
		t.Fatal("toggled early")
	}
	if !b.Poll(t0.Add(100*time.Millisecond)) || !b.On() {
		t.Fatal("expected toggle on")
	}
	if !b.Poll(t0.Add(200*time.Millisecond)) || b.On() {
		t.Fatal("expected toggle off")
	}
	if b.Toggles() != 2 || len(pin.levels) != 2 || pin.levels[0] != true || pin.levels[1] != false {
		t.Fatalf("levels = %v", pin.levels)
	}
}

func TestBlinker_CatchesUpAfterStall(t *testing.T) {
	b := New(&recPin{}, 10*time.Millisecond)
	t0 := time.Unix(0, 0)
	b.Poll(t0)
	if !b.Poll(t0.Add(time.Second)) {
		t.Fatal("expected toggle after stall")
	}
	if b.Poll(t0.Add(time.Second + 5*time.Millisecond)) {
		t.Fatal("should not burst-toggle to catch up")
	}
}

func TestBlinker_Disabled(t *testing.T) {
	var nilB *Blinker
	if nilB.Poll(time.Now()) {
		t.Fatal("nil blinker toggled")
	}
	if New(nil, time.Second).Poll(time.Now()) {
		t.Fatal("pinless blinker toggled")
	}
	pin := &recPin{}
	steady := New(pin, 0)
	steady.Poll(time.Now())
	steady.Poll(time.Now().Add(time.Hour))
	if len(pin.levels) != 1 || !pin.levels[0] || !steady.On() {
		t.Fatalf("zero interval should light the pin once, got %v", pin.levels)
	}
}
