package command

import (
	"context"
	"testing"
	"time"

	"fixturecode-go/errcode"
	"fixturecode-go/fixture"
	"fixturecode-go/protocol"
	"fixturecode-go/services/heartbeat"
	"fixturecode-go/types"
)

type rig struct {
	port *protocol.MemPort
	mem  *fixture.Memory
	disp *fixture.Dispatcher
	svc  *Service
}

func newRig(opt Options) *rig {
	port := protocol.NewMemPort()
	mem := fixture.NewMemory()
	disp := fixture.NewDispatcher(fixture.MustLayout(fixture.Sequential(0)), mem)
	return &rig{port: port, mem: mem, disp: disp, svc: New(port, disp, opt)}
}

func (r *rig) drain() {
	for r.svc.Step() {
	}
}

func TestAnnounce(t *testing.T) {
	r := newRig(Options{})
	if err := r.svc.Announce(); err != nil {
		t.Fatal(err)
	}
	if got := r.port.Output(); got != "{\"status\":\"ready\"}\r\n" {
		t.Fatalf("wire = %q", got)
	}
}

func TestStep_AppliesCommandAndReplies(t *testing.T) {
	r := newRig(Options{})
	r.port.Feed("{\"led\":1,\"r\":255}\n")
	if !r.svc.Step() {
		t.Fatal("document not handled")
	}
	if got := r.port.Lines(); len(got) != 1 || got[0] != `{"success":true}` {
		t.Fatalf("replies = %q", got)
	}
	st := r.disp.State()
	if st[0] != (types.Color{R: 255}) || st[1] != types.Black || st[2] != types.Black {
		t.Fatalf("state = %+v", st)
	}
	if r.mem.Level(0) != 255 || len(r.mem.Writes()) != 4 {
		t.Fatalf("writes = %+v", r.mem.Writes())
	}
	if r.svc.Step() {
		t.Fatal("trailing line break is not a document")
	}
}

func TestStep_MaskSelection(t *testing.T) {
	cases := []struct {
		led    int
		lit    [3]bool
		writes int
	}{
		{0, [3]bool{}, 0},
		{2, [3]bool{false, true, false}, 4},
		{5, [3]bool{true, false, true}, 8},
		{7, [3]bool{true, true, true}, 12},
		{9, [3]bool{true, false, false}, 4},
	}
	for _, tc := range cases {
		r := newRig(Options{})
		r.port.Feed(`{"led":` + string(rune('0'+tc.led)) + `,"w":10}`)
		r.drain()
		if got := r.port.Lines(); len(got) != 1 || got[0] != `{"success":true}` {
			t.Fatalf("led=%d replies = %q", tc.led, got)
		}
		st := r.disp.State()
		for f := range tc.lit {
			if (st[f].W == 10) != tc.lit[f] {
				t.Fatalf("led=%d fixture %d state %+v", tc.led, f+1, st[f])
			}
		}
		if n := len(r.mem.Writes()); n != tc.writes {
			t.Fatalf("led=%d writes = %d", tc.led, n)
		}
	}
}

func TestStep_ErrorThenRecovery(t *testing.T) {
	r := newRig(Options{})
	r.port.Feed("{\"led\":oops}\n{\"led\":4,\"b\":9}\n")
	r.drain()
	got := r.port.Lines()
	if len(got) != 2 || got[0] != `{"error":"invalid_input: unexpected 'o' at 8"}` || got[1] != `{"success":true}` {
		t.Fatalf("replies = %q", got)
	}
	if r.disp.State()[2].B != 9 {
		t.Fatal("second command not applied")
	}
	st := r.svc.Stats()
	if st.Commands != 1 || st.Errors != 1 || st.LastError != errcode.InvalidInput {
		t.Fatalf("stats = %+v", st)
	}
}

func TestStep_TruncatedCommandThenNext(t *testing.T) {
	for _, in := range []string{
		"{\"led\":1,\n{\"led\":7,\"r\":10,\"g\":20,\"b\":30,\"w\":40}\n",
		"{\"led\":1,{\"led\":7,\"r\":10,\"g\":20,\"b\":30,\"w\":40}\n",
	} {
		r := newRig(Options{})
		r.port.Feed(in)
		r.drain()
		got := r.port.Lines()
		if len(got) != 2 || got[1] != `{"success":true}` {
			t.Fatalf("%q: replies = %q", in, got)
		}
		if want := `{"error":"invalid_input: unexpected '{' at `; len(got[0]) < len(want) || got[0][:len(want)] != want {
			t.Fatalf("%q: first reply = %q", in, got[0])
		}
		want := types.Color{R: 10, G: 20, B: 30, W: 40}
		for f, c := range r.disp.State() {
			if c != want {
				t.Fatalf("%q: fixture %d = %+v", in, f+1, c)
			}
		}
		if st := r.svc.Stats(); st.Commands != 1 || st.Errors != 1 {
			t.Fatalf("%q: stats = %+v", in, st)
		}
	}
}

func TestStep_BackToBackDocuments(t *testing.T) {
	r := newRig(Options{})
	r.port.Feed(`{"led":1,"r":1}{"led":2,"g":2} {"led":4,"b":3}`)
	r.drain()
	if got := r.port.Lines(); len(got) != 3 {
		t.Fatalf("replies = %q", got)
	}
	st := r.disp.State()
	if st[0].R != 1 || st[1].G != 2 || st[2].B != 3 {
		t.Fatalf("state = %+v", st)
	}
}

func TestStep_OversizeAndDeep(t *testing.T) {
	r := newRig(Options{Limits: protocol.Limits{MaxBytes: 24, MaxDepth: 2}})
	r.port.Feed("{\"led\":1,\"note\":\"this will not fit\"}\n")
	r.port.Feed("{\"a\":{\"b\":{\"c\":1}}}\n")
	r.port.Feed("[1,2]\n")
	r.drain()
	got := r.port.Lines()
	want := []string{
		`{"error":"no_memory: document exceeds 24 bytes"}`,
		`{"error":"too_deep: nesting exceeds 2"}`,
		`{"success":true}`,
	}
	if len(got) != len(want) {
		t.Fatalf("replies = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reply %d = %q, want %q", i, got[i], want[i])
		}
	}
	if len(r.mem.Writes()) != 0 {
		t.Fatal("rejected or non-object documents must not drive outputs")
	}
}

func TestStep_WhitespaceOnly(t *testing.T) {
	r := newRig(Options{})
	r.port.Feed(" \r\n\t\n")
	if r.svc.Step() {
		t.Fatal("whitespace handled as a document")
	}
	if r.port.Output() != "" {
		t.Fatalf("unexpected output %q", r.port.Output())
	}
}

func TestRun_IdleWorkAndCancel(t *testing.T) {
	var levels []bool
	blink := heartbeat.New(heartbeat.PinFunc(func(on bool) { levels = append(levels, on) }), 10*time.Millisecond)
	r := newRig(Options{IdlePoll: 5 * time.Millisecond, Blinker: blink, StatsEvery: time.Second})

	clock := time.Unix(0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	idles := 0
	r.svc.now = func() time.Time { return clock }
	r.svc.sleep = func(d time.Duration) {
		clock = clock.Add(d)
		idles++
		if idles == 3 {
			r.port.Feed(`{"led":7,"r":3}`)
		}
		if idles == 20 {
			cancel()
		}
	}

	if err := r.svc.Run(ctx); err != context.Canceled {
		t.Fatalf("Run = %v", err)
	}
	if r.svc.Stats().Commands != 1 {
		t.Fatalf("stats = %+v", r.svc.Stats())
	}
	// 19 idle polls 5ms apart, toggling every 10ms after arming
	if len(levels) < 8 {
		t.Fatalf("heartbeat toggles = %d", len(levels))
	}
}
