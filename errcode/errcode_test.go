package errcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestOf(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, OK},
		{"code", InvalidInput, InvalidInput},
		{"wrapper", &E{C: TooDeep, Op: "read"}, TooDeep},
		{"plain", cause, Error},
		{"fmt-wrapped code", fmt.Errorf("x: %w", NoMemory), Error},
	}
	for _, tc := range cases {
		if got := Of(tc.err); got != tc.want {
			t.Fatalf("%s: Of() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestE_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("i2c nack")
	e := &E{C: InvalidInput, Op: "read", Msg: "unexpected 'x' at 9", Err: cause}
	if e.Error() != "invalid_input: unexpected 'x' at 9" {
		t.Fatalf("Error() = %q", e.Error())
	}
	if !errors.Is(e, cause) {
		t.Fatal("errors.Is should see the cause")
	}
	if (&E{C: IncompleteInput}).Error() != "incomplete_input" {
		t.Fatal("bare E should print its code")
	}
}

func TestDecodeClassification(t *testing.T) {
	for _, c := range []Code{EmptyInput, IncompleteInput, InvalidInput, NoMemory, TooDeep} {
		if !IsDecode(c) {
			t.Fatalf("%q should be a decode error", c)
		}
	}
	if IsDecode(PinInUse) || IsDecode(nil) {
		t.Fatal("non-decode codes misclassified")
	}
	if Resync(IncompleteInput) || Resync(EmptyInput) {
		t.Fatal("incomplete/empty input must not resync")
	}
	if !Resync(&E{C: InvalidInput}) || !Resync(NoMemory) || !Resync(TooDeep) {
		t.Fatal("invalid/no_memory/too_deep must resync")
	}
}
