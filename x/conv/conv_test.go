package conv

import (
	"math"
	"testing"
)

func TestAppendInt(t *testing.T) {
	for n, want := range map[int64]string{0: "0", 7: "7", -42: "-42", 4095: "4095", math.MinInt64: "-9223372036854775808"} {
		if got := string(AppendInt(nil, n)); got != want {
			t.Fatalf("AppendInt(%d) = %q", n, got)
		}
	}
	if got := string(AppendInt([]byte("at "), 9)); got != "at 9" {
		t.Fatalf("prefix lost: %q", got)
	}
}

func TestAppendUint(t *testing.T) {
	if got := string(AppendUint(nil, math.MaxUint64)); got != "18446744073709551615" {
		t.Fatalf("AppendUint(max) = %q", got)
	}
}

func TestAppendHex8(t *testing.T) {
	if got := string(AppendHex8(nil, 0x0A)); got != "0A" {
		t.Fatalf("AppendHex8 = %q", got)
	}
	if got := string(AppendHex8(nil, 0xFF)); got != "FF" {
		t.Fatalf("AppendHex8 = %q", got)
	}
	if Itoa(-3) != "-3" {
		t.Fatal("Itoa")
	}
}
