package questid

import (
	"math"
	"testing"
)

func TestFromPartsRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		high, low int32
	}{
		{"zero", 0, 0},
		{"all ones", -1, -1},
		{"extremes", math.MaxInt32, math.MinInt32},
		{"mixed", 0x12345678, -0x65432110}, // low bit pattern 0x9ABCDEF0
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			id := FromParts(c.high, c.low)
			if got := id.HighPart(); got != c.high {
				t.Errorf("HighPart() = %d, want %d", got, c.high)
			}
			if got := id.LowPart(); got != c.low {
				t.Errorf("LowPart() = %d, want %d", got, c.low)
			}
			rt := FromU64(id.AsU64())
			if rt != id {
				t.Errorf("round trip through AsU64/FromU64 changed id: %d != %d", rt, id)
			}
		})
	}
}

func TestAllOnesIsMaxU64(t *testing.T) {
	id := FromParts(-1, -1)
	if id.AsU64() != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("AsU64() = %#x, want 0xFFFFFFFFFFFFFFFF", id.AsU64())
	}
	if id.HighU32() != 0xFFFFFFFF || id.LowU32() != 0xFFFFFFFF {
		t.Errorf("HighU32/LowU32 = %#x/%#x, want 0xFFFFFFFF/0xFFFFFFFF", id.HighU32(), id.LowU32())
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want ID
		ok   bool
	}{
		{"0", FromU64(0), true},
		{"18446744073709551615", FromU64(math.MaxUint64), true},
		{"18:42", FromParts(18, 42), true},
		{"-1:-1", FromParts(-1, -1), true},
		{"not-a-number", 0, false},
		{"18:nope", 0, false},
	}
	for _, c := range cases {
		got, ok := Parse(c.in)
		if ok != c.ok {
			t.Fatalf("Parse(%q) ok = %v, want %v", c.in, ok, c.ok)
		}
		if ok && got != c.want {
			t.Errorf("Parse(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestLessOrdering(t *testing.T) {
	a := FromU64(1)
	b := FromU64(2)
	if !Less(a, b) || Less(b, a) {
		t.Errorf("Less ordering broken for %d, %d", a, b)
	}
}

func TestString(t *testing.T) {
	id := FromU64(42)
	if id.String() != "42" {
		t.Errorf("String() = %q, want %q", id.String(), "42")
	}
}
