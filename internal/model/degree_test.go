package model

import "testing"

func TestParseDegree(t *testing.T) {
	if len(Degrees) != 8 {
		t.Fatalf("expected 8 degrees, got %d", len(Degrees))
	}
	for _, d := range Degrees {
		got, ok := ParseDegree(string(d))
		if !ok || got != d {
			t.Fatalf("expected %q to parse", d)
		}
	}
	for _, bad := range []string{"", "agree", "Very Agree", "Strongly  Agree"} {
		if _, ok := ParseDegree(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestTallyCount(t *testing.T) {
	if got := (Tally{Up: 3, Down: 5}).Count(); got != -2 {
		t.Fatalf("expected -2, got %d", got)
	}
}
