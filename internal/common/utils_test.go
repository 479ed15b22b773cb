package common

import "testing"

func TestHasAny(t *testing.T) {
	if !HasAny("Light Rain showers", "rain", "snow") {
		t.Error("expected case-insensitive match on rain")
	}
	if HasAny("clear sky", "rain", "snow") {
		t.Error("unexpected match")
	}
	if HasAny("anything") {
		t.Error("no substrings should never match")
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"clear sky":     "Clear sky",
		"Already upper": "Already upper",
		"überwiegend":   "Überwiegend",
	}
	for in, want := range cases {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
