package weather

import (
	"strings"
	"testing"
)

func hasSuggestion(suggestions []string, sub string) bool {
	for _, s := range suggestions {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestSuggestActivitiesHotAndClear(t *testing.T) {
	rec := Record{Unit: UnitMetric, Temperature: Float(28), Description: "Clear sky"}

	got := SuggestActivities(rec)
	if len(got) != maxSuggestions {
		t.Fatalf("got %d suggestions, want %d", len(got), maxSuggestions)
	}
	if !hasSuggestion(got, "pool or beach") {
		t.Errorf("hot weather should suggest the pool, got %v", got)
	}
}

func TestSuggestActivitiesRainyAndCool(t *testing.T) {
	rec := Record{Unit: UnitMetric, Temperature: Float(8), Description: "Light rain"}

	got := SuggestActivities(rec)
	if !hasSuggestion(got, "museums") || !hasSuggestion(got, "movie") {
		t.Errorf("cool rainy weather should stay indoors, got %v", got)
	}
}

func TestSuggestActivitiesImperialUnits(t *testing.T) {
	// 82°F is hot; the band check converts to celsius first.
	rec := Record{Unit: UnitImperial, Temperature: Float(82), Description: "Sunny"}

	got := SuggestActivities(rec)
	if !hasSuggestion(got, "pool or beach") {
		t.Errorf("82°F should count as hot, got %v", got)
	}
}

func TestSuggestActivitiesUnknownTemperature(t *testing.T) {
	rec := Record{Unit: UnitMetric, Description: "Scattered clouds"}

	got := SuggestActivities(rec)
	if !hasSuggestion(got, "walking tour") {
		t.Errorf("cloudy conditions alone should still suggest, got %v", got)
	}
	if hasSuggestion(got, "museums") || hasSuggestion(got, "pool") {
		t.Errorf("no temperature band should apply, got %v", got)
	}
}
