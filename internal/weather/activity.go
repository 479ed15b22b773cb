package weather

import (
	"github.com/i474232898/weather-dashboard/internal/common"
)

// maxSuggestions caps the list the dashboard's activity tab shows.
const maxSuggestions = 5

// SuggestActivities proposes activities for the record's conditions.
// Temperature bands pick the base set; the condition text then adds
// indoor or outdoor options. The list is capped at five entries.
func SuggestActivities(rec Record) []string {
	var suggestions []string

	temp := rec.Temperature
	celsius := 0.0
	if temp != nil {
		celsius = *temp
		if rec.Unit == UnitImperial {
			celsius = (celsius - 32) * 5 / 9
		}
	}

	switch {
	case temp == nil:
		// Without a temperature we only suggest from conditions below.
	case celsius > 25:
		suggestions = append(suggestions,
			"Visit a pool or beach",
			"Get ice cream",
			"Find a shaded park",
		)
	case celsius > 15:
		suggestions = append(suggestions,
			"Go cycling",
			"Go for a run",
			"Play outdoor sports",
		)
	default:
		suggestions = append(suggestions,
			"Indoor fitness activities",
			"Visit museums",
			"Visit cozy cafes",
		)
	}

	switch {
	case common.HasAny(rec.Description, "rain", "snow", "storm", "drizzle"):
		suggestions = append(suggestions,
			"Watch a movie",
			"Visit the library",
			"Try indoor activities",
		)
	case common.HasAny(rec.Description, "clear", "sunny"):
		suggestions = append(suggestions,
			"Go sightseeing",
			"Visit parks",
			"Photography tour",
		)
	case common.HasAny(rec.Description, "cloud"):
		suggestions = append(suggestions,
			"Take a walking tour",
			"Visit art galleries",
			"Go shopping",
		)
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
