package weather

import (
	"fmt"
	"math"
	"strings"

	"github.com/i474232898/weather-dashboard/internal/common"
)

// MetricDiff is one compared measurement. Difference is First minus Second;
// a metric only appears in a comparison when both records report it.
type MetricDiff struct {
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	First      float64 `json:"first"`
	Second     float64 `json:"second"`
	Difference float64 `json:"difference"`
}

// Comparison is a side-by-side view of current conditions in two cities.
type Comparison struct {
	FirstCity         string       `json:"first_city"`
	SecondCity        string       `json:"second_city"`
	FirstDescription  string       `json:"first_description"`
	SecondDescription string       `json:"second_description"`
	Metrics           []MetricDiff `json:"metrics"`
}

// Compare builds the per-metric difference view between two records.
// Metrics absent on either side are skipped rather than compared against a
// fabricated zero.
func Compare(first, second Record) Comparison {
	c := Comparison{
		FirstCity:         first.City,
		SecondCity:        second.City,
		FirstDescription:  first.Description,
		SecondDescription: second.Description,
	}

	degrees := "°C"
	wind := "m/s"
	if first.Unit == UnitImperial {
		degrees = "°F"
		wind = "mph"
	}

	add := func(name, unit string, a, b *float64) {
		if a == nil || b == nil {
			return
		}
		c.Metrics = append(c.Metrics, MetricDiff{
			Name:       name,
			Unit:       unit,
			First:      *a,
			Second:     *b,
			Difference: *a - *b,
		})
	}

	add("temperature", degrees, first.Temperature, second.Temperature)
	add("humidity", "%", first.Humidity, second.Humidity)
	add("wind", wind, first.WindSpeed, second.WindSpeed)
	add("pressure", "hPa", first.Pressure, second.Pressure)

	return c
}

// Report renders the comparison as the plain-text block the dashboard's
// comparison tab displays.
func (c Comparison) Report() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Weather Comparison: %s vs %s\n", c.FirstCity, c.SecondCity)
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	fmt.Fprintf(&b, "%s: %s\n", c.FirstCity, c.FirstDescription)
	fmt.Fprintf(&b, "%s: %s\n\n", c.SecondCity, c.SecondDescription)

	for _, m := range c.Metrics {
		fmt.Fprintf(&b, "%s:\n", common.Capitalize(m.Name))
		fmt.Fprintf(&b, "%s: %.1f %s\n", c.FirstCity, m.First, m.Unit)
		fmt.Fprintf(&b, "%s: %.1f %s\n", c.SecondCity, m.Second, m.Unit)

		relation := "higher"
		if m.Difference < 0 {
			relation = "lower"
		}
		fmt.Fprintf(&b, "Difference: %.1f %s (%s in %s)\n\n",
			math.Abs(m.Difference), m.Unit, relation, c.FirstCity)
	}

	return b.String()
}
