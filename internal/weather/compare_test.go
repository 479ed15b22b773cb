package weather

import (
	"strings"
	"testing"
)

func TestCompareMetricDiffs(t *testing.T) {
	paris := Record{
		City:        "Paris",
		Unit:        UnitMetric,
		Description: "Clear sky",
		Temperature: Float(18.5),
		Humidity:    Float(60),
		WindSpeed:   Float(12),
		Pressure:    Float(1015),
	}
	oslo := Record{
		City:        "Oslo",
		Unit:        UnitMetric,
		Description: "Light rain",
		Temperature: Float(11),
		Humidity:    Float(80),
		WindSpeed:   Float(6),
		// No pressure reported.
	}

	cmp := Compare(paris, oslo)

	if len(cmp.Metrics) != 3 {
		t.Fatalf("got %d metrics, want 3 (pressure skipped when one side is absent)", len(cmp.Metrics))
	}

	temp := cmp.Metrics[0]
	if temp.Name != "temperature" || temp.Difference != 7.5 {
		t.Errorf("temperature diff = %+v", temp)
	}
	hum := cmp.Metrics[1]
	if hum.Name != "humidity" || hum.Difference != -20 {
		t.Errorf("humidity diff = %+v", hum)
	}
}

func TestCompareReport(t *testing.T) {
	cmp := Compare(
		Record{City: "Paris", Unit: UnitMetric, Description: "Clear sky", Temperature: Float(18.5)},
		Record{City: "Oslo", Unit: UnitMetric, Description: "Light rain", Temperature: Float(11)},
	)

	report := cmp.Report()
	for _, want := range []string{
		"Weather Comparison: Paris vs Oslo",
		"Paris: Clear sky",
		"Temperature:",
		"Difference: 7.5 °C (higher in Paris)",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestCompareAllAbsent(t *testing.T) {
	cmp := Compare(
		Record{City: "A", Description: "haze"},
		Record{City: "B", Description: "mist"},
	)
	if len(cmp.Metrics) != 0 {
		t.Fatalf("expected no metrics for all-absent records, got %+v", cmp.Metrics)
	}
}
