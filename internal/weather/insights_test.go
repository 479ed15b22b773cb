package weather

import (
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/history"
)

func loggedEntries(descriptions []string, temps ...float64) []history.Entry {
	base := time.Date(2026, 8, 25, 6, 0, 0, 0, time.UTC)
	entries := make([]history.Entry, 0, len(temps))
	for i, temp := range temps {
		desc := "clear sky"
		if len(descriptions) > 0 {
			desc = descriptions[i%len(descriptions)]
		}
		entries = append(entries, history.Entry{
			Time:        base.Add(time.Duration(i) * time.Hour),
			City:        "Paris",
			Temperature: temp,
			Description: desc,
			Unit:        UnitMetric,
		})
	}
	return entries
}

func TestPredictTemperatureColdStart(t *testing.T) {
	p := PredictTemperature("Paris", loggedEntries(nil, 18.5, 19.0), 24)

	if p.Temperature != coldStartTemperature || p.Confidence != coldStartConfidence {
		t.Errorf("prediction = %+v, want the cold-start placeholder", p)
	}
	if p.Trend != TrendUnknown {
		t.Errorf("trend = %q, want %q", p.Trend, TrendUnknown)
	}
}

func TestPredictTemperatureFollowsTrend(t *testing.T) {
	p := PredictTemperature("Paris", loggedEntries(nil, 10, 11, 12, 13, 14), 24)

	// Mean 12, one degree per reading, extrapolated one day ahead.
	if p.Temperature != 13.0 {
		t.Errorf("temperature = %v, want 13.0", p.Temperature)
	}
	if p.Trend != TrendWarming {
		t.Errorf("trend = %q, want %q", p.Trend, TrendWarming)
	}
	if p.Confidence < 0.4 || p.Confidence > 0.9 {
		t.Errorf("confidence = %v, want within [0.4, 0.9]", p.Confidence)
	}
}

func TestDetectAnomaliesFlagsOutlier(t *testing.T) {
	entries := loggedEntries(nil, 20, 20, 20, 20, 20, 20, 20, 20, 20, 40)

	anomalies := DetectAnomalies(entries)
	if len(anomalies) != 1 {
		t.Fatalf("anomalies = %+v, want one", anomalies)
	}
	a := anomalies[0]
	if a.Type != "extreme_hot" || a.Actual != 40 {
		t.Errorf("anomaly = %+v", a)
	}
	if a.Severity != 1 {
		t.Errorf("severity = %v, want capped at 1", a.Severity)
	}
}

func TestDetectAnomaliesNeedsEnoughData(t *testing.T) {
	if got := DetectAnomalies(loggedEntries(nil, 20, 40)); got != nil {
		t.Fatalf("anomalies = %+v, want none below five readings", got)
	}
}

func TestDetectPatterns(t *testing.T) {
	descs := []string{"Clear sky", "Light rain"}
	entries := loggedEntries(descs, 20, 20.5, 19.5, 20, 21, 20, 19, 20.5, 20, 20)

	patterns := DetectPatterns(entries)
	if len(patterns) != 3 {
		t.Fatalf("patterns = %+v, want three", patterns)
	}
	if patterns[0].Name != "stable_temperature" {
		t.Errorf("pattern = %+v", patterns[0])
	}
	// Both conditions were logged five times; ties break alphabetically.
	if patterns[1].Description != "frequent clear sky weather" || patterns[1].Occurrences != 5 {
		t.Errorf("pattern = %+v", patterns[1])
	}
	if patterns[2].Description != "frequent light rain weather" {
		t.Errorf("pattern = %+v", patterns[2])
	}
}

func TestComputeInsightsEmptyLog(t *testing.T) {
	ins := ComputeInsights("Nairobi", nil)

	if ins.Samples != 0 || ins.Trend != TrendUnknown {
		t.Errorf("insights = %+v", ins)
	}
	if ins.Temperature != nil || ins.Humidity != nil || ins.Wind != nil {
		t.Errorf("stats must stay absent with no data, got %+v", ins)
	}
	if ins.Prediction.Confidence != coldStartConfidence {
		t.Errorf("prediction = %+v, want the cold-start placeholder", ins.Prediction)
	}
}

func TestComputeInsightsStats(t *testing.T) {
	entries := loggedEntries(nil, 10, 12, 14)
	entries[0].Humidity = Float(60)
	entries[1].Humidity = Float(70)

	ins := ComputeInsights("Paris", entries)

	if ins.Samples != 3 {
		t.Errorf("samples = %d, want 3", ins.Samples)
	}
	if ins.Temperature == nil || ins.Temperature.Mean != 12 || ins.Temperature.Min != 10 || ins.Temperature.Max != 14 {
		t.Errorf("temperature stats = %+v", ins.Temperature)
	}
	if ins.Humidity == nil || ins.Humidity.Mean != 65 {
		t.Errorf("humidity stats = %+v", ins.Humidity)
	}
	if ins.Wind != nil {
		t.Errorf("wind stats = %+v, want absent", ins.Wind)
	}
	if ins.Trend != TrendStable {
		t.Errorf("trend = %q, want %q", ins.Trend, TrendStable)
	}
}
