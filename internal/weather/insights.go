package weather

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/i474232898/weather-dashboard/internal/history"
)

// Trend directions reported by predictions and insights.
const (
	TrendWarming = "warming"
	TrendCooling = "cooling"
	TrendStable  = "stable"
	TrendUnknown = "unknown"
)

const (
	// predictionWindow is how many trailing readings feed the extrapolation.
	predictionWindow = 5

	// coldStartTemperature is returned, at low confidence, when the log is
	// too thin to extrapolate from.
	coldStartTemperature = 20.0
	coldStartConfidence  = 0.3
)

// Prediction is a trend-extrapolated temperature estimate for a city,
// derived from its recent logged observations.
type Prediction struct {
	City         string    `json:"city"`
	Temperature  float64   `json:"temperature"`
	Confidence   float64   `json:"confidence"`
	Trend        string    `json:"trend"`
	HorizonHours int       `json:"horizon_hours"`
	PredictedFor time.Time `json:"predicted_for"`
}

// Anomaly flags a logged reading far outside the city's recent normal.
type Anomaly struct {
	Time        time.Time `json:"time"`
	Type        string    `json:"type"`
	Severity    float64   `json:"severity"`
	Expected    float64   `json:"expected"`
	Actual      float64   `json:"actual"`
	Description string    `json:"description"`
}

// Pattern describes recurring behaviour in a city's log: how settled the
// temperature is, and which conditions keep coming back.
type Pattern struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Occurrences int    `json:"occurrences"`
}

// Stats summarizes one logged measurement.
type Stats struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Insights bundles what the dashboard's insights tab shows for one city:
// summary statistics, the temperature trend, a short-term prediction and
// the patterns and anomalies found in the recent log.
type Insights struct {
	City        string     `json:"city"`
	Samples     int        `json:"samples"`
	Temperature *Stats     `json:"temperature,omitempty"`
	Humidity    *Stats     `json:"humidity,omitempty"`
	Wind        *Stats     `json:"wind,omitempty"`
	Trend       string     `json:"trend"`
	Prediction  Prediction `json:"prediction"`
	Patterns    []Pattern  `json:"patterns,omitempty"`
	Anomalies   []Anomaly  `json:"anomalies,omitempty"`
}

// PredictTemperature extrapolates the recent temperature trend hoursAhead
// into the future. With fewer than three readings it returns a
// low-confidence placeholder instead of an error, so the endpoint always
// has something to show.
func PredictTemperature(city string, entries []history.Entry, hoursAhead int) Prediction {
	p := Prediction{
		City:         city,
		HorizonHours: hoursAhead,
		PredictedFor: time.Now().Add(time.Duration(hoursAhead) * time.Hour),
	}

	temps := temperatures(entries)
	if len(temps) < 3 {
		p.Temperature = coldStartTemperature
		p.Confidence = coldStartConfidence
		p.Trend = TrendUnknown
		return p
	}

	recent := temps
	if len(recent) > predictionWindow {
		recent = recent[len(recent)-predictionWindow:]
	}
	slope := meanStep(recent)

	p.Temperature = round1(mean(recent) + slope*(float64(hoursAhead)/24))
	p.Trend = trendOf(slope)

	// Tightly grouped recent readings give a more confident estimate.
	p.Confidence = math.Max(0.4, math.Min(0.9, 1/(1+variance(recent)/10)))
	return p
}

// DetectAnomalies flags readings in the trailing window that sit more than
// two standard deviations from the city's mean. Fewer than five readings is
// too little signal to call anything anomalous.
func DetectAnomalies(entries []history.Entry) []Anomaly {
	if len(entries) < 5 {
		return nil
	}

	temps := temperatures(entries)
	m := mean(temps)
	std := math.Sqrt(variance(temps))

	checked := entries
	if len(checked) > 10 {
		checked = checked[len(checked)-10:]
	}

	var anomalies []Anomaly
	for _, e := range checked {
		z := math.Abs(e.Temperature-m) / (std + 1e-6)
		if z <= 2 {
			continue
		}

		kind := "extreme_cold"
		if e.Temperature > m {
			kind = "extreme_hot"
		}
		anomalies = append(anomalies, Anomaly{
			Time:     e.Time,
			Type:     kind,
			Severity: math.Min(1, z/3),
			Expected: round1(m),
			Actual:   e.Temperature,
			Description: fmt.Sprintf("temperature %.1f is %.1f standard deviations from the mean of %.1f",
				e.Temperature, z, m),
		})
	}
	return anomalies
}

// DetectPatterns classifies how settled the temperature has been and picks
// out conditions logged at least three times. Under ten readings there is no
// pattern to speak of.
func DetectPatterns(entries []history.Entry) []Pattern {
	if len(entries) < 10 {
		return nil
	}

	temps := temperatures(entries)
	m := mean(temps)
	std := math.Sqrt(variance(temps))

	var patterns []Pattern
	switch {
	case std < 3:
		patterns = append(patterns, Pattern{
			Name:        "stable_temperature",
			Description: fmt.Sprintf("temperature holds steady around %.1f", m),
			Occurrences: len(entries),
		})
	case std > 8:
		patterns = append(patterns, Pattern{
			Name:        "variable_temperature",
			Description: fmt.Sprintf("temperature swings widely (±%.1f)", std),
			Occurrences: len(entries),
		})
	default:
		patterns = append(patterns, Pattern{
			Name:        "moderate_variation",
			Description: fmt.Sprintf("moderate temperature variation around %.1f", m),
			Occurrences: len(entries),
		})
	}

	counts := make(map[string]int)
	for _, e := range entries {
		if desc := strings.ToLower(strings.TrimSpace(e.Description)); desc != "" {
			counts[desc]++
		}
	}
	conditions := make([]string, 0, len(counts))
	for desc, n := range counts {
		if n >= 3 {
			conditions = append(conditions, desc)
		}
	}
	sort.Slice(conditions, func(i, j int) bool {
		if counts[conditions[i]] != counts[conditions[j]] {
			return counts[conditions[i]] > counts[conditions[j]]
		}
		return conditions[i] < conditions[j]
	})
	if len(conditions) > 3 {
		conditions = conditions[:3]
	}
	for _, desc := range conditions {
		patterns = append(patterns, Pattern{
			Name:        "recurring_conditions",
			Description: fmt.Sprintf("frequent %s weather", desc),
			Occurrences: counts[desc],
		})
	}

	return patterns
}

// ComputeInsights builds the full insights view from a city's logged
// observations, typically the trailing window of the history log.
func ComputeInsights(city string, entries []history.Entry) Insights {
	ins := Insights{
		City:    city,
		Samples: len(entries),
		Trend:   TrendUnknown,
	}

	temps := temperatures(entries)
	var humidities, winds []float64
	for _, e := range entries {
		if e.Humidity != nil {
			humidities = append(humidities, *e.Humidity)
		}
		if e.WindSpeed != nil {
			winds = append(winds, *e.WindSpeed)
		}
	}
	ins.Temperature = summarize(temps)
	ins.Humidity = summarize(humidities)
	ins.Wind = summarize(winds)

	// Trend: the last few readings against the whole window.
	if len(temps) >= 3 {
		recent := temps
		if len(recent) > predictionWindow {
			recent = recent[len(recent)-predictionWindow:]
		}
		switch diff := mean(recent) - mean(temps); {
		case diff > 2:
			ins.Trend = TrendWarming
		case diff < -2:
			ins.Trend = TrendCooling
		default:
			ins.Trend = TrendStable
		}
	}

	ins.Prediction = PredictTemperature(city, entries, 24)
	ins.Patterns = DetectPatterns(entries)
	ins.Anomalies = DetectAnomalies(entries)
	return ins
}

func trendOf(slope float64) string {
	switch {
	case slope > 0.5:
		return TrendWarming
	case slope < -0.5:
		return TrendCooling
	default:
		return TrendStable
	}
}

func temperatures(entries []history.Entry) []float64 {
	temps := make([]float64, 0, len(entries))
	for _, e := range entries {
		temps = append(temps, e.Temperature)
	}
	return temps
}

func summarize(values []float64) *Stats {
	if len(values) == 0 {
		return nil
	}

	s := &Stats{Min: values[0], Max: values[0]}
	for _, v := range values {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = round1(mean(values))
	s.StdDev = round1(math.Sqrt(variance(values)))
	return s
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return sum / float64(len(values))
}

// meanStep is the average change between consecutive readings.
func meanStep(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return (values[len(values)-1] - values[0]) / float64(len(values)-1)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
