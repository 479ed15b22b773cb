package weather

import "strconv"

// Units supported by the dashboard. The unit is fixed per service instance;
// every record it hands out carries the same unit.
const (
	UnitMetric   = "metric"
	UnitImperial = "imperial"
)

// Record is the normalized, source-independent weather view every consumer
// (UI tabs, comparison, charts) depends on, regardless of where the data
// came from.
//
// Optional fields are pointers: nil means the source did not report the
// value, which is different from reporting zero. "No rainfall" and
// "rainfall unknown" must stay distinguishable downstream.
type Record struct {
	City        string   `json:"city"`
	Temperature *float64 `json:"temperature,omitempty"`
	Description string   `json:"description"`
	Humidity    *float64 `json:"humidity,omitempty"`
	WindSpeed   *float64 `json:"wind_speed,omitempty"`
	Unit        string   `json:"unit"`

	Visibility    *float64 `json:"visibility,omitempty"`
	Cloudiness    *float64 `json:"cloudiness,omitempty"`
	Pressure      *float64 `json:"pressure,omitempty"`
	FeelsLike     *float64 `json:"feels_like,omitempty"`
	WindDirection *float64 `json:"wind_direction,omitempty"`

	// Sunrise and sunset are unix seconds, UTC.
	Sunrise *int64 `json:"sunrise,omitempty"`
	Sunset  *int64 `json:"sunset,omitempty"`

	Rain1h *float64 `json:"rain_1h,omitempty"`
	Rain3h *float64 `json:"rain_3h,omitempty"`
	Snow1h *float64 `json:"snow_1h,omitempty"`
	Snow3h *float64 `json:"snow_3h,omitempty"`
}

// UnitLabel returns the degree symbol for the record's unit.
func (r Record) UnitLabel() string {
	if r.Unit == UnitImperial {
		return "°F"
	}
	return "°C"
}

// FormattedTemperature renders the temperature with its unit label,
// or "N/A" when the temperature is unknown.
func (r Record) FormattedTemperature() string {
	if r.Temperature == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*r.Temperature, 'f', 1, 64) + r.UnitLabel()
}

// FormattedWind renders the wind speed in the unit-appropriate speed label.
func (r Record) FormattedWind() string {
	if r.WindSpeed == nil {
		return "N/A"
	}
	label := " m/s"
	if r.Unit == UnitImperial {
		label = " mph"
	}
	return strconv.FormatFloat(*r.WindSpeed, 'f', 1, 64) + label
}

// ForecastEntry is a single forecast data point.
type ForecastEntry struct {
	// DateTime is the forecast timestamp as "2006-01-02 15:04:05" UTC.
	DateTime    string   `json:"datetime"`
	Temperature *float64 `json:"temperature,omitempty"`
	Description string   `json:"description"`
}

// ForecastRecord is a normalized forecast for one city.
// Entries are ordered by DateTime ascending.
type ForecastRecord struct {
	City    string          `json:"city"`
	Unit    string          `json:"unit"`
	Entries []ForecastEntry `json:"entries"`
}

// Float returns a pointer to v, for building optional record fields.
func Float(v float64) *float64 { return &v }
