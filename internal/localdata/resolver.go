// Package localdata resolves weather queries from local JSON exports when no
// live API is reachable. It answers from two sources: a bulk multi-city
// analysis export loaded once at construction, and per-city cache files read
// on demand. Either source is normalized into the canonical weather record.
package localdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// BulkDatasetFile is the well-known filename of the bulk analysis export
// inside the data directory.
const BulkDatasetFile = "team_cities.json"

// DataLoadError reports a local data file that exists but cannot be parsed.
// A missing file is never a DataLoadError; absence is an ordinary outcome.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("localdata: malformed data file %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// aggregate is a min/avg/max block inside a city analysis entry. Only the
// average is consumed; the extremes are kept for schema completeness.
type aggregate struct {
	Min *float64 `json:"min"`
	Avg *float64 `json:"avg"`
	Max *float64 `json:"max"`
}

// cityAnalysis is one city's block in the bulk dataset. Every field is
// optional: a missing key maps to an absent canonical field, not an error.
type cityAnalysis struct {
	Temperature       *aggregate `json:"temperature"`
	Humidity          *aggregate `json:"humidity"`
	Wind              *aggregate `json:"wind"`
	WeatherConditions []string   `json:"weather_conditions"`
}

// bulkDocument mirrors the on-disk shape of the bulk analysis export.
type bulkDocument struct {
	CitiesAnalysis struct {
		CityData map[string]cityAnalysis `json:"city_data"`
	} `json:"cities_analysis"`
}

// Resolver serves weather records from local data fixed at construction
// time. It is immutable after construction: every call is idempotent and
// side-effect-free, and concurrent readers need no locking.
type Resolver struct {
	dataDir string
	units   string
	bulk    map[string]cityAnalysis
}

// NewResolver loads the bulk analysis dataset from dataDir, if present.
// A missing bulk file is not an error; the per-city fallback path still
// works. A bulk file that exists but cannot be parsed fails construction
// with a *DataLoadError so the resolver is never partially usable.
func NewResolver(dataDir, units string) (*Resolver, error) {
	if units == "" {
		units = weather.UnitMetric
	}

	r := &Resolver{
		dataDir: dataDir,
		units:   units,
		bulk:    map[string]cityAnalysis{},
	}

	path := filepath.Join(dataDir, BulkDatasetFile)
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, err
	}

	var doc bulkDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	if doc.CitiesAnalysis.CityData != nil {
		r.bulk = doc.CitiesAnalysis.CityData
	}
	return r, nil
}

// Filename normalizes a city name into the per-city file prefix: lower-case,
// spaces replaced with underscores. It is deterministic and idempotent.
func Filename(city string) string {
	return strings.ReplaceAll(strings.ToLower(city), " ", "_")
}

// Cities returns the sorted city keys of the bulk dataset. The dashboard
// uses it to populate its city dropdowns.
func (r *Resolver) Cities() []string {
	cities := make([]string, 0, len(r.bulk))
	for city := range r.bulk {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}

// GetWeatherData resolves current conditions for a city. Resolution order,
// first match wins, no merging across sources:
//
//  1. bulk dataset entry under the exact city key, flattened into a record
//  2. per-city cache file <normalized>_weather.json, passed through as-is
//  3. (nil, nil) — no data, which is not an error
//
// A per-city file that exists but cannot be parsed returns a *DataLoadError
// scoped to this call; other cities remain servable.
func (r *Resolver) GetWeatherData(city string) (*weather.Record, error) {
	if analysis, ok := r.bulk[city]; ok {
		rec := r.fromAnalysis(city, analysis)
		return &rec, nil
	}

	var rec weather.Record
	found, err := r.loadJSON(Filename(city)+"_weather.json", &rec)
	if err != nil || !found {
		return nil, err
	}
	return &rec, nil
}

// GetForecastData resolves a forecast from the per-city cache file
// <normalized>_forecast.json. The bulk dataset carries current-condition
// aggregates only, so there is no bulk path for forecasts.
func (r *Resolver) GetForecastData(city string) (*weather.ForecastRecord, error) {
	var rec weather.ForecastRecord
	found, err := r.loadJSON(Filename(city)+"_forecast.json", &rec)
	if err != nil || !found {
		return nil, err
	}
	return &rec, nil
}

// fromAnalysis flattens a bulk analysis block into a canonical record.
// Fields the block does not carry stay absent. FeelsLike is deliberately set
// to the average temperature: the bulk export has no feels-like aggregate
// and the approximation is part of the resolver's contract.
func (r *Resolver) fromAnalysis(city string, a cityAnalysis) weather.Record {
	rec := weather.Record{
		City: city,
		Unit: r.units,
	}
	if a.Temperature != nil && a.Temperature.Avg != nil {
		rec.Temperature = weather.Float(*a.Temperature.Avg)
		rec.FeelsLike = weather.Float(*a.Temperature.Avg)
	}
	if a.Humidity != nil && a.Humidity.Avg != nil {
		rec.Humidity = weather.Float(*a.Humidity.Avg)
	}
	if a.Wind != nil && a.Wind.Avg != nil {
		rec.WindSpeed = weather.Float(*a.Wind.Avg)
	}
	rec.Description = strings.Join(a.WeatherConditions, ", ")
	return rec
}

// loadJSON decodes a JSON file from the data directory into out. It reports
// whether the file existed; a file that exists but does not decode is a
// *DataLoadError.
func (r *Resolver) loadJSON(filename string, out any) (bool, error) {
	path := filepath.Join(r.dataDir, filename)
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, &DataLoadError{Path: path, Err: err}
	}
	return true, nil
}
