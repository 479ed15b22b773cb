package weather

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/i474232898/weather-dashboard/internal/history"
	"github.com/i474232898/weather-dashboard/internal/store"
)

// LocalSource is the local-data fallback consulted when no live provider can
// answer. Absence is a nil record with a nil error, never an error value.
type LocalSource interface {
	GetWeatherData(city string) (*Record, error)
	GetForecastData(city string) (*ForecastRecord, error)
	Cities() []string
}

// Service answers the dashboard's queries: live providers first (in priority
// order, first success wins, no cross-source merging), then the local data
// fallback. Successful live fetches are cached and logged to the history
// file the charts read.
type Service struct {
	providers []Provider
	local     LocalSource
	hist      *history.Log

	current   *store.Cache[string, Record]
	forecasts *store.Cache[string, ForecastRecord]
}

// NewService creates a Service. local and hist may be nil, disabling the
// fallback path and observation logging respectively.
func NewService(providers []Provider, local LocalSource, hist *history.Log, cacheTTL time.Duration) *Service {
	return &Service{
		providers: providers,
		local:     local,
		hist:      hist,
		current:   store.NewCache[string, Record](cacheTTL),
		forecasts: store.NewCache[string, ForecastRecord](cacheTTL),
	}
}

// Current resolves current conditions for a city. It returns ErrNoData when
// neither a live provider nor the local fallback has anything to say.
func (s *Service) Current(ctx context.Context, city string) (*Record, error) {
	if city == "" {
		return nil, fmt.Errorf("city must not be empty")
	}

	if rec := s.current.Get(city); rec != nil {
		return rec, nil
	}

	for _, p := range s.providers {
		rec, err := p.Current(ctx, city)
		if err != nil {
			// Log and try the next source; we want partial availability.
			log.Printf("provider %s current fetch failed for %s: %v", p.Name(), city, err)
			continue
		}

		s.logObservation(rec)
		s.current.Set(city, rec)
		return rec, nil
	}

	if s.local != nil {
		rec, err := s.local.GetWeatherData(city)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return rec, nil
		}
	}
	return nil, ErrNoData
}

// Forecast resolves a forecast of up to days days. Providers without
// forecast support are skipped; the local fallback serves pre-fetched
// forecast files when no live source answers.
func (s *Service) Forecast(ctx context.Context, city string, days int) (*ForecastRecord, error) {
	if city == "" {
		return nil, fmt.Errorf("city must not be empty")
	}
	if days <= 0 {
		return nil, fmt.Errorf("days must be greater than zero")
	}

	key := fmt.Sprintf("%s/%d", city, days)
	if fc := s.forecasts.Get(key); fc != nil {
		return fc, nil
	}

	for _, p := range s.providers {
		fp, ok := p.(ForecastProvider)
		if !ok {
			continue
		}

		fc, err := fp.Forecast(ctx, city, days)
		if err != nil {
			log.Printf("provider %s forecast failed for %s: %v", p.Name(), city, err)
			continue
		}

		s.forecasts.Set(key, fc)
		return fc, nil
	}

	if s.local != nil {
		fc, err := s.local.GetForecastData(city)
		if err != nil {
			return nil, err
		}
		if fc != nil {
			return fc, nil
		}
	}
	return nil, ErrNoData
}

// Compare resolves both cities and returns the per-metric difference view.
func (s *Service) Compare(ctx context.Context, first, second string) (*Comparison, error) {
	a, err := s.Current(ctx, first)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", first, err)
	}
	b, err := s.Current(ctx, second)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", second, err)
	}

	cmp := Compare(*a, *b)
	return &cmp, nil
}

// Activities resolves a city and suggests activities for its conditions.
func (s *Service) Activities(ctx context.Context, city string) (*Record, []string, error) {
	rec, err := s.Current(ctx, city)
	if err != nil {
		return nil, nil, err
	}
	return rec, SuggestActivities(*rec), nil
}

// insightsWindow caps how much of the log feeds the insights analysis.
const insightsWindow = 100

// Insights analyses the city's logged observations: summary statistics, the
// temperature trend, a 24h prediction and any patterns or anomalies. An
// empty or missing log yields low-confidence placeholder insights rather
// than an error.
func (s *Service) Insights(city string) (*Insights, error) {
	if city == "" {
		return nil, fmt.Errorf("city must not be empty")
	}

	var entries []history.Entry
	if s.hist != nil {
		var err error
		entries, err = s.hist.Recent(city, insightsWindow)
		if err != nil {
			return nil, err
		}
	}

	ins := ComputeInsights(city, entries)
	return &ins, nil
}

// History returns the trailing window of logged observations for a city
// (all cities when city is empty).
func (s *Service) History(city string, limit int) ([]history.Entry, error) {
	if s.hist == nil {
		return nil, nil
	}
	return s.hist.Recent(city, limit)
}

// Cities lists the cities known to the local bulk dataset, for the
// dashboard's dropdowns.
func (s *Service) Cities() []string {
	if s.local == nil {
		return nil
	}
	return s.local.Cities()
}

// logObservation appends a live fetch to the history file. Records without
// a temperature are not chartable and are skipped.
func (s *Service) logObservation(rec *Record) {
	if s.hist == nil || rec.Temperature == nil {
		return
	}

	entry := history.Entry{
		Time:        time.Now(),
		City:        rec.City,
		Temperature: *rec.Temperature,
		Description: rec.Description,
		Unit:        rec.Unit,
		Humidity:    rec.Humidity,
		WindSpeed:   rec.WindSpeed,
	}
	if err := s.hist.Append(entry); err != nil {
		log.Printf("failed to log observation for %s: %v", rec.City, err)
	}
}
