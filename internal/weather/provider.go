package weather

import (
	"context"
	"errors"
)

// ErrNoData is returned when no source (live or local) can answer a query.
// Callers should treat it as "show empty state", not as a failure.
var ErrNoData = errors.New("no weather data available")

// Provider abstracts a live weather data source (e.g. OpenWeatherMap,
// WeatherAPI, Open-Meteo). Implementations normalize their responses into
// the canonical Record; fields the source does not report stay nil.
type Provider interface {
	Name() string
	Current(ctx context.Context, city string) (*Record, error)
}

// ForecastProvider is implemented by providers that can also serve a
// multi-day forecast. Not all providers support forecasts, so the service
// discovers the capability with a type assertion.
type ForecastProvider interface {
	Provider
	Forecast(ctx context.Context, city string, days int) (*ForecastRecord, error)
}
