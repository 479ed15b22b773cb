package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// OpenWeatherProvider serves current conditions and the 5-day/3-hour
// forecast from OpenWeatherMap. It is the richest source: it fills every
// optional field of the canonical record the API reports.
type OpenWeatherProvider struct {
	name        string
	apiKey      string
	units       string
	baseURL     string
	forecastURL string
	client      *resilientClient
}

func NewOpenWeatherProvider(client *http.Client, apiKey, units string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:        "openweathermap",
		apiKey:      apiKey,
		units:       units,
		baseURL:     "https://api.openweathermap.org/data/2.5/weather",
		forecastURL: "https://api.openweathermap.org/data/2.5/forecast",
		client:      newResilientClient(client, "openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// openWeatherCurrent mirrors the subset of the current-weather payload the
// dashboard consumes. Rain/snow/visibility blocks are pointers because the
// API omits them entirely when there is nothing to report.
type openWeatherCurrent struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Visibility *float64 `json:"visibility"`
	Wind       struct {
		Speed float64  `json:"speed"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All *float64 `json:"all"`
	} `json:"clouds"`
	Rain *struct {
		OneH   *float64 `json:"1h"`
		ThreeH *float64 `json:"3h"`
	} `json:"rain"`
	Snow *struct {
		OneH   *float64 `json:"1h"`
		ThreeH *float64 `json:"3h"`
	} `json:"snow"`
	Sys struct {
		Sunrise *int64 `json:"sunrise"`
		Sunset  *int64 `json:"sunset"`
	} `json:"sys"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func (p *OpenWeatherProvider) Current(ctx context.Context, city string) (*weather.Record, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	var payload openWeatherCurrent
	if err := p.client.getJSON(ctx, p.queryURL(p.baseURL, city), &payload); err != nil {
		return nil, err
	}

	rec := &weather.Record{
		City:        city,
		Unit:        p.units,
		Temperature: weather.Float(payload.Main.Temp),
		FeelsLike:   weather.Float(payload.Main.FeelsLike),
		Humidity:    weather.Float(payload.Main.Humidity),
		Pressure:    weather.Float(payload.Main.Pressure),
		WindSpeed:   weather.Float(payload.Wind.Speed),

		Visibility:    payload.Visibility,
		WindDirection: payload.Wind.Deg,
		Cloudiness:    payload.Clouds.All,
		Sunrise:       payload.Sys.Sunrise,
		Sunset:        payload.Sys.Sunset,
	}
	if payload.Rain != nil {
		rec.Rain1h = payload.Rain.OneH
		rec.Rain3h = payload.Rain.ThreeH
	}
	if payload.Snow != nil {
		rec.Snow1h = payload.Snow.OneH
		rec.Snow3h = payload.Snow.ThreeH
	}
	if len(payload.Weather) > 0 {
		rec.Description = common.Capitalize(payload.Weather[0].Description)
	}

	return rec, nil
}

// Forecast condenses the 5-day/3-hour feed into one entry per day, up to
// days entries. For each date the reading closest to midday represents the
// day, so the first (partial) day still yields an entry.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, city string, days int) (*weather.ForecastRecord, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	var payload struct {
		List []struct {
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := p.client.getJSON(ctx, p.queryURL(p.forecastURL, city), &payload); err != nil {
		return nil, err
	}

	type daily struct {
		entry weather.ForecastEntry
		hour  int
	}
	var dates []string
	best := make(map[string]daily)
	for _, item := range payload.List {
		ts, err := time.Parse("2006-01-02 15:04:05", item.DtTxt)
		if err != nil {
			continue
		}

		entry := weather.ForecastEntry{
			DateTime:    item.DtTxt,
			Temperature: weather.Float(item.Main.Temp),
		}
		if len(item.Weather) > 0 {
			entry.Description = common.Capitalize(item.Weather[0].Description)
		}

		date := ts.Format("2006-01-02")
		cur, seen := best[date]
		if !seen {
			dates = append(dates, date)
		}
		if !seen || hourDistance(ts.Hour()) < hourDistance(cur.hour) {
			best[date] = daily{entry: entry, hour: ts.Hour()}
		}
	}

	fc := &weather.ForecastRecord{
		City: city,
		Unit: p.units,
	}
	for _, date := range dates {
		if len(fc.Entries) >= days {
			break
		}
		fc.Entries = append(fc.Entries, best[date].entry)
	}

	if len(fc.Entries) == 0 {
		return nil, fmt.Errorf("openweather returned an empty forecast for %s", city)
	}
	return fc, nil
}

// hourDistance is the distance from midday, the reading a day is judged by.
func hourDistance(hour int) int {
	if hour > 12 {
		return hour - 12
	}
	return 12 - hour
}

func (p *OpenWeatherProvider) queryURL(base, city string) string {
	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", p.units)
	values.Set("q", city)
	return fmt.Sprintf("%s?%s", base, values.Encode())
}

var _ weather.ForecastProvider = (*OpenWeatherProvider)(nil)
