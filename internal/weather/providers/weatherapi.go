package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// WeatherAPIProvider serves current conditions from WeatherAPI.com. It is a
// secondary source: no forecast, and a slimmer field set than OpenWeather.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	units   string
	baseURL string
	client  *resilientClient
}

func NewWeatherAPIProvider(client *http.Client, apiKey, units string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		units:   units,
		baseURL: "https://api.weatherapi.com/v1/current.json",
		client:  newResilientClient(client, "weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) Current(ctx context.Context, city string) (*weather.Record, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("weatherapi api key is not configured")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", city)
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	var payload struct {
		Current struct {
			TempC      float64  `json:"temp_c"`
			TempF      float64  `json:"temp_f"`
			FeelsC     float64  `json:"feelslike_c"`
			FeelsF     float64  `json:"feelslike_f"`
			Humidity   float64  `json:"humidity"`
			WindKph    float64  `json:"wind_kph"`
			WindMph    float64  `json:"wind_mph"`
			WindDegree *float64 `json:"wind_degree"`
			PressureMb float64  `json:"pressure_mb"`
			Cloud      *float64 `json:"cloud"`
			VisKm      *float64 `json:"vis_km"`
			Condition  struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}

	if err := p.client.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	cur := payload.Current
	rec := &weather.Record{
		City:          city,
		Unit:          p.units,
		Description:   cur.Condition.Text,
		Humidity:      weather.Float(cur.Humidity),
		Pressure:      weather.Float(cur.PressureMb),
		Cloudiness:    cur.Cloud,
		WindDirection: cur.WindDegree,
	}

	if p.units == weather.UnitImperial {
		rec.Temperature = weather.Float(cur.TempF)
		rec.FeelsLike = weather.Float(cur.FeelsF)
		rec.WindSpeed = weather.Float(cur.WindMph)
	} else {
		rec.Temperature = weather.Float(cur.TempC)
		rec.FeelsLike = weather.Float(cur.FeelsC)
		// Convert wind from kph to m/s (approx).
		rec.WindSpeed = weather.Float(cur.WindKph / 3.6)
	}
	if cur.VisKm != nil {
		// Canonical visibility is meters, matching OpenWeather.
		rec.Visibility = weather.Float(*cur.VisKm * 1000)
	}

	return rec, nil
}
