package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// OpenMeteoProvider serves current conditions from Open-Meteo. The API is
// keyless but coordinate-based, so city names are geocoded first (Google
// Geocoding via kelvins/geocoder) and the results memoized: city positions
// do not move between requests.
type OpenMeteoProvider struct {
	name    string
	units   string
	baseURL string
	client  *resilientClient

	mu     sync.Mutex
	coords map[string]geocoder.Location
}

func NewOpenMeteoProvider(client *http.Client, googleAPIKey, units string) *OpenMeteoProvider {
	geocoder.ApiKey = googleAPIKey

	return &OpenMeteoProvider{
		name:    "openmeteo",
		units:   units,
		baseURL: "https://api.open-meteo.com/v1/forecast",
		client:  newResilientClient(client, "openmeteo"),
		coords:  make(map[string]geocoder.Location),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Current(ctx context.Context, city string) (*weather.Record, error) {
	loc, err := p.locate(city)
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
	values.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
	values.Set("current_weather", "true")
	if p.units == weather.UnitImperial {
		values.Set("temperature_unit", "fahrenheit")
		values.Set("windspeed_unit", "mph")
	} else {
		values.Set("windspeed_unit", "ms")
	}
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	var payload struct {
		CurrentWeather struct {
			Temperature   float64  `json:"temperature"`
			WindSpeed     float64  `json:"windspeed"`
			WindDirection *float64 `json:"winddirection"`
			WeatherCode   int      `json:"weathercode"`
		} `json:"current_weather"`
	}

	if err := p.client.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	// Open-Meteo's current_weather block is sparse; everything it does not
	// report stays absent.
	return &weather.Record{
		City:          city,
		Unit:          p.units,
		Description:   describeWeatherCode(payload.CurrentWeather.WeatherCode),
		Temperature:   weather.Float(payload.CurrentWeather.Temperature),
		WindSpeed:     weather.Float(payload.CurrentWeather.WindSpeed),
		WindDirection: payload.CurrentWeather.WindDirection,
	}, nil
}

func (p *OpenMeteoProvider) locate(city string) (geocoder.Location, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if loc, ok := p.coords[city]; ok {
		return loc, nil
	}
	if geocoder.ApiKey == "" {
		return geocoder.Location{}, fmt.Errorf("openmeteo requires a geocoder api key")
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: city})
	if err != nil {
		return geocoder.Location{}, fmt.Errorf("geocoding %s: %w", city, err)
	}
	p.coords[city] = loc
	return loc, nil
}

// describeWeatherCode maps Open-Meteo WMO weather codes (simplified) onto
// the free-text descriptions the dashboard displays.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code >= 1 && code <= 3:
		return "Partly cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
