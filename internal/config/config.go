package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string

	// GoogleAPIKey enables the Open-Meteo provider, which needs geocoding.
	GoogleAPIKey string

	// Units is "metric" or "imperial"; fixed for the process lifetime.
	Units string

	// DataDir holds the local JSON exports the resolver falls back to.
	DataDir string

	// HistoryFile is the CSV observation log the charts read.
	HistoryFile string

	// JournalFile is the CSV the mood-tagged weather journal is kept in.
	JournalFile string

	// Cities the scheduler keeps refreshed.
	Cities []string

	// FetchInterval controls how often the scheduler refreshes each city.
	FetchInterval time.Duration

	// CacheTTL controls how long fetched records are served from memory.
	CacheTTL time.Duration

	HTTPTimeout time.Duration
	Port        string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")

	cfg.Units = getenvDefault("UNITS", weather.UnitMetric)
	if cfg.Units != weather.UnitMetric && cfg.Units != weather.UnitImperial {
		return nil, fmt.Errorf("invalid UNITS %q: must be %q or %q", cfg.Units, weather.UnitMetric, weather.UnitImperial)
	}

	cfg.DataDir = getenvDefault("DATA_DIR", "data/json_exports")
	cfg.HistoryFile = getenvDefault("HISTORY_FILE", "data/weather_log.csv")
	cfg.JournalFile = getenvDefault("JOURNAL_FILE", "data/journal_log.csv")
	cfg.Cities = splitList(os.Getenv("CITIES"))

	// Scheduler interval: default 15 minutes.
	interval, err := getenvDuration("FETCH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.FetchInterval = interval

	ttl, err := getenvDuration("CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = ttl

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// splitList parses a comma-separated env value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
