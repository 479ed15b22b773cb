package weather

import "testing"

func TestFormattedTemperature(t *testing.T) {
	rec := Record{Unit: UnitMetric, Temperature: Float(18.5)}
	if got := rec.FormattedTemperature(); got != "18.5°C" {
		t.Errorf("FormattedTemperature = %q", got)
	}

	rec = Record{Unit: UnitImperial, Temperature: Float(65)}
	if got := rec.FormattedTemperature(); got != "65.0°F" {
		t.Errorf("FormattedTemperature = %q", got)
	}

	rec = Record{Unit: UnitMetric}
	if got := rec.FormattedTemperature(); got != "N/A" {
		t.Errorf("FormattedTemperature = %q, want N/A for absent value", got)
	}
}

func TestFormattedWind(t *testing.T) {
	rec := Record{Unit: UnitMetric, WindSpeed: Float(3.44)}
	if got := rec.FormattedWind(); got != "3.4 m/s" {
		t.Errorf("FormattedWind = %q", got)
	}

	rec = Record{Unit: UnitImperial, WindSpeed: Float(7)}
	if got := rec.FormattedWind(); got != "7.0 mph" {
		t.Errorf("FormattedWind = %q", got)
	}

	if got := (Record{}).FormattedWind(); got != "N/A" {
		t.Errorf("FormattedWind = %q, want N/A for absent value", got)
	}
}
