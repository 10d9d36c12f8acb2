// SPDX-License-Identifier: MIT

package config

import (
	"errors"

	"github.com/katalvlaran/airpath/network"
	"github.com/katalvlaran/airpath/pollution"
	"github.com/katalvlaran/airpath/refine"
)

// Sentinel errors for the config package.
var (
	// ErrUnsupportedFormat indicates a config file extension other than .toml/.yaml/.yml.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")

	// ErrInvalid indicates a configuration that fails validation.
	ErrInvalid = errors.New("config: invalid configuration")
)

// Oracle kinds.
const (
	OracleGrid        = "grid"
	OracleOpenWeather = "openweather"
)

// Config is the full service configuration.
type Config struct {
	Limits  pollution.LimitSet `toml:"limits" yaml:"limits"`
	Refine  RefineConfig       `toml:"refine" yaml:"refine"`
	Oracle  OracleConfig       `toml:"oracle" yaml:"oracle"`
	Network NetworkConfig      `toml:"network" yaml:"network"`
	Server  ServerConfig       `toml:"server" yaml:"server"`
	Log     LogConfig          `toml:"log" yaml:"log"`
}

// RefineConfig tunes the escalation loop.
type RefineConfig struct {
	EscalationFactor float64 `toml:"escalation_factor" yaml:"escalation_factor"`
	MaxEscalations   int     `toml:"max_escalations" yaml:"max_escalations"`
	MaxDetour        float64 `toml:"max_detour" yaml:"max_detour"` // 0 = no cap
}

// OracleConfig selects and configures the pollution oracle.
type OracleConfig struct {
	Kind        string            `toml:"kind" yaml:"kind"`
	GridDir     string            `toml:"grid_dir" yaml:"grid_dir"`
	OpenWeather OpenWeatherConfig `toml:"openweather" yaml:"openweather"`
}

// OpenWeatherConfig configures the OpenWeather oracle.
type OpenWeatherConfig struct {
	BaseURL       string  `toml:"base_url" yaml:"base_url"`
	APIKey        string  `toml:"api_key" yaml:"api_key"`
	RatePerSecond float64 `toml:"rate_per_second" yaml:"rate_per_second"`
	Burst         int     `toml:"burst" yaml:"burst"`
	Timeout       string  `toml:"timeout" yaml:"timeout"`
}

// NetworkConfig points at OSM XML extracts per travel mode.
type NetworkConfig struct {
	Walk             string  `toml:"walk" yaml:"walk"`
	Bike             string  `toml:"bike" yaml:"bike"`
	SearchPad        float64 `toml:"search_pad" yaml:"search_pad"`
	LargestComponent bool    `toml:"largest_component" yaml:"largest_component"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr             string   `toml:"addr" yaml:"addr"`
	MaxConcurrent    int      `toml:"max_concurrent" yaml:"max_concurrent"`
	RequestTimeout   string   `toml:"request_timeout" yaml:"request_timeout"`
	CheckServiceArea bool     `toml:"check_service_area" yaml:"check_service_area"`
	CORSOrigins      []string `toml:"cors_origins" yaml:"cors_origins"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // text or json
}

// Default returns WHO 2005 limits, the standard escalation policy, a grid
// oracle reading ./data, and a server on :8080.
func Default() Config {
	return Config{
		Limits: pollution.WHO2005(),
		Refine: RefineConfig{
			EscalationFactor: refine.DefaultEscalationFactor,
			MaxEscalations:   refine.DefaultMaxEscalations,
		},
		Oracle: OracleConfig{
			Kind:    OracleGrid,
			GridDir: "data",
			OpenWeather: OpenWeatherConfig{
				BaseURL:       "https://api.openweathermap.org",
				RatePerSecond: 1,
				Burst:         5,
				Timeout:       "10s",
			},
		},
		Network: NetworkConfig{SearchPad: network.DefaultSearchPad, LargestComponent: true},
		Server: ServerConfig{
			Addr:             ":8080",
			MaxConcurrent:    8,
			RequestTimeout:   "60s",
			CheckServiceArea: true,
			CORSOrigins:      []string{"*"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}
