// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadEnvFiles loads .env-style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.Wrapf(err, "config: load env file %s", p)
		}
	}

	return nil
}

// Load builds a Config from defaults, the file at path (skipped when path is
// empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "config: read %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return errors.Wrapf(err, "config: parse TOML %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrapf(err, "config: parse YAML %s", path)
		}
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}

	return nil
}

// applyEnv overlays environment variables read through lookup.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	float := func(key string, dst *float64) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(err, "config: %s", key)
		}
		*dst = f
		return nil
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "config: %s", key)
		}
		*dst = n
		return nil
	}

	for key, dst := range map[string]*float64{
		"AIRPATH_LIMIT_PM25":        &cfg.Limits.PM25,
		"AIRPATH_LIMIT_PM10":        &cfg.Limits.PM10,
		"AIRPATH_LIMIT_NO2":         &cfg.Limits.NO2,
		"AIRPATH_ESCALATION_FACTOR": &cfg.Refine.EscalationFactor,
		"AIRPATH_MAX_DETOUR":        &cfg.Refine.MaxDetour,
	} {
		if err := float(key, dst); err != nil {
			return err
		}
	}
	for key, dst := range map[string]*int{
		"AIRPATH_MAX_ESCALATIONS": &cfg.Refine.MaxEscalations,
		"AIRPATH_MAX_CONCURRENT":  &cfg.Server.MaxConcurrent,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}

	str("AIRPATH_ORACLE_KIND", &cfg.Oracle.Kind)
	str("AIRPATH_GRID_DIR", &cfg.Oracle.GridDir)
	str("AIRPATH_OPENWEATHER_URL", &cfg.Oracle.OpenWeather.BaseURL)
	str("OPENWEATHER_API_KEY", &cfg.Oracle.OpenWeather.APIKey)
	str("AIRPATH_NETWORK_WALK", &cfg.Network.Walk)
	str("AIRPATH_NETWORK_BIKE", &cfg.Network.Bike)
	if port, ok := lookup("PORT"); ok && port != "" {
		cfg.Server.Addr = ":" + port
	}
	str("AIRPATH_ADDR", &cfg.Server.Addr)
	str("AIRPATH_LOG_LEVEL", &cfg.Log.Level)
	str("AIRPATH_LOG_FORMAT", &cfg.Log.Format)

	return nil
}

// Validate reports the first invalid setting, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
	}
	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !(c.Refine.EscalationFactor > 1) {
		return invalid("refine.escalation_factor must be > 1, got %g", c.Refine.EscalationFactor)
	}
	if c.Refine.MaxEscalations < 0 {
		return invalid("refine.max_escalations must be >= 0, got %d", c.Refine.MaxEscalations)
	}
	if d := c.Refine.MaxDetour; d != 0 && !(d >= 1) {
		return invalid("refine.max_detour must be 0 or >= 1, got %g", d)
	}
	switch c.Oracle.Kind {
	case OracleGrid:
		if c.Oracle.GridDir == "" {
			return invalid("oracle.grid_dir is required for the grid oracle")
		}
	case OracleOpenWeather:
		if c.Oracle.OpenWeather.APIKey == "" {
			return invalid("oracle.openweather.api_key (or OPENWEATHER_API_KEY) is required")
		}
		if _, err := c.Oracle.OpenWeather.TimeoutDuration(); err != nil {
			return invalid("oracle.openweather.timeout: %v", err)
		}
	default:
		return invalid("oracle.kind %q is not one of grid, openweather", c.Oracle.Kind)
	}
	if c.Network.SearchPad < 0 {
		return invalid("network.search_pad must be >= 0")
	}
	if c.Server.MaxConcurrent <= 0 {
		return invalid("server.max_concurrent must be > 0")
	}
	if _, err := c.Server.RequestTimeoutDuration(); err != nil {
		return invalid("server.request_timeout: %v", err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return invalid("log.level: %v", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format %q is not one of text, json", c.Log.Format)
	}

	return nil
}

// TimeoutDuration parses Timeout.
func (o OpenWeatherConfig) TimeoutDuration() (time.Duration, error) {
	return time.ParseDuration(o.Timeout)
}

// RequestTimeoutDuration parses RequestTimeout.
func (s ServerConfig) RequestTimeoutDuration() (time.Duration, error) {
	return time.ParseDuration(s.RequestTimeout)
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(l.Level))

	return lvl, err
}
