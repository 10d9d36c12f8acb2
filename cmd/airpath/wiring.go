// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/airpath/config"
	"github.com/katalvlaran/airpath/network"
	"github.com/katalvlaran/airpath/oracle"
	"github.com/katalvlaran/airpath/pollution"
	"github.com/katalvlaran/airpath/refine"
)

// buildOracle returns the oracle selected by cfg.Oracle.Kind.
func buildOracle(cfg *config.Config) (pollution.Oracle, error) {
	switch cfg.Oracle.Kind {
	case config.OracleGrid:
		gs, err := oracle.LoadGridDir(cfg.Oracle.GridDir)
		if err != nil {
			return nil, err
		}
		return gs, nil

	case config.OracleOpenWeather:
		ow := cfg.Oracle.OpenWeather
		timeout, err := ow.TimeoutDuration()
		if err != nil {
			return nil, err
		}
		o, err := oracle.NewOpenWeather(ow.APIKey,
			oracle.WithBaseURL(ow.BaseURL),
			oracle.WithRateLimit(ow.RatePerSecond, ow.Burst),
			oracle.WithTimeout(timeout),
		)
		if err != nil {
			return nil, err
		}
		return o, nil

	default:
		return nil, fmt.Errorf("%w: oracle.kind %q", config.ErrInvalid, cfg.Oracle.Kind)
	}
}

// buildRegistry returns a registry loading the configured OSM extracts.
func buildRegistry(cfg *config.Config, log *slog.Logger) *network.Registry {
	paths := map[network.TravelMode]string{}
	if cfg.Network.Walk != "" {
		paths[network.Walk] = cfg.Network.Walk
	}
	if cfg.Network.Bike != "" {
		paths[network.Bike] = cfg.Network.Bike
	}

	opts := []network.Option{network.WithLogger(log)}
	if cfg.Network.LargestComponent {
		opts = append(opts, network.WithLargestComponent())
	}

	return network.NewRegistry(network.FileLoader{Paths: paths, Options: opts}, log)
}

func refineOptions(cfg *config.Config) []refine.Option {
	return []refine.Option{
		refine.WithEscalationFactor(cfg.Refine.EscalationFactor),
		refine.WithMaxEscalations(cfg.Refine.MaxEscalations),
		refine.WithMaxDetour(cfg.Refine.MaxDetour),
	}
}

// parseLatLon parses "lat,lon" into an orb.Point (lon, lat).
func parseLatLon(s string) (orb.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("coordinate %q: want lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("coordinate %q: latitude: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("coordinate %q: longitude: %w", s, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return orb.Point{}, fmt.Errorf("coordinate %q: out of range", s)
	}

	return orb.Point{lon, lat}, nil
}
