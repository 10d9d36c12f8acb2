// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Pollutant enum, Sample, LimitSet and the Oracle/Source contracts.

package pollution

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
)

// Sentinel errors for the pollution package.
var (
	// ErrUnavailable reports that a source has no reading for a coordinate.
	// It is an expected outcome, never a planning failure.
	ErrUnavailable = errors.New("pollution: reading unavailable")

	// ErrUnknownPollutant indicates an unrecognized pollutant name.
	ErrUnknownPollutant = errors.New("pollution: unknown pollutant")

	// ErrBadLimit indicates a limit that is not finite and strictly positive.
	ErrBadLimit = errors.New("pollution: limit must be finite and positive")

	// ErrNilOracle indicates a nil oracle or source.
	ErrNilOracle = errors.New("pollution: oracle is nil")
)

// Pollutant identifies one of the tracked air pollutants.
type Pollutant int

const (
	PM25 Pollutant = iota // fine particulate matter, diameter ≤ 2.5 µm
	PM10                  // particulate matter, diameter ≤ 10 µm
	NO2                   // nitrogen dioxide

	numPollutants = 3
)

// All lists every tracked pollutant in canonical order.
var All = []Pollutant{PM25, PM10, NO2}

// String returns the display name ("PM2.5", "PM10", "NO2").
func (p Pollutant) String() string {
	switch p {
	case PM25:
		return "PM2.5"
	case PM10:
		return "PM10"
	case NO2:
		return "NO2"
	default:
		return fmt.Sprintf("Pollutant(%d)", int(p))
	}
}

// Key returns the lower-case identifier used in config files and JSON ("pm25", "pm10", "no2").
func (p Pollutant) Key() string {
	switch p {
	case PM25:
		return "pm25"
	case PM10:
		return "pm10"
	case NO2:
		return "no2"
	default:
		return ""
	}
}

func (p Pollutant) valid() bool { return p >= 0 && p < numPollutants }

// ParsePollutant accepts the display name, the key, or the OpenWeather
// component name ("pm2_5"), case-insensitively.
func ParsePollutant(s string) (Pollutant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pm2.5", "pm25", "pm2_5":
		return PM25, nil
	case "pm10":
		return PM10, nil
	case "no2":
		return NO2, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPollutant, s)
	}
}

// Sample holds the readings known for one coordinate. Each pollutant is
// either present with a value or absent. The zero Sample is fully unavailable.
type Sample struct {
	values  [numPollutants]float64
	present [numPollutants]bool
}

// NewSample builds a Sample from a pollutant → value map. NaN values are dropped.
func NewSample(readings map[Pollutant]float64) Sample {
	var s Sample
	for p, v := range readings {
		s.Set(p, v)
	}

	return s
}

// Get returns the reading for p and whether it is present.
func (s Sample) Get(p Pollutant) (float64, bool) {
	if !p.valid() || !s.present[p] {
		return 0, false
	}

	return s.values[p], true
}

// Set records a reading. NaN, infinite or unknown-pollutant values leave p absent.
func (s *Sample) Set(p Pollutant, v float64) {
	if !p.valid() || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	s.values[p] = v
	s.present[p] = true
}

// Unavailable reports whether the sample carries no reading at all.
func (s Sample) Unavailable() bool {
	for _, ok := range s.present {
		if ok {
			return false
		}
	}

	return true
}

// Map returns the present readings keyed by Pollutant.Key.
func (s Sample) Map() map[string]float64 {
	out := make(map[string]float64, numPollutants)
	for _, p := range All {
		if v, ok := s.Get(p); ok {
			out[p.Key()] = v
		}
	}

	return out
}

// Combined returns the mean of the present readings, or (0, false) when the
// sample is unavailable. The exposure report colours edges by this value.
func Combined(s Sample) (float64, bool) {
	var sum float64
	var n int
	for _, p := range All {
		if v, ok := s.Get(p); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}

	return sum / float64(n), true
}

// LimitSet holds one concentration threshold per pollutant, in µg/m³.
type LimitSet struct {
	PM25 float64 `json:"pm25" toml:"pm25" yaml:"pm25"`
	PM10 float64 `json:"pm10" toml:"pm10" yaml:"pm10"`
	NO2  float64 `json:"no2" toml:"no2" yaml:"no2"`
}

// WHO2005 returns the WHO 2005 air-quality guideline values (10/20/40 µg/m³).
func WHO2005() LimitSet {
	return LimitSet{PM25: 10, PM10: 20, NO2: 40}
}

// Limit returns the threshold for p, or +Inf for an unknown pollutant.
func (l LimitSet) Limit(p Pollutant) float64 {
	switch p {
	case PM25:
		return l.PM25
	case PM10:
		return l.PM10
	case NO2:
		return l.NO2
	default:
		return math.Inf(1)
	}
}

// Scaled multiplies every threshold by tol.
func (l LimitSet) Scaled(tol float64) LimitSet {
	return LimitSet{PM25: l.PM25 * tol, PM10: l.PM10 * tol, NO2: l.NO2 * tol}
}

// Validate checks that every threshold is finite and strictly positive.
func (l LimitSet) Validate() error {
	for _, p := range All {
		v := l.Limit(p)
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%g", ErrBadLimit, p, v)
		}
	}

	return nil
}

// Oracle returns every pollutant reading known for a coordinate.
// Implementations may block on disk or network I/O.
type Oracle interface {
	Sample(ctx context.Context, pt orb.Point) (Sample, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(ctx context.Context, pt orb.Point) (Sample, error)

// Sample calls f(ctx, pt).
func (f OracleFunc) Sample(ctx context.Context, pt orb.Point) (Sample, error) { return f(ctx, pt) }

// Source returns a single pollutant concentration at a latitude/longitude,
// or ErrUnavailable when it has no data there.
type Source interface {
	Concentration(ctx context.Context, lat, lon float64, p Pollutant) (float64, error)
}

// FromSource adapts a per-pollutant Source into an Oracle, issuing one
// Concentration call per pollutant. A failed pollutant is left absent.
// An error is returned only if every pollutant failed and at least one
// failure was something other than ErrUnavailable.
func FromSource(src Source) Oracle {
	return OracleFunc(func(ctx context.Context, pt orb.Point) (Sample, error) {
		if src == nil {
			return Sample{}, ErrNilOracle
		}
		var (
			s    Sample
			errs []error
		)
		for _, p := range All {
			v, err := src.Concentration(ctx, pt.Lat(), pt.Lon(), p)
			if err != nil {
				if !errors.Is(err, ErrUnavailable) {
					errs = append(errs, fmt.Errorf("%s: %w", p, err))
				}
				continue
			}
			s.Set(p, v)
		}
		if s.Unavailable() && len(errs) > 0 {
			return Sample{}, errors.Join(errs...)
		}

		return s, nil
	})
}
