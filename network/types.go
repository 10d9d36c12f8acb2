// SPDX-License-Identifier: MIT

package network

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/paulmach/orb"
)

// Sentinel errors for the network package.
var (
	// ErrUnknownMode indicates an unrecognized travel mode.
	ErrUnknownMode = errors.New("network: unknown travel mode")

	// ErrEmptyNetwork indicates a graph without vertices.
	ErrEmptyNetwork = errors.New("network: graph has no vertices")

	// ErrNoNetwork indicates that no network source is configured for a mode.
	ErrNoNetwork = errors.New("network: no network configured for mode")
)

// DefaultSearchPad is the buffer, in degrees, added around the envelope of
// a route's endpoints.
const DefaultSearchPad = 0.01

// TravelMode selects which ways are usable and whether one-way tags apply.
type TravelMode int

const (
	Walk TravelMode = iota
	Bike
)

// String returns "walk" or "bike".
func (m TravelMode) String() string {
	switch m {
	case Walk:
		return "walk"
	case Bike:
		return "bike"
	default:
		return fmt.Sprintf("TravelMode(%d)", int(m))
	}
}

// ParseTravelMode accepts walk/walking/foot and bike/cycling/bicycle.
func ParseTravelMode(s string) (TravelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "walk", "walking", "foot":
		return Walk, nil
	case "bike", "cycling", "bicycle", "cycle":
		return Bike, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Options configures LoadOSM.
type Options struct {
	Bound            *orb.Bound // keep only nodes inside; nil keeps everything
	LargestComponent bool       // drop vertices outside the largest connected component
	Logger           *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns no clipping and a discarding logger.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithBound clips the network to b.
func WithBound(b orb.Bound) Option {
	return func(o *Options) { o.Bound = &b }
}

// WithLargestComponent trims the network to its largest weakly connected
// component, so endpoints never snap onto isolated fragments.
func WithLargestComponent() Option {
	return func(o *Options) { o.LargestComponent = true }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
