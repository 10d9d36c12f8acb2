// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/airpath/network"
	"github.com/katalvlaran/airpath/pollution"
	"github.com/katalvlaran/airpath/refine"
	"github.com/katalvlaran/airpath/report"
)

// Sentinel errors for the server package.
var (
	// ErrNilRegistry indicates a Server built without a network registry.
	ErrNilRegistry = errors.New("server: network registry is nil")

	// ErrNilOracle indicates a Server built without a pollution oracle.
	ErrNilOracle = errors.New("server: oracle is nil")
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest         = "bad_request"
	CodeNoNetwork          = "no_network"
	CodeOutsideServiceArea = "outside_service_area"
	CodeInfeasible         = "infeasible"
	CodeBusy               = "busy"
	CodeTimeout            = "timeout"
	CodeInternal           = "internal"
)

// Options configures a Server.
type Options struct {
	Logger           *slog.Logger
	Limits           pollution.LimitSet
	RefineOptions    []refine.Option
	SearchPad        float64
	CheckServiceArea bool
	MaxConcurrent    int64
	RequestTimeout   time.Duration
	CORSOrigins      []string
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns WHO 2005 limits, the service-area check enabled,
// eight concurrent plans, a 60s timeout and CORS open to every origin.
func DefaultOptions() Options {
	return Options{
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		Limits:           pollution.WHO2005(),
		SearchPad:        network.DefaultSearchPad,
		CheckServiceArea: true,
		MaxConcurrent:    8,
		RequestTimeout:   60 * time.Second,
		CORSOrigins:      []string{"*"},
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithLimits sets the default limit set for requests that carry none.
func WithLimits(l pollution.LimitSet) Option {
	return func(o *Options) { o.Limits = l }
}

// WithRefineOptions appends options passed to every refine.Plan call.
func WithRefineOptions(opts ...refine.Option) Option {
	return func(o *Options) { o.RefineOptions = append(o.RefineOptions, opts...) }
}

// WithSearchPad sets the degrees added around the endpoints' envelope when
// reporting the search area.
func WithSearchPad(pad float64) Option {
	return func(o *Options) { o.SearchPad = pad }
}

// WithServiceAreaCheck toggles rejection of endpoints with no pollution data.
func WithServiceAreaCheck(on bool) Option {
	return func(o *Options) { o.CheckServiceArea = on }
}

// WithMaxConcurrent bounds simultaneous planning requests. Values < 1 are ignored.
func WithMaxConcurrent(n int64) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxConcurrent = n
		}
	}
}

// WithRequestTimeout bounds a single planning request. Zero disables it.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *Options) { o.RequestTimeout = d }
}

// WithCORSOrigins sets the allowed origins; "*" allows all.
func WithCORSOrigins(origins ...string) Option {
	return func(o *Options) { o.CORSOrigins = origins }
}

// LatLon is a WGS84 coordinate.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteRequest is the body of POST /v1/routes.
type RouteRequest struct {
	Origin      LatLon              `json:"origin"`
	Destination LatLon              `json:"destination"`
	Mode        string              `json:"mode"`
	Limits      *pollution.LimitSet `json:"limits,omitempty"`
}

// Bound is a search envelope in degrees.
type Bound struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// RouteResponse is the 200 body of POST /v1/routes.
type RouteResponse struct {
	RequestID  string         `json:"request_id"`
	Mode       string         `json:"mode"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	SearchArea Bound          `json:"search_area"`
	Summary    report.Summary `json:"summary"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	RequestID string  `json:"request_id"`
	Code      string  `json:"code"`
	Error     string  `json:"error"`
	Reason    string  `json:"reason,omitempty"`
	Tolerance float64 `json:"tolerance,omitempty"`
}
