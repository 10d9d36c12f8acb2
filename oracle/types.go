// SPDX-License-Identifier: MIT

package oracle

import (
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Sentinel errors for the oracle package.
var (
	// ErrBadGrid indicates a malformed ESRI ASCII grid.
	ErrBadGrid = errors.New("oracle: malformed grid")

	// ErrNoGrids indicates that a grid directory held no pollutant rasters.
	ErrNoGrids = errors.New("oracle: no pollutant grids found")

	// ErrUpstream indicates a non-success response from a remote service.
	ErrUpstream = errors.New("oracle: upstream error")

	// ErrMissingAPIKey indicates that a remote oracle was built without credentials.
	ErrMissingAPIKey = errors.New("oracle: API key is empty")
)

// DefaultOpenWeatherURL is the production OpenWeather API root.
const DefaultOpenWeatherURL = "https://api.openweathermap.org"

// OpenWeatherOptions configures an OpenWeather oracle.
type OpenWeatherOptions struct {
	BaseURL string        // API root, without trailing slash
	Client  *http.Client  // HTTP client; Timeout applies per request
	Rate    rate.Limit    // sustained requests per second
	Burst   int           // token bucket size
	Timeout time.Duration // per-request timeout when Client is nil
}

// OpenWeatherOption mutates OpenWeatherOptions.
type OpenWeatherOption func(*OpenWeatherOptions)

// DefaultOpenWeatherOptions returns the production endpoint, one request per
// second with a burst of 5, and a 10s timeout.
func DefaultOpenWeatherOptions() OpenWeatherOptions {
	return OpenWeatherOptions{
		BaseURL: DefaultOpenWeatherURL,
		Rate:    rate.Limit(1),
		Burst:   5,
		Timeout: 10 * time.Second,
	}
}

// WithBaseURL points the oracle at another API root (tests, proxies).
func WithBaseURL(u string) OpenWeatherOption {
	return func(o *OpenWeatherOptions) { o.BaseURL = u }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) OpenWeatherOption {
	return func(o *OpenWeatherOptions) { o.Client = c }
}

// WithRateLimit sets the sustained rate (requests/second) and burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) OpenWeatherOption {
	return func(o *OpenWeatherOptions) {
		if rps <= 0 {
			o.Rate = rate.Inf
		} else {
			o.Rate = rate.Limit(rps)
		}
		if burst > 0 {
			o.Burst = burst
		}
	}
}

// WithTimeout sets the per-request timeout used when no client is supplied.
func WithTimeout(d time.Duration) OpenWeatherOption {
	return func(o *OpenWeatherOptions) { o.Timeout = d }
}
