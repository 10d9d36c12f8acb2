// SPDX-License-Identifier: MIT
//
// File: openweather.go
// Role: OpenWeather air-pollution client implementing pollution.Oracle.
// Concurrency:
//   - Safe for concurrent use. Identical in-flight lookups share one request.
//   - The shared request is detached from every caller's cancellation and
//     bounded by the client timeout; each caller waits on its own context.

package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/airpath/pollution"
)

// OpenWeather samples the /data/2.5/air_pollution endpoint.
type OpenWeather struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
	group   singleflight.Group
}

// NewOpenWeather returns an OpenWeather oracle authenticated with apiKey.
func NewOpenWeather(apiKey string, opts ...OpenWeatherOption) (*OpenWeather, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	cfg := DefaultOpenWeatherOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	timeout := cfg.Timeout
	if client.Timeout > 0 {
		timeout = client.Timeout
	}

	return &OpenWeather{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
		limiter: rate.NewLimiter(cfg.Rate, cfg.Burst),
		timeout: timeout,
	}, nil
}

// airPollutionResponse mirrors the fields we read from the API.
type airPollutionResponse struct {
	List []struct {
		Components map[string]*float64 `json:"components"`
	} `json:"list"`
}

// components maps API component names to pollutants.
var components = map[string]pollution.Pollutant{
	"pm2_5": pollution.PM25,
	"pm10":  pollution.PM10,
	"no2":   pollution.NO2,
}

// Sample implements pollution.Oracle. An empty result list yields an
// unavailable Sample, not an error.
//
// Callers asking for the same coordinate share one upstream request, which
// does not inherit any caller's cancellation. A cancelled caller returns
// ctx.Err() at once while the others keep waiting.
func (o *OpenWeather) Sample(ctx context.Context, pt orb.Point) (pollution.Sample, error) {
	if err := ctx.Err(); err != nil {
		return pollution.Sample{}, err
	}
	key := strconv.FormatFloat(pt.Lat(), 'f', 6, 64) + "," + strconv.FormatFloat(pt.Lon(), 'f', 6, 64)
	ch := o.group.DoChan(key, func() (interface{}, error) {
		fctx, cancel := o.detach(ctx)
		defer cancel()

		return o.fetch(fctx, pt)
	})

	select {
	case <-ctx.Done():
		return pollution.Sample{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return pollution.Sample{}, r.Err
		}

		return r.Val.(pollution.Sample), nil
	}
}

// detach keeps ctx values but drops its cancellation, bounding the result
// by the client timeout instead.
func (o *OpenWeather) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	base := context.WithoutCancel(ctx)
	if o.timeout <= 0 {
		return context.WithCancel(base)
	}

	return context.WithTimeout(base, o.timeout)
}

func (o *OpenWeather) fetch(ctx context.Context, pt orb.Point) (pollution.Sample, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return pollution.Sample{}, fmt.Errorf("oracle: rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(pt.Lat(), 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(pt.Lon(), 'f', -1, 64))
	q.Set("appid", o.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/data/2.5/air_pollution?"+q.Encode(), nil)
	if err != nil {
		return pollution.Sample{}, fmt.Errorf("oracle: build request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return pollution.Sample{}, fmt.Errorf("oracle: air_pollution request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return pollution.Sample{}, fmt.Errorf("%w: air_pollution status %d", ErrUpstream, resp.StatusCode)
	}

	var body airPollutionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return pollution.Sample{}, fmt.Errorf("oracle: decode air_pollution: %w", err)
	}
	var s pollution.Sample
	if len(body.List) == 0 {
		return s, nil
	}
	for name, p := range components {
		if v := body.List[0].Components[name]; v != nil {
			s.Set(p, *v)
		}
	}

	return s, nil
}
