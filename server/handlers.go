// SPDX-License-Identifier: MIT
//
// File: handlers.go
// Role: Route planning endpoints.
// Concurrency:
//   - Each request owns its sample cache; base graphs are shared read-only.
//   - At most Options.MaxConcurrent plans run at once; extra requests get 503.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"

	"github.com/katalvlaran/airpath/core"
	"github.com/katalvlaran/airpath/network"
	"github.com/katalvlaran/airpath/refine"
	"github.com/katalvlaran/airpath/report"
)

// planned is a successful plan plus the graph it was computed on.
type planned struct {
	graph *core.Graph
	resp  RouteResponse
}

func (s *Server) handleRoute(c *gin.Context) {
	p, ok := s.plan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p.resp)
}

func (s *Server) handleRouteGeoJSON(c *gin.Context) {
	p, ok := s.plan(c)
	if !ok {
		return
	}
	fc, err := report.GeoJSON(p.graph, p.resp.Summary)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// plan runs the whole request pipeline. On failure it has already written
// the error reply and returns ok == false.
func (s *Server) plan(c *gin.Context) (planned, bool) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, CodeBadRequest, err)
		return planned{}, false
	}
	if err := validCoord(req.Origin); err != nil {
		s.fail(c, http.StatusBadRequest, CodeBadRequest, fmt.Errorf("origin: %w", err))
		return planned{}, false
	}
	if err := validCoord(req.Destination); err != nil {
		s.fail(c, http.StatusBadRequest, CodeBadRequest, fmt.Errorf("destination: %w", err))
		return planned{}, false
	}
	if req.Mode == "" {
		req.Mode = network.Walk.String()
	}
	mode, err := network.ParseTravelMode(req.Mode)
	if err != nil {
		s.fail(c, http.StatusBadRequest, CodeBadRequest, err)
		return planned{}, false
	}
	limits := s.opts.Limits
	if req.Limits != nil {
		limits = *req.Limits
		if err := limits.Validate(); err != nil {
			s.fail(c, http.StatusBadRequest, CodeBadRequest, err)
			return planned{}, false
		}
	}

	if !s.sem.TryAcquire(1) {
		s.fail(c, http.StatusServiceUnavailable, CodeBusy, errors.New("server: too many concurrent plans"))
		return planned{}, false
	}
	defer s.sem.Release(1)
	s.metrics.inflight.Inc()
	defer s.metrics.inflight.Dec()

	ctx := c.Request.Context()
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	g, err := s.registry.Get(ctx, mode)
	if err != nil {
		if errors.Is(err, network.ErrNoNetwork) {
			s.fail(c, http.StatusNotFound, CodeNoNetwork, err)
		} else {
			s.failCtx(ctx, c, err)
		}
		return planned{}, false
	}

	from := orb.Point{req.Origin.Lon, req.Origin.Lat}
	to := orb.Point{req.Destination.Lon, req.Destination.Lat}
	if s.opts.CheckServiceArea {
		for _, pt := range []orb.Point{from, to} {
			if !s.covered(ctx, pt) {
				s.fail(c, http.StatusUnprocessableEntity, CodeOutsideServiceArea,
					errors.New("server: no pollution data at requested location"))
				return planned{}, false
			}
		}
	}

	source, _, err := network.NearestNode(g, from)
	if err != nil {
		s.fail(c, http.StatusNotFound, CodeNoNetwork, err)
		return planned{}, false
	}
	target, _, err := network.NearestNode(g, to)
	if err != nil {
		s.fail(c, http.StatusNotFound, CodeNoNetwork, err)
		return planned{}, false
	}

	rid := c.GetString(ctxRequestID)
	log := s.opts.Logger.With(slog.String("request_id", rid), slog.String("mode", mode.String()))
	ropts := append([]refine.Option{refine.WithLogger(log)}, s.opts.RefineOptions...)
	res, err := refine.Plan(ctx, g, source, target, limits, s.oracle, ropts...)
	if err != nil {
		s.failCtx(ctx, c, err)
		return planned{}, false
	}
	s.metrics.outcomes.WithLabelValues(res.Status.String(), res.Reason.String()).Inc()
	if res.Status != refine.Found {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			RequestID: rid,
			Code:      CodeInfeasible,
			Error:     res.Err().Error(),
			Reason:    res.Reason.String(),
			Tolerance: res.Tolerance,
		})
		return planned{}, false
	}

	summary, err := report.Summarize(ctx, g, res, report.SampleCache(g, res, s.oracle))
	if err != nil {
		s.failCtx(ctx, c, err)
		return planned{}, false
	}
	area := network.SearchArea(from, to, s.opts.SearchPad)

	return planned{
		graph: g,
		resp: RouteResponse{
			RequestID: rid,
			Mode:      mode.String(),
			Source:    source,
			Target:    target,
			SearchArea: Bound{
				MinLat: area.Min.Lat(), MinLon: area.Min.Lon(),
				MaxLat: area.Max.Lat(), MaxLon: area.Max.Lon(),
			},
			Summary: summary,
		},
	}, true
}

// covered reports whether the oracle has any reading at pt.
func (s *Server) covered(ctx context.Context, pt orb.Point) bool {
	sample, err := s.oracle.Sample(ctx, pt)
	if err != nil {
		s.opts.Logger.Debug("service area probe failed", slog.Any("point", pt), slog.Any("err", err))
		return false
	}

	return !sample.Unavailable()
}

// failCtx maps a context deadline to 504 and anything else to 500.
func (s *Server) failCtx(ctx context.Context, c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		s.fail(c, http.StatusGatewayTimeout, CodeTimeout, err)
		return
	}
	s.fail(c, http.StatusInternalServerError, CodeInternal, err)
}

func (s *Server) fail(c *gin.Context, status int, code string, err error) {
	if status >= http.StatusInternalServerError {
		s.opts.Logger.Error("request failed",
			slog.String("request_id", c.GetString(ctxRequestID)),
			slog.String("code", code),
			slog.Any("err", err),
		)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.GetString(ctxRequestID),
		Code:      code,
		Error:     err.Error(),
	})
}

func validCoord(p LatLon) error {
	switch {
	case p.Lat < -90 || p.Lat > 90:
		return errors.New("latitude out of range")
	case p.Lon < -180 || p.Lon > 180:
		return errors.New("longitude out of range")
	}

	return nil
}
