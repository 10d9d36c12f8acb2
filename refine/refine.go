// SPDX-License-Identifier: MIT
//
// File: refine.go
// Role: The escalating exclude-and-retry loop.
// Determinism:
//   - For a fixed graph and oracle, the sequence of attempts is identical
//     across runs (path finding breaks ties by vertex ID).
// Concurrency:
//   - Plan reads the base graph only. Independent calls may run in parallel.

package refine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/airpath/compliance"
	"github.com/katalvlaran/airpath/core"
	"github.com/katalvlaran/airpath/dijkstra"
	"github.com/katalvlaran/airpath/pollution"
)

// Plan finds a route from source to target in g whose interior nodes all
// comply with limits scaled by the returned tolerance.
//
// Errors are returned only for invalid input or when ctx is done at a round
// boundary. An infeasible request yields Result{Status: Infeasible} and a nil
// error.
func Plan(
	ctx context.Context,
	g *core.Graph,
	source, target string,
	limits pollution.LimitSet,
	oracle pollution.Oracle,
	opts ...Option,
) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateInput(g, source, target, limits, oracle, cfg); err != nil {
		return Result{}, err
	}

	ctx, span := tracer.Start(ctx, "refine.Plan", trace.WithAttributes(
		attribute.String("route.source", source),
		attribute.String("route.target", target),
		attribute.Int("graph.vertices", g.VertexCount()),
	))
	defer span.End()

	start := time.Now()
	cache := pollution.NewCache(oracle, g.Point, pollution.WithCacheLogger(cfg.Logger))
	p := &planner{
		cfg:    cfg,
		g:      g,
		source: source,
		target: target,
		cache:  cache,
		eval:   compliance.New(cache, limits, source, target),
		span:   span,
	}

	res, err := p.run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	res.OracleCalls = cache.Calls()
	res.OracleFailures = cache.Failures()
	res.Samples = cache.Snapshot()

	span.SetAttributes(
		attribute.String("route.status", res.Status.String()),
		attribute.Float64("route.tolerance", res.Tolerance),
		attribute.Int("route.attempts", res.Attempts),
		attribute.Int("route.escalations", res.Escalations),
		attribute.Int("oracle.calls", res.OracleCalls),
	)
	recordPlan(ctx, res, time.Since(start))

	lvl := slog.LevelInfo
	if res.Status != Found {
		lvl = slog.LevelWarn
	}
	cfg.Logger.Log(ctx, lvl, "route planned",
		slog.String("source", source),
		slog.String("target", target),
		slog.String("status", res.Status.String()),
		slog.String("reason", res.Reason.String()),
		slog.Float64("tolerance", res.Tolerance),
		slog.Int("attempts", res.Attempts),
		slog.Int("escalations", res.Escalations),
		slog.Int("oracle_calls", res.OracleCalls),
		slog.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}

func validateInput(g *core.Graph, source, target string, limits pollution.LimitSet, oracle pollution.Oracle, cfg Options) error {
	if g == nil {
		return ErrNilGraph
	}
	if oracle == nil {
		return ErrNilOracle
	}
	if source == "" || target == "" {
		return ErrEmptyEndpoint
	}
	if !g.HasVertex(source) {
		return fmt.Errorf("%w: source %q", ErrUnknownEndpoint, source)
	}
	if !g.HasVertex(target) {
		return fmt.Errorf("%w: target %q", ErrUnknownEndpoint, target)
	}
	if err := limits.Validate(); err != nil {
		return err
	}

	return cfg.validate()
}

// planner holds the state owned by one Plan call.
type planner struct {
	cfg            Options
	g              *core.Graph
	source, target string
	cache          *pollution.Cache
	eval           *compliance.Evaluator
	span           trace.Span
}

// run drives the Searching state until it resolves to Found or Infeasible.
func (p *planner) run(ctx context.Context) (Result, error) {
	var (
		res      = Result{Status: Searching}
		excluded = core.NewNodeSet()
		tol      = p.cfg.InitialTolerance
		spOpts   []dijkstra.Option
	)

	for round := 1; res.Status == Searching; round++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		view := core.NewView(p.g, excluded, p.source, p.target)
		sp, err := dijkstra.ShortestPath(view, p.source, p.target, spOpts...)
		if err != nil {
			return Result{}, err
		}

		att := Attempt{
			Round:     round,
			Tolerance: tol,
			Excluded:  excluded.Sorted(),
			Reachable: sp.Reachable,
			Path:      sp.Path,
		}
		res.Attempts = round
		res.Tolerance = tol
		if round == 1 && sp.Reachable {
			res.Shortest = sp.Path
			res.ShortestDistance = sp.Distance
			if p.cfg.MaxDetour > 0 && !math.IsInf(p.cfg.MaxDetour, 1) {
				// The base path stays within the cap, so an empty view is never cut.
				spOpts = append(spOpts, dijkstra.WithMaxDistance(sp.Distance*p.cfg.MaxDetour))
			}
		}

		switch {
		case !sp.Reachable && excluded.Len() == 0:
			// Nothing is excluded, so the view is the base graph.
			res.Status, res.Reason = Infeasible, ReasonDisconnected

		case !sp.Reachable && res.Escalations >= p.cfg.MaxEscalations:
			res.Status, res.Reason = Infeasible, ReasonEscalationLimit

		case !sp.Reachable:
			tol *= p.cfg.EscalationFactor
			res.Escalations++
			excluded = core.NewNodeSet()
			att.Escalated = true
			p.span.AddEvent("escalate", trace.WithAttributes(
				attribute.Int("round", round),
				attribute.Float64("tolerance", tol),
			))

		default:
			ok, bad := p.eval.EvaluatePath(ctx, sp.Path, tol)
			att.Violations = bad
			if ok {
				res.Status = Found
				res.Path = sp.Path
				res.Distance = sp.Distance
				break
			}
			for _, id := range bad {
				excluded.Add(id)
			}
		}

		p.cfg.Logger.Debug("refine attempt",
			slog.Int("round", att.Round),
			slog.Float64("tolerance", att.Tolerance),
			slog.Int("excluded", len(att.Excluded)),
			slog.Bool("reachable", att.Reachable),
			slog.Int("path_len", len(att.Path)),
			slog.Int("violations", len(att.Violations)),
			slog.Bool("escalated", att.Escalated),
		)
		if p.cfg.Observer != nil {
			p.cfg.Observer(att)
		}
	}

	return res, nil
}
