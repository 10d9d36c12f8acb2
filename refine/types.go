// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Sentinel errors, planner options, Attempt and Result.

package refine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/airpath/pollution"
)

// Input errors returned by Plan.
var (
	// ErrNilGraph indicates a nil base graph.
	ErrNilGraph = errors.New("refine: graph is nil")

	// ErrNilOracle indicates a nil pollution oracle.
	ErrNilOracle = errors.New("refine: oracle is nil")

	// ErrEmptyEndpoint indicates an empty source or target ID.
	ErrEmptyEndpoint = errors.New("refine: source and target must be non-empty")

	// ErrUnknownEndpoint indicates that the source or target is not in the graph.
	ErrUnknownEndpoint = errors.New("refine: endpoint not in graph")

	// ErrBadEscalationFactor indicates an escalation factor that is not > 1.
	ErrBadEscalationFactor = errors.New("refine: escalation factor must be greater than 1")

	// ErrBadMaxEscalations indicates a negative escalation cap.
	ErrBadMaxEscalations = errors.New("refine: max escalations must be non-negative")

	// ErrBadTolerance indicates an initial tolerance that is not > 0.
	ErrBadTolerance = errors.New("refine: initial tolerance must be positive")

	// ErrBadMaxDetour indicates a detour cap that is neither 0 nor >= 1.
	ErrBadMaxDetour = errors.New("refine: max detour must be 0 or at least 1")
)

// Outcome errors produced by Result.Err.
var (
	// ErrDisconnected reports that source and target share no path in the base graph.
	ErrDisconnected = errors.New("refine: source and target are disconnected")

	// ErrEscalationLimit reports that the escalation cap was reached before a
	// compliant route was found. One may still exist at a higher tolerance.
	ErrEscalationLimit = errors.New("refine: escalation limit exceeded")
)

// Defaults for Options.
const (
	DefaultEscalationFactor = 1.5
	DefaultMaxEscalations   = 20
	DefaultInitialTolerance = 1.0
)

// Status is the planner state.
type Status int

const (
	Searching Status = iota
	Found
	Infeasible
)

// String returns the lower-case state name.
func (s Status) String() string {
	switch s {
	case Searching:
		return "searching"
	case Found:
		return "found"
	case Infeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Reason explains an Infeasible result.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonDisconnected
	ReasonEscalationLimit
)

// String returns the snake_case reason name used in logs and JSON.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonDisconnected:
		return "disconnected"
	case ReasonEscalationLimit:
		return "escalation_limit_exceeded"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Attempt describes one round of the refinement loop.
type Attempt struct {
	Round      int      // 1-based
	Tolerance  float64  // τ used this round
	Excluded   []string // exclusion set the round searched under, sorted
	Reachable  bool     // whether the view had a path
	Path       []string // shortest path in the view, nil if unreachable
	Violations []string // non-compliant nodes of Path, in path order
	Escalated  bool     // the round ended by raising τ
}

// Options configures Plan.
type Options struct {
	EscalationFactor float64
	MaxEscalations   int
	InitialTolerance float64
	MaxDetour        float64 // 0 disables; otherwise a multiple of the shortest distance
	Logger           *slog.Logger
	Observer         func(Attempt)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns factor 1.5, at most 20 escalations, τ = 1.0,
// no detour cap, a discarding logger and no observer.
func DefaultOptions() Options {
	return Options{
		EscalationFactor: DefaultEscalationFactor,
		MaxEscalations:   DefaultMaxEscalations,
		InitialTolerance: DefaultInitialTolerance,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithEscalationFactor sets the multiplier applied to τ on escalation.
func WithEscalationFactor(f float64) Option {
	return func(o *Options) { o.EscalationFactor = f }
}

// WithMaxEscalations caps the number of escalations. Zero disables escalation.
func WithMaxEscalations(n int) Option {
	return func(o *Options) { o.MaxEscalations = n }
}

// WithInitialTolerance sets the starting τ.
func WithInitialTolerance(tol float64) Option {
	return func(o *Options) { o.InitialTolerance = tol }
}

// WithMaxDetour limits every candidate route to factor times the length of
// the unconstrained shortest path. Longer routes count as unreachable, so the
// planner escalates τ instead of taking them. Zero disables the cap.
func WithMaxDetour(factor float64) Option {
	return func(o *Options) { o.MaxDetour = factor }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver registers fn to receive every Attempt, in order, on the
// planning goroutine.
func WithObserver(fn func(Attempt)) Option {
	return func(o *Options) { o.Observer = fn }
}

func (o Options) validate() error {
	if !(o.EscalationFactor > 1) {
		return fmt.Errorf("%w: %g", ErrBadEscalationFactor, o.EscalationFactor)
	}
	if o.MaxEscalations < 0 {
		return fmt.Errorf("%w: %d", ErrBadMaxEscalations, o.MaxEscalations)
	}
	if !(o.InitialTolerance > 0) {
		return fmt.Errorf("%w: %g", ErrBadTolerance, o.InitialTolerance)
	}
	if o.MaxDetour != 0 && !(o.MaxDetour >= 1) {
		return fmt.Errorf("%w: %g", ErrBadMaxDetour, o.MaxDetour)
	}

	return nil
}

// Result is the outcome of Plan.
type Result struct {
	Status Status
	Reason Reason

	// Path is the compliant route (source ... target) when Status == Found.
	Path     []string
	Distance float64

	// Tolerance is the final τ: the one Path complies with when Found.
	Tolerance   float64
	Escalations int
	Attempts    int

	// Shortest is the unconstrained shortest path from the first round.
	Shortest         []string
	ShortestDistance float64

	OracleCalls    int
	OracleFailures int

	// Samples holds every pollution sample fetched during planning.
	Samples map[string]pollution.Sample
}

// Err maps an Infeasible result to ErrDisconnected or ErrEscalationLimit.
// It returns nil for a Found result.
func (r Result) Err() error {
	if r.Status != Infeasible {
		return nil
	}
	switch r.Reason {
	case ReasonDisconnected:
		return ErrDisconnected
	case ReasonEscalationLimit:
		return fmt.Errorf("%w: tolerance %g after %d escalations", ErrEscalationLimit, r.Tolerance, r.Escalations)
	default:
		return fmt.Errorf("refine: infeasible (%s)", r.Reason)
	}
}
