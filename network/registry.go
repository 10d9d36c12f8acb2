// SPDX-License-Identifier: MIT
//
// File: registry.go
// Role: Lazily loaded, shared base graphs per travel mode.
// Concurrency:
//   - Safe for concurrent use. Concurrent first requests for a mode share one load.
//   - Returned graphs are shared and must be treated as read-only.

package network

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/airpath/core"
)

// Loader produces the base graph for a travel mode.
type Loader interface {
	Load(ctx context.Context, mode TravelMode) (*core.Graph, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, mode TravelMode) (*core.Graph, error)

// Load calls f(ctx, mode).
func (f LoaderFunc) Load(ctx context.Context, mode TravelMode) (*core.Graph, error) {
	return f(ctx, mode)
}

// FileLoader reads one OSM XML file per mode.
type FileLoader struct {
	Paths   map[TravelMode]string
	Options []Option
}

// Load implements Loader.
func (l FileLoader) Load(ctx context.Context, mode TravelMode) (*core.Graph, error) {
	path, ok := l.Paths[mode]
	if !ok || path == "" {
		return nil, errors.Wrapf(ErrNoNetwork, "%s", mode)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "network: open %s", path)
	}
	defer f.Close()

	g, err := LoadOSM(ctx, f, mode, l.Options...)
	if err != nil {
		return nil, errors.Wrapf(err, "network: load %s", path)
	}

	return g, nil
}

// Registry caches one base graph per travel mode. Failed loads are not cached.
type Registry struct {
	loader Loader
	log    *slog.Logger
	group  singleflight.Group

	mu     sync.RWMutex
	graphs map[TravelMode]*core.Graph
}

// NewRegistry returns an empty Registry backed by loader.
func NewRegistry(loader Loader, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Registry{loader: loader, log: logger, graphs: make(map[TravelMode]*core.Graph)}
}

// Get returns the graph for mode, loading it on first use.
func (r *Registry) Get(ctx context.Context, mode TravelMode) (*core.Graph, error) {
	r.mu.RLock()
	g, ok := r.graphs[mode]
	r.mu.RUnlock()
	if ok {
		return g, nil
	}

	v, err, shared := r.group.Do(mode.String(), func() (interface{}, error) {
		r.mu.RLock()
		g, ok := r.graphs[mode]
		r.mu.RUnlock()
		if ok {
			return g, nil
		}
		g, err := r.loader.Load(ctx, mode)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.graphs[mode] = g
		r.mu.Unlock()

		return g, nil
	})
	if err != nil {
		r.log.Error("network load failed", slog.String("mode", mode.String()), slog.Any("error", err))
		return nil, err
	}
	if shared {
		r.log.Debug("network load shared", slog.String("mode", mode.String()))
	}

	return v.(*core.Graph), nil
}

// Put installs g for mode, replacing any cached graph.
func (r *Registry) Put(mode TravelMode, g *core.Graph) {
	r.mu.Lock()
	r.graphs[mode] = g
	r.mu.Unlock()
}
