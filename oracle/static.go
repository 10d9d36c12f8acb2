// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"sync"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/airpath/pollution"
)

// Static serves samples from memory. Coordinates without an entry return
// the fallback sample (unavailable unless set).
type Static struct {
	mu       sync.RWMutex
	samples  map[orb.Point]pollution.Sample
	fallback pollution.Sample
}

// NewStatic returns an empty Static oracle.
func NewStatic() *Static {
	return &Static{samples: make(map[orb.Point]pollution.Sample)}
}

// Set stores s for pt and returns the receiver for chaining.
func (o *Static) Set(pt orb.Point, s pollution.Sample) *Static {
	o.mu.Lock()
	o.samples[pt] = s
	o.mu.Unlock()

	return o
}

// SetFallback sets the sample returned for unknown coordinates.
func (o *Static) SetFallback(s pollution.Sample) *Static {
	o.mu.Lock()
	o.fallback = s
	o.mu.Unlock()

	return o
}

// Sample implements pollution.Oracle.
func (o *Static) Sample(_ context.Context, pt orb.Point) (pollution.Sample, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if s, ok := o.samples[pt]; ok {
		return s, nil
	}

	return o.fallback, nil
}
