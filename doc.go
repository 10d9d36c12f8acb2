// SPDX-License-Identifier: MIT

// Package airpath plans walking and cycling routes that keep their
// intermediate junctions under configurable air-pollution limits.
//
// What is airpath?
//
//	A routing engine and HTTP service built from small packages:
//		• core       – street network graph with coordinates and exclusion views
//		• dijkstra   – point-to-point shortest paths over a graph or view
//		• bfs        – reachability and connected components (island pruning)
//		• pollution  – pollutants, samples, limit sets and the per-request cache
//		• oracle     – pollution sources: ESRI ASCII rasters, OpenWeather, static
//		• compliance – node and path checks against tolerance-scaled limits
//		• refine     – the exclude-and-escalate search loop
//		• report     – summaries, exposure bands and GeoJSON output
//		• network    – OSM XML loading, travel-mode filters, snapping
//		• config     – TOML/YAML/env configuration
//		• server     – gin HTTP API with metrics and request limiting
//
// How a route is planned
//
//	The shortest path is computed first. Every interior junction on it is
//	checked against the limits; offenders are hidden and the search runs
//	again. When no path is left, the hidden set is cleared and the limits
//	are relaxed by the escalation factor (1.5 by default). The loop ends
//	with a compliant path, or reports the request infeasible once the
//	escalation cap is hit.
//
//	  S───A───T        A over limit → hide A → S───B───T
//	   \     /
//	    ──B──
//
// Quick start
//
//	airpath plan -c airpath.toml --from 52.4800,-1.9000 --to 52.4862,-1.8904
//	airpath serve -c airpath.toml
package airpath
