// SPDX-License-Identifier: MIT

// Package oracle provides concrete pollution oracles for the planner:
//
//   - GridSet samples regular lon/lat rasters (ESRI ASCII grids), one per
//     pollutant. Coordinates outside the raster or on NODATA cells report
//     pollution.ErrUnavailable.
//   - OpenWeather queries the OpenWeather air-pollution endpoint. Requests are
//     rate limited and concurrent lookups of the same coordinate are collapsed.
//   - Static serves fixed samples from memory.
//
// All three satisfy pollution.Oracle; GridSet additionally satisfies
// pollution.Source.
package oracle
