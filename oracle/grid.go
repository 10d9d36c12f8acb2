// SPDX-License-Identifier: MIT
//
// File: grid.go
// Role: ESRI ASCII raster loading and point sampling.
// Concurrency:
//   - Grid and GridSet are immutable after loading and safe for concurrent readers.

package oracle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/katalvlaran/airpath/pollution"
)

// Grid is a north-up raster of concentrations on a regular lon/lat lattice.
// Values are stored row-major starting from the northern edge.
type Grid struct {
	NCols, NRows int
	CellSize     float64
	Bound        orb.Bound // outer cell edges
	NoData       float64
	HasNoData    bool
	Values       []float64
}

// At returns the value of the cell containing pt.
// Points outside the raster or on NODATA cells yield pollution.ErrUnavailable.
func (g *Grid) At(pt orb.Point) (float64, error) {
	if g == nil || !g.Bound.Contains(pt) {
		return 0, pollution.ErrUnavailable
	}
	col := int((pt.Lon() - g.Bound.Min.Lon()) / g.CellSize)
	row := int((g.Bound.Max.Lat() - pt.Lat()) / g.CellSize)
	// Points on the east or south edge belong to the last cell.
	col = min(col, g.NCols-1)
	row = min(row, g.NRows-1)

	v := g.Values[row*g.NCols+col]
	if (g.HasNoData && v == g.NoData) || math.IsNaN(v) {
		return 0, pollution.ErrUnavailable
	}

	return v, nil
}

// maxGridCells caps ncols*nrows before the value slice is allocated.
const maxGridCells = 1 << 25

// dimension reads a positive integral header such as ncols.
func dimension(header map[string]float64, key string) (int, error) {
	v := header[key]
	if v <= 0 || v != math.Trunc(v) || v > maxGridCells {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %v", ErrBadGrid, key, v)
	}

	return int(v), nil
}

// LoadASCIIGrid parses an ESRI ASCII grid. Header keys are case-insensitive;
// both corner and centre registration are accepted.
func LoadASCIIGrid(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	header := make(map[string]float64, 6)
	var first string
	for sc.Scan() {
		key := strings.ToLower(sc.Text())
		switch key {
		case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter", "cellsize", "nodata_value":
		default:
			first = sc.Text()
		}
		if first != "" {
			break
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: header %q has no value", ErrBadGrid, key)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: header %q: %v", ErrBadGrid, key, err)
		}
		header[key] = v
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "oracle: read grid")
	}

	ncols, err := dimension(header, "ncols")
	if err != nil {
		return nil, err
	}
	nrows, err := dimension(header, "nrows")
	if err != nil {
		return nil, err
	}
	if ncols*nrows > maxGridCells {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrBadGrid, ncols, nrows, maxGridCells)
	}
	g := &Grid{NCols: ncols, NRows: nrows, CellSize: header["cellsize"]}
	if g.CellSize <= 0 {
		return nil, fmt.Errorf("%w: cellsize must be positive", ErrBadGrid)
	}
	if nd, ok := header["nodata_value"]; ok {
		g.NoData, g.HasNoData = nd, true
	}

	xll, xok := header["xllcorner"]
	yll, yok := header["yllcorner"]
	if xc, ok := header["xllcenter"]; ok && !xok {
		xll, xok = xc-g.CellSize/2, true
	}
	if yc, ok := header["yllcenter"]; ok && !yok {
		yll, yok = yc-g.CellSize/2, true
	}
	if !xok || !yok {
		return nil, fmt.Errorf("%w: missing lower-left registration", ErrBadGrid)
	}
	g.Bound = orb.Bound{
		Min: orb.Point{xll, yll},
		Max: orb.Point{xll + float64(g.NCols)*g.CellSize, yll + float64(g.NRows)*g.CellSize},
	}

	want := g.NCols * g.NRows
	g.Values = make([]float64, 0, want)
	if first != "" {
		v, err := strconv.ParseFloat(first, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cell 0: %v", ErrBadGrid, err)
		}
		g.Values = append(g.Values, v)
	}
	for sc.Scan() {
		if len(g.Values) == want {
			return nil, fmt.Errorf("%w: more than %d cells", ErrBadGrid, want)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %v", ErrBadGrid, len(g.Values), err)
		}
		g.Values = append(g.Values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "oracle: read grid")
	}
	if len(g.Values) != want {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrBadGrid, len(g.Values), want)
	}

	return g, nil
}

// GridSet holds one raster per pollutant. A pollutant without a raster is
// always unavailable.
type GridSet map[pollution.Pollutant]*Grid

// Concentration implements pollution.Source.
func (gs GridSet) Concentration(_ context.Context, lat, lon float64, p pollution.Pollutant) (float64, error) {
	g, ok := gs[p]
	if !ok {
		return 0, pollution.ErrUnavailable
	}

	return g.At(orb.Point{lon, lat})
}

// Sample implements pollution.Oracle.
func (gs GridSet) Sample(ctx context.Context, pt orb.Point) (pollution.Sample, error) {
	return pollution.FromSource(gs).Sample(ctx, pt)
}

// LoadGridDir loads "<key>.asc" for each pollutant key (pm25, pm10, no2)
// found in dir. Missing files are skipped; a directory with none fails with ErrNoGrids.
func LoadGridDir(dir string) (GridSet, error) {
	gs := make(GridSet, len(pollution.All))
	for _, p := range pollution.All {
		path := filepath.Join(dir, p.Key()+".asc")
		g, err := loadGridFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		gs[p] = g
	}
	if len(gs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoGrids, dir)
	}

	return gs, nil
}

func loadGridFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := LoadASCIIGrid(f)
	if err != nil {
		return nil, errors.Wrapf(err, "oracle: load %s", path)
	}

	return g, nil
}
