// SPDX-License-Identifier: MIT

package oracle_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/airpath/oracle"
	"github.com/katalvlaran/airpath/pollution"
)

// sampleGrid covers lon [-2, -1.96), lat [52, 52.02) with 0.01° cells.
const sampleGrid = `ncols 4
nrows 2
xllcorner -2.0
yllcorner 52.0
cellsize 0.01
NODATA_value -9999
1 2 3 4
5 6 -9999 8
`

func TestLoadASCIIGrid(t *testing.T) {
	g, err := oracle.LoadASCIIGrid(strings.NewReader(sampleGrid))
	require.NoError(t, err)
	assert.Equal(t, 4, g.NCols)
	assert.Equal(t, 2, g.NRows)
	assert.InDelta(t, -1.96, g.Bound.Max.Lon(), 1e-9)
	assert.InDelta(t, 52.02, g.Bound.Max.Lat(), 1e-9)

	cases := []struct {
		name string
		pt   orb.Point
		want float64
	}{
		{"north-west cell", orb.Point{-1.995, 52.015}, 1},
		{"north-east cell", orb.Point{-1.965, 52.015}, 4},
		{"south-west cell", orb.Point{-1.995, 52.005}, 5},
		{"south-east cell", orb.Point{-1.961, 52.001}, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := g.At(tc.pt)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}

	_, err = g.At(orb.Point{-1.975, 52.005})
	assert.ErrorIs(t, err, pollution.ErrUnavailable, "NODATA cell")
	_, err = g.At(orb.Point{0, 0})
	assert.ErrorIs(t, err, pollution.ErrUnavailable, "outside extent")
}

func TestLoadASCIIGrid_CenterRegistration(t *testing.T) {
	src := "NCOLS 1\nNROWS 1\nXLLCENTER 0.5\nYLLCENTER 0.5\nCELLSIZE 1\n7\n"
	g, err := oracle.LoadASCIIGrid(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, g.Bound)
	assert.False(t, g.HasNoData)
}

func TestLoadASCIIGrid_Malformed(t *testing.T) {
	cases := map[string]string{
		"too few cells":    "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n",
		"too many cells":   "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n",
		"bad header":       "ncols x\n",
		"no origin":        "ncols 1\nnrows 1\ncellsize 1\n1\n",
		"bad cell":         "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\nabc\n",
		"zero cellsize":    "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 0\n1\n",
		"fractional ncols": "ncols 2.5\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n",
		"negative nrows":   "ncols 1\nnrows -1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n",
		"huge dimension":   "ncols 1e300\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n",
		"huge grid":        "ncols 100000\nnrows 100000\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := oracle.LoadASCIIGrid(strings.NewReader(src))
			assert.ErrorIs(t, err, oracle.ErrBadGrid)
		})
	}
}

func TestLoadGridDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pm25.asc"), []byte(sampleGrid), 0o600))

	gs, err := oracle.LoadGridDir(dir)
	require.NoError(t, err)
	require.Len(t, gs, 1)

	s, err := gs.Sample(context.Background(), orb.Point{-1.995, 52.015})
	require.NoError(t, err)
	v, ok := s.Get(pollution.PM25)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	_, ok = s.Get(pollution.NO2)
	assert.False(t, ok, "no NO2 raster loaded")

	_, err = gs.Concentration(context.Background(), 52.015, -1.995, pollution.PM10)
	assert.ErrorIs(t, err, pollution.ErrUnavailable)

	_, err = oracle.LoadGridDir(t.TempDir())
	assert.ErrorIs(t, err, oracle.ErrNoGrids)

	bad := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bad, "no2.asc"), []byte("ncols 1\n"), 0o600))
	_, err = oracle.LoadGridDir(bad)
	assert.ErrorIs(t, err, oracle.ErrBadGrid)
}
