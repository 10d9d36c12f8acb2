// SPDX-License-Identifier: MIT

package pollution_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/airpath/pollution"
)

func TestParsePollutant(t *testing.T) {
	cases := map[string]pollution.Pollutant{
		"PM2.5": pollution.PM25, "pm25": pollution.PM25, "pm2_5": pollution.PM25,
		" pm10 ": pollution.PM10, "NO2": pollution.NO2,
	}
	for in, want := range cases {
		got, err := pollution.ParsePollutant(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := pollution.ParsePollutant("o3")
	assert.ErrorIs(t, err, pollution.ErrUnknownPollutant)

	assert.Equal(t, "PM2.5", pollution.PM25.String())
	assert.Equal(t, "no2", pollution.NO2.Key())
}

func TestSample(t *testing.T) {
	var s pollution.Sample
	assert.True(t, s.Unavailable())

	s.Set(pollution.PM10, math.NaN())
	assert.True(t, s.Unavailable(), "NaN must stay absent")

	s.Set(pollution.NO2, 33)
	v, ok := s.Get(pollution.NO2)
	require.True(t, ok)
	assert.Equal(t, 33.0, v)
	_, ok = s.Get(pollution.PM25)
	assert.False(t, ok)
	assert.Equal(t, map[string]float64{"no2": 33}, s.Map())

	mean, ok := pollution.Combined(pollution.NewSample(map[pollution.Pollutant]float64{
		pollution.PM25: 10, pollution.PM10: 20,
	}))
	require.True(t, ok)
	assert.InDelta(t, 15.0, mean, 1e-9)

	_, ok = pollution.Combined(pollution.Sample{})
	assert.False(t, ok)
}

func TestLimitSet(t *testing.T) {
	who := pollution.WHO2005()
	require.NoError(t, who.Validate())
	assert.Equal(t, 40.0, who.Limit(pollution.NO2))

	scaled := who.Scaled(1.5)
	assert.InDelta(t, 15.0, scaled.PM25, 1e-9)
	assert.InDelta(t, 30.0, scaled.PM10, 1e-9)

	bad := []pollution.LimitSet{
		{PM25: 0, PM10: 1, NO2: 1},
		{PM25: 1, PM10: -1, NO2: 1},
		{PM25: 1, PM10: 1, NO2: math.Inf(1)},
		{PM25: math.NaN(), PM10: 1, NO2: 1},
	}
	for _, l := range bad {
		assert.ErrorIs(t, l.Validate(), pollution.ErrBadLimit)
	}
}

type fakeSource map[pollution.Pollutant]error

func (f fakeSource) Concentration(_ context.Context, lat, lon float64, p pollution.Pollutant) (float64, error) {
	if err, ok := f[p]; ok {
		return 0, err
	}

	return lat + lon, nil
}

func TestFromSource(t *testing.T) {
	ctx := context.Background()
	pt := orb.Point{2, 1} // lon 2, lat 1

	s, err := pollution.FromSource(fakeSource{pollution.PM10: pollution.ErrUnavailable}).Sample(ctx, pt)
	require.NoError(t, err)
	v, ok := s.Get(pollution.PM25)
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
	_, ok = s.Get(pollution.PM10)
	assert.False(t, ok)

	boom := errors.New("boom")
	_, err = pollution.FromSource(fakeSource{
		pollution.PM25: boom, pollution.PM10: pollution.ErrUnavailable, pollution.NO2: boom,
	}).Sample(ctx, pt)
	assert.ErrorIs(t, err, boom)

	s, err = pollution.FromSource(fakeSource{
		pollution.PM25: pollution.ErrUnavailable, pollution.PM10: pollution.ErrUnavailable, pollution.NO2: pollution.ErrUnavailable,
	}).Sample(ctx, pt)
	require.NoError(t, err, "all-unavailable is not an error")
	assert.True(t, s.Unavailable())
}
