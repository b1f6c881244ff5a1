package latlon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDDMM(t *testing.T) {
	lat, err := NewLatitude(46.054166)
	require.NoError(t, err)
	assert.Equal(t, "46:03.250N", lat.FormatDDMM())

	lon, err := NewLongitude(-14.5019)
	require.NoError(t, err)
	assert.Equal(t, "014:30.114W", lon.FormatDDMM())

	lat, err = NewLatitude(-5.99999999)
	require.NoError(t, err)
	assert.Equal(t, "06:00.000S", lat.FormatDDMM())
}

func TestFormatDDMMSS(t *testing.T) {
	lat, err := NewLatitude(46.054166)
	require.NoError(t, err)
	assert.Equal(t, "46:03:15 N", lat.FormatDDMMSS())

	lon, err := NewLongitude(8.9999)
	require.NoError(t, err)
	assert.Equal(t, "009:00:00 E", lon.FormatDDMMSS())
}

func TestCoordinateRange(t *testing.T) {
	_, err := NewLongitude(-180)
	assert.ErrorIs(t, err, ErrCoordinate)
	_, err = NewLongitude(180)
	assert.NoError(t, err)
	_, err = NewLatitude(90.5)
	assert.ErrorIs(t, err, ErrCoordinate)
}

func TestFormatRoundTrip(t *testing.T) {
	for v := -179.9; v <= 180; v += 0.0731 {
		c, err := NewLongitude(v)
		require.NoError(t, err)

		p, err := ParseDDMM(c.FormatDDMM(), Longitude)
		require.NoError(t, err, c.FormatDDMM())
		assert.LessOrEqual(t, math.Abs(p.Value-v)*60, 0.001, "DDMM %f", v)

		p, err = ParseDDMMSS(c.FormatDDMMSS(), Longitude)
		require.NoError(t, err, c.FormatDDMMSS())
		assert.LessOrEqual(t, math.Abs(p.Value-v)*3600, 0.5+1e-9, "DDMMSS %f", v)
	}
	for v := -90.0; v <= 90; v += 0.0417 {
		c, err := NewLatitude(v)
		require.NoError(t, err)

		p, err := ParseDDMM(c.FormatDDMM(), Latitude)
		require.NoError(t, err)
		assert.LessOrEqual(t, math.Abs(p.Value-v)*60, 0.001, "DDMM %f", v)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := ParseDDMM("46:03.250X", Latitude)
	assert.ErrorIs(t, err, ErrCoordinate)
	_, err = ParseDDMM("46.03N", Latitude)
	assert.ErrorIs(t, err, ErrCoordinate)
	_, err = ParseDDMMSS("46:03 N", Latitude)
	assert.ErrorIs(t, err, ErrCoordinate)
	_, err = ParseDDMM("014:30.000E", Latitude)
	assert.ErrorIs(t, err, ErrCoordinate)
}
