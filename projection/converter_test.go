package projection

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-bouts/nav-translator/latlon"
)

type fixed struct {
	lon, lat float64
	err      error
}

func (f fixed) XYToLon(x, y float64) (float64, error) { return f.lon, f.err }
func (f fixed) XYToLat(x, y float64) (float64, error) { return f.lat, f.err }

type rows map[string][]string

func (r rows) Row(match string, column int, caseInsensitive bool) ([]string, error) {
	if row, ok := r[match]; ok {
		return row, nil
	}
	return nil, errors.New("no match")
}

func TestQuantize(t *testing.T) {
	c, err := NewConverter(fixed{lon: 14.50194999999, lat: -46.0541666})
	require.NoError(t, err)

	lon, err := c.Longitude("0", "0")
	require.NoError(t, err)
	assert.InDelta(t, 14+30.117/60, lon.Value, 1e-12)
	assert.Equal(t, "014:30.117E", lon.FormatDDMM())

	lat, err := c.Latitude("0", "0")
	require.NoError(t, err)
	assert.InDelta(t, -(46 + 3.25/60), lat.Value, 1e-12)
}

func TestConverterErrors(t *testing.T) {
	_, err := NewConverter(nil)
	assert.ErrorIs(t, err, ErrConversion)

	c, err := NewConverter(fixed{lon: 1, lat: 1})
	require.NoError(t, err)
	_, err = c.Longitude("abc", "0")
	assert.ErrorIs(t, err, ErrConversion)
	_, err = c.Latitude("0", "")
	assert.ErrorIs(t, err, ErrConversion)

	c, err = NewConverter(fixed{err: errors.New("unavailable")})
	require.NoError(t, err)
	_, err = c.LongitudeOf(0, 0)
	assert.ErrorIs(t, err, ErrConversion)
}

func TestBind(t *testing.T) {
	sceneries := rows{
		"Slovenia3": {"Slovenia3", "Slovenia3.xcm", "1", "46.0", "14.0", "SI"},
		"Broken":    {"Broken", "Broken.xcm", "1"},
	}

	p, err := Bind("Slovenia3", sceneries)
	require.NoError(t, err)

	lat, err := p.XYToLat(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 46.0, lat)

	lon, err := p.XYToLon(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 14.0, lon)

	// one degree of latitude north
	lat, err = p.XYToLat(0, earthRadius*math.Pi/180)
	require.NoError(t, err)
	assert.InDelta(t, 47.0, lat, 1e-9)

	lon, err = p.XYToLon(1000, 0)
	require.NoError(t, err)
	assert.Greater(t, lon, 14.0)

	_, err = Bind("Unknown", sceneries)
	assert.ErrorIs(t, err, ErrConversion)
	_, err = Bind("Broken", sceneries)
	assert.ErrorIs(t, err, ErrConversion)
}

func TestConverterErrorChain(t *testing.T) {
	p, err := NewEquirectangular(Calibration{Landscape: "Slovenia3", OriginLat: 46, OriginLon: 14})
	require.NoError(t, err)
	c, err := NewConverter(p)
	require.NoError(t, err)

	_, err = c.LatitudeOf(0, 1e8)
	require.ErrorIs(t, err, ErrConversion)
	assert.Equal(t, 1, strings.Count(err.Error(), ErrConversion.Error()), err.Error())

	c, err = NewConverter(fixed{lon: 200, lat: 95})
	require.NoError(t, err)
	_, err = c.LongitudeOf(0, 0)
	assert.ErrorIs(t, err, ErrConversion)
	assert.ErrorIs(t, err, latlon.ErrCoordinate)
	_, err = c.LatitudeOf(0, 0)
	assert.ErrorIs(t, err, latlon.ErrCoordinate)
}
