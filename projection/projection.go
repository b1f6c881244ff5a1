// Package projection converts simulator planar coordinates into geographic
// ones for a single terrain.
package projection

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const earthRadius = 6371e3

var ErrConversion = errors.New("conversion failed")

// Projection is bound to one terrain and maps planar metres to raw degrees.
type Projection interface {
	XYToLon(x, y float64) (float64, error)
	XYToLat(x, y float64) (float64, error)
}

// Calibration locates the planar origin of a terrain.
type Calibration struct {
	Landscape string
	OriginLat float64
	OriginLon float64
}

// Equirectangular projects a terrain as a plane tangent at its origin, x
// growing east and y growing north.
type Equirectangular struct {
	calibration Calibration
}

// Rows is the subset of the scenery table needed to bind a terrain.
type Rows interface {
	Row(match string, column int, caseInsensitive bool) ([]string, error)
}

const (
	columnOriginLat = 3
	columnOriginLon = 4
)

// Bind looks the landscape up in the scenery table and returns a projection
// for it. An unknown landscape fails here rather than on every conversion.
func Bind(landscape string, sceneries Rows) (*Equirectangular, error) {
	row, err := sceneries.Row(landscape, 0, true)
	if err != nil {
		return nil, fmt.Errorf("%w: terrain %q: %v", ErrConversion, landscape, err)
	}
	if len(row) <= columnOriginLon {
		return nil, fmt.Errorf("%w: terrain %q: missing calibration columns", ErrConversion, landscape)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(row[columnOriginLat]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: terrain %q origin latitude: %v", ErrConversion, landscape, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(row[columnOriginLon]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: terrain %q origin longitude: %v", ErrConversion, landscape, err)
	}
	return NewEquirectangular(Calibration{Landscape: landscape, OriginLat: lat, OriginLon: lon})
}

func NewEquirectangular(c Calibration) (*Equirectangular, error) {
	if c.OriginLat <= -90 || c.OriginLat >= 90 || c.OriginLon < -180 || c.OriginLon > 180 {
		return nil, fmt.Errorf("%w: terrain %q origin (%f,%f) out of range", ErrConversion, c.Landscape, c.OriginLat, c.OriginLon)
	}
	return &Equirectangular{calibration: c}, nil
}

func (e *Equirectangular) XYToLat(x, y float64) (float64, error) {
	lat := e.calibration.OriginLat + y/earthRadius*180/math.Pi
	if lat < -90 || lat > 90 {
		return 0, fmt.Errorf("%w: y=%f leaves the globe", ErrConversion, y)
	}
	return lat, nil
}

func (e *Equirectangular) XYToLon(x, y float64) (float64, error) {
	lat, err := e.XYToLat(x, y)
	if err != nil {
		return 0, err
	}
	φ := lat * math.Pi / 180
	if math.Abs(math.Cos(φ)) < 1e-12 {
		return e.calibration.OriginLon, nil
	}
	lon := e.calibration.OriginLon + x/(earthRadius*math.Cos(φ))*180/math.Pi
	for lon > 180 {
		lon -= 360
	}
	for lon <= -180 {
		lon += 360
	}
	return lon, nil
}
