package projection

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/a-bouts/nav-translator/latlon"
)

// Converter turns simulator coordinates into quantized geographic ones.
type Converter struct {
	p Projection
}

func NewConverter(p Projection) (*Converter, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: no projection bound", ErrConversion)
	}
	return &Converter{p: p}, nil
}

// quantize keeps whole degrees and rounds the minutes to 1/1000 to drop the
// projection's floating noise.
func quantize(raw float64) float64 {
	deg := math.Trunc(raw)
	min := math.Round((raw-deg)*60000) / 1000
	return deg + min/60
}

func parse(x, y string) (float64, float64, error) {
	fx, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: x %q: %v", ErrConversion, x, err)
	}
	fy, err := strconv.ParseFloat(strings.TrimSpace(y), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: y %q: %v", ErrConversion, y, err)
	}
	return fx, fy, nil
}

// conversion tags err with ErrConversion once, keeping its own chain.
func conversion(err error) error {
	if errors.Is(err, ErrConversion) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrConversion, err)
}

func (c *Converter) LongitudeOf(x, y float64) (latlon.Coordinate, error) {
	raw, err := c.p.XYToLon(x, y)
	if err != nil {
		return latlon.Coordinate{}, conversion(err)
	}
	lon := quantize(raw)
	if lon == -180 {
		lon = 180
	}
	co, err := latlon.NewLongitude(lon)
	if err != nil {
		return latlon.Coordinate{}, conversion(err)
	}
	return co, nil
}

func (c *Converter) LatitudeOf(x, y float64) (latlon.Coordinate, error) {
	raw, err := c.p.XYToLat(x, y)
	if err != nil {
		return latlon.Coordinate{}, conversion(err)
	}
	co, err := latlon.NewLatitude(quantize(raw))
	if err != nil {
		return latlon.Coordinate{}, conversion(err)
	}
	return co, nil
}

func (c *Converter) Longitude(x, y string) (latlon.Coordinate, error) {
	fx, fy, err := parse(x, y)
	if err != nil {
		return latlon.Coordinate{}, err
	}
	return c.LongitudeOf(fx, fy)
}

func (c *Converter) Latitude(x, y string) (latlon.Coordinate, error) {
	fx, fy, err := parse(x, y)
	if err != nil {
		return latlon.Coordinate{}, err
	}
	return c.LatitudeOf(fx, fy)
}
