package latlon

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Axis tells whether a Coordinate is a longitude or a latitude.
type Axis int

const (
	Longitude Axis = iota
	Latitude
)

var ErrCoordinate = errors.New("invalid coordinate")

// Coordinate is a signed angle in degrees on one axis.
type Coordinate struct {
	Value float64
	Axis  Axis
}

func NewLongitude(v float64) (Coordinate, error) {
	if math.IsNaN(v) || v <= -180 || v > 180 {
		return Coordinate{}, fmt.Errorf("%w: longitude %f out of (-180,180]", ErrCoordinate, v)
	}
	return Coordinate{Value: v, Axis: Longitude}, nil
}

func NewLatitude(v float64) (Coordinate, error) {
	if math.IsNaN(v) || v < -90 || v > 90 {
		return Coordinate{}, fmt.Errorf("%w: latitude %f out of [-90,90]", ErrCoordinate, v)
	}
	return Coordinate{Value: v, Axis: Latitude}, nil
}

func (c Coordinate) hemisphere() byte {
	if c.Axis == Latitude {
		if c.Value < 0 {
			return 'S'
		}
		return 'N'
	}
	if c.Value < 0 {
		return 'W'
	}
	return 'E'
}

func (c Coordinate) degreesFormat() string {
	if c.Axis == Latitude {
		return "%02d"
	}
	return "%03d"
}

// FormatDDMM renders the coordinate as degrees and decimal minutes with three
// decimals, e.g. 46:03.250N or 014:30.117E.
func (c Coordinate) FormatDDMM() string {
	v := math.Abs(c.Value)
	deg := int(v)
	m := int(math.Round((v - float64(deg)) * 60000))
	if m >= 60000 {
		deg++
		m -= 60000
	}
	return fmt.Sprintf(c.degreesFormat()+":%02d.%03d%c", deg, m/1000, m%1000, c.hemisphere())
}

// FormatDDMMSS renders the coordinate as degrees, minutes and whole seconds
// with the hemisphere after a space, e.g. 46:03:15 N.
func (c Coordinate) FormatDDMMSS() string {
	v := math.Abs(c.Value)
	deg := int(v)
	s := int(math.Round((v - float64(deg)) * 3600))
	if s >= 3600 {
		deg++
		s -= 3600
	}
	return fmt.Sprintf(c.degreesFormat()+":%02d:%02d %c", deg, s/60, s%60, c.hemisphere())
}

func (c Coordinate) String() string {
	return c.FormatDDMM()
}

func sign(axis Axis, hemi byte) (float64, error) {
	switch {
	case axis == Latitude && hemi == 'N', axis == Longitude && hemi == 'E':
		return 1, nil
	case axis == Latitude && hemi == 'S', axis == Longitude && hemi == 'W':
		return -1, nil
	}
	return 0, fmt.Errorf("%w: hemisphere %q", ErrCoordinate, hemi)
}

func build(axis Axis, v float64) (Coordinate, error) {
	if axis == Latitude {
		return NewLatitude(v)
	}
	if v == -180 {
		v = 180
	}
	return NewLongitude(v)
}

// ParseDDMM reads a value rendered by FormatDDMM.
func ParseDDMM(s string, axis Axis) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrCoordinate, s)
	}
	sg, err := sign(axis, s[len(s)-1])
	if err != nil {
		return Coordinate{}, err
	}
	parts := strings.Split(strings.TrimSpace(s[:len(s)-1]), ":")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrCoordinate, s)
	}
	deg, err := strconv.Atoi(parts[0])
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q: %v", ErrCoordinate, s, err)
	}
	min, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q: %v", ErrCoordinate, s, err)
	}
	return build(axis, sg*(float64(deg)+min/60))
}

// ParseDDMMSS reads a value rendered by FormatDDMMSS.
func ParseDDMMSS(s string, axis Axis) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrCoordinate, s)
	}
	sg, err := sign(axis, s[len(s)-1])
	if err != nil {
		return Coordinate{}, err
	}
	parts := strings.Split(strings.TrimSpace(s[:len(s)-1]), ":")
	if len(parts) != 3 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrCoordinate, s)
	}
	var f [3]int
	for i, p := range parts {
		if f[i], err = strconv.Atoi(p); err != nil {
			return Coordinate{}, fmt.Errorf("%w: %q: %v", ErrCoordinate, s, err)
		}
	}
	return build(axis, sg*(float64(f[0])+float64(f[1])/60+float64(f[2])/3600))
}
