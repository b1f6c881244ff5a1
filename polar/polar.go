package polar

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrGlider = errors.New("invalid glider data")

// Glider is one row of the glider table.
type Glider struct {
	Name          string
	MassDryGross  float64
	MaxBallast    float64
	Speeds        [3]float64
	Sinks         [3]float64
	WingArea      float64
	Handicap      int
	FlapsSchedule []string
}

const (
	columnName = iota
	columnMass
	columnMaxBallast
	columnV1
	columnW1
	columnV2
	columnW2
	columnV3
	columnW3
	columnWingArea
	columnHandicap
	columnFlaps
)

// Rows is the lookup the glider table offers.
type Rows interface {
	Row(match string, column int, caseInsensitive bool) ([]string, error)
}

// Lookup finds a glider by name, ignoring case.
func Lookup(name string, gliders Rows) (Glider, error) {
	row, err := gliders.Row(name, columnName, true)
	if err != nil {
		return Glider{}, fmt.Errorf("%w: %q: %v", ErrGlider, name, err)
	}
	return FromRow(row)
}

func FromRow(row []string) (Glider, error) {
	if len(row) <= columnW3 {
		return Glider{}, fmt.Errorf("%w: %d columns, need at least %d", ErrGlider, len(row), columnW3+1)
	}
	g := Glider{Name: strings.TrimSpace(row[columnName])}

	var err error
	num := func(column int) float64 {
		if err != nil {
			return 0
		}
		var v float64
		v, err = strconv.ParseFloat(strings.TrimSpace(row[column]), 64)
		if err != nil {
			err = fmt.Errorf("%w: %s column %d: %v", ErrGlider, g.Name, column, err)
		}
		return v
	}

	g.MassDryGross = num(columnMass)
	g.MaxBallast = num(columnMaxBallast)
	for i := 0; i < 3; i++ {
		g.Speeds[i] = num(columnV1 + 2*i)
		g.Sinks[i] = num(columnW1 + 2*i)
	}
	if len(row) > columnWingArea && strings.TrimSpace(row[columnWingArea]) != "" {
		g.WingArea = num(columnWingArea)
	}
	if len(row) > columnHandicap && strings.TrimSpace(row[columnHandicap]) != "" {
		g.Handicap = int(num(columnHandicap))
	}
	if len(row) > columnFlaps && strings.TrimSpace(row[columnFlaps]) != "" {
		for _, f := range strings.Split(row[columnFlaps], ";") {
			g.FlapsSchedule = append(g.FlapsSchedule, strings.TrimSpace(f))
		}
	}
	if err != nil {
		return Glider{}, err
	}
	return g, nil
}

// WinPilot renders the glider as a WinPilot polar file.
func (g Glider) WinPilot() []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "* Polar for %s\r\n", g.Name)
	fmt.Fprintf(&b, "* MassDryGross[kg], MaxWaterBallast[liters], Speed1[km/h], Sink1[m/s], Speed2, Sink2, Speed3, Sink3")
	if g.WingArea > 0 {
		fmt.Fprintf(&b, ", WingArea[m2]")
	}
	fmt.Fprintf(&b, "\r\n")

	fmt.Fprintf(&b, "%6.0f,%6.0f", g.MassDryGross, g.MaxBallast)
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, ",%6.1f,%6.2f", g.Speeds[i], g.Sinks[i])
	}
	if g.WingArea > 0 {
		fmt.Fprintf(&b, ",%6.2f", g.WingArea)
	}
	fmt.Fprintf(&b, "\r\n")

	if len(g.FlapsSchedule) > 0 {
		fmt.Fprintf(&b, "*FLAPS %s\r\n", strings.Join(g.FlapsSchedule, ";"))
	}
	return b.Bytes()
}

// BallastPercent is the fill level of the water tanks, rounded to 5%.
func (g Glider) BallastPercent(water float64) int {
	if g.MaxBallast <= 0 || water <= 0 {
		return 0
	}
	p := int(math.Round(water/g.MaxBallast*20) * 5)
	if p > 100 {
		p = 100
	}
	return p
}
