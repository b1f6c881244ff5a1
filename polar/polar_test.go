package polar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rows [][]string

func (r rows) Row(match string, column int, caseInsensitive bool) ([]string, error) {
	for _, row := range r {
		if row[column] == match {
			return row, nil
		}
	}
	return nil, errors.New("no match")
}

var asw28 = []string{"ASW-28", "325", "200", "90", "-0.6", "130", "-0.95", "180", "-2.1", "10.5", "108", ""}

func TestLookup(t *testing.T) {
	g, err := Lookup("ASW-28", rows{asw28})
	require.NoError(t, err)
	assert.Equal(t, 325.0, g.MassDryGross)
	assert.Equal(t, [3]float64{90, 130, 180}, g.Speeds)
	assert.Equal(t, [3]float64{-0.6, -0.95, -2.1}, g.Sinks)
	assert.Equal(t, 108, g.Handicap)
	assert.Empty(t, g.FlapsSchedule)

	_, err = Lookup("Ka-8", rows{asw28})
	assert.ErrorIs(t, err, ErrGlider)
}

func TestFromRowErrors(t *testing.T) {
	_, err := FromRow([]string{"ASW-28", "325"})
	assert.ErrorIs(t, err, ErrGlider)

	_, err = FromRow([]string{"ASW-28", "325", "x", "90", "-0.6", "130", "-0.95", "180", "-2.1"})
	assert.ErrorIs(t, err, ErrGlider)
}

func TestWinPilot(t *testing.T) {
	g, err := FromRow(asw28)
	require.NoError(t, err)

	want := "* Polar for ASW-28\r\n" +
		"* MassDryGross[kg], MaxWaterBallast[liters], Speed1[km/h], Sink1[m/s], Speed2, Sink2, Speed3, Sink3, WingArea[m2]\r\n" +
		"   325,   200,  90.0, -0.60, 130.0, -0.95, 180.0, -2.10, 10.50\r\n"
	assert.Equal(t, want, string(g.WinPilot()))

	g.WingArea = 0
	g.FlapsSchedule = []string{"-2:200", "0:160", "8:110"}
	want = "* Polar for ASW-28\r\n" +
		"* MassDryGross[kg], MaxWaterBallast[liters], Speed1[km/h], Sink1[m/s], Speed2, Sink2, Speed3, Sink3\r\n" +
		"   325,   200,  90.0, -0.60, 130.0, -0.95, 180.0, -2.10\r\n" +
		"*FLAPS -2:200;0:160;8:110\r\n"
	assert.Equal(t, want, string(g.WinPilot()))
}

func TestBallastPercent(t *testing.T) {
	g := Glider{MaxBallast: 200}
	assert.Equal(t, 0, g.BallastPercent(0))
	assert.Equal(t, 50, g.BallastPercent(100))
	assert.Equal(t, 35, g.BallastPercent(69))
	assert.Equal(t, 100, g.BallastPercent(250))
	assert.Equal(t, 0, Glider{}.BallastPercent(50))
}
