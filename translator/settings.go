package translator

import (
	"errors"
	"time"

	"github.com/a-bouts/nav-translator/latlon"
)

var (
	// ErrCapability means the task cannot be expressed by the target.
	ErrCapability = errors.New("target capability exceeded")
	// ErrIO wraps failures opening or writing an output file.
	ErrIO = errors.New("output failed")
)

// ZoneType is the observation zone code of a start or finish.
type ZoneType int

const (
	ZoneCircle ZoneType = 0
	ZoneLine   ZoneType = 1
	ZoneSector ZoneType = 2
)

// TurnType is the uniform turn point sector code.
type TurnType int

const (
	TurnCircle TurnType = 0
	TurnFAI    TurnType = 1
	TurnLine   TurnType = 2
)

func (t TurnType) String() string {
	switch t {
	case TurnCircle:
		return "circle"
	case TurnFAI:
		return "FAI sector"
	case TurnLine:
		return "line"
	}
	return "unknown"
}

type AutoAdvance int

const (
	AdvanceManual   AutoAdvance = 0
	AdvanceAuto     AutoAdvance = 1
	AdvanceArm      AutoAdvance = 2
	AdvanceArmStart AutoAdvance = 3
)

type AatType int

const (
	AatCircle AatType = 0
	AatSector AatType = 1
)

// AatZone is the assigned area around an intermediate point of an AAT.
type AatZone struct {
	Type         AatType
	CircleRadius float64
	SectorRadius float64
	StartRadial  float64
	FinishRadial float64
}

// TaskSettings is the task shaped after what the targets can express.
type TaskSettings struct {
	AATEnabled bool
	AATMinTime time.Duration

	StartType      ZoneType
	StartRadius    float64
	StartMaxHeight float64

	// TurnType and TurnRadius apply to every non AAT intermediate point.
	TurnType   TurnType
	TurnRadius float64

	FinishType   ZoneType
	FinishRadius float64
	// FinishMinHeight is always 0: the targets want it above ground level
	// and the flight plan only carries heights above sea level.
	FinishMinHeight float64

	AutoAdvance         AutoAdvance
	MultipleStartPoints bool
}

type Waypoint struct {
	Number   int
	Position latlon.LatLon
	Altitude float64
	Name     string
	Comment  string
	Task     bool
	Airfield bool
}

// Shape is the geometry a task point was classified as.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeCircle
	ShapeSector
	ShapeLine
)

type ClassifiedPoint struct {
	Waypoint Waypoint
	Shape    Shape
	Radius   float64
	Angle    float64
	Aat      *AatZone
}

type Classification struct {
	Settings TaskSettings
	Points   []ClassifiedPoint
	Warnings []string
}

func (c *Classification) Waypoints() []Waypoint {
	wps := make([]Waypoint, len(c.Points))
	for i, p := range c.Points {
		wps[i] = p.Waypoint
	}
	return wps
}

// Length is the task distance through the point centres, in metres.
func (c *Classification) Length() float64 {
	d := 0.0
	for k := 1; k < len(c.Points); k++ {
		d += latlon.DistanceTo(c.Points[k-1].Waypoint.Position, c.Points[k].Waypoint.Position)
	}
	return d
}
