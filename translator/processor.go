package translator

import (
	"fmt"
	"math"

	"github.com/a-bouts/nav-translator/condor"
	"github.com/a-bouts/nav-translator/latlon"
)

// Converter maps flight plan coordinates to geographic ones.
type Converter interface {
	LatitudeOf(x, y float64) (latlon.Coordinate, error)
	LongitudeOf(x, y float64) (latlon.Coordinate, error)
}

// Capabilities describe what a target task format can hold.
type Capabilities struct {
	MaxTaskPoints  int
	MaxStartPoints int
	// PerPointSectors is set when every turn point carries its own zone, so
	// the uniform turn type is informative only.
	PerPointSectors bool
}

type processor struct {
	task    condor.Task
	conv    Converter
	caps    Capabilities
	result  *Classification
	turnSet bool
}

// Classify walks the task points once, dropping the takeoff, and shapes them
// for a target with the given capabilities.
func Classify(task condor.Task, conv Converter, caps Capabilities, advance AutoAdvance) (*Classification, error) {
	n := len(task.Points)
	if n < 2 {
		return nil, fmt.Errorf("%w: task has %d points, need a takeoff and a task point", condor.ErrInput, n)
	}
	if n-1 > caps.MaxTaskPoints {
		return nil, fmt.Errorf("%w: %d task points, target supports %d", ErrCapability, n-1, caps.MaxTaskPoints)
	}

	p := processor{
		task: task,
		conv: conv,
		caps: caps,
		result: &Classification{
			Settings: TaskSettings{
				AATEnabled:  task.AAT(),
				AATMinTime:  task.AATMinTime,
				AutoAdvance: advance,
			},
		},
	}

	for i := 1; i < n; i++ {
		wp, err := p.waypoint(i)
		if err != nil {
			return nil, err
		}
		p.result.Points = append(p.result.Points, ClassifiedPoint{Waypoint: wp})
	}
	for i := 1; i < n; i++ {
		if err := p.classify(i); err != nil {
			return nil, err
		}
	}
	return p.result, nil
}

func (p *processor) warn(format string, args ...interface{}) {
	p.result.Warnings = append(p.result.Warnings, fmt.Sprintf(format, args...))
}

func (p *processor) first(i int) bool { return i == 1 }
func (p *processor) last(i int) bool  { return i == len(p.task.Points)-1 }

func (p *processor) waypoint(i int) (Waypoint, error) {
	tp := p.task.Points[i]

	var name string
	switch {
	case p.first(i):
		name = "S:" + tp.Name
	case p.last(i):
		name = "F:" + tp.Name
	default:
		name = fmt.Sprintf("%d:%s", i-1, tp.Name)
	}

	alt := tp.Altitude
	if tp.MinHeight != 0 {
		alt = tp.MinHeight
	}

	lat, err := p.conv.LatitudeOf(tp.Position.X, tp.Position.Y)
	if err != nil {
		return Waypoint{}, fmt.Errorf("TP %d (%s): %w", i, tp.Name, err)
	}
	lon, err := p.conv.LongitudeOf(tp.Position.X, tp.Position.Y)
	if err != nil {
		return Waypoint{}, fmt.Errorf("TP %d (%s): %w", i, tp.Name, err)
	}

	return Waypoint{
		Number:   i,
		Position: latlon.LatLon{Lat: lat.Value, Lon: lon.Value},
		Altitude: alt,
		Name:     name,
		Comment:  tp.Name,
		Task:     true,
		Airfield: tp.Airport,
	}, nil
}

// position of task point i; the takeoff has no waypoint.
func (p *processor) position(i int) latlon.LatLon {
	return p.result.Points[i-1].Waypoint.Position
}

func (p *processor) shape(i int) (Shape, error) {
	tp := p.task.Points[i]
	switch tp.Sector.Angle {
	case 360:
		return ShapeCircle, nil
	case 90:
		return ShapeSector, nil
	case 180:
		return ShapeLine, nil
	case 270:
		p.warn("TP %d (%s): 270° sectors are not supported, using a circle", i, tp.Name)
		return ShapeCircle, nil
	}
	return ShapeNone, fmt.Errorf("%w: TP %d (%s): unsupported sector angle %g", condor.ErrInput, i, tp.Name, tp.Sector.Angle)
}

func zoneType(s Shape) ZoneType {
	switch s {
	case ShapeLine:
		return ZoneLine
	case ShapeSector:
		return ZoneSector
	}
	return ZoneCircle
}

func turnType(s Shape) TurnType {
	switch s {
	case ShapeLine:
		return TurnLine
	case ShapeSector:
		return TurnFAI
	}
	return TurnCircle
}

func (p *processor) classify(i int) error {
	tp := p.task.Points[i]
	cp := &p.result.Points[i-1]
	cp.Radius = tp.Sector.Radius
	cp.Angle = tp.Sector.Angle

	switch tp.Sector.Kind {
	case condor.Window:
		p.warn("TP %d (%s): window sectors are not supported by any target", i, tp.Name)
		cp.Shape = ShapeNone
		return nil
	case condor.Classic:
	default:
		return fmt.Errorf("%w: TP %d (%s): unsupported sector type %d", condor.ErrInput, i, tp.Name, tp.Sector.Kind)
	}

	shape, err := p.shape(i)
	if err != nil {
		return err
	}
	cp.Shape = shape

	s := &p.result.Settings
	switch {
	case !p.first(i) && !p.last(i) && s.AATEnabled:
		cp.Aat = p.area(i, shape)
	case p.first(i) || p.last(i):
		if p.first(i) {
			s.StartType = zoneType(shape)
			s.StartRadius = tp.Sector.Radius
			s.StartMaxHeight = tp.MaxHeight
		}
		if p.last(i) {
			s.FinishType = zoneType(shape)
			s.FinishRadius = tp.Sector.Radius
			s.FinishMinHeight = 0
		}
	default:
		p.turn(i, turnType(shape), tp.Sector.Radius)
	}
	return nil
}

func (p *processor) area(i int, shape Shape) *AatZone {
	tp := p.task.Points[i]
	if shape == ShapeCircle {
		return &AatZone{Type: AatCircle, CircleRadius: tp.Sector.Radius}
	}

	here := p.position(i)
	next := latlon.Bearing(p.position(i+1), here)
	prev := next
	if i > 2 {
		prev = latlon.Bearing(p.position(i-1), here)
	}
	start, finish := latlon.BisectorRadials(prev, next, tp.Sector.Angle)
	return &AatZone{
		Type:         AatSector,
		SectorRadius: tp.Sector.Radius,
		StartRadial:  start,
		FinishRadial: finish,
	}
}

func (p *processor) turn(i int, t TurnType, radius float64) {
	s := &p.result.Settings
	if !p.turnSet {
		s.TurnType = t
		s.TurnRadius = radius
		p.turnSet = true
		return
	}
	if t == s.TurnType && radius == s.TurnRadius {
		return
	}
	if !p.caps.PerPointSectors {
		p.warn("TP %d (%s): TPs not homogeneous, %s %gm differs from %s %gm",
			i, p.task.Points[i].Name, t, radius, s.TurnType, s.TurnRadius)
	}
	if t == TurnFAI {
		s.TurnType = TurnFAI
	}
	s.TurnRadius = math.Min(s.TurnRadius, radius)
}
