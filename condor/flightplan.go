// Package condor reads Condor flight plans.
package condor

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

var (
	ErrInput   = errors.New("invalid flight plan")
	ErrVersion = errors.New("unsupported flight plan version")
)

// SupportedMajors are the flight plan format generations this reader knows.
var SupportedMajors = []int{1, 2}

type SectorKind int

const (
	Classic SectorKind = 0
	Window  SectorKind = 1
)

type SectorSpec struct {
	Kind   SectorKind
	Radius float64
	Angle  float64
	Width  float64
}

type Point struct {
	X float64
	Y float64
}

type TaskPoint struct {
	Name      string
	Position  Point
	Altitude  float64
	Airport   bool
	Sector    SectorSpec
	MinHeight float64
	MaxHeight float64
}

type PenaltyZone struct {
	Name    string
	Base    float64
	Top     float64
	Corners [4]Point
}

type Task struct {
	Landscape    string
	Points       []TaskPoint
	PenaltyZones []PenaltyZone
	AATMinTime   time.Duration
}

// AAT tells whether the task is an assigned area task.
func (t Task) AAT() bool {
	return t.AATMinTime > 0
}

type Weather struct {
	// WindDir is the direction the wind blows from, in degrees.
	WindDir float64
	// WindSpeed in m/s.
	WindSpeed float64
}

type Plane struct {
	Name  string
	Water float64
}

type FlightPlan struct {
	Version string
	Task    Task
	Weather Weather
	Plane   Plane
}

// Read parses and validates a flight plan.
func Read(r io.Reader) (*FlightPlan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	return parse(f)
}

func parse(f *ini.File) (*FlightPlan, error) {
	r := reader{f: f}

	version := r.str("Version", "Condor version")
	if r.err != nil {
		return nil, r.err
	}
	if err := checkVersion(version); err != nil {
		return nil, err
	}

	fp := &FlightPlan{Version: version}
	fp.Task.Landscape = r.str("Task", "Landscape")
	count := r.integer("Task", "Count")
	if r.err != nil {
		return nil, r.err
	}
	if count < 2 {
		return nil, fmt.Errorf("%w: Task/Count %d, need a takeoff and at least one task point", ErrInput, count)
	}

	for i := 0; i < count; i++ {
		tp := TaskPoint{
			Name:      r.str("Task", key("TPName", i)),
			Position:  Point{X: r.num("Task", key("TPPosX", i)), Y: r.num("Task", key("TPPosY", i))},
			Altitude:  r.num("Task", key("TPPosZ", i)),
			Airport:   r.optionalInteger("Task", key("TPAirport", i)) == 1,
			MinHeight: r.optionalNum("Task", key("TPAltitude", i)),
			MaxHeight: r.optionalNum("Task", key("TPHeight", i)),
			Sector: SectorSpec{
				Kind:   SectorKind(r.optionalInteger("Task", key("TPSectorType", i))),
				Radius: r.num("Task", key("TPRadius", i)),
				Angle:  r.num("Task", key("TPAngle", i)),
				Width:  r.optionalNum("Task", key("TPWidth", i)),
			},
		}
		fp.Task.Points = append(fp.Task.Points, tp)
	}

	zones := r.optionalInteger("Task", "PZCount")
	for i := 0; i < zones; i++ {
		pz := PenaltyZone{
			Name: r.optionalStr("Task", key("PZName", i)),
			Base: r.num("Task", key("PZBase", i)),
			Top:  r.num("Task", key("PZTop", i)),
		}
		if pz.Name == "" {
			pz.Name = fmt.Sprintf("Penalty zone %d", i+1)
		}
		for k := range pz.Corners {
			pz.Corners[k] = Point{
				X: r.num("Task", fmt.Sprintf("PZPosX%d_%d", i, k)),
				Y: r.num("Task", fmt.Sprintf("PZPosY%d_%d", i, k)),
			}
		}
		fp.Task.PenaltyZones = append(fp.Task.PenaltyZones, pz)
	}

	fp.Task.AATMinTime = time.Duration(r.optionalNum("GameOptions", "AATTime") * float64(time.Minute))

	fp.Weather.WindDir = r.optionalNum("Weather", "WindDir")
	fp.Weather.WindSpeed = r.optionalNum("Weather", "WindSpeed")

	fp.Plane.Name = r.optionalStr("Plane", "Name")
	fp.Plane.Water = r.optionalNum("Plane", "Water")

	if r.err != nil {
		return nil, r.err
	}
	return fp, nil
}

func checkVersion(version string) error {
	major, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(version, ".", 2)[0]))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrVersion, version)
	}
	for _, m := range SupportedMajors {
		if m == major {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrVersion, version)
}

func key(name string, i int) string {
	return name + strconv.Itoa(i)
}

// reader keeps the first lookup error so a whole section can be read before
// checking.
type reader struct {
	f   *ini.File
	err error
}

func (r *reader) lookup(section, name string) (*ini.Key, bool) {
	s, err := r.f.GetSection(section)
	if err != nil {
		return nil, false
	}
	k, err := s.GetKey(name)
	if err != nil {
		return nil, false
	}
	return k, true
}

func (r *reader) fail(format string, args ...interface{}) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]interface{}{ErrInput}, args...)...)
	}
}

func (r *reader) str(section, name string) string {
	k, ok := r.lookup(section, name)
	if !ok {
		r.fail("missing %s/%s", section, name)
		return ""
	}
	return strings.TrimSpace(k.String())
}

func (r *reader) optionalStr(section, name string) string {
	if k, ok := r.lookup(section, name); ok {
		return strings.TrimSpace(k.String())
	}
	return ""
}

func (r *reader) num(section, name string) float64 {
	k, ok := r.lookup(section, name)
	if !ok {
		r.fail("missing %s/%s", section, name)
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(k.String()), 64)
	if err != nil {
		r.fail("%s/%s: %v", section, name, err)
	}
	return v
}

func (r *reader) optionalNum(section, name string) float64 {
	if _, ok := r.lookup(section, name); !ok {
		return 0
	}
	return r.num(section, name)
}

func (r *reader) integer(section, name string) int {
	k, ok := r.lookup(section, name)
	if !ok {
		r.fail("missing %s/%s", section, name)
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(k.String()))
	if err != nil {
		r.fail("%s/%s: %v", section, name, err)
	}
	return v
}

func (r *reader) optionalInteger(section, name string) int {
	if _, ok := r.lookup(section, name); !ok {
		return 0
	}
	return r.integer(section, name)
}
