package translator

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-translator/condor"
	"github.com/a-bouts/nav-translator/polar"
	"github.com/a-bouts/nav-translator/profile"
)

// Rows is a lookup table such as the scenery or glider list.
type Rows interface {
	Row(match string, column int, caseInsensitive bool) ([]string, error)
}

const (
	sceneryMap       = 1
	sceneryUTCOffset = 2
	sceneryCountry   = 5
)

var baudRates = []int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200}

type Options struct {
	ComPort     int
	BaudRate    int
	MapsDir     string
	AutoAdvance AutoAdvance
}

// Translator runs the translation calls of one flight plan for one target.
type Translator struct {
	Target    Target
	Plan      *condor.FlightPlan
	Converter Converter
	Sceneries Rows
	Gliders   Rows
	Profile   *profile.Profile
	Sink      Sink
	Options   Options
	Log       log.FieldLogger

	files    []string
	warnings []string
}

func (t *Translator) logger(call string) log.FieldLogger {
	l := t.Log
	if l == nil {
		l = log.StandardLogger()
	}
	return l.WithFields(log.Fields{"target": t.Target.Name, "call": call})
}

func (t *Translator) warn(call string, msg string) {
	t.logger(call).Warn(msg)
	t.warnings = append(t.warnings, msg)
}

func (t *Translator) write(data []byte, paths ...string) error {
	if err := fanOut(t.Sink, data, paths...); err != nil {
		return err
	}
	t.files = append(t.files, paths...)
	return nil
}

func (t *Translator) Warnings() []string {
	return t.warnings
}

func (t *Translator) Files() []string {
	return t.files
}

func (t *Translator) scenery() ([]string, error) {
	row, err := t.Sceneries.Row(t.Plan.Task.Landscape, 0, true)
	if err != nil {
		return nil, fmt.Errorf("%w: scenery %q: %v", condor.ErrInput, t.Plan.Task.Landscape, err)
	}
	return row, nil
}

func column(row []string, c int) string {
	if c < len(row) {
		return strings.TrimSpace(row[c])
	}
	return ""
}

// GPS points the program at the simulator's NMEA output.
func (t *Translator) GPS() error {
	if t.Options.ComPort < 1 {
		return fmt.Errorf("%w: COM port %d", condor.ErrInput, t.Options.ComPort)
	}
	speed := -1
	for i, b := range baudRates {
		if b == t.Options.BaudRate {
			speed = i
		}
	}
	if speed < 0 {
		return fmt.Errorf("%w: baud rate %d", condor.ErrInput, t.Options.BaudRate)
	}
	t.Profile.Set("DeviceA", "Condor")
	t.Profile.SetInt("Port1Index", t.Options.ComPort-1)
	t.Profile.SetInt("Speed1Index", speed)
	return nil
}

func (t *Translator) SceneryMap() error {
	row, err := t.scenery()
	if err != nil {
		return err
	}
	name := column(row, sceneryMap)
	if name == "" {
		return fmt.Errorf("%w: scenery %q has no map file", condor.ErrInput, t.Plan.Task.Landscape)
	}
	dir := t.Options.MapsDir
	if dir == "" {
		dir = t.Target.Dir
	}
	path := filepath.Join(dir, name)
	if !t.Sink.Exists(path) {
		t.warn("scenery-map", fmt.Sprintf("map file %s not found, download it before flying", path))
	}
	t.Profile.Set("MapFile", path)
	return nil
}

func (t *Translator) SceneryTime() error {
	row, err := t.scenery()
	if err != nil {
		return err
	}
	hours, err := strconv.ParseFloat(column(row, sceneryUTCOffset), 64)
	if err != nil {
		return fmt.Errorf("%w: scenery %q UTC offset: %v", condor.ErrInput, t.Plan.Task.Landscape, err)
	}
	t.Profile.SetInt("UTCOffset", int(math.Round(hours*3600)))
	return nil
}

func (t *Translator) Glider() error {
	g, err := polar.Lookup(t.Plan.Plane.Name, t.Gliders)
	if err != nil {
		return fmt.Errorf("%w: %v", condor.ErrInput, err)
	}
	path := t.Target.path(polarFile)
	if err := t.write(g.WinPilot(), path); err != nil {
		return err
	}
	t.Profile.Set("PolarFile", path)
	if g.Handicap > 0 {
		t.Profile.SetInt("Handicap", g.Handicap)
	}
	if p := g.BallastPercent(t.Plan.Plane.Water); p > 0 {
		t.warn("glider", fmt.Sprintf("set the ballast to %d%% by hand (%.0f l of %.0f l)", p, t.Plan.Plane.Water, g.MaxBallast))
	}
	return nil
}

func (t *Translator) Task() error {
	c, err := Classify(t.Plan.Task, t.Converter, t.Target.Kind.Capabilities(), t.Options.AutoAdvance)
	if err != nil {
		return err
	}
	for _, w := range c.Warnings {
		t.warn("task", w)
	}

	country := ""
	if row, err := t.scenery(); err == nil {
		country = column(row, sceneryCountry)
	}
	data, err := t.Target.EncodeTask(c, country)
	if err != nil {
		return err
	}
	paths := t.Target.TaskPaths()
	if err := t.write(data, paths...); err != nil {
		return err
	}
	wpPath := t.Target.path(waypointFile)
	if err := t.write(EncodeWaypoints(c.Waypoints()), wpPath); err != nil {
		return err
	}

	s := c.Settings
	p := t.Profile
	p.SetInt("StartLine", int(s.StartType))
	p.SetInt("StartRadius", int(meters(s.StartRadius)))
	p.SetInt("StartMaxHeight", int(meters(s.StartMaxHeight)))
	p.SetInt("FinishLine", int(s.FinishType))
	p.SetInt("FinishRadius", int(meters(s.FinishRadius)))
	p.SetInt("FinishMinHeight", int(meters(s.FinishMinHeight)))
	p.SetInt("FAISector", int(s.TurnType))
	p.SetInt("Radius", int(meters(s.TurnRadius)))
	p.SetInt("AutoAdvance", int(s.AutoAdvance))
	p.SetBool("AATEnabled", s.AATEnabled)
	p.Set("WPFile", wpPath)
	p.Set("TaskFile", paths[0])

	t.logger("task").Infof("%d waypoints, %.1f km, start %d, turn %s %gm, finish %d",
		len(c.Points), c.Length()/1000, s.StartType, s.TurnType, s.TurnRadius, s.FinishType)
	return nil
}

func (t *Translator) PenaltyZones() error {
	if len(t.Plan.Task.PenaltyZones) == 0 {
		t.Profile.Set("AirspaceFile", "")
		return nil
	}
	data, err := EncodePenaltyZones(t.Plan.Task.PenaltyZones, t.Converter)
	if err != nil {
		return err
	}
	path := t.Target.path(airspaceFile)
	if err := t.write(data, path); err != nil {
		return err
	}
	t.Profile.Set("AirspaceFile", path)
	return nil
}

func (t *Translator) Weather() error {
	w := t.Plan.Weather
	bearing := int(math.Round(w.WindDir)) % 360
	if bearing < 0 {
		bearing += 360
	}
	speed := int(math.Round(w.WindSpeed * 3.6))
	t.Profile.SetInt("WindBearing", bearing)
	t.Profile.SetInt("WindSpeed", speed)
	t.logger("weather").Infof("Wind %d° %d km/h", bearing, speed)
	return nil
}

// Translate runs every call in order and stops at the first fatal error.
func (t *Translator) Translate() error {
	calls := []struct {
		name string
		fn   func() error
	}{
		{"gps", t.GPS},
		{"scenery-map", t.SceneryMap},
		{"scenery-time", t.SceneryTime},
		{"glider", t.Glider},
		{"task", t.Task},
		{"penalty-zones", t.PenaltyZones},
		{"weather", t.Weather},
	}
	for _, c := range calls {
		if err := c.fn(); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	t.logger("profile").Debugf("Changed keys %v", t.Profile.Changed())
	path := t.Target.ProfilePath()
	if err := t.write(t.Profile.Bytes(), path); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	return nil
}
