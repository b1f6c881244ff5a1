package translator

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Record sizes of the binary task dialects.
const (
	taskPointSize   = 40
	startPointSize  = 8
	settingsSize    = 52
	waypointSize    = 128
	waypointExtSize = 24
	extendedTagSize = 16
	extendedVersion = 1
	nameWidth       = 32
	commentWidth    = 64
	frequencyWidth  = 8
	countryWidth    = 4
	styleWaypoint   = 1
	styleAirfield   = 5
	flagTurnpoint   = 1 << 0
	flagAirfield    = 1 << 1
)

var textEncoder = encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())

// encoder appends little endian fields; field order is the file format.
type encoder struct {
	b []byte
}

func (e *encoder) putInt32(v int32) {
	e.b = binary.LittleEndian.AppendUint32(e.b, uint32(v))
}

func (e *encoder) putUint32(v uint32) {
	e.b = binary.LittleEndian.AppendUint32(e.b, v)
}

func (e *encoder) putFloat64(v float64) {
	e.b = binary.LittleEndian.AppendUint64(e.b, math.Float64bits(v))
}

func (e *encoder) putBool(v bool) {
	if v {
		e.putInt32(1)
	} else {
		e.putInt32(0)
	}
}

// putText writes a NUL terminated string padded to width bytes.
func (e *encoder) putText(s string, width int) {
	enc, err := textEncoder.String(s)
	if err != nil {
		enc = ""
	}
	field := make([]byte, width)
	if len(enc) > width-1 {
		enc = enc[:width-1]
	}
	copy(field, enc)
	e.b = append(e.b, field...)
}

func (e *encoder) putZero(n int) {
	e.b = append(e.b, make([]byte, n)...)
}

func meters(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	return uint32(math.Round(v))
}

// extension holds the per waypoint fields only the extended dialect has.
type extension struct {
	country string
}

func (e *encoder) putTaskPoints(c *Classification, caps Capabilities) {
	for k := 0; k < caps.MaxTaskPoints; k++ {
		if k >= len(c.Points) {
			e.putZero(taskPointSize)
			continue
		}
		p := c.Points[k]
		e.putInt32(int32(p.Waypoint.Number))
		var z AatZone
		if p.Aat != nil {
			z = *p.Aat
		}
		e.putInt32(int32(z.Type))
		e.putFloat64(z.CircleRadius)
		e.putFloat64(z.SectorRadius)
		e.putFloat64(z.StartRadial)
		e.putFloat64(z.FinishRadial)
	}
}

func (e *encoder) putStartPoints(caps Capabilities) {
	// Flight plans never have alternative starts.
	e.putZero(caps.MaxStartPoints * startPointSize)
}

func (e *encoder) putSettings(s TaskSettings) {
	e.putBool(s.AATEnabled)
	e.putFloat64(s.AATMinTime.Seconds())
	e.putInt32(int32(s.StartType))
	e.putUint32(meters(s.StartRadius))
	e.putUint32(meters(s.StartMaxHeight))
	e.putInt32(int32(s.TurnType))
	e.putUint32(meters(s.TurnRadius))
	e.putInt32(int32(s.FinishType))
	e.putUint32(meters(s.FinishRadius))
	e.putUint32(meters(s.FinishMinHeight))
	e.putInt32(int32(s.AutoAdvance))
	e.putBool(s.MultipleStartPoints)
}

func (e *encoder) putWaypoint(w Waypoint, ext *extension) {
	e.putInt32(int32(w.Number))
	e.putFloat64(w.Position.Lat)
	e.putFloat64(w.Position.Lon)
	e.putFloat64(w.Altitude)
	flags := int32(0)
	if w.Task {
		flags |= flagTurnpoint
	}
	if w.Airfield {
		flags |= flagAirfield
	}
	e.putInt32(flags)
	e.putText(w.Name, nameWidth)
	e.putText(w.Comment, commentWidth)

	if ext == nil {
		return
	}
	e.putText("", frequencyWidth)
	e.putInt32(0) // runway length
	e.putInt32(0) // runway direction
	e.putText(ext.country, countryWidth)
	if w.Airfield {
		e.putInt32(styleAirfield)
	} else {
		e.putInt32(styleWaypoint)
	}
}

func (e *encoder) putWaypoints(c *Classification, caps Capabilities, ext *extension) {
	size := waypointSize
	if ext != nil {
		size += waypointExtSize
	}
	for k := 0; k < caps.MaxTaskPoints; k++ {
		if k < len(c.Points) {
			e.putWaypoint(c.Points[k].Waypoint, ext)
		} else {
			e.putZero(size)
		}
	}
	e.putZero(caps.MaxStartPoints * size)
}

func encodeBinary(c *Classification, caps Capabilities, ext *extension) []byte {
	var e encoder
	if ext != nil {
		e.putText(extendedTag(caps), extendedTagSize)
	}
	e.putTaskPoints(c, caps)
	e.putStartPoints(caps)
	e.putSettings(c.Settings)
	e.putWaypoints(c, caps, ext)
	return e.b
}

// EncodeLegacy renders the fixed layout task dump.
func EncodeLegacy(c *Classification, caps Capabilities) []byte {
	return encodeBinary(c, caps, nil)
}

// EncodeExtended renders the tagged task dump with the extra waypoint fields.
func EncodeExtended(c *Classification, caps Capabilities, country string) []byte {
	return encodeBinary(c, caps, &extension{country: country})
}

func extendedTag(caps Capabilities) string {
	return fmt.Sprintf("LK%d%02d%02d", extendedVersion, caps.MaxTaskPoints, caps.MaxStartPoints)
}
