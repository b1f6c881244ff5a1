package translator

import (
	"encoding/xml"
	"fmt"
	"math"

	"github.com/a-bouts/nav-translator/latlon"
)

type xmlTask struct {
	XMLName            xml.Name   `xml:"Task"`
	Type               string     `xml:"type,attr"`
	AATMinTime         int        `xml:"aat_min_time,attr"`
	StartMaxHeight     int        `xml:"start_max_height,attr"`
	StartMaxHeightRef  string     `xml:"start_max_height_ref,attr"`
	StartMaxSpeed      int        `xml:"start_max_speed,attr"`
	FinishMinHeight    int        `xml:"finish_min_height,attr"`
	FinishMinHeightRef string     `xml:"finish_min_height_ref,attr"`
	Points             []xmlPoint `xml:"Point"`
}

type xmlPoint struct {
	Type     string      `xml:"type,attr"`
	Waypoint xmlWaypoint `xml:"Waypoint"`
	Zone     xmlZone     `xml:"ObservationZone"`
}

type xmlWaypoint struct {
	Name     string      `xml:"name,attr"`
	ID       int         `xml:"id,attr"`
	Comment  string      `xml:"comment,attr"`
	Altitude int         `xml:"altitude,attr"`
	Location xmlLocation `xml:"Location"`
}

type xmlLocation struct {
	Latitude  float64 `xml:"latitude,attr"`
	Longitude float64 `xml:"longitude,attr"`
}

type xmlZone struct {
	Type        string   `xml:"type,attr"`
	Radius      *float64 `xml:"radius,attr,omitempty"`
	Length      *float64 `xml:"length,attr,omitempty"`
	StartRadial *float64 `xml:"start_radial,attr,omitempty"`
	EndRadial   *float64 `xml:"end_radial,attr,omitempty"`
}

func ptr(v float64) *float64 {
	return &v
}

func cylinder(radius float64) xmlZone {
	return xmlZone{Type: "Cylinder", Radius: ptr(radius)}
}

func sector(radius, start, end float64) xmlZone {
	return xmlZone{Type: "Sector", Radius: ptr(radius), StartRadial: ptr(start), EndRadial: ptr(end)}
}

// zone builds the observation zone of point k from its own shape; unlike the
// binary dialects every point keeps its geometry.
func zone(c *Classification, k int) xmlZone {
	p := c.Points[k]
	here := p.Waypoint.Position

	if p.Aat != nil {
		if p.Aat.Type == AatCircle {
			return cylinder(p.Aat.CircleRadius)
		}
		return sector(p.Aat.SectorRadius, p.Aat.StartRadial, p.Aat.FinishRadial)
	}

	var in, out float64
	switch {
	case len(c.Points) == 1:
		in, out = 0, 0
	case k == 0:
		in = latlon.Bearing(c.Points[1].Waypoint.Position, here)
		out = in
	case k == len(c.Points)-1:
		in = latlon.Bearing(c.Points[k-1].Waypoint.Position, here)
		out = in
	default:
		in = latlon.Bearing(c.Points[k-1].Waypoint.Position, here)
		out = latlon.Bearing(c.Points[k+1].Waypoint.Position, here)
	}

	switch p.Shape {
	case ShapeSector:
		s, e := latlon.BisectorRadials(in, out, 90)
		return sector(p.Radius, s, e)
	case ShapeLine:
		if k == 0 || k == len(c.Points)-1 {
			return xmlZone{Type: "Line", Length: ptr(2 * p.Radius)}
		}
		s, e := latlon.BisectorRadials(in, out, 180)
		return sector(p.Radius, s, e)
	}
	return cylinder(p.Radius)
}

func pointType(c *Classification, k int) string {
	switch {
	case k == 0:
		return "Start"
	case k == len(c.Points)-1:
		return "Finish"
	case c.Points[k].Aat != nil:
		return "Area"
	}
	return "Turn"
}

// EncodeXML renders the classification as an XML task.
func EncodeXML(c *Classification) ([]byte, error) {
	s := c.Settings
	t := xmlTask{
		Type:               "RT",
		StartMaxHeight:     int(math.Round(s.StartMaxHeight)),
		StartMaxHeightRef:  "MSL",
		FinishMinHeight:    int(math.Round(s.FinishMinHeight)),
		FinishMinHeightRef: "AGL",
	}
	if s.AATEnabled {
		t.Type = "AAT"
		t.AATMinTime = int(s.AATMinTime.Seconds())
	}

	for k, p := range c.Points {
		w := p.Waypoint
		t.Points = append(t.Points, xmlPoint{
			Type: pointType(c, k),
			Waypoint: xmlWaypoint{
				Name:     w.Name,
				ID:       w.Number,
				Comment:  w.Comment,
				Altitude: int(math.Round(w.Altitude)),
				Location: xmlLocation{Latitude: w.Position.Lat, Longitude: w.Position.Lon},
			},
			Zone: zone(c, k),
		})
	}

	out, err := xml.MarshalIndent(t, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to encode task: %w", err)
	}
	b := []byte(xml.Header)
	b = append(b, out...)
	return append(b, '\n'), nil
}
