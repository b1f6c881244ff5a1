package translator

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/a-bouts/nav-translator/condor"
	"github.com/a-bouts/nav-translator/latlon"
)

// EncodeWaypoints renders the waypoints in the WinPilot text format.
func EncodeWaypoints(wps []Waypoint) []byte {
	var b bytes.Buffer
	for _, w := range wps {
		lat := latlon.Coordinate{Value: w.Position.Lat, Axis: latlon.Latitude}
		lon := latlon.Coordinate{Value: w.Position.Lon, Axis: latlon.Longitude}
		fmt.Fprintf(&b, "%d,%s,%s,%dM,T,%s,%s\r\n",
			w.Number, lat.FormatDDMM(), lon.FormatDDMM(), int(math.Round(w.Altitude)),
			field(w.Name), field(w.Comment))
	}
	return b.Bytes()
}

func field(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}

func height(h float64) string {
	if h <= 0 {
		return "GND"
	}
	return fmt.Sprintf("%dm AMSL", int(math.Round(h)))
}

// EncodePenaltyZones renders the zones as OpenAir airspace blocks. No zones
// give no output.
func EncodePenaltyZones(zones []condor.PenaltyZone, conv Converter) ([]byte, error) {
	var b bytes.Buffer
	for i, z := range zones {
		if i > 0 {
			b.WriteString("\r\n")
		}
		fmt.Fprintf(&b, "AC P\r\n")
		fmt.Fprintf(&b, "AN %s\r\n", z.Name)
		fmt.Fprintf(&b, "AH %s\r\n", height(z.Top))
		fmt.Fprintf(&b, "AL %s\r\n", height(z.Base))
		for k, c := range z.Corners {
			lat, err := conv.LatitudeOf(c.X, c.Y)
			if err != nil {
				return nil, fmt.Errorf("penalty zone %q corner %d: %w", z.Name, k, err)
			}
			lon, err := conv.LongitudeOf(c.X, c.Y)
			if err != nil {
				return nil, fmt.Errorf("penalty zone %q corner %d: %w", z.Name, k, err)
			}
			fmt.Fprintf(&b, "DP %s %s\r\n", lat.FormatDDMMSS(), lon.FormatDDMMSS())
		}
	}
	return b.Bytes(), nil
}
