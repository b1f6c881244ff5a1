package translator

import (
	"errors"
	"os"
	"strings"

	"github.com/a-bouts/nav-translator/condor"
	"github.com/a-bouts/nav-translator/latlon"
)

// planar maps metres to degrees near the equator: 1000 m is 0.1°.
type planar struct{}

func (planar) LatitudeOf(x, y float64) (latlon.Coordinate, error) {
	return latlon.NewLatitude(y * 1e-4)
}

func (planar) LongitudeOf(x, y float64) (latlon.Coordinate, error) {
	return latlon.NewLongitude(x * 1e-4)
}

func point(name string, x, y, angle, radius float64) condor.TaskPoint {
	return condor.TaskPoint{
		Name:     name,
		Position: condor.Point{X: x, Y: y},
		Altitude: 500,
		Sector:   condor.SectorSpec{Kind: condor.Classic, Angle: angle, Radius: radius},
	}
}

func task(points ...condor.TaskPoint) condor.Task {
	return condor.Task{Landscape: "Test", Points: points}
}

type memSink struct {
	files    map[string][]byte
	existing map[string]bool
	failDir  string
}

func newMemSink() *memSink {
	return &memSink{files: map[string][]byte{}, existing: map[string]bool{}}
}

// ReadFile prefers what was written, then the disk.
func (m *memSink) ReadFile(path string) ([]byte, error) {
	if data, ok := m.files[path]; ok {
		return data, nil
	}
	return os.ReadFile(path)
}

func (m *memSink) WriteFile(path string, data []byte) error {
	if m.failDir != "" && strings.HasPrefix(path, m.failDir) {
		return errors.New("read-only file system")
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *memSink) Exists(path string) bool {
	_, ok := m.files[path]
	return ok || m.existing[path]
}

type rows map[string][]string

func (r rows) Row(match string, column int, caseInsensitive bool) ([]string, error) {
	for _, row := range r {
		if column < len(row) && strings.EqualFold(row[column], match) {
			return row, nil
		}
	}
	return nil, errors.New("no match")
}
