package translator

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func faiTask(t *testing.T) *Classification {
	c, err := Classify(task(
		point("Takeoff", 0, 0, 360, 3000),
		point("Bovec", 0, 0, 180, 3000),
		point("Kobarid", 0, 1000, 90, 500),
		point("Tolmin", 1000, 1000, 360, 1000),
	), planar{}, legacy, AdvanceArm)
	require.NoError(t, err)
	return c
}

func i32(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off:]))
}

func f64(b []byte, off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b[off:]))
}

func TestEncodeLegacyLayout(t *testing.T) {
	c := faiTask(t)
	b := EncodeLegacy(c, legacy)

	assert.Len(t, b, 10*taskPointSize+10*startPointSize+settingsSize+20*waypointSize)

	// task points
	assert.Equal(t, int32(1), i32(b, 0))
	assert.Equal(t, int32(2), i32(b, taskPointSize))
	assert.Equal(t, int32(3), i32(b, 2*taskPointSize))
	assert.Equal(t, int32(0), i32(b, 3*taskPointSize))

	settings := 10*taskPointSize + 10*startPointSize
	assert.Equal(t, int32(0), i32(b, settings))             // AAT
	assert.Equal(t, 0.0, f64(b, settings+4))                // AAT min time
	assert.Equal(t, int32(ZoneLine), i32(b, settings+12))   // start type
	assert.Equal(t, int32(3000), i32(b, settings+16))       // start radius
	assert.Equal(t, int32(TurnFAI), i32(b, settings+24))    // turn type
	assert.Equal(t, int32(500), i32(b, settings+28))        // turn radius
	assert.Equal(t, int32(ZoneCircle), i32(b, settings+32)) // finish type
	assert.Equal(t, int32(1000), i32(b, settings+36))       // finish radius
	assert.Equal(t, int32(AdvanceArm), i32(b, settings+44)) // auto advance
	assert.Equal(t, int32(0), i32(b, settings+48))          // multiple starts

	wp := settings + settingsSize + waypointSize
	assert.Equal(t, int32(2), i32(b, wp))
	assert.InDelta(t, 0.1, f64(b, wp+4), 1e-12)
	assert.InDelta(t, 0.0, f64(b, wp+12), 1e-12)
	assert.Equal(t, 500.0, f64(b, wp+20))
	assert.Equal(t, int32(flagTurnpoint), i32(b, wp+28))
	name := b[wp+32 : wp+32+nameWidth]
	assert.Equal(t, "1:Kobarid", string(name[:9]))
	assert.Equal(t, make([]byte, nameWidth-9), name[9:])
	comment := b[wp+32+nameWidth : wp+waypointSize]
	assert.Equal(t, "Kobarid", string(comment[:7]))
}

func TestEncodeAATSettings(t *testing.T) {
	tk := task(
		point("Takeoff", 0, 0, 360, 3000),
		point("S", 0, 0, 180, 3000),
		point("A", 0, 1000, 360, 500),
		point("F", 1000, 1000, 360, 1000),
	)
	tk.AATMinTime = 90 * time.Minute
	c, err := Classify(tk, planar{}, legacy, AdvanceAuto)
	require.NoError(t, err)

	b := EncodeLegacy(c, legacy)
	area := taskPointSize
	assert.Equal(t, int32(AatCircle), i32(b, area+4))
	assert.Equal(t, 500.0, f64(b, area+8))
	assert.Equal(t, 0.0, f64(b, area+16))
	assert.Equal(t, 0.0, f64(b, area+24))
	assert.Equal(t, 0.0, f64(b, area+32))

	settings := 10*taskPointSize + 10*startPointSize
	assert.Equal(t, int32(1), i32(b, settings))
	assert.Equal(t, 5400.0, f64(b, settings+4))
}

func TestEncodeExtendedSharesLegacyFields(t *testing.T) {
	c := faiTask(t)
	old := EncodeLegacy(c, legacy)
	ext := EncodeExtended(c, legacy, "SI")

	tag := ext[:extendedTagSize]
	assert.Equal(t, "LK11010", string(tag[:7]))
	assert.Equal(t, make([]byte, extendedTagSize-7), tag[7:])
	ext = ext[extendedTagSize:]

	head := 10*taskPointSize + 10*startPointSize + settingsSize
	require.Equal(t, old[:head], ext[:head])

	for k := 0; k < 20; k++ {
		o := old[head+k*waypointSize : head+(k+1)*waypointSize]
		e := ext[head+k*(waypointSize+waypointExtSize) : head+(k+1)*(waypointSize+waypointExtSize)]
		assert.Equal(t, o, e[:waypointSize], "waypoint %d", k)
	}
	assert.Len(t, ext, head+20*(waypointSize+waypointExtSize))

	first := ext[head+waypointSize : head+waypointSize+waypointExtSize]
	assert.Equal(t, make([]byte, frequencyWidth), first[:frequencyWidth])
	assert.Equal(t, "SI", string(first[16:18]))
	assert.Equal(t, int32(styleWaypoint), i32(first, 20))
}

func TestEncodeExtendedCapabilities(t *testing.T) {
	c := faiTask(t)
	caps := ExtendedBinary.Capabilities()
	b := EncodeExtended(c, caps, "SI")
	assert.Equal(t, "LK12010", string(b[:7]))
	assert.Len(t, b, extendedTagSize+20*taskPointSize+10*startPointSize+settingsSize+30*(waypointSize+waypointExtSize))
}

func TestPutText(t *testing.T) {
	var e encoder
	e.putText("Ljubljana Brnik Žiri čez", 16)
	require.Len(t, e.b, 16)
	assert.Equal(t, "Ljubljana Brnik", string(e.b[:15]))
	assert.Equal(t, byte(0), e.b[15])

	e = encoder{}
	e.putText("Škofja", 8)
	assert.Equal(t, []byte{0x8a, 'k', 'o', 'f', 'j', 'a', 0, 0}, e.b)

	e = encoder{}
	e.putText("Čalarka", 8)
	assert.Equal(t, byte(0x1a), e.b[0])
	assert.Equal(t, byte(0), e.b[7])
}

func TestMeters(t *testing.T) {
	assert.Equal(t, uint32(0), meters(-5))
	assert.Equal(t, uint32(0), meters(0))
	assert.Equal(t, uint32(1501), meters(1500.6))
}
