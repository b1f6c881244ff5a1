package latlon

import "math"

// BisectorRadials returns the start and finish radials of a sector of
// sectorAngle degrees centred on the bisector of angle1 and angle2.
//
// The angles are the bearings from the neighbouring points to the sector
// centre, so the bisector points away from both legs.
func BisectorRadials(angle1, angle2, sectorAngle float64) (float64, float64) {
	b := Bisector(angle1, angle2)
	return Wrap360(b - sectorAngle/2), Wrap360(b + sectorAngle/2)
}

// Bisector returns the direction halfway between two bearings, taken on the
// shorter arc between them.
func Bisector(angle1, angle2 float64) float64 {
	if angle1 == angle2 {
		return Wrap360(angle1)
	}
	b := (angle1 + angle2) / 2
	if math.Abs(angle1-angle2) > 180 {
		b += 180
	}
	return Wrap360(b)
}
