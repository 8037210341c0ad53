// Package geom provides the 2D vector primitives used by the kinematics
// pipeline. All angles are in degrees and all coordinates are image-space:
// the y axis increases downward, which inverts the usual angle sign.
package geom

import "math"

// Point is a 2D image-space coordinate.
type Point struct {
	X float64
	Y float64
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// SignedAngle returns the signed deflection of BC from the straight extension
// of AB, in degrees, in the range (-180, 180]. The sign comes from the 2D
// cross product of BA and BC: positive when BC bends counter-clockwise from
// BA in pixel coordinates. Returns NaN if either vector has zero length (an
// unmeasurable joint) or any coordinate is NaN.
func SignedAngle(a, b, c Point) float64 {
	bax := a.X - b.X
	bay := a.Y - b.Y
	bcx := c.X - b.X
	bcy := c.Y - b.Y

	if (bax == 0 && bay == 0) || (bcx == 0 && bcy == 0) {
		return math.NaN()
	}

	dot := bax*bcx + bay*bcy
	cross := bax*bcy - bay*bcx

	// Unsigned angle between BA and BC in [0, pi]; the deflection from
	// straight (pi) carries the cross product's sign.
	unsigned := math.Atan2(math.Abs(cross), dot)
	signed := sign(cross) * (math.Pi - unsigned)
	return Degrees(signed)
}

// Heading returns the yaw of the segment p1->p2 in degrees. The sign is
// inverted so that a segment rising on screen (decreasing y) reports a
// positive heading.
func Heading(p1, p2 Point) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return -Degrees(math.Atan2(dy, dx))
}

// PerpOffset fits the line through lineP1 and lineP2 in slope/intercept form
// and returns the signed perpendicular offset of pt from it:
// (m*x - y + b) / sqrt(m^2 + 1). Positive offsets are on the "Left" of the
// line in image coordinates, negative on the "Right". Returns NaN when the
// two line points share an x coordinate (the slope/intercept fit is
// degenerate, matching the upstream least-squares behaviour) or any input is
// NaN. The result is in pixels; callers apply the run's scale factor.
func PerpOffset(lineP1, lineP2, pt Point) float64 {
	dx := lineP2.X - lineP1.X
	if dx == 0 {
		return math.NaN()
	}
	m := (lineP2.Y - lineP1.Y) / dx
	b := lineP1.Y - m*lineP1.X
	return (m*pt.X - pt.Y + b) / math.Sqrt(m*m+1)
}

// RotateAround rotates (x, y) about (originX, originY). When inRads is true
// the angle is a head yaw in radians and the rotation normalises the pose to
// face up-screen (pi/2 - angle + pi, the convention the legacy head plots
// used); otherwise the angle is taken as plain degrees.
func RotateAround(x, y, originX, originY, angle float64, inRads bool) (float64, float64) {
	var angleRad float64
	if inRads {
		angleRad = math.Pi/2 - angle + math.Pi
	} else {
		angleRad = Radians(angle)
	}
	xs := x - originX
	ys := y - originY
	sin, cos := math.Sincos(angleRad)
	return xs*cos - ys*sin + originX, xs*sin + ys*cos + originY
}

// FlipAcrossX mirrors an x coordinate across the vertical axis at originX.
func FlipAcrossX(x, originX float64) float64 {
	return originX + (originX - x)
}

// sign mirrors the numeric sign convention the angle math depends on:
// sign(0) is 0, so a perfectly straight joint reports zero deflection.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
