package kinematics

import (
	"math"

	"github.com/cvzebrafish/kinematics/internal/geom"
)

// Tail side vocabulary. The empty string is the per-frame failure sentinel
// for every categorical series.
const (
	SideLeft   = "Left"
	SideRight  = "Right"
	SideOnLine = "On the line"
)

// Every calculator in this file is per-frame independent: a degenerate input
// at frame i produces the NaN or empty-string sentinel at i and nothing else.
// Frame counts are taken from the centerline series; shorter companion series
// simply run out into sentinels rather than aborting the batch.

// FinAngles computes the signed angle between the heading vector (head2-head1)
// and the fin vector (last fin point minus first, base to tip, so that any
// intermediate points are irrelevant) for every frame. The result is
// normalised into (-180, 180] and negated for the right fin so both fins
// report comparable sign semantics for symmetric beats.
func FinAngles(head1, head2 Series, fin []Series, isLeft bool) []float64 {
	n := head1.Len()
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = finAngleAt(head1, head2, fin, isLeft, i)
	}
	return angles
}

func finAngleAt(head1, head2 Series, fin []Series, isLeft bool, i int) float64 {
	if len(fin) == 0 {
		return math.NaN()
	}
	h1 := head1.Point(i)
	h2 := head2.Point(i)
	base := fin[0].Point(i)
	tip := fin[len(fin)-1].Point(i)

	headRad := math.Atan2(h2.Y-h1.Y, h2.X-h1.X)
	finRad := math.Atan2(tip.Y-base.Y, tip.X-base.X)
	deg := geom.Degrees(finRad - headRad)

	// Wrap into (-180, 180]
	if deg < -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	if isLeft {
		return deg
	}
	return -deg
}

// HeadYaw computes the heading angle of the centerline per frame.
func HeadYaw(head1, head2 Series) []float64 {
	n := head1.Len()
	yaw := make([]float64, n)
	for i := range yaw {
		yaw[i] = geom.Heading(head1.Point(i), head2.Point(i))
	}
	return yaw
}

// TailAngles computes the signed deflection of the tail tip from the
// centerline's straight extension per frame.
func TailAngles(head1, head2, tip Series) []float64 {
	n := head1.Len()
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = geom.SignedAngle(head1.Point(i), head2.Point(i), tip.Point(i))
	}
	return angles
}

// TailSideAndDistance classifies the tail tip's side of the centerline and
// its scaled perpendicular distance per frame. The side comes from the raw
// pixel offset before scaling; the distance is offset times scaleFactor.
// A degenerate centerline yields NaN distance and the empty side sentinel.
func TailSideAndDistance(head1, head2, tip Series, scaleFactor float64) ([]string, []float64) {
	n := head1.Len()
	sides := make([]string, n)
	distances := make([]float64, n)
	for i := range distances {
		offset := geom.PerpOffset(head1.Point(i), head2.Point(i), tip.Point(i))
		distances[i] = offset * scaleFactor
		switch {
		case math.IsNaN(offset):
			sides[i] = ""
		case offset < 0:
			sides[i] = SideRight
		case offset > 0:
			sides[i] = SideLeft
		default:
			sides[i] = SideOnLine
		}
	}
	return sides, distances
}

// FurthestTailPoints selects, per frame, the label of the tail landmark with
// the strictly largest absolute perpendicular offset from the centerline.
// Ties keep the earliest-indexed landmark that attained the running maximum.
// When every offset is NaN the first label is reported, matching the running
// maximum's zero start.
func FurthestTailPoints(head1, head2 Series, tail []Series, labels []string) []string {
	n := head1.Len()
	furthest := make([]string, n)
	if len(tail) == 0 || len(labels) == 0 {
		return furthest
	}
	for i := range furthest {
		maxAbs := 0.0
		label := labels[0]
		for p := range tail {
			if p >= len(labels) {
				break
			}
			offset := geom.PerpOffset(head1.Point(i), head2.Point(i), tail[p].Point(i))
			if math.Abs(offset) > maxAbs {
				maxAbs = math.Abs(offset)
				label = labels[p]
			}
		}
		furthest[i] = label
	}
	return furthest
}

// SpineAngles computes one signed-angle series per consecutive landmark
// triple along the spine: K landmarks produce K-2 series. The outer slice is
// indexed by joint, the inner by frame.
func SpineAngles(spine []Series) [][]float64 {
	if len(spine) < 3 {
		return nil
	}
	n := spine[0].Len()
	joints := make([][]float64, len(spine)-2)
	for j := range joints {
		a, b, c := spine[j], spine[j+1], spine[j+2]
		series := make([]float64, n)
		for i := range series {
			series[i] = geom.SignedAngle(a.Point(i), b.Point(i), c.Point(i))
		}
		joints[j] = series
	}
	return joints
}

// ScaledPositions returns a landmark's coordinates converted to physical
// units alongside the raw pixel values.
func ScaledPositions(s Series, scaleFactor float64) (scaledX, scaledY, pixelsX, pixelsY []float64) {
	n := s.Len()
	scaledX = make([]float64, n)
	scaledY = make([]float64, n)
	pixelsX = make([]float64, n)
	pixelsY = make([]float64, n)
	for i := 0; i < n; i++ {
		p := s.Point(i)
		pixelsX[i] = p.X
		pixelsY[i] = p.Y
		scaledX[i] = p.X * scaleFactor
		scaledY[i] = p.Y * scaleFactor
	}
	return scaledX, scaledY, pixelsX, pixelsY
}
