// Package kinematics converts per-frame 2D pose-tracking landmarks into
// kinematic descriptors (fin angles, head yaw, tail deflection and offset,
// spine segment angles) and segments the frame sequence into movement bouts.
//
// The package is a pure in-memory core: it does not parse files, render
// graphics, or persist anything. Callers hand in already-parsed landmark
// series and an already-validated configuration, and receive a frame-indexed
// results table plus bout ranges.
package kinematics

import (
	"errors"
	"fmt"
	"math"

	"github.com/cvzebrafish/kinematics/internal/geom"
)

// ErrMissingLandmark reports a landmark group referenced by the configuration
// that is absent from the supplied dataset. Silent defaulting would corrupt an
// entire output column, so this is always a loud failure.
var ErrMissingLandmark = errors.New("landmark missing from dataset")

// Series holds one tracked anatomical point as three parallel frame-indexed
// sequences. All series used together in one run share the same length.
type Series struct {
	X    []float64
	Y    []float64
	Conf []float64
}

// Len returns the frame count of the series.
func (s Series) Len() int {
	return len(s.X)
}

// Point returns the coordinate at frame i. Frames outside the series report
// NaN coordinates so per-frame consumers degrade to the NaN sentinel instead
// of panicking; this is the failure-isolation policy, not error suppression.
func (s Series) Point(i int) geom.Point {
	if i < 0 || i >= len(s.X) || i >= len(s.Y) {
		return geom.Point{X: math.NaN(), Y: math.NaN()}
	}
	return geom.Point{X: s.X[i], Y: s.Y[i]}
}

// Confidence returns the tracker confidence at frame i, or NaN out of range.
func (s Series) Confidence(i int) float64 {
	if i < 0 || i >= len(s.Conf) {
		return math.NaN()
	}
	return s.Conf[i]
}

// Landmarks maps landmark names to their tracked series. It is the input
// contract with the out-of-scope parsing collaborator.
type Landmarks map[string]Series

// Series looks up a single named landmark, failing loudly when absent.
func (lm Landmarks) Series(name string) (Series, error) {
	s, ok := lm[name]
	if !ok {
		return Series{}, fmt.Errorf("%w: %q", ErrMissingLandmark, name)
	}
	return s, nil
}

// Group resolves an ordered list of landmark names, failing loudly on the
// first absent one. The group name is only used for error context.
func (lm Landmarks) Group(group string, names []string) ([]Series, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: group %q is empty", ErrMissingLandmark, group)
	}
	out := make([]Series, 0, len(names))
	for _, name := range names {
		s, ok := lm[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q (group %q)", ErrMissingLandmark, name, group)
		}
		out = append(out, s)
	}
	return out, nil
}

// CheckConfidence reports whether a spine frame has acceptable tracking
// quality: at most maxBrokenPoints landmarks may fall below minConf. A NaN
// confidence counts as broken.
func CheckConfidence(spine []Series, frame int, minConf float64, maxBrokenPoints int) bool {
	broken := 0
	for _, pt := range spine {
		c := pt.Confidence(frame)
		if math.IsNaN(c) || c < minConf {
			broken++
		}
	}
	return broken <= maxBrokenPoints
}
