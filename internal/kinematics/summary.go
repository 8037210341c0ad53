package kinematics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// SummaryVariant selects between the two frequency formulas found in the
// historical implementations. They disagree (the older one reports the mean
// peak period rather than its reciprocal) and the owner has not ruled on
// which is intended, so both are kept as named modes instead of silently
// unifying them.
type SummaryVariant int

const (
	// VariantCurrent computes beats per second from the mean peak spacing.
	VariantCurrent SummaryVariant = iota
	// VariantLegacyPeriod reproduces the original pipeline's formula, which
	// reports mean peak spacing divided by the frame rate (a period in
	// seconds, not a frequency).
	VariantLegacyPeriod
)

// BoutFrequency counts threshold-crossing peaks of the signal inside the
// given bouts and derives a beat frequency from their spacing. A peak is
// registered at the frame where the signal falls back to or below the cutoff;
// for the tail (tailSignal true) both polarities count, each full left-right
// oscillation produces two crossings, and the result is halved accordingly —
// the documented fin-alternation divide-by-two that only the tail path
// applies. timeFactor is the recording frame rate. Returns 0 frequency when
// fewer than two peaks exist.
func BoutFrequency(values []float64, cutoff float64, bouts []BoutRange, timeFactor float64, tailSignal bool, variant SummaryVariant) (float64, int) {
	var crossings []int
	onPeak := false

	for _, b := range bouts {
		for i := b.Start; i <= b.End && i < len(values); i++ {
			if i < 0 {
				continue
			}
			v := values[i]
			inside := v > cutoff
			if tailSignal {
				inside = v > cutoff || v < -cutoff
			}
			if !onPeak && inside {
				onPeak = true
			} else if onPeak && !inside && !math.IsNaN(v) {
				crossings = append(crossings, i)
				onPeak = false
			}
		}
	}

	count := len(crossings)
	if tailSignal {
		count /= 2
	}
	if len(crossings) < 2 {
		return 0, count
	}

	spacings := make([]float64, 0, len(crossings)-1)
	for i := 0; i+1 < len(crossings); i++ {
		spacings = append(spacings, float64(crossings[i+1]-crossings[i]))
	}
	meanSpacing := stat.Mean(spacings, nil)

	switch variant {
	case VariantLegacyPeriod:
		return meanSpacing / timeFactor, count
	default:
		period := meanSpacing / timeFactor
		if tailSignal {
			period /= 2
		}
		if period == 0 {
			return 0, count
		}
		return 1 / period, count
	}
}

// BoutDistances returns the straight-line head displacement of each bout in
// the units of the head position series.
func BoutDistances(headX, headY []float64, bouts []BoutRange) []float64 {
	distances := make([]float64, 0, len(bouts))
	for _, b := range bouts {
		distances = append(distances, boutDisplacement(headX, headY, b))
	}
	return distances
}

// BoutSpeeds returns the per-bout straight-line displacement divided by the
// recording frame rate, matching the legacy report's velocity figure.
func BoutSpeeds(headX, headY []float64, bouts []BoutRange, framerate float64) []float64 {
	speeds := make([]float64, 0, len(bouts))
	for _, b := range bouts {
		speeds = append(speeds, boutDisplacement(headX, headY, b)/framerate)
	}
	return speeds
}

func boutDisplacement(headX, headY []float64, b BoutRange) float64 {
	if b.Start < 0 || b.End >= len(headX) || b.End >= len(headY) {
		return math.NaN()
	}
	dx := headX[b.End] - headX[b.Start]
	dy := headY[b.End] - headY[b.Start]
	return math.Hypot(dx, dy)
}
