package kinematics

import "math"

// Window peak marks. Unmarked frames carry the empty string.
const (
	PeakMax = "max"
	PeakMin = "min"
)

// DetectWindowPeaks marks local extrema of the signal using a fixed symmetric
// window of bufferSize frames on each side. A frame is marked "max" when its
// value is >= every other value in the window, else "min" when <= every other
// value. The max test runs first, so a flat plateau satisfying both reports
// "max"; this tie-break is long-standing observed behaviour and is kept until
// the system owner rules on it. Windows containing any NaN leave the frame
// unmarked, and frames within bufferSize of either boundary are always
// unmarked: there is no extrapolation.
func DetectWindowPeaks(signal []float64, bufferSize int) []string {
	n := len(signal)
	marks := make([]string, n)
	if bufferSize < 0 {
		return marks
	}
	for i := bufferSize; i < n-bufferSize; i++ {
		window := signal[i-bufferSize : i+bufferSize+1]
		if hasNaN(window) {
			continue
		}
		current := signal[i]
		isMax := true
		isMin := true
		for _, v := range window {
			if current < v {
				isMax = false
			}
			if current > v {
				isMin = false
			}
		}
		if isMax {
			marks[i] = PeakMax
		} else if isMin {
			marks[i] = PeakMin
		}
	}
	return marks
}

// ScanThresholdPeaks finds, for each continuous run of frames beyond the
// cutoff, the index of the most extreme value reached during that run. With
// negative=false a run begins when the signal exceeds the cutoff and ends
// when it drops back to or below it; with negative=true the comparisons are
// mirrored below the cutoff. A run still open when the signal ends emits its
// extreme as well. NaN frames never satisfy either comparison, so an all-NaN
// signal yields no peaks.
func ScanThresholdPeaks(signal []float64, cutoff float64, negative bool) []int {
	var peaks []int
	onPeak := false
	extremePos := 0
	extremeVal := 0.0

	for i, v := range signal {
		switch {
		case !onPeak && crosses(v, cutoff, negative):
			extremePos = i
			extremeVal = v
			onPeak = true
		case onPeak && recrosses(v, cutoff, negative):
			peaks = append(peaks, extremePos)
			onPeak = false
		case onPeak && moreExtreme(v, extremeVal, negative):
			// Strict comparison: ties keep the earliest extreme.
			extremeVal = v
			extremePos = i
		}
	}
	if onPeak {
		peaks = append(peaks, extremePos)
	}
	return peaks
}

func crosses(v, cutoff float64, negative bool) bool {
	if negative {
		return v < cutoff
	}
	return v > cutoff
}

// recrosses is deliberately not the negation of crosses: comparisons against
// NaN are false both ways, so a NaN frame mid-run neither extends nor ends
// the run.
func recrosses(v, cutoff float64, negative bool) bool {
	if negative {
		return v >= cutoff
	}
	return v <= cutoff
}

func moreExtreme(v, extreme float64, negative bool) bool {
	if negative {
		return v < extreme
	}
	return v > extreme
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
