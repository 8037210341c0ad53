package kinematics

import "sort"

// BoutRange is an inclusive frame interval judged to contain active movement.
type BoutRange struct {
	Start int
	End   int
}

// ComputeBoutRanges fuses threshold peaks from the left fin, right fin and
// tail signals into merged, non-overlapping movement bouts.
//
// Peaks are detected with ScanThresholdPeaks: positive cutoff only for the
// fins, both polarities merged for the tail. A single forward pass then
// tracks the most recent peak frame per signal, starting a bout when every
// required signal has peaked within the last movementBoutWidth frames and
// ending it as soon as one of them has not. With use_tail_angle the tail is a
// required signal; without it only the two fins decide. Bout boundaries are
// padded by swimBoutBuffer, shifted by swimBoutRightShift and clamped to the
// signal, and a bout still open at the end of the scan is closed at the final
// frame with the same end formula.
//
// Degenerate inputs (all-NaN signals, cutoffs beyond the frame count, single
// frames) never fail; they simply yield no bouts, and the caller falls back
// to the whole range.
func ComputeBoutRanges(leftFin, rightFin, tailDistance []float64, cutoffs *GraphCutoffs) []BoutRange {
	n := len(leftFin)
	if n == 0 {
		return nil
	}

	lfPeaks := peakSet(ScanThresholdPeaks(leftFin, cutoffs.GetLeftFinAngle(), false))
	rfPeaks := peakSet(ScanThresholdPeaks(rightFin, cutoffs.GetRightFinAngle(), false))

	tailCutoff := cutoffs.GetTailAngle()
	tailPeaks := peakSet(append(
		ScanThresholdPeaks(tailDistance, tailCutoff, false),
		ScanThresholdPeaks(tailDistance, -tailCutoff, true)...))

	gapCutoff := cutoffs.GetMovementBoutWidth()
	buffer := cutoffs.GetSwimBoutBuffer()
	shift := cutoffs.GetSwimBoutRightShift()
	useTail := cutoffs.GetUseTailAngle()

	// Sentinel far enough in the past that no gap test passes before the
	// first real peak.
	lastLF := -gapCutoff * 2
	lastRF := -gapCutoff * 2
	lastTail := -gapCutoff * 2

	var bouts []BoutRange
	onBout := false
	start := 0

	for i := 0; i < n; i++ {
		if lfPeaks[i] {
			lastLF = i
		}
		if rfPeaks[i] {
			lastRF = i
		}
		if tailPeaks[i] {
			lastTail = i
		}

		active := i-lastLF <= gapCutoff && i-lastRF <= gapCutoff
		first := minInt(lastLF, lastRF)
		last := maxInt(lastLF, lastRF)
		if useTail {
			active = active && i-lastTail <= gapCutoff
			first = minInt(first, lastTail)
			last = maxInt(last, lastTail)
		}

		if !onBout && active {
			start = clampFrame(first-buffer+shift, n)
			onBout = true
		} else if onBout && !active {
			end := clampFrame(last+buffer+shift, n)
			bouts = append(bouts, makeBout(start, end))
			onBout = false
		}
	}

	if onBout {
		last := maxInt(lastLF, lastRF)
		if useTail {
			last = maxInt(last, lastTail)
		}
		end := clampFrame(last+buffer+shift, n)
		bouts = append(bouts, makeBout(start, end))
	}

	return MergeBoutRanges(bouts)
}

// MergeBoutRanges sorts bouts ascending by start and coalesces any that touch
// or overlap. Merging an already-merged list returns it unchanged.
func MergeBoutRanges(bouts []BoutRange) []BoutRange {
	if len(bouts) == 0 {
		return nil
	}
	sorted := make([]BoutRange, len(bouts))
	copy(sorted, bouts)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].Start != sorted[b].Start {
			return sorted[a].Start < sorted[b].Start
		}
		return sorted[a].End < sorted[b].End
	})

	merged := []BoutRange{sorted[0]}
	for _, b := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if b.Start <= cur.End {
			if b.End > cur.End {
				cur.End = b.End
			}
			continue
		}
		merged = append(merged, b)
	}
	return merged
}

// ClampBoutRanges bounds caller-supplied ranges to the dataset so manual
// time_ranges from the configuration can never index out of range.
func ClampBoutRanges(bouts []BoutRange, n int) []BoutRange {
	if n <= 0 {
		return nil
	}
	out := make([]BoutRange, 0, len(bouts))
	for _, b := range bouts {
		out = append(out, makeBout(clampFrame(b.Start, n), clampFrame(b.End, n)))
	}
	return out
}

// makeBout enforces Start <= End; a pathological shift/buffer pairing that
// crosses the boundaries collapses to a single frame instead of producing an
// inverted interval.
func makeBout(start, end int) BoutRange {
	if end < start {
		end = start
	}
	return BoutRange{Start: start, End: end}
}

func clampFrame(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

func peakSet(peaks []int) map[int]bool {
	set := make(map[int]bool, len(peaks))
	for _, p := range peaks {
		set[p] = true
	}
	return set
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
