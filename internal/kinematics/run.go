package kinematics

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cvzebrafish/kinematics/internal/units"
)

// Results is the frame-indexed output table of one run. Every numeric column
// has exactly FrameCount entries and is fully numeric-or-NaN; every
// categorical column draws from a fixed small vocabulary with the empty
// string as the failure sentinel.
type Results struct {
	FrameCount int

	Time    []int
	LFAngle []float64
	RFAngle []float64
	HeadYaw []float64

	// Head position, scaled to physical units and in raw pixels.
	HeadX       []float64
	HeadY       []float64
	HeadPixelsX []float64
	HeadPixelsY []float64

	TailAngle         []float64
	TailDistance      []float64
	TailSide          []string
	FurthestTailPoint []string

	LeftFinPeaks  []string
	RightFinPeaks []string

	// BoutHeadYaw is the per-bout centered yaw. Frames outside every bout are
	// unset (BoutHeadYawValid false); unset is distinct from a centered yaw of
	// zero and consumers must not conflate them.
	BoutHeadYaw      []float64
	BoutHeadYawValid []bool

	// SpineAngles holds one series per spine joint, indexed [joint][frame].
	SpineAngles [][]float64

	// Bouts are the merged movement bout ranges used for yaw centering.
	Bouts []BoutRange

	// ScaleFactor is the pixel-to-metre constant applied to distances.
	ScaleFactor float64
}

// RunCalculations computes the scale factor, all per-frame metrics, the
// movement bout ranges (or the configured/fallback ranges) and the per-bout
// centered yaw, and assembles the final table. The landmark mapping must
// contain every group the configuration references; a missing landmark is a
// loud error, never a silently empty column.
func RunCalculations(lm Landmarks, cfg *Config) (*Results, error) {
	head1, err := lm.Series(cfg.Points.Head.Pt1)
	if err != nil {
		return nil, fmt.Errorf("head pt1: %w", err)
	}
	head2, err := lm.Series(cfg.Points.Head.Pt2)
	if err != nil {
		return nil, fmt.Errorf("head pt2: %w", err)
	}
	spine, err := lm.Group("spine", cfg.Points.Spine)
	if err != nil {
		return nil, err
	}
	leftFin, err := lm.Group("left_fin", cfg.Points.LeftFin)
	if err != nil {
		return nil, err
	}
	rightFin, err := lm.Group("right_fin", cfg.Points.RightFin)
	if err != nil {
		return nil, err
	}
	tail, err := lm.Group("tail", cfg.Points.Tail)
	if err != nil {
		return nil, err
	}

	n := head1.Len()
	if n == 0 {
		return nil, fmt.Errorf("head landmark %q has no frames", cfg.Points.Head.Pt1)
	}

	vp := &cfg.VideoParameters
	scale := units.ScaleFactor(vp.GetPixelScaleFactor(), vp.GetDishDiameterM(), vp.GetPixelDiameter())

	// The tail tip is the last spine landmark; the head anchor is the first.
	tip := spine[len(spine)-1]
	head := spine[0]

	r := &Results{
		FrameCount:  n,
		ScaleFactor: scale,
		Time:        make([]int, n),
	}
	for i := range r.Time {
		r.Time[i] = i
	}

	r.LFAngle = FinAngles(head1, head2, leftFin, true)
	r.RFAngle = FinAngles(head1, head2, rightFin, false)
	r.HeadYaw = HeadYaw(head1, head2)
	r.HeadX, r.HeadY, r.HeadPixelsX, r.HeadPixelsY = ScaledPositions(head, scale)
	r.TailAngle = TailAngles(head1, head2, tip)
	r.TailSide, r.TailDistance = TailSideAndDistance(head1, head2, tip, scale)
	r.FurthestTailPoint = FurthestTailPoints(head1, head2, tail, cfg.Points.Tail)
	r.SpineAngles = SpineAngles(spine)

	peakBuffer := cfg.GraphCutoffs.GetPeakHorizontalBuffer()
	r.LeftFinPeaks = DetectWindowPeaks(r.LFAngle, peakBuffer)
	r.RightFinPeaks = DetectWindowPeaks(r.RFAngle, peakBuffer)

	r.Bouts = resolveBoutRanges(r, cfg, n)
	r.centerYawPerBout()

	return r, nil
}

// resolveBoutRanges picks the bout source: the segmenter when automatic
// detection is enabled, the configured manual ranges otherwise, and the full
// range whenever either yields nothing.
func resolveBoutRanges(r *Results, cfg *Config, n int) []BoutRange {
	full := []BoutRange{{Start: 0, End: n - 1}}

	if !cfg.AutoFindTimeRanges {
		manual := make([]BoutRange, 0, len(cfg.TimeRanges))
		for _, tr := range cfg.TimeRanges {
			if len(tr) != 2 {
				continue
			}
			manual = append(manual, BoutRange{Start: tr[0], End: tr[1]})
		}
		// The legacy placeholder [[0, 0]] means "whole recording".
		if len(manual) == 0 || (len(manual) == 1 && manual[0] == (BoutRange{})) {
			return full
		}
		return MergeBoutRanges(ClampBoutRanges(manual, n))
	}

	bouts := ComputeBoutRanges(r.LFAngle, r.RFAngle, r.TailDistance, &cfg.GraphCutoffs)
	if len(bouts) == 0 {
		return full
	}
	return bouts
}

// centerYawPerBout writes HeadYaw[i] - HeadYaw[start] into the centered-yaw
// column for every frame of every bout, leaving out-of-bout frames unset.
func (r *Results) centerYawPerBout() {
	n := r.FrameCount
	r.BoutHeadYaw = make([]float64, n)
	r.BoutHeadYawValid = make([]bool, n)
	for i := range r.BoutHeadYaw {
		r.BoutHeadYaw[i] = math.NaN()
	}
	for _, b := range r.Bouts {
		center := r.HeadYaw[b.Start]
		for i := b.Start; i <= b.End && i < n; i++ {
			r.BoutHeadYaw[i] = r.HeadYaw[i] - center
			r.BoutHeadYawValid[i] = true
		}
	}
}

// Header returns the column names of the legacy-compatible export layout:
// the fixed metric columns, one TailAngle_j column per spine joint, then a
// timeRangeStart_i/timeRangeEnd_i pair per detected bout.
func (r *Results) Header() []string {
	cols := []string{
		"Time", "LF_Angle", "RF_Angle", "HeadYaw", "HeadX", "HeadY",
		"Tail_Angle", "Tail_Distance", "Tail_Side", "Furthest_Tail_Point",
		"leftFinPeaks", "rightFinPeaks", "curBoutHeadYaw",
	}
	for j := range r.SpineAngles {
		cols = append(cols, fmt.Sprintf("TailAngle_%d", j))
	}
	for i := range r.Bouts {
		cols = append(cols, fmt.Sprintf("timeRangeStart_%d", i), fmt.Sprintf("timeRangeEnd_%d", i))
	}
	return cols
}

// Row renders frame i in the Header layout. Bout metadata is sparse by
// contract: the start/end pairs are populated only on row 0 and empty on
// every other row.
func (r *Results) Row(i int) []string {
	row := []string{
		strconv.Itoa(r.Time[i]),
		formatCell(r.LFAngle[i]),
		formatCell(r.RFAngle[i]),
		formatCell(r.HeadYaw[i]),
		formatCell(r.HeadX[i]),
		formatCell(r.HeadY[i]),
		formatCell(r.TailAngle[i]),
		formatCell(r.TailDistance[i]),
		r.TailSide[i],
		r.FurthestTailPoint[i],
		r.LeftFinPeaks[i],
		r.RightFinPeaks[i],
	}
	if r.BoutHeadYawValid[i] {
		row = append(row, formatCell(r.BoutHeadYaw[i]))
	} else {
		row = append(row, "")
	}
	for _, joint := range r.SpineAngles {
		row = append(row, formatCell(joint[i]))
	}
	for _, b := range r.Bouts {
		if i == 0 {
			row = append(row, strconv.Itoa(b.Start), strconv.Itoa(b.End))
		} else {
			row = append(row, "", "")
		}
	}
	return row
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
