package kinematics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(auto bool) *Config {
	gap := 3
	buffer := 2
	shift := 0
	peakBuf := 1
	useTail := false
	return &Config{
		Points: PointGroups{
			Spine:    []string{"spine_1", "spine_2", "spine_3"},
			LeftFin:  []string{"lf_base", "lf_tip"},
			RightFin: []string{"rf_base", "rf_tip"},
			Tail:     []string{"tail_1", "tail_2"},
			Head:     HeadPoints{Pt1: "head_pt1", Pt2: "head_pt2"},
		},
		GraphCutoffs: GraphCutoffs{
			MovementBoutWidth:    &gap,
			SwimBoutBuffer:       &buffer,
			SwimBoutRightShift:   &shift,
			PeakHorizontalBuffer: &peakBuf,
			UseTailAngle:         &useTail,
		},
		AutoFindTimeRanges: auto,
	}
}

// testLandmarks builds a rig of n frames: a fixed +X centerline, a straight
// spine on it, quiet fins, and tail points hugging the centerline. beatFrames
// flicks both fin vectors perpendicular to the centerline, which pushes both
// fin angles to ±90 degrees, well past the default 50 degree cutoffs.
func testLandmarks(n int, beatFrames ...int) Landmarks {
	beat := make(map[int]bool, len(beatFrames))
	for _, f := range beatFrames {
		beat[f] = true
	}

	lfTip := constSeries(0, 0, n)
	rfTip := constSeries(0, 0, n)
	for i := 0; i < n; i++ {
		if beat[i] {
			// Perpendicular beats: left fin down-screen, right fin up-screen.
			lfTip.X[i], lfTip.Y[i] = 0.2, 1.1
			rfTip.X[i], rfTip.Y[i] = 0.2, -1.1
		} else {
			lfTip.X[i], lfTip.Y[i] = 1.2, 0.11
			rfTip.X[i], rfTip.Y[i] = 1.2, -0.11
		}
	}

	return Landmarks{
		"head_pt1": constSeries(0, 0, n),
		"head_pt2": constSeries(1, 0, n),
		"spine_1":  constSeries(0, 0, n),
		"spine_2":  constSeries(1, 0, n),
		"spine_3":  constSeries(2, 0, n),
		"lf_base":  constSeries(0.2, 0.1, n),
		"lf_tip":   lfTip,
		"rf_base":  constSeries(0.2, -0.1, n),
		"rf_tip":   rfTip,
		"tail_1":   constSeries(1.5, 0.01, n),
		"tail_2":   constSeries(2, 0.02, n),
	}
}

func TestRunCalculations(t *testing.T) {
	t.Run("row count equals frame count", func(t *testing.T) {
		for _, n := range []int{1, 2, 10, 37} {
			r, err := RunCalculations(testLandmarks(n), testConfig(true))
			require.NoError(t, err)
			assert.Equal(t, n, r.FrameCount)
			assert.Len(t, r.Time, n)
			assert.Len(t, r.LFAngle, n)
			assert.Len(t, r.RFAngle, n)
			assert.Len(t, r.HeadYaw, n)
			assert.Len(t, r.TailDistance, n)
			assert.Len(t, r.TailSide, n)
			assert.Len(t, r.BoutHeadYaw, n)
			for _, joint := range r.SpineAngles {
				assert.Len(t, joint, n)
			}
		}
	})

	t.Run("detects one bout around synchronized fin beats", func(t *testing.T) {
		r, err := RunCalculations(testLandmarks(10, 2, 3, 4), testConfig(true))
		require.NoError(t, err)

		require.Len(t, r.Bouts, 1)
		// Fin angle runs cover frames 2-4 with a flat extreme, so the peak
		// lands on frame 2; gap 3 and buffer 2 give [0, 4].
		assert.Equal(t, BoutRange{Start: 0, End: 4}, r.Bouts[0])
	})

	t.Run("centered yaw is set inside bouts and unset outside", func(t *testing.T) {
		r, err := RunCalculations(testLandmarks(10, 2, 3, 4), testConfig(true))
		require.NoError(t, err)
		require.Len(t, r.Bouts, 1)

		b := r.Bouts[0]
		for i := 0; i < r.FrameCount; i++ {
			inBout := i >= b.Start && i <= b.End
			assert.Equal(t, inBout, r.BoutHeadYawValid[i], "frame %d", i)
			if inBout {
				assert.InDelta(t, r.HeadYaw[i]-r.HeadYaw[b.Start], r.BoutHeadYaw[i], 1e-12)
			} else {
				assert.True(t, math.IsNaN(r.BoutHeadYaw[i]), "frame %d should be unset", i)
			}
		}
	})

	t.Run("quiet recording falls back to the whole range", func(t *testing.T) {
		r, err := RunCalculations(testLandmarks(10), testConfig(true))
		require.NoError(t, err)
		assert.Equal(t, []BoutRange{{Start: 0, End: 9}}, r.Bouts)
	})

	t.Run("manual time ranges bypass the segmenter", func(t *testing.T) {
		cfg := testConfig(false)
		cfg.TimeRanges = [][]int{{2, 5}, {50, 90}}
		r, err := RunCalculations(testLandmarks(10), cfg)
		require.NoError(t, err)
		// The out-of-range pair is clamped, never an index error.
		assert.Equal(t, []BoutRange{{Start: 2, End: 5}, {Start: 9, End: 9}}, r.Bouts)
	})

	t.Run("legacy zero placeholder means whole recording", func(t *testing.T) {
		cfg := testConfig(false)
		cfg.TimeRanges = [][]int{{0, 0}}
		r, err := RunCalculations(testLandmarks(10), cfg)
		require.NoError(t, err)
		assert.Equal(t, []BoutRange{{Start: 0, End: 9}}, r.Bouts)
	})

	t.Run("missing landmark group fails loudly", func(t *testing.T) {
		lm := testLandmarks(5)
		delete(lm, "rf_tip")
		_, err := RunCalculations(lm, testConfig(true))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingLandmark))
		assert.Contains(t, err.Error(), "rf_tip")
	})

	t.Run("empty dataset is an error", func(t *testing.T) {
		_, err := RunCalculations(testLandmarks(0), testConfig(true))
		require.Error(t, err)
	})

	t.Run("spine angles count is landmarks minus two", func(t *testing.T) {
		r, err := RunCalculations(testLandmarks(4), testConfig(true))
		require.NoError(t, err)
		assert.Len(t, r.SpineAngles, 1)
	})
}

func TestResultsRowLayout(t *testing.T) {
	r, err := RunCalculations(testLandmarks(10, 2, 3, 4), testConfig(true))
	require.NoError(t, err)
	require.Len(t, r.Bouts, 1)

	header := r.Header()
	// 13 fixed columns, one spine joint, one bout start/end pair.
	require.Len(t, header, 13+len(r.SpineAngles)+2*len(r.Bouts))
	assert.Equal(t, "Time", header[0])
	assert.Equal(t, "TailAngle_0", header[13])
	assert.Equal(t, "timeRangeStart_0", header[14])
	assert.Equal(t, "timeRangeEnd_0", header[15])

	// Bout metadata lives on row 0 only.
	row0 := r.Row(0)
	require.Len(t, row0, len(header))
	assert.Equal(t, "0", row0[14])
	assert.Equal(t, "4", row0[15])

	row1 := r.Row(1)
	assert.Equal(t, "", row1[14])
	assert.Equal(t, "", row1[15])

	// The centered-yaw cell is empty outside every bout.
	row9 := r.Row(9)
	assert.Equal(t, "", row9[12])
}
