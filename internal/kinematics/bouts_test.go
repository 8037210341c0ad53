package kinematics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boutCutoffs(lf, rf, tail float64, gap, buffer, shift int, useTail bool) *GraphCutoffs {
	return &GraphCutoffs{
		LeftFinAngle:       &lf,
		RightFinAngle:      &rf,
		TailAngle:          &tail,
		MovementBoutWidth:  &gap,
		SwimBoutBuffer:     &buffer,
		SwimBoutRightShift: &shift,
		UseTailAngle:       &useTail,
	}
}

func TestComputeBoutRanges(t *testing.T) {
	t.Run("single bout from synchronized fins", func(t *testing.T) {
		// Fins exceed their cutoffs at frames 2-4 with extremes at 2 (left)
		// and 4 (right); the tail never crosses and is ignored in fins-only
		// mode. With gap 3 and buffer 2 the bout covers [0, 6].
		lf := []float64{0, 0, 60, 55, 52, 0, 0, 0, 0, 0}
		rf := []float64{0, 0, 52, 55, 60, 0, 0, 0, 0, 0}
		tail := make([]float64, 10)

		bouts := ComputeBoutRanges(lf, rf, tail, boutCutoffs(50, 50, 25, 3, 2, 0, false))
		require.Len(t, bouts, 1)
		assert.Equal(t, BoutRange{Start: 0, End: 6}, bouts[0])
	})

	t.Run("tail required in use_tail_angle mode", func(t *testing.T) {
		lf := []float64{0, 0, 60, 55, 52, 0, 0, 0, 0, 0}
		rf := []float64{0, 0, 52, 55, 60, 0, 0, 0, 0, 0}
		quiet := make([]float64, 10)

		// Without a tail peak no bout can start.
		bouts := ComputeBoutRanges(lf, rf, quiet, boutCutoffs(50, 50, 25, 3, 2, 0, true))
		assert.Empty(t, bouts)

		// A negative tail excursion counts through the mirrored cutoff.
		tail := []float64{0, 0, 0, -30, 0, 0, 0, 0, 0, 0}
		bouts = ComputeBoutRanges(lf, rf, tail, boutCutoffs(50, 50, 25, 3, 2, 0, true))
		require.Len(t, bouts, 1)
		assert.Equal(t, BoutRange{Start: 0, End: 6}, bouts[0])
	})

	t.Run("bout open at scan end is force-closed", func(t *testing.T) {
		// Activity right up to the last frame: the bout never sees a gap
		// exceed the cutoff and must still be emitted.
		lf := []float64{0, 0, 0, 0, 0, 0, 0, 60, 60, 60}
		rf := []float64{0, 0, 0, 0, 0, 0, 0, 60, 60, 60}
		tail := make([]float64, 10)

		bouts := ComputeBoutRanges(lf, rf, tail, boutCutoffs(50, 50, 25, 3, 2, 0, false))
		require.Len(t, bouts, 1)
		assert.Equal(t, BoutRange{Start: 5, End: 9}, bouts[0], "end clamped to final frame")
	})

	t.Run("right shift moves both boundaries", func(t *testing.T) {
		lf := []float64{0, 0, 60, 0, 0, 0, 0, 0, 0, 0}
		rf := []float64{0, 0, 60, 0, 0, 0, 0, 0, 0, 0}
		tail := make([]float64, 10)

		bouts := ComputeBoutRanges(lf, rf, tail, boutCutoffs(50, 50, 25, 2, 1, 2, false))
		require.Len(t, bouts, 1)
		// Peak at 2: start = 2-1+2 = 3, end = 2+1+2 = 5.
		assert.Equal(t, BoutRange{Start: 3, End: 5}, bouts[0])
	})

	t.Run("all NaN signals yield no bouts", func(t *testing.T) {
		nan := math.NaN()
		sig := []float64{nan, nan, nan, nan, nan}
		assert.Empty(t, ComputeBoutRanges(sig, sig, sig, boutCutoffs(50, 50, 25, 3, 2, 0, false)))
	})

	t.Run("gap cutoff larger than frame count stays in range", func(t *testing.T) {
		lf := []float64{0, 60, 0}
		rf := []float64{0, 60, 0}
		tail := make([]float64, 3)

		bouts := ComputeBoutRanges(lf, rf, tail, boutCutoffs(50, 50, 25, 1000, 500, 0, false))
		require.Len(t, bouts, 1)
		assert.GreaterOrEqual(t, bouts[0].Start, 0)
		assert.LessOrEqual(t, bouts[0].End, 2)
		assert.LessOrEqual(t, bouts[0].Start, bouts[0].End)
	})

	t.Run("single frame dataset does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			ComputeBoutRanges([]float64{60}, []float64{60}, []float64{0}, boutCutoffs(50, 50, 25, 3, 2, 0, false))
		})
	})

	t.Run("empty signals", func(t *testing.T) {
		assert.Empty(t, ComputeBoutRanges(nil, nil, nil, boutCutoffs(50, 50, 25, 3, 2, 0, false)))
	})
}

func TestMergeBoutRanges(t *testing.T) {
	t.Run("unsorted overlapping input", func(t *testing.T) {
		in := []BoutRange{{40, 60}, {0, 10}, {5, 20}, {55, 58}, {70, 80}}
		want := []BoutRange{{0, 20}, {40, 60}, {70, 80}}
		got := MergeBoutRanges(in)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("merge mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("idempotent on merged input", func(t *testing.T) {
		merged := MergeBoutRanges([]BoutRange{{0, 10}, {8, 20}, {30, 40}})
		again := MergeBoutRanges(merged)
		if diff := cmp.Diff(merged, again); diff != "" {
			t.Errorf("second merge changed result (-first +second):\n%s", diff)
		}
	})

	t.Run("touching bouts coalesce", func(t *testing.T) {
		got := MergeBoutRanges([]BoutRange{{0, 5}, {5, 9}})
		assert.Equal(t, []BoutRange{{0, 9}}, got)
	})

	t.Run("result is always sorted and non-overlapping", func(t *testing.T) {
		in := []BoutRange{{9, 12}, {1, 3}, {2, 8}, {20, 25}, {19, 21}, {4, 4}}
		got := MergeBoutRanges(in)
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1].End, got[i].Start, "ranges %d and %d overlap or touch", i-1, i)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, MergeBoutRanges(nil))
	})
}

func TestClampBoutRanges(t *testing.T) {
	in := []BoutRange{{-5, 3}, {2, 99}, {50, 60}}
	got := ClampBoutRanges(in, 10)
	want := []BoutRange{{0, 3}, {2, 9}, {9, 9}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("clamp mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, ClampBoutRanges(in, 0))
}
