// Package monitor renders kinematics run output for visual inspection: static
// per-bout PNG traces via gonum/plot and an interactive HTML chart of the full
// recording via go-echarts. It consumes a finished Results table and never
// feeds back into the calculations.
package monitor

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cvzebrafish/kinematics/internal/kinematics"
)

// BoutPlotter writes one PNG per detected bout, with the fin and tail angle
// traces overlaid so threshold crossings can be eyeballed against the bout
// boundaries the segmenter chose.
type BoutPlotter struct {
	outputDir string
	padding   int
}

// NewBoutPlotter creates a plotter writing under outputDir. padding is the
// number of context frames drawn either side of each bout.
func NewBoutPlotter(outputDir string, padding int) *BoutPlotter {
	if padding < 0 {
		padding = 0
	}
	return &BoutPlotter{outputDir: outputDir, padding: padding}
}

// Start creates the output directory.
func (bp *BoutPlotter) Start() error {
	if bp.outputDir == "" {
		return fmt.Errorf("no output directory configured")
	}
	if err := os.MkdirAll(bp.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	return nil
}

// GeneratePlots writes one angle-trace PNG per bout and returns the number of
// plots generated.
func (bp *BoutPlotter) GeneratePlots(r *kinematics.Results) (int, error) {
	if bp.outputDir == "" {
		return 0, fmt.Errorf("no output directory configured")
	}

	plotCount := 0
	for i, b := range r.Bouts {
		if err := bp.generateBoutPlot(r, i, b); err != nil {
			return plotCount, fmt.Errorf("bout %d: %w", i, err)
		}
		plotCount++
	}
	return plotCount, nil
}

func (bp *BoutPlotter) generateBoutPlot(r *kinematics.Results, idx int, b kinematics.BoutRange) error {
	start := b.Start - bp.padding
	if start < 0 {
		start = 0
	}
	end := b.End + bp.padding
	if end > r.FrameCount-1 {
		end = r.FrameCount - 1
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Bout %d - frames %d to %d", idx, b.Start, b.End)
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Angle (deg)"

	traces := []struct {
		label  string
		values []float64
		color  color.Color
	}{
		{"left fin", r.LFAngle, color.RGBA{R: 217, G: 72, B: 60, A: 255}},
		{"right fin", r.RFAngle, color.RGBA{R: 57, G: 106, B: 177, A: 255}},
		{"tail", r.TailAngle, color.RGBA{R: 62, G: 150, B: 81, A: 255}},
	}

	for _, tr := range traces {
		pts := make(plotter.XYs, 0, end-start+1)
		for i := start; i <= end && i < len(tr.values); i++ {
			// NaN frames break the line into segments rather than drawing a
			// spurious connecting stroke.
			if math.IsNaN(tr.values[i]) {
				continue
			}
			pts = append(pts, plotter.XY{X: float64(i), Y: tr.values[i]})
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = tr.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(tr.label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	file := filepath.Join(bp.outputDir, fmt.Sprintf("bout_%02d_angles.png", idx))
	if err := p.Save(14*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("save bout plot: %w", err)
	}
	return nil
}

// FormatTimestamp generates a timestamp string for directory naming.
func FormatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// MakePlotOutputDir returns a timestamped directory for one run's plots:
// <baseDir>/<label>/<timestamp>, or <baseDir>/run_<timestamp> when the run
// has no label.
func MakePlotOutputDir(baseDir, label string) string {
	ts := FormatTimestamp(time.Now())
	if label != "" {
		return filepath.Join(baseDir, label, ts)
	}
	return filepath.Join(baseDir, "run_"+ts)
}
