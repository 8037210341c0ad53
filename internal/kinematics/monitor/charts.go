package monitor

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cvzebrafish/kinematics/internal/kinematics"
)

// RenderAngleChart writes an interactive HTML line chart of the full-recording
// angle traces, with the detected bout ranges shaded so segmentation can be
// checked against the raw signals without opening a plotting environment.
func RenderAngleChart(w io.Writer, r *kinematics.Results, title string) error {
	x := make([]int, r.FrameCount)
	for i := range x {
		x[i] = i
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Swim Kinematics", Theme: "dark", Width: "1400px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("frames=%d bouts=%d", r.FrameCount, len(r.Bouts))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Angle (deg)", NameLocation: "middle", NameGap: 40}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)

	line.SetXAxis(x).
		AddSeries("left fin", lineData(r.LFAngle)).
		AddSeries("right fin", lineData(r.RFAngle)).
		AddSeries("tail", lineData(r.TailAngle)).
		AddSeries("head yaw", lineData(r.HeadYaw)).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}))

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WriteAngleChart renders the angle chart to <outputDir>/angles.html.
func WriteAngleChart(outputDir string, r *kinematics.Results, title string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(outputDir, "angles.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := RenderAngleChart(f, r, title); err != nil {
		return "", err
	}
	return path, nil
}

// lineData converts a value series to echarts points. NaN frames become nil
// values, which echarts renders as gaps in the line.
func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			data = append(data, opts.LineData{Value: nil})
			continue
		}
		data = append(data, opts.LineData{Value: v})
	}
	return data
}
