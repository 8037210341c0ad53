// Command swim-analyse runs the kinematics pipeline over a synthetic swim
// recording and writes the results table, summary figures and plots. It is a
// smoke-test harness for the calculation core: the landmark rig is generated
// in memory, so no tracking files are needed.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/cvzebrafish/kinematics/internal/kinematics"
	"github.com/cvzebrafish/kinematics/internal/kinematics/monitor"
)

func main() {
	frames := flag.Int("n", 600, "number of frames to synthesise")
	framerate := flag.Float64("fps", 648, "recording frame rate")
	beatHz := flag.Float64("beat-hz", 20, "fin beat frequency of the synthetic fish")
	outputDir := flag.String("o", "out", "output directory")
	label := flag.String("label", "synthetic", "run label used in output naming")
	charts := flag.Bool("charts", true, "write HTML chart and per-bout PNG plots")
	flag.Parse()

	cfg := defaultConfig(*framerate)
	lm := syntheticRecording(*frames, *framerate, *beatHz)

	run := kinematics.NewRunContext(*label, monitor.MakePlotOutputDir(*outputDir, *label))
	log.Printf("run %s: %d frames at %.0f fps", run.RunID, *frames, *framerate)

	r, err := kinematics.RunCalculations(lm, cfg)
	if err != nil {
		log.Fatalf("calculations failed: %v", err)
	}
	log.Printf("detected %d bout(s), scale factor %.3g m/px", len(r.Bouts), r.ScaleFactor)

	if err := os.MkdirAll(run.OutputDir, 0755); err != nil {
		log.Fatalf("failed to create output dir: %v", err)
	}

	csvPath := filepath.Join(run.OutputDir, "results.csv")
	if err := writeResultsCSV(csvPath, r); err != nil {
		log.Fatalf("failed to write results: %v", err)
	}
	log.Printf("✓ Results: %s", csvPath)

	logSummary(r, cfg)

	if *charts {
		chartPath, err := monitor.WriteAngleChart(run.OutputDir, r, *label)
		if err != nil {
			log.Fatalf("failed to write chart: %v", err)
		}
		log.Printf("✓ Chart: %s", chartPath)

		bp := monitor.NewBoutPlotter(run.OutputDir, 10)
		if err := bp.Start(); err != nil {
			log.Fatalf("failed to start plotter: %v", err)
		}
		count, err := bp.GeneratePlots(r)
		if err != nil {
			log.Fatalf("failed to generate plots: %v", err)
		}
		log.Printf("✓ Plots: %d bout plot(s) in %s", count, run.OutputDir)
	}
}

func defaultConfig(framerate float64) *kinematics.Config {
	cfg := &kinematics.Config{
		Points: kinematics.PointGroups{
			Spine:    []string{"spine_1", "spine_2", "spine_3", "spine_4", "spine_5"},
			LeftFin:  []string{"lf_base", "lf_tip"},
			RightFin: []string{"rf_base", "rf_tip"},
			Tail:     []string{"spine_4", "spine_5"},
			Head:     kinematics.HeadPoints{Pt1: "spine_1", Pt2: "spine_2"},
		},
		AutoFindTimeRanges: true,
	}
	cfg.VideoParameters.RecordedFramerate = &framerate
	return cfg
}

// syntheticRecording builds a fish swimming along +X with a burst of fin
// beating in the middle third of the recording.
func syntheticRecording(n int, framerate, beatHz float64) kinematics.Landmarks {
	mk := func() kinematics.Series {
		return kinematics.Series{
			X:    make([]float64, n),
			Y:    make([]float64, n),
			Conf: make([]float64, n),
		}
	}
	names := []string{
		"spine_1", "spine_2", "spine_3", "spine_4", "spine_5",
		"lf_base", "lf_tip", "rf_base", "rf_tip",
	}
	lm := make(kinematics.Landmarks, len(names))
	for _, name := range names {
		lm[name] = mk()
	}

	burstStart, burstEnd := n/3, 2*n/3
	for i := 0; i < n; i++ {
		t := float64(i) / framerate
		headX := 100 + 40*t

		// Fin beat amplitude ramps inside the burst, zero elsewhere.
		amp := 0.0
		if i >= burstStart && i <= burstEnd {
			amp = 70 * math.Sin(2*math.Pi*beatHz*t)
		}

		for s := 0; s < 5; s++ {
			serie := lm[names[s]]
			serie.X[i] = headX + float64(s)*15
			// The tail lags the fins with a per-segment phase offset.
			serie.Y[i] = 200 + amp*0.1*float64(s)*math.Sin(float64(s)*0.4)
			serie.Conf[i] = 1
		}

		finRad := amp * math.Pi / 180
		for _, fin := range []struct {
			base, tip string
			side      float64
		}{
			{"lf_base", "lf_tip", 1},
			{"rf_base", "rf_tip", -1},
		} {
			base := lm[fin.base]
			base.X[i] = headX + 20
			base.Y[i] = 200 + fin.side*8
			base.Conf[i] = 1

			tip := lm[fin.tip]
			tip.X[i] = base.X[i] + 12*math.Cos(fin.side*finRad)
			tip.Y[i] = base.Y[i] + fin.side*12*math.Sin(math.Abs(finRad))
			tip.Conf[i] = 1
		}
	}
	return lm
}

func writeResultsCSV(path string, r *kinematics.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(r.Header()); err != nil {
		return err
	}
	for i := 0; i < r.FrameCount; i++ {
		if err := w.Write(r.Row(i)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func logSummary(r *kinematics.Results, cfg *kinematics.Config) {
	fps := cfg.VideoParameters.GetRecordedFramerate()
	lfCut := cfg.GraphCutoffs.GetLeftFinAngle()
	rfCut := cfg.GraphCutoffs.GetRightFinAngle()

	lfFreq, lfBeats := kinematics.BoutFrequency(r.LFAngle, lfCut, r.Bouts, fps, false, kinematics.VariantCurrent)
	rfFreq, rfBeats := kinematics.BoutFrequency(r.RFAngle, rfCut, r.Bouts, fps, false, kinematics.VariantCurrent)
	log.Printf("left fin:  %d beat(s), %.1f Hz", lfBeats, lfFreq)
	log.Printf("right fin: %d beat(s), %.1f Hz", rfBeats, rfFreq)

	dists := kinematics.BoutDistances(r.HeadX, r.HeadY, r.Bouts)
	speeds := kinematics.BoutSpeeds(r.HeadX, r.HeadY, r.Bouts, fps)
	for i, b := range r.Bouts {
		log.Printf("bout %d: frames %d-%d, distance %.4g m, speed %.4g",
			i, b.Start, b.End, dists[i], speeds[i])
	}
}
